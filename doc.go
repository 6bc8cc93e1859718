// Package raceid stamps race records with identifiers.
//
// A run loads a JSON document, assigns a freshly generated UUID to every
// record of one named array and writes the whole document to a new file,
// keeping non-ASCII text literal:
//
//	srv := raceid.New(raceid.WithConfig(&raceid.Config{
//		Input:   "races.json",
//		Output:  "races_with_ids.json",
//		Key:     "races_women",
//		IDField: "id",
//		Indent:  2,
//		Count:   raceid.CountRecords,
//	}))
//	result, err := srv.Transform(ctx)
//
// Input and output are read and written through viant/afs, so any afs URL
// works in place of a local path.
package raceid
