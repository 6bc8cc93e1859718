// Package model contains the in-memory representation of a race document.
//
// A Document is decoded from JSON at the boundary; the array holding race
// records is then resolved into typed Record values carrying an explicit,
// optional identifier. Shape problems are reported as distinct errors so that
// callers can tell a missing key from a key holding the wrong kind of value.
package model
