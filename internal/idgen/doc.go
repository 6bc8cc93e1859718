// Package idgen wraps the UUID generator used to stamp race records so that it
// can be stubbed in tests. Identifiers are random (version 4) UUIDs rendered in
// the canonical lowercase 8-4-4-4-12 form.
package idgen
