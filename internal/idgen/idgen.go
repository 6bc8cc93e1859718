package idgen

import "github.com/google/uuid"

// NewFunc produces a new record identifier. Override in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new record identifier.
func New() string { return NewFunc() }

// Valid reports whether id is a canonical, lowercase version 4 UUID.
func Valid(id string) bool {
	if len(id) != 36 {
		return false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	if parsed.Version() != 4 || parsed.Variant() != uuid.RFC4122 {
		return false
	}
	return parsed.String() == id
}
