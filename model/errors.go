package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when the document is not well-formed JSON.
	ErrMalformed = errors.New("model: malformed document")

	// ErrMissingKey is returned when the records key is absent from the document.
	ErrMissingKey = errors.New("model: missing key")

	// ErrShape is matched by every *ShapeError.
	ErrShape = errors.New("model: unexpected shape")
)

// ShapeError reports a value whose JSON kind differs from the expected one.
type ShapeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model: unexpected shape at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is allows errors.Is(err, ErrShape).
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

func kindOf(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case *Object, map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
