package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// Document is the top-level JSON object loaded from the input file. Object
// keys keep their input order.
type Document struct {
	fields *Object
}

// DecodeDocument parses data into a Document. Numbers keep their literal text.
func DecodeDocument(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	value, err := decodeValue(decoder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformed)
	}
	fields, ok := value.(*Object)
	if !ok {
		return nil, &ShapeError{Path: "$", Expected: "object", Actual: kindOf(value)}
	}
	return &Document{fields: fields}, nil
}

// Keys returns the number of top-level keys.
func (d *Document) Keys() int {
	return d.fields.Len()
}

// Records resolves the array stored under key into typed records.
func (d *Document) Records(key, idField string) ([]*Record, error) {
	raw, ok := d.fields.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, &ShapeError{Path: "$." + key, Expected: "array", Actual: kindOf(raw)}
	}
	records := make([]*Record, 0, len(items))
	for i, item := range items {
		record, err := NewRecord(item, idField)
		if err != nil {
			return nil, &ShapeError{Path: fmt.Sprintf("$.%s[%d]", key, i), Expected: "object", Actual: kindOf(item)}
		}
		records = append(records, record)
	}
	return records, nil
}

// SetRecords replaces the array stored under key with records.
func (d *Document) SetRecords(key string, records []*Record) {
	values := make([]interface{}, len(records))
	for i, record := range records {
		values[i] = record.Value()
	}
	d.fields.Set(key, values)
}

// Encode serialises the document with the given indent, which must not be
// empty. Non-ASCII and HTML characters are written literally.
func (d *Document) Encode(indent string) ([]byte, error) {
	if indent == "" {
		return nil, fmt.Errorf("indent must not be empty")
	}
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(d.fields); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return unescapeSeparators(buffer.Bytes()), nil
}
