package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object that remembers the order its keys were first set in.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject creates an empty Object
func NewObject() *Object {
	return &Object{values: map[string]interface{}{}}
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the value stored under key
func (o *Object) Get(key string) (interface{}, bool) {
	value, ok := o.values[key]
	return value, ok
}

// Set stores value under key. A new key is appended; an existing key keeps its position.
func (o *Object) Set(key string, value interface{}) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// MarshalJSON writes the keys in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	buffer := new(bytes.Buffer)
	buffer.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}
		encodedKey, err := marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := marshal(o.values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", key, err)
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func marshal(value interface{}) ([]byte, error) {
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// decodeValue reads one JSON value; objects become *Object, arrays
// []interface{}, numbers json.Number.
func decodeValue(decoder *json.Decoder) (interface{}, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}
	switch delim {
	case '{':
		object := NewObject()
		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyToken)
			}
			value, err := decodeValue(decoder)
			if err != nil {
				return nil, err
			}
			object.Set(key, value)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return object, nil
	case '[':
		items := make([]interface{}, 0)
		for decoder.More() {
			item, err := decodeValue(decoder)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// unescapeSeparators turns the U+2028 and U+2029 escapes that encoding/json
// always emits back into literal runes. Escaped backslashes are skipped so a
// literal `\\u2028` in the data is left alone.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			result = append(result, c)
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "2028":
				result = append(result, "\u2028"...)
				i += 5
				continue
			case "2029":
				result = append(result, "\u2029"...)
				i += 5
				continue
			}
		}
		result = append(result, c, data[i+1])
		i++
	}
	return result
}
