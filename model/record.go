package model

// Record represents a single race entry with an explicit, optional
// identifier. The underlying object is shared with the document, so
// assigning an ID updates the document in place.
type Record struct {
	ID      *string
	fields  *Object
	idField string
}

// NewRecord converts a decoded JSON value into a Record. Only a string
// value under idField counts as an ID.
func NewRecord(value interface{}, idField string) (*Record, error) {
	object, ok := value.(*Object)
	if !ok {
		return nil, &ShapeError{Path: "$", Expected: "object", Actual: kindOf(value)}
	}
	record := &Record{fields: object, idField: idField}
	if field, ok := object.Get(idField); ok {
		if id, ok := field.(string); ok {
			record.ID = &id
		}
	}
	return record, nil
}

// Previous returns the value currently stored under the identifier field, if any.
func (r *Record) Previous() (interface{}, bool) {
	return r.fields.Get(r.idField)
}

// AssignID sets the record identifier, overwriting any prior value in place
// or appending the field when absent. It returns true when a previous value
// was replaced.
func (r *Record) AssignID(id string) bool {
	_, replaced := r.fields.Get(r.idField)
	r.fields.Set(r.idField, id)
	r.ID = &id
	return replaced
}

// Value returns the record as a JSON object.
func (r *Record) Value() *Object {
	return r.fields
}
