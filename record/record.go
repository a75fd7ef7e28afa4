package record

// IDField is the reserved identifier field name.
const IDField = "id"

// Field is a single named value inside a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is a schema-less document: an ordered list of fields. Field order is
// the order of first assignment and survives updates and the JSON codec.
//
// Records behave as values: Set, Delete and Merge leave the receiver alone
// and return the updated copy, so records handed out by the store can be
// shared without aliasing surprises.
type Record struct {
	fields []Field
}

// New returns an empty record.
func New() Record {
	return Record{}
}

// FromFields builds a record from fields, keeping their order. Later
// duplicates overwrite earlier ones in place.
func FromFields(fields ...Field) Record {
	r := Record{}
	for _, f := range fields {
		r = r.Set(f.Name, f.Value)
	}
	return r
}

func (r Record) Len() int {
	return len(r.fields)
}

// Get returns the value of the named field. The second result is false when
// the field is absent.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set returns a copy of the record with the field assigned. An existing field
// keeps its position; a new field is appended.
func (r Record) Set(name string, value Value) Record {
	fields := make([]Field, len(r.fields), len(r.fields)+1)
	copy(fields, r.fields)
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = value
			return Record{fields: fields}
		}
	}
	fields = append(fields, Field{Name: name, Value: value})
	return Record{fields: fields}
}

// Delete returns a copy of the record without the named field.
func (r Record) Delete(name string) Record {
	fields := make([]Field, 0, len(r.fields))
	for _, f := range r.fields {
		if f.Name != name {
			fields = append(fields, f)
		}
	}
	return Record{fields: fields}
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	fields := make([]Field, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// ID returns the identifier field, or null when the record has none.
func (r Record) ID() Value {
	v, ok := r.Get(IDField)
	if !ok {
		return Null()
	}
	return v
}

// Merge applies patch on top of the record, field by field: existing fields
// are overwritten in place, new ones appended in patch order. Nested values
// are replaced whole.
func (r Record) Merge(patch Record) Record {
	out := r
	for _, f := range patch.fields {
		out = out.Set(f.Name, f.Value)
	}
	return out
}
