package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/fixturedb/utils"
)

// The JSON form of a record is a flat object. Field order is preserved in
// both directions and duplicate names collapse to the last value, keeping the
// position of the first. Date values encode as RFC3339 strings; decoding
// yields plain strings, JSON has no date literal.

func (v Value) MarshalJSONTo(enc *jsontext.Encoder) error {
	switch v.kind {
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.b))
	case KindInt:
		return enc.WriteToken(jsontext.Int(v.i64))
	case KindFloat:
		return enc.WriteToken(jsontext.Float(v.f64))
	case KindString:
		return enc.WriteToken(jsontext.String(v.str))
	case KindTime:
		return enc.WriteToken(jsontext.String(v.t.Format(time.RFC3339Nano)))
	case KindArray:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := item.MarshalJSONTo(enc); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	}
	return enc.WriteToken(jsontext.Null)
}

func (v *Value) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	switch dec.PeekKind() {
	case '{':
		return fmt.Errorf("record: nested objects are not supported")
	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		items := []Value{}
		for dec.PeekKind() != ']' {
			item := Value{}
			if err := item.UnmarshalJSONFrom(dec); err != nil {
				return err
			}
			items = append(items, item)
		}
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		*v = Value{kind: KindArray, arr: items}
		return nil
	}

	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch tok.Kind() {
	case 'n':
		*v = Null()
	case 't':
		*v = Bool(true)
	case 'f':
		*v = Bool(false)
	case '"':
		*v = String(tok.String())
	case '0':
		*v, err = parseNumber(tok.String())
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("record: unexpected token %v", tok.Kind())
	}
	return nil
}

// parseNumber keeps JSON integers as int64 unless they carry a fraction, an
// exponent or overflow.
func parseNumber(raw string) (Value, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, fmt.Errorf("record: invalid number %q: %w", raw, err)
	}
	return Float(f), nil
}

func (r Record) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, f := range r.fields {
		if err := enc.WriteToken(jsontext.String(f.Name)); err != nil {
			return err
		}
		if err := f.Value.MarshalJSONTo(enc); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

func (r *Record) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("record: expected object, got %v", tok.Kind())
	}
	out := Record{}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		// the token is voided by the next decoder call, take the name now
		name := tok.String()
		value := Value{}
		if err := value.UnmarshalJSONFrom(dec); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out = out.Set(name, value)
	}
	if _, err := dec.ReadToken(); err != nil {
		return err
	}
	*r = out
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, v, jsontext.AllowDuplicateNames(true))
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, r, jsontext.AllowDuplicateNames(true))
}

// Parse decodes one JSON object into a record.
func Parse(data []byte) (Record, error) {
	r := Record{}
	if err := r.UnmarshalJSON(data); err != nil {
		return Record{}, err
	}
	return r, nil
}

// FromAny converts a native Go value (a map or a struct, typically) into a
// record through its JSON form. Map fields come out sorted; struct fields
// keep their declaration order.
func FromAny(v any) (Record, error) {
	if r, ok := v.(Record); ok {
		return r, nil
	}
	r := Record{}
	if err := utils.Remarshal(v, &r); err != nil {
		return Record{}, fmt.Errorf("record: %w", err)
	}
	return r, nil
}

// ValueOf converts a native Go value into a Value through its JSON form.
// Value and time.Time pass through directly.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case time.Time:
		return Time(t), nil
	}
	out := Value{}
	if err := utils.Remarshal(v, &out); err != nil {
		return Value{}, fmt.Errorf("record: %w", err)
	}
	return out, nil
}
