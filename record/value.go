// Package record implements the schema-less record: an ordered bag of fields
// whose values are dynamically typed (null, boolean, number, string, date or
// array). It is the data model shared by the collection store and the query
// engine.
package record

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid is the kind of the zero Value: no value at all. It is
	// distinct from an explicit null.
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindArray
)

// Value is a dynamically typed field value. Values are immutable: build them
// with the constructors below and read them with the As* accessors.
type Value struct {
	kind Kind
	b    bool
	i64  int64
	f64  float64
	str  string
	t    time.Time
	arr  []Value
}

func Null() Value           { return Value{kind: KindNull} }
func Bool(v bool) Value     { return Value{kind: KindBool, b: v} }
func Int(v int64) Value     { return Value{kind: KindInt, i64: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f64: v} }
func String(v string) Value { return Value{kind: KindString, str: v} }
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// Array builds an array value from its items. The items slice is copied.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is the zero Value (no value at all).
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i64, true
}

func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f64, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	arr := make([]Value, len(v.arr))
	copy(arr, v.arr)
	return arr, true
}

// Number returns the numeric value of an int or float Value. Both kinds
// compare and match as plain numbers everywhere in this module.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i64), true
	case KindFloat:
		return v.f64, true
	}
	return 0, false
}

// Equal reports strict equality between two values: numbers compare
// numerically across int/float, dates by instant, everything else requires
// the same kind. Null equals only null.
func Equal(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == b.kind
	}
	if fa, ok := a.Number(); ok {
		fb, ok := b.Number()
		if !ok {
			return false
		}
		if a.kind == KindInt && b.kind == KindInt {
			return a.i64 == b.i64
		}
		return fa == fb
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.str == b.str
	case KindTime:
		return a.t.Equal(b.t)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders two values: numbers numerically, dates by instant, strings
// lexicographically, booleans false before true, arrays element by element
// and then by length. Nulls and mixed kinds are not comparable (ok=false);
// the sorter and the range operators deal with those cases themselves.
func Compare(a, b Value) (int, bool) {
	if fa, ok := a.Number(); ok {
		fb, ok := b.Number()
		if !ok {
			return 0, false
		}
		if a.kind == KindInt && b.kind == KindInt {
			return cmpOrdered(a.i64, b.i64), true
		}
		return cmpOrdered(fa, fb), true
	}
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindString:
		return strings.Compare(a.str, b.str), true
	case KindBool:
		return cmpBool(a.b, b.b), true
	case KindTime:
		return a.t.Compare(b.t), true
	case KindArray:
		n := len(a.arr)
		if len(b.arr) < n {
			n = len(b.arr)
		}
		for i := 0; i < n; i++ {
			c, ok := Compare(a.arr[i], b.arr[i])
			if !ok {
				return 0, false
			}
			if c != 0 {
				return c, true
			}
		}
		return cmpOrdered(len(a.arr), len(b.arr)), true
	}
	return 0, false
}

func cmpOrdered[T int | int64 | float64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if b {
		return -1
	}
	return 1
}

// Text is the coercive string form used by the example matcher: numbers
// render without type information, so Int(1) and String("1") read the same.
// Arrays join their items with commas.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return v.str
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	case KindArray:
		items := make([]string, len(v.arr))
		for i := range v.arr {
			items[i] = v.arr[i].Text()
		}
		return strings.Join(items, ",")
	}
	return ""
}

// Key returns a stable string representation for use as a map key, since
// array values keep Value itself out of map keys. Integral floats collapse
// to the int form so that Int(2) and Float(2) claim the same identifier.
func (v Value) Key() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "b:1"
		}
		return "b:0"
	case KindInt:
		return "n:" + strconv.FormatInt(v.i64, 10)
	case KindFloat:
		if i := int64(v.f64); float64(i) == v.f64 {
			return "n:" + strconv.FormatInt(i, 10)
		}
		return "n:" + strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return "s:" + v.str
	case KindTime:
		return "t:" + v.t.UTC().Format(time.RFC3339Nano)
	case KindArray:
		items := make([]string, len(v.arr))
		for i := range v.arr {
			items[i] = v.arr[i].Key()
		}
		return "a:" + strings.Join(items, "\x1f")
	}
	return "invalid"
}
