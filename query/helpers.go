package query

import (
	"strings"

	"github.com/fulldump/fixturedb/record"
)

// Predicate is the callback where form: an arbitrary condition over one
// record, handed the Helpers bundle so ad hoc filters share the exact
// comparison semantics of the Clause DSL.
type Predicate func(r record.Record, h Helpers) bool

func (p Predicate) compile() func(record.Record) bool {
	h := Helpers{}
	return func(r record.Record) bool {
		return p(r, h)
	}
}

// Helpers is a stateless bundle of pure comparison functions mirroring the
// Clause operators.
type Helpers struct{}

func (Helpers) And(conditions ...bool) bool {
	for _, c := range conditions {
		if !c {
			return false
		}
	}
	return true
}

func (Helpers) Or(conditions ...bool) bool {
	for _, c := range conditions {
		if c {
			return true
		}
	}
	return false
}

func (Helpers) Not(condition bool) bool {
	return !condition
}

func (Helpers) Eq(a, b record.Value) bool {
	return record.Equal(a, b)
}

func (Helpers) Ne(a, b record.Value) bool {
	return !record.Equal(a, b)
}

func (Helpers) Gt(a, b record.Value) bool {
	return rangeCondition(b, func(c int) bool { return c > 0 })(a)
}

func (Helpers) Gte(a, b record.Value) bool {
	return rangeCondition(b, func(c int) bool { return c >= 0 })(a)
}

func (Helpers) Lt(a, b record.Value) bool {
	return rangeCondition(b, func(c int) bool { return c < 0 })(a)
}

func (Helpers) Lte(a, b record.Value) bool {
	return rangeCondition(b, func(c int) bool { return c <= 0 })(a)
}

func (h Helpers) Between(v, lo, hi record.Value) bool {
	return h.Gte(v, lo) && h.Lte(v, hi)
}

func (Helpers) Like(v record.Value, pattern string) bool {
	s, ok := v.AsString()
	return ok && compileLike(pattern, false).MatchString(s)
}

func (Helpers) ILike(v record.Value, pattern string) bool {
	s, ok := v.AsString()
	return ok && compileLike(pattern, true).MatchString(s)
}

func (Helpers) StartsWith(v record.Value, prefix string) bool {
	s, ok := v.AsString()
	return ok && strings.HasPrefix(s, prefix)
}

func (Helpers) EndsWith(v record.Value, suffix string) bool {
	s, ok := v.AsString()
	return ok && strings.HasSuffix(s, suffix)
}

func (Helpers) ContainsText(v record.Value, substring string) bool {
	s, ok := v.AsString()
	return ok && strings.Contains(s, substring)
}

func (Helpers) InArray(v record.Value, list ...record.Value) bool {
	return memberOf(list, v)
}

func (Helpers) NotInArray(v record.Value, list ...record.Value) bool {
	return !memberOf(list, v)
}

func (Helpers) IsNull(v record.Value) bool {
	return v.IsNull()
}

func (Helpers) IsNotNull(v record.Value) bool {
	return !v.IsNull()
}
