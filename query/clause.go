package query

import (
	"regexp"
	"strings"

	"github.com/fulldump/fixturedb/record"
)

// Clause is the declarative where form: conditions on fields plus optional
// logical composition, all AND-ed together at the same level. And/Or/Not nest
// arbitrarily.
type Clause struct {
	Fields map[string]Op
	And    []Clause
	Or     []Clause
	Not    *Clause
}

// Op groups the conditions on one field. Every set condition must hold (they
// are AND-ed). A zero record.Value means "not set"; an explicit null is
// expressed with record.Null(), so Eq: record.Null() is a valid condition.
// The string patterns treat the empty string as not set.
type Op struct {
	// equality and membership
	Eq     record.Value
	Ne     record.Value
	In     []record.Value
	Nin    []record.Value
	IsNull *bool

	// ranges, numbers and dates only
	Lt      record.Value
	Lte     record.Value
	Gt      record.Value
	Gte     record.Value
	Between *[2]record.Value // inclusive both bounds

	// strings
	Like       string // SQL-style %, case-sensitive
	ILike      string // SQL-style %, case-insensitive
	StartsWith string
	EndsWith   string

	// Contains matches a substring on string fields; on array fields it
	// checks membership of one element, or of every element when given an
	// array.
	Contains record.Value

	// Length applies a nested Op to the length of an array field.
	Length *Op
}

func (c Clause) compile() func(record.Record) bool {

	type fieldCheck struct {
		field string
		match func(record.Value) bool
	}

	checks := []fieldCheck{}
	for field, op := range c.Fields {
		checks = append(checks, fieldCheck{field, op.compile()})
	}

	ands := make([]func(record.Record) bool, len(c.And))
	for i, sub := range c.And {
		ands[i] = sub.compile()
	}

	ors := make([]func(record.Record) bool, len(c.Or))
	for i, sub := range c.Or {
		ors[i] = sub.compile()
	}

	var not func(record.Record) bool
	if c.Not != nil {
		not = c.Not.compile()
	}

	return func(r record.Record) bool {
		for _, check := range checks {
			if !check.match(fieldOf(r, check.field)) {
				return false
			}
		}
		for _, sub := range ands {
			if !sub(r) {
				return false
			}
		}
		if len(ors) > 0 {
			any := false
			for _, sub := range ors {
				if sub(r) {
					any = true
					break
				}
			}
			if !any {
				return false
			}
		}
		if not != nil && not(r) {
			return false
		}
		return true
	}
}

func (op Op) compile() func(record.Value) bool {

	conditions := []func(record.Value) bool{}
	add := func(f func(record.Value) bool) {
		conditions = append(conditions, f)
	}

	if !op.Eq.IsZero() {
		add(func(v record.Value) bool { return record.Equal(v, op.Eq) })
	}
	if !op.Ne.IsZero() {
		add(func(v record.Value) bool { return !record.Equal(v, op.Ne) })
	}
	if op.In != nil {
		add(func(v record.Value) bool { return memberOf(op.In, v) })
	}
	if op.Nin != nil {
		add(func(v record.Value) bool { return !memberOf(op.Nin, v) })
	}
	if op.IsNull != nil {
		add(func(v record.Value) bool { return v.IsNull() == *op.IsNull })
	}

	if !op.Lt.IsZero() {
		add(rangeCondition(op.Lt, func(c int) bool { return c < 0 }))
	}
	if !op.Lte.IsZero() {
		add(rangeCondition(op.Lte, func(c int) bool { return c <= 0 }))
	}
	if !op.Gt.IsZero() {
		add(rangeCondition(op.Gt, func(c int) bool { return c > 0 }))
	}
	if !op.Gte.IsZero() {
		add(rangeCondition(op.Gte, func(c int) bool { return c >= 0 }))
	}
	if op.Between != nil {
		lo := rangeCondition(op.Between[0], func(c int) bool { return c >= 0 })
		hi := rangeCondition(op.Between[1], func(c int) bool { return c <= 0 })
		add(func(v record.Value) bool { return lo(v) && hi(v) })
	}

	if op.Like != "" {
		re := compileLike(op.Like, false)
		add(stringCondition(func(s string) bool { return re.MatchString(s) }))
	}
	if op.ILike != "" {
		re := compileLike(op.ILike, true)
		add(stringCondition(func(s string) bool { return re.MatchString(s) }))
	}
	if op.StartsWith != "" {
		add(stringCondition(func(s string) bool { return strings.HasPrefix(s, op.StartsWith) }))
	}
	if op.EndsWith != "" {
		add(stringCondition(func(s string) bool { return strings.HasSuffix(s, op.EndsWith) }))
	}

	if !op.Contains.IsZero() {
		add(func(v record.Value) bool { return containsCondition(v, op.Contains) })
	}
	if op.Length != nil {
		length := op.Length.compile()
		add(func(v record.Value) bool {
			items, ok := v.AsArray()
			if !ok {
				return false
			}
			return length(record.Int(int64(len(items))))
		})
	}

	return func(v record.Value) bool {
		for _, condition := range conditions {
			if !condition(v) {
				return false
			}
		}
		return true
	}
}

func memberOf(list []record.Value, v record.Value) bool {
	for _, item := range list {
		if record.Equal(v, item) {
			return true
		}
	}
	return false
}

// rangeCondition restricts ordering to numbers against numbers and dates
// against dates. Anything else, null included, never matches a range.
func rangeCondition(bound record.Value, keep func(int) bool) func(record.Value) bool {
	return func(v record.Value) bool {
		if !rangeComparable(v, bound) {
			return false
		}
		c, ok := record.Compare(v, bound)
		if !ok {
			return false
		}
		return keep(c)
	}
}

func rangeComparable(a, b record.Value) bool {
	if _, ok := a.Number(); ok {
		_, ok = b.Number()
		return ok
	}
	return a.Kind() == record.KindTime && b.Kind() == record.KindTime
}

func stringCondition(match func(string) bool) func(record.Value) bool {
	return func(v record.Value) bool {
		s, ok := v.AsString()
		if !ok {
			return false
		}
		return match(s)
	}
}

func containsCondition(v, arg record.Value) bool {

	if items, ok := v.AsArray(); ok {
		if wanted, isArray := arg.AsArray(); isArray {
			for _, w := range wanted {
				if !memberOf(items, w) {
					return false
				}
			}
			return true
		}
		return memberOf(items, arg)
	}

	if s, ok := v.AsString(); ok {
		sub, isString := arg.AsString()
		return isString && strings.Contains(s, sub)
	}

	return false
}

// compileLike turns a SQL-style pattern into an anchored regexp: % becomes
// .*, every other character is taken literally.
func compileLike(pattern string, caseInsensitive bool) *regexp.Regexp {

	parts := strings.Split(pattern, "%")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	expr := "^" + strings.Join(parts, ".*") + "$"
	if caseInsensitive {
		expr = "(?i)" + expr
	}

	return regexp.MustCompile(expr)
}
