// Package query is the stateless filter/sort/paginate engine. Find is a pure
// function over a slice of records plus options; it never mutates its inputs
// and keeps no state between calls.
package query

import (
	"github.com/fulldump/fixturedb/record"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is one (field, direction) pair. OrderBy evaluates pairs in slice
// order: the first field with a non-equal comparison decides.
type Order struct {
	Field     string
	Direction Direction
}

// Cursor holds the sort-key values of the last record of the previous page.
// Keyset pagination resumes strictly after that position.
type Cursor map[string]record.Value

type Options struct {
	Where   Where
	OrderBy []Order
	Offset  int
	Limit   *int
	Cursor  Cursor
}

// Limit builds the pointer form used in Options. A nil or negative limit
// means unlimited; zero returns no records but leaves the total untouched.
func Limit(n int) *int {
	return &n
}

// Where is the filter condition in one of its two forms: the declarative
// Clause DSL or a Predicate callback. It is compiled once per Find call.
type Where interface {
	compile() func(record.Record) bool
}

// Result is the outcome of one query: the page of records and the total
// count of records matching Where, independent of pagination.
type Result struct {
	Records []record.Record
	Total   int
}

// fieldOf reads a record field for matching and sorting. An absent field
// behaves exactly like an explicit null.
func fieldOf(r record.Record, name string) record.Value {
	v, found := r.Get(name)
	if !found {
		return record.Null()
	}
	return v
}
