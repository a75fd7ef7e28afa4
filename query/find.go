package query

import (
	"sort"

	"github.com/fulldump/fixturedb/record"
)

// Find runs the fixed pipeline over the records: filter, stable sort, total,
// cursor exclusion, offset, limit. The input slice is never mutated.
func Find(records []record.Record, options Options) Result {

	var out []record.Record
	if options.Where != nil {
		match := options.Where.compile()
		out = []record.Record{}
		for _, r := range records {
			if match(r) {
				out = append(out, r)
			}
		}
	} else {
		out = make([]record.Record, len(records))
		copy(out, records)
	}

	if len(options.OrderBy) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return compareRecords(out[i], out[j], options.OrderBy) < 0
		})
	}

	// The total is pagination-independent: cursor, offset and limit do not
	// change it.
	total := len(out)

	if len(options.Cursor) > 0 && len(options.OrderBy) > 0 {
		after := []record.Record{}
		for _, r := range out {
			if afterCursor(r, options.Cursor, options.OrderBy) {
				after = append(after, r)
			}
		}
		out = after
	}

	offset := options.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		out = []record.Record{}
	} else {
		out = out[offset:]
	}

	if options.Limit != nil {
		limit := *options.Limit
		if limit == 0 {
			out = []record.Record{}
		} else if limit > 0 && limit < len(out) {
			out = out[:limit]
		}
	}

	return Result{
		Records: out,
		Total:   total,
	}
}

// compareFields orders two field values for one Order. Nulls go after
// non-nulls regardless of direction; incomparable kinds tie, falling through
// to the next order field.
func compareFields(a, b record.Value, direction Direction) int {

	aNull := a.IsNull()
	bNull := b.IsNull()
	if aNull || bNull {
		if aNull && bNull {
			return 0
		}
		if aNull {
			return 1
		}
		return -1
	}

	c, ok := record.Compare(a, b)
	if !ok {
		return 0
	}
	if direction == Desc {
		return -c
	}
	return c
}

func compareRecords(a, b record.Record, orderBy []Order) int {
	for _, order := range orderBy {
		c := compareFields(fieldOf(a, order.Field), fieldOf(b, order.Field), order.Direction)
		if c != 0 {
			return c
		}
	}
	return 0
}

// afterCursor reports whether the record sits strictly after the cursor
// position in sort order. Order fields absent from the cursor are skipped; a
// record equal on every cursor field is the cursor position itself and is
// excluded.
func afterCursor(r record.Record, cursor Cursor, orderBy []Order) bool {

	for _, order := range orderBy {
		cursorValue, present := cursor[order.Field]
		if !present {
			continue
		}
		v := fieldOf(r, order.Field)
		if record.Equal(v, cursorValue) {
			continue
		}
		return compareFields(v, cursorValue, order.Direction) > 0
	}

	return false
}
