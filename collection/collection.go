// Package collection is the authoritative storage for one named set of
// records: thin CRUD over an insertion-ordered record list, with identifier
// assignment delegated to an identity.Manager.
//
// Absence is never an error here. Lookups miss with a false/empty result and
// the only failure that can surface is id-generation misconfiguration, which
// comes straight from the identity package.
package collection

import (
	"fmt"

	"github.com/fulldump/fixturedb/identity"
	"github.com/fulldump/fixturedb/record"
)

type Config struct {
	Name        string
	Identity    *identity.Manager
	InitialData []record.Record
}

type Collection struct {
	name     string
	records  []record.Record
	byID     map[string]int // record.Value.Key() -> position in records
	identity *identity.Manager
}

// NewCollection builds a collection, optionally pre-seeded. Without an
// identity manager the default numeric-string domain ("1", "2", ...) is used.
func NewCollection(config Config) (*Collection, error) {

	manager := config.Identity
	if manager == nil {
		manager = identity.New(identity.Config{})
	}

	c := &Collection{
		name:     config.Name,
		records:  []record.Record{},
		byID:     map[string]int{},
		identity: manager,
	}

	for _, r := range config.InitialData {
		_, err := c.Insert(r)
		if err != nil {
			return nil, fmt.Errorf("seed collection '%s': %w", config.Name, err)
		}
	}

	return c, nil
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) Count() int {
	return len(c.records)
}

// All returns the records in insertion order. The slice is a copy; records
// themselves are immutable values.
func (c *Collection) All() []record.Record {
	out := make([]record.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Identity exposes the owned manager, mainly so callers can pre-claim ids.
func (c *Collection) Identity() *identity.Manager {
	return c.identity
}

// Insert stores a record. A record without an id gets one allocated and
// placed as its first field; an explicit id is registered with the identity
// manager so it is never allocated again. An explicit id that collides with a
// stored record silently overwrites it.
func (c *Collection) Insert(data record.Record) (record.Record, error) {

	id, hasID := data.Get(record.IDField)
	if !hasID || id.IsNull() {
		allocated, err := c.identity.Fetch()
		if err != nil {
			return record.Record{}, fmt.Errorf("insert into '%s': %w", c.name, err)
		}
		id = allocated
		if hasID {
			data = data.Set(record.IDField, id)
		} else {
			fields := append([]record.Field{{Name: record.IDField, Value: id}}, data.Fields()...)
			data = record.FromFields(fields...)
		}
	} else {
		c.identity.Set(id)
	}

	if pos, exists := c.byID[id.Key()]; exists {
		c.records[pos] = data
	} else {
		c.byID[id.Key()] = len(c.records)
		c.records = append(c.records, data)
	}

	return data, nil
}

// InsertMany inserts each record in order and returns the finalized records
// in the same order.
func (c *Collection) InsertMany(list []record.Record) ([]record.Record, error) {

	out := make([]record.Record, 0, len(list))
	for _, data := range list {
		inserted, err := c.Insert(data)
		if err != nil {
			return nil, err
		}
		out = append(out, inserted)
	}

	return out, nil
}

// Find returns the record with the given id, or false when absent.
func (c *Collection) Find(id record.Value) (record.Record, bool) {
	pos, exists := c.byID[id.Key()]
	if !exists {
		return record.Record{}, false
	}
	return c.records[pos], true
}

// FindMany returns the records for the given ids, in the order of the ids.
// Missing ids are simply omitted.
func (c *Collection) FindMany(ids ...record.Value) []record.Record {

	out := []record.Record{}
	for _, id := range ids {
		r, found := c.Find(id)
		if found {
			out = append(out, r)
		}
	}

	return out
}

// Example is the legacy field-by-field predicate: a record matches when the
// coercive text form of each listed field equals the text form of the example
// value, so 1 matches "1". This weak equality is deliberately distinct from
// the query package's strict DSL.
type Example map[string]any

func (e Example) Match(r record.Record) bool {

	for field, raw := range e {
		v, found := r.Get(field)
		if !found {
			return false
		}
		expected, err := record.ValueOf(raw)
		if err != nil {
			return false
		}
		if v.Text() != expected.Text() {
			return false
		}
	}

	return true
}

// FindBy returns the first record matching the example, in insertion order.
func (c *Collection) FindBy(example Example) (record.Record, bool) {

	for _, r := range c.records {
		if example.Match(r) {
			return r, true
		}
	}

	return record.Record{}, false
}

// Selector resolves the target set for the *Many operations. Exactly one mode
// applies: IDs, else Example, else Match; a zero Selector targets every
// record.
type Selector struct {
	IDs     []record.Value
	Example Example
	Match   func(record.Record) bool
}

// Select returns the records targeted by the selector. IDs resolve in id
// order, everything else in insertion order.
func (c *Collection) Select(selector Selector) []record.Record {

	if selector.IDs != nil {
		return c.FindMany(selector.IDs...)
	}

	out := []record.Record{}
	for _, r := range c.records {
		if selector.Example != nil && !selector.Example.Match(r) {
			continue
		}
		if selector.Match != nil && !selector.Match(r) {
			continue
		}
		out = append(out, r)
	}

	return out
}

// Update merges patch onto the stored record (patch fields win) and replaces
// it in place, keeping its insertion position. Returns false when the id is
// absent.
func (c *Collection) Update(id record.Value, patch record.Record) (record.Record, bool) {

	pos, exists := c.byID[id.Key()]
	if !exists {
		return record.Record{}, false
	}

	updated := c.records[pos].Merge(patch)

	newID := updated.ID()
	if newID.Key() != id.Key() {
		// The patch rewrote the id: re-key, claiming the new id and
		// overwriting any record that already held it.
		if other, taken := c.byID[newID.Key()]; taken && other != pos {
			c.removeAt(other)
			pos = c.byID[id.Key()]
		}
		c.identity.Set(newID)
		delete(c.byID, id.Key())
		c.byID[newID.Key()] = pos
	}

	c.records[pos] = updated

	return updated, true
}

// UpdateMany applies the patch to every record the selector targets and
// returns the updated records.
func (c *Collection) UpdateMany(selector Selector, patch record.Record) []record.Record {

	targets := c.Select(selector)

	out := make([]record.Record, 0, len(targets))
	for _, r := range targets {
		updated, found := c.Update(r.ID(), patch)
		if found {
			out = append(out, updated)
		}
	}

	return out
}

// Delete removes the record with the given id and reports whether a removal
// occurred.
func (c *Collection) Delete(id record.Value) bool {

	pos, exists := c.byID[id.Key()]
	if !exists {
		return false
	}
	c.removeAt(pos)

	return true
}

// DeleteMany removes every record the selector targets and returns how many
// were removed.
func (c *Collection) DeleteMany(selector Selector) int {

	targets := c.Select(selector)

	count := 0
	for _, r := range targets {
		if c.Delete(r.ID()) {
			count++
		}
	}

	return count
}

// Clear empties the collection and resets the owned identity manager.
func (c *Collection) Clear() {
	c.records = []record.Record{}
	c.byID = map[string]int{}
	c.identity.Reset()
}

// removeAt splices out one position keeping insertion order. Collections are
// test fixtures, the linear reindex is fine.
func (c *Collection) removeAt(pos int) {

	delete(c.byID, c.records[pos].ID().Key())
	c.records = append(c.records[:pos], c.records[pos+1:]...)

	for i := pos; i < len(c.records); i++ {
		c.byID[c.records[i].ID().Key()] = i
	}
}
