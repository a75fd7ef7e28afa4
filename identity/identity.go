// Package identity hands out collision-free record identifiers. A Manager
// walks an id domain with a successor function, skipping every value already
// claimed, so externally supplied ids and generated ids never collide.
package identity

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/fulldump/fixturedb/record"
)

// Generator maps an identifier to its successor in the id domain.
type Generator func(id record.Value) (record.Value, error)

var ErrorConfiguration = errors.New("id generation misconfigured")

// DefaultGenerator increments integers and numeric strings ("41" -> "42").
// Any other value needs a custom generator.
func DefaultGenerator(id record.Value) (record.Value, error) {

	if i, ok := id.AsInt64(); ok {
		return record.Int(i + 1), nil
	}
	if f, ok := id.AsFloat64(); ok {
		return record.Float(f + 1), nil
	}
	if s, ok := id.AsString(); ok {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return record.String(strconv.FormatInt(i+1, 10)), nil
		}
	}

	return record.Value{}, fmt.Errorf("%w: can not increment id '%s', provide a custom generator", ErrorConfiguration, id.Text())
}

// UUIDGenerator returns a generator for a random uuid domain. It ignores the
// predecessor completely.
func UUIDGenerator() Generator {
	return func(id record.Value) (record.Value, error) {
		return record.String(uuid.NewString()), nil
	}
}

type Config struct {
	InitialCounter record.Value
	InitialUsedIDs []record.Value
	Generator      Generator
}

// Manager tracks the next candidate id and the set of ids already claimed.
type Manager struct {
	counter        record.Value
	initialCounter record.Value
	initialUsed    []record.Value
	used           map[string]bool
	generator      Generator
}

// New builds a manager. The zero Config yields the numeric-string domain
// starting at "1", matching the default collection id style.
func New(config Config) *Manager {

	counter := config.InitialCounter
	if counter.IsZero() {
		counter = record.String("1")
	}

	generator := config.Generator
	if generator == nil {
		generator = DefaultGenerator
	}

	m := &Manager{
		counter:        counter,
		initialCounter: counter,
		initialUsed:    config.InitialUsedIDs,
		used:           map[string]bool{},
		generator:      generator,
	}
	for _, id := range config.InitialUsedIDs {
		m.Set(id)
	}

	return m
}

// NewInt is a shorthand for a plain integer domain starting at `start`.
func NewInt(start int64) *Manager {
	return New(Config{InitialCounter: record.Int(start)})
}

// Get returns the first unclaimed id at or after the counter. It is purely
// advisory and mutates nothing: two consecutive calls return the same value.
func (m *Manager) Get() (record.Value, error) {

	id := m.counter
	for m.used[id.Key()] {
		next, err := m.generator(id)
		if err != nil {
			return record.Value{}, err
		}
		id = next
	}

	return id, nil
}

// Set claims an externally supplied id so it is never allocated. Claiming an
// already claimed id is a no-op, which keeps fixture reloads idempotent.
func (m *Manager) Set(id record.Value) {
	m.used[id.Key()] = true
}

// Fetch claims and returns the next free id, then advances the counter past
// it. This is the only operation that allocates.
func (m *Manager) Fetch() (record.Value, error) {

	id, err := m.Get()
	if err != nil {
		return record.Value{}, err
	}

	next, err := m.generator(id)
	if err != nil {
		return record.Value{}, err
	}

	m.Set(id)
	m.counter = next

	return id, nil
}

// Reset forgets every claimed id and rewinds the counter to its initial
// value. Initial used ids from the Config are claimed again.
func (m *Manager) Reset() {
	m.counter = m.initialCounter
	m.used = map[string]bool{}
	for _, id := range m.initialUsed {
		m.Set(id)
	}
}
