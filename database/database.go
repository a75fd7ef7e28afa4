// Package database is the registry of named collections for one mock
// session: creation and lookup, bulk dump/load of fixture data, and a reset
// that wipes everything between tests. Purely in-memory, no files, no
// goroutines.
package database

import (
	"errors"
	"fmt"

	"github.com/fulldump/fixturedb/collection"
	"github.com/fulldump/fixturedb/identity"
	"github.com/fulldump/fixturedb/query"
	"github.com/fulldump/fixturedb/record"
	"github.com/fulldump/fixturedb/utils"
)

var ErrorCollectionAlreadyExists = errors.New("collection already exists")
var ErrorCollectionNotFound = errors.New("collection not found")

type Config struct {
	// Identity pins a manager to a collection name, so tests can fix the id
	// domain per collection or share one manager across several.
	Identity map[string]*identity.Manager

	// DefaultIdentity builds the manager for collections not listed above.
	// Nil falls back to the collection package default.
	DefaultIdentity func() *identity.Manager
}

type Database struct {
	config      *Config
	collections map[string]*collection.Collection
}

func NewDatabase(config *Config) *Database {
	if config == nil {
		config = &Config{}
	}
	return &Database{
		config:      config,
		collections: map[string]*collection.Collection{},
	}
}

func (db *Database) identityFor(name string) *identity.Manager {
	if manager, pinned := db.config.Identity[name]; pinned {
		return manager
	}
	if db.config.DefaultIdentity != nil {
		return db.config.DefaultIdentity()
	}
	return nil
}

func (db *Database) CreateCollection(name string, initialData ...record.Record) (*collection.Collection, error) {

	_, exists := db.collections[name]
	if exists {
		return nil, fmt.Errorf("%w: '%s'", ErrorCollectionAlreadyExists, name)
	}

	col, err := collection.NewCollection(collection.Config{
		Name:        name,
		Identity:    db.identityFor(name),
		InitialData: initialData,
	})
	if err != nil {
		return nil, err
	}

	db.collections[name] = col

	return col, nil
}

func (db *Database) Collection(name string) (*collection.Collection, error) {

	col, exists := db.collections[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrorCollectionNotFound, name)
	}

	return col, nil
}

func (db *Database) DropCollection(name string) error {

	_, exists := db.collections[name]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrorCollectionNotFound, name)
	}

	delete(db.collections, name)

	return nil
}

type CollectionInfo struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// ListCollections returns name and record count per collection, sorted by
// name.
func (db *Database) ListCollections() []CollectionInfo {

	result := []CollectionInfo{}
	for _, name := range utils.GetKeys(db.collections) {
		result = append(result, CollectionInfo{
			Name:  name,
			Total: db.collections[name].Count(),
		})
	}

	return result
}

// Query runs the engine over one collection's records.
func (db *Database) Query(name string, options query.Options) (query.Result, error) {

	col, err := db.Collection(name)
	if err != nil {
		return query.Result{}, err
	}

	return query.Find(col.All(), options), nil
}

// Dump returns every collection's records in insertion order. A record is
// its own key-value representation, there is no envelope.
func (db *Database) Dump() map[string][]record.Record {

	out := map[string][]record.Record{}
	for _, name := range utils.GetKeys(db.collections) {
		out[name] = db.collections[name].All()
	}

	return out
}

// Load replaces the database contents with the given fixture data. Explicit
// ids are registered with each collection's identity manager, so loading the
// same dump twice is idempotent.
func (db *Database) Load(data map[string][]record.Record) error {

	db.collections = map[string]*collection.Collection{}

	// Pinned managers carry counter and used-set state from the previous
	// contents; a load starts a fresh fixture set.
	for _, manager := range db.config.Identity {
		manager.Reset()
	}

	for _, name := range utils.GetKeys(data) {
		_, err := db.CreateCollection(name, data[name]...)
		if err != nil {
			return fmt.Errorf("load collection '%s': %w", name, err)
		}
	}

	return nil
}

// EmptyData clears every collection, resetting its identity manager, but
// keeps the collections themselves. This is the between-tests reset.
func (db *Database) EmptyData() {
	for _, col := range db.collections {
		col.Clear()
	}
}
