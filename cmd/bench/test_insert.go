package main

import (
	"math/rand"
	"time"

	"github.com/fulldump/fixturedb/database"
	"github.com/fulldump/fixturedb/record"
)

func TestInsert(c Config) {

	db := database.NewDatabase(nil)
	col, err := db.CreateCollection(c.Collection)
	if err != nil {
		out.Fatalf("create collection: %s", err.Error())
	}

	r := rand.New(rand.NewSource(c.Seed))
	records := make([]record.Record, c.N)
	for i := range records {
		records[i] = randomUser(r)
	}

	t0 := time.Now()
	_, err = col.InsertMany(records)
	if err != nil {
		out.Fatalf("insert many: %s", err.Error())
	}
	report("insert", c.N, time.Since(t0))
}
