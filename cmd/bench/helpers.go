package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fulldump/fixturedb/database"
	"github.com/fulldump/fixturedb/record"
)

var out = log.New(os.Stdout, "bench: ", log.LstdFlags)

var statuses = []string{"active", "inactive", "trial", "banned"}

func randomUser(r *rand.Rand) record.Record {
	return record.New().
		Set("token", record.String(uuid.NewString())).
		Set("age", record.Int(int64(18+r.Intn(60)))).
		Set("status", record.String(statuses[r.Intn(len(statuses))])).
		Set("createdAt", record.Time(time.Unix(r.Int63n(1_700_000_000), 0)))
}

func seedDatabase(c Config) *database.Database {

	db := database.NewDatabase(nil)
	col, err := db.CreateCollection(c.Collection)
	if err != nil {
		out.Fatalf("create collection: %s", err.Error())
	}

	r := rand.New(rand.NewSource(c.Seed))
	for i := 0; i < c.N; i++ {
		_, err := col.Insert(randomUser(r))
		if err != nil {
			out.Fatalf("insert: %s", err.Error())
		}
	}

	return db
}

func report(name string, n int, elapsed time.Duration) {
	rate := float64(n) / elapsed.Seconds()
	out.Printf("%s: %d ops in %s (%.0f ops/s)", name, n, elapsed, rate)
}
