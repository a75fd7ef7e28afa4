package main

import (
	"math/rand"
	"time"

	"github.com/fulldump/fixturedb/query"
	"github.com/fulldump/fixturedb/record"
)

// TestQuery pages through the active users with keyset pagination, a fresh
// random age window per query.
func TestQuery(c Config) {

	db := seedDatabase(c)

	r := rand.New(rand.NewSource(c.Seed + 1))

	t0 := time.Now()
	pages := 0
	for i := 0; i < c.Queries; i++ {

		lo := int64(18 + r.Intn(40))
		options := query.Options{
			Where: query.Clause{Fields: map[string]query.Op{
				"status": {Eq: record.String("active")},
				"age":    {Between: &[2]record.Value{record.Int(lo), record.Int(lo + 10)}},
			}},
			OrderBy: []query.Order{
				{Field: "age", Direction: query.Asc},
				{Field: "token", Direction: query.Asc},
			},
			Limit: query.Limit(c.Limit),
		}

		for {
			result, err := db.Query(c.Collection, options)
			if err != nil {
				out.Fatalf("query: %s", err.Error())
			}
			pages++
			if len(result.Records) == 0 || len(result.Records) < c.Limit {
				break
			}
			last := result.Records[len(result.Records)-1]
			age, _ := last.Get("age")
			token, _ := last.Get("token")
			options.Cursor = query.Cursor{"age": age, "token": token}
		}
	}
	report("query", pages, time.Since(t0))
}
