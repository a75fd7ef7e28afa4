package main

import (
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test       string `usage:"name of the test: ALL | INSERT | QUERY"`
	Collection string `usage:"collection name"`
	N          int    `usage:"number of records"`
	Queries    int    `usage:"number of queries"`
	Limit      int    `usage:"page size"`
	Seed       int64  `usage:"random seed"`
}

func main() {

	c := Config{
		Test:       "ALL",
		Collection: "users",
		N:          100_000,
		Queries:    1_000,
		Limit:      50,
		Seed:       42,
	}
	goconfig.Read(&c)

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestInsert(c)
		TestQuery(c)
	case "INSERT":
		TestInsert(c)
	case "QUERY":
		TestQuery(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}
}
