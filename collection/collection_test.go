package collection

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/fixturedb/identity"
	"github.com/fulldump/fixturedb/record"
)

func user(fields ...record.Field) record.Record {
	return record.FromFields(fields...)
}

func f(name string, value record.Value) record.Field {
	return record.Field{Name: name, Value: value}
}

func TestInsert_AssignsSequentialIds(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	a, _ := c.Insert(user(f("name", record.String("Pablo"))))
	b, _ := c.Insert(user(f("name", record.String("Sara"))))

	// Check
	AssertEqual(a.ID(), record.String("1"))
	AssertEqual(b.ID(), record.String("2"))
}

func TestInsert_IdBecomesFirstField(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	r, _ := c.Insert(user(f("name", record.String("Pablo"))))

	// Check
	AssertEqual(r.Keys()[0], "id")
}

func TestInsert_ExplicitIdIsNeverReallocated(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	c.Insert(user(f("id", record.String("2")), f("name", record.String("Sara"))))
	a, _ := c.Insert(user(f("name", record.String("Pablo"))))
	b, _ := c.Insert(user(f("name", record.String("Eva"))))

	// Check: "2" is taken, allocation skips it
	AssertEqual(a.ID(), record.String("1"))
	AssertEqual(b.ID(), record.String("3"))
}

func TestInsert_ExplicitIdOverwrites(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("id", record.String("1")), f("name", record.String("Pablo"))))

	// Run
	c.Insert(user(f("id", record.String("1")), f("name", record.String("Sara"))))

	// Check: same id, latest record wins, no duplicate
	AssertEqual(c.Count(), 1)
	r, _ := c.Find(record.String("1"))
	name, _ := r.Get("name")
	AssertEqual(name, record.String("Sara"))
}

func TestInsert_NullIdGetsAllocated(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	r, err := c.Insert(user(f("id", record.Null()), f("name", record.String("Pablo"))))

	// Check
	AssertNil(err)
	AssertEqual(r.ID(), record.String("1"))
}

func TestInsert_AllocatorMisconfiguration(t *testing.T) {

	// Setup
	manager := identity.New(identity.Config{InitialCounter: record.String("user-1")})
	c, _ := NewCollection(Config{Name: "users", Identity: manager})

	// Run
	_, err := c.Insert(user(f("name", record.String("Pablo"))))

	// Check
	AssertNotNil(err)
	AssertTrue(errors.Is(err, identity.ErrorConfiguration))
}

func TestInsertMany_KeepsOrder(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	out, err := c.InsertMany([]record.Record{
		user(f("name", record.String("Pablo"))),
		user(f("name", record.String("Sara"))),
		user(f("name", record.String("Eva"))),
	})

	// Check
	AssertNil(err)
	AssertEqual(len(out), 3)
	AssertEqual(out[0].ID(), record.String("1"))
	AssertEqual(out[1].ID(), record.String("2"))
	AssertEqual(out[2].ID(), record.String("3"))
}

func TestFind_Miss(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	_, found := c.Find(record.String("nope"))

	// Check
	AssertFalse(found)
}

func TestFindMany_OmitsMissingIds(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("name", record.String("Pablo"))))
	c.Insert(user(f("name", record.String("Sara"))))

	// Run
	out := c.FindMany(record.String("2"), record.String("99"), record.String("1"))

	// Check: id order, missing omitted, no error
	AssertEqual(len(out), 2)
	AssertEqual(out[0].ID(), record.String("2"))
	AssertEqual(out[1].ID(), record.String("1"))
}

func TestFindBy_CoerciveEquality(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("age", record.Int(1))))

	// Run: numeric 1 matches string "1"
	_, found := c.FindBy(Example{"age": "1"})

	// Check
	AssertTrue(found)
}

func TestFindBy_FirstMatchInInsertionOrder(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("status", record.String("active")), f("name", record.String("Pablo"))))
	c.Insert(user(f("status", record.String("active")), f("name", record.String("Sara"))))

	// Run
	r, found := c.FindBy(Example{"status": "active"})

	// Check
	AssertTrue(found)
	name, _ := r.Get("name")
	AssertEqual(name, record.String("Pablo"))
}

func TestFindBy_Miss(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("status", record.String("active"))))

	// Run
	_, found := c.FindBy(Example{"status": "banned"})

	// Check
	AssertFalse(found)
}

func TestSelect_Modes(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("age", record.Int(25))))
	c.Insert(user(f("age", record.Int(30))))
	c.Insert(user(f("age", record.Int(35))))

	// Run + Check: zero selector targets everything
	AssertEqual(len(c.Select(Selector{})), 3)

	// Run + Check: by ids
	byIds := c.Select(Selector{IDs: []record.Value{record.String("3"), record.String("1")}})
	AssertEqual(len(byIds), 2)
	AssertEqual(byIds[0].ID(), record.String("3"))

	// Run + Check: by example
	byExample := c.Select(Selector{Example: Example{"age": 30}})
	AssertEqual(len(byExample), 1)

	// Run + Check: by callback
	byMatch := c.Select(Selector{Match: func(r record.Record) bool {
		age, _ := r.Get("age")
		n, _ := age.Number()
		return n > 26
	}})
	AssertEqual(len(byMatch), 2)
}

func TestUpdate_RoundTrip(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	r, _ := c.Insert(user(f("name", record.String("Pablo")), f("age", record.Int(25))))

	// Run
	updated, found := c.Update(r.ID(), user(f("age", record.Int(26))))

	// Check
	AssertTrue(found)
	age, _ := updated.Get("age")
	AssertEqual(age, record.Int(26))

	stored, _ := c.Find(r.ID())
	age, _ = stored.Get("age")
	AssertEqual(age, record.Int(26))
	name, _ := stored.Get("name")
	AssertEqual(name, record.String("Pablo"))
}

func TestUpdate_Miss(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})

	// Run
	_, found := c.Update(record.String("1"), user(f("age", record.Int(26))))

	// Check
	AssertFalse(found)
}

func TestUpdate_PatchingIdRekeys(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("name", record.String("Pablo"))))

	// Run
	_, found := c.Update(record.String("1"), user(f("id", record.String("7"))))

	// Check
	AssertTrue(found)
	_, found = c.Find(record.String("1"))
	AssertFalse(found)
	r, found := c.Find(record.String("7"))
	AssertTrue(found)
	name, _ := r.Get("name")
	AssertEqual(name, record.String("Pablo"))

	// Check: "7" is claimed now
	next, _ := c.Insert(user(f("name", record.String("Sara"))))
	AssertEqual(next.ID(), record.String("2"))
}

func TestUpdateMany(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("status", record.String("active"))))
	c.Insert(user(f("status", record.String("active"))))
	c.Insert(user(f("status", record.String("inactive"))))

	// Run
	out := c.UpdateMany(
		Selector{Example: Example{"status": "active"}},
		user(f("status", record.String("banned"))),
	)

	// Check
	AssertEqual(len(out), 2)
	banned := c.Select(Selector{Example: Example{"status": "banned"}})
	AssertEqual(len(banned), 2)
}

func TestDelete_RoundTrip(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	r, _ := c.Insert(user(f("name", record.String("Pablo"))))

	// Run
	removed := c.Delete(r.ID())

	// Check
	AssertTrue(removed)
	_, found := c.Find(r.ID())
	AssertFalse(found)
	AssertFalse(c.Delete(r.ID()))
}

func TestDelete_KeepsInsertionOrder(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("name", record.String("Pablo"))))
	c.Insert(user(f("name", record.String("Sara"))))
	c.Insert(user(f("name", record.String("Eva"))))

	// Run
	c.Delete(record.String("2"))

	// Check
	all := c.All()
	AssertEqual(len(all), 2)
	AssertEqual(all[0].ID(), record.String("1"))
	AssertEqual(all[1].ID(), record.String("3"))
}

func TestDeleteMany_Count(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("status", record.String("active"))))
	c.Insert(user(f("status", record.String("inactive"))))
	c.Insert(user(f("status", record.String("active"))))

	// Run
	count := c.DeleteMany(Selector{Example: Example{"status": "active"}})

	// Check
	AssertEqual(count, 2)
	AssertEqual(c.Count(), 1)
}

func TestClear_ResetsIdentity(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("name", record.String("Pablo"))))
	c.Insert(user(f("name", record.String("Sara"))))

	// Run
	c.Clear()

	// Check
	AssertEqual(c.Count(), 0)
	r, _ := c.Insert(user(f("name", record.String("Eva"))))
	AssertEqual(r.ID(), record.String("1"))
}

func TestNewCollection_InitialData(t *testing.T) {

	// Setup + Run
	c, err := NewCollection(Config{
		Name: "users",
		InitialData: []record.Record{
			user(f("id", record.String("9")), f("name", record.String("Pablo"))),
			user(f("name", record.String("Sara"))),
		},
	})

	// Check: explicit seed ids are registered before allocation continues
	AssertNil(err)
	AssertEqual(c.Count(), 2)
	r, found := c.Find(record.String("1"))
	AssertTrue(found)
	name, _ := r.Get("name")
	AssertEqual(name, record.String("Sara"))
}

func TestAll_ReturnsCopy(t *testing.T) {

	// Setup
	c, _ := NewCollection(Config{Name: "users"})
	c.Insert(user(f("name", record.String("Pablo"))))

	// Run
	all := c.All()
	all[0] = record.Record{}

	// Check: storage untouched
	r, found := c.Find(record.String("1"))
	AssertTrue(found)
	AssertEqual(r.Len(), 2)
}
