package record

import (
	"testing"
	"time"

	. "github.com/fulldump/biff"
)

func TestValueEqual_Numbers(t *testing.T) {

	AssertTrue(Equal(Int(1), Int(1)))
	AssertTrue(Equal(Int(1), Float(1.0)))
	AssertTrue(Equal(Float(2.5), Float(2.5)))
	AssertFalse(Equal(Int(1), Int(2)))
	AssertFalse(Equal(Int(1), String("1")))
}

func TestValueEqual_Null(t *testing.T) {

	AssertTrue(Equal(Null(), Null()))
	AssertFalse(Equal(Null(), Int(0)))
	AssertFalse(Equal(Null(), String("")))
	AssertFalse(Equal(Null(), Bool(false)))
}

func TestValueEqual_Times(t *testing.T) {

	// Setup
	madrid := time.FixedZone("madrid", 2*60*60)
	a := Time(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	b := Time(time.Date(2024, 5, 1, 12, 0, 0, 0, madrid))

	// Check: same instant, different zone
	AssertTrue(Equal(a, b))
}

func TestValueEqual_Arrays(t *testing.T) {

	AssertTrue(Equal(Array(Int(1), String("a")), Array(Int(1), String("a"))))
	AssertTrue(Equal(Array(Int(1)), Array(Float(1))))
	AssertFalse(Equal(Array(Int(1)), Array(Int(1), Int(2))))
	AssertFalse(Equal(Array(Int(1)), Int(1)))
}

func TestValueCompare_Numbers(t *testing.T) {

	c, ok := Compare(Int(2), Float(2.5))
	AssertTrue(ok)
	AssertEqual(c, -1)

	c, ok = Compare(Float(3), Int(2))
	AssertTrue(ok)
	AssertEqual(c, 1)

	c, ok = Compare(Int(7), Int(7))
	AssertTrue(ok)
	AssertEqual(c, 0)
}

func TestValueCompare_Strings(t *testing.T) {

	c, ok := Compare(String("ana"), String("berta"))
	AssertTrue(ok)
	AssertEqual(c, -1)
}

func TestValueCompare_Bools(t *testing.T) {

	c, ok := Compare(Bool(false), Bool(true))
	AssertTrue(ok)
	AssertEqual(c, -1)

	c, ok = Compare(Bool(true), Bool(true))
	AssertTrue(ok)
	AssertEqual(c, 0)
}

func TestValueCompare_Times(t *testing.T) {

	// Setup
	before := Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	after := Time(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	// Check
	c, ok := Compare(before, after)
	AssertTrue(ok)
	AssertEqual(c, -1)
}

func TestValueCompare_Arrays(t *testing.T) {

	// Element by element first
	c, ok := Compare(Array(Int(1), Int(9)), Array(Int(2), Int(0)))
	AssertTrue(ok)
	AssertEqual(c, -1)

	// Shorter prefix goes first
	c, ok = Compare(Array(Int(1)), Array(Int(1), Int(2)))
	AssertTrue(ok)
	AssertEqual(c, -1)
}

func TestValueCompare_MixedKinds(t *testing.T) {

	_, ok := Compare(Int(1), String("1"))
	AssertFalse(ok)

	_, ok = Compare(Null(), Null())
	AssertFalse(ok)

	_, ok = Compare(Null(), Int(0))
	AssertFalse(ok)

	_, ok = Compare(Array(Int(1)), Array(String("1")))
	AssertFalse(ok)
}

func TestValueText(t *testing.T) {

	AssertEqual(Int(1).Text(), "1")
	AssertEqual(String("1").Text(), "1")
	AssertEqual(Float(1.5).Text(), "1.5")
	AssertEqual(Bool(true).Text(), "true")
	AssertEqual(Null().Text(), "null")
	AssertEqual(Array(Int(1), String("a")).Text(), "1,a")

	date := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	AssertEqual(Time(date).Text(), "2024-05-01T10:30:00Z")
}

func TestValueKey(t *testing.T) {

	// Int and integral float collapse to the same identifier
	AssertEqual(Int(2).Key(), Float(2).Key())
	AssertFalse(Int(2).Key() == Float(2.5).Key())

	// Same text, different kind, different key
	AssertFalse(Int(2).Key() == String("2").Key())
	AssertFalse(Bool(true).Key() == String("true").Key())

	// Same instant, different zone, same key
	madrid := time.FixedZone("madrid", 2*60*60)
	a := Time(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	b := Time(time.Date(2024, 5, 1, 12, 0, 0, 0, madrid))
	AssertEqual(a.Key(), b.Key())
}

func TestValueZeroAndNull(t *testing.T) {

	zero := Value{}
	AssertTrue(zero.IsZero())
	AssertFalse(zero.IsNull())

	null := Null()
	AssertFalse(null.IsZero())
	AssertTrue(null.IsNull())
}

func TestValueAccessors(t *testing.T) {

	i, ok := Int(42).AsInt64()
	AssertTrue(ok)
	AssertEqual(i, int64(42))

	_, ok = Int(42).AsFloat64()
	AssertFalse(ok)

	n, ok := Int(42).Number()
	AssertTrue(ok)
	AssertEqual(n, 42.0)

	n, ok = Float(2.5).Number()
	AssertTrue(ok)
	AssertEqual(n, 2.5)

	_, ok = String("42").Number()
	AssertFalse(ok)

	items, ok := Array(Int(1), Int(2)).AsArray()
	AssertTrue(ok)
	AssertEqual(len(items), 2)
}
