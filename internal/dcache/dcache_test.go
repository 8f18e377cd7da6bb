package dcache

import (
	"testing"
	"time"
)

func TestKeyChangesWithAnyInput(t *testing.T) {
	base := Key("llama3-8b-8192", "prompt", "source")
	if Key("llama3-70b-8192", "prompt", "source") == base {
		t.Fatalf("expected model change to alter the digest")
	}
	if Key("llama3-8b-8192", "prompt v2", "source") == base {
		t.Fatalf("expected prompt change to alter the digest")
	}
	if Key("llama3-8b-8192", "prompt", "other source") == base {
		t.Fatalf("expected source change to alter the digest")
	}
	if Key("llama3-8b-8192", "prompt", "source") != base {
		t.Fatalf("expected identical inputs to reproduce the digest")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	key := Key("m", "p", "s")

	var miss Entry
	ok, err := c.Get(key, &miss)
	if err != nil {
		t.Fatalf("Get on empty cache: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss on an empty cache")
	}

	want := Entry{Model: "m", CreatedAt: time.Now().Unix(), Output: "int x = 1;", Tokens: 42}
	if err := c.Put(key, &want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got Entry
	ok, err = c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if got.Output != want.Output || got.Model != want.Model || got.Tokens != want.Tokens {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Schema != cacheSchemaVersion {
		t.Fatalf("expected schema %d, got %d", cacheSchemaVersion, got.Schema)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var c *Cache
	key := Key("m", "p", "s")
	if err := c.Put(key, &Entry{Output: "x"}); err != nil {
		t.Fatalf("Put on nil cache: %v", err)
	}
	var out Entry
	ok, err := c.Get(key, &out)
	if err != nil {
		t.Fatalf("Get on nil cache: %v", err)
	}
	if ok {
		t.Fatalf("expected nil cache to always miss")
	}
}

func TestUsageChargeAccumulates(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	u, err := c.Charge(now, 100)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if u.Conversions != 1 || u.Tokens != 100 {
		t.Fatalf("expected 1 conversion / 100 tokens, got %d / %d", u.Conversions, u.Tokens)
	}

	u, err = c.Charge(now.Add(time.Hour), 50)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if u.Conversions != 2 || u.Tokens != 150 {
		t.Fatalf("expected 2 conversions / 150 tokens, got %d / %d", u.Conversions, u.Tokens)
	}
}

func TestUsageResetsOnNewDay(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	day1 := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	if _, err := c.Charge(day1, 500); err != nil {
		t.Fatalf("Charge: %v", err)
	}

	day2 := day1.Add(2 * time.Hour)
	u, err := c.LoadUsage(day2)
	if err != nil {
		t.Fatalf("LoadUsage: %v", err)
	}
	if u.Conversions != 0 || u.Tokens != 0 {
		t.Fatalf("expected fresh counters on a new day, got %d / %d", u.Conversions, u.Tokens)
	}
	if u.Day != "2026-08-31" {
		t.Fatalf("expected day stamp 2026-08-31, got %q", u.Day)
	}
}

func TestChargeRejectsNegativeTokens(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	if _, err := c.Charge(time.Now(), -1); err == nil {
		t.Fatalf("expected an error for a negative token count")
	}
}
