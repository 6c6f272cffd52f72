package store

import (
	"path/filepath"
	"testing"
	"time"

	"explaindeck/internal/article"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []article.Record {
	parse := func(s string) time.Time {
		ts, _ := time.Parse(time.RFC3339, s)
		return ts
	}
	return []article.Record{
		{
			Source:       "a.json",
			Topic:        "pattern matching",
			Model:        "mistral",
			TimestampUTC: parse("2025-08-23T23:03:52Z"),
			Parsed:       &article.Parsed{Title: "Pattern Matching", Summary: "match/case"},
		},
		{
			Source:       "b.json",
			Topic:        "dataclasses",
			Model:        "mistral",
			TimestampUTC: parse("2025-08-24T01:23:48Z"),
		},
	}
}

func TestReplaceAllAndAll(t *testing.T) {
	s := testStore(t)

	if err := s.ReplaceAll(sampleRecords()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Newest first
	if got[0].Source != "b.json" {
		t.Errorf("expected b.json first, got %s", got[0].Source)
	}
	if got[1].Parsed == nil || got[1].Parsed.Title != "Pattern Matching" {
		t.Error("parsed payload did not survive the round trip")
	}
	if got[1].SearchText == "" {
		t.Error("search text must be re-derived on read")
	}
}

func TestReplaceAllReplaces(t *testing.T) {
	s := testStore(t)

	if err := s.ReplaceAll(sampleRecords()); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := s.ReplaceAll(sampleRecords()[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected full replacement to leave 1 record, got %d", n)
	}
}

func TestReplaceAllEmpty(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceAll(sampleRecords()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := s.ReplaceAll(nil); err != nil {
		t.Fatalf("empty replace: %v", err)
	}
	n, _ := s.Count()
	if n != 0 {
		t.Errorf("expected empty set, got %d", n)
	}
}

func TestDarkModePersistence(t *testing.T) {
	s := testStore(t)

	if !s.DarkMode() {
		t.Error("expected dark mode by default")
	}
	if err := s.SetDarkMode(false); err != nil {
		t.Fatalf("set: %v", err)
	}
	if s.DarkMode() {
		t.Error("expected light mode after toggle")
	}
	if err := s.SetDarkMode(true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !s.DarkMode() {
		t.Error("expected dark mode after second toggle")
	}
}

func TestLastLoad(t *testing.T) {
	s := testStore(t)

	if !s.LastLoad().IsZero() {
		t.Error("expected zero last-load before any replace")
	}
	if err := s.ReplaceAll(sampleRecords()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if s.LastLoad().IsZero() {
		t.Error("expected last-load to be recorded")
	}
}
