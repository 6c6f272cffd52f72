package index

import (
	"sort"
	"strings"

	"explaindeck/internal/article"
)

// Sort selects the timestamp ordering of the visible list.
type Sort int

const (
	Newest Sort = iota
	Oldest
)

func (s Sort) String() string {
	if s == Oldest {
		return "oldest"
	}
	return "newest"
}

// Toggle flips between the two orderings.
func (s Sort) Toggle() Sort {
	if s == Newest {
		return Oldest
	}
	return Newest
}

// Index holds the authoritative set of loaded records for the session.
// Load replaces the whole set; records are never mutated in place.
type Index struct {
	records []article.Record
}

func New(records []article.Record) *Index {
	return &Index{records: records}
}

// Load replaces the full record set.
func (ix *Index) Load(records []article.Record) {
	ix.records = records
}

// All returns the full set in load order.
func (ix *Index) All() []article.Record {
	return ix.records
}

func (ix *Index) Len() int {
	return len(ix.records)
}

// Visible derives the filtered, sorted subset for rendering. Filtering
// is a case-insensitive substring match against each record's derived
// search text; an empty or whitespace-only query selects everything.
// The sort is stable so records with equal timestamps keep their
// relative order across re-renders.
func Visible(records []article.Record, query string, s Sort) []article.Record {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]article.Record, 0, len(records))
	for _, rec := range records {
		if q == "" || strings.Contains(rec.SearchText, q) {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if s == Oldest {
			return out[i].TimestampUTC.Before(out[j].TimestampUTC)
		}
		return out[i].TimestampUTC.After(out[j].TimestampUTC)
	})

	return out
}

// Visible derives the visible subset from the index's current set.
func (ix *Index) Visible(query string, s Sort) []article.Record {
	return Visible(ix.records, query, s)
}
