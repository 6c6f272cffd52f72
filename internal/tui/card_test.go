package tui

import (
	"strings"
	"testing"
	"time"

	"explaindeck/internal/article"
)

func testRecord() *article.Record {
	ts, _ := time.Parse(time.RFC3339, "2025-08-24T01:23:48Z")
	return &article.Record{
		Topic:        "topic fallback",
		Model:        "mistral",
		Source:       "a.json",
		TimestampUTC: ts,
		Parsed: &article.Parsed{
			Title:   "Mastering pathlib",
			Summary: "Modern filesystem paths.",
			Caveats: []string{"x"},
		},
	}
}

func TestRenderCardOmitsEmptySections(t *testing.T) {
	theme := NewTheme(true)
	rec := testRecord()

	// keyPoints is empty, caveats has one entry: the caveats section
	// renders and the key-points section is omitted.
	out := renderCard(theme, rec, 80, 40, 0)
	if !strings.Contains(out, "Caveats") {
		t.Error("expected caveats section")
	}
	if strings.Contains(out, "Key Points") {
		t.Error("key-points section must be omitted when empty")
	}
	if strings.Contains(out, "Code Examples") {
		t.Error("code section must be omitted when empty")
	}
	if strings.Contains(out, "Version Notes") {
		t.Error("version-notes section must be omitted when empty")
	}
}

func TestRenderCardSections(t *testing.T) {
	theme := NewTheme(true)
	rec := testRecord()
	rec.Parsed.KeyPoints = []string{"point one"}
	rec.Parsed.VersionNotes = []string{"note one"}
	rec.Parsed.CodeExamples = []article.CodeExample{
		{Language: "python", Code: "import pathlib"},
		{Code: "bare example"},
	}

	out := renderCard(theme, rec, 80, 60, 0)
	for _, want := range []string{
		"Mastering pathlib",
		"Modern filesystem paths.",
		"Key Points", "point one",
		"Code Examples", "python", "import pathlib", "bare example",
		"Version Notes", "note one",
		"Caveats",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q", want)
		}
	}
}

func TestRenderCardTitleFallback(t *testing.T) {
	theme := NewTheme(true)
	rec := testRecord()
	rec.Parsed = nil

	out := renderCard(theme, rec, 80, 20, 0)
	if !strings.Contains(out, "topic fallback") {
		t.Error("expected topic as fallback title")
	}
}

func TestRenderCardNil(t *testing.T) {
	theme := NewTheme(true)
	out := renderCard(theme, nil, 40, 10, 0)
	if !strings.Contains(out, "Select an article") {
		t.Error("expected placeholder for nil record")
	}
}

func TestCardFooter(t *testing.T) {
	rec := testRecord()
	footer := cardFooter(rec)
	if !strings.Contains(footer, "mistral") || !strings.Contains(footer, "a.json") {
		t.Errorf("footer = %q", footer)
	}

	empty := &article.Record{}
	if cardFooter(empty) != "" {
		t.Errorf("footer for empty record = %q", cardFooter(empty))
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
	if wrapText("", 10) != "" {
		t.Error("empty input should wrap to empty")
	}
}
