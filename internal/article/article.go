package article

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is one generated explainer article, decoded from a single
// JSON document in the outputs directory. Records are immutable after
// Decode; a reload replaces the whole set.
type Record struct {
	Topic        string
	Model        string
	TopicIndex   int
	Prompt       string
	TimestampUTC time.Time
	RawResponse  string
	Parsed       *Parsed

	// Source is the identifier the record was fetched from (filename),
	// set by the fetcher.
	Source string

	// SearchText is the lowercase concatenation of the record's textual
	// fields, derived once at decode time.
	SearchText string
}

// Parsed is the structured payload the model was asked to produce.
// Every field is optional in the wire format; absent sequences decode
// to empty slices.
type Parsed struct {
	Title        string        `json:"title"`
	Summary      string        `json:"summary"`
	KeyPoints    []string      `json:"key_points"`
	CodeExamples []CodeExample `json:"code_examples"`
	VersionNotes []string      `json:"version_notes"`
	Caveats      []string      `json:"caveats"`
}

// CodeExample holds one code block with an optional language label.
type CodeExample struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// UnmarshalJSON accepts either the structured form
// {"language": ..., "code": ...} or a bare string holding the code.
func (c *CodeExample) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		*c = CodeExample{Code: code}
		return nil
	}

	type alias CodeExample
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = CodeExample(a)
	return nil
}

// wireRecord mirrors the on-disk format written by the generator.
type wireRecord struct {
	TimestampUTC   string  `json:"timestamp_utc"`
	Model          string  `json:"model"`
	TopicIndex     int     `json:"topic_index"`
	Topic          string  `json:"topic"`
	Prompt         string  `json:"prompt"`
	ResponseRaw    string  `json:"response_raw"`
	ResponseParsed *Parsed `json:"response_parsed"`
}

// Decode parses one JSON document into a Record. Malformed JSON is an
// error (the caller skips the resource); a missing or unparseable
// timestamp is tolerated and left as the zero time so the record still
// renders and sorts last.
func Decode(data []byte, source string) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, fmt.Errorf("decoding %s: %w", source, err)
	}

	rec := Record{
		Topic:        w.Topic,
		Model:        w.Model,
		TopicIndex:   w.TopicIndex,
		Prompt:       w.Prompt,
		RawResponse:  w.ResponseRaw,
		Parsed:       w.ResponseParsed,
		Source:       source,
		TimestampUTC: parseTimestamp(w.TimestampUTC),
	}
	rec.SearchText = deriveSearchText(rec)
	return rec, nil
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// DisplayTitle returns the parsed title, falling back to the topic.
func (r Record) DisplayTitle() string {
	if r.Parsed != nil && r.Parsed.Title != "" {
		return r.Parsed.Title
	}
	return r.Topic
}

// Summary returns the parsed summary or "".
func (r Record) Summary() string {
	if r.Parsed == nil {
		return ""
	}
	return r.Parsed.Summary
}

func deriveSearchText(r Record) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(r.Topic)
	if p := r.Parsed; p != nil {
		add(p.Title)
		add(p.Summary)
		for _, kp := range p.KeyPoints {
			add(kp)
		}
		for _, ce := range p.CodeExamples {
			add(ce.Language)
			add(ce.Code)
		}
		for _, vn := range p.VersionNotes {
			add(vn)
		}
		for _, cv := range p.Caveats {
			add(cv)
		}
	}

	return strings.ToLower(strings.Join(parts, " "))
}
