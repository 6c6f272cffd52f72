package article

import (
	"encoding/json"
	"time"
)

// Encode renders a record back into the wire format used for the
// output files, indented for readability. Decode(Encode(r)) yields an
// equivalent record.
func Encode(r Record) ([]byte, error) {
	w := wireRecord{
		Model:          r.Model,
		TopicIndex:     r.TopicIndex,
		Topic:          r.Topic,
		Prompt:         r.Prompt,
		ResponseRaw:    r.RawResponse,
		ResponseParsed: r.Parsed,
	}
	if !r.TimestampUTC.IsZero() {
		w.TimestampUTC = r.TimestampUTC.UTC().Format(time.RFC3339)
	}
	return json.MarshalIndent(w, "", "  ")
}
