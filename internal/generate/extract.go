package generate

import (
	"bytes"
	"encoding/json"
	"regexp"

	"explaindeck/internal/article"
)

var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)

// ExtractParsed pulls the structured payload out of raw model output.
// It tries the whole string first, then the first {...} block, since
// models often wrap JSON in prose or code fences. Returns nil when
// nothing parses.
func ExtractParsed(raw string) *article.Parsed {
	if p := tryParse([]byte(raw)); p != nil {
		return p
	}
	if m := jsonBlockRe.FindString(raw); m != "" {
		return tryParse([]byte(m))
	}
	return nil
}

func tryParse(data []byte) *article.Parsed {
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte("{")) {
		return nil
	}
	var p article.Parsed
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}
