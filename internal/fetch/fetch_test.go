package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func recordJSON(topic, ts string) string {
	return fmt.Sprintf(`{"topic": %q, "model": "mistral", "timestamp_utc": %q}`, topic, ts)
}

func writeOutputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestFetchAllDir(t *testing.T) {
	dir := writeOutputs(t, map[string]string{
		"a.json":   recordJSON("older", "2025-08-23T23:03:52Z"),
		"b.json":   recordJSON("newer", "2025-08-24T01:23:48Z"),
		"skip.txt": "not a record",
	})

	result, err := FetchAll(context.Background(), DirSource{Dir: dir})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}

	// Canonical ordering: newest first, regardless of completion order.
	if result.Records[0].Topic != "newer" {
		t.Errorf("expected newest first, got %q", result.Records[0].Topic)
	}
	if result.Records[1].Source != "a.json" {
		t.Errorf("expected source identifier on record, got %q", result.Records[1].Source)
	}
}

func TestFetchAllSkipsBadRecords(t *testing.T) {
	dir := writeOutputs(t, map[string]string{
		"good1.json": recordJSON("one", "2025-08-23T23:03:52Z"),
		"bad.json":   "{{{ not json",
		"good2.json": recordJSON("two", "2025-08-24T01:23:48Z"),
	})

	result, err := FetchAll(context.Background(), DirSource{Dir: dir})
	if err != nil {
		t.Fatalf("fetch must not fail on individual bad records: %v", err)
	}
	if len(result.Records) != 2 {
		t.Errorf("expected 2 records (3 listed, 1 bad), got %d", len(result.Records))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 collected error, got %d", len(result.Errors))
	}
}

func TestFetchAllListingFailure(t *testing.T) {
	_, err := FetchAll(context.Background(), DirSource{Dir: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected error when the listing itself is unavailable")
	}
}

func TestHTTPSourceManifest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/outputs/index.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["a.json", "b.json"]`)
	})
	mux.HandleFunc("/outputs/a.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, recordJSON("a", "2025-08-23T23:03:52Z"))
	})
	mux.HandleFunc("/outputs/b.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	result, err := FetchAll(context.Background(), NewHTTPSource(srv.URL+"/outputs"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(result.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(result.Records))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error for the 404 record, got %d", len(result.Errors))
	}
}

func TestHTTPSourceAnchorFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/outputs/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="a.json">a.json</a>
			<a href="sub/dir/b.json">b.json</a>
			<a href="index.json">index.json</a>
			<a href="../up.txt">up</a>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/outputs")
	names, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"a.json", "b.json"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestHTTPSourceListUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewHTTPSource(srv.URL).List(context.Background()); err == nil {
		t.Fatal("expected listing error")
	}
}

func TestRecordName(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"a.json", "a.json"},
		{"/outputs/a.json", "a.json"},
		{"a.json?C=M;O=A", "a.json"},
		{"index.json", ""},
		{"notes.txt", ""},
		{"../", ""},
	}
	for _, tt := range tests {
		if got := recordName(tt.href); got != tt.want {
			t.Errorf("recordName(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
