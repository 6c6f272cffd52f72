package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testServer(t *testing.T, gen GenerateFunc) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		"20250823T230352Z__000000000001_aaaaaaaaaa.json",
		"20250824T012348Z__000000000002_bbbbbbbbbb.json",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(`{"topic":"t"}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	srv := httptest.NewServer(New(dir, gen).Router())
	t.Cleanup(srv.Close)
	return srv, dir
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestManifestNewestFirst(t *testing.T) {
	srv, _ := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/outputs/index.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
	if !strings.HasPrefix(names[0], "20250824") {
		t.Errorf("expected newest first, got %v", names)
	}
}

func TestServeRecord(t *testing.T) {
	srv, _ := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/outputs/20250823T230352Z__000000000001_aaaaaaaaaa.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestServeRecordRejectsTraversal(t *testing.T) {
	srv, _ := testServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/outputs/..%2fsecret.json", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Error("expected traversal attempt to be rejected")
	}
}

func TestGenerateSuccess(t *testing.T) {
	srv, _ := testServer(t, func(ctx context.Context) (string, error) {
		return "new.json", nil
	})

	resp, err := http.Post(srv.URL+"/api/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.File != "new.json" {
		t.Errorf("response = %+v", out)
	}
}

func TestGenerateFailure(t *testing.T) {
	srv, _ := testServer(t, func(ctx context.Context) (string, error) {
		return "", errors.New("model unavailable")
	})

	resp, err := http.Post(srv.URL+"/api/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Success {
		t.Error("expected success=false")
	}
	if out.Error != "model unavailable" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestTriggerGenerate(t *testing.T) {
	okSrv, _ := testServer(t, func(ctx context.Context) (string, error) { return "x.json", nil })
	if err := TriggerGenerate(context.Background(), nil, okSrv.URL+"/api/generate"); err != nil {
		t.Errorf("expected success, got %v", err)
	}

	failSrv, _ := testServer(t, func(ctx context.Context) (string, error) { return "", errors.New("nope") })
	err := TriggerGenerate(context.Background(), nil, failSrv.URL+"/api/generate")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should surface the server message, got %v", err)
	}

	if err := TriggerGenerate(context.Background(), nil, "http://127.0.0.1:1/api/generate"); err == nil {
		t.Error("expected transport error for unreachable endpoint")
	}
}

func TestManifestMissingDir(t *testing.T) {
	srv := httptest.NewServer(New(filepath.Join(t.TempDir(), "missing"), nil).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/outputs/index.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
