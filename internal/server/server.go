package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// GenerateFunc produces one new record and returns its filename.
type GenerateFunc func(ctx context.Context) (string, error)

// Server exposes the records directory and the regenerate endpoint.
type Server struct {
	outputsDir string
	generate   GenerateFunc

	// serializes generations; concurrent POSTs queue up rather than
	// racing on the topic cursor
	genMu sync.Mutex
}

func New(outputsDir string, generate GenerateFunc) *Server {
	return &Server{outputsDir: outputsDir, generate: generate}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/generate", s.handleGenerate)
	})

	r.Get("/outputs/index.json", s.handleManifest)
	r.Get("/outputs/*", s.handleRecord)

	return r
}

type generateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	File    string `json:"file,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, req *http.Request) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	name, err := s.generate(req.Context())
	if err != nil {
		log.Error("generation failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, generateResponse{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Success: true, File: name})
}

// handleManifest lists the record filenames as a JSON array, newest
// first. Filenames start with a compact timestamp, so reverse
// lexicographic order is newest-first.
func (s *Server) handleManifest(w http.ResponseWriter, req *http.Request) {
	entries, err := os.ReadDir(s.outputsDir)
	if err != nil {
		http.Error(w, "outputs directory unavailable", http.StatusInternalServerError)
		return
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleRecord(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "*")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		http.NotFound(w, req)
		return
	}
	http.ServeFile(w, req, filepath.Join(s.outputsDir, name))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Info("serving", "addr", addr, "outputs", s.outputsDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
