// Package server implements the standalone asset server: a static file
// responder over the assets directory. It exists so a design tool plugin
// sandboxed away from the filesystem can still resolve catalog entries and
// asset bytes over HTTP.
//
// Endpoints:
//
//	GET /catalog.json  — freshly scanned asset catalog
//	GET /bytes/<key>   — raw bytes of one catalog entry (404 for unknown keys)
//	GET /healthz       — liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/framelate/framelate/catalog"
)

// Server serves one assets directory.
type Server struct {
	// Dir is the assets directory (assets/<locale>/...).
	Dir string
	// Addr is the listen address, e.g. ":8787".
	Addr string
	// OnLog receives request log lines; nil disables logging.
	OnLog func(format string, args ...any)
}

func (s *Server) log(format string, args ...any) {
	if s.OnLog != nil {
		s.OnLog(format, args...)
	}
}

// Handler returns the HTTP handler for the server's endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /catalog.json", s.handleCatalog)
	mux.HandleFunc("GET /bytes/", s.handleBytes)
	return mux
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	res, err := catalog.Scan(s.Dir)
	if err != nil {
		s.log("catalog scan failed: %v", err)
		http.Error(w, "catalog scan failed", http.StatusInternalServerError)
		return
	}
	data, err := res.Catalog.Marshal()
	if err != nil {
		http.Error(w, "catalog encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
	s.log("catalog.json — %d entries", len(res.Catalog.Entries))
}

func (s *Server) handleBytes(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/bytes/")
	if key == "" || strings.Contains(key, "..") {
		http.NotFound(w, r)
		return
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(key)), ".")
	if !catalog.AllowedExtension(ext) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
		} else {
			http.Error(w, "read failed", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
	s.log("bytes/%s — %d bytes", key, len(data))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log("asset server listening on %s (dir %s)", s.Addr, s.Dir)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
