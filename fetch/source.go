package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DirSource reads asset bytes from a local assets directory. Each request
// is served on its own goroutine and answered through the deliver callback
// (normally Orchestrator.HandleResponse).
type DirSource struct {
	dir     string
	deliver func(Response)
}

// NewDirSource creates a directory-backed source rooted at dir.
func NewDirSource(dir string, deliver func(Response)) *DirSource {
	return &DirSource{dir: dir, deliver: deliver}
}

// Send reads the file named by the asset key relative to the source
// directory. Keys escaping the directory resolve to a failed response.
func (s *DirSource) Send(req Request) {
	go func() {
		rel := filepath.FromSlash(req.FileKey)
		if rel == "" || filepath.IsAbs(rel) || strings.Contains(req.FileKey, "..") {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, Error: "invalid asset key"})
			return
		}
		data, err := os.ReadFile(filepath.Join(s.dir, rel))
		if err != nil {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, Error: err.Error()})
			return
		}
		s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, OK: true, Bytes: data})
	}()
}

// HTTPSource fetches asset bytes from a framelate asset server
// (GET <base>/bytes/<key>).
type HTTPSource struct {
	base    string
	client  *http.Client
	deliver func(Response)
}

// NewHTTPSource creates an HTTP-backed source for the given server base URL.
func NewHTTPSource(base string, deliver func(Response)) *HTTPSource {
	return &HTTPSource{
		base:    strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: Timeout},
		deliver: deliver,
	}
}

// Send issues the GET on its own goroutine and delivers the outcome.
func (s *HTTPSource) Send(req Request) {
	go func() {
		u := s.base + "/bytes/" + escapeKey(req.FileKey)
		resp, err := s.client.Get(u)
		if err != nil {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, Error: err.Error()})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID,
				Error: fmt.Sprintf("server returned %s", resp.Status)})
			return
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, Error: err.Error()})
			return
		}
		s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, OK: true, Bytes: data})
	}()
}

// escapeKey escapes each path segment of an asset key, keeping the
// segment separators intact.
func escapeKey(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}
