package fetch

import (
	"context"
	"sync"
	"testing"
	"time"
)

// memStore hands out simple sequential handles.
type memStore struct {
	mu      sync.Mutex
	handles map[string]string
	n       int
}

func newMemStore() *memStore {
	return &memStore{handles: make(map[string]string)}
}

func (s *memStore) CreateImage(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(data)
	if h, ok := s.handles[key]; ok {
		return h
	}
	s.n++
	h := "handle-" + key
	s.handles[key] = h
	return h
}

// fakeSource answers requests from a canned byte map and counts sends.
type fakeSource struct {
	mu      sync.Mutex
	sent    []string
	bytes   map[string][]byte
	fail    map[string]bool
	silent  bool // never answer
	deliver func(Response)
}

func (s *fakeSource) Send(req Request) {
	s.mu.Lock()
	s.sent = append(s.sent, req.FileKey)
	s.mu.Unlock()
	if s.silent {
		return
	}
	go func() {
		if s.fail[req.FileKey] {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, Error: "boom"})
			return
		}
		data, ok := s.bytes[req.FileKey]
		if !ok {
			s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, Error: "not found"})
			return
		}
		s.deliver(Response{Type: TypeResponse, RequestID: req.RequestID, OK: true, Bytes: data})
	}()
}

func (s *fakeSource) sendCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newTestOrchestrator(src *fakeSource) *Orchestrator {
	o := New(src, newMemStore())
	src.deliver = o.HandleResponse
	return o
}

func TestFetchSuccess(t *testing.T) {
	src := &fakeSource{bytes: map[string][]byte{"es/hero.png": []byte("pixels")}}
	o := newTestOrchestrator(src)

	handle, ok := o.Fetch(context.Background(), "es/hero.png")
	if !ok {
		t.Fatal("Fetch should succeed")
	}
	if handle != "handle-pixels" {
		t.Fatalf("handle = %q", handle)
	}
	if n := o.PendingCount(); n != 0 {
		t.Fatalf("pending after resolve = %d, want 0", n)
	}
}

func TestFetchCachesByAssetKey(t *testing.T) {
	src := &fakeSource{bytes: map[string][]byte{"es/hero.png": []byte("pixels")}}
	o := newTestOrchestrator(src)

	h1, ok1 := o.Fetch(context.Background(), "es/hero.png")
	h2, ok2 := o.Fetch(context.Background(), "es/hero.png")
	if !ok1 || !ok2 || h1 != h2 {
		t.Fatalf("cached fetch mismatch: %q/%v vs %q/%v", h1, ok1, h2, ok2)
	}
	if n := src.sendCount(); n != 1 {
		t.Fatalf("requests sent = %d, want exactly 1", n)
	}
}

func TestFetchFailureIsSoft(t *testing.T) {
	src := &fakeSource{fail: map[string]bool{"es/hero.png": true}}
	o := newTestOrchestrator(src)

	if _, ok := o.Fetch(context.Background(), "es/hero.png"); ok {
		t.Fatal("failed response should resolve to no data")
	}
	// Failures are not cached; a later fetch asks again.
	o.Fetch(context.Background(), "es/hero.png")
	if n := src.sendCount(); n != 2 {
		t.Fatalf("requests sent = %d, want 2", n)
	}
}

func TestFetchEmptyPayloadIsFailure(t *testing.T) {
	src := &fakeSource{bytes: map[string][]byte{"es/hero.png": {}}}
	o := newTestOrchestrator(src)

	if _, ok := o.Fetch(context.Background(), "es/hero.png"); ok {
		t.Fatal("empty payload should resolve to no data")
	}
}

func TestFetchTimeout(t *testing.T) {
	src := &fakeSource{silent: true}
	o := newTestOrchestrator(src)
	o.SetTimeout(20 * time.Millisecond)

	start := time.Now()
	if _, ok := o.Fetch(context.Background(), "es/hero.png"); ok {
		t.Fatal("unanswered request should time out to no data")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("fetch returned before the timeout elapsed")
	}
	if n := o.PendingCount(); n != 0 {
		t.Fatalf("pending after timeout = %d, want 0 (entry removed)", n)
	}
}

func TestHandleResponseUnknownIDDropped(t *testing.T) {
	src := &fakeSource{silent: true}
	o := newTestOrchestrator(src)

	// Must not panic or block.
	o.HandleResponse(Response{Type: TypeResponse, RequestID: "nope", OK: true, Bytes: []byte("x")})
	o.HandleResponse(Response{Type: "other", RequestID: "nope"})
}

func TestConcurrentFetchesDistinctKeys(t *testing.T) {
	src := &fakeSource{bytes: map[string][]byte{
		"es/a.png": []byte("a"),
		"es/b.png": []byte("b"),
	}}
	o := newTestOrchestrator(src)

	var wg sync.WaitGroup
	for _, key := range []string{"es/a.png", "es/b.png"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := o.Fetch(context.Background(), key); !ok {
				t.Errorf("fetch %s failed", key)
			}
		}()
	}
	wg.Wait()
}
