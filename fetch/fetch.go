// Package fetch implements asynchronous byte retrieval for matched assets.
//
// The engine never reads asset files itself; it signals an external source
// with a correlation id and an asset key, then suspends that code path until
// a correlated response arrives or a fixed timeout elapses. The wire
// protocol is:
//
//	request:  { "type": "request-image-bytes", "requestId": "...", "fileKey": "..." }
//	response: { "type": "image-bytes-response", "requestId": "...", "ok": true,
//	            "bytes": "<base64>", "error": "..." }
//
// A failed, empty, or timed-out response resolves to "no data" — a soft
// failure the caller records and skips, never an error and never a retry.
package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"
)

// Timeout is the fixed per-request timeout.
const Timeout = 10 * time.Second

// Message types of the byte retrieval protocol.
const (
	TypeRequest  = "request-image-bytes"
	TypeResponse = "image-bytes-response"
)

// Request asks the external source for the raw bytes of one asset.
type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	FileKey   string `json:"fileKey"`
}

// Response carries the raw bytes back, correlated by RequestID.
type Response struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	OK        bool   `json:"ok"`
	Bytes     []byte `json:"bytes,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Source delivers requests to the external byte provider. Send must not
// block on the actual I/O; responses come back through
// Orchestrator.HandleResponse.
type Source interface {
	Send(req Request)
}

// ImageStore turns raw bytes into a content handle. Downstream consumption
// needs only the handle, so the cache below never holds raw bytes.
type ImageStore interface {
	CreateImage(data []byte) string
}

// pending is one in-flight request. Created on dispatch, removed on
// response or timeout, never reused.
type pending struct {
	fileKey string
	done    chan Response
}

// Orchestrator correlates requests with responses and caches resolved
// content handles per asset key for the remainder of a batch run. The
// pending table is the only concurrently-addressable shared state here;
// it is keyed by generated unique ids so concurrent entries never collide.
type Orchestrator struct {
	source  Source
	store   ImageStore
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]*pending
	cache   map[string]string // asset key -> content handle
}

// New creates an orchestrator sending requests through source and
// registering received bytes in store.
func New(source Source, store ImageStore) *Orchestrator {
	return &Orchestrator{
		source:  source,
		store:   store,
		timeout: Timeout,
		pending: make(map[string]*pending),
		cache:   make(map[string]string),
	}
}

// SetTimeout overrides the request timeout. Tests only.
func (o *Orchestrator) SetTimeout(d time.Duration) {
	o.timeout = d
}

// Fetch resolves an asset key to a content handle. It returns ok=false on
// timeout, a failed response, or an empty payload; none of these are
// errors. Repeated fetches of the same key within a run hit the cache and
// trigger no further requests.
func (o *Orchestrator) Fetch(ctx context.Context, fileKey string) (handle string, ok bool) {
	o.mu.Lock()
	if h, hit := o.cache[fileKey]; hit {
		o.mu.Unlock()
		return h, true
	}
	id := xid.New().String()
	p := &pending{fileKey: fileKey, done: make(chan Response, 1)}
	o.pending[id] = p
	o.mu.Unlock()

	o.source.Send(Request{Type: TypeRequest, RequestID: id, FileKey: fileKey})

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	select {
	case resp := <-p.done:
		if !resp.OK || len(resp.Bytes) == 0 {
			return "", false
		}
		h := o.store.CreateImage(resp.Bytes)
		o.mu.Lock()
		o.cache[fileKey] = h
		o.mu.Unlock()
		return h, true
	case <-timer.C:
		o.remove(id)
		return "", false
	case <-ctx.Done():
		o.remove(id)
		return "", false
	}
}

// HandleResponse delivers an external response to its waiting request.
// Responses with unknown or already-resolved request ids are dropped.
func (o *Orchestrator) HandleResponse(resp Response) {
	if resp.Type != TypeResponse {
		return
	}
	o.mu.Lock()
	p, ok := o.pending[resp.RequestID]
	if ok {
		delete(o.pending, resp.RequestID)
	}
	o.mu.Unlock()
	if ok {
		p.done <- resp
	}
}

// PendingCount returns the number of in-flight requests.
func (o *Orchestrator) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

func (o *Orchestrator) remove(id string) {
	o.mu.Lock()
	delete(o.pending, id)
	o.mu.Unlock()
}
