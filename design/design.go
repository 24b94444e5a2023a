// Package design implements the in-memory design document model:
// a tree of nodes (frames, groups, text, shapes) with paint layers,
// an image store keyed by content handles, and JSON load/save.
//
// The document format is:
//
//	{
//	    "name": "Landing",
//	    "frames": [ { "id": "1:2", "name": "Hero", "kind": "frame", ... } ],
//	    "images": { "<md5-hex>": "<base64 bytes>" }
//	}
//
// Node identity is a free-form string assigned by the exporting tool.
// A frame in the top-level list is the unit of cloning.
package design

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
)

// NodeKind classifies a design node.
type NodeKind string

const (
	KindFrame     NodeKind = "frame"
	KindGroup     NodeKind = "group"
	KindText      NodeKind = "text"
	KindRectangle NodeKind = "rectangle"
	KindVector    NodeKind = "vector"
)

// Paint types.
const (
	PaintSolid = "solid"
	PaintImage = "image"
)

// Paint is one fill layer of a node. For image paints, ImageHandle
// references pixel data in the document's image store.
type Paint struct {
	Type        string  `json:"type"`
	Color       string  `json:"color,omitempty"`
	ImageHandle string  `json:"imageHandle,omitempty"`
	ScaleMode   string  `json:"scaleMode,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// FontRef identifies a font face.
type FontRef struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// StyleSpan is one contiguous same-styled run of a text node's characters.
// Spans cover the characters in order; Length is in runes. An attribute
// left mixed means the exporting tool could not resolve a single value
// for the run.
type StyleSpan struct {
	Length        int           `json:"length"`
	Font          Attr[FontRef] `json:"font"`
	FontSize      Attr[float64] `json:"fontSize"`
	FillColor     Attr[string]  `json:"fillColor"`
	LineHeight    Attr[float64] `json:"lineHeight"`
	LetterSpacing Attr[float64] `json:"letterSpacing"`
	Decoration    Attr[string]  `json:"decoration"`
	Case          Attr[string]  `json:"case"`
}

// Node is one element of the design tree.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     NodeKind `json:"kind"`
	Hidden   bool     `json:"hidden,omitempty"`
	X        float64  `json:"x,omitempty"`
	Y        float64  `json:"y,omitempty"`
	W        float64  `json:"w,omitempty"`
	H        float64  `json:"h,omitempty"`
	Fills    []Paint  `json:"fills,omitempty"`
	Children []*Node  `json:"children,omitempty"`

	// Text-node fields.
	Characters string      `json:"characters,omitempty"`
	Spans      []StyleSpan `json:"spans,omitempty"`
}

// Document is a loaded design file.
type Document struct {
	Name   string            `json:"name"`
	Frames []*Node           `json:"frames"`
	Images map[string][]byte `json:"images,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a design document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	if doc.Images == nil {
		doc.Images = make(map[string][]byte)
	}
	return &doc, nil
}

// Save writes the document back to a JSON file.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Image store
// ---------------------------------------------------------------------------

// CreateImage stores pixel data in the document's image store and returns
// its content handle. Identical bytes always yield the same handle.
func (d *Document) CreateImage(data []byte) string {
	handle := fmt.Sprintf("%x", md5.Sum(data))
	if d.Images == nil {
		d.Images = make(map[string][]byte)
	}
	if _, ok := d.Images[handle]; !ok {
		d.Images[handle] = data
	}
	return handle
}

// ImageBytes returns the stored bytes for a content handle.
func (d *Document) ImageBytes(handle string) ([]byte, bool) {
	data, ok := d.Images[handle]
	return data, ok
}

// ---------------------------------------------------------------------------
// Tree operations
// ---------------------------------------------------------------------------

// FindFrame returns the top-level frame with the given id, or nil.
func (d *Document) FindFrame(id string) *Node {
	for _, f := range d.Frames {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// FindByID searches the subtree rooted at n for a node with the given id.
func (n *Node) FindByID(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) { total++ })
	return total
}

// Clone returns a deep copy of the subtree rooted at n. Node ids are
// copied verbatim; the clone is positionally identical to the original
// until the caller moves or renames it.
func (n *Node) Clone() *Node {
	c := *n
	if n.Fills != nil {
		c.Fills = append([]Paint(nil), n.Fills...)
	}
	if n.Spans != nil {
		c.Spans = append([]StyleSpan(nil), n.Spans...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// SetText replaces a text node's characters. Mirroring host design tools,
// the whole string collapses to the style of the first former span; any
// further spans are discarded. Callers that want a different surviving
// style must reapply it afterwards.
func (n *Node) SetText(s string) {
	n.Characters = s
	length := len([]rune(s))
	if len(n.Spans) == 0 {
		n.Spans = []StyleSpan{{Length: length}}
		return
	}
	first := n.Spans[0]
	first.Length = length
	n.Spans = []StyleSpan{first}
}
