// Package extract produces read-only descriptor snapshots of a design
// subtree: the text nodes to translate and the image paints to replace.
// Descriptors are taken once per extraction pass, before any mutation, so
// the orchestrator never iterates a tree it is editing.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/framelate/framelate/design"
)

// TextInfo is a snapshot of one visible text node.
type TextInfo struct {
	NodeID     string `json:"nodeId"`
	Name       string `json:"name"`
	Characters string `json:"characters"`
	CharCount  int    `json:"charCount"`
	LineCount  int    `json:"lineCount"`
}

// ImageInfo is a snapshot of one image paint on a node. A node with
// several image paints yields one entry per paint.
type ImageInfo struct {
	NodeID     string `json:"nodeId"`
	Name       string `json:"name"`
	PaintIndex int    `json:"paintIndex"`
}

// Payload is the extraction output handed to an external translation
// engine.
type Payload struct {
	Texts  []TextInfo  `json:"texts"`
	Images []ImageInfo `json:"images"`
}

// Texts collects a TextInfo for every visible text node in the subtree,
// in traversal order. Hidden nodes and hidden branches are skipped.
func Texts(root *design.Node) []TextInfo {
	var infos []TextInfo
	collect(root, func(n *design.Node) {
		if n.Kind != design.KindText {
			return
		}
		runes := []rune(n.Characters)
		infos = append(infos, TextInfo{
			NodeID:     n.ID,
			Name:       n.Name,
			Characters: n.Characters,
			CharCount:  len(runes),
			LineCount:  strings.Count(n.Characters, "\n") + 1,
		})
	})
	return infos
}

// Images collects an ImageInfo for every image paint on every visible node
// in the subtree. Image paints can live on any node kind, not just shapes.
func Images(root *design.Node) []ImageInfo {
	var infos []ImageInfo
	collect(root, func(n *design.Node) {
		for i, p := range n.Fills {
			if p.Type == design.PaintImage {
				infos = append(infos, ImageInfo{NodeID: n.ID, Name: n.Name, PaintIndex: i})
			}
		}
	})
	return infos
}

// Build assembles the full extraction payload for a subtree.
func Build(root *design.Node) Payload {
	return Payload{Texts: Texts(root), Images: Images(root)}
}

// Marshal encodes the payload as formatted JSON.
func (p Payload) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}
	return data, nil
}

// collect walks visible nodes depth-first, skipping hidden branches.
func collect(n *design.Node, fn func(*design.Node)) {
	if n.Hidden {
		return
	}
	fn(n)
	for _, c := range n.Children {
		collect(c, fn)
	}
}
