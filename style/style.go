// Package style implements dominant-style resolution for text replacement.
//
// Replacing a text node's content collapses the whole string to the style
// of its first former styled run. When the original text mixed styles — a
// leading icon glyph styled differently from the words after it — the
// replacement would inherit the icon's style. The resolver instead captures
// the attributes of the longest same-styled run before replacement and
// reapplies them across the whole node afterwards, attribute by attribute,
// skipping any attribute with no single value.
package style

import "github.com/framelate/framelate/design"

// Dominant is the captured attribute set of a text node's longest
// same-styled run.
type Dominant struct {
	Font          design.Attr[design.FontRef]
	FontSize      design.Attr[float64]
	FillColor     design.Attr[string]
	LineHeight    design.Attr[float64]
	LetterSpacing design.Attr[float64]
	Decoration    design.Attr[string]
	Case          design.Attr[string]
}

// Resolve captures the dominant style of a text node. The dominant run is
// the span with the greatest character length; ties resolve to the first
// span of maximal length. ok is false when the node has no spans (empty
// text), in which case style restoration is skipped entirely.
func Resolve(n *design.Node) (Dominant, bool) {
	if len(n.Spans) == 0 {
		return Dominant{}, false
	}
	best := 0
	for i, s := range n.Spans {
		if s.Length > n.Spans[best].Length {
			best = i
		}
	}
	s := n.Spans[best]
	return Dominant{
		Font:          s.Font,
		FontSize:      s.FontSize,
		FillColor:     s.FillColor,
		LineHeight:    s.LineHeight,
		LetterSpacing: s.LetterSpacing,
		Decoration:    s.Decoration,
		Case:          s.Case,
	}, true
}

// Apply reapplies the dominant attributes across the whole node after its
// content has been replaced. Each attribute is copied only when it holds a
// single value; mixed attributes leave whatever the collapse produced.
func Apply(n *design.Node, d Dominant) {
	if len(n.Spans) == 0 {
		return
	}
	for i := range n.Spans {
		span := &n.Spans[i]
		if v, ok := d.Font.Get(); ok {
			span.Font = design.Uniform(v)
		}
		if v, ok := d.FontSize.Get(); ok {
			span.FontSize = design.Uniform(v)
		}
		if v, ok := d.FillColor.Get(); ok {
			span.FillColor = design.Uniform(v)
		}
		if v, ok := d.LineHeight.Get(); ok {
			span.LineHeight = design.Uniform(v)
		}
		if v, ok := d.LetterSpacing.Get(); ok {
			span.LetterSpacing = design.Uniform(v)
		}
		if v, ok := d.Decoration.Get(); ok {
			span.Decoration = design.Uniform(v)
		}
		if v, ok := d.Case.Get(); ok {
			span.Case = design.Uniform(v)
		}
	}
}
