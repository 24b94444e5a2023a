package style

import (
	"testing"

	"github.com/framelate/framelate/design"
)

func span(length int, size float64) design.StyleSpan {
	return design.StyleSpan{Length: length, FontSize: design.Uniform(size)}
}

func TestResolvePicksLongestSpan(t *testing.T) {
	n := &design.Node{Kind: design.KindText, Characters: "abcdefghij12345",
		Spans: []design.StyleSpan{span(3, 10), span(5, 20), span(5, 30), span(2, 40)},
	}

	dom, ok := Resolve(n)
	if !ok {
		t.Fatal("Resolve should succeed")
	}
	// Lengths [3,5,5,2]: the first span of maximal length wins the tie.
	if size, _ := dom.FontSize.Get(); size != 20 {
		t.Fatalf("dominant font size = %v, want 20 (second span)", size)
	}
}

func TestResolveEmpty(t *testing.T) {
	n := &design.Node{Kind: design.KindText}
	if _, ok := Resolve(n); ok {
		t.Fatal("node without spans should resolve to nothing")
	}
}

func TestApplyOverridesCollapsedStyle(t *testing.T) {
	n := &design.Node{Kind: design.KindText, Characters: "★Hello",
		Spans: []design.StyleSpan{
			{Length: 1,
				Font:      design.Uniform(design.FontRef{Family: "Icons", Style: "Regular"}),
				FontSize:  design.Uniform(24.0),
				FillColor: design.Uniform("#ff0000")},
			{Length: 5,
				Font:      design.Uniform(design.FontRef{Family: "Inter", Style: "Regular"}),
				FontSize:  design.Uniform(14.0),
				FillColor: design.Uniform("#000000")},
		},
	}

	dom, ok := Resolve(n)
	if !ok {
		t.Fatal("Resolve should succeed")
	}
	n.SetText("Bonjour") // collapses to the icon span's style
	Apply(n, dom)

	got := n.Spans[0]
	if font, _ := got.Font.Get(); font.Family != "Inter" {
		t.Fatalf("font = %+v, want the dominant Inter", font)
	}
	if size, _ := got.FontSize.Get(); size != 14.0 {
		t.Fatalf("font size = %v, want 14", size)
	}
	if color, _ := got.FillColor.Get(); color != "#000000" {
		t.Fatalf("fill = %q, want #000000", color)
	}
}

func TestApplySkipsMixedAttributes(t *testing.T) {
	n := &design.Node{Kind: design.KindText, Characters: "Hello",
		Spans: []design.StyleSpan{{
			Length:    5,
			FontSize:  design.Uniform(24.0),
			FillColor: design.Uniform("#ff0000"),
		}},
	}

	dom := Dominant{
		FontSize: design.Uniform(14.0),
		// mixed: must not touch the node's value
		FillColor: design.Mixed[string](),
	}
	Apply(n, dom)

	if size, _ := n.Spans[0].FontSize.Get(); size != 14.0 {
		t.Fatalf("font size = %v, want 14", size)
	}
	if color, _ := n.Spans[0].FillColor.Get(); color != "#ff0000" {
		t.Fatalf("mixed attribute overwrote fill: %q", color)
	}
}
