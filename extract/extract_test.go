package extract

import (
	"testing"

	"github.com/framelate/framelate/design"
)

func fixture() *design.Node {
	return &design.Node{ID: "1", Name: "Hero", Kind: design.KindFrame,
		Fills: []design.Paint{
			{Type: design.PaintSolid, Color: "#ffffff"},
			{Type: design.PaintImage, ImageHandle: "bg"},
		},
		Children: []*design.Node{
			{ID: "2", Name: "Title", Kind: design.KindText, Characters: "Hello\nWorld"},
			{ID: "3", Name: "Hidden", Kind: design.KindText, Characters: "gone", Hidden: true},
			{ID: "4", Name: "Shot", Kind: design.KindRectangle,
				Fills: []design.Paint{
					{Type: design.PaintImage, ImageHandle: "a"},
					{Type: design.PaintImage, ImageHandle: "b"},
				}},
		},
	}
}

func TestTexts(t *testing.T) {
	texts := Texts(fixture())
	if len(texts) != 1 {
		t.Fatalf("texts = %d, want 1 (hidden node skipped)", len(texts))
	}
	got := texts[0]
	if got.NodeID != "2" || got.Characters != "Hello\nWorld" {
		t.Fatalf("text = %+v", got)
	}
	if got.CharCount != 11 {
		t.Fatalf("char count = %d, want 11", got.CharCount)
	}
	if got.LineCount != 2 {
		t.Fatalf("line count = %d, want 2", got.LineCount)
	}
}

func TestImagesOnePerPaint(t *testing.T) {
	images := Images(fixture())
	if len(images) != 3 {
		t.Fatalf("images = %d, want 3 (frame bg + two rect paints)", len(images))
	}

	// The frame's image paint sits at index 1 of its fills.
	if images[0].NodeID != "1" || images[0].PaintIndex != 1 {
		t.Fatalf("frame image = %+v", images[0])
	}
	// The rectangle yields one entry per image paint.
	if images[1].NodeID != "4" || images[1].PaintIndex != 0 {
		t.Fatalf("rect image 0 = %+v", images[1])
	}
	if images[2].NodeID != "4" || images[2].PaintIndex != 1 {
		t.Fatalf("rect image 1 = %+v", images[2])
	}
}

func TestHiddenBranchSkipped(t *testing.T) {
	root := &design.Node{ID: "1", Kind: design.KindFrame, Hidden: true,
		Children: []*design.Node{
			{ID: "2", Kind: design.KindText, Characters: "x"},
		},
	}
	if got := Texts(root); len(got) != 0 {
		t.Fatalf("texts under hidden root = %v, want none", got)
	}
}

func TestBuildPayloadMarshal(t *testing.T) {
	p := Build(fixture())
	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty payload")
	}
}
