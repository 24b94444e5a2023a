package design

// Correspondence links original node ids to their counterparts in one
// specific clone. It is built immediately after cloning, while both trees
// are still structurally identical, and discarded once that clone has been
// fully processed.
type Correspondence struct {
	// All maps every original node id to its clone counterpart.
	All map[string]*Node
	// Texts holds the text-node subset of All.
	Texts map[string]*Node
}

// BuildCorrespondence walks the original subtree and its clone in lockstep,
// matching children purely by position. If one side runs out of children
// the remainder of that branch is skipped; no realignment is attempted.
func BuildCorrespondence(original, clone *Node) *Correspondence {
	c := &Correspondence{
		All:   make(map[string]*Node),
		Texts: make(map[string]*Node),
	}
	c.visit(original, clone)
	return c
}

func (c *Correspondence) visit(original, clone *Node) {
	c.All[original.ID] = clone
	if original.Kind == KindText {
		c.Texts[original.ID] = clone
	}
	n := len(original.Children)
	if len(clone.Children) < n {
		n = len(clone.Children)
	}
	for i := 0; i < n; i++ {
		c.visit(original.Children[i], clone.Children[i])
	}
}
