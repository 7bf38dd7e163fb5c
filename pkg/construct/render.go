package construct

import "strings"

// Rendering is the input to a kind's render function.
type Rendering struct {
	Target Target
	Node   *Node

	// Open and Close are the node's markers in Target: the matched text
	// when the node is spelled in Target, the declared foreign spelling
	// otherwise. Close is empty for unterminated nodes.
	Open  string
	Body  string
	Close string

	tree *Tree
}

// Before returns up to n source bytes preceding the node.
func (r *Rendering) Before(n int) string {
	start := r.Node.Start
	return r.tree.Source[max(start-n, 0):start]
}

// Indent returns the indentation of the source line the node opens on.
func (r *Rendering) Indent() string {
	return r.tree.lineIndent(r.Node.Start)
}

// closer returns the declaration of the closer that ended the node.
func (r *Rendering) closer() (Closer, bool) {
	if r.Node.Closer < 0 {
		return Closer{}, false
	}
	return r.tree.catalogue.Kind(r.Node.Kind).Closers[r.Node.Closer], true
}

// endsBlock reports whether the node starts where a colon block ended.
func (r *Rendering) endsBlock() bool {
	return r.tree.blockEnds[r.Node.Start]
}

// Render produces the tree's text in target.
func (t *Tree) Render(target Target) string {
	return t.render(t.Root, target)
}

func (t *Tree) render(n *Node, target Target) string {
	if n.IsText() {
		return n.Text
	}

	var body strings.Builder
	for _, child := range n.Children {
		body.WriteString(t.render(child, target))
	}
	if n.Kind == KindDocument {
		return body.String()
	}

	kind := t.catalogue.Kind(n.Kind)
	r := &Rendering{
		Target: target,
		Node:   n,
		Body:   body.String(),
		tree:   t,
	}
	r.Open, r.Close = markers(kind, n, target)

	if target < Both {
		if fn := kind.Render[target]; fn != nil {
			return fn(r)
		}
	}
	return r.Open + r.Body + r.Close
}

func markers(kind *Kind, n *Node, target Target) (string, string) {
	opener := kind.Openers[n.Opener]
	if opener.Target == Both || opener.Target == target {
		return n.Opening, n.Closing
	}

	closing := ""
	if n.Closer >= 0 {
		closing = kind.Closers[n.Closer].Foreign
	}
	return opener.Foreign, closing
}
