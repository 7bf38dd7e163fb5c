package construct

import (
	"sort"
	"strings"
)

// Node is one element of a construct tree. Literal runs have Kind KindText
// and carry Text; every other node carries its matched markers and owns its
// children.
type Node struct {
	Kind KindID

	// Text is the verbatim content of a literal run.
	Text string

	// Opening is the matched opener minus any trimmed tail.
	Opening string

	// Closing is the matched closer minus its trimmed tail. It is empty for
	// tokens and unterminated constructs.
	Closing string

	// Opener and Closer index the kind's declarations; Closer is -1 when no
	// closer matched.
	Opener int
	Closer int

	// Terminated is false when input ended before a closer matched.
	Terminated bool

	Children []*Node

	// Start and End are byte offsets of the node's source span.
	Start int
	End   int
}

// IsText reports whether the node is a literal run.
func (n *Node) IsText() bool {
	return n.Kind == KindText
}

func (n *Node) appendText(text string, start int) {
	n.Children = append(n.Children, &Node{
		Kind:       KindText,
		Text:       text,
		Closer:     -1,
		Terminated: true,
		Start:      start,
		End:        start + len(text),
	})
}

// hasChild reports whether any direct child has the given kind.
func (n *Node) hasChild(kind KindID) bool {
	for _, child := range n.Children {
		if child.Kind == kind {
			return true
		}
	}
	return false
}

// WalkFunc is called for each node visited by Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal starting at root.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// Tree is the result of parsing one source text.
type Tree struct {
	Source string
	Root   *Node

	catalogue  *Catalogue
	lineStarts []int
	blockEnds  map[int]bool
}

// Unterminated returns every construct whose closer never matched.
func (t *Tree) Unterminated() []*Node {
	var out []*Node
	_ = Walk(t.Root, func(n *Node) error {
		if n.Kind != KindDocument && !n.IsText() && !n.Terminated {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes.
func (t *Tree) LineAt(offset int) (int, int) {
	if len(t.lineStarts) == 0 {
		return 0, 0
	}
	offset = min(max(offset, 0), len(t.Source))
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	})
	return line, offset - t.lineStarts[line-1] + 1
}

func lineStarts(src string) []int {
	starts := []int{0}
	for i := range len(src) {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineIndent returns the leading whitespace of the source line holding offset.
func (t *Tree) lineIndent(offset int) string {
	return indentAt(t.Source, offset)
}

func indentAt(src string, offset int) string {
	offset = min(max(offset, 0), len(src))
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	line := src[start:]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
