package construct

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree, one node per line.
func Dump(w io.Writer, tree *Tree) error {
	return dumpNode(w, tree, tree.Root, 0)
}

func dumpNode(w io.Writer, tree *Tree, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	line, col := tree.LineAt(n.Start)

	var err error
	switch {
	case n.IsText():
		_, err = fmt.Fprintf(w, "%s%v %q\n", indent, n.Kind, n.Text)
	case n.Kind == KindDocument:
		_, err = fmt.Fprintf(w, "%s%v\n", indent, n.Kind)
	default:
		state := ""
		if !n.Terminated {
			state = " unterminated"
		}
		_, err = fmt.Fprintf(w, "%s%v %q..%q %d:%d%s\n", indent, n.Kind, n.Opening, n.Closing, line, col, state)
	}
	if err != nil {
		return err
	}

	for _, child := range n.Children {
		if err := dumpNode(w, tree, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
