package construct

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jiphy/pkg/pattern"
	"github.com/yaklabco/jiphy/pkg/scan"
)

// ErrUnroutableTrigger means a table bound a trigger to a kind the
// catalogue cannot open. It signals an inconsistent catalogue, never bad input.
var ErrUnroutableTrigger = errors.New("unroutable trigger")

// Parse builds the construct tree for src in a single pass.
//
// Constructs whose closer never appears are closed at end of input and
// marked unterminated; that is not an error.
func (c *Catalogue) Parse(src string) (*Tree, error) {
	cur := scan.NewCursor(src)
	root := &Node{Kind: KindDocument, Closer: -1, Terminated: true}
	if err := c.drive(cur, root, nil, c.scopes[ScopeGlobal]); err != nil {
		return nil, err
	}
	root.End = cur.Pos()

	return &Tree{
		Source:     src,
		Root:       root,
		catalogue:  c,
		lineStarts: lineStarts(src),
		blockEnds:  blockEnds(root),
	}, nil
}

// blockEnds collects the offsets where terminated colon blocks end.
func blockEnds(root *Node) map[int]bool {
	ends := make(map[int]bool)
	_ = Walk(root, func(n *Node) error {
		if n.Kind == KindColonBlock && n.Terminated {
			ends[n.End] = true
		}
		return nil
	})
	return ends
}

// drive scans the body of node until one of closers matches or input ends,
// opening a child construct for every table trigger met on the way.
// Closers are tested before table triggers at every position. Line-aware
// closers are measured against the indentation of the line node opened on.
func (c *Catalogue) drive(cur *scan.Cursor, node *Node, closers []Closer, table *pattern.Table[KindID]) error {
	indent := indentAt(cur.Source(), node.Start)
	triggers := make([]string, 0, len(closers)+table.Len())
	for _, closer := range closers {
		triggers = append(triggers, closer.effective(indent))
	}
	triggers = append(triggers, table.Triggers()...)

	allow := func(i int) bool {
		if i < len(closers) {
			return closers[i].admits(cur.Source(), cur.Pos(), indent)
		}
		return table.Allow(cur, triggers[i])
	}

	for {
		start := cur.Pos()
		text, index := cur.ScanUntil(triggers, allow)
		if text != "" {
			node.appendText(text, start)
		}

		switch {
		case index < 0:
			return nil

		case index < len(closers):
			closer, trigger := closers[index], triggers[index]
			if err := cur.Seek(-closer.Trim); err != nil {
				return fmt.Errorf("trim %v closer %q: %w", node.Kind, trigger, err)
			}
			node.Closing = trigger[:len(trigger)-closer.Trim]
			node.Closer = index
			node.Terminated = true
			return nil

		default:
			trigger := triggers[index]
			id, ok := table.Lookup(trigger)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnroutableTrigger, trigger)
			}
			child, err := c.open(cur, id, trigger)
			if err != nil {
				return err
			}
			node.Children = append(node.Children, child)
		}
	}
}

// open builds the node for a construct whose opener was just consumed.
func (c *Catalogue) open(cur *scan.Cursor, id KindID, trigger string) (*Node, error) {
	kind := c.Kind(id)
	if kind == nil {
		return nil, fmt.Errorf("%w: %q routes to %v, which is not catalogued", ErrUnroutableTrigger, trigger, id)
	}
	index := kind.opener(trigger)
	if index < 0 {
		return nil, fmt.Errorf("%w: %q is not an opener of %v", ErrUnroutableTrigger, trigger, id)
	}
	opener := kind.Openers[index]

	node := &Node{
		Kind:    id,
		Opening: trigger[:len(trigger)-opener.Trim],
		Opener:  index,
		Closer:  -1,
		Start:   cur.Pos() - len(trigger),
	}
	if err := cur.Seek(-opener.Trim); err != nil {
		return nil, fmt.Errorf("trim %v opener %q: %w", id, trigger, err)
	}

	for range kind.Opaque {
		if !cur.HasMore() {
			break
		}
		pos := cur.Pos()
		if _, err := cur.Advance(); err != nil {
			return nil, fmt.Errorf("opaque %v: %w", id, err)
		}
		node.appendText(cur.Source()[pos:cur.Pos()], pos)
	}

	if kind.Token() {
		node.Terminated = true
	} else if err := c.drive(cur, node, kind.Closers, c.scopes[kind.Scope]); err != nil {
		return nil, err
	}

	node.End = cur.Pos()
	return node, nil
}
