// Package pattern provides the ordered trigger table that routes matched
// text to construct kinds.
//
// A Table is built once through a Builder and is read-only afterwards, so a
// single table can be shared by concurrent conversions without locking.
// Registration order is match precedence: when several triggers match at the
// same position the earliest registered one wins.
package pattern

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/jiphy/pkg/scan"
)

// Sentinel errors returned by Build.
var (
	// ErrDuplicateTrigger means a trigger was registered twice.
	ErrDuplicateTrigger = errors.New("duplicate trigger")

	// ErrShadowedTrigger means a trigger can never match because an
	// earlier registered trigger is a proper prefix of it.
	ErrShadowedTrigger = errors.New("shadowed trigger")

	// ErrEmptyTrigger means an empty string was registered.
	ErrEmptyTrigger = errors.New("empty trigger")
)

// Binding maps one trigger to a kind.
type Binding[K comparable] struct {
	// Trigger is the literal text matched at the scan position.
	Trigger string

	// Kind is the value routed to when the trigger matches.
	Kind K

	// NotAfter lists characters that must not immediately precede the trigger.
	NotAfter string

	// NotBefore lists characters that must not immediately follow the trigger.
	NotBefore string

	// LineStart restricts the trigger to the start of a line, where only
	// spaces and tabs may precede it.
	LineStart bool
}

// Table is an ordered, immutable trigger registry.
type Table[K comparable] struct {
	bindings []Binding[K]
	index    map[string]int
}

// Triggers returns all bound triggers in precedence order.
func (t *Table[K]) Triggers() []string {
	out := make([]string, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = b.Trigger
	}
	return out
}

// Bindings returns a copy of the bindings in precedence order.
func (t *Table[K]) Bindings() []Binding[K] {
	return slices.Clone(t.bindings)
}

// Len returns the number of bound triggers.
func (t *Table[K]) Len() int {
	return len(t.bindings)
}

// Lookup returns the kind bound to trigger.
func (t *Table[K]) Lookup(trigger string) (K, bool) {
	b, ok := t.Binding(trigger)
	return b.Kind, ok
}

// Binding returns the full binding for trigger.
func (t *Table[K]) Binding(trigger string) (Binding[K], bool) {
	i, ok := t.index[trigger]
	if !ok {
		var zero Binding[K]
		return zero, false
	}
	return t.bindings[i], true
}

// Derive returns a restricted copy without the named triggers.
// Names that are not bound are ignored.
func (t *Table[K]) Derive(excluding ...string) *Table[K] {
	return t.filter(func(b Binding[K]) bool {
		return !slices.Contains(excluding, b.Trigger)
	})
}

// Select returns a restricted copy holding only the named triggers, still
// in this table's precedence order.
func (t *Table[K]) Select(including ...string) *Table[K] {
	return t.filter(func(b Binding[K]) bool {
		return slices.Contains(including, b.Trigger)
	})
}

// Allow reports whether trigger may match at the cursor's current position.
//
// Triggers that start with an identifier character do not match directly
// after one (or after '.'), and triggers that end with an identifier
// character do not match directly before one, so "print" is not found in
// "sprint" or "printer". NotAfter and NotBefore add explicit exclusions,
// and LineStart bindings match only after a line's indentation.
func (t *Table[K]) Allow(c *scan.Cursor, trigger string) bool {
	b, ok := t.Binding(trigger)
	if !ok {
		return false
	}

	pos := c.Pos()
	if b.LineStart && !atLineStart(c.Source(), pos) {
		return false
	}
	prev, hasPrev := c.RuneBefore(pos)
	next, hasNext := c.RuneAt(pos + len(trigger))

	if hasPrev {
		if isWord(firstRune(trigger)) && (isWord(prev) || prev == '.') {
			return false
		}
		if strings.ContainsRune(b.NotAfter, prev) {
			return false
		}
	}
	if hasNext {
		if isWord(lastRune(trigger)) && isWord(next) {
			return false
		}
		if strings.ContainsRune(b.NotBefore, next) {
			return false
		}
	}
	return true
}

func (t *Table[K]) filter(keep func(Binding[K]) bool) *Table[K] {
	out := &Table[K]{index: make(map[string]int)}
	for _, b := range t.bindings {
		if !keep(b) {
			continue
		}
		out.index[b.Trigger] = len(out.bindings)
		out.bindings = append(out.bindings, b)
	}
	return out
}

// Builder accumulates bindings for a Table.
type Builder[K comparable] struct {
	bindings []Binding[K]
}

// NewBuilder returns an empty builder.
func NewBuilder[K comparable]() *Builder[K] {
	return &Builder[K]{}
}

// Register appends one binding per trigger, in argument order.
func (b *Builder[K]) Register(kind K, triggers ...string) *Builder[K] {
	for _, trigger := range triggers {
		b.bindings = append(b.bindings, Binding[K]{Trigger: trigger, Kind: kind})
	}
	return b
}

// Bind appends a fully specified binding.
func (b *Builder[K]) Bind(binding Binding[K]) *Builder[K] {
	b.bindings = append(b.bindings, binding)
	return b
}

// Build validates the bindings and returns the table.
//
// Repeated triggers are rejected rather than overwritten, and a trigger
// registered after one of its proper prefixes is rejected as unreachable.
// All problems are reported together.
func (b *Builder[K]) Build() (*Table[K], error) {
	if err := Validate(b.Triggers()); err != nil {
		return nil, err
	}

	table := &Table[K]{
		bindings: slices.Clone(b.bindings),
		index:    make(map[string]int, len(b.bindings)),
	}
	for i, binding := range table.bindings {
		table.index[binding.Trigger] = i
	}
	return table, nil
}

// Triggers returns the registered triggers in order.
func (b *Builder[K]) Triggers() []string {
	out := make([]string, len(b.bindings))
	for i, binding := range b.bindings {
		out[i] = binding.Trigger
	}
	return out
}

// Validate checks an ordered trigger list for empty, duplicate and
// shadowed entries.
func Validate(triggers []string) error {
	var errs []error
	seen := make(map[string]int, len(triggers))
	for i, trigger := range triggers {
		if trigger == "" {
			errs = append(errs, fmt.Errorf("%w at position %d", ErrEmptyTrigger, i))
			continue
		}
		if first, ok := seen[trigger]; ok {
			errs = append(errs, fmt.Errorf("%w %q at positions %d and %d", ErrDuplicateTrigger, trigger, first, i))
			continue
		}
		seen[trigger] = i
		for _, earlier := range triggers[:i] {
			if earlier != "" && earlier != trigger && strings.HasPrefix(trigger, earlier) {
				errs = append(errs, fmt.Errorf("%w %q: earlier trigger %q is a prefix", ErrShadowedTrigger, trigger, earlier))
				break
			}
		}
	}
	return errors.Join(errs...)
}

func atLineStart(src string, pos int) bool {
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	return strings.Trim(src[start:pos], " \t") == ""
}

func isWord(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
