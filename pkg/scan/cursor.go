// Package scan provides the byte cursor the construct builder drives over
// a source buffer.
package scan

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for cursor contract violations.
var (
	// ErrEndOfInput is returned by Advance when the buffer is exhausted.
	ErrEndOfInput = errors.New("end of input")

	// ErrOutOfRange is returned by Seek when the new position would leave the buffer.
	ErrOutOfRange = errors.New("cursor position out of range")
)

// Cursor owns an immutable buffer and a scan position within it.
// Positions are byte offsets; Advance and ScanUntil always step over whole
// UTF-8 sequences so the position never splits a character.
type Cursor struct {
	buf string
	pos int
}

// NewCursor returns a cursor positioned at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{buf: src}
}

// Source returns the full buffer.
func (c *Cursor) Source() string {
	return c.buf
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the buffer length in bytes.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// HasMore reports whether unconsumed input remains.
func (c *Cursor) HasMore() bool {
	return c.pos < len(c.buf)
}

// Peek returns up to n bytes ahead of the position without consuming them.
// The result is shorter than n near the end of input.
func (c *Cursor) Peek(n int) string {
	return c.WindowAfter(c.pos, n)
}

// Advance consumes and returns one character.
func (c *Cursor) Advance() (rune, error) {
	if !c.HasMore() {
		return utf8.RuneError, ErrEndOfInput
	}
	r, size := utf8.DecodeRuneInString(c.buf[c.pos:])
	c.pos += size
	return r, nil
}

// ScanUntil consumes characters until one of triggers matches at the
// position. Triggers are tested in slice order before each character is
// consumed, and the first match wins. allow, when non-nil, may veto a
// candidate match by its index; a vetoed trigger is treated as not matching.
//
// On a match the trigger itself is consumed and its index returned together
// with the text consumed before it. When input runs out first the index is -1.
func (c *Cursor) ScanUntil(triggers []string, allow func(index int) bool) (string, int) {
	start := c.pos
	for c.HasMore() {
		rest := c.buf[c.pos:]
		for i, trigger := range triggers {
			if trigger == "" || !strings.HasPrefix(rest, trigger) {
				continue
			}
			if allow != nil && !allow(i) {
				continue
			}
			text := c.buf[start:c.pos]
			c.pos += len(trigger)
			return text, i
		}
		_, size := utf8.DecodeRuneInString(rest)
		c.pos += size
	}
	return c.buf[start:c.pos], -1
}

// Seek moves the position by delta bytes, forward or backward.
func (c *Cursor) Seek(delta int) error {
	next := c.pos + delta
	if next < 0 || next > len(c.buf) {
		return fmt.Errorf("%w: seek %+d from %d", ErrOutOfRange, delta, c.pos)
	}
	c.pos = next
	return nil
}

// WindowBefore returns up to n bytes ending at pos.
func (c *Cursor) WindowBefore(pos, n int) string {
	pos = clamp(pos, 0, len(c.buf))
	return c.buf[max(pos-max(n, 0), 0):pos]
}

// WindowAfter returns up to n bytes starting at pos.
func (c *Cursor) WindowAfter(pos, n int) string {
	pos = clamp(pos, 0, len(c.buf))
	return c.buf[pos:min(pos+max(n, 0), len(c.buf))]
}

// RuneBefore returns the character ending at pos, or false at the start of input.
func (c *Cursor) RuneBefore(pos int) (rune, bool) {
	pos = clamp(pos, 0, len(c.buf))
	if pos == 0 {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeLastRuneInString(c.buf[:pos])
	return r, true
}

// RuneAt returns the character starting at pos, or false at the end of input.
func (c *Cursor) RuneAt(pos int) (rune, bool) {
	if pos < 0 || pos >= len(c.buf) {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeRuneInString(c.buf[pos:])
	return r, true
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
