package construct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/jiphy/pkg/pattern"
)

// ErrInvalidKind is returned when a kind declaration is inconsistent.
var ErrInvalidKind = errors.New("invalid construct kind")

// KindID identifies a construct kind. The set is closed.
type KindID uint8

// Construct kinds, in global precedence order after the two structural kinds.
const (
	// KindText is an opaque literal run.
	KindText KindID = iota
	// KindDocument is the root of every tree.
	KindDocument

	KindContinuation
	KindEscape
	KindDocString
	KindBlockComment
	KindBlockString
	KindSingleQuoted
	KindDoubleQuoted
	KindTemplate
	KindLineComment
	KindImport
	KindVarDecl
	KindEmptyBlock
	KindParenHeader
	KindColonHeader
	KindColonBlock
	KindBraceBlock
	KindObject
	KindIsNot
	KindIs
	KindNotIn
	KindNot
	KindAnd
	KindOr
	KindTrue
	KindFalse
	KindNull
	KindUndefined
	KindPrint
	KindFunction
	KindDelete
	KindNoop
	KindTerminator

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindText:         "Text",
	KindDocument:     "Document",
	KindContinuation: "Continuation",
	KindEscape:       "Escape",
	KindDocString:    "DocString",
	KindBlockComment: "BlockComment",
	KindBlockString:  "BlockString",
	KindSingleQuoted: "SingleQuoted",
	KindDoubleQuoted: "DoubleQuoted",
	KindTemplate:     "Template",
	KindLineComment:  "LineComment",
	KindImport:       "Import",
	KindVarDecl:      "VarDecl",
	KindEmptyBlock:   "EmptyBlock",
	KindParenHeader:  "ParenHeader",
	KindColonHeader:  "ColonHeader",
	KindColonBlock:   "ColonBlock",
	KindBraceBlock:   "BraceBlock",
	KindObject:       "Object",
	KindIsNot:        "IsNot",
	KindIs:           "Is",
	KindNotIn:        "NotIn",
	KindNot:          "Not",
	KindAnd:          "And",
	KindOr:           "Or",
	KindTrue:         "True",
	KindFalse:        "False",
	KindNull:         "Null",
	KindUndefined:    "Undefined",
	KindPrint:        "Print",
	KindFunction:     "Function",
	KindDelete:       "Delete",
	KindNoop:         "Noop",
	KindTerminator:   "Terminator",
}

func (k KindID) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("KindID(%d)", uint8(k))
}

// Scope names the child table a kind scans its body with.
type Scope uint8

// Child scopes.
const (
	// ScopeNone recognizes nothing but the kind's own closers.
	ScopeNone Scope = iota
	// ScopeGlobal is the full table.
	ScopeGlobal
	// ScopeEscapes recognizes only escapes.
	ScopeEscapes
	// ScopeString recognizes literal continuations and escapes.
	ScopeString
	// ScopeLiteral is the full table without statement terminators and
	// block shapes, for aggregate literals spanning lines.
	ScopeLiteral
	// ScopeDecl is the full table without declaration and import keywords.
	ScopeDecl

	scopeCount
)

// Opener is one opening trigger of a kind.
type Opener struct {
	// Trigger is the matched text.
	Trigger string

	// Target is the syntax the trigger is spelled in, or Both.
	Target Target

	// Foreign is the spelling emitted when rendering into the other target.
	Foreign string

	// Trim is the number of trailing trigger characters handed back to the
	// enclosing construct. Only tokens declare it.
	Trim int

	// NotAfter and NotBefore are one-character lookaround exclusions.
	NotAfter  string
	NotBefore string

	// LineStart restricts the trigger to the start of a line, after any
	// indentation.
	LineStart bool
}

// LineRule restricts where a line-ending closer may match, relative to the
// indentation of the line its construct opened on.
type LineRule uint8

// Line rules.
const (
	// LineAny matches the trigger wherever it appears.
	LineAny LineRule = iota
	// LineSame matches only when the next line starts a statement at the
	// opening line's indentation. The indentation is matched as part of
	// the trigger.
	LineSame
	// LineOutdent matches only when the next line is non-blank and
	// indented less than the opening line.
	LineOutdent
)

// Closer is one closing trigger of a kind.
type Closer struct {
	// Trigger is the matched text.
	Trigger string

	// Trim is the number of trailing trigger characters that belong to the
	// enclosing construct and are handed back after closing.
	Trim int

	// Foreign is the closing spelling in the target the node is not spelled in.
	Foreign string

	// Line restricts the closer by indentation.
	Line LineRule

	// Lead is text a LineSame closer requires right after the matched
	// indentation. It is left for the enclosing construct.
	Lead string
}

// effective returns the text the closer matches for a construct opened on
// a line indented by indent.
func (c Closer) effective(indent string) string {
	if c.Line == LineSame {
		return c.Trigger + indent
	}
	return c.Trigger
}

// admits reports whether a closer whose effective trigger matched at pos
// satisfies its line rule.
func (c Closer) admits(src string, pos int, indent string) bool {
	switch c.Line {
	case LineSame:
		rest := src[pos+len(c.effective(indent)):]
		if rest == "" || strings.ContainsRune(" \t\r\n", rune(rest[0])) {
			return false
		}
		return strings.HasPrefix(rest, c.Lead)
	case LineOutdent:
		next := src[pos+len(c.Trigger):]
		if end := strings.IndexByte(next, '\n'); end >= 0 {
			next = next[:end]
		}
		body := strings.TrimLeft(next, " \t")
		if strings.TrimSpace(body) == "" {
			return false
		}
		return len(next)-len(body) < len(indent)
	default:
		return true
	}
}

// RenderFunc renders one construct node into one target.
type RenderFunc func(r *Rendering) string

// Kind is the declarative description of a construct.
type Kind struct {
	ID      KindID
	Openers []Opener
	Closers []Closer

	// Opaque is the number of characters consumed verbatim after the opener.
	Opaque int

	// Scope selects the child table used while the construct is open.
	Scope Scope

	// Local kinds are bound only in scopes that name them explicitly.
	Local bool

	// Render overrides the marker-based rendering, indexed by Target.
	Render [2]RenderFunc
}

// Token reports whether the kind closes as soon as its opener is consumed.
func (k *Kind) Token() bool {
	return len(k.Closers) == 0
}

// Triggers returns the kind's opening triggers in order.
func (k *Kind) Triggers() []string {
	out := make([]string, len(k.Openers))
	for i, o := range k.Openers {
		out[i] = o.Trigger
	}
	return out
}

func (k *Kind) opener(trigger string) int {
	for i, o := range k.Openers {
		if o.Trigger == trigger {
			return i
		}
	}
	return -1
}

// Validate checks trims and closer precedence.
func (k *Kind) Validate() error {
	var errs []error
	if len(k.Openers) == 0 {
		errs = append(errs, fmt.Errorf("%w: %v has no openers", ErrInvalidKind, k.ID))
	}
	for _, o := range k.Openers {
		if o.Trim < 0 || o.Trim >= len(o.Trigger) {
			errs = append(errs, fmt.Errorf("%w: %v opener %q trims %d", ErrInvalidKind, k.ID, o.Trigger, o.Trim))
		}
		if o.Trim > 0 && !k.Token() {
			errs = append(errs, fmt.Errorf("%w: %v opener %q trims but the kind has closers", ErrInvalidKind, k.ID, o.Trigger))
		}
	}

	var closers []string
	for _, c := range k.Closers {
		if c.Trim < 0 || c.Trim > len(c.Trigger) {
			errs = append(errs, fmt.Errorf("%w: %v closer %q trims %d", ErrInvalidKind, k.ID, c.Trigger, c.Trim))
		}
		switch {
		case c.Line == LineAny:
			closers = append(closers, c.Trigger)
		case c.Line == LineSame && c.Trim != 0:
			errs = append(errs, fmt.Errorf("%w: %v closer %q trims matched indentation", ErrInvalidKind, k.ID, c.Trigger))
		}
		if c.Lead != "" && c.Line != LineSame {
			errs = append(errs, fmt.Errorf("%w: %v closer %q has a lead without LineSame", ErrInvalidKind, k.ID, c.Trigger))
		}
	}
	if err := pattern.Validate(closers); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v closers: %w", ErrInvalidKind, k.ID, err))
	}
	return errors.Join(errs...)
}
