package construct

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/jiphy/pkg/pattern"
)

// blockGuard lists characters after which " {" opens an object literal
// rather than a block.
const blockGuard = "=,:([{!&|?+-*/<>"

// Catalogue is an immutable set of kinds together with the pattern tables
// derived from them. Build one with NewCatalogue and share it freely.
type Catalogue struct {
	kinds  [kindCount]*Kind
	order  []KindID
	scopes [scopeCount]*pattern.Table[KindID]
}

// NewCatalogue builds a catalogue from the named kinds, or from every kind
// when none are named. Kinds are always registered in the fixed precedence
// order, whatever order they are named in.
func NewCatalogue(ids ...KindID) (*Catalogue, error) {
	return newCatalogue(definitions(), ids)
}

func newCatalogue(defs []Kind, ids []KindID) (*Catalogue, error) {
	cat := &Catalogue{}
	var errs []error

	full := pattern.NewBuilder[KindID]()
	var local []string
	for i := range defs {
		kind := &defs[i]
		if len(ids) > 0 && !slices.Contains(ids, kind.ID) {
			continue
		}
		if err := kind.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		cat.kinds[kind.ID] = kind
		cat.order = append(cat.order, kind.ID)
		for _, o := range kind.Openers {
			full.Bind(pattern.Binding[KindID]{
				Trigger:   o.Trigger,
				Kind:      kind.ID,
				NotAfter:  o.NotAfter,
				NotBefore: o.NotBefore,
				LineStart: o.LineStart,
			})
		}
		if kind.Local {
			local = append(local, kind.Triggers()...)
		}
	}

	table, err := full.Build()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("build catalogue: %w", errors.Join(errs...))
	}

	global := table.Derive(local...)
	cat.scopes[ScopeNone] = table.Select()
	cat.scopes[ScopeGlobal] = global
	cat.scopes[ScopeEscapes] = table.Select(cat.triggers(KindEscape)...)
	cat.scopes[ScopeString] = table.Select(cat.triggers(KindContinuation, KindEscape)...)
	cat.scopes[ScopeLiteral] = global.Derive(cat.triggers(KindTerminator, KindColonBlock, KindBraceBlock, KindEmptyBlock)...)
	cat.scopes[ScopeDecl] = global.Derive(cat.triggers(KindVarDecl, KindImport)...)
	return cat, nil
}

// Kind returns the declaration for id, or nil if the catalogue lacks it.
func (c *Catalogue) Kind(id KindID) *Kind {
	if id >= kindCount {
		return nil
	}
	return c.kinds[id]
}

// Kinds returns the catalogued kinds in precedence order.
func (c *Catalogue) Kinds() []KindID {
	return slices.Clone(c.order)
}

// Table returns the pattern table for a scope.
func (c *Catalogue) Table(scope Scope) *pattern.Table[KindID] {
	return c.scopes[scope]
}

func (c *Catalogue) triggers(ids ...KindID) []string {
	var out []string
	for _, id := range ids {
		if kind := c.Kind(id); kind != nil {
			out = append(out, kind.Triggers()...)
		}
	}
	return out
}

func definitions() []Kind {
	return []Kind{
		{
			ID:    KindContinuation,
			Local: true,
			Openers: []Opener{
				{Trigger: continuation, Target: JavaScript, Foreign: "\n"},
			},
		},
		{
			ID:      KindEscape,
			Openers: []Opener{{Trigger: `\`, Target: Both}},
			Opaque:  1,
		},
		{
			ID:      KindDocString,
			Openers: []Opener{{Trigger: `"""`, Target: Python, Foreign: "/* "}},
			Closers: []Closer{{Trigger: `"""`, Foreign: "*/"}},
			Scope:   ScopeEscapes,
		},
		{
			ID: KindBlockComment,
			Openers: []Opener{
				{Trigger: "/* ", Target: JavaScript, Foreign: `"""`},
				{Trigger: "/*", Target: JavaScript, Foreign: `"""`},
			},
			Closers: []Closer{{Trigger: "*/", Foreign: `"""`}},
			Scope:   ScopeEscapes,
		},
		{
			ID:      KindBlockString,
			Openers: []Opener{{Trigger: "'''", Target: Python, Foreign: "'"}},
			Closers: []Closer{{Trigger: "'''", Foreign: "'"}},
			Scope:   ScopeEscapes,
			Render:  [2]RenderFunc{JavaScript: renderBlockStringJS},
		},
		{
			ID:      KindSingleQuoted,
			Openers: []Opener{{Trigger: "'", Target: Both}},
			Closers: []Closer{{Trigger: "'"}, {Trigger: "\n", Trim: 1}},
			Scope:   ScopeString,
			Render:  [2]RenderFunc{Python: renderSingleQuotedPy},
		},
		{
			ID:      KindDoubleQuoted,
			Openers: []Opener{{Trigger: `"`, Target: Both}},
			Closers: []Closer{{Trigger: `"`}, {Trigger: "\n", Trim: 1}},
			Scope:   ScopeEscapes,
		},
		{
			ID:      KindTemplate,
			Openers: []Opener{{Trigger: "`", Target: Both}},
			Closers: []Closer{{Trigger: "`"}},
			Scope:   ScopeEscapes,
		},
		{
			ID: KindLineComment,
			Openers: []Opener{
				{Trigger: "# ", Target: Python, Foreign: "// "},
				{Trigger: "// ", Target: JavaScript, Foreign: "# "},
			},
			Closers: []Closer{{Trigger: "\n", Foreign: "\n"}},
			Scope:   ScopeNone,
		},
		{
			ID:      KindImport,
			Openers: []Opener{{Trigger: "import ", Target: Python, Foreign: "var ", LineStart: true}},
			Closers: []Closer{
				{Trigger: "\n", Foreign: "\n"},
				{Trigger: " # ", Trim: 2, Foreign: " "},
				{Trigger: " // ", Trim: 3, Foreign: " "},
			},
			Scope:  ScopeNone,
			Render: [2]RenderFunc{JavaScript: renderImportJS},
		},
		{
			ID: KindVarDecl,
			Openers: []Opener{
				{Trigger: "var ", Target: JavaScript},
				{Trigger: "let ", Target: JavaScript},
				{Trigger: "const ", Target: JavaScript},
			},
			Closers: []Closer{{Trigger: ";"}, {Trigger: "\n", Trim: 1}},
			Scope:   ScopeDecl,
			Render:  [2]RenderFunc{Python: renderVarDeclPy},
		},
		{
			ID: KindEmptyBlock,
			Openers: []Opener{
				{Trigger: ": pass\n", Target: Python, Foreign: " {}\n"},
				{Trigger: " {}\n", Target: JavaScript, Foreign: ": pass\n", NotAfter: blockGuard},
			},
		},
		{
			ID: KindParenHeader,
			Openers: []Opener{
				{Trigger: "if (", Target: JavaScript, Foreign: "if "},
				{Trigger: "else if (", Target: JavaScript, Foreign: "elif "},
				{Trigger: "while (", Target: JavaScript, Foreign: "while "},
				{Trigger: "for (", Target: JavaScript, Foreign: "for "},
			},
			Closers: []Closer{
				{Trigger: ") {\n", Trim: 3},
				{Trigger: ") {}\n", Trim: 4},
				{Trigger: ";\n", Trim: 2},
				{Trigger: "\n", Trim: 1},
			},
			Scope: ScopeGlobal,
		},
		{
			ID: KindColonHeader,
			Openers: []Opener{
				{Trigger: "if ", Target: Python, Foreign: "if (", LineStart: true},
				{Trigger: "elif ", Target: Python, Foreign: "else if (", LineStart: true},
				{Trigger: "while ", Target: Python, Foreign: "while (", LineStart: true},
				{Trigger: "for ", Target: Python, Foreign: "for (", LineStart: true},
			},
			Closers: []Closer{
				{Trigger: ":\n", Trim: 2, Foreign: ")"},
				{Trigger: ": pass\n", Trim: 7, Foreign: ")"},
				{Trigger: "\n", Trim: 1},
			},
			Scope:  ScopeGlobal,
			Render: [2]RenderFunc{JavaScript: renderColonHeaderJS},
		},
		{
			ID: KindColonBlock,
			Openers: []Opener{
				{Trigger: "):\n", Target: Python, Foreign: ") {\n"},
				{Trigger: ":\n", Target: Python, Foreign: " {\n"},
			},
			Closers: []Closer{
				{Trigger: "\n\n", Trim: 1, Foreign: "\n}"},
				{Trigger: "\n", Line: LineSame, Lead: "elif ", Foreign: "\n} "},
				{Trigger: "\n", Line: LineSame, Lead: "else:", Foreign: "\n} "},
				{Trigger: "\n", Line: LineSame, Foreign: "\n}\n"},
				{Trigger: "\n", Line: LineOutdent, Trim: 1, Foreign: "\n}"},
			},
			Scope:  ScopeGlobal,
			Render: [2]RenderFunc{JavaScript: renderColonBlockJS},
		},
		{
			ID: KindBraceBlock,
			Openers: []Opener{
				{Trigger: ") {\n", Target: JavaScript, Foreign: "):\n"},
				{Trigger: " {\n", Target: JavaScript, Foreign: ":\n", NotAfter: blockGuard},
			},
			Closers: []Closer{
				{Trigger: "} else ", Trim: 5},
				{Trigger: "}"},
			},
			Scope:  ScopeGlobal,
			Render: [2]RenderFunc{Python: renderBraceBlockPy},
		},
		{
			ID:      KindObject,
			Openers: []Opener{{Trigger: "{", Target: Both}},
			Closers: []Closer{{Trigger: "}"}},
			Scope:   ScopeLiteral,
		},
		pair(KindIsNot, " is not ", " !== "),
		pair(KindIs, " is ", " === "),
		{
			ID:      KindNotIn,
			Openers: []Opener{{Trigger: " not in ", Target: Both}},
		},
		{
			ID: KindNot,
			Openers: []Opener{
				{Trigger: "not ", Target: Python, Foreign: "!"},
				{Trigger: "!", Target: JavaScript, Foreign: "not ", NotBefore: "="},
			},
		},
		pair(KindAnd, " and ", " && "),
		pair(KindOr, " or ", " || "),
		pair(KindTrue, "True", "true"),
		pair(KindFalse, "False", "false"),
		pair(KindNull, "None", "null"),
		pair(KindUndefined, "Unset", "undefined"),
		pair(KindPrint, "print", "console.log"),
		pair(KindFunction, "def ", "function "),
		pair(KindDelete, "del ", "delete "),
		{
			ID:      KindNoop,
			Openers: []Opener{{Trigger: "pass\n", Target: Python, Trim: 1}},
		},
		{
			ID: KindTerminator,
			Openers: []Opener{
				{Trigger: ";\n", Target: JavaScript, Foreign: "\n"},
				{Trigger: "\n", Target: Both},
			},
			Render: [2]RenderFunc{JavaScript: renderTerminatorJS},
		},
	}
}

// pair declares a token spelled py in Python and js in JavaScript.
func pair(id KindID, py, js string) Kind {
	return Kind{
		ID: id,
		Openers: []Opener{
			{Trigger: py, Target: Python, Foreign: js},
			{Trigger: js, Target: JavaScript, Foreign: py},
		},
	}
}
