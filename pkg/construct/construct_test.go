package construct_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/pattern"
)

// equivalents are source texts that convert into each other exactly.
//
//nolint:gochecknoglobals // Shared read-only fixtures.
var equivalents = []struct {
	name string
	py   string
	js   string
}{
	{"import", "import something\n", "var something = require('something');\n"},
	{"import alias", "import underscore as _\n", "var _ = require('underscore');\n"},
	{"import with comment", "import os # system\n", "var os = require('os'); // system\n"},
	{"print", "print('something')\n", "console.log('something');\n"},
	{"identity comparison", "True is not True\n", "true !== true;\n"},
	{"null", "x = None\n", "x = null;\n"},
	{"undefined", "x = Unset\n", "x = undefined;\n"},
	{"negation", "y = not x\n", "y = !x;\n"},
	{"boolean operators", "a and b or c\n", "a && b || c;\n"},
	{"delete", "del x\n", "delete x;\n"},
	{"line comment", "# comment\n", "// comment\n"},
	{
		"block comment",
		"\"\"\"Test comment\n    line two\n\"\"\"\n",
		"/* Test comment\n    line two\n*/\n",
	},
	{
		"multi-line string",
		"x = '''line one\nline two'''\n",
		"x = 'line one\\n' +\n'line two';\n",
	},
	{
		"function",
		"def my_function(test):\n    some_other_function(test)\n\n",
		"function my_function(test) {\n    some_other_function(test);\n}\n",
	},
	{"empty function", "def my_function(): pass\n", "function my_function() {}\n"},
	{
		"if block",
		"if x is True:\n    y()\n\n",
		"if (x === true) {\n    y();\n}\n",
	},
	{"empty if block", "if x:\n    pass\n\n", "if (x) {\n\n}\n"},
	{
		"elif chain",
		"if x:\n    a()\nelif y:\n    b()\n\n",
		"if (x) {\n    a();\n} else if (y) {\n    b();\n}\n",
	},
	{
		"else clause",
		"if x:\n    a()\nelse:\n    b()\n\n",
		"if (x) {\n    a();\n} else {\n    b();\n}\n",
	},
	{
		"for loop",
		"for x in items:\n    print(x)\n\n",
		"for (x in items) {\n    console.log(x);\n}\n",
	},
	{
		"while loop",
		"while running:\n    step()\n\n",
		"while (running) {\n    step();\n}\n",
	},
	{
		"object literal",
		"config = {\n    'a': True,\n}\n",
		"config = {\n    'a': true,\n}\n",
	},
	{
		"nested blocks",
		"def f():\n    if x:\n        y()\n\n    z()\n\n",
		"function f() {\n    if (x) {\n        y();\n    }\n    z();\n}\n",
	},
	{
		"elif after nested block",
		"if a:\n    if b:\n        x()\n\nelif c:\n    y()\n\n",
		"if (a) {\n    if (b) {\n        x();\n    }\n} else if (c) {\n    y();\n}\n",
	},
	{
		"multi-line string with apostrophe",
		"x = '''it's\nok'''\n",
		"x = 'it\\'s\\n' +\n'ok';\n",
	},
	{"comprehension", "ys = [x for x in xs if x]\n", "ys = [x for x in xs if x];\n"},
	{"conditional expression", "x = a if b else c\n", "x = a if b else c;\n"},
	{"from import", "from os import path\n", "from os import path;\n"},
}

func newCatalogue(t *testing.T, ids ...construct.KindID) *construct.Catalogue {
	t.Helper()

	cat, err := construct.NewCatalogue(ids...)
	require.NoError(t, err)
	return cat
}

func render(t *testing.T, cat *construct.Catalogue, src string, target construct.Target) string {
	t.Helper()

	tree, err := cat.Parse(src)
	require.NoError(t, err)
	return tree.Render(target)
}

func TestRender_CrossConversion(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)
	for _, tc := range equivalents {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.js, render(t, cat, tc.py, construct.JavaScript), "python to javascript")
			assert.Equal(t, tc.py, render(t, cat, tc.js, construct.Python), "javascript to python")
		})
	}
}

func TestRender_SameTargetIsFixedPoint(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)
	for _, tc := range equivalents {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.py, render(t, cat, tc.py, construct.Python))
			assert.Equal(t, tc.js, render(t, cat, tc.js, construct.JavaScript))
		})
	}
}

func TestRender_PreservesLineCount(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)
	for _, tc := range equivalents {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t,
				strings.Count(tc.py, "\n"),
				strings.Count(render(t, cat, tc.py, construct.JavaScript), "\n"))
			assert.Equal(t,
				strings.Count(tc.js, "\n"),
				strings.Count(render(t, cat, tc.js, construct.Python), "\n"))
		})
	}
}

func TestRender_OneWayConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		target construct.Target
		want   string
	}{
		{"var declaration", "var x = 10;\n", construct.Python, "x = 10\n"},
		{"let declaration", "let x = 10;\n", construct.Python, "x = 10\n"},
		{"require with extension", "var fs = require('fs.js');\n", construct.Python, "import fs\n"},
		{"word guarded print", "sprint(x)\n", construct.JavaScript, "sprint(x);\n"},
		{"word guarded keyword", "Trueish = 1\n", construct.JavaScript, "Trueish = 1;\n"},
		{"method call keeps name", "obj.print(x)\n", construct.JavaScript, "obj.print(x);\n"},
		{"not equal stays", "a != b;\n", construct.Python, "a != b\n"},
		{"continued line", "x = 1 + \\\n    2\n", construct.JavaScript, "x = 1 + \\\n    2;\n"},
		{"open bracket needs no terminator", "f(\n    a,\n)\n", construct.JavaScript, "f(\n    a,\n);\n"},
		{"not in", "x not in y\n", construct.JavaScript, "x not in y;\n"},
		{
			"elif after nested block without blank line",
			"if a:\n    if b:\n        x()\nelif c:\n    y()\n\n",
			construct.JavaScript,
			"if (a) {\n    if (b) {\n        x();\n    }\n} else if (c) {\n    y();\n}\n",
		},
		{
			"else after nested block",
			"if a:\n    if b:\n        x()\nelse:\n    y()\n\n",
			construct.JavaScript,
			"if (a) {\n    if (b) {\n        x();\n    }\n} else {\n    y();\n}\n",
		},
		{
			"tab indented blocks",
			"if a:\n\tif b:\n\t\tx()\nelse:\n\ty()\n\n",
			construct.JavaScript,
			"if (a) {\n\tif (b) {\n\t\tx();\n\t}\n} else {\n\ty();\n}\n",
		},
		{
			"dedent past two blocks",
			"if a:\n    if b:\n        x()\ny()\n",
			construct.JavaScript,
			"if (a) {\n    if (b) {\n        x();\n    }\n}\ny();\n",
		},
		{
			"dedent below an indented block",
			"    if b:\n        x()\ny()\n",
			construct.JavaScript,
			"    if (b) {\n        x();\n    }\ny();\n",
		},
		{
			"statement after block at the same indent",
			"def f():\n    if x:\n        y()\n    z()\n\n",
			construct.JavaScript,
			"function f() {\n    if (x) {\n        y();\n    }\n    z();\n}\n",
		},
		{
			"nested else binds to the outer block",
			"if (a) {\n    if (b) {\n        x();\n    }\n} else {\n    y();\n}\n",
			construct.Python,
			"if a:\n    if b:\n        x()\n\nelse:\n    y()\n\n",
		},
		{"header without colon", "while True\n", construct.JavaScript, "while true;\n"},
	}

	cat := newCatalogue(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, render(t, cat, tc.src, tc.target))
		})
	}
}

func TestParse_EscapesAreAtomic(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)

	tree, err := cat.Parse(`"""a\""""` + "\n")
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 2)

	doc := tree.Root.Children[0]
	assert.Equal(t, construct.KindDocString, doc.Kind)
	assert.True(t, doc.Terminated)
	assert.Equal(t, `"""`, doc.Closing)
	require.Len(t, doc.Children, 2)
	assert.Equal(t, "a", doc.Children[0].Text)
	assert.Equal(t, construct.KindEscape, doc.Children[1].Kind)
	assert.Equal(t, construct.KindTerminator, tree.Root.Children[1].Kind)

	assert.Equal(t, "x = 'a\\'b';\n", render(t, cat, "x = 'a\\'b'\n", construct.JavaScript))
}

func TestParse_LongestTriggerWins(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)

	tree, err := cat.Parse("a is not b\n")
	require.NoError(t, err)

	var kinds []construct.KindID
	for _, child := range tree.Root.Children {
		kinds = append(kinds, child.Kind)
	}
	assert.Equal(t, []construct.KindID{
		construct.KindText,
		construct.KindIsNot,
		construct.KindText,
		construct.KindTerminator,
	}, kinds)
}

func TestParse_CuratedCatalogue(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t, construct.KindTerminator, construct.KindTrue)
	assert.Equal(t, []construct.KindID{construct.KindTrue, construct.KindTerminator}, cat.Kinds())
	assert.Nil(t, cat.Kind(construct.KindPrint))

	assert.Equal(t, "print(true);\n", render(t, cat, "print(True)\n", construct.JavaScript))
}

func TestParse_Unterminated(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)

	tree, err := cat.Parse("x = '''never closed")
	require.NoError(t, err)

	open := tree.Unterminated()
	require.Len(t, open, 1)
	assert.Equal(t, construct.KindBlockString, open[0].Kind)
	assert.Empty(t, open[0].Closing)
	assert.Equal(t, -1, open[0].Closer)

	line, col := tree.LineAt(open[0].Start)
	assert.Equal(t, 1, line)
	assert.Equal(t, 5, col)

	assert.Equal(t, "x = 'never closed", tree.Render(construct.JavaScript))
	assert.Equal(t, "x = '''never closed", tree.Render(construct.Python))
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	tree, err := newCatalogue(t).Parse("")
	require.NoError(t, err)
	assert.Empty(t, tree.Root.Children)
	assert.Empty(t, tree.Render(construct.JavaScript))
}

func TestTree_LineAt(t *testing.T) {
	t.Parallel()

	tree, err := newCatalogue(t).Parse("a\nbc\n\nd")
	require.NoError(t, err)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{5, 3, 1},
		{6, 4, 1},
		{100, 4, 2},
	}
	for _, tc := range tests {
		line, col := tree.LineAt(tc.offset)
		assert.Equal(t, tc.wantLine, line, "offset %d", tc.offset)
		assert.Equal(t, tc.wantCol, col, "offset %d", tc.offset)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	tree, err := newCatalogue(t).Parse("True and False\n")
	require.NoError(t, err)

	var visited int
	stop := assert.AnError
	err = construct.Walk(tree.Root, func(n *construct.Node) error {
		visited++
		if n.Kind == construct.KindAnd {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, visited)
}

func TestDump(t *testing.T) {
	t.Parallel()

	tree, err := newCatalogue(t).Parse("x = '''a")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, construct.Dump(&buf, tree))

	want := strings.Join([]string{
		`Document`,
		`  Text "x = "`,
		`  BlockString "'''"..""` + " 1:5 unterminated",
		`    Text "a"`,
		``,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestCatalogue_TablesHaveNoShadowedTriggers(t *testing.T) {
	t.Parallel()

	cat := newCatalogue(t)
	for _, scope := range []construct.Scope{
		construct.ScopeGlobal,
		construct.ScopeEscapes,
		construct.ScopeString,
		construct.ScopeLiteral,
		construct.ScopeDecl,
	} {
		require.NoError(t, pattern.Validate(cat.Table(scope).Triggers()), "scope %d", scope)
	}

	global := cat.Table(construct.ScopeGlobal)
	_, ok := global.Lookup("\\n' +\n'")
	assert.False(t, ok, "continuations are only recognized inside strings")

	_, ok = cat.Table(construct.ScopeLiteral).Lookup("\n")
	assert.False(t, ok, "literals span lines")

	id, ok := global.Lookup(" !== ")
	assert.True(t, ok)
	assert.Equal(t, construct.KindIsNot, id)
}

func TestKindID_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ColonBlock", construct.KindColonBlock.String())
	assert.Equal(t, "KindID(200)", construct.KindID(200).String())
}

func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    construct.Target
		wantErr bool
	}{
		{"py", construct.Python, false},
		{"Python", construct.Python, false},
		{" js ", construct.JavaScript, false},
		{"javascript", construct.JavaScript, false},
		{"ts", 0, true},
	}
	for _, tc := range tests {
		got, err := construct.ParseTarget(tc.in)
		if tc.wantErr {
			require.ErrorIs(t, err, construct.ErrUnknownTarget)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	assert.Equal(t, construct.JavaScript, construct.Python.Other())
	assert.Equal(t, construct.Python, construct.JavaScript.Other())
	assert.Equal(t, "py", construct.Python.Extension())
	assert.Equal(t, "JavaScript", construct.JavaScript.Name())
}
