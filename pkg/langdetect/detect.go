// Package langdetect decides which of the two supported syntaxes a source
// text is written in. It uses go-enry for file names, shebangs and its
// classifier, and falls back to counting syntax markers.
package langdetect

import (
	"bytes"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/jiphy/pkg/construct"
)

// Language names as reported by go-enry.
const (
	enryPython     = "Python"
	enryJavaScript = "JavaScript"
)

// minScoreLead is how many more markers one syntax needs before the
// marker count is trusted over the classifier.
const minScoreLead = 2

//nolint:gochecknoglobals // Read-only marker tables.
var (
	pythonMarkers = [][]byte{
		[]byte("def "), []byte("):\n"), []byte("elif "), []byte(" is not "),
		[]byte(" is "), []byte("None"), []byte("True"), []byte("False"),
		[]byte("print("), []byte("'''"), []byte(`"""`), []byte("# "),
		[]byte(": pass\n"), []byte(" and "), []byte(" or "), []byte("del "),
	}
	javaScriptMarkers = [][]byte{
		[]byte("function "), []byte(") {"), []byte("console.log"), []byte(";\n"),
		[]byte("var "), []byte("let "), []byte("const "), []byte("==="),
		[]byte("!=="), []byte("null"), []byte("undefined"), []byte("// "),
		[]byte("/*"), []byte("require("), []byte(" && "), []byte(" || "),
	}
	candidates = []string{enryPython, enryJavaScript}
)

// Detect returns the syntax content is written in. The boolean is false
// when no strategy produced an answer.
func Detect(filename string, content []byte) (construct.Target, bool) {
	// Strategy 1: a known file extension.
	if filename != "" {
		if target, ok := fromEnry(enry.GetLanguageByExtension(filename)); ok {
			return target, true
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return 0, false
	}

	// Strategy 2: shebang line.
	if target, ok := fromEnry(enry.GetLanguageByShebang(content)); ok {
		return target, true
	}

	// Strategy 3: a clear lead in syntax markers.
	py, js := Score(content)
	switch {
	case py >= js+minScoreLead:
		return construct.Python, true
	case js >= py+minScoreLead:
		return construct.JavaScript, true
	}

	// Strategy 4: the classifier, restricted to the two candidates.
	if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
		return fromEnry(lang, true)
	}

	switch {
	case py > js:
		return construct.Python, true
	case js > py:
		return construct.JavaScript, true
	default:
		return 0, false
	}
}

// Score counts the distinct Python and JavaScript markers present in content.
func Score(content []byte) (int, int) {
	return countMarkers(content, pythonMarkers), countMarkers(content, javaScriptMarkers)
}

func countMarkers(content []byte, markers [][]byte) int {
	n := 0
	for _, marker := range markers {
		if bytes.Contains(content, marker) {
			n++
		}
	}
	return n
}

func fromEnry(lang string, safe bool) (construct.Target, bool) {
	if !safe {
		return 0, false
	}
	switch lang {
	case enryPython:
		return construct.Python, true
	case enryJavaScript:
		return construct.JavaScript, true
	default:
		return 0, false
	}
}
