// Package convert is the library entry point: it turns source text written
// in either syntax into the requested one.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/langdetect"
)

// ErrUnknownTarget is returned for target names other than py, js and auto.
var ErrUnknownTarget = errors.New("unknown target")

// TargetAuto asks ResolveTarget to pick the syntax the source is not in.
const TargetAuto = "auto"

// Converter renders source text through one catalogue. It holds no mutable
// state and is safe for concurrent use.
type Converter struct {
	catalogue *construct.Catalogue
}

// New returns a converter over cat.
func New(cat *construct.Catalogue) *Converter {
	return &Converter{catalogue: cat}
}

// NewDefault returns a converter over the full catalogue.
func NewDefault() (*Converter, error) {
	cat, err := construct.NewCatalogue()
	if err != nil {
		return nil, fmt.Errorf("default catalogue: %w", err)
	}
	return New(cat), nil
}

// Catalogue returns the catalogue the converter parses with.
func (c *Converter) Catalogue() *construct.Catalogue {
	return c.catalogue
}

// Parse builds the construct tree for src.
func (c *Converter) Parse(src string) (*construct.Tree, error) {
	tree, err := c.catalogue.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return tree, nil
}

// RenderAs converts src into target.
func (c *Converter) RenderAs(src string, target construct.Target) (string, error) {
	tree, err := c.Parse(src)
	if err != nil {
		return "", err
	}
	return tree.Render(target), nil
}

// Python converts src into Python.
func (c *Converter) Python(src string) (string, error) {
	return c.RenderAs(src, construct.Python)
}

// JavaScript converts src into JavaScript.
func (c *Converter) JavaScript(src string) (string, error) {
	return c.RenderAs(src, construct.JavaScript)
}

// Result is the outcome of converting one source text.
type Result struct {
	// Input is the source as given.
	Input []byte

	// Output is the converted text.
	Output []byte

	// Target is the syntax Output is written in.
	Target construct.Target

	// Diagnostics lists constructs that were still open at end of input.
	Diagnostics []Diagnostic
}

// Changed reports whether conversion altered the text.
func (r *Result) Changed() bool {
	return string(r.Input) != string(r.Output)
}

// Diagnostic describes a construct whose closer never appeared.
type Diagnostic struct {
	Kind    construct.KindID `json:"kind"`
	Line    int              `json:"line"`
	Column  int              `json:"column"`
	Opening string           `json:"opening"`
}

// Message returns a one-line human readable description.
func (d Diagnostic) Message() string {
	return fmt.Sprintf("unterminated %v opened by %q", d.Kind, d.Opening)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message())
}

// Convert converts src into target and reports unterminated constructs.
func (c *Converter) Convert(src []byte, target construct.Target) (*Result, error) {
	tree, err := c.Parse(string(src))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Input:  src,
		Output: []byte(tree.Render(target)),
		Target: target,
	}
	for _, n := range tree.Unterminated() {
		line, col := tree.LineAt(n.Start)
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    n.Kind,
			Line:    line,
			Column:  col,
			Opening: n.Opening,
		})
	}
	return result, nil
}

// ResolveTarget maps a requested target name to a Target. "auto" detects
// the syntax of src and picks the other one; when detection fails the
// result is JavaScript.
func ResolveTarget(src []byte, filename, requested string) (construct.Target, error) {
	if strings.EqualFold(strings.TrimSpace(requested), TargetAuto) {
		source, ok := langdetect.Detect(filename, src)
		if !ok {
			return construct.JavaScript, nil
		}
		return source.Other(), nil
	}

	target, err := construct.ParseTarget(requested)
	if err != nil {
		return 0, fmt.Errorf("%w %q; valid targets: py, js, auto", ErrUnknownTarget, requested)
	}
	return target, nil
}
