package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/jiphy/internal/logging"
	"github.com/yaklabco/jiphy/pkg/config"
	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/convert"
	"github.com/yaklabco/jiphy/pkg/diff"
	"github.com/yaklabco/jiphy/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrReadFailure indicates the source could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrConvertFailure indicates the source could not be converted.
	ErrConvertFailure = errors.New("convert failure")

	// ErrWriteFailure indicates the output could not be written.
	ErrWriteFailure = errors.New("write failure")

	// ErrOutputIsSource indicates the output path resolves to the source
	// file itself.
	ErrOutputIsSource = errors.New("output path is the source file")
)

// PipelineOptions controls per-file processing.
type PipelineOptions struct {
	// Target is the requested target name: py, js or auto.
	Target string

	// OutExt overrides the output extension (without leading dot).
	// Empty means the target's conventional extension.
	OutExt string

	// OutDir is the directory outputs are written to. Empty means next to
	// the source file.
	OutDir string

	// BaseDir is the directory source paths are made relative to when
	// mirroring them under OutDir.
	BaseDir string

	// KeepTrailingWhitespace disables stripping trailing blanks from each
	// output line.
	KeepTrailingWhitespace bool

	// Backup saves the previous output file before overwriting it.
	Backup bool

	// DryRun converts without writing.
	DryRun bool

	// DiffOnly converts without writing; the outcome carries the diff.
	DiffOnly bool
}

// PipelineOptionsFromConfig derives pipeline options from a resolved configuration.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	return PipelineOptions{
		Target:                 cfg.Target,
		OutExt:                 cfg.OutExt,
		OutDir:                 cfg.OutDir,
		KeepTrailingWhitespace: cfg.KeepTrailingWhitespace,
		Backup:                 cfg.Backups.Enabled,
		DryRun:                 cfg.DryRun,
		DiffOnly:               cfg.Diff,
	}
}

// writes reports whether outputs go to disk.
func (o PipelineOptions) writes() bool {
	return !o.DryRun && !o.DiffOnly
}

// Pipeline converts a single file.
type Pipeline struct {
	// Converter renders the source text.
	Converter *convert.Converter
}

// NewPipeline creates a new pipeline with the given converter.
func NewPipeline(conv *convert.Converter) *Pipeline {
	return &Pipeline{Converter: conv}
}

// ProcessFile converts one file and writes the result.
//
// The pipeline performs the following steps:
//  1. Read the source file.
//  2. Resolve the target and convert.
//  3. Generate the diff.
//  4. Create a backup of the existing output (if enabled).
//  5. Write the output atomically, keeping the source's permissions.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) FileOutcome {
	ctx, logger := logging.ForFile(ctx, path)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("%w: %w", ErrReadFailure, err)}
	}

	outcome := p.ProcessContent(ctx, path, content, opts)
	if outcome.Error != nil {
		logger.Debug("conversion failed", logging.FieldError, outcome.Error)
		return outcome
	}
	outcome.OutputPath = OutputPath(path, opts, outcome.Target)

	for _, d := range outcome.Result.Diagnostics {
		logger.Warn(d.Message(),
			logging.FieldKind, d.Kind.String(),
			logging.FieldLine, d.Line,
			logging.FieldColumn, d.Column,
		)
	}

	if !opts.writes() {
		return outcome
	}

	if filepath.Clean(outcome.OutputPath) == filepath.Clean(path) {
		outcome.Error = fmt.Errorf("%w: %w: %s (set --out-ext or --out-dir)",
			ErrWriteFailure, ErrOutputIsSource, path)
		return outcome
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, outcome.OutputPath)
		if err != nil {
			outcome.Error = fmt.Errorf("%w: create backup: %w", ErrWriteFailure, err)
			return outcome
		}
		outcome.BackedUp = created
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, outcome.Result.Output, info.Mode)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrWriteFailure, err)
		return outcome
	}
	outcome.Written = written

	logger.Debug("converted",
		logging.FieldOutput, outcome.OutputPath,
		logging.FieldTarget, outcome.Target.String(),
	)
	return outcome
}

// ProcessContent converts in-memory content without file I/O. name is used
// for target detection and diff labels.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	name string,
	content []byte,
	opts PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: name}

	select {
	case <-ctx.Done():
		outcome.Error = fmt.Errorf("processing cancelled: %w", ctx.Err())
		return outcome
	default:
	}

	target, err := convert.ResolveTarget(content, name, opts.Target)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrConvertFailure, err)
		return outcome
	}
	outcome.Target = target

	result, err := p.Converter.Convert(content, target)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrConvertFailure, err)
		return outcome
	}
	if !opts.KeepTrailingWhitespace {
		result.Output = StripTrailingWhitespace(result.Output)
	}

	outcome.Result = result
	outcome.Diff = diff.Generate(name, content, result.Output)
	return outcome
}

// OutputPath returns where the conversion of source into target is written:
// the source's directory (or its mirror under opts.OutDir) joined with the
// source's base name and the output extension.
func OutputPath(source string, opts PipelineOptions, target construct.Target) string {
	dir := filepath.Dir(source)
	if opts.OutDir != "" {
		dir = opts.OutDir
		if opts.BaseDir != "" {
			rel, err := filepath.Rel(opts.BaseDir, filepath.Dir(source))
			if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				dir = filepath.Join(opts.OutDir, rel)
			}
		}
	}

	ext := strings.TrimLeft(opts.OutExt, ".")
	if ext == "" {
		ext = target.Extension()
	}

	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"."+ext)
}

// StripTrailingWhitespace removes spaces and tabs at the end of every line.
// Line endings, including carriage returns, are kept.
func StripTrailingWhitespace(content []byte) []byte {
	lines := bytes.SplitAfter(content, []byte("\n"))
	out := make([]byte, 0, len(content))
	for _, line := range lines {
		body, ending := splitEnding(line)
		out = append(out, bytes.TrimRight(body, " \t")...)
		out = append(out, ending...)
	}
	return out
}

func splitEnding(line []byte) ([]byte, []byte) {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return line[:len(line)-2], line[len(line)-2:]
	case bytes.HasSuffix(line, []byte("\n")):
		return line[:len(line)-1], line[len(line)-1:]
	default:
		return line, nil
	}
}
