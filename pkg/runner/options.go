// Package runner provides multi-file conversion orchestration.
package runner

import (
	"strings"

	"github.com/yaklabco/jiphy/pkg/config"
)

// Options controls multi-file conversion behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// the output directory. If empty, the process working directory is used.
	WorkingDir string

	// InExt is the extension (without leading dot) of the source files
	// picked up inside directories. Files named explicitly are always
	// converted. Defaults to config.DefaultInExt.
	InExt string

	// Recursive walks directories into their subdirectories. Otherwise only
	// the top level of each directory is scanned.
	Recursive bool

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// matched against slash-separated paths relative to WorkingDir and
	// against base names.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig derives run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:        paths,
		InExt:        cfg.InExt,
		Recursive:    cfg.Recursive,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
}

// effectiveExtension returns the source extension with a leading dot.
func (o Options) effectiveExtension() string {
	ext := strings.TrimLeft(o.InExt, ".")
	if ext == "" {
		ext = config.DefaultInExt
	}
	return "." + ext
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveConfig returns the configuration, defaulting if nil.
func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
