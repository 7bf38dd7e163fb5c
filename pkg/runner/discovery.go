package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// Sentinel errors for discovery failures.
var (
	// ErrFileNotFound indicates a path argument does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotRegularFile indicates a path argument is neither a regular file
	// nor a directory.
	ErrNotRegularFile = errors.New("not a regular file")
)

// matcher tests slash-separated relative paths against compiled globs.
type matcher []glob.Glob

func compileGlobs(patterns []string) (matcher, error) {
	m := make(matcher, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		m = append(m, g)
	}
	return m, nil
}

// matches reports whether any of the slash-separated relative paths, or
// the base name, matches a pattern. Directories are also tried with a
// trailing slash so "vendor/**" skips the vendor directory itself.
func (m matcher) matches(isDir bool, relPaths ...string) bool {
	if len(m) == 0 || len(relPaths) == 0 {
		return false
	}
	candidates := make([]string, 0, 2*len(relPaths)+1)
	for _, rel := range relPaths {
		rel = filepath.ToSlash(rel)
		candidates = append(candidates, rel)
		if isDir {
			candidates = append(candidates, rel+"/")
		}
	}
	candidates = append(candidates, filepath.Base(relPaths[0]))
	return lo.SomeBy(m, func(g glob.Glob) bool {
		return lo.SomeBy(candidates, g.Match)
	})
}

// Discover finds source files matching opts under the given working directory.
// It returns a deduplicated list of absolute file paths in argument order,
// with each directory's files sorted.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	ext := opts.effectiveExtension()
	var files []string

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
			}
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		switch {
		case info.IsDir():
			discovered, err := walkDirectory(ctx, absPath, workDir, ext, excludes, opts)
			if err != nil {
				return nil, err
			}
			files = append(files, discovered...)
		case info.Mode().IsRegular():
			if !excludes.matches(false, relativeTo(workDir, absPath)) {
				files = append(files, absPath)
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, inputPath)
		}
	}

	return lo.Uniq(files), nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

// walkDirectory returns the source files under root in lexical order.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	ext string,
	excludes matcher,
	opts Options,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		// Patterns apply relative to the working directory and to the
		// directory argument being walked.
		relPaths := []string{relativeTo(workDir, path), relativeTo(root, path)}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if !opts.Recursive || strings.HasPrefix(entry.Name(), ".") || excludes.matches(true, relPaths...) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			if info.IsDir() {
				if !opts.FollowSymlinks || !opts.Recursive {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // Unresolvable symlinks are skipped.
				}
				// Walk the target so WalkDir's Lstat on root does not stop at the link.
				subFiles, err := walkDirectory(ctx, realPath, workDir, ext, excludes, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if hasExtension(path, ext) && !excludes.matches(false, relPaths...) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// hasExtension checks the file extension case-insensitively.
func hasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
