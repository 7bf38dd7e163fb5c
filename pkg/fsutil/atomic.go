package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

const (
	// DefaultFileMode applies to output whose source mode is unknown.
	DefaultFileMode os.FileMode = 0o644

	// DefaultDirMode applies to output directories created on demand.
	DefaultDirMode os.FileMode = 0o755
)

// checkContext wraps ctx.Err() with the operation name, or returns nil.
func checkContext(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// WriteAtomic replaces path with content. Readers see either the old file
// or the complete new one. Missing parent directories are created and a
// zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := checkContext(ctx, "write atomic"); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	pending, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	defer pending.Cleanup() //nolint:errcheck // no-op once replaced

	if mode == 0 {
		mode = DefaultFileMode
	}
	if err := pending.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if _, err := pending.Write(content); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}

	// Last chance to back out before the rename becomes visible.
	if err := checkContext(ctx, "write atomic"); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// WriteAtomicIfChanged is WriteAtomic that skips the write when path
// already holds content. It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := checkContext(ctx, "write atomic"); err != nil {
		return false, err
	}

	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
