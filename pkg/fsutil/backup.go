package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to an output path to name its backup.
const BackupSuffix = ".jiphy.bak"

// BackupPath returns where CreateBackup keeps the copy of path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup saves the current content of path next to it before the
// file is replaced. The first backup wins: when one already exists it is
// left alone so repeated runs keep the content from before any conversion.
// It reports whether a backup was written; a missing path is not an error.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	if err := checkContext(ctx, "create backup"); err != nil {
		return false, err
	}

	target := BackupPath(path)
	switch _, err := os.Lstat(target); {
	case err == nil:
		return false, nil
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("inspect backup %s: %w", target, err)
	}

	original, info, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("back up %s: %w", path, err)
	}

	if err := WriteAtomic(ctx, target, original, info.Mode); err != nil {
		return false, fmt.Errorf("back up %s: %w", path, err)
	}
	return true, nil
}
