package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/jiphy/pkg/runner"
)

// writeTree creates each relative path under dir with placeholder content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x = None\n"), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func abs(dir string, files ...string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, filepath.Join(dir, f))
	}
	return out
}

func TestDiscover_ExplicitFileAnyExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "script.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"script.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "script.txt")
	if !slices.Equal(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_DirectoryTopLevelOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"a.jiphy",
		"b.JIPHY",
		"notes.txt",
		".hidden.jiphy",
		"sub/c.jiphy",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "a.jiphy", "b.JIPHY")
	if !slices.Equal(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"a.jiphy",
		"sub/c.jiphy",
		"sub/deeper/d.jiphy",
		".git/e.jiphy",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Recursive:  true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "a.jiphy", "sub/c.jiphy", "sub/deeper/d.jiphy")
	if !slices.Equal(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_CustomExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.jiphy", "b.src")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		InExt:      ".src",
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "b.src")
	if !slices.Equal(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"a.jiphy",
		"a.gen.jiphy",
		"vendor/lib.jiphy",
		"sub/c.jiphy",
	)

	tests := []struct {
		name     string
		paths    []string
		excludes []string
		want     []string
	}{
		{
			name:     "directory pattern",
			excludes: []string{"vendor/**"},
			want:     []string{"a.gen.jiphy", "a.jiphy", "sub/c.jiphy"},
		},
		{
			name:     "base name pattern",
			excludes: []string{"*.gen.jiphy"},
			want:     []string{"a.jiphy", "sub/c.jiphy", "vendor/lib.jiphy"},
		},
		{
			name:     "explicit file is still excluded",
			paths:    []string{"a.gen.jiphy", "a.jiphy"},
			excludes: []string{"*.gen.*"},
			want:     []string{"a.jiphy"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				Paths:        tc.paths,
				WorkingDir:   dir,
				Recursive:    true,
				ExcludeGlobs: tc.excludes,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			want := abs(dir, tc.want...)
			if !slices.Equal(files, want) {
				t.Errorf("Discover() = %v, want %v", files, want)
			}
		})
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.jiphy", "b.jiphy")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"b.jiphy", ".", "./b.jiphy"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "b.jiphy", "a.jiphy")
	if !slices.Equal(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.jiphy"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, runner.ErrFileNotFound) {
		t.Errorf("Discover() error = %v, want ErrFileNotFound", err)
	}
}

func TestDiscover_SymlinkedDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "linked.jiphy")
	writeTree(t, dir, "a.jiphy")
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir, Recursive: true}

	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if want := abs(dir, "a.jiphy"); !slices.Equal(files, want) {
		t.Errorf("without FollowSymlinks: Discover() = %v, want %v", files, want)
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 || filepath.Base(files[1]) != "linked.jiphy" {
		t.Errorf("with FollowSymlinks: Discover() = %v", files)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Discover() error = %v, want context.Canceled", err)
	}
}
