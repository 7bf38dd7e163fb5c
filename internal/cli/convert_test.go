package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jiphy/internal/cli"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs(args)

	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestConvert_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "dash", args: []string{"convert", "--no-config", "-"}},
		{name: "piped without arguments", args: []string{"convert", "--no-config"}},
		{name: "root command", args: []string{"--no-config", "-"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "x = None\n", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, "x = null;\n", out)
		})
	}
}

func TestConvert_StdinToPython(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "x = null;\n", "convert", "--no-config", "--to", "py", "-")
	require.NoError(t, err)
	assert.Equal(t, "x = None\n", out)
}

func TestConvert_StdinDiff(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "x = None\n", "convert", "--no-config", "--diff", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "stdin:before")
	assert.Contains(t, out, "stdin:after")
	assert.Contains(t, out, "-x = None")
	assert.Contains(t, out, "+x = null;")
}

func TestConvert_WritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jiphy")
	writeFile(t, src, "x = None\n")

	out, err := execute(t, "", "convert", "--no-config", src)
	require.NoError(t, err)

	assert.Equal(t, "x = null;\n", readFile(t, filepath.Join(dir, "a.js")))
	assert.Contains(t, out, "(written)")
	assert.Contains(t, out, "a.js")
}

func TestConvert_ToPython(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jiphy")
	writeFile(t, src, "if (x === true) {\n    y();\n}\n")

	_, err := execute(t, "", "convert", "--no-config", "--to", "py", src)
	require.NoError(t, err)

	assert.Equal(t, "if x is True:\n    y()\n\n", readFile(t, filepath.Join(dir, "a.py")))
}

func TestConvert_DryRunLeavesFilesAlone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jiphy")
	writeFile(t, src, "x = None\n")

	out, err := execute(t, "", "convert", "--no-config", "--dry-run", src)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "a.js"))
	assert.Contains(t, out, "(dry run)")
}

func TestConvert_RecursiveWithIgnore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.jiphy"), "a = True\n")
	writeFile(t, filepath.Join(dir, "sub", "deep.jiphy"), "b = False\n")
	writeFile(t, filepath.Join(dir, "vendor", "skip.jiphy"), "c = None\n")

	_, err := execute(t, "", "convert", "--no-config", "-r", "--ignore", "vendor/**", dir)
	require.NoError(t, err)

	assert.Equal(t, "a = true;\n", readFile(t, filepath.Join(dir, "top.js")))
	assert.Equal(t, "b = false;\n", readFile(t, filepath.Join(dir, "sub", "deep.js")))
	assert.NoFileExists(t, filepath.Join(dir, "vendor", "skip.js"))
}

func TestConvert_OutDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	src := filepath.Join(dir, "a.jiphy")
	writeFile(t, src, "x = None\n")

	_, err := execute(t, "", "convert", "--no-config", "--out-dir", outDir, "--out-ext", "mjs", src)
	require.NoError(t, err)

	assert.Equal(t, "x = null;\n", readFile(t, filepath.Join(outDir, "a.mjs")))
	assert.NoFileExists(t, filepath.Join(dir, "a.js"))
}

func TestConvert_JSONFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jiphy")
	writeFile(t, src, "x = None\n")

	out, err := execute(t, "", "convert", "--no-config", "--format", "json", "--dry-run", src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), out)
	assert.Contains(t, out, `"target"`)
}

func TestConvert_InvalidTarget(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "x = 1\n", "convert", "--no-config", "--to", "ruby", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestConvert_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.jiphy")
	_, err := execute(t, "", "convert", "--no-config", missing)
	require.Error(t, err)
	assert.NotEqual(t, cli.ExitSuccess, cli.ExitCode(err))
}

func TestTree(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "x = '''a", "tree")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Document", lines[0])
	assert.Contains(t, out, "BlockString")
	assert.Contains(t, out, "unterminated")
}

func TestTree_File(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "a.jiphy")
	writeFile(t, src, "x = None\n")

	out, err := execute(t, "", "tree", src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Document\n"), out)
	assert.Contains(t, out, "Null")
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "patterns", "--color", "never")
	require.NoError(t, err)

	for _, want := range []string{"TRIGGER", "KIND", "BECOMES", `"'''"`, "BlockString"} {
		assert.Contains(t, out, want)
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".jiphy.yml")

	_, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, readFile(t, path), "target")

	_, err = execute(t, "", "init", "--output", path)
	require.ErrorIs(t, err, cli.ErrConfigExists)

	_, err = execute(t, "", "init", "--output", path, "--force", "--full")
	require.NoError(t, err)
}

func TestInit_Print(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".jiphy.yml")

	out, err := execute(t, "", "init", "--print", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "target")
	assert.NoFileExists(t, path)
}
