package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jiphy/internal/ui/pretty"
	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/convert"
	"github.com/yaklabco/jiphy/pkg/runner"
)

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := convert.Diagnostic{
		Kind:    construct.KindBlockString,
		Line:    2,
		Column:  5,
		Opening: "'''",
	}

	got := styles.FormatDiagnostic("a.jiphy", diag, "b = '''open")
	want := "  a.jiphy:2:5  warning  unterminated BlockString opened by \"'''\"  (BlockString)\n" +
		"        b = '''open\n" +
		"            ^\n"
	assert.Equal(t, want, got)

	got = styles.FormatDiagnostic("a.jiphy", diag, "")
	assert.NotContains(t, got, "^")
}

func TestFormatConversion(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.jiphy -> a.js (written)", styles.FormatConversion("a.jiphy", "a.js", "written"))
	assert.Equal(t, "a.jiphy: error: boom", styles.FormatFileError("a.jiphy", errors.New("boom")))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "nothing discovered",
			want: "No files to convert\n",
		},
		{
			name:  "single file written",
			stats: runner.Stats{FilesDiscovered: 1, FilesConverted: 1, FilesWritten: 1},
			want:  "1 file converted, 1 written\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FilesDiscovered: 4,
				FilesConverted:  3,
				FilesWritten:    2,
				Unterminated:    1,
				FilesErrored:    1,
			},
			want: "3 files converted, 2 written, 1 unchanged, 1 warning, 1 failed\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatSummaryOneLine(tc.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 3,
		FilesConverted:  3,
		ByTarget:        map[string]int{"py": 1, "js": 2},
	})
	assert.Contains(t, out, "Files converted:   3")
	assert.Contains(t, out, "to js:")
	assert.Less(t, strings.Index(out, "to js:"), strings.Index(out, "to py:"))
	assert.Contains(t, out, "Conversion succeeded")

	out = styles.FormatSummary(runner.Stats{FilesDiscovered: 1, Unterminated: 2, FilesWithUnterminated: 1})
	assert.Contains(t, out, "Unterminated:      2 in 1 file")
	assert.Contains(t, out, "completed with warnings")

	out = styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesErrored: 1})
	assert.Contains(t, out, "Conversion failed")
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := pretty.NewTable(pretty.NewStyles(false), "KIND", "TRIGGER")
	table.AddGroup([]string{"Escape", `"\\"`})
	table.AddGroup()
	table.AddGroup([]string{"Is", `" is "`}, []string{"IsNot", `" is not "`})

	want := "" +
		"KIND    TRIGGER\n" +
		"==================\n" +
		"Escape  \"\\\\\"\n" +
		"------------------\n" +
		"Is      \" is \"\n" +
		"IsNot   \" is not \"\n" +
		"==================\n"
	assert.Equal(t, want, table.String())
}
