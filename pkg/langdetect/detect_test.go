package langdetect_test

import (
	"testing"

	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		expected construct.Target
		known    bool
	}{
		{
			name:     "python extension",
			filename: "module.py",
			expected: construct.Python,
			known:    true,
		},
		{
			name:     "javascript extension",
			filename: "dir/module.js",
			expected: construct.JavaScript,
			known:    true,
		},
		{
			name:     "extension beats content",
			filename: "module.py",
			content:  "function f(x) {\n    console.log(x === null);\n}\n",
			expected: construct.Python,
			known:    true,
		},
		{
			name:     "shebang python",
			filename: "script.jiphy",
			content:  "#!/usr/bin/env python3\nx = 1\n",
			expected: construct.Python,
			known:    true,
		},
		{
			name:     "python markers",
			filename: "source.jiphy",
			content:  "def f(x):\n    if x is None:\n        print(x)\n",
			expected: construct.Python,
			known:    true,
		},
		{
			name:     "javascript markers",
			filename: "source.jiphy",
			content:  "function f(x) {\n    console.log(x === null);\n}\n",
			expected: construct.JavaScript,
			known:    true,
		},
		{
			name:     "empty content",
			filename: "source.jiphy",
		},
		{
			name:    "blank content",
			content: "  \n\t\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, known := langdetect.Detect(tt.filename, []byte(tt.content))

			if known != tt.known {
				t.Fatalf("Detect() known = %v, want %v", known, tt.known)
			}
			if known && got != tt.expected {
				t.Errorf("Detect() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	py, js := langdetect.Score([]byte("True and False"))
	if py != 3 || js != 0 {
		t.Errorf("Score() = %d, %d, want 3, 0", py, js)
	}

	py, js = langdetect.Score([]byte("var x = null;\n"))
	if py != 0 || js != 3 {
		t.Errorf("Score() = %d, %d, want 0, 3", py, js)
	}
}
