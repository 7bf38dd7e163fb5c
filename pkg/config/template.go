package config

import "fmt"

// header starts every generated configuration file.
const header = `# jiphy configuration
# See: https://github.com/yaklabco/jiphy`

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. If false, a
	// commented minimal template is generated.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		data, err := NewConfig().Marshal(header)
		if err != nil {
			return nil, fmt.Errorf("full template: %w", err)
		}
		return data, nil
	}
	return []byte(header + `

# Syntax to convert into: py, js, or auto (the one the source is not in)
target: js

# Extension of source files picked up when walking directories
in_ext: jiphy

# Output extension; defaults to the target's own (py or js)
# out_ext: js

# Directory for converted files; defaults to next to each source
# out_dir: build

# Walk directories recursively
# recursive: false

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Keep trailing whitespace on output lines
# keep_trailing_whitespace: false

# Copy replaced output files to <file>.jiphy.bak
# backups:
#   enabled: false

# Report format: text, diff, json, or summary
# format: text

# Number of parallel workers (0 = auto)
# jobs: 0
`), nil
}
