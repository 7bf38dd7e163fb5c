package configloader

import (
	"strings"

	"github.com/yaklabco/jiphy/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true in override is applied
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Target != "" {
		result.Target = override.Target
	}
	if override.OutExt != "" {
		result.OutExt = override.OutExt
	}
	if override.InExt != "" {
		result.InExt = override.InExt
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a layer can switch these on but never off.
	if override.Recursive {
		result.Recursive = true
	}
	if override.KeepTrailingWhitespace {
		result.KeepTrailingWhitespace = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Diff {
		result.Diff = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

// normalizeExtensions strips a leading dot from configured extensions.
func normalizeExtensions(cfg *config.Config, result *LoadResult) {
	for _, ext := range []*string{&cfg.InExt, &cfg.OutExt} {
		if trimmed := strings.TrimLeft(*ext, "."); trimmed != *ext {
			result.Warnings = append(result.Warnings,
				"extension "+*ext+" is written without a leading dot; using "+trimmed)
			*ext = trimmed
		}
	}
}
