package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/jiphy/pkg/config"
)

const envVarPrefix = "JIPHY_"

// envSetting binds one JIPHY_* variable to the config field it sets.
type envSetting struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringSetting(suffix, field, description string, set func(*config.Config, string)) envSetting {
	return envSetting{suffix, field, description, func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func boolSetting(suffix, field, description string, set func(*config.Config, bool)) envSetting {
	return envSetting{suffix, field, description, func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envSettings = []envSetting{
	stringSetting("TARGET", "target", "Target syntax: py, js, or auto",
		func(c *config.Config, v string) { c.Target = v }),
	stringSetting("OUT_EXT", "out_ext", "Output file extension",
		func(c *config.Config, v string) { c.OutExt = v }),
	stringSetting("IN_EXT", "in_ext", "Source file extension used when walking directories",
		func(c *config.Config, v string) { c.InExt = v }),
	stringSetting("OUT_DIR", "out_dir", "Directory for converted files",
		func(c *config.Config, v string) { c.OutDir = v }),
	stringSetting("FORMAT", "format", "Report format: text, diff, json, or summary",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	stringSetting("COLOR", "color", "Color mode: auto, always, or never",
		func(c *config.Config, v string) { c.Color = config.ColorMode(v) }),
	boolSetting("RECURSIVE", "recursive", "Walk directories recursively: true or false",
		func(c *config.Config, v bool) { c.Recursive = v }),
	boolSetting("KEEP_TRAILING_WHITESPACE", "keep_trailing_whitespace", "Keep trailing whitespace: true or false",
		func(c *config.Config, v bool) { c.KeepTrailingWhitespace = v }),
	boolSetting("BACKUPS_ENABLED", "backups.enabled", "Back up replaced output files: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	{
		suffix:      "JOBS",
		field:       "jobs",
		description: "Number of parallel workers (0 = auto)",
		apply: func(c *config.Config, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			c.Jobs = jobs
			return nil
		},
	},
	stringSetting("IGNORE", "ignore", "Comma-separated list of ignore patterns",
		func(c *config.Config, v string) { c.Ignore = splitList(v) }),
}

// LoadFromEnv applies every set JIPHY_* variable to cfg. Empty variables
// are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, setting := range envSettings {
		name := envVarPrefix + setting.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := setting.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	}))
}

// GetEnvVarName returns the variable that sets field, or "".
func GetEnvVarName(field string) string {
	setting, ok := lo.Find(envSettings, func(s envSetting) bool { return s.field == field })
	if !ok {
		return ""
	}
	return envVarPrefix + setting.suffix
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	return lo.SliceToMap(envSettings, func(s envSetting) (string, string) {
		return envVarPrefix + s.suffix, s.description
	})
}
