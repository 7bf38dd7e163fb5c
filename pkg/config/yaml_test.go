package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jiphy/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.TargetJavaScript, cfg.Target)
	assert.Equal(t, config.DefaultInExt, cfg.InExt)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Zero(t, cfg.Jobs)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Ignore: []string{"vendor/**", "*.min.jiphy"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "vendor/**", original.Ignore[0])
	})

	t.Run("preserves CLI-only fields", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Diff = true
		original.DryRun = true
		original.Jobs = 4

		clone := original.Clone()
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)
	})
}

func TestConfigMarshal(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.Marshal("")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Target: config.TargetPython, OutDir: "build", DryRun: true}

		data, err := cfg.Marshal("")
		require.NoError(t, err)
		assert.Contains(t, string(data), "target: py")
		assert.Contains(t, string(data), "out_dir: build")
		assert.NotContains(t, string(data), "dry")
	})

	t.Run("header comes first", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().Marshal("# generated\n")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# generated\n\ntarget: js\n"), string(data))
	})

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Ignore = []string{"vendor/**"}
		cfg.Backups.Enabled = true

		data, err := cfg.Marshal("")
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, cfg, parsed)
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
target: auto
in_ext: src
recursive: true
ignore:
  - "vendor/**"
`))
		require.NoError(t, err)
		assert.Equal(t, config.TargetAuto, cfg.Target)
		assert.Equal(t, "src", cfg.InExt)
		assert.True(t, cfg.Recursive)
		assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("target: [py"))
		require.Error(t, err)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("target: py\nout_extension: mjs\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out_extension")
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.TargetJavaScript, cfg.Target)
		assert.Equal(t, config.DefaultInExt, cfg.InExt)
	}
}
