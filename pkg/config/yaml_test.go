package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies classes and flags", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Classes["checkbox"] = "todo"
		original.DryRun = true

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, "todo", clone.Classes["checkbox"])
		assert.True(t, clone.DryRun)

		clone.Classes["checkbox"] = "other"
		*clone.Code.DetectLanguage = false
		assert.Equal(t, "todo", original.Classes["checkbox"])
		assert.True(t, *original.Code.DetectLanguage)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("round trips persisted fields", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.ClassPrefix = "x-"
		cfg.Links.Modifier = config.ModifierCtrl
		cfg.Format = config.FormatJSON

		data, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
		require.NoError(t, err)
		assert.Contains(t, string(data), "# mddecor configuration")
		assert.NotContains(t, string(data), "format")

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "x-", parsed.ClassPrefix)
		assert.Equal(t, config.ModifierCtrl, parsed.Links.Modifier)
		assert.True(t, config.Enabled(parsed.Code.DetectLanguage))
		assert.Empty(t, parsed.Format)
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte("class_prefix: cm-\ncode:\n  highlight: true\nclasses:\n  hr: rule\n"))
		require.NoError(t, err)
		assert.Equal(t, "cm-", cfg.ClassPrefix)
		require.NotNil(t, cfg.Code.Highlight)
		assert.True(t, *cfg.Code.Highlight)
		assert.Nil(t, cfg.Code.DetectLanguage)
		assert.Equal(t, "rule", cfg.Classes["hr"])
	})

	t.Run("initializes empty Classes map", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte("log_level: debug\n"))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Classes)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("classes: [unterminated"))
		require.Error(t, err)
	})
}

func TestValidators(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatPreview.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.ModifierMeta.IsValid())
	assert.False(t, config.Modifier("hyper").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "md-", cfg.ClassPrefix)
		assert.Equal(t, config.DefaultLinkScheme, cfg.Links.DefaultScheme)
	})

	t.Run("full template lists roles", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Roles: []string{"hr", "bold"}})
		require.NoError(t, err)
		assert.Contains(t, string(data), "md-bold")
		assert.Contains(t, string(data), "md-hr")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json", Full: true, Roles: []string{"hr"}})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, "md-", out["class_prefix"])
		assert.Equal(t, map[string]any{"hr": "md-hr"}, out["classes"])
	})
}
