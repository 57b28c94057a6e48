package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoRefresh)
	require.True(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.UI.ShowPreview)
	require.Equal(t, "dark", cfg.UI.PreviewStyle)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.NoError(t, cfg.Validate())
}

func TestBuildTable_DefaultsWhenNoPatterns(t *testing.T) {
	table, err := Defaults().BuildTable()
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())

	_, ok := table.Find("bold")
	require.True(t, ok)
}

func TestBuildTable_AppendsNewPattern(t *testing.T) {
	cfg := Defaults()
	cfg.Patterns = []PatternConfig{
		{Style: "highlight", Opening: "==", Closing: "==", Variant: "underline"},
	}

	table, err := cfg.BuildTable()
	require.NoError(t, err)
	require.Equal(t, 6, table.Len())

	p, ok := table.Find("highlight")
	require.True(t, ok)
	require.Equal(t, "==", p.Opening)
}

func TestBuildTable_OverridesBuiltin(t *testing.T) {
	cfg := Defaults()
	cfg.Patterns = []PatternConfig{
		{Style: "bold", Opening: "**", Closing: "**", Variant: "bold"},
	}

	table, err := cfg.BuildTable()
	require.NoError(t, err)
	require.Equal(t, 5, table.Len(), "override must not add a pattern")

	p, ok := table.Find("bold")
	require.True(t, ok)
	require.Equal(t, "**", p.Opening)
}

func TestValidatePatterns(t *testing.T) {
	require.NoError(t, ValidatePatterns(nil))

	err := ValidatePatterns([]PatternConfig{{Opening: "*", Variant: "bold"}})
	require.ErrorContains(t, err, "style is required")

	err = ValidatePatterns([]PatternConfig{{Style: "x", Opening: "*", Variant: "blink"}})
	require.ErrorContains(t, err, "invalid variant")

	err = ValidatePatterns([]PatternConfig{{Style: "x", Closing: "*", Variant: "bold"}})
	require.ErrorContains(t, err, "closing requires opening")
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{PreviewStyle: ""}))
	require.NoError(t, ValidateUI(UIConfig{PreviewStyle: "light"}))
	require.Error(t, ValidateUI(UIConfig{PreviewStyle: "sepia"}))
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{Mode: "dark", Variants: map[string]string{"bold": "#FFF"}}))
	require.Error(t, ValidateTheme(ThemeConfig{Mode: "sepia"}))
	require.Error(t, ValidateTheme(ThemeConfig{Variants: map[string]string{"blink": "#FFF"}}))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(Defaults().Tracing))

	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.ErrorContains(t, err, "sample_rate")

	err = ValidateTracing(TracingConfig{Exporter: "smoke-signals", SampleRate: 1.0})
	require.ErrorContains(t, err, "exporter")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1.0})
	require.ErrorContains(t, err, "otlp_endpoint")
}

func TestTracingConfig_ToTracingFillsFilePath(t *testing.T) {
	tc := TracingConfig{Enabled: true, Exporter: "file", SampleRate: 0.5}

	out := tc.ToTracing()
	require.True(t, out.Enabled)
	require.Equal(t, "file", out.Exporter)
	require.Equal(t, 0.5, out.SampleRate)
	require.NotEmpty(t, out.FilePath, "default trace path should be filled in")
	require.True(t, strings.HasSuffix(out.FilePath, filepath.Join("traces", "traces.jsonl")))
}

func TestDefaultConfigTemplate_ParsesAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultConfigTemplate()), 0600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.AutoRefresh)
	require.True(t, cfg.UI.ShowStatusBar)
}

func TestWriteDefaultConfig_CreatesFileAndDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Inkwell Configuration")
}
