// Package config provides configuration types, defaults, and persistence for
// inkwell.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/tracing"
)

// Config holds all configuration options for inkwell.
type Config struct {
	Library     LibraryConfig   `mapstructure:"library"`
	AutoRefresh bool            `mapstructure:"auto_refresh"`
	UI          UIConfig        `mapstructure:"ui"`
	Theme       ThemeConfig     `mapstructure:"theme"`
	Patterns    []PatternConfig `mapstructure:"patterns"`
	Tracing     TracingConfig   `mapstructure:"tracing"`
}

// LibraryConfig holds the document library location.
type LibraryConfig struct {
	// Path is the library database file.
	// Default: ~/.inkwell/library.db
	Path string `mapstructure:"path"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowPreview   bool   `mapstructure:"show_preview"`
	PreviewStyle  string `mapstructure:"preview_style"` // "dark" (default) or "light"
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Variants overrides the color used when rendering a style variant,
	// keyed by variant name ("bold", "italic", ...), hex values.
	Variants map[string]string `mapstructure:"variants"`
}

// PatternConfig extends or overrides an entry of the delimiter table.
// A config entry whose style matches a built-in pattern replaces it;
// otherwise it is appended after the built-ins.
type PatternConfig struct {
	Style   string `mapstructure:"style"`
	Opening string `mapstructure:"opening"`
	Closing string `mapstructure:"closing"`
	Variant string `mapstructure:"variant"`
}

// TracingConfig holds tracing configuration. It mirrors tracing.Config so
// the config file schema stays in one package.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"`
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// ToTracing converts to the tracing package's config, filling in the
// default trace file path when the file exporter has none configured.
func (t TracingConfig) ToTracing() tracing.Config {
	filePath := t.FilePath
	if filePath == "" {
		filePath = DefaultTracesFilePath()
	}
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
	}
}

// validVariants is the closed set of rendering variants patterns may use.
var validVariants = map[string]richtext.Variant{
	"bold":          richtext.VariantBold,
	"italic":        richtext.VariantItalic,
	"underline":     richtext.VariantUnderline,
	"strikethrough": richtext.VariantStrikethrough,
	"code":          richtext.VariantCode,
}

// BuildTable merges the configured patterns into the default delimiter table.
func (c Config) BuildTable() (richtext.Table, error) {
	if err := ValidatePatterns(c.Patterns); err != nil {
		return richtext.Table{}, err
	}

	patterns := richtext.DefaultTable().Patterns()
	for _, pc := range c.Patterns {
		p := richtext.Pattern{
			Style:   pc.Style,
			Opening: pc.Opening,
			Closing: pc.Closing,
			Variant: validVariants[pc.Variant],
		}
		replaced := false
		for i := range patterns {
			if patterns[i].Style == pc.Style {
				patterns[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			patterns = append(patterns, p)
		}
	}
	return richtext.NewTable(patterns...)
}

// ValidatePatterns checks pattern configuration for errors.
// Returns nil if patterns are valid or empty (defaults apply).
func ValidatePatterns(patterns []PatternConfig) error {
	for i, p := range patterns {
		if p.Style == "" {
			return fmt.Errorf("patterns[%d]: style is required", i)
		}
		if _, ok := validVariants[p.Variant]; !ok {
			return fmt.Errorf("patterns[%d] (%s): invalid variant %q (must be one of bold, italic, underline, strikethrough, code)", i, p.Style, p.Variant)
		}
		if p.Closing != "" && p.Opening == "" {
			return fmt.Errorf("patterns[%d] (%s): closing requires opening", i, p.Style)
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.PreviewStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.preview_style must be \"dark\" or \"light\", got %q", ui.PreviewStyle)
	}
}

// ValidateTheme checks theme configuration for errors.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Mode {
	case "", "dark", "light":
	default:
		return fmt.Errorf("theme.mode must be \"dark\" or \"light\", got %q", theme.Mode)
	}
	for variant := range theme.Variants {
		if _, ok := validVariants[variant]; !ok {
			return fmt.Errorf("theme.variants: unknown variant %q", variant)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidatePatterns(c.Patterns); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultLibraryPath returns ~/.inkwell/library.db, or empty string if the
// home directory is unavailable.
func DefaultLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".inkwell", "library.db")
}

// DefaultTracesFilePath returns ~/.config/inkwell/traces/traces.jsonl, or
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkwell", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Library: LibraryConfig{
			Path: DefaultLibraryPath(),
		},
		AutoRefresh: true,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowPreview:   true,
			PreviewStyle:  "dark",
		},
		Theme: ThemeConfig{},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Inkwell Configuration

# Document library location
# library:
#   path: ~/.inkwell/library.db

# Reload automatically when another process edits the library
auto_refresh: true

# UI settings
ui:
  show_status_bar: true   # Show active styles and save state at the bottom
  show_preview: true      # Render a live preview pane next to the editor
  # preview_style: dark   # Preview rendering style: "dark" (default) or "light"

# Theme configuration
theme:
  # Force light or dark rendering. Empty uses terminal detection.
  # mode: dark
  #
  # Override the color used for a style variant:
  # variants:
  #   bold: "#F59E0B"
  #   code: "#10B981"

# Delimiter table overrides and additions.
# A style matching a built-in (bold, underline, italic, strikethrough, code)
# replaces it; anything else is appended.
# patterns:
#   - style: highlight
#     opening: "=="
#     closing: "=="
#     variant: underline

# Tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp
#   file_path: ~/.config/inkwell/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
