// Package cmd contains the CLI entry points.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/inkwell/internal/app"
	"github.com/zjrosen/inkwell/internal/cachemanager"
	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/storage/sqlite"
	"github.com/zjrosen/inkwell/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// any Bubble Tea program starts, so the terminal's OSC 11 response
	// cannot race Bubble Tea's input loop and land in an input field.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "inkwell",
	Short:   "A terminal rich-text note editor",
	Long:    `A terminal editor for notes with inline styles (bold, italic, underline, ...) stored as lightweight delimited markup in a local library.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/inkwell/config.yaml)")
	rootCmd.Flags().StringP("library", "l", "",
		"path to the library database file")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic reload when the library changes on disk")

	_ = viper.BindPFlag("library.path", rootCmd.Flags().Lookup("library"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_preview", defaults.UI.ShowPreview)
	viper.SetDefault("ui.preview_style", defaults.UI.PreviewStyle)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .inkwell/config.yaml (current directory)
		// 2. ~/.config/inkwell/config.yaml (user config)
		if _, err := os.Stat(".inkwell/config.yaml"); err == nil {
			viper.SetConfigFile(".inkwell/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "inkwell"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere; create the default user config.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "inkwell", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If the write fails, continue with defaults.
		}
	}

	cfg = config.Defaults()
	_ = viper.Unmarshal(&cfg)
}

// defaultLogPath returns the log file location, next to the user config.
func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "inkwell.log"
	}
	return filepath.Join(home, ".config", "inkwell", "inkwell.log")
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	table, err := cfg.BuildTable()
	if err != nil {
		return fmt.Errorf("building pattern table: %w", err)
	}

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	logPath := defaultLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err == nil {
		if cleanup, err := log.Init(logPath); err == nil {
			defer cleanup()
		}
	}

	provider, err := tracing.NewProvider(cfg.Tracing.ToTracing())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	libraryPath := cfg.Library.Path
	if libraryPath == "" {
		libraryPath = config.DefaultLibraryPath()
	}
	db, err := sqlite.NewDB(libraryPath)
	if err != nil {
		return fmt.Errorf("opening library %s: %w", libraryPath, err)
	}
	defer func() { _ = db.Close() }()

	cache := cachemanager.NewInMemoryCacheManager[string, richtext.Runs](
		"document-runs", 5*time.Minute, 10*time.Minute)
	svc := document.NewService(db.DocumentRepository(), table, cache,
		document.WithTracer(provider.Tracer()))
	defer svc.Close()

	model, err := app.New(app.Options{
		Config:  cfg,
		Service: svc,
		Table:   table,
		DBPath:  libraryPath,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	if closeErr := model.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
