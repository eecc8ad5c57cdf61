// Package cmd wires the CLI surface: flags, configuration, file loading,
// and the Bubble Tea program.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quill/internal/app"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// the Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	fname     string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "quill",
	Short:   "A modal terminal text editor",
	Long:    `A modal, vi-style terminal text editor built on a piece-table buffer. Opens a single file (or an empty buffer) with Normal, Insert, and Command-line modes.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/quill/config.yaml)")
	rootCmd.Flags().StringVarP(&fname, "fname", "f", "",
		"file to open (empty buffer when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging to quill.log (also: QUILL_DEBUG=1)")
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.tick_rate_ms", defaults.Editor.TickRateMs)
	viper.SetDefault("editor.watch_file", defaults.Editor.WatchFile)
	viper.SetDefault("theme.gutter", defaults.Theme.Gutter)
	viper.SetDefault("theme.status_fg", defaults.Theme.StatusFg)
	viper.SetDefault("theme.status_bg", defaults.Theme.StatusBg)
	viper.SetDefault("theme.notice_fg", defaults.Theme.NoticeFg)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			dir := filepath.Join(home, ".config", "quill")
			if err := config.EnsureDefault(filepath.Join(dir, "config.yaml")); err != nil {
				fmt.Fprintf(os.Stderr, "quill: writing starter config: %v\n", err)
			}
			viper.AddConfigPath(dir)
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "quill: reading config: %v\n", err)
		}
	}

	cfg = config.Defaults()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "quill: parsing config: %v\n", err)
		cfg = config.Defaults()
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	debug := debugFlag || os.Getenv("QUILL_DEBUG") == "1"
	if debug {
		cleanup, err := log.Init("quill.log", "quill")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatApp, "Starting", "version", version, "fname", fname)
	}

	contents, title, err := loadFile(fname)
	if err != nil {
		return err
	}

	var watchCh <-chan struct{}
	if fname != "" && cfg.Editor.WatchFile {
		w, err := watcher.New(watcher.DefaultConfig(fname))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Watcher unavailable", err)
		} else {
			ch, err := w.Start()
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Watch failed", err)
			} else {
				watchCh = ch
				defer func() { _ = w.Stop() }()
			}
		}
	}

	m := app.New(cfg, title, contents, watchCh)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// loadFile reads the file to open, normalizing CRLF line endings. A
// nonexistent path opens an empty buffer (new-file behavior); an empty
// fname opens an unnamed buffer.
func loadFile(path string) (contents, title string, err error) {
	if path == "" {
		return "", "[No Name]", nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", path, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), path, nil
}
