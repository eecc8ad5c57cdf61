// Package config provides configuration types and defaults for quill.
package config

// EditorConfig holds core editor behavior options.
type EditorConfig struct {
	// TickRateMs is the driver loop interval in milliseconds.
	TickRateMs int `mapstructure:"tick_rate_ms" yaml:"tick_rate_ms"`

	// WatchFile enables the fsnotify watch of the opened file.
	WatchFile bool `mapstructure:"watch_file" yaml:"watch_file"`
}

// ThemeConfig holds color overrides. Values are hex colors like "#10B981";
// empty values keep the built-in adaptive defaults.
type ThemeConfig struct {
	Gutter   string `mapstructure:"gutter" yaml:"gutter"`
	StatusFg string `mapstructure:"status_fg" yaml:"status_fg"`
	StatusBg string `mapstructure:"status_bg" yaml:"status_bg"`
	NoticeFg string `mapstructure:"notice_fg" yaml:"notice_fg"`
}

// Config holds all configuration options for quill.
type Config struct {
	Editor EditorConfig `mapstructure:"editor" yaml:"editor"`
	Theme  ThemeConfig  `mapstructure:"theme" yaml:"theme"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			TickRateMs: 30,
			WatchFile:  true,
		},
		Theme: ThemeConfig{},
	}
}
