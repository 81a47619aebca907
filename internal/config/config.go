package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// SourceConfig selects the ranking page
type SourceConfig struct {
	Name string `mapstructure:"name"` // "tiobe" or "pypl"
}

// HTTPConfig holds outbound request settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig holds the preference store location
type StoreConfig struct {
	Path string `mapstructure:"path"` // directory; empty keeps everything in memory
}

// UIConfig holds rendering options
type UIConfig struct {
	ASCIIArrow bool `mapstructure:"ascii_arrow"` // render "->" instead of "→"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// MetricsConfig holds the optional Prometheus listener
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // e.g. "127.0.0.1:9464"; empty disables
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Name: "tiobe",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Path: defaultDataPath(),
		},
		UI: UIConfig{
			ASCIIArrow: !localeIsUTF8(),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "rankbar.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "rankbar")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "rankbar")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "rankbar")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "rankbar")
	}
}

// localeIsUTF8 reports whether the terminal locale can be assumed to draw "→"
func localeIsUTF8() bool {
	if runtime.GOOS == "windows" {
		return true
	}
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(env); v != "" {
			v = strings.ToUpper(v)
			return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
		}
	}
	return false
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load(viper.New(), defaultConfigPath(), ".")
}

// Load reads config.yaml from the first of paths that has one, applies
// RANKBAR_* environment overrides, and fills the rest from DefaultConfig.
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Defaults must be registered for AutomaticEnv to see nested keys
	v.SetDefault("source.name", cfg.Source.Name)
	v.SetDefault("http.timeout", cfg.HTTP.Timeout)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("ui.ascii_arrow", cfg.UI.ASCIIArrow)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)

	// Environment variable overrides
	v.SetEnvPrefix("RANKBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	return nil
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
