package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Theme   string        `yaml:"theme" mapstructure:"theme"`
}

// CatalogConfig selects where the catalog comes from. Files, when set,
// wins over Endpoint.
type CatalogConfig struct {
	Endpoint   string            `yaml:"endpoint" mapstructure:"endpoint"`
	Files      string            `yaml:"files,omitempty" mapstructure:"files"`
	Timeout    time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries int               `yaml:"max_retries" mapstructure:"max_retries"`
	Headers    map[string]string `yaml:"headers,omitempty" mapstructure:"headers"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"`
	Key     string `yaml:"key" mapstructure:"key"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	// File receives logs while the TUI owns the terminal.
	File string `yaml:"file" mapstructure:"file"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	data := DataDir()
	return &Config{
		Catalog: CatalogConfig{
			Endpoint:   "http://localhost:4000/",
			Timeout:    30 * time.Second,
			MaxRetries: 2,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(data, "readinglist.json"),
			Key:     "readingList",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(data, "shelf.log"),
		},
		Theme: "teal",
	}
}

// Dir is where config.yaml is looked up last.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shelf")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shelf")
}

// DataDir holds the reading list and log file.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "shelf")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "shelf")
}

// Load reads config.yaml (or the explicit file when path is set), then
// SHELF_* environment variables, on top of DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	// Defaults must be registered for env overrides to reach Unmarshal.
	v.SetDefault("catalog.endpoint", cfg.Catalog.Endpoint)
	v.SetDefault("catalog.files", cfg.Catalog.Files)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.max_retries", cfg.Catalog.MaxRetries)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("theme", cfg.Theme)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix("SHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
		// no config file; defaults and env only
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.Catalog.Endpoint = expandEnv(cfg.Catalog.Endpoint)
	for k, h := range cfg.Catalog.Headers {
		cfg.Catalog.Headers[k] = expandEnv(h)
	}
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Catalog.Files = expandPath(cfg.Catalog.Files)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandPath(p string) string {
	p = expandEnv(p)
	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	}
	return p
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Catalog.Endpoint == "" && c.Catalog.Files == "" {
		return fmt.Errorf("config: catalog.endpoint or catalog.files is required")
	}
	switch c.Storage.Backend {
	case "file", "bolt":
		if c.Storage.Path == "" {
			return fmt.Errorf("config: storage.path is required for backend %q", c.Storage.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("config: storage.backend %q is invalid (must be file, bolt, or memory)", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("config: storage.key is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be text or json)", c.Log.Format)
	}
	if c.Catalog.Timeout <= 0 {
		c.Catalog.Timeout = 30 * time.Second
	}
	if c.Catalog.MaxRetries < 0 {
		c.Catalog.MaxRetries = 0
	}
	return nil
}
