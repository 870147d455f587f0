package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formkit/pkg/registry"
)

// AppName names the config file and its XDG directory.
const AppName = "formkit"

// Config is the CLI configuration.
type Config struct {
	// Settings are merged into the registry. Viper lowercases their keys.
	Settings map[string]any `mapstructure:"settings"`
	// Plugins lists manifest files applied in order. Relative paths resolve
	// against the directory of the config file.
	Plugins   []string `mapstructure:"plugins"`
	LogFormat string   `mapstructure:"log_format"`

	file string
}

// File returns the config file that was read, or "" when defaults were used.
func (c *Config) File() string {
	return c.file
}

// DefaultSearchPaths returns the directories searched for formkit.yaml.
func DefaultSearchPaths() []string {
	return []string{".", filepath.Join(xdg.ConfigHome, AppName)}
}

// Load reads the configuration. A non-empty path must exist; otherwise the
// search paths are tried and a missing file yields defaults.
func Load(path string, searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = DefaultSearchPaths()
	}
	for _, dir := range searchPaths {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("FORMKIT")
	v.AutomaticEnv()

	v.SetDefault("settings", map[string]any{})
	v.SetDefault("plugins", []string{})
	v.SetDefault("log_format", "text")

	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound):
			return nil, fmt.Errorf("config: file not found at %s: %w", path, err)
		default:
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()
	return &cfg, nil
}

// PluginPaths returns the manifest paths resolved against the config file.
func (c *Config) PluginPaths() []string {
	base := ""
	if c.file != "" {
		base = filepath.Dir(c.file)
	}
	out := make([]string, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) && base != "" {
			p = filepath.Join(base, p)
		}
		out = append(out, p)
	}
	return out
}

// LoadPlugins loads every configured manifest followed by extra, in order.
func (c *Config) LoadPlugins(extra ...string) ([]registry.Plugin, error) {
	paths := append(c.PluginPaths(), extra...)
	plugins := make([]registry.Plugin, 0, len(paths))
	for _, path := range paths {
		manifest, err := registry.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, manifest)
	}
	return plugins, nil
}
