package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/jeanpaul/gradekeeper/internal/logger"
)

type Config struct {
	DataFile       string       `yaml:"data_file" mapstructure:"data_file"`
	Theme          string       `yaml:"theme" mapstructure:"theme"`
	AutosaveOnExit bool         `yaml:"autosave_on_exit" mapstructure:"autosave_on_exit"`
	Log            LogConfig    `yaml:"log" mapstructure:"log"`
	Export         ExportConfig `yaml:"export" mapstructure:"export"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"`
	File   string `yaml:"file" mapstructure:"file"`
}

type ExportConfig struct {
	Sheet string `yaml:"sheet" mapstructure:"sheet"`
}

var themes = map[string]bool{"green": true, "amber": true}

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
	return &Config{
		DataFile: "students.json",
		Theme:    "green",
		Log: LogConfig{
			Level:  string(logger.InfoLevel),
			Pretty: true,
			File:   "gradekeeper.log",
		},
		Export: ExportConfig{Sheet: "Grades"},
	}
}

// Dir returns the per-user config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gradekeeper")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gradekeeper")
}

// Load reads config.yaml from the working directory or the user config dir,
// applies GRADEKEEPER_* environment overrides and validates the result.
// A missing config file is not an error.
func Load() (*Config, error) {
	return LoadWith(viper.New(), ".", Dir())
}

// LoadWith is Load with an explicit viper instance and search path.
func LoadWith(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variables
	v.SetEnvPrefix("GRADEKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only sees keys viper already knows about.
	for key, val := range map[string]any{
		"data_file":        cfg.DataFile,
		"theme":            cfg.Theme,
		"autosave_on_exit": cfg.AutosaveOnExit,
		"log.level":        cfg.Log.Level,
		"log.pretty":       cfg.Log.Pretty,
		"log.file":         cfg.Log.File,
		"export.sheet":     cfg.Export.Sheet,
	} {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.DataFile = expandEnv(cfg.DataFile)
	cfg.Log.File = expandEnv(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("config: data_file is required")
	}
	if !themes[c.Theme] {
		return fmt.Errorf("config: theme %q is invalid (must be green or amber)", c.Theme)
	}
	if _, err := logger.ParseLevel(logger.Level(c.Log.Level)); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if strings.TrimSpace(c.Export.Sheet) == "" {
		return fmt.Errorf("config: export.sheet is required")
	}
	return nil
}

// LoggerConfig maps the log section onto the logger package.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  logger.Level(c.Log.Level),
		Pretty: c.Log.Pretty,
	}
}
