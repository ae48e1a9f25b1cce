// Package storage owns configuration and per-project state files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/wronai/taskguard/internal/security"
)

const (
	// ProjectConfigName is the per-project config file (.taskguard.yaml
	// in the working directory).
	ProjectConfigName = ".taskguard"

	ConfigFileType   = "yaml"
	TaskGuardDirName = ".taskguard"
)

var config *Config

// Config holds the application configuration.
type Config struct {
	Scanner security.ScanConfig `mapstructure:"scanner"`
	Todo    TodoConfig          `mapstructure:"todo"`
	Log     LogConfig           `mapstructure:"log"`
}

// TodoConfig holds task-board configuration.
type TodoConfig struct {
	File       string   `mapstructure:"file"`
	Categories []string `mapstructure:"categories"`
	Priorities []string `mapstructure:"priorities"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// GetDataDir returns the project-local taskguard data directory.
func GetDataDir() string {
	return TaskGuardDirName
}

// InitConfig loads configuration: the project-local .taskguard.yaml
// wins, falling back to ~/.taskguard/config.yaml, falling back to
// defaults. Missing files are not an error.
func InitConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(ProjectConfigName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, TaskGuardDirName))
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file anywhere, run with defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = &cfg
	return config, nil
}

// GetConfig returns the loaded config.
func GetConfig() *Config {
	if config == nil {
		return defaultConfig()
	}
	return config
}

// WriteDefaultConfig writes a .taskguard.yaml with the default settings
// into dir. It refuses to overwrite an existing file.
func WriteDefaultConfig(dir string) (string, error) {
	path := filepath.Join(dir, ProjectConfigName+"."+ConfigFileType)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %s already exists", path)
	}

	v := viper.New()
	v.SetConfigType(ConfigFileType)
	setDefaults(v)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

func setDefaults(v *viper.Viper) {
	scan := security.DefaultScanConfig()
	v.SetDefault("scanner.exclude_dirs", scan.ExcludeDirs)
	v.SetDefault("scanner.exclude_files", scan.ExcludeFiles)
	v.SetDefault("scanner.scan_extensions", []string{})
	v.SetDefault("scanner.scan_patterns", []string{})

	v.SetDefault("todo.file", "TODO.md")
	v.SetDefault("todo.categories", []string{"feature", "bugfix", "refactor", "test", "docs"})
	v.SetDefault("todo.priorities", []string{"high", "medium", "low"})

	v.SetDefault("log.level", "warn")
}

func defaultConfig() *Config {
	return &Config{
		Scanner: security.DefaultScanConfig(),
		Todo: TodoConfig{
			File:       "TODO.md",
			Categories: []string{"feature", "bugfix", "refactor", "test", "docs"},
			Priorities: []string{"high", "medium", "low"},
		},
		Log: LogConfig{Level: "warn"},
	}
}
