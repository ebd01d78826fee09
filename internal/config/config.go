// Package config loads and validates the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nruiz/go-cv2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// Config holds all configuration for CV generation.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Photos  PhotosConfig  `yaml:"photos"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig defines profile source options.
type InputConfig struct {
	ProfilesFile string `yaml:"profilesFile"` // default profile source (empty = must specify)
	ExtraFile    string `yaml:"extraFile"`    // optional extra profiles merged in memory
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // document output directory (empty = "output")
}

// PhotosConfig defines photo resolution and normalization options.
type PhotosConfig struct {
	Dir        string `yaml:"dir"`        // directory searched for photos by name
	Process    bool   `yaml:"process"`    // enable square-crop/resize/compress
	Required   bool   `yaml:"required"`   // photo failures fail the record
	TargetSize int    `yaml:"targetSize"` // normalized side length, pixels (0 = default)
	MinSize    int    `yaml:"minSize"`    // minimum source side length (0 = default)
	MaxBytes   int64  `yaml:"maxBytes"`   // encoded size budget (0 = default)
}

// LoggingConfig defines diagnostic output options.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error" (empty = "warn")
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks config field values. Zero values are allowed everywhere
// and mean "use the built-in default".
func (c *Config) Validate() error {
	if c.Photos.TargetSize < 0 {
		return fmt.Errorf("%w: photos.targetSize %d", ErrInvalidConfig, c.Photos.TargetSize)
	}
	if c.Photos.MinSize < 0 {
		return fmt.Errorf("%w: photos.minSize %d", ErrInvalidConfig, c.Photos.MinSize)
	}
	if c.Photos.MaxBytes < 0 {
		return fmt.Errorf("%w: photos.maxBytes %d", ErrInvalidConfig, c.Photos.MaxBytes)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml.
// Tries locations in order: current directory, ~/.config/cv2docx/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "cv2docx", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
