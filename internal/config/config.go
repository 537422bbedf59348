// Package config loads generator defaults from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagecraft/go-html2pdf/internal/fileutil"
	"github.com/pagecraft/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxTemplateLength    = 4096 // Header/footer HTML templates
	MaxTempDirLength     = 1024 // Filesystem path
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// Config holds defaults for PDF generation.
type Config struct {
	Page   PageConfig   `yaml:"page"`
	Render RenderConfig `yaml:"render"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size            string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation     string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin          float64 `yaml:"margin"`      // inches (default: 0.5)
	HeaderTemplate  string  `yaml:"headerTemplate"`
	FooterTemplate  string  `yaml:"footerTemplate"`
	PrintBackground bool    `yaml:"printBackground"`
}

// RenderConfig defines rendering engine settings.
type RenderConfig struct {
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // 0 = library default
	TempDir        string `yaml:"tempDir"`        // empty = shared dir under os.TempDir()
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.headerTemplate", c.Page.HeaderTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.footerTemplate", c.Page.FooterTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.tempDir", c.Render.TempDir, MaxTempDirLength); err != nil {
		return err
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
			// valid
		default:
			return fmt.Errorf("page.size: invalid value %q (must be letter, a4, or legal)", c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
			// valid
		default:
			return fmt.Errorf("page.orientation: invalid value %q (must be portrait or landscape)", c.Page.Orientation)
		}
	}
	if c.Page.Margin != 0 {
		if c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin {
			return fmt.Errorf("page.margin: must be between %.2f and %.2f, got %.2f", MinMargin, MaxMargin, c.Page.Margin)
		}
	}
	if c.Render.TimeoutSeconds < 0 {
		return fmt.Errorf("render.timeoutSeconds: must not be negative, got %d", c.Render.TimeoutSeconds)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Zero values defer to the
// library defaults (US Letter, portrait, 0.5in margins).
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
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

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-html2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-html2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
