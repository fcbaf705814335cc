// Package models defines the runtime configuration.
package models

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG config directory.
const AppName = "term-ranker"

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "term-ranker.yaml"

// EnvPrefix prefixes every environment override, e.g. TERM_RANKER_WORKERS.
const EnvPrefix = "TERM_RANKER_"

// Defaults for a run.
const (
	DefaultFolder           = "sample_pdfs"
	DefaultOutput           = "output.txt"
	DefaultTopFraction      = 0.10
	DefaultWorkers          = 4
	DefaultMaxCompoundWords = 4
	DefaultMinTermLength    = 3
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrConfigNotFound is returned when an explicit config path does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// Config holds runtime configuration for a run.
type Config struct {
	Folder           string   `yaml:"folder"`
	Output           string   `yaml:"output"`
	TopFraction      float64  `yaml:"top_fraction"`
	Workers          int      `yaml:"workers"`
	Extensions       []string `yaml:"extensions"`
	Languages        []string `yaml:"languages"`
	MaxCompoundWords int      `yaml:"max_compound_words"`
	MinTermLength    int      `yaml:"min_term_length"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Folder:           DefaultFolder,
		Output:           DefaultOutput,
		TopFraction:      DefaultTopFraction,
		Workers:          DefaultWorkers,
		Extensions:       []string{".pdf"},
		Languages:        []string{"english", "portuguese"},
		MaxCompoundWords: DefaultMaxCompoundWords,
		MinTermLength:    DefaultMinTermLength,
	}
}

// XDGConfigFile returns the per-user config file,
// e.g. ~/.config/term-ranker/config.yaml on Linux.
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// FindConfigFile returns configPath if given, else the first existing file
// of ./term-ranker.yaml and the XDG config file, else "".
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	for _, candidate := range []string{DefaultConfigFile, XDGConfigFile()} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadConfig builds a Config from defaults, the config file and the
// environment (including a .env file in the working directory).
// An explicit configPath must exist; discovered files are optional.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := NewConfig()
	if path := FindConfigFile(configPath); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Folder = getEnv("FOLDER", c.Folder)
	c.Output = getEnv("OUTPUT", c.Output)
	c.Extensions = getEnvList("EXTENSIONS", c.Extensions)
	c.Languages = getEnvList("LANGUAGES", c.Languages)

	var err error
	if c.TopFraction, err = getEnvFloat("TOP_FRACTION", c.TopFraction); err != nil {
		return err
	}
	if c.Workers, err = getEnvInt("WORKERS", c.Workers); err != nil {
		return err
	}
	if c.MaxCompoundWords, err = getEnvInt("MAX_COMPOUND_WORDS", c.MaxCompoundWords); err != nil {
		return err
	}
	if c.MinTermLength, err = getEnvInt("MIN_TERM_LENGTH", c.MinTermLength); err != nil {
		return err
	}
	return nil
}

// Validate returns the first problem found, wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	if math.IsNaN(c.TopFraction) || c.TopFraction <= 0 || c.TopFraction > 1 {
		return fmt.Errorf("%w: top_fraction must be in (0, 1], got %v", ErrInvalidConfig, c.TopFraction)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalidConfig)
	}
	if c.MaxCompoundWords < 2 {
		return fmt.Errorf("%w: max_compound_words must be at least 2, got %d", ErrInvalidConfig, c.MaxCompoundWords)
	}
	if c.MinTermLength < 1 {
		return fmt.Errorf("%w: min_term_length must be at least 1, got %d", ErrInvalidConfig, c.MinTermLength)
	}
	// An empty list disables detection; one language leaves nothing to detect.
	if len(c.Languages) == 1 {
		return fmt.Errorf("%w: languages needs none or at least two entries", ErrInvalidConfig)
	}
	return nil
}

// NormalizeExtensions lowercases extensions and adds the leading dot,
// dropping blanks and duplicates.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}

// SplitList splits a comma-separated value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		return value
	}
	return fallback
}

// getEnvList treats a set but blank variable as an empty list.
func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback
	}
	list := SplitList(value)
	if list == nil {
		return []string{}
	}
	return list
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
	}
	return f, nil
}
