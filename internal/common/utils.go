package common

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/term-ranker/models"
	"github.com/urfave/cli/v2"
)

// NewLogger returns a JSON logger on stderr honoring --quiet and --verbose.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig loads the config named by --config, applies any flags set on
// the command line and validates the result.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	ApplyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags overrides cfg with the flags explicitly set on c.
func ApplyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("folder") {
		cfg.Folder = c.String("folder")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("top-fraction") {
		cfg.TopFraction = c.Float64("top-fraction")
	}
	if c.Bool("all") {
		cfg.TopFraction = 1
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("ext") {
		cfg.Extensions = models.NormalizeExtensions(models.SplitList(c.String("ext")))
	}
	if c.IsSet("languages") {
		cfg.Languages = models.SplitList(c.String("languages"))
	}
	if c.IsSet("max-compound") {
		cfg.MaxCompoundWords = c.Int("max-compound")
	}
	if c.IsSet("min-length") {
		cfg.MinTermLength = c.Int("min-length")
	}
}

// ParseID parses a positive numeric ID argument.
func ParseID(arg string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id < 1 {
		return 0, fmt.Errorf("invalid run ID: %s", arg)
	}
	return id, nil
}
