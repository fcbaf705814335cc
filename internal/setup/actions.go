package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtnitsch/term-ranker/models"
	"github.com/dtnitsch/term-ranker/pkg/help"
	"github.com/urfave/cli/v2"
)

// InitAction writes the commented config template.
func InitAction(c *cli.Context) error {
	outputPath := c.String("output")
	if outputPath == "" {
		outputPath = models.DefaultConfigFile
	}
	if c.Bool("xdg") {
		outputPath = models.XDGConfigFile()
	}

	if !c.Bool("force") {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outputPath)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(help.ConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created %s\n", outputPath)
	return nil
}

// QuickstartAction prints usage examples as YAML.
func QuickstartAction(c *cli.Context) error {
	fmt.Print(help.ColdstartYAML)
	return nil
}
