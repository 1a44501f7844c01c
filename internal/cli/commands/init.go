package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initConfig is the shape written to a fresh maki.yaml.
type initConfig struct {
	All         bool     `yaml:"all"`
	Patterns    bool     `yaml:"patterns"`
	Recursive   bool     `yaml:"recursive"`
	Output      string   `yaml:"output"`
	ExcludeVars []string `yaml:"exclude_vars,omitempty"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a maki.yaml configuration file",
		Long: `Write a maki.yaml with the default settings to the given directory
(current directory if omitted). The file documents the available
options and anchors the project root for upward config search.`,
		Example: `  # Initialize in current directory
  maki init

  # Initialize in a subdirectory
  maki init tools/

  # Overwrite an existing config
  maki init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "maki.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("maki.yaml already exists, use --force to overwrite")
	}

	cfg := initConfig{
		All:       false,
		Patterns:  false,
		Recursive: false,
		Output:    "auto",
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	header := []byte("# maki configuration\n# See 'maki --help' for what each option controls.\n")
	if err := os.WriteFile(configPath, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
	return nil
}
