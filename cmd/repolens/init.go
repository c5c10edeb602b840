package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
)

// InitCommand represents the init command
type InitCommand struct {
	force bool
	path  string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		path: ".repolens.yaml",
	}
}

// CreateCobraCommand creates the cobra command for config generation
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Long: `Write a configuration file populated with the default settings so they
can be adjusted per project.

Examples:
  repolens init
  repolens init --output repolens.yaml`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVar(&i.force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVarP(&i.path, "output", "o", ".repolens.yaml", "Configuration file to write")

	return cmd
}

// runInit writes the default configuration
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(i.path); err == nil && !i.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", i.path)
	}

	if err := config.SaveConfig(config.DefaultConfig(), i.path); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", i.path)
	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
