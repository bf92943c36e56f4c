package main

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leaksplit/leaksplit/internal/config"
)

//go:embed templates/leaksplit.yaml
var configTemplate embed.FS

// templatePath is the location of the configuration template in configTemplate.
const templatePath = "templates/leaksplit.yaml"

// configFileName is the file init writes when no --output is given.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter leaksplit configuration file",
		Long: `Init writes a commented configuration file holding the built-in defaults.

Settings are layered, each source overriding the one before it:
  defaults < configuration file < LEAKSPLIT_* environment < command-line flags

Without --config, leaksplit reads the first file it finds among
.leaksplit.yaml in the current directory, config.yaml in the XDG config
directory and .leaksplit.yaml in the home directory.

Examples:
  # Write .leaksplit.yaml in the current directory
  leaksplit init

  # Write the per-user file
  leaksplit init -o ~/.config/leaksplit/config.yaml

  # Print the template instead of writing it
  leaksplit init --stdout > ci/leaksplit.yaml`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName, "Path of the configuration file to write")
	cmd.Flags().BoolP("force", "f", false, "Replace an existing file")
	cmd.Flags().Bool("stdout", false, "Print the template to standard output")
	cmd.MarkFlagsMutuallyExclusive("stdout", "output")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if toStdout {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigFile(outputPath, content, force); err != nil {
		return err
	}

	printInitResult(cmd.OutOrStdout(), outputPath)
	return nil
}

// writeConfigFile writes content to path, creating parent directories.
// An existing file is kept unless force is set.
func writeConfigFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// printInitResult reports the written file and whether leaksplit will pick
// it up without --config.
func printInitResult(out io.Writer, path string) {
	fmt.Fprintf(out, "Created configuration file: %s\n", path)

	active, err := config.FindConfigFile("")
	if err != nil || active == "" {
		return
	}
	written, err := filepath.Abs(path)
	if err != nil {
		return
	}

	if written == active {
		fmt.Fprintln(out, "leaksplit reads this file by default.")
		return
	}
	fmt.Fprintf(out, "leaksplit reads %s first; pass --config %s to use the new file.\n", active, path)
}
