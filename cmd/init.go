package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stylekit/internal/config"
	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/templates"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and an example schema",
	Long: `Write a commented default config to ./.stylekit/config.yaml (or --config)
and, when the styles file does not exist yet, the example schema.

Examples:
  stylekit init
  stylekit init --styles themes/app.json
  stylekit init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = defaultConfigPath
	}
	stylesPath, _ := cmd.Flags().GetString("styles")
	if stylesPath == "" {
		stylesPath = config.Defaults().Styles
	}
	return initWorkspace(cmd.OutOrStdout(), configPath, stylesPath, initForce)
}

func initWorkspace(out io.Writer, configPath, stylesPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := config.WriteDefaultConfig(configPath); err != nil {
		return err
	}
	if stylesPath != config.Defaults().Styles {
		if err := config.SaveStylesPath(configPath, stylesPath); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(out, "wrote %s\n", configPath)

	_, err := os.Stat(stylesPath)
	switch {
	case err == nil:
		log.Debug(log.CatConfig, "Schema exists, leaving it alone", "path", stylesPath)
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", stylesPath, err)
	}

	if dir := filepath.Dir(stylesPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating schema directory: %w", err)
		}
	}
	if err := os.WriteFile(stylesPath, templates.Example(), 0o600); err != nil {
		return fmt.Errorf("writing example schema: %w", err)
	}
	_, _ = fmt.Fprintf(out, "wrote %s\n", stylesPath)
	return nil
}
