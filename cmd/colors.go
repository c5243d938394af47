package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stylekit/internal/presentation"
	"github.com/zjrosen/stylekit/internal/resolve"
)

var colorsJSON bool

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the color names a schema may reference",
	Long: `List the configured asset colors followed by the standard color names.
Extended standard colors are marked disabled when the extended-system-colors
capability is off; a schema that uses one fails to compile.

Examples:
  stylekit colors
  stylekit colors --json | jq '.[] | select(.source == "asset")'`,
	Args: cobra.NoArgs,
	RunE: runColors,
}

func init() {
	colorsCmd.Flags().BoolVar(&colorsJSON, "json", false, "output JSON")
	rootCmd.AddCommand(colorsCmd)
}

func runColors(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	catalog, err := cfg.ColorCatalog()
	if err != nil {
		return err
	}

	colors := presentation.FromColors(catalog, resolve.NewColorResolver(catalog, cfg.CapabilitySet()))
	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	if colorsJSON {
		return formatter.FormatColors(colors)
	}
	return formatter.FormatColorTable(colors)
}
