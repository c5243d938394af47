package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/stylekit/internal/presentation"
)

var (
	listJSON    bool
	listExample bool
)

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the styles in a schema",
	Long: `List every style in a schema with its declared states and tags.

Examples:
  # Table of styles
  stylekit list

  # Full JSON, including the attribute kinds each state sets
  stylekit list --json | jq '.styles[].name'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	listCmd.Flags().BoolVar(&listExample, "example", false, "list the embedded example schema")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.load(cmd.Context(), rt.schemaPath(args), listExample); err != nil {
		return err
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dto := presentation.FromSnapshot(rt.reg.Snapshot())
	if listJSON {
		return formatter.FormatSnapshot(dto)
	}
	return formatter.FormatStyleTable(dto.Styles)
}
