package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateExample bool

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Decode and compile a style schema",
	Long: `Decode and compile every style in a schema file and report the first error.
Keys that name no attribute are ignored and listed as warnings.

The file defaults to the configured styles path. YAML files (.yaml, .yml) are
accepted alongside JSON.

Examples:
  stylekit validate
  stylekit validate themes/dark.json
  stylekit validate --example`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateExample, "example", false, "validate the embedded example schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer rt.close()

	path := rt.schemaPath(args)
	if err := rt.load(cmd.Context(), path, validateExample); err != nil {
		return err
	}

	snap := rt.reg.Snapshot()
	if validateExample {
		path = "example"
	}
	out := cmd.OutOrStdout()
	for _, w := range snap.Warnings {
		if _, err := fmt.Fprintf(out, "warning: %s\n", w); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "%s: %d styles ok (snapshot %s)\n", path, snap.Len(), snap.ID)
	return err
}
