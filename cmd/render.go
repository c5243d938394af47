package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stylekit/internal/render"
	"github.com/zjrosen/stylekit/internal/style"
)

var (
	renderState   string
	renderWidth   int
	renderRuns    bool
	renderExample bool
)

var renderCmd = &cobra.Command{
	Use:   "render <style> <text>",
	Short: "Render marked-up text with a style",
	Long: `Render text with a named style. Inline tags such as <b>...</b> select the
style's tag styles; <a href="..."> becomes a terminal hyperlink.

Examples:
  stylekit render price 'Save <b>$1.00</b> on <b>any</b> order!'
  stylekit render button 'Buy now' --state highlighted --width 20
  stylekit render price 'Save <b>$1.00</b>' --runs`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderState, "state", "", "interaction state: normal, highlighted or disabled (default: config render.state)")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "lay the text out in this many columns (0 disables layout)")
	renderCmd.Flags().BoolVar(&renderRuns, "runs", false, "print the attributed runs instead of styled text")
	renderCmd.Flags().BoolVar(&renderExample, "example", false, "use the embedded example schema")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	state := cfg.State()
	if renderState != "" {
		st, err := style.ParseState(renderState)
		if err != nil {
			return err
		}
		state = st
	}

	rt, err := newRuntime(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.load(cmd.Context(), "", renderExample); err != nil {
		return err
	}
	cs, err := rt.reg.Apply(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderRuns {
		for _, run := range render.Attributed(cs, args[1], state) {
			tags := "-"
			if len(run.Tags) > 0 {
				tags = strings.Join(run.Tags, ">")
			}
			if _, err := fmt.Fprintf(out, "%d-%d\t%s\t%q\t%s\n", run.Start, run.End, tags, run.Text, run.Attributes); err != nil {
				return err
			}
		}
		return nil
	}

	_, err = fmt.Fprintln(out, rt.renderer.Block(rt.reg.Snapshot().ID, cs, args[1], state, renderWidth))
	return err
}
