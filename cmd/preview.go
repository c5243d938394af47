package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/stylekit/internal/preview"
	"github.com/zjrosen/stylekit/internal/style"
)

var (
	previewSample  string
	previewState   string
	previewExample bool
	previewNoWatch bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Browse styles interactively",
	Long: `Open an interactive preview of every style in a schema. The sample text is
rendered with the selected style; tab cycles the interaction state. The schema
is reloaded whenever the file changes.

Examples:
  stylekit preview
  stylekit preview themes/dark.yaml --sample 'Hello <b>world</b>'
  stylekit preview --example`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewSample, "sample", "", "marked-up sample text")
	previewCmd.Flags().StringVar(&previewState, "state", "", "initial interaction state (default: config render.state)")
	previewCmd.Flags().BoolVar(&previewExample, "example", false, "preview the embedded example schema")
	previewCmd.Flags().BoolVar(&previewNoWatch, "no-watch", false, "do not reload when the schema file changes")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	state := cfg.State()
	if previewState != "" {
		st, err := style.ParseState(previewState)
		if err != nil {
			return err
		}
		state = st
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := newRuntime(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer rt.close()

	path := rt.schemaPath(args)
	if err := rt.load(ctx, path, previewExample); err != nil {
		return err
	}

	opts := []preview.Option{preview.WithSample(previewSample), preview.WithState(state)}
	if !previewExample {
		reload := func(ctx context.Context) error { return rt.load(ctx, path, false) }
		opts = append(opts, preview.WithReload(reload))
		if !previewNoWatch {
			stopWatching, err := reloadOnChange(ctx, path, cfg.Watch.Debounce, reload)
			if err != nil {
				return err
			}
			defer stopWatching()
		}
	}

	go rt.renderer.FlushOnReload(ctx, rt.reg)

	model := preview.New(ctx, rt.reg, rt.renderer, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}
