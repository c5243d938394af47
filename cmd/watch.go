package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload a style schema whenever it changes",
	Long: `Load a schema, then watch it and reload on every save. A schema that fails
to load is reported and the previous styles stay in effect.

Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer rt.close()

	path := rt.schemaPath(args)
	out := cmd.OutOrStdout()
	events := rt.reg.Subscribe(ctx)

	if err := rt.load(ctx, path, false); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "watching %s (%d styles)\n", path, rt.reg.Snapshot().Len())
	select {
	case <-events: // the initial load, already reported
	default:
	}

	return watchSchema(ctx, rt.reg, path, cfg.Watch.Debounce, func(ctx context.Context) error {
		return rt.load(ctx, path, false)
	}, events, out)
}

// watchSchema reloads on every debounced change of path and reports each outcome
// until ctx is done.
func watchSchema(ctx context.Context, reg *registry.Registry, path string, debounce time.Duration,
	reload func(context.Context) error, events <-chan registry.Event, out io.Writer) error {
	stopWatching, err := reloadOnChange(ctx, path, debounce, reload)
	if err != nil {
		return err
	}
	defer stopWatching()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case registry.EventReloaded:
				_, _ = fmt.Fprintf(out, "reloaded %s: %d styles (snapshot %s)\n", path, ev.Styles, ev.SnapshotID)
			case registry.EventFailed:
				_, _ = fmt.Fprintf(out, "reload of %s failed: %v (keeping %d styles)\n", path, ev.Err, len(reg.Names()))
			}
		}
	}
}

// reloadOnChange calls reload after every debounced change of path until ctx is
// done or the returned stop func is called. Reload errors are logged; the registry
// reports them to its subscribers as well.
func reloadOnChange(ctx context.Context, path string, debounce time.Duration, reload func(context.Context) error) (func(), error) {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: debounce})
	if err != nil {
		return nil, err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				if err := reload(ctx); err != nil {
					log.ErrorErr(log.CatWatcher, "Reload failed, keeping previous styles", err, "path", path)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
		_ = w.Stop()
	}, nil
}
