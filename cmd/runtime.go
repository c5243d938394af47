package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/zjrosen/stylekit/internal/config"
	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/render"
	"github.com/zjrosen/stylekit/internal/templates"
	"github.com/zjrosen/stylekit/internal/tracing"
)

// runtime wires the registry, tracer and renderer for one command invocation.
type runtime struct {
	cfg      config.Config
	reg      *registry.Registry
	tracing  *tracing.Provider
	renderer *render.Renderer
}

func newRuntime(c config.Config, out io.Writer) (*runtime, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(c.TracingConfig())
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	compiler, err := c.Compiler()
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, err
	}
	profile, err := render.ParseProfile(c.Render.ColorProfile)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, err
	}

	return &runtime{
		cfg:      c,
		reg:      registry.New(compiler, registry.WithTracer(provider.Tracer())),
		tracing:  provider,
		renderer: render.NewRenderer(out, profile, c.Cache.TTL),
	}, nil
}

// load preloads path, the configured schema when path is empty, or the embedded
// example when example is set.
func (rt *runtime) load(ctx context.Context, path string, example bool) error {
	if example {
		return rt.reg.PreloadFS(ctx, templates.ExamplesFS(), templates.ExampleSchema)
	}
	if path == "" {
		path = rt.cfg.Styles
	}
	return rt.reg.PreloadFile(ctx, path)
}

// schemaPath returns the file a command should read.
func (rt *runtime) schemaPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return rt.cfg.Styles
}

func (rt *runtime) close() {
	rt.reg.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.tracing.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
	}
}
