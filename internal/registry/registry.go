// Package registry maps style names to compiled styles.
//
// A Registry starts empty and unloaded. Preload decodes and compiles a whole schema
// off to the side and publishes it as a new immutable Snapshot with a single atomic
// swap, so Apply always sees either the complete old set or the complete new one.
package registry

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/schema"
	"github.com/zjrosen/stylekit/internal/style"
	"github.com/zjrosen/stylekit/internal/tracing"
)

// Snapshot is one immutable generation of compiled styles.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Source   string
	// Warnings lists schema keys that were ignored, by path.
	Warnings []string

	styles map[string]*style.CompiledStyle
	names  []string
}

// Len returns the number of styles.
func (s *Snapshot) Len() int {
	return len(s.styles)
}

// Names returns the style names, sorted.
func (s *Snapshot) Names() []string {
	return slices.Clone(s.names)
}

// Style returns the compiled style for name.
func (s *Snapshot) Style(name string) (*style.CompiledStyle, bool) {
	cs, ok := s.styles[name]
	return cs, ok
}

// Registry owns the current snapshot. Multiple independent registries may coexist.
type Registry struct {
	compiler *style.Compiler
	tracer   trace.Tracer
	events   *broker
	now      func() time.Time

	current atomic.Pointer[Snapshot]
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracer records preload spans on tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Registry) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New creates an empty, unloaded registry. A nil compiler uses default resolvers
// and every capability.
func New(compiler *style.Compiler, opts ...Option) *Registry {
	if compiler == nil {
		compiler = style.NewCompiler(nil, nil, nil)
	}
	r := &Registry{
		compiler: compiler,
		tracer:   noop.NewTracerProvider().Tracer("stylekit"),
		events:   newBroker(defaultEventBuffer),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Preload decodes and compiles data (a JSON array of style definitions) and replaces
// every previously loaded style. On error the previous snapshot stays current.
func (r *Registry) Preload(ctx context.Context, data []byte) error {
	return r.preload(ctx, data, "")
}

func (r *Registry) preload(ctx context.Context, data []byte, source string) (err error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanPreload,
		trace.WithAttributes(
			attribute.Int(tracing.AttrPayloadSize, len(data)),
			attribute.String(tracing.AttrSource, source),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.ErrorErr(log.CatRegistry, "Preload failed", err, "source", source)
			r.events.publish(Event{Type: EventFailed, Err: err})
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := r.build(ctx, data, source)
	if err != nil {
		return err
	}

	prev := r.current.Swap(snap)
	span.AddEvent(tracing.EventSnapshotSwap)
	span.SetAttributes(
		attribute.String(tracing.AttrSnapshotID, snap.ID),
		attribute.Int(tracing.AttrStyleCount, snap.Len()),
	)
	span.SetStatus(codes.Ok, "")

	fields := []any{"snapshot", snap.ID, "styles", snap.Len(), "source", source}
	if prev != nil {
		fields = append(fields, "replaced", prev.ID)
	}
	log.Info(log.CatRegistry, "Styles preloaded", fields...)

	r.events.publish(Event{Type: EventReloaded, SnapshotID: snap.ID, Styles: snap.Len()})
	return nil
}

// build decodes and compiles everything into a snapshot that is not yet published.
func (r *Registry) build(ctx context.Context, data []byte, source string) (*Snapshot, error) {
	_, decodeSpan := r.tracer.Start(ctx, tracing.SpanDecode)
	defs, err := schema.DecodeDefinitions(data)
	decodeSpan.End()
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatDecode, "Decoded definitions", "count", len(defs))

	styles := make(map[string]*style.CompiledStyle, len(defs))
	var warnings []string
	for _, def := range defs {
		for _, path := range def.UnknownKeys() {
			log.Warn(log.CatDecode, "Ignoring unknown key", "style", def.Name, "path", path)
			warnings = append(warnings, fmt.Sprintf("style %q: unknown key %s ignored", def.Name, path))
		}
		cs, err := r.compile(ctx, def)
		if err != nil {
			return nil, err
		}
		if _, dup := styles[def.Name]; dup {
			log.Warn(log.CatRegistry, "Duplicate style name, last definition wins", "name", def.Name)
			trace.SpanFromContext(ctx).AddEvent(tracing.EventDuplicateStyle,
				trace.WithAttributes(attribute.String(tracing.AttrStyleName, def.Name)))
		}
		styles[def.Name] = cs
	}

	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	slices.Sort(names)

	return &Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: r.now(),
		Source:   source,
		Warnings: warnings,
		styles:   styles,
		names:    names,
	}, nil
}

func (r *Registry) compile(ctx context.Context, def schema.Definition) (*style.CompiledStyle, error) {
	_, span := r.tracer.Start(ctx, tracing.SpanCompile,
		trace.WithAttributes(
			attribute.String(tracing.AttrStyleName, def.Name),
			attribute.Int(tracing.AttrTagCount, len(def.TagStyles)),
		))
	defer span.End()

	cs, err := r.compiler.Compile(def)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("compile style %q: %w", def.Name, err)
	}
	return cs, nil
}

// Apply returns the compiled style registered under name.
func (r *Registry) Apply(name string) (*style.CompiledStyle, error) {
	snap := r.current.Load()
	if snap == nil {
		return nil, ErrPreloadRequired
	}
	cs, ok := snap.styles[name]
	if !ok {
		return nil, &StyleNotFoundError{Name: name}
	}
	return cs, nil
}

// Loaded reports whether a Preload has succeeded.
func (r *Registry) Loaded() bool {
	return r.current.Load() != nil
}

// Names returns the loaded style names, sorted. It is nil before the first Preload.
func (r *Registry) Names() []string {
	snap := r.current.Load()
	if snap == nil {
		return nil
	}
	return snap.Names()
}

// Snapshot returns the current snapshot, or nil before the first Preload.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// Subscribe delivers an Event for every Preload outcome until ctx is cancelled
// or the registry is closed.
func (r *Registry) Subscribe(ctx context.Context) <-chan Event {
	return r.events.subscribe(ctx)
}

// Close stops event delivery and closes every subscription.
func (r *Registry) Close() {
	r.events.close()
}
