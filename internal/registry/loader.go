package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	stdpath "path"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/tracing"
)

// PreloadFile reads a schema file from disk and preloads it.
// Files ending in .yaml or .yml are converted to JSON first.
func (r *Registry) PreloadFile(ctx context.Context, path string) error {
	ctx, span := r.tracer.Start(ctx, tracing.SpanPreloadFile,
		trace.WithAttributes(attribute.String(tracing.AttrSource, path)))
	defer span.End()

	data, err := os.ReadFile(path) //nolint:gosec // G304: schema path comes from user config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileNotFoundError{Name: filepath.Base(path), Location: filepath.Dir(path)}
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	return r.preloadBytes(ctx, data, path)
}

// PreloadFS reads name from fsys and preloads it. Use it for embedded schemas.
func (r *Registry) PreloadFS(ctx context.Context, fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileNotFoundError{Name: stdpath.Base(name), Location: stdpath.Dir(name)}
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	return r.preloadBytes(ctx, data, name)
}

func (r *Registry) preloadBytes(ctx context.Context, data []byte, name string) error {
	if IsYAML(name) {
		converted, err := YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		log.Debug(log.CatRegistry, "Converted YAML schema", "file", name, "bytes", len(converted))
		data = converted
	}
	return r.preload(ctx, data, name)
}

// IsYAML reports whether name has a .yaml or .yml extension.
func IsYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// YAMLToJSON re-encodes a YAML document as JSON so both formats share one decoder.
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(jsonCompatible(doc))
}

// jsonCompatible converts yaml.v3's map[any]any nodes into map[string]any.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}
