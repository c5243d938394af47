// Package config provides configuration types and defaults for stylekit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/zjrosen/stylekit/internal/capability"
	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/render"
	"github.com/zjrosen/stylekit/internal/resolve"
	"github.com/zjrosen/stylekit/internal/style"
	"github.com/zjrosen/stylekit/internal/tracing"
)

// Config holds all configuration options for stylekit.
type Config struct {
	Styles       string          `mapstructure:"styles"` // schema file, json or yaml
	Capabilities map[string]bool `mapstructure:"capabilities"`
	Assets       AssetsConfig    `mapstructure:"assets"`
	Fonts        FontsConfig     `mapstructure:"fonts"`
	Render       RenderConfig    `mapstructure:"render"`
	Cache        CacheConfig     `mapstructure:"cache"`
	Watch        WatchConfig     `mapstructure:"watch"`
	Tracing      tracing.Config  `mapstructure:"tracing"`
}

// AssetsConfig holds the host application's named colors.
type AssetsConfig struct {
	// Colors maps asset names to hex values, e.g. brandPrimary: "#1A5276".
	Colors map[string]string `mapstructure:"colors"`
}

// FontsConfig lists the custom font families that may be referenced by name.
type FontsConfig struct {
	Families []string `mapstructure:"families"`
}

// RenderConfig holds terminal rendering options.
type RenderConfig struct {
	ColorProfile string `mapstructure:"color_profile"` // truecolor, ansi256, ansi, ascii; empty detects
	State        string `mapstructure:"state"`         // normal (default), highlighted, disabled
}

// CacheConfig holds the rendered-style cache options.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// WatchConfig holds hot reload options.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultTracesFilePath returns the default traces file under the user config dir.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".stylekit", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "stylekit", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = "" // derived from the config dir at runtime
	return Config{
		Styles:       "styles.json",
		Capabilities: capability.All().All(),
		Assets:       AssetsConfig{Colors: map[string]string{}},
		Render: RenderConfig{
			State: style.StateNormal.String(),
		},
		Cache: CacheConfig{TTL: 10 * time.Minute},
		Watch: WatchConfig{Debounce: 300 * time.Millisecond},
		Tracing: tr,
	}
}

// Validate checks the configuration for errors. Empty values use defaults.
func (c Config) Validate() error {
	var errs []error
	for _, name := range sortedKeys(c.Capabilities) {
		if !capability.IsKnown(name) {
			errs = append(errs, fmt.Errorf("capabilities.%s: unknown capability (expected one of %v)", name, capability.Known()))
		}
	}
	for _, name := range sortedKeys(c.Assets.Colors) {
		if _, ok := resolve.ParseHex(c.Assets.Colors[name]); !ok {
			errs = append(errs, fmt.Errorf("assets.colors.%s: %q is not a hex color", name, c.Assets.Colors[name]))
		}
	}
	if c.Render.ColorProfile != "" {
		if _, err := render.ParseProfile(c.Render.ColorProfile); err != nil {
			errs = append(errs, fmt.Errorf("render.color_profile: %w", err))
		}
	}
	if c.Render.State != "" {
		if _, err := style.ParseState(c.Render.State); err != nil {
			errs = append(errs, fmt.Errorf("render.state: %w", err))
		}
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %v", c.Cache.TTL))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce))
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tr tracing.Config) error {
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}
	if tr.Exporter != "" && !slices.Contains(tracing.Exporters, tr.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of %v, got %q", tracing.Exporters, tr.Exporter)
	}
	if tr.Enabled && tr.Exporter == "otlp" && tr.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// CapabilitySet returns the configured capability set.
func (c Config) CapabilitySet() *capability.Set {
	return capability.New(c.Capabilities)
}

// State returns the configured default interaction state.
func (c Config) State() style.State {
	st, err := style.ParseState(c.Render.State)
	if err != nil {
		return style.StateNormal
	}
	return st
}

// TracingConfig returns the tracing config with a file path filled in.
func (c Config) TracingConfig() tracing.Config {
	tr := c.Tracing
	if tr.Exporter == "file" && tr.FilePath == "" {
		tr.FilePath = DefaultTracesFilePath()
	}
	return tr
}

// ColorCatalog parses the configured asset colors.
func (c Config) ColorCatalog() (resolve.ColorCatalog, error) {
	return resolve.NewColorCatalog(c.Assets.Colors)
}

// Compiler builds a style compiler from the asset, font and capability settings.
func (c Config) Compiler() (*style.Compiler, error) {
	caps := c.CapabilitySet()
	catalog, err := c.ColorCatalog()
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatConfig, "Building compiler",
		"assets", len(catalog), "families", len(c.Fonts.Families))
	return style.NewCompiler(
		resolve.NewColorResolver(catalog, caps),
		resolve.NewFontResolver(resolve.NewFamilySet(c.Fonts.Families...)),
		caps,
	), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# stylekit configuration

# Style schema file (JSON array of style definitions, or the same shape in YAML)
styles: styles.json

# Platform capabilities. Disabling one makes styles that use it fail to compile.
capabilities:
  shadow: true
  default-hyphenation: true
  tightening-for-truncation: true
  line-break-strategy: true
  extended-system-colors: true   # systemBrown, systemCyan, systemGray2-6, systemIndigo, systemMint

# Named colors the schema may reference (checked before standard names and hex)
# assets:
#   colors:
#     brandPrimary: "#1A5276"

# Custom font families the schema may reference by name
# fonts:
#   families: ["AvenirNext-Regular", "Menlo"]

# Terminal rendering
render:
  # color_profile: truecolor   # truecolor, ansi256, ansi or ascii (default: detect)
  state: normal                # normal, highlighted or disabled

# Rendered style cache
cache:
  ttl: 10m

# Hot reload (stylekit watch, stylekit preview)
watch:
  debounce: 300ms

# Tracing of schema loads
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/stylekit/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
