// Package resolve turns schema tokens into concrete colors and fonts.
//
// Color resolution is total: every token yields a color, falling back through the
// asset catalog, the standard color names and hex parsing to opaque black. Font
// resolution may fail with a *FontNotFoundError for unknown custom families.
package resolve

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/zjrosen/stylekit/internal/capability"
	"github.com/zjrosen/stylekit/internal/log"
)

// Color is an RGB color with an alpha channel.
type Color struct {
	RGB   colorful.Color
	Alpha float64
}

// Black is the fallback for unresolvable tokens.
var Black = Color{RGB: colorful.Color{R: 0, G: 0, B: 0}, Alpha: 1}

// Hex renders the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return c.RGB.Clamped().Hex()
}

// Transparent reports whether the color has no visible coverage.
func (c Color) Transparent() bool {
	return c.Alpha <= 0
}

func (c Color) String() string {
	if c.Alpha >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("%s@%.2f", c.Hex(), c.Alpha)
}

// ParseHex parses "#rgb", "rgb", "#rrggbb" or "rrggbb" case-insensitively.
// The result is opaque. ok is false for anything else.
func ParseHex(token string) (Color, bool) {
	digits := strings.TrimPrefix(token, "#")
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 || !isHexDigits(digits) {
		return Color{}, false
	}
	// Always parse the six digit form so equal colors compare equal.
	rgb, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return Color{}, false
	}
	return Color{RGB: rgb, Alpha: 1}, true
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// AssetCatalog looks up named colors supplied by the host application.
type AssetCatalog interface {
	Color(name string) (Color, bool)
}

// ColorCatalog is an AssetCatalog backed by a map.
type ColorCatalog map[string]Color

// Color implements AssetCatalog. Names that miss exactly are retried in lower
// case, since viper folds configuration keys.
func (c ColorCatalog) Color(name string) (Color, bool) {
	if col, ok := c[name]; ok {
		return col, true
	}
	col, ok := c[strings.ToLower(name)]
	return col, ok
}

// NewColorCatalog builds a catalog from name -> hex pairs, as found in configuration.
func NewColorCatalog(hexes map[string]string) (ColorCatalog, error) {
	catalog := make(ColorCatalog, len(hexes))
	for name, hex := range hexes {
		col, ok := ParseHex(hex)
		if !ok {
			return nil, fmt.Errorf("asset color %q: invalid hex value %q", name, hex)
		}
		catalog[name] = col
	}
	return catalog, nil
}

// ColorResolver resolves color tokens. The zero value resolves standard names and hex.
type ColorResolver struct {
	assets AssetCatalog
	caps   *capability.Set
}

// NewColorResolver creates a resolver. assets and caps may be nil.
func NewColorResolver(assets AssetCatalog, caps *capability.Set) *ColorResolver {
	return &ColorResolver{assets: assets, caps: caps}
}

// Resolve returns the color for token. It never fails: unknown tokens are opaque black.
func (r *ColorResolver) Resolve(token string) Color {
	if r != nil && r.assets != nil {
		if col, ok := r.assets.Color(token); ok {
			return col
		}
	}
	if col, ok := r.standard(token); ok {
		return col
	}
	if col, ok := ParseHex(token); ok {
		return col
	}
	log.Debug(log.CatResolve, "Unresolvable color token, using black", "token", token)
	return Black
}

// WithCapabilities returns a copy of r, sharing its assets, that gates extended
// colors on caps.
func (r *ColorResolver) WithCapabilities(caps *capability.Set) *ColorResolver {
	out := &ColorResolver{caps: caps}
	if r != nil {
		out.assets = r.assets
	}
	return out
}

// Extended reports whether token selects an extended standard color, that is one
// no asset overrides.
func (r *ColorResolver) Extended(token string) bool {
	sc, ok := standardColors[token]
	if !ok || !sc.extended {
		return false
	}
	if r != nil && r.assets != nil {
		if _, found := r.assets.Color(token); found {
			return false
		}
	}
	return true
}

// Unavailable reports whether token selects an extended standard color that the
// resolver's capability set does not provide.
func (r *ColorResolver) Unavailable(token string) bool {
	return r.Extended(token) && !r.capabilities().Enabled(capability.ExtendedSystemColors)
}

func (r *ColorResolver) standard(token string) (Color, bool) {
	sc, ok := standardColors[token]
	if !ok {
		return Color{}, false
	}
	if sc.extended && !r.capabilities().Enabled(capability.ExtendedSystemColors) {
		return Color{}, false
	}
	return sc.color, true
}

func (r *ColorResolver) capabilities() *capability.Set {
	if r == nil {
		return nil
	}
	return r.caps
}

// StandardColorNames returns the names of the standard color table, sorted.
func StandardColorNames() []string {
	return slices.Sorted(maps.Keys(standardColors))
}

type standardColor struct {
	color    Color
	extended bool
}

func rgb(r, g, b float64) Color {
	return Color{RGB: colorful.Color{R: r, G: g, B: b}, Alpha: 1}
}

func hex(s string) Color {
	col, _ := ParseHex(s)
	return col
}

var standardColors = map[string]standardColor{
	"systemBlue":   {color: hex("007AFF")},
	"systemGray":   {color: hex("8E8E93")},
	"systemGreen":  {color: hex("34C759")},
	"systemOrange": {color: hex("FF9500")},
	"systemPink":   {color: hex("FF2D55")},
	"systemPurple": {color: hex("AF52DE")},
	"systemRed":    {color: hex("FF3B30")},
	"systemTeal":   {color: hex("30B0C7")},
	"systemYellow": {color: hex("FFCC00")},

	"systemBrown":  {color: hex("A2845E"), extended: true},
	"systemCyan":   {color: hex("32ADE6"), extended: true},
	"systemGray2":  {color: hex("AEAEB2"), extended: true},
	"systemGray3":  {color: hex("C7C7CC"), extended: true},
	"systemGray4":  {color: hex("D1D1D6"), extended: true},
	"systemGray5":  {color: hex("E5E5EA"), extended: true},
	"systemGray6":  {color: hex("F2F2F7"), extended: true},
	"systemIndigo": {color: hex("5856D6"), extended: true},
	"systemMint":   {color: hex("00C7BE"), extended: true},

	"clear":     {color: Color{Alpha: 0}},
	"black":     {color: rgb(0, 0, 0)},
	"white":     {color: rgb(1, 1, 1)},
	"red":       {color: rgb(1, 0, 0)},
	"green":     {color: rgb(0, 1, 0)},
	"blue":      {color: rgb(0, 0, 1)},
	"cyan":      {color: rgb(0, 1, 1)},
	"magenta":   {color: rgb(1, 0, 1)},
	"yellow":    {color: rgb(1, 1, 0)},
	"orange":    {color: rgb(1, 0.5, 0)},
	"purple":    {color: rgb(0.5, 0, 0.5)},
	"brown":     {color: rgb(0.6, 0.4, 0.2)},
	"gray":      {color: rgb(0.5, 0.5, 0.5)},
	"darkGray":  {color: rgb(1.0/3, 1.0/3, 1.0/3)},
	"lightGray": {color: rgb(2.0/3, 2.0/3, 2.0/3)},
}
