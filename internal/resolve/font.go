package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/schema"
)

// SystemFamily is the family name reported for platform system fonts.
const SystemFamily = "system"

// ErrFontNotFound matches every *FontNotFoundError via errors.Is.
var ErrFontNotFound = errors.New("font not found")

// FontNotFoundError reports a custom family that the font catalog does not provide.
type FontNotFoundError struct {
	Name string
	Size float64
}

func (e *FontNotFoundError) Error() string {
	return fmt.Sprintf("font %q (%gpt) not found", e.Name, e.Size)
}

func (e *FontNotFoundError) Is(target error) bool {
	return target == ErrFontNotFound
}

// Font is a resolved font description.
type Font struct {
	Family string
	Size   float64
	Weight schema.Weight
	Italic bool
	// TextStyle is set for scalable preferred fonts.
	TextStyle schema.TextStyle
}

// System reports whether f is a platform system font.
func (f Font) System() bool {
	return f.Family == SystemFamily
}

// Bold reports whether f is rendered with a bold-or-heavier weight.
func (f Font) Bold() bool {
	return f.Weight.AtLeast(schema.WeightSemibold)
}

func (f Font) String() string {
	var b strings.Builder
	b.WriteString(f.Family)
	if f.TextStyle != "" {
		fmt.Fprintf(&b, " (%s)", f.TextStyle)
	}
	fmt.Fprintf(&b, " %gpt %s", f.Size, f.Weight)
	if f.Italic {
		b.WriteString(" italic")
	}
	return b.String()
}

// FontCatalog reports which custom font families are installed.
type FontCatalog interface {
	HasFamily(name string) bool
}

// FamilySet is a FontCatalog backed by a fixed list of family names.
type FamilySet map[string]struct{}

// NewFamilySet creates a catalog containing names.
func NewFamilySet(names ...string) FamilySet {
	set := make(FamilySet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// HasFamily implements FontCatalog.
func (s FamilySet) HasFamily(name string) bool {
	_, ok := s[name]
	return ok
}

// systemFonts maps the reserved names and their aliases to the system variant.
var systemFonts = map[string]Font{
	"system":           {Family: SystemFamily, Weight: schema.WeightRegular},
	"systemFont":       {Family: SystemFamily, Weight: schema.WeightRegular},
	"systemBold":       {Family: SystemFamily, Weight: schema.WeightBold},
	"boldSystemFont":   {Family: SystemFamily, Weight: schema.WeightBold},
	"systemItalic":     {Family: SystemFamily, Weight: schema.WeightRegular, Italic: true},
	"italicSystemFont": {Family: SystemFamily, Weight: schema.WeightRegular, Italic: true},
}

// preferredMetrics holds the default point size and weight of each text style.
var preferredMetrics = map[schema.TextStyle]struct {
	size   float64
	weight schema.Weight
}{
	schema.TextStyleLargeTitle:  {34, schema.WeightRegular},
	schema.TextStyleTitle1:      {28, schema.WeightRegular},
	schema.TextStyleTitle2:      {22, schema.WeightRegular},
	schema.TextStyleTitle3:      {20, schema.WeightRegular},
	schema.TextStyleHeadline:    {17, schema.WeightSemibold},
	schema.TextStyleSubheadline: {15, schema.WeightRegular},
	schema.TextStyleBody:        {17, schema.WeightRegular},
	schema.TextStyleCallout:     {16, schema.WeightRegular},
	schema.TextStyleFootnote:    {13, schema.WeightRegular},
	schema.TextStyleCaption1:    {12, schema.WeightRegular},
	schema.TextStyleCaption2:    {11, schema.WeightRegular},
}

// FontResolver resolves font tokens against a catalog of installed families.
type FontResolver struct {
	catalog FontCatalog
}

// NewFontResolver creates a resolver. A nil catalog knows no custom families.
func NewFontResolver(catalog FontCatalog) *FontResolver {
	return &FontResolver{catalog: catalog}
}

// Resolve maps token to a Font. Only custom named families can fail.
func (r *FontResolver) Resolve(token schema.FontToken) (Font, error) {
	switch t := token.(type) {
	case schema.NamedFont:
		return r.resolveNamed(t)
	case schema.PreferredFont:
		return resolvePreferred(t), nil
	default:
		return Font{}, fmt.Errorf("unsupported font token %T", token)
	}
}

func (r *FontResolver) resolveNamed(t schema.NamedFont) (Font, error) {
	if f, ok := systemFonts[t.Name]; ok {
		f.Size = t.Size
		return f, nil
	}
	if r == nil || r.catalog == nil || !r.catalog.HasFamily(t.Name) {
		log.Debug(log.CatResolve, "Font family not installed", "name", t.Name, "size", t.Size)
		return Font{}, &FontNotFoundError{Name: t.Name, Size: t.Size}
	}
	return Font{Family: t.Name, Size: t.Size, Weight: schema.WeightRegular}, nil
}

func resolvePreferred(t schema.PreferredFont) Font {
	m, ok := preferredMetrics[t.TextStyle]
	if !ok {
		m = preferredMetrics[schema.TextStyleBody]
	}
	f := Font{Family: SystemFamily, Size: m.size, Weight: m.weight, TextStyle: t.TextStyle}
	if t.Weight != "" {
		f.Weight = t.Weight
	}
	return f
}
