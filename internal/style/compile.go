package style

import (
	"errors"
	"fmt"

	"github.com/zjrosen/stylekit/internal/capability"
	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/resolve"
	"github.com/zjrosen/stylekit/internal/schema"
)

// ErrUnsupported matches every *UnsupportedError via errors.Is.
var ErrUnsupported = errors.New("feature not supported")

// UnsupportedError reports an attribute whose capability is disabled.
type UnsupportedError struct {
	Feature string
	Style   string
	Scope   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("style %q %s: %s is not supported on this platform", e.Style, e.Scope, e.Feature)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Compiler resolves definitions into compiled styles.
type Compiler struct {
	colors *resolve.ColorResolver
	fonts  *resolve.FontResolver
	caps   *capability.Set
}

// NewCompiler creates a compiler. Nil resolvers fall back to ones with empty catalogs.
// caps governs every capability check, including which standard colors the color
// resolver may return.
func NewCompiler(colors *resolve.ColorResolver, fonts *resolve.FontResolver, caps *capability.Set) *Compiler {
	colors = colors.WithCapabilities(caps)
	if fonts == nil {
		fonts = resolve.NewFontResolver(nil)
	}
	return &Compiler{colors: colors, fonts: fonts, caps: caps}
}

// Compile builds the base bundle and one independent bundle per tag.
// It has no side effects: compiling the same definition twice gives equal results.
func (c *Compiler) Compile(def schema.Definition) (*CompiledStyle, error) {
	base, err := c.compileGroup(def.Name, "base", def.Attributes)
	if err != nil {
		return nil, err
	}

	cs := &CompiledStyle{
		Name: def.Name,
		Base: base,
		tags: make(map[string]Bundle, len(def.TagStyles)),
	}
	for _, tag := range def.TagStyles {
		if _, dup := cs.tags[tag.Name]; dup {
			return nil, fmt.Errorf("style %q: duplicate tag style %q", def.Name, tag.Name)
		}
		bundle, err := c.compileGroup(def.Name, "tag "+tag.Name, tag.Attributes)
		if err != nil {
			return nil, err
		}
		cs.tags[tag.Name] = bundle
		cs.tagNames = append(cs.tagNames, tag.Name)
	}

	log.Debug(log.CatCompile, "Compiled style", "name", def.Name, "tags", len(cs.tagNames))
	return cs, nil
}

func (c *Compiler) compileGroup(styleName, scope string, group schema.StateGroup) (Bundle, error) {
	normal, err := c.compileSet(styleName, scope+".normal", group.Normal)
	if err != nil {
		return Bundle{}, err
	}
	highlighted, err := c.compileOptional(styleName, scope+".highlighted", group.Highlighted)
	if err != nil {
		return Bundle{}, err
	}
	disabled, err := c.compileOptional(styleName, scope+".disabled", group.Disabled)
	if err != nil {
		return Bundle{}, err
	}
	return NewBundle(normal, highlighted, disabled), nil
}

func (c *Compiler) compileOptional(styleName, scope string, set *schema.AttributeSet) (*Attributes, error) {
	if set == nil {
		return nil, nil
	}
	attrs, err := c.compileSet(styleName, scope, *set)
	if err != nil {
		return nil, err
	}
	return &attrs, nil
}

func (c *Compiler) compileSet(styleName, scope string, set schema.AttributeSet) (Attributes, error) {
	var out Attributes

	unsupported := func(feature string) error {
		log.Warn(log.CatCompile, "Capability disabled", "style", styleName, "scope", scope, "feature", feature)
		return &UnsupportedError{Feature: feature, Style: styleName, Scope: scope}
	}
	color := func(token string) (resolve.Color, error) {
		if c.colors.Extended(token) && !c.caps.Enabled(capability.ExtendedSystemColors) {
			log.Debug(log.CatResolve, "Standard color unavailable", "token", token)
			return resolve.Color{}, unsupported(capability.ExtendedSystemColors)
		}
		return c.colors.Resolve(token), nil
	}
	line := func(style schema.LineStyle, token string) (*Line, error) {
		col, err := color(token)
		if err != nil {
			return nil, err
		}
		return &Line{Style: style, Color: col}, nil
	}

	for _, attr := range set.All() {
		switch a := attr.(type) {
		case schema.Font:
			font, err := c.fonts.Resolve(a.Token)
			if err != nil {
				return Attributes{}, fmt.Errorf("style %q %s: %w", styleName, scope, err)
			}
			out.Font = &font
		case schema.Paragraph:
			if err := c.checkParagraph(a, unsupported); err != nil {
				return Attributes{}, err
			}
			p := a
			out.Paragraph = &p
		case schema.ForegroundColor:
			col, err := color(a.Color)
			if err != nil {
				return Attributes{}, err
			}
			out.Foreground = &col
		case schema.BackgroundColor:
			col, err := color(a.Color)
			if err != nil {
				return Attributes{}, err
			}
			out.Background = &col
		case schema.Ligature:
			v := a.Value
			out.Ligature = &v
		case schema.Kern:
			v := a.Value
			out.Kern = &v
		case schema.Strikethrough:
			l, err := line(a.Style, a.Color)
			if err != nil {
				return Attributes{}, err
			}
			out.Strikethrough = l
		case schema.Underline:
			l, err := line(a.Style, a.Color)
			if err != nil {
				return Attributes{}, err
			}
			out.Underline = l
		case schema.Stroke:
			col, err := color(a.Color)
			if err != nil {
				return Attributes{}, err
			}
			out.Stroke = &Stroke{Color: col, Width: a.Width}
		case schema.Shadow:
			if !c.caps.Enabled(capability.Shadow) {
				return Attributes{}, unsupported(capability.Shadow)
			}
			sh := &Shadow{Offset: a.Offset, BlurRadius: a.BlurRadius}
			if a.Color != nil {
				col, err := color(*a.Color)
				if err != nil {
					return Attributes{}, err
				}
				sh.Color = &col
			}
			out.Shadow = sh
		case schema.TextEffect:
			v := a.Value
			out.TextEffect = &v
		case schema.Link:
			v := a.URL
			out.Link = &v
		case schema.BaselineOffset:
			v := a.Value
			out.BaselineOffset = &v
		case schema.Obliqueness:
			v := a.Value
			out.Obliqueness = &v
		case schema.Expansion:
			v := a.Value
			out.Expansion = &v
		case schema.WritingDirectionAttr:
			v := a.Direction
			out.WritingDirection = &v
		default:
			return Attributes{}, fmt.Errorf("style %q %s: unsupported attribute %T", styleName, scope, attr)
		}
	}
	return out, nil
}

func (c *Compiler) checkParagraph(p schema.Paragraph, unsupported func(string) error) error {
	if p.UsesDefaultHyphenation != nil && !c.caps.Enabled(capability.DefaultHyphenation) {
		return unsupported(capability.DefaultHyphenation)
	}
	if p.AllowsDefaultTighteningForTruncation != nil && !c.caps.Enabled(capability.TighteningForTruncation) {
		return unsupported(capability.TighteningForTruncation)
	}
	if p.LineBreakStrategy != nil && !c.caps.Enabled(capability.LineBreakStrategy) {
		return unsupported(capability.LineBreakStrategy)
	}
	return nil
}
