// Package style compiles decoded style definitions into query-ready bundles.
//
// A Bundle keeps the normal, highlighted and disabled attribute sets separate and
// resolves the effective value for a state at lookup time: a state's own value wins,
// otherwise the normal value applies. Nothing is pre-merged at compile time.
package style

import (
	"fmt"
	"strings"

	"github.com/zjrosen/stylekit/internal/resolve"
	"github.com/zjrosen/stylekit/internal/schema"
)

// State is an interaction state of the styled text.
type State int

const (
	StateNormal State = iota
	StateHighlighted
	StateDisabled
)

// States lists every state.
var States = []State{StateNormal, StateHighlighted, StateDisabled}

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHighlighted:
		return "highlighted"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ParseState parses "normal", "highlighted" or "disabled".
func ParseState(s string) (State, error) {
	for _, st := range States {
		if st.String() == s {
			return st, nil
		}
	}
	return StateNormal, fmt.Errorf("unknown state %q (expected normal, highlighted or disabled)", s)
}

// Line is a resolved underline or strikethrough.
type Line struct {
	Style schema.LineStyle
	Color resolve.Color
}

// Stroke is a resolved glyph outline.
type Stroke struct {
	Color resolve.Color
	Width float64
}

// Shadow is a resolved drop shadow. Color is nil for the platform default.
type Shadow struct {
	Offset     schema.Size
	BlurRadius float64
	Color      *resolve.Color
}

// Attributes is a resolved attribute set. A nil field means the kind is not set.
type Attributes struct {
	Font             *resolve.Font
	Paragraph        *schema.Paragraph
	Foreground       *resolve.Color
	Background       *resolve.Color
	Ligature         *int
	Kern             *float64
	Strikethrough    *Line
	Underline        *Line
	Stroke           *Stroke
	Shadow           *Shadow
	TextEffect       *string
	Link             *string
	BaselineOffset   *float64
	Obliqueness      *float64
	Expansion        *float64
	WritingDirection *schema.WritingDirection
}

// Get returns the value set for kind, dereferenced.
func (a Attributes) Get(kind schema.Kind) (any, bool) {
	switch kind {
	case schema.KindFont:
		return deref(a.Font)
	case schema.KindParagraphStyle:
		return deref(a.Paragraph)
	case schema.KindForegroundColor:
		return deref(a.Foreground)
	case schema.KindBackgroundColor:
		return deref(a.Background)
	case schema.KindLigature:
		return deref(a.Ligature)
	case schema.KindKern:
		return deref(a.Kern)
	case schema.KindStrikethrough:
		return deref(a.Strikethrough)
	case schema.KindUnderline:
		return deref(a.Underline)
	case schema.KindStroke:
		return deref(a.Stroke)
	case schema.KindShadow:
		return deref(a.Shadow)
	case schema.KindTextEffect:
		return deref(a.TextEffect)
	case schema.KindLink:
		return deref(a.Link)
	case schema.KindBaselineOffset:
		return deref(a.BaselineOffset)
	case schema.KindObliqueness:
		return deref(a.Obliqueness)
	case schema.KindExpansion:
		return deref(a.Expansion)
	case schema.KindWritingDirection:
		return deref(a.WritingDirection)
	default:
		return nil, false
	}
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Has reports whether kind is set.
func (a Attributes) Has(kind schema.Kind) bool {
	_, ok := a.Get(kind)
	return ok
}

// Kinds returns the kinds that are set, in decode order.
func (a Attributes) Kinds() []schema.Kind {
	var kinds []schema.Kind
	for _, k := range schema.Kinds() {
		if a.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String lists the set kinds in decode order. Scalars and named values are shown
// as kind=value; structured values by kind alone.
func (a Attributes) String() string {
	kinds := a.Kinds()
	if len(kinds) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		v, _ := a.Get(kind)
		switch v := v.(type) {
		case fmt.Stringer:
			parts = append(parts, fmt.Sprintf("%s=%s", kind, v))
		case float64, int, string, schema.WritingDirection:
			parts = append(parts, fmt.Sprintf("%s=%v", kind, v))
		default:
			parts = append(parts, kind.String())
		}
	}
	return strings.Join(parts, ", ")
}

// Empty reports whether no kind is set.
func (a Attributes) Empty() bool {
	return len(a.Kinds()) == 0
}

// Overlay returns a copy of a where every kind set in top replaces a's value.
func (a Attributes) Overlay(top Attributes) Attributes {
	out := a
	pick(&out.Font, top.Font)
	pick(&out.Paragraph, top.Paragraph)
	pick(&out.Foreground, top.Foreground)
	pick(&out.Background, top.Background)
	pick(&out.Ligature, top.Ligature)
	pick(&out.Kern, top.Kern)
	pick(&out.Strikethrough, top.Strikethrough)
	pick(&out.Underline, top.Underline)
	pick(&out.Stroke, top.Stroke)
	pick(&out.Shadow, top.Shadow)
	pick(&out.TextEffect, top.TextEffect)
	pick(&out.Link, top.Link)
	pick(&out.BaselineOffset, top.BaselineOffset)
	pick(&out.Obliqueness, top.Obliqueness)
	pick(&out.Expansion, top.Expansion)
	pick(&out.WritingDirection, top.WritingDirection)
	return out
}

func pick[T any](dst **T, top *T) {
	if top != nil {
		*dst = top
	}
}
