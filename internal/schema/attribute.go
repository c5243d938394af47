package schema

import (
	"fmt"
	"slices"
)

// Attribute is one typed formatting instruction. The set of variants is closed:
// only the types in this file implement it.
type Attribute interface {
	Kind() Kind
	isAttribute()
}

// FontToken is either a NamedFont or a PreferredFont.
type FontToken interface {
	fmt.Stringer
	isFontToken()
}

// NamedFont names a custom font family or one of the reserved system font names.
type NamedFont struct {
	Name string
	Size float64
}

func (NamedFont) isFontToken() {}

func (f NamedFont) String() string {
	return fmt.Sprintf("%s %gpt", f.Name, f.Size)
}

// PreferredFont names a scalable, semantically named text style.
// Weight is empty when the schema did not set one.
type PreferredFont struct {
	TextStyle TextStyle
	Weight    Weight
}

func (PreferredFont) isFontToken() {}

func (f PreferredFont) String() string {
	if f.Weight == "" {
		return string(f.TextStyle)
	}
	return fmt.Sprintf("%s %s", f.TextStyle, f.Weight)
}

// TextStyle is a scalable preferred text style.
type TextStyle string

const (
	TextStyleLargeTitle  TextStyle = "largeTitle"
	TextStyleTitle1      TextStyle = "title1"
	TextStyleTitle2      TextStyle = "title2"
	TextStyleTitle3      TextStyle = "title3"
	TextStyleHeadline    TextStyle = "headline"
	TextStyleSubheadline TextStyle = "subheadline"
	TextStyleBody        TextStyle = "body"
	TextStyleCallout     TextStyle = "callout"
	TextStyleFootnote    TextStyle = "footnote"
	TextStyleCaption1    TextStyle = "caption1"
	TextStyleCaption2    TextStyle = "caption2"
)

// TextStyles lists every valid text style.
var TextStyles = []TextStyle{
	TextStyleLargeTitle, TextStyleTitle1, TextStyleTitle2, TextStyleTitle3,
	TextStyleHeadline, TextStyleSubheadline, TextStyleBody, TextStyleCallout,
	TextStyleFootnote, TextStyleCaption1, TextStyleCaption2,
}

// Weight is a font weight trait.
type Weight string

const (
	WeightUltraLight Weight = "ultraLight"
	WeightThin       Weight = "thin"
	WeightLight      Weight = "light"
	WeightRegular    Weight = "regular"
	WeightMedium     Weight = "medium"
	WeightSemibold   Weight = "semibold"
	WeightBold       Weight = "bold"
	WeightHeavy      Weight = "heavy"
	WeightBlack      Weight = "black"
)

// Weights lists every valid weight, lightest first.
var Weights = []Weight{
	WeightUltraLight, WeightThin, WeightLight, WeightRegular, WeightMedium,
	WeightSemibold, WeightBold, WeightHeavy, WeightBlack,
}

// AtLeast reports whether w is at least as heavy as other.
func (w Weight) AtLeast(other Weight) bool {
	return slices.Index(Weights, w) >= slices.Index(Weights, other)
}

// TextAlignment is a paragraph alignment.
type TextAlignment string

const (
	AlignLeft      TextAlignment = "left"
	AlignCenter    TextAlignment = "center"
	AlignRight     TextAlignment = "right"
	AlignJustified TextAlignment = "justified"
	AlignNatural   TextAlignment = "natural"
)

// TextAlignments lists every valid alignment.
var TextAlignments = []TextAlignment{AlignLeft, AlignCenter, AlignRight, AlignJustified, AlignNatural}

// LineBreakMode controls wrapping and truncation.
type LineBreakMode string

const (
	ByWordWrapping     LineBreakMode = "byWordWrapping"
	ByCharWrapping     LineBreakMode = "byCharWrapping"
	ByClipping         LineBreakMode = "byClipping"
	ByTruncatingHead   LineBreakMode = "byTruncatingHead"
	ByTruncatingTail   LineBreakMode = "byTruncatingTail"
	ByTruncatingMiddle LineBreakMode = "byTruncatingMiddle"
)

// LineBreakModes lists every valid line break mode.
var LineBreakModes = []LineBreakMode{
	ByWordWrapping, ByCharWrapping, ByClipping, ByTruncatingHead, ByTruncatingTail, ByTruncatingMiddle,
}

// LineBreakStrategy selects the line breaking heuristics.
type LineBreakStrategy string

const (
	LineBreakPushOut            LineBreakStrategy = "pushOut"
	LineBreakHangulWordPriority LineBreakStrategy = "hangulWordPriority"
	LineBreakStandard           LineBreakStrategy = "standard"
)

// LineBreakStrategies lists every valid strategy.
var LineBreakStrategies = []LineBreakStrategy{LineBreakPushOut, LineBreakHangulWordPriority, LineBreakStandard}

// WritingDirection is a base writing direction.
type WritingDirection string

const (
	DirectionNatural     WritingDirection = "natural"
	DirectionLeftToRight WritingDirection = "leftToRight"
	DirectionRightToLeft WritingDirection = "rightToLeft"
)

// WritingDirections lists every valid direction.
var WritingDirections = []WritingDirection{DirectionNatural, DirectionLeftToRight, DirectionRightToLeft}

// LineStyle is an underline or strikethrough pattern.
type LineStyle string

const (
	LineSingle            LineStyle = "single"
	LineThick             LineStyle = "thick"
	LineDouble            LineStyle = "double"
	LinePatternDot        LineStyle = "patternDot"
	LinePatternDash       LineStyle = "patternDash"
	LinePatternDashDot    LineStyle = "patternDashDot"
	LinePatternDashDotDot LineStyle = "patternDashDotDot"
	LineByWord            LineStyle = "byWord"
)

// LineStyles lists every valid line style.
var LineStyles = []LineStyle{
	LineSingle, LineThick, LineDouble, LinePatternDot, LinePatternDash,
	LinePatternDashDot, LinePatternDashDotDot, LineByWord,
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Font sets the font.
type Font struct{ Token FontToken }

// Paragraph sets paragraph layout. Every field is optional; nil means "leave unset".
type Paragraph struct {
	LineSpacing                          *float64
	ParagraphSpacing                     *float64
	Alignment                            *TextAlignment
	FirstLineHeadIndent                  *float64
	HeadIndent                           *float64
	TailIndent                           *float64
	LineBreakMode                        *LineBreakMode
	MinimumLineHeight                    *float64
	MaximumLineHeight                    *float64
	BaseWritingDirection                 *WritingDirection
	LineHeightMultiple                   *float64
	ParagraphSpacingBefore               *float64
	HyphenationFactor                    *float64
	UsesDefaultHyphenation               *bool
	DefaultTabInterval                   *float64
	AllowsDefaultTighteningForTruncation *bool
	LineBreakStrategy                    *LineBreakStrategy
}

// ForegroundColor sets the text color from a color token.
type ForegroundColor struct{ Color string }

// BackgroundColor sets the background color from a color token.
type BackgroundColor struct{ Color string }

// Ligature sets the ligature level.
type Ligature struct{ Value int }

// Kern sets character spacing in points.
type Kern struct{ Value float64 }

// Strikethrough draws a line through the text.
type Strikethrough struct {
	Style LineStyle
	Color string
}

// Underline draws a line under the text.
type Underline struct {
	Style LineStyle
	Color string
}

// Stroke outlines the glyphs.
type Stroke struct {
	Color string
	Width float64
}

// Shadow draws a drop shadow. Color is nil when the platform default is wanted.
type Shadow struct {
	Offset     Size
	BlurRadius float64
	Color      *string
}

// TextEffect applies a named text effect.
type TextEffect struct{ Value string }

// Link turns the text into a hyperlink.
type Link struct{ URL string }

// BaselineOffset shifts the baseline in points.
type BaselineOffset struct{ Value float64 }

// Obliqueness skews the glyphs.
type Obliqueness struct{ Value float64 }

// Expansion stretches the glyphs horizontally (log scale).
type Expansion struct{ Value float64 }

// WritingDirectionAttr sets the writing direction of the run.
type WritingDirectionAttr struct{ Direction WritingDirection }

func (Font) Kind() Kind                 { return KindFont }
func (Paragraph) Kind() Kind            { return KindParagraphStyle }
func (ForegroundColor) Kind() Kind      { return KindForegroundColor }
func (BackgroundColor) Kind() Kind      { return KindBackgroundColor }
func (Ligature) Kind() Kind             { return KindLigature }
func (Kern) Kind() Kind                 { return KindKern }
func (Strikethrough) Kind() Kind        { return KindStrikethrough }
func (Underline) Kind() Kind            { return KindUnderline }
func (Stroke) Kind() Kind               { return KindStroke }
func (Shadow) Kind() Kind               { return KindShadow }
func (TextEffect) Kind() Kind           { return KindTextEffect }
func (Link) Kind() Kind                 { return KindLink }
func (BaselineOffset) Kind() Kind       { return KindBaselineOffset }
func (Obliqueness) Kind() Kind          { return KindObliqueness }
func (Expansion) Kind() Kind            { return KindExpansion }
func (WritingDirectionAttr) Kind() Kind { return KindWritingDirection }

func (Font) isAttribute()                 {}
func (Paragraph) isAttribute()            {}
func (ForegroundColor) isAttribute()      {}
func (BackgroundColor) isAttribute()      {}
func (Ligature) isAttribute()             {}
func (Kern) isAttribute()                 {}
func (Strikethrough) isAttribute()        {}
func (Underline) isAttribute()            {}
func (Stroke) isAttribute()               {}
func (Shadow) isAttribute()               {}
func (TextEffect) isAttribute()           {}
func (Link) isAttribute()                 {}
func (BaselineOffset) isAttribute()       {}
func (Obliqueness) isAttribute()          {}
func (Expansion) isAttribute()            {}
func (WritingDirectionAttr) isAttribute() {}
