package style

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/stylekit/internal/capability"
	"github.com/zjrosen/stylekit/internal/resolve"
	"github.com/zjrosen/stylekit/internal/schema"
)

func decodeDef(t *testing.T, js string) schema.Definition {
	t.Helper()
	def, err := schema.DecodeDefinition([]byte(js))
	require.NoError(t, err)
	return def
}

func newCompiler(caps *capability.Set, families ...string) *Compiler {
	return NewCompiler(
		resolve.NewColorResolver(nil, caps),
		resolve.NewFontResolver(resolve.NewFamilySet(families...)),
		caps,
	)
}

func TestCascade(t *testing.T) {
	def := decodeDef(t, `{
		"name": "button",
		"attributes": {
			"normal": {"font": {"name": "system", "size": 14}, "kern": 10},
			"highlighted": {"foregroundColor": "#00f"}
		}
	}`)
	cs, err := newCompiler(capability.All()).Compile(def)
	require.NoError(t, err)

	font, ok := cs.Base.Lookup(schema.KindFont, StateHighlighted)
	require.True(t, ok, "font inherited from normal")
	require.Equal(t, 14.0, font.(resolve.Font).Size)

	fg, ok := cs.Base.Lookup(schema.KindForegroundColor, StateHighlighted)
	require.True(t, ok)
	require.Equal(t, "#0000ff", fg.(resolve.Color).Hex())

	_, ok = cs.Base.Lookup(schema.KindForegroundColor, StateNormal)
	require.False(t, ok, "highlighted values never leak into normal")

	_, ok = cs.Base.Lookup(schema.KindForegroundColor, StateDisabled)
	require.False(t, ok, "undeclared disabled falls back to normal")

	kern, ok := cs.Base.Lookup(schema.KindKern, StateDisabled)
	require.True(t, ok)
	require.Equal(t, 10.0, kern)
}

func TestCascade_StatesAreNotPreMerged(t *testing.T) {
	def := decodeDef(t, `{
		"name": "s",
		"attributes": {"normal": {"kern": 1}, "disabled": {"link": "x"}}
	}`)
	cs, err := newCompiler(nil).Compile(def)
	require.NoError(t, err)

	declared, ok := cs.Base.Declared(StateDisabled)
	require.True(t, ok)
	require.Equal(t, []schema.Kind{schema.KindLink}, declared.Kinds())

	eff := cs.Base.Effective(StateDisabled)
	require.Equal(t, []schema.Kind{schema.KindKern, schema.KindLink}, eff.Kinds())

	_, ok = cs.Base.Declared(StateHighlighted)
	require.False(t, ok)
}

func TestCascadeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		normal := drawAttributes(t, "normal")
		var highlighted *Attributes
		if rapid.Bool().Draw(t, "hasHighlighted") {
			h := drawAttributes(t, "highlighted")
			highlighted = &h
		}
		b := NewBundle(normal, highlighted, nil)

		for _, kind := range schema.Kinds() {
			got, gotOK := b.Lookup(kind, StateHighlighted)

			want, wantOK := normal.Get(kind)
			if highlighted != nil {
				if v, ok := highlighted.Get(kind); ok {
					want, wantOK = v, true
				}
			}
			if gotOK != wantOK || got != want {
				t.Fatalf("Lookup(%s, highlighted) = %v,%v want %v,%v", kind, got, gotOK, want, wantOK)
			}

			eff, effOK := b.Effective(StateHighlighted).Get(kind)
			if effOK != gotOK || eff != got {
				t.Fatalf("Effective disagrees with Lookup for %s", kind)
			}

			n, nOK := b.Lookup(kind, StateNormal)
			base, baseOK := normal.Get(kind)
			if nOK != baseOK || n != base {
				t.Fatalf("normal lookup for %s changed by highlighted set", kind)
			}
		}
	})
}

// drawAttributes draws a set over the comparable scalar kinds.
func drawAttributes(t *rapid.T, label string) Attributes {
	var a Attributes
	if rapid.Bool().Draw(t, label+".kern?") {
		v := rapid.Float64Range(-10, 10).Draw(t, label+".kern")
		a.Kern = &v
	}
	if rapid.Bool().Draw(t, label+".ligature?") {
		v := rapid.IntRange(0, 2).Draw(t, label+".ligature")
		a.Ligature = &v
	}
	if rapid.Bool().Draw(t, label+".link?") {
		v := rapid.StringMatching(`https://[a-z]{1,8}\.com`).Draw(t, label+".link")
		a.Link = &v
	}
	if rapid.Bool().Draw(t, label+".obliqueness?") {
		v := rapid.Float64Range(-1, 1).Draw(t, label+".obliqueness")
		a.Obliqueness = &v
	}
	if rapid.Bool().Draw(t, label+".fg?") {
		v, _ := resolve.ParseHex(rapid.StringMatching(`[0-9a-f]{6}`).Draw(t, label+".fg"))
		a.Foreground = &v
	}
	return a
}

func TestCompile_TagsAreIndependent(t *testing.T) {
	def := decodeDef(t, `{
		"name": "price",
		"attributes": {"font": {"name": "system", "size": 14}, "foregroundColor": "red"},
		"tagStyles": [
			{"name": "b", "attributes": {"font": {"name": "systemBold", "size": 14}}},
			{"name": "i", "attributes": {"normal": {}, "highlighted": {"font": {"name": "systemItalic", "size": 14}}}}
		]
	}`)
	cs, err := newCompiler(capability.All()).Compile(def)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "i"}, cs.TagNames())

	b, ok := cs.Tag("b")
	require.True(t, ok)
	require.False(t, b.Normal().Has(schema.KindForegroundColor), "tag bundles do not inherit base")
	require.Equal(t, schema.WeightBold, b.Normal().Font.Weight)

	i, ok := cs.Tag("i")
	require.True(t, ok)
	require.True(t, i.Effective(StateHighlighted).Font.Italic)
	require.Nil(t, i.Effective(StateNormal).Font)

	_, ok = cs.Tag("u")
	require.False(t, ok)
}

func TestCompile_Idempotent(t *testing.T) {
	def := decodeDef(t, `{
		"name": "rich",
		"attributes": {
			"normal": {
				"font": {"textStyle": "body", "weight": "medium"},
				"paragraphStyle": {"alignment": "justified", "lineSpacing": 2},
				"underline": {"style": "single", "color": "systemBlue"},
				"shadow": {"offset": {"width": 1, "height": 1}, "blurRadius": 2, "color": "#333"}
			},
			"highlighted": {"backgroundColor": "yellow"}
		},
		"tagStyles": [{"name": "a", "attributes": {"link": "https://example.com"}}]
	}`)
	c := newCompiler(capability.All())

	first, err := c.Compile(def)
	require.NoError(t, err)
	second, err := c.Compile(def)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.NotSame(t, first, second)
}

func TestCompile_FontNotFound(t *testing.T) {
	def := decodeDef(t, `{"name": "s", "attributes": {"font": {"name": "Papyrus", "size": 12}}}`)

	_, err := newCompiler(nil).Compile(def)
	require.ErrorIs(t, err, resolve.ErrFontNotFound)

	cs, err := newCompiler(nil, "Papyrus").Compile(def)
	require.NoError(t, err)
	require.Equal(t, "Papyrus", cs.Base.Normal().Font.Family)
}

func TestCompile_CapabilityGates(t *testing.T) {
	tests := []struct {
		name    string
		attrs   string
		feature string
	}{
		{"shadow", `{"shadow": {"offset": {"width": 1, "height": 1}, "blurRadius": 1}}`, capability.Shadow},
		{"hyphenation", `{"paragraphStyle": {"usesDefaultHyphenation": true}}`, capability.DefaultHyphenation},
		{"tightening", `{"paragraphStyle": {"allowsDefaultTighteningForTruncation": false}}`, capability.TighteningForTruncation},
		{"line break strategy", `{"paragraphStyle": {"lineBreakStrategy": "standard"}}`, capability.LineBreakStrategy},
		{"extended color", `{"underline": {"style": "single", "color": "systemIndigo"}}`, capability.ExtendedSystemColors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := decodeDef(t, `{"name": "gated", "attributes": {"normal": {}, "disabled": `+tt.attrs+`}}`)

			_, err := newCompiler(capability.All()).Compile(def)
			require.NoError(t, err, "allowed when the capability is enabled")

			_, err = newCompiler(capability.All().Without(tt.feature)).Compile(def)
			require.ErrorIs(t, err, ErrUnsupported)

			var ue *UnsupportedError
			require.True(t, errors.As(err, &ue))
			require.Equal(t, tt.feature, ue.Feature)
			require.Equal(t, "gated", ue.Style)
			require.Equal(t, "base.disabled", ue.Scope)
		})
	}
}

func TestCompile_CompilerCapabilitiesGovernColors(t *testing.T) {
	def := decodeDef(t, `{"name": "c", "attributes": {"foregroundColor": "systemIndigo"}}`)
	noExtended := capability.All().Without(capability.ExtendedSystemColors)

	_, err := NewCompiler(resolve.NewColorResolver(nil, capability.All()), nil, noExtended).Compile(def)
	require.ErrorIs(t, err, ErrUnsupported, "the compiler's set wins over a permissive resolver")

	cs, err := NewCompiler(resolve.NewColorResolver(nil, noExtended), nil, capability.All()).Compile(def)
	require.NoError(t, err)
	want := resolve.NewColorResolver(nil, nil).Resolve("systemIndigo")
	require.Equal(t, want, *cs.Base.Normal().Foreground, "a restrictive resolver does not turn the color black")
	require.NotEqual(t, resolve.Black, want)

	assets := resolve.ColorCatalog{"systemIndigo": resolve.Black}
	cs, err = NewCompiler(resolve.NewColorResolver(assets, nil), nil, noExtended).Compile(def)
	require.NoError(t, err, "an asset of the same name is always available")
	require.Equal(t, resolve.Black, *cs.Base.Normal().Foreground)
}

func TestAttributes_Overlay(t *testing.T) {
	k1, k2, lig := 1.0, 2.0, 1
	base := Attributes{Kern: &k1, Ligature: &lig}
	top := Attributes{Kern: &k2}

	out := base.Overlay(top)
	require.Equal(t, 2.0, *out.Kern)
	require.Equal(t, 1, *out.Ligature)
	require.Equal(t, 1.0, *base.Kern, "overlay does not mutate the receiver")
	require.True(t, Attributes{}.Empty())
}

func TestAttributes_String(t *testing.T) {
	kern := 1.5
	fg, _ := resolve.ParseHex("#f00")
	a := Attributes{
		Font:       &resolve.Font{Family: resolve.SystemFamily, Size: 14, Weight: schema.WeightBold},
		Foreground: &fg,
		Kern:       &kern,
		Underline:  &Line{Style: schema.LineSingle},
	}
	require.Equal(t, "font=system 14pt bold, foregroundColor=#ff0000, kern=1.5, underline", a.String())
	require.Equal(t, "{}", Attributes{}.String())
}

func TestParseState(t *testing.T) {
	for _, st := range States {
		got, err := ParseState(st.String())
		require.NoError(t, err)
		require.Equal(t, st, got)
	}
	_, err := ParseState("pressed")
	require.Error(t, err)
}
