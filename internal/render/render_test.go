package render

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/resolve"
	"github.com/zjrosen/stylekit/internal/schema"
	"github.com/zjrosen/stylekit/internal/style"
)

const priceSchema = `[{
	"name": "price",
	"attributes": {"font": {"name": "systemFont", "size": 14}, "foregroundColor": "red"},
	"tagStyles": [
		{"name": "b", "attributes": {"font": {"name": "boldSystemFont", "size": 14}}},
		{"name": "u", "attributes": {
			"normal": {"underline": {"style": "single", "color": "blue"}},
			"highlighted": {"foregroundColor": "#00ff00"}
		}}
	]
}]`

func loadStyle(t *testing.T, name string) (*registry.Registry, *style.CompiledStyle) {
	t.Helper()
	reg := registry.New(nil)
	require.NoError(t, reg.Preload(context.Background(), []byte(priceSchema)))
	cs, err := reg.Apply(name)
	require.NoError(t, err)
	return reg, cs
}

func TestRuns_PriceExample(t *testing.T) {
	_, cs := loadStyle(t, "price")

	runs := Attributed(cs, "Save <b>$1.00</b> on <b>any</b> order!", style.StateNormal)
	require.Len(t, runs, 5)

	red := resolve.NewColorResolver(nil, nil).Resolve("red")
	for _, i := range []int{0, 2, 4} {
		run := runs[i]
		require.Empty(t, run.Tags)
		require.Equal(t, resolve.Font{Family: resolve.SystemFamily, Size: 14, Weight: schema.WeightRegular}, *run.Attributes.Font)
		require.Equal(t, red, *run.Attributes.Foreground)
	}

	tagged := []struct {
		text       string
		start, end int
	}{{"$1.00", 5, 10}, {"any", 14, 17}}
	for i, want := range tagged {
		run := runs[1+2*i]
		require.Equal(t, want.text, run.Text)
		require.Equal(t, want.start, run.Start)
		require.Equal(t, want.end, run.End)
		require.Equal(t, []string{"b"}, run.Tags)
		require.Equal(t, resolve.Font{Family: resolve.SystemFamily, Size: 14, Weight: schema.WeightBold}, *run.Attributes.Font)
	}
}

func TestRuns_TagStateOverlay(t *testing.T) {
	_, cs := loadStyle(t, "price")

	normal := Attributed(cs, "<u>x</u>", style.StateNormal)
	require.Equal(t, "#ff0000", normal[0].Attributes.Foreground.Hex(), "base color shows through")
	require.NotNil(t, normal[0].Attributes.Underline)

	hl := Attributed(cs, "<u>x</u>", style.StateHighlighted)
	require.Equal(t, "#00ff00", hl[0].Attributes.Foreground.Hex(), "tag's highlighted color wins")
	require.NotNil(t, hl[0].Attributes.Underline, "tag's normal underline cascades to highlighted")
}

func TestRuns_NestedAndUnknownTags(t *testing.T) {
	_, cs := loadStyle(t, "price")

	runs := Attributed(cs, `<b><u>x</u></b><q>y</q><a href="https://example.com">z</a>`, style.StateNormal)
	require.Len(t, runs, 3)

	require.Equal(t, []string{"b", "u"}, runs[0].Tags)
	require.True(t, runs[0].Attributes.Font.Bold())
	require.NotNil(t, runs[0].Attributes.Underline)

	require.Equal(t, "#ff0000", runs[1].Attributes.Foreground.Hex(), "unknown tag keeps base attributes")
	require.False(t, runs[1].Attributes.Font.Bold())

	require.NotNil(t, runs[2].Attributes.Link)
	require.Equal(t, "https://example.com", *runs[2].Attributes.Link)
}

func TestRenderer_Ascii(t *testing.T) {
	_, cs := loadStyle(t, "price")
	r := NewRenderer(io.Discard, termenv.Ascii, time.Minute)

	out := r.Render("snap", cs, "Save <b>$1.00</b>!", style.StateNormal)
	require.Equal(t, "Save $1.00!", out)
}

func TestRenderer_TrueColor(t *testing.T) {
	_, cs := loadStyle(t, "price")
	r := NewRenderer(io.Discard, termenv.TrueColor, time.Minute)

	out := r.Render("snap", cs, `Save <b>$1.00</b> <a href="https://example.com">now</a>`, style.StateNormal)
	require.Equal(t, "Save $1.00 now", ansi.Strip(out))
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, ansi.SetHyperlink("https://example.com"))
	require.Contains(t, out, ansi.ResetHyperlink())
}

func TestRenderer_StyleMapping(t *testing.T) {
	r := NewRenderer(io.Discard, termenv.TrueColor, time.Minute)
	obl := 0.2
	fg, _ := resolve.ParseHex("#123456")
	transparent := resolve.NewColorResolver(nil, nil).Resolve("clear")

	st := r.Style(style.Attributes{
		Font:          &resolve.Font{Family: resolve.SystemFamily, Size: 12, Weight: schema.WeightHeavy},
		Obliqueness:   &obl,
		Foreground:    &fg,
		Background:    &transparent,
		Strikethrough: &style.Line{Style: schema.LineSingle},
	})
	require.True(t, st.GetBold())
	require.True(t, st.GetItalic())
	require.True(t, st.GetStrikethrough())
	require.False(t, st.GetUnderline())
	require.Equal(t, lipgloss.Color("#123456"), st.GetForeground())
	require.Equal(t, lipgloss.NoColor{}, st.GetBackground(), "transparent colors are not painted")
}

func TestRenderer_FlushOnReload(t *testing.T) {
	reg, cs := loadStyle(t, "price")
	r := NewRenderer(io.Discard, termenv.TrueColor, time.Minute)

	r.Render(reg.Snapshot().ID, cs, "Save <b>$1.00</b>", style.StateNormal)
	require.Equal(t, 2, r.styles.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		r.FlushOnReload(ctx, reg)
		close(done)
	}()

	// Wait until the flusher has subscribed before triggering a reload.
	require.Eventually(t, func() bool {
		return reg.Preload(ctx, []byte(priceSchema)) == nil && r.styles.Len() == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "FlushOnReload did not return after cancel")
	}
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("ANSI256")
	require.NoError(t, err)
	require.Equal(t, termenv.ANSI256, p)

	_, err = ParseProfile("sepia")
	require.Error(t, err)
}

func TestBlock(t *testing.T) {
	reg := registry.New(nil)
	require.NoError(t, reg.Preload(context.Background(), []byte(`[
		{"name": "wrap", "attributes": {"paragraphStyle": {"alignment": "right"}}},
		{"name": "tail", "attributes": {"paragraphStyle": {"lineBreakMode": "byTruncatingTail"}}},
		{"name": "head", "attributes": {"paragraphStyle": {"lineBreakMode": "byTruncatingHead"}}},
		{"name": "middle", "attributes": {"paragraphStyle": {"lineBreakMode": "byTruncatingMiddle"}}},
		{"name": "clip", "attributes": {"paragraphStyle": {"lineBreakMode": "byClipping"}}}
	]`)))
	r := NewRenderer(io.Discard, termenv.Ascii, time.Minute)
	block := func(name, text string, width int) string {
		cs, err := reg.Apply(name)
		require.NoError(t, err)
		return r.Block("snap", cs, text, style.StateNormal, width)
	}

	wrapped := block("wrap", "one two three", 7)
	lines := strings.Split(wrapped, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "one two", lines[0])
	require.Equal(t, "  three", lines[1])

	require.Equal(t, "abcd…", block("tail", "abcdefghij", 5))
	require.Equal(t, "…ghij", block("head", "abcdefghij", 5))
	require.Equal(t, "ab…ij", block("middle", "abcdefghij", 5))
	require.Equal(t, "abcde", block("clip", "abcdefghij", 5))
	require.Equal(t, "abc", block("tail", "abc", 5))
	require.Equal(t, "abcdefghij", block("tail", "abcdefghij", 0))
}

func TestLayout(t *testing.T) {
	mode := func(m schema.LineBreakMode) *schema.Paragraph { return &schema.Paragraph{LineBreakMode: &m} }

	require.Equal(t, "one two\nthree", Layout("one two three", nil, 7))
	require.Equal(t, "abcd\nefgh\nij", Layout("abcdefghij", mode(schema.ByCharWrapping), 4))
	require.Equal(t, "abcd…", Layout("abcdefghij", mode(schema.ByTruncatingTail), 5))
	require.Equal(t, "…ghij", Layout("abcdefghij", mode(schema.ByTruncatingHead), 5))
	require.Equal(t, "ab…ij", Layout("abcdefghij", mode(schema.ByTruncatingMiddle), 5))
	require.Equal(t, "abcde", Layout("abcdefghij", mode(schema.ByClipping), 5))
	require.Equal(t, "short", Layout("short", mode(schema.ByTruncatingMiddle), 10))
	require.Equal(t, "anything", Layout("anything", nil, 0))
}

func TestAlignment(t *testing.T) {
	center := schema.AlignCenter
	require.Equal(t, 0.5, float64(Alignment(&schema.Paragraph{Alignment: &center})))
	require.Equal(t, 0.0, float64(Alignment(nil)))
}

func TestRuns_TagNamesKeepCase(t *testing.T) {
	reg := registry.New(nil)
	require.NoError(t, reg.Preload(context.Background(), []byte(`[{
		"name": "mixed",
		"attributes": {"foregroundColor": "red"},
		"tagStyles": [
			{"name": "boldRed", "attributes": {"font": {"name": "boldSystemFont", "size": 12}}},
			{"name": "title", "attributes": {"foregroundColor": "#00ff00"}},
			{"name": "b", "attributes": {"font": {"name": "boldSystemFont", "size": 14}}}
		]
	}]`)))
	cs, err := reg.Apply("mixed")
	require.NoError(t, err)

	runs := Attributed(cs, "a <boldRed>x</boldRed> <title>T <b>y</b></title>", style.StateNormal)
	require.Len(t, runs, 5)

	require.Equal(t, "x", runs[1].Text)
	require.Equal(t, []string{"boldRed"}, runs[1].Tags)
	require.NotNil(t, runs[1].Attributes.Font, "camelCase tag style applies")
	require.True(t, runs[1].Attributes.Font.Bold())

	require.Equal(t, "T ", runs[3].Text)
	require.Equal(t, "#00ff00", runs[3].Attributes.Foreground.Hex())
	require.Nil(t, runs[3].Attributes.Font)

	require.Equal(t, "y", runs[4].Text)
	require.Equal(t, []string{"title", "b"}, runs[4].Tags)
	require.Equal(t, "#00ff00", runs[4].Attributes.Foreground.Hex())
	require.True(t, runs[4].Attributes.Font.Bold())
}
