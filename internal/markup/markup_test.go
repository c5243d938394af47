package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PriceExample(t *testing.T) {
	doc := Parse("Save <b>$1.00</b> on <b>any</b> order!")
	require.Equal(t, "Save $1.00 on any order!", doc.Text)

	type span struct {
		text       string
		start, end int
		tags       []string
	}
	var got []span
	for _, s := range doc.Segments {
		got = append(got, span{s.Text, s.Start, s.End, s.TagNames()})
	}
	require.Equal(t, []span{
		{"Save ", 0, 5, []string{}},
		{"$1.00", 5, 10, []string{"b"}},
		{" on ", 10, 14, []string{}},
		{"any", 14, 17, []string{"b"}},
		{" order!", 17, 24, []string{}},
	}, got)
}

func TestParse_Nested(t *testing.T) {
	doc := Parse("<b>bold <i>both</i></b> plain")
	require.Len(t, doc.Segments, 3)
	require.Equal(t, []string{"b"}, doc.Segments[0].TagNames())
	require.Equal(t, []string{"b", "i"}, doc.Segments[1].TagNames())
	require.Equal(t, "both", doc.Segments[1].Text)
	require.False(t, doc.Segments[2].Tagged())
}

func TestParse_MalformedMarkup(t *testing.T) {
	t.Run("unclosed tag runs to the end", func(t *testing.T) {
		doc := Parse("a <u>b c")
		require.Equal(t, "a b c", doc.Text)
		require.Equal(t, []string{"u"}, doc.Segments[1].TagNames())
	})

	t.Run("stray closing tag is ignored", func(t *testing.T) {
		doc := Parse("a </b>b")
		require.Equal(t, "a b", doc.Text)
		require.Len(t, doc.Segments, 1)
	})

	t.Run("closing an outer tag closes inner ones", func(t *testing.T) {
		doc := Parse("<b><i>x</b>y")
		require.Equal(t, []string{"b", "i"}, doc.Segments[0].TagNames())
		require.False(t, doc.Segments[1].Tagged())
	})
}

func TestParse_EntitiesAndRunes(t *testing.T) {
	doc := Parse("caf&eacute; <b>&lt;3 &amp; ü</b>")
	require.Equal(t, "café <3 & ü", doc.Text)
	require.Equal(t, 5, doc.Segments[1].Start, "offsets count runes, not bytes")
	require.Equal(t, 11, doc.Segments[1].End)
}

func TestParse_AttributesAndVoidElements(t *testing.T) {
	doc := Parse(`<a href="https://example.com">link</a><br>next<img src="x.png">!`)
	require.Equal(t, "link\nnext!", doc.Text)
	require.Equal(t, map[string]string{"href": "https://example.com"}, doc.Segments[0].Tags[0].Attrs)
	require.False(t, doc.Segments[1].Tagged(), "void elements do not enclose text")
}

func TestParse_Empty(t *testing.T) {
	doc := Parse("")
	require.Empty(t, doc.Text)
	require.Empty(t, doc.Segments)

	doc = Parse("<b></b>")
	require.Empty(t, doc.Segments)
}

func TestParse_TagNameCase(t *testing.T) {
	doc := Parse(`a <boldRed>x</boldRed> <highlightedWord class="k">y</HIGHLIGHTEDWORD>`)
	require.Equal(t, "a x y", doc.Text)
	require.Len(t, doc.Segments, 4)
	require.Equal(t, []string{"boldRed"}, doc.Segments[1].TagNames())
	require.Equal(t, []string{"highlightedWord"}, doc.Segments[3].TagNames())
	require.Equal(t, map[string]string{"class": "k"}, doc.Segments[3].Tags[0].Attrs)

	doc = Parse("<Br>x<BR/>y")
	require.Equal(t, "\nx\ny", doc.Text)
	require.False(t, doc.Segments[0].Tagged())
}

func TestParse_RawTextElementNames(t *testing.T) {
	for _, name := range []string{"title", "style", "textarea", "script", "xmp", "plaintext"} {
		t.Run(name, func(t *testing.T) {
			doc := Parse("<" + name + ">T <b>y</b></" + name + "> z")
			require.Equal(t, "T y z", doc.Text)
			require.Len(t, doc.Segments, 3)
			require.Equal(t, []string{name}, doc.Segments[0].TagNames())
			require.Equal(t, []string{name, "b"}, doc.Segments[1].TagNames())
			require.Equal(t, "y", doc.Segments[1].Text)
			require.False(t, doc.Segments[2].Tagged())
		})
	}
}
