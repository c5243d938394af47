// Package markup splits lightly tagged text such as "Save <b>$1.00</b>" into plain
// and tagged segments. It is a thin adapter over the x/net/html tokenizer and
// performs no validation of the tag vocabulary.
package markup

import (
	"errors"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Tag is one open element enclosing a segment.
type Tag struct {
	Name  string
	Attrs map[string]string
}

// Segment is a run of text sharing one tag stack. Start and End are rune offsets
// into Document.Text; Tags is ordered outermost first.
type Segment struct {
	Text  string
	Start int
	End   int
	Tags  []Tag
}

// TagNames returns the segment's tag names, outermost first.
func (s Segment) TagNames() []string {
	names := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		names[i] = t.Name
	}
	return names
}

// Tagged reports whether any tag encloses the segment.
func (s Segment) Tagged() bool {
	return len(s.Tags) > 0
}

// Document is the parsed form of a tagged string.
type Document struct {
	// Text is the input with every tag removed and entities decoded.
	Text     string
	Segments []Segment
}

// Parse tokenizes text. Unclosed tags extend to the end of the input and stray
// closing tags are ignored. Parse never fails on malformed markup.
func Parse(text string) Document {
	var (
		doc   Document
		plain strings.Builder
		stack []Tag
		pos   int
	)

	emit := func(s string) {
		if s == "" {
			return
		}
		n := utf8.RuneCountInString(s)
		plain.WriteString(s)

		if last := len(doc.Segments) - 1; last >= 0 && sameTags(doc.Segments[last].Tags, stack) {
			doc.Segments[last].Text += s
			doc.Segments[last].End += n
		} else {
			doc.Segments = append(doc.Segments, Segment{
				Text:  s,
				Start: pos,
				End:   pos + n,
				Tags:  slices.Clone(stack),
			})
		}
		pos += n
	}

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				// The tokenizer only fails on reader errors; keep what was parsed.
				emit(string(z.Raw()))
			}
			doc.Text = plain.String()
			return doc
		case html.TextToken:
			emit(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			// Tags like <title> and <style> would switch the tokenizer to raw text
			// and hide nested markup.
			z.NextIsNotRawText()
			tag := readTag(z)
			if strings.EqualFold(tag.Name, "br") {
				emit("\n")
			}
			if tt == html.StartTagToken && !voidElements[strings.ToLower(tag.Name)] {
				stack = append(stack, tag)
			}
		case html.EndTagToken:
			stack = closeTag(stack, rawTagName(z.Raw()))
		}
	}
}

// voidElements never enclose text, so they are not pushed on the tag stack.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "wbr": true, "input": true, "meta": true, "link": true,
}

// readTag keeps the tag name's original case. TagName lowercases the buffer in
// place, so the name is read from Raw first.
func readTag(z *html.Tokenizer) Tag {
	tag := Tag{Name: rawTagName(z.Raw())}
	_, hasAttr := z.TagName()
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if tag.Attrs == nil {
			tag.Attrs = make(map[string]string)
		}
		tag.Attrs[string(key)] = string(val)
	}
	return tag
}

// rawTagName extracts the element name from a raw start or end tag such as
// `<boldRed attr="x">` or `</boldRed>`.
func rawTagName(raw []byte) string {
	name := strings.TrimPrefix(string(raw), "<")
	name = strings.TrimPrefix(name, "/")
	if i := strings.IndexAny(name, " \t\n\f\r/>"); i >= 0 {
		name = name[:i]
	}
	return name
}

// closeTag pops the innermost open tag named name and everything opened after it.
// Names match case-insensitively, as in HTML.
func closeTag(stack []Tag, name string) []Tag {
	for i := len(stack) - 1; i >= 0; i-- {
		if strings.EqualFold(stack[i].Name, name) {
			return stack[:i:i]
		}
	}
	return stack
}

func sameTags(a, b []Tag) bool {
	return slices.EqualFunc(a, b, func(x, y Tag) bool {
		return x.Name == y.Name && maps.Equal(x.Attrs, y.Attrs)
	})
}
