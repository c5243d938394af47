// Package render applies compiled styles to tagged text.
//
// Runs computes the effective attributes of every plain and tagged range. Renderer
// turns those runs into terminal output with lipgloss.
package render

import (
	"strings"

	"github.com/zjrosen/stylekit/internal/markup"
	"github.com/zjrosen/stylekit/internal/style"
)

// Run is one range of text with its effective attributes. Start and End are rune
// offsets into the untagged text.
type Run struct {
	Text       string
	Start      int
	End        int
	Tags       []string
	Attributes style.Attributes
}

// Runs resolves doc against cs in state. Plain ranges carry the base bundle's
// effective attributes; tagged ranges carry the base overlaid kind-wise by each
// enclosing tag's effective attributes, innermost tag last. Tags without a bundle
// leave the attributes unchanged, except that an href on an "a" tag supplies a
// link when none is set.
func Runs(cs *style.CompiledStyle, doc markup.Document, state style.State) []Run {
	base := cs.Base.Effective(state)

	runs := make([]Run, 0, len(doc.Segments))
	for _, seg := range doc.Segments {
		attrs := base
		for _, tag := range seg.Tags {
			if bundle, ok := cs.Tag(tag.Name); ok {
				attrs = attrs.Overlay(bundle.Effective(state))
			}
			if href, ok := tag.Attrs["href"]; ok && strings.EqualFold(tag.Name, "a") && attrs.Link == nil {
				link := href
				attrs.Link = &link
			}
		}
		runs = append(runs, Run{
			Text:       seg.Text,
			Start:      seg.Start,
			End:        seg.End,
			Tags:       seg.TagNames(),
			Attributes: attrs,
		})
	}
	return runs
}

// Attributed parses text and resolves it against cs.
func Attributed(cs *style.CompiledStyle, text string, state style.State) []Run {
	return Runs(cs, markup.Parse(text), state)
}
