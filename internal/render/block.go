package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/stylekit/internal/schema"
	"github.com/zjrosen/stylekit/internal/style"
)

const ellipsis = "…"

// Layout fits untagged text into width columns following a paragraph style:
// word wrapping by default, or single-line truncation for the truncating and
// clipping line break modes. A non-positive width disables layout.
func Layout(text string, p *schema.Paragraph, width int) string {
	if width <= 0 {
		return text
	}
	mode := schema.ByWordWrapping
	if p != nil && p.LineBreakMode != nil {
		mode = *p.LineBreakMode
	}

	switch mode {
	case schema.ByClipping:
		return runewidth.Truncate(text, width, "")
	case schema.ByTruncatingTail:
		return runewidth.Truncate(text, width, ellipsis)
	case schema.ByTruncatingHead:
		if runewidth.StringWidth(text) <= width {
			return text
		}
		return ellipsis + runewidth.TruncateLeft(text, runewidth.StringWidth(text)-width+runewidth.StringWidth(ellipsis), "")
	case schema.ByTruncatingMiddle:
		return truncateMiddle(text, width)
	case schema.ByCharWrapping:
		return charWrap(text, width)
	default:
		return wordwrap.String(text, width)
	}
}

func truncateMiddle(text string, width int) string {
	total := runewidth.StringWidth(text)
	if total <= width {
		return text
	}
	keep := width - runewidth.StringWidth(ellipsis)
	if keep <= 0 {
		return runewidth.Truncate(ellipsis, width, "")
	}
	head := runewidth.Truncate(text, (keep+1)/2, "")
	tail := runewidth.TruncateLeft(text, total-keep/2, "")
	return head + ellipsis + tail
}

func charWrap(text string, width int) string {
	var b strings.Builder
	col := 0
	for _, r := range text {
		if r == '\n' {
			b.WriteRune(r)
			col = 0
			continue
		}
		w := runewidth.RuneWidth(r)
		if col+w > width && col > 0 {
			b.WriteByte('\n')
			col = 0
		}
		b.WriteRune(r)
		col += w
	}
	return b.String()
}

// Alignment maps a paragraph alignment onto a lipgloss position.
func Alignment(p *schema.Paragraph) lipgloss.Position {
	if p == nil || p.Alignment == nil {
		return lipgloss.Left
	}
	switch *p.Alignment {
	case schema.AlignCenter:
		return lipgloss.Center
	case schema.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// Block renders text with cs and fits it into width columns following the base
// paragraph style of state: wrapped and aligned by default, or cut to one line for
// the truncating and clipping modes. A non-positive width disables layout.
func (r *Renderer) Block(snapshotID string, cs *style.CompiledStyle, text string, state style.State, width int) string {
	rendered := r.Render(snapshotID, cs, text, state)
	if width <= 0 {
		return rendered
	}

	para := cs.Base.Effective(state).Paragraph
	mode := schema.ByWordWrapping
	if para != nil && para.LineBreakMode != nil {
		mode = *para.LineBreakMode
	}

	total := ansi.StringWidth(rendered)
	switch mode {
	case schema.ByClipping:
		return ansi.Truncate(rendered, width, "")
	case schema.ByTruncatingTail:
		return ansi.Truncate(rendered, width, ellipsis)
	case schema.ByTruncatingHead:
		if total <= width {
			return rendered
		}
		return ansi.TruncateLeft(rendered, total-width+1, ellipsis)
	case schema.ByTruncatingMiddle:
		if total <= width {
			return rendered
		}
		keep := width - 1
		return ansi.Cut(rendered, 0, (keep+1)/2) + ellipsis + ansi.Cut(rendered, total-keep/2, total)
	case schema.ByCharWrapping:
		rendered = ansi.Hardwrap(rendered, width, true)
	}
	return r.lg.NewStyle().Width(width).Align(Alignment(para)).Render(rendered)
}
