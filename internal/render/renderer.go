package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/zjrosen/stylekit/internal/cache"
	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/style"
)

// Profiles maps configuration names to terminal color profiles.
var Profiles = map[string]termenv.Profile{
	"truecolor": termenv.TrueColor,
	"ansi256":   termenv.ANSI256,
	"ansi":      termenv.ANSI,
	"ascii":     termenv.Ascii,
}

// ParseProfile resolves a profile name. The empty string detects the terminal's profile.
func ParseProfile(name string) (termenv.Profile, error) {
	if name == "" {
		return termenv.ColorProfile(), nil
	}
	p, ok := Profiles[strings.ToLower(name)]
	if !ok {
		return termenv.Ascii, fmt.Errorf("unknown color profile %q (expected truecolor, ansi256, ansi or ascii)", name)
	}
	return p, nil
}

// Renderer turns runs into ANSI-styled text. Styles are cached per snapshot,
// style, state and tag stack.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles *cache.Store[lipgloss.Style]
}

// NewRenderer creates a renderer for w using profile. ttl bounds how long a
// cached style survives without a reload.
func NewRenderer(w io.Writer, profile termenv.Profile, ttl time.Duration) *Renderer {
	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(profile)
	return &Renderer{
		lg:     lg,
		styles: cache.New[lipgloss.Style]("render-styles", ttl),
	}
}

// Render parses text and returns it styled by cs in state. snapshotID scopes the
// style cache to one registry generation.
func (r *Renderer) Render(snapshotID string, cs *style.CompiledStyle, text string, state style.State) string {
	var b strings.Builder
	for _, run := range Attributed(cs, text, state) {
		b.WriteString(r.RenderRun(snapshotID, cs.Name, state, run))
	}
	return b.String()
}

// RenderRun styles a single run.
func (r *Renderer) RenderRun(snapshotID, styleName string, state style.State, run Run) string {
	key := strings.Join([]string{snapshotID, styleName, state.String(), strings.Join(run.Tags, "/")}, "\x00")
	st, _ := r.styles.GetOrLoad(key, func() (lipgloss.Style, error) {
		return r.Style(run.Attributes), nil
	})

	out := st.Render(run.Text)
	if run.Attributes.Link != nil {
		out = ansi.SetHyperlink(*run.Attributes.Link) + out + ansi.ResetHyperlink()
	}
	return out
}

// Style maps attributes onto a lipgloss style. Attributes without a terminal
// equivalent (stroke, shadow, kern and friends) are ignored.
func (r *Renderer) Style(a style.Attributes) lipgloss.Style {
	s := r.lg.NewStyle()
	if a.Foreground != nil && !a.Foreground.Transparent() {
		s = s.Foreground(lipgloss.Color(a.Foreground.Hex()))
	}
	if a.Background != nil && !a.Background.Transparent() {
		s = s.Background(lipgloss.Color(a.Background.Hex()))
	}
	if a.Font != nil {
		if a.Font.Bold() {
			s = s.Bold(true)
		}
		if a.Font.Italic {
			s = s.Italic(true)
		}
	}
	if a.Obliqueness != nil && *a.Obliqueness != 0 {
		s = s.Italic(true)
	}
	if a.Underline != nil {
		s = s.Underline(true)
	}
	if a.Strikethrough != nil {
		s = s.Strikethrough(true)
	}
	return s
}

// Flush drops every cached style.
func (r *Renderer) Flush() {
	r.styles.Flush()
}

// FlushOnReload flushes the style cache whenever reg publishes a successful reload.
// It returns when ctx is cancelled or the registry is closed.
func (r *Renderer) FlushOnReload(ctx context.Context, reg *registry.Registry) {
	events := reg.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type == registry.EventReloaded {
				log.Debug(log.CatRender, "Flushing style cache after reload", "snapshot", ev.SnapshotID)
				r.Flush()
			}
		}
	}
}
