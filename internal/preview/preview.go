// Package preview is an interactive terminal browser for loaded styles.
//
// It lists the registry's styles, renders a sample text with the selected one
// and follows registry reloads as they happen.
package preview

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stylekit/internal/keys"
	"github.com/zjrosen/stylekit/internal/log"
	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/render"
	"github.com/zjrosen/stylekit/internal/style"
)

// DefaultSample is rendered when no sample text is given.
const DefaultSample = `Save <b>$1.00</b> on <i>any</i> order! <a href="https://example.com">Details</a>`

const widthStep = 4

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	subtleStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
	sampleBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// reloadMsg carries the outcome of a reload requested from the keyboard.
type reloadMsg struct{ err error }

// Model is the preview's Bubble Tea model.
type Model struct {
	ctx      context.Context
	reg      *registry.Registry
	renderer *render.Renderer
	events   <-chan registry.Event
	reload   func(context.Context) error

	keys keys.KeyMap
	help help.Model

	sample     string
	names      []string
	cursor     int
	state      style.State
	blockWidth int
	width      int
	height     int

	snapshotID string
	status     string
	err        error
}

// Option configures a Model.
type Option func(*Model)

// WithSample sets the marked-up text to render.
func WithSample(text string) Option {
	return func(m *Model) {
		if text != "" {
			m.sample = text
		}
	}
}

// WithState sets the initial interaction state.
func WithState(st style.State) Option {
	return func(m *Model) { m.state = st }
}

// WithReload enables the reload key. fn should preload the registry again.
func WithReload(fn func(context.Context) error) Option {
	return func(m *Model) { m.reload = fn }
}

// New creates a preview over reg. The registry subscription lives as long as ctx.
func New(ctx context.Context, reg *registry.Registry, renderer *render.Renderer, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		reg:      reg,
		renderer: renderer,
		events:   reg.Subscribe(ctx),
		keys:     keys.DefaultKeyMap(),
		help:     help.New(),
		sample:   DefaultSample,
		state:    style.StateNormal,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Init starts listening for registry events.
func (m Model) Init() tea.Cmd {
	return listen(m.ctx, m.events)
}

// listen waits for the next registry event. It yields nil once ctx is done or the
// registry is closed, which ends the subscription loop.
func listen(ctx context.Context, ch <-chan registry.Event) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.blockWidth == 0 || m.blockWidth > m.maxBlockWidth() {
			m.blockWidth = m.maxBlockWidth()
		}
		return m, nil

	case registry.Event:
		switch msg.Type {
		case registry.EventReloaded:
			m.err = nil
			m.status = fmt.Sprintf("reloaded %d styles", msg.Styles)
		case registry.EventFailed:
			m.err = msg.Err
			m.status = ""
		}
		m.refresh()
		return m, listen(m.ctx, m.events)

	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.NextState):
		m.state = style.States[(int(m.state)+1)%len(style.States)]
	case key.Matches(msg, m.keys.PrevState):
		m.state = style.States[(int(m.state)+len(style.States)-1)%len(style.States)]
	case key.Matches(msg, m.keys.Wider):
		m.blockWidth = min(m.blockWidth+widthStep, m.maxBlockWidth())
	case key.Matches(msg, m.keys.Narrower):
		m.blockWidth = max(m.blockWidth-widthStep, widthStep)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reload):
		if m.reload == nil {
			return m, nil
		}
		reload, ctx := m.reload, m.ctx
		m.status = "reloading…"
		return m, func() tea.Msg {
			return reloadMsg{err: reload(ctx)}
		}
	}
	return m, nil
}

// refresh re-reads the style list, keeping the selection on the same name when it survives.
func (m *Model) refresh() {
	selected := m.Selected()
	m.names = m.reg.Names()
	if snap := m.reg.Snapshot(); snap != nil {
		m.snapshotID = snap.ID
	}
	if i := slices.Index(m.names, selected); i >= 0 {
		m.cursor = i
	} else if m.cursor >= len(m.names) {
		m.cursor = max(len(m.names)-1, 0)
	}
	log.Debug(log.CatRender, "Preview refreshed", "styles", len(m.names), "snapshot", m.snapshotID)
}

func (m Model) maxBlockWidth() int {
	return max(m.width-4, widthStep)
}

// Selected returns the highlighted style name, or "" when nothing is loaded.
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return ""
	}
	return m.names[m.cursor]
}

// State returns the interaction state used for rendering.
func (m Model) State() style.State {
	return m.state
}

// Err returns the last reload error, cleared by the next successful reload.
func (m Model) Err() error {
	return m.err
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("stylekit preview · state: %s", m.state)
	if m.snapshotID != "" {
		header += " · snapshot " + shortID(m.snapshotID)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(subtleStyle.Render("no styles loaded"))
		b.WriteString("\n")
	}
	for i, name := range m.names {
		line := "  " + name
		if i == m.cursor {
			line = cursorStyle.Render("> " + name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if name := m.Selected(); name != "" {
		if cs, err := m.reg.Apply(name); err == nil {
			b.WriteString("\n")
			b.WriteString(sampleBorder.Render(m.renderer.Block(m.snapshotID, cs, m.sample, m.state, m.blockWidth)))
			b.WriteString("\n")
			b.WriteString(subtleStyle.Render(describe(cs, m.state)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(subtleStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// describe summarizes the effective base attributes and the tags of cs in state.
func describe(cs *style.CompiledStyle, st style.State) string {
	out := cs.Base.Effective(st).String()
	if tags := cs.TagNames(); len(tags) > 0 {
		out += "  tags=" + strings.Join(tags, ",")
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
