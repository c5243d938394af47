package preview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/render"
	"github.com/zjrosen/stylekit/internal/style"
)

const twoStyles = `[
	{"name": "price", "attributes": {"font": {"name": "system", "size": 14}, "foregroundColor": "red"},
	 "tagStyles": [{"name": "b", "attributes": {"font": {"name": "systemBold", "size": 14}}}]},
	{"name": "title", "attributes": {"kern": 2}}
]`

func newModel(t *testing.T, schema string, opts ...Option) (Model, *registry.Registry) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	reg := registry.New(nil)
	if schema != "" {
		require.NoError(t, reg.Preload(ctx, []byte(schema)))
	}
	r := render.NewRenderer(io.Discard, termenv.Ascii, time.Minute)
	return New(ctx, reg, r, opts...), reg
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNew_ListsLoadedStyles(t *testing.T) {
	m, _ := newModel(t, twoStyles)

	require.Equal(t, "price", m.Selected())
	view := ansi.Strip(m.View())
	require.Contains(t, view, "> price")
	require.Contains(t, view, "  title")
	require.Contains(t, view, "Save $1.00 on any order! Details")
	require.Contains(t, view, "tags=b")
}

func TestNew_Empty(t *testing.T) {
	m, _ := newModel(t, "")

	require.Empty(t, m.Selected())
	require.Contains(t, ansi.Strip(m.View()), "no styles loaded")
}

func TestNavigation(t *testing.T) {
	m, _ := newModel(t, twoStyles)

	m = update(t, m, keyRunes("j"))
	require.Equal(t, "title", m.Selected())
	m = update(t, m, keyRunes("j"))
	require.Equal(t, "title", m.Selected(), "cursor stops at the last style")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "price", m.Selected())
	m = update(t, m, keyRunes("k"))
	require.Equal(t, "price", m.Selected())
}

func TestStateCycling(t *testing.T) {
	m, _ := newModel(t, twoStyles, WithState(style.StateDisabled))
	require.Equal(t, style.StateDisabled, m.State())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, style.StateNormal, m.State())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, style.StateDisabled, m.State())
	require.Contains(t, ansi.Strip(m.View()), "state: disabled")
}

func TestBlockWidth(t *testing.T) {
	m, _ := newModel(t, twoStyles, WithSample("one two three four"))
	m = update(t, m, tea.WindowSizeMsg{Width: 14, Height: 20})
	require.Equal(t, 10, m.blockWidth)

	m = update(t, m, keyRunes("l"))
	require.Equal(t, 10, m.blockWidth, "clamped to the window")
	m = update(t, m, keyRunes("h"))
	require.Equal(t, 6, m.blockWidth)
	for range 5 {
		m = update(t, m, keyRunes("h"))
	}
	require.Equal(t, widthStep, m.blockWidth)
}

func TestRegistryEvents(t *testing.T) {
	m, _ := newModel(t, twoStyles)
	m = update(t, m, keyRunes("j"))

	m = update(t, m, registry.Event{Type: registry.EventFailed, Err: errors.New("boom")})
	require.EqualError(t, m.Err(), "boom")
	require.Contains(t, ansi.Strip(m.View()), "error: boom")

	m = update(t, m, registry.Event{Type: registry.EventReloaded, Styles: 2})
	require.NoError(t, m.Err())
	require.Equal(t, "title", m.Selected(), "selection survives a reload")
	require.Contains(t, ansi.Strip(m.View()), "reloaded 2 styles")
}

func TestReloadKey(t *testing.T) {
	m, _ := newModel(t, twoStyles)
	next, cmd := m.Update(keyRunes("r"))
	require.Nil(t, cmd, "reload is disabled without a reload func")
	require.Equal(t, m.status, next.(Model).status)

	called := false
	m, _ = newModel(t, twoStyles, WithReload(func(context.Context) error {
		called = true
		return errors.New("missing file")
	}))
	next, cmd = m.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	m = update(t, next.(Model), cmd())
	require.True(t, called)
	require.EqualError(t, m.Err(), "missing file")
}

func TestHelpToggle(t *testing.T) {
	m, _ := newModel(t, twoStyles)
	require.NotContains(t, ansi.Strip(m.View()), "reload schema")

	m = update(t, m, keyRunes("?"))
	require.Contains(t, ansi.Strip(m.View()), "reload schema")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, twoStyles)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestListen_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Nil(t, listen(ctx, make(chan registry.Event))())

	closed := make(chan registry.Event)
	close(closed)
	require.Nil(t, listen(context.Background(), closed)())
}

func TestProgram_FollowsReloads(t *testing.T) {
	m, reg := newModel(t, `[{"name": "first", "attributes": {}}]`)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("first"))
	}, teatest.WithDuration(3*time.Second))

	require.NoError(t, reg.Preload(context.Background(), []byte(twoStyles)))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("reloaded 2 styles"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyRunes("j"))
	tm.Send(keyRunes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, "title", final.Selected())
	require.Equal(t, []string{"price", "title"}, final.names)
}
