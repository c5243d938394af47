package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()
	for _, b := range []key.Binding{km.Up, km.Down, km.NextState, km.PrevState, km.Wider, km.Narrower, km.Reload, km.Help, km.Quit} {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.NextState))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, km.PrevState))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, km.Reload))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, km.Reload))
}

func TestFullHelp_CoversShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	var all []string
	for _, col := range km.FullHelp() {
		for _, b := range col {
			all = append(all, b.Help().Key)
		}
	}
	for _, b := range km.ShortHelp() {
		require.Contains(t, all, b.Help().Key)
	}
}
