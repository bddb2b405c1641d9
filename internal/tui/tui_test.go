package tui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/testutils"
	"github.com/KirkDiggler/rpg-story/internal/tui"
)

func newModel(t *testing.T) tui.Model {
	t.Helper()
	p, err := playback.New(testutils.CreateTestStory(), "")
	require.NoError(t, err)
	return tui.NewModel(p)
}

func press(t *testing.T, m tui.Model, keys ...tea.KeyMsg) tui.Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(tui.Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestModelPlaysToBadEndingAndRevives(t *testing.T) {
	m := newModel(t)
	assert.Contains(t, m.View(), "Rocky Coast")

	m = press(t, m, enter, enter, enter)
	assert.Contains(t, m.View(), "Climb the tower")
	assert.Contains(t, m.View(), "[locked, 5]")

	m = press(t, m, runes("2"))
	assert.Contains(t, m.Status(), "locked")
	assert.Equal(t, "shore", m.Player().State().SceneID)

	m = press(t, m, runes("1"))
	assert.Empty(t, m.Status())
	assert.Equal(t, "tower", m.Player().State().SceneID)

	m = press(t, m, enter, runes("f"))
	assert.Equal(t, "cliff", m.Player().State().SceneID)

	m = press(t, m, enter, enter)
	require.True(t, m.Player().State().Ended())
	assert.Contains(t, m.View(), "BAD ENDING")

	m = press(t, m, runes("r"))
	assert.Equal(t, "shore", m.Player().State().SceneID)
	assert.Equal(t, 1, m.Player().State().Revivals)
}

func TestModelPaysUnlockPrice(t *testing.T) {
	m := newModel(t)
	m = press(t, m, enter, enter, enter, runes("p"))
	assert.Contains(t, m.Status(), "pays")

	m = press(t, m, runes("2"))
	assert.Equal(t, "cellar", m.Player().State().SceneID)

	m = press(t, m, enter, runes("s"))
	assert.Equal(t, "lamp", m.Player().State().SceneID)
	assert.Equal(t, 1, m.Player().Values()[testutils.ValueTrust])
}

func TestModelReportsInvalidCommands(t *testing.T) {
	m := newModel(t)

	m = press(t, m, runes("s"))
	assert.NotEmpty(t, m.Status())

	m = press(t, m, runes("r"))
	assert.Equal(t, playback.ErrRevivalNotReady.Error(), m.Status())
}

func TestModelQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelResizes(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotEmpty(t, next.View())
}
