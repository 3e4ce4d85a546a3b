package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/present"
)

func newTestModel(t *testing.T) (*Model, *present.Controller) {
	t.Helper()
	b, err := locale.New()
	require.NoError(t, err)
	ctrl := present.NewController(deck.Sample())
	m := NewModel(ctrl, b.Translator("en"))
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return m, ctrl
}

func press(m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	newModel, cmd := m.Update(msg)
	return newModel.(*Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationKeys(t *testing.T) {
	m, ctrl := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, ctrl.State().Position)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 2, ctrl.State().Position)

	m, _ = press(m, runes("h"))
	assert.Equal(t, 1, ctrl.State().Position)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 9, ctrl.State().Position)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 9, ctrl.State().Position, "next at the last slide is a no-op")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, ctrl.State().Position)

	_, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, ctrl.State().Position, "previous at the first slide is a no-op")
}

func TestExportToggle(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.Goto(4)

	m, _ = press(m, runes("e"))
	require.Equal(t, present.Exporting, ctrl.State().Mode)

	// Navigation keys scroll the viewport instead of moving the position.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, ctrl.State().Position)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, present.Presenting, ctrl.State().Mode)
	assert.Equal(t, 4, ctrl.State().Position, "position survives the round trip")

	_, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, present.Presenting, ctrl.State().Mode, "exit is idempotent")
}

func TestExportViewportHoldsWholeDeck(t *testing.T) {
	m, ctrl := newTestModel(t)
	m, _ = press(m, runes("e"))

	assert.Contains(t, m.export.View(), "Ecce Homo: The Last Lucid Dream")
	last := -1
	for _, s := range ctrl.Deck().Slides() {
		i := strings.Index(m.exportText, s.Title)
		require.GreaterOrEqual(t, i, 0, s.Title)
		assert.Greater(t, i, last, "slides appear in deck order")
		last = i
	}
}

func TestPrintShowsNotice(t *testing.T) {
	m, ctrl := newTestModel(t)
	before := ctrl.State()

	m, _ = press(m, runes("p"))
	assert.Equal(t, before, ctrl.State())
	assert.Contains(t, m.View(), "Printing is handled")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.NotContains(t, m.View(), "Printing is handled")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewShowsProgress(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.Goto(2)

	v := m.View()
	assert.Contains(t, v, "3 / 10")
	assert.Contains(t, v, "Character & Motivation")
	assert.Contains(t, v, "Ecce Homo: Capstone Presentation")
}

func TestFollowPicksUpExternalChanges(t *testing.T) {
	m, ctrl := newTestModel(t)
	states, cancel := ctrl.Subscribe()
	defer cancel()
	m.Follow(states)

	cmd := m.Init()
	require.NotNil(t, cmd)
	ctrl.EnterExportMode()

	msg := cmd()
	_, ok := msg.(stateMsg)
	require.True(t, ok)
	m, next := press(m, msg)
	assert.NotNil(t, next, "keeps listening")
	assert.Contains(t, m.exportText, "Conclusion")
}
