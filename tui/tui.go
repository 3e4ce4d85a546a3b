package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/present"
)

// stateMsg carries a state published by the controller from outside the
// program, e.g. a deck reload.
type stateMsg present.State

// Model is the Bubble Tea model for presenting one controller.
type Model struct {
	ctrl   *present.Controller
	states <-chan present.State
	keys   KeyMap
	help   help.Model
	styles Styles
	t      *locale.Translator
	width  int
	height int
	notice string
	text   TextRenderer

	export     viewport.Model
	exportText string
	lastRev    int
}

var _ tea.Model = (*Model)(nil)

// NewModel creates a model over ctrl. t may be nil, in which case message
// ids are shown untranslated.
func NewModel(ctrl *present.Controller, t *locale.Translator) *Model {
	m := &Model{
		ctrl:    ctrl,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
		t:       t,
		export:  viewport.New(80, 20),
		width:   80,
		height:  24,
		lastRev: -1,
	}
	m.text = m.newRenderer()
	return m
}

// Follow makes the model re-render whenever the controller publishes a new
// state. The channel comes from Controller.Subscribe.
func (m *Model) Follow(states <-chan present.State) {
	m.states = states
}

func (m *Model) Init() tea.Cmd {
	return m.waitForState()
}

func (m *Model) waitForState() tea.Cmd {
	if m.states == nil {
		return nil
	}
	ch := m.states
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.export.Width = msg.Width
		m.export.Height = max(1, msg.Height-3)
		m.text = m.newRenderer()
		m.lastRev = -1
		m.refreshExport()
		return m, nil

	case stateMsg:
		m.refreshExport()
		return m, m.waitForState()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	ev, ok := m.keys.EventFor(msg)
	exporting := m.ctrl.State().Mode == present.Exporting

	if !ok || (exporting && ev.Navigates()) {
		if exporting {
			var cmd tea.Cmd
			m.export, cmd = m.export.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.notice = ""
	if ev == present.Print {
		m.notice = m.tr("print_hint")
	}
	tr := m.ctrl.Apply(ev)
	if tr.To.Mode == present.Exporting && tr.From.Mode != present.Exporting {
		m.lastRev = -1
		m.refreshExport()
		m.export.GotoTop()
	}
	return m, nil
}

// refreshExport re-renders the whole deck into the viewport when the deck
// revision or the terminal width changed.
func (m *Model) refreshExport() {
	st, d := m.ctrl.Snapshot()
	if st.Mode != present.Exporting || st.Revision == m.lastRev {
		return
	}
	r := m.text
	parts := make([]string, 0, d.Len())
	for _, s := range d.Slides() {
		parts = append(parts, r.Render(s))
	}
	sep := "\n" + m.styles.BarEmpty.Render(strings.Repeat("─", max(1, m.width-2))) + "\n"
	m.exportText = strings.Join(parts, sep)
	m.export.SetContent(m.exportText)
	m.lastRev = st.Revision
}

func (m *Model) newRenderer() TextRenderer {
	return NewTextRenderer(m.styles, m.t, max(20, m.width-4))
}

func (m *Model) tr(id string, data ...map[string]any) string {
	if m.t == nil {
		return id
	}
	return m.t.T(id, data...)
}

func (m *Model) View() string {
	st, d := m.ctrl.Snapshot()
	if st.Mode == present.Exporting {
		header := m.styles.DeckTitle.Render(d.Title()) + "  " +
			m.styles.Muted.Render(m.tr("export")+" · esc "+m.tr("close"))
		return lipgloss.JoinVertical(lipgloss.Left, header, m.export.View(), m.help.View(m.keys))
	}

	body := lipgloss.NewStyle().
		Padding(1, 2).
		Height(max(1, m.height-4)).
		Render(m.text.Render(d.At(st.Position)))

	progress := m.tr("progress", map[string]any{"Current": st.Current(), "Total": st.Total})
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.DeckTitle.Render(d.Footer()),
		"  ",
		m.bar(st, max(10, m.width/3)),
		"  ",
		m.styles.Body.Render(progress),
	)
	lines := []string{body, status}
	if m.notice != "" {
		lines = append(lines, m.styles.Notice.Render(m.notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// bar draws the progress bar for st in width cells.
func (m *Model) bar(st present.State, width int) string {
	filled := int(st.Percent() / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return m.styles.Bar.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// Run presents ctrl in the terminal until the user quits or ctx ends.
func Run(ctx context.Context, ctrl *present.Controller, t *locale.Translator, opts ...tea.ProgramOption) error {
	states, cancel := ctrl.Subscribe()
	defer cancel()

	m := NewModel(ctrl, t)
	m.Follow(states)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
