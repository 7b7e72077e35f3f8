// Package tui is a terminal explorer for the atlas built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/details"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("#00FFFF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type pane int

const (
	menuPane pane = iota
	nodesPane
)

type keyMap struct {
	Tab      key.Binding
	Enter    key.Binding
	Overview key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Overview: key.NewBinding(
		key.WithKeys("o", "esc"),
		key.WithHelp("o", "overview"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Overview, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Overview},
		{k.Up, k.Down},
		{k.Quit},
	}
}

// frameMsg carries the frame of a new view into the program.
type frameMsg atlas.Frame

// Model is the bubbletea model of the terminal explorer.
type Model struct {
	atlas   *atlas.Atlas
	journal *audit.Journal
	keys    keyMap
	help    help.Model

	menu    []string
	menuIdx int
	focus   pane

	frame   atlas.Frame
	nodeIdx int
	detail  string

	message string
	width   int
	height  int
}

// New creates a model showing the active view of a.
func New(a *atlas.Atlas) Model {
	m := Model{
		atlas: a,
		keys:  keys,
		help:  help.New(),
		menu:  a.Menu(),
		frame: a.CurrentFrame(),
	}
	m.syncMenu()
	return m
}

// Run starts the explorer and blocks until the user quits. Picks and view
// changes are recorded in j, which may be nil.
func Run(a *atlas.Atlas, j *audit.Journal, opts ...tea.ProgramOption) error {
	m := New(a)
	m.journal = j
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if j != nil {
		defer a.Subscribe(j)()
	}
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.frame = atlas.Frame(msg)
		m.nodeIdx = 0
		m.detail = ""
		m.syncMenu()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			if m.focus == menuPane {
				m.focus = nodesPane
			} else {
				m.focus = menuPane
			}
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Overview):
			cmd = m.selectView(m.menu[0])
		case key.Matches(msg, m.keys.Enter):
			if m.focus == menuPane {
				cmd = m.selectView(m.menu[m.menuIdx])
			} else {
				m.pick()
			}
		}
	}
	return m, cmd
}

func (m *Model) move(delta int) {
	if m.focus == menuPane {
		m.menuIdx = clamp(m.menuIdx+delta, len(m.menu))
		return
	}
	m.nodeIdx = clamp(m.nodeIdx+delta, len(m.frame.Nodes))
}

// selectView switches the atlas to label. The new frame arrives through the
// returned command, never from inside Update; a failed switch keeps the old
// frame on screen.
func (m *Model) selectView(label string) tea.Cmd {
	if err := m.atlas.Select(label); err != nil {
		m.message = err.Error()
		return nil
	}
	m.message = ""
	f := m.atlas.CurrentFrame()
	return func() tea.Msg { return frameMsg(f) }
}

// pick resolves the highlighted node against the frame on screen.
func (m *Model) pick() {
	e, err := m.atlas.Pick(m.nodeIdx, m.frame.Nodes)
	m.journal.RecordPick(context.Background(), m.frame.Label, m.nodeIdx, e, err)
	if err != nil {
		m.message = err.Error()
		m.detail = ""
		return
	}
	m.message = ""
	m.detail = details.Format(e)
}

// syncMenu points the menu cursor at the view being shown.
func (m *Model) syncMenu() {
	for i, label := range m.menu {
		if label == m.frame.Label {
			m.menuIdx = i
			return
		}
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.frame.Title))
	s.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.stylePane(menuPane).Render(m.renderMenu()),
		m.stylePane(nodesPane).Render(m.renderNodes()),
		paneStyle.Width(m.detailWidth()).Render(m.renderDetail()),
	)
	s.WriteString(body)

	if m.message != "" {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("✗ " + m.message))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m Model) stylePane(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m Model) detailWidth() int {
	if m.width < 100 {
		return 48
	}
	return m.width - 60
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Views"))
	b.WriteString("\n")
	for i, label := range m.menu {
		line := "  " + label
		if i == m.menuIdx {
			line = cursorStyle.Render("> " + label)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderNodes() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("%s (%d nodes, %d edges)", m.frame.Label, len(m.frame.Nodes), len(m.frame.Edges))))
	for i, id := range m.frame.Nodes {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.frame.Colors[id])).Render("●")
		line := fmt.Sprintf("%s %s", dot, id)
		if i == m.nodeIdx && m.focus == nodesPane {
			line = dot + " " + cursorStyle.Render(id)
		}
		b.WriteString(line + "\n")
	}
	if len(m.frame.Edges) > 0 {
		b.WriteString("\n" + headerStyle.Render("Edges") + "\n")
		for _, e := range m.frame.Edges {
			b.WriteString(dimStyle.Render(fmt.Sprintf("%s → %s", e.Source, e.Target)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderDetail() string {
	if m.detail == "" {
		return dimStyle.Render("Select a node to see its details.")
	}
	return m.detail
}
