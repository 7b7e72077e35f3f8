package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/catalog"
)

const testDefinition = `
assets:
  - id: P
    area: Sales
    description: pricing
  - id: D
    area: Sales
    description: deals
  - id: M
    area: Billing
edges:
  - ["P", "D"]
  - ["D", "M"]
`

func newTestModel(t *testing.T) (Model, *atlas.Atlas) {
	t.Helper()
	def, err := catalog.Decode(strings.NewReader(testDefinition))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a, err := atlas.New(def, atlas.Options{Title: "Test"})
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}
	return New(a), a
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestInitialModel(t *testing.T) {
	m, _ := newTestModel(t)
	if m.frame.Label != "Overview" || m.menuIdx != 0 {
		t.Errorf("initial frame = %q, menu cursor %d", m.frame.Label, m.menuIdx)
	}
	if !strings.Contains(m.View(), "Test - Overview") {
		t.Error("view should show the frame title")
	}
}

func TestSelectAreaFromMenu(t *testing.T) {
	m, a := newTestModel(t)
	var frames []atlas.Frame
	cancel := a.OnFrame(func(f atlas.Frame) { frames = append(frames, f) })
	defer cancel()

	// Menu: Overview, Billing, Sales.
	m = press(t, m, down, down)
	next, cmd := m.Update(enter)
	m = next.(Model)
	if got := a.Current().Area(); got != "Sales" {
		t.Fatalf("active area = %q, want Sales", got)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if cmd == nil {
		t.Fatal("expected a command delivering the new frame")
	}
	msg, ok := cmd().(frameMsg)
	if !ok || msg.Area != "Sales" {
		t.Fatalf("command yielded %#v", msg)
	}

	m = press(t, m, msg)
	if m.frame.Area != "Sales" || m.menuIdx != 2 {
		t.Errorf("frame = %q, menu cursor %d", m.frame.Area, m.menuIdx)
	}
	if !strings.Contains(m.View(), "P → D") {
		t.Error("view should list the intra-area edge")
	}
}

func TestFailedSelectHasNoCommand(t *testing.T) {
	m, _ := newTestModel(t)
	if cmd := m.selectView("Nowhere"); cmd != nil {
		t.Error("a failed switch should not deliver a frame")
	}
	if m.message == "" {
		t.Error("expected an error message")
	}
}

// frameWatcher forwards to Model and reports every frame it receives.
type frameWatcher struct {
	Model
	frames chan string
}

func (w frameWatcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f, ok := msg.(frameMsg); ok {
		w.frames <- f.Label
	}
	next, cmd := w.Model.Update(msg)
	w.Model = next.(Model)
	return w, cmd
}

func TestProgramSwitchesViews(t *testing.T) {
	m, a := newTestModel(t)
	w := frameWatcher{Model: m, frames: make(chan string, 8)}
	p := tea.NewProgram(w, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer())

	done := make(chan tea.Model, 1)
	go func() {
		final, err := p.Run()
		if err != nil {
			t.Errorf("Run: %v", err)
		}
		done <- final
	}()

	waitFrame := func(want string) {
		t.Helper()
		select {
		case got := <-w.frames:
			if got != want {
				t.Fatalf("frame = %q, want %q", got, want)
			}
		case <-time.After(5 * time.Second):
			p.Kill()
			t.Fatalf("no %s frame: program stuck", want)
		}
	}

	p.Send(down)
	p.Send(enter)
	waitFrame("Billing")
	p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	waitFrame("Overview")
	p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	select {
	case final := <-done:
		if got := final.(frameWatcher).frame.Label; got != "Overview" {
			t.Errorf("final frame = %q, want Overview", got)
		}
	case <-time.After(5 * time.Second):
		p.Kill()
		t.Fatal("program did not exit")
	}
	if !a.Current().IsOverview() {
		t.Errorf("current = %v, want Overview", a.Current())
	}
}

func TestPickNode(t *testing.T) {
	m, a := newTestModel(t)
	if err := a.Select("Sales"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	m = press(t, m, frameMsg(a.CurrentFrame()), tab, down, enter)

	if !strings.HasPrefix(m.detail, "Asset: D\n") {
		t.Errorf("detail = %q", m.detail)
	}
	if m.message != "" {
		t.Errorf("unexpected message %q", m.message)
	}
}

func TestPickWithStaleFrame(t *testing.T) {
	m, a := newTestModel(t)
	// The view changes but the frame on screen is still the Overview.
	if err := a.Select("Sales"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	m = press(t, m, tab, enter)

	if m.detail != "" {
		t.Errorf("expected no detail, got %q", m.detail)
	}
	if m.message == "" {
		t.Error("expected an error message")
	}
	if m.frame.Label != "Overview" {
		t.Error("the previous frame should stay on screen")
	}
}

func TestOverviewKeyAndCursorBounds(t *testing.T) {
	m, a := newTestModel(t)
	if err := a.Select("Billing"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if !a.Current().IsOverview() {
		t.Error("o should return to the overview")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.menuIdx != 0 {
		t.Errorf("menu cursor = %d, want 0", m.menuIdx)
	}
	for i := 0; i < 10; i++ {
		m = press(t, m, down)
	}
	if m.menuIdx != len(m.menu)-1 {
		t.Errorf("menu cursor = %d, want %d", m.menuIdx, len(m.menu)-1)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
