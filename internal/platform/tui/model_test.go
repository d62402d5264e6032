package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tilebot/internal/ai"
	"github.com/vovakirdan/tilebot/internal/autoplay"
	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/core"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
	"github.com/vovakirdan/tilebot/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Strategies.Expectimax.Depth = 1

	m, err := NewModel(GameOptions{
		Config:   cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7},
		Store:    store,
		Strategy: registry.TagGreedy,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(m.close)

	// Deliver the frame published by Start.
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestFrameActuatorKeepsLatest(t *testing.T) {
	a := newFrameActuator()
	g := t2048.FromRows([][]int{{2, 0}, {0, 0}})

	a.Actuate(g, t2048.Metadata{Score: 1})
	a.Actuate(g, t2048.Metadata{Score: 2})
	g.InsertTile(t2048.NewTile(t2048.Position{X: 1, Y: 1}, 4))
	a.Actuate(g, t2048.Metadata{Score: 3})
	g.InsertTile(t2048.NewTile(t2048.Position{X: 1, Y: 0}, 8))

	f := <-a.frames
	if f.Meta.Score != 3 {
		t.Errorf("frame score = %d, want the latest (3)", f.Meta.Score)
	}
	if f.Grid.Value(1, 0) != 0 || f.Grid.Value(1, 1) != 4 {
		t.Errorf("frame grid not detached: %v", f.Grid.Rows())
	}
	select {
	case <-a.frames:
		t.Error("stale frame left in channel")
	default:
	}
}

func TestModelRendersBoard(t *testing.T) {
	m := newTestModel(t, nil)
	if !m.ready {
		t.Fatal("model not ready after first frame")
	}
	view := m.View()
	for _, want := range []string{"2048", "Score: 0", "AI: Greedy"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelArrowKeysMove(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.Snapshot()

	keys := []tea.KeyMsg{
		{Type: tea.KeyUp}, {Type: tea.KeyRight}, {Type: tea.KeyDown}, {Type: tea.KeyLeft},
	}
	for _, k := range keys {
		m, _ = press(t, m, k)
	}

	after := m.Snapshot()
	if t2048.FromRows(after.Grid.Cells).Equal(t2048.FromRows(before.Grid.Cells)) {
		t.Error("no arrow key changed the board")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := press(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}
	if m.WantsMenu() || m.View() != "" {
		t.Error("quit should not ask for the menu")
	}

	m = newTestModel(t, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsMenu() {
		t.Error("esc should return to the menu")
	}
}

func TestModelHintRunsInBackground(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := press(t, m, runeKey('h'))
	if cmd == nil {
		t.Fatal("hint returned no command")
	}
	msg := cmd()
	if _, ok := msg.(hintReadyMsg); !ok {
		t.Fatalf("hint command returned %T", msg)
	}
	next, _ := m.Update(msg)
	m = next.(Model)
	if !strings.Contains(m.View(), "Hint: ") {
		t.Error("hint not shown")
	}
}

func TestModelToggleStrategy(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, runeKey('t'))
	want := "AI: " + registry.Title(registry.Next(registry.TagGreedy))
	if !strings.Contains(m.View(), want) {
		t.Errorf("view missing %q after toggle", want)
	}
}

func TestRunRecorderSkipsManualGames(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	record := RunRecorder(store, "alice", 9, nil)
	record(autoplay.Result{Strategy: registry.TagGreedy, Score: 100, Moves: 10})
	record(autoplay.Result{Strategy: registry.TagGreedy, Score: 200, Moves: 10, AutoMoves: 4})

	runs, err := store.TopRuns(string(registry.TagGreedy), 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 200 || runs[0].Profile != "alice" || runs[0].Seed != 9 {
		t.Errorf("runs = %+v", runs)
	}

	if RunRecorder(nil, "alice", 1, nil) != nil {
		t.Error("recorder without store should be nil")
	}
}
