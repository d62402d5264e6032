package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestProfileGameStateRoundTrip(t *testing.T) {
	p := openTestStore(t).Profile("alice")

	snap, err := p.GameState()
	if err != nil || snap != nil {
		t.Fatalf("empty profile GameState() = %v, %v", snap, err)
	}

	want := t2048.GameSnapshot{
		Grid:        t2048.FromRows([][]int{{2, 0, 0, 0}, {0, 4, 0, 0}, {0, 0, 8, 0}, {0, 0, 0, 16}}).Serialize(),
		Score:       88,
		Won:         true,
		KeepPlaying: true,
	}
	if err := p.SetGameState(want); err != nil {
		t.Fatalf("SetGameState() failed: %v", err)
	}
	want.Score = 92
	if err := p.SetGameState(want); err != nil {
		t.Fatalf("SetGameState() overwrite failed: %v", err)
	}

	got, err := p.GameState()
	if err != nil {
		t.Fatalf("GameState() failed: %v", err)
	}
	if got == nil || got.Score != 92 || !got.KeepPlaying || got.Grid.Cells[3][3] != 16 {
		t.Errorf("GameState() = %+v, want %+v", got, want)
	}

	if err := p.ClearGameState(); err != nil {
		t.Fatalf("ClearGameState() failed: %v", err)
	}
	if got, _ := p.GameState(); got != nil {
		t.Errorf("state survived ClearGameState: %+v", got)
	}
}

func TestProfilesAreIsolated(t *testing.T) {
	store := openTestStore(t)
	alice, bob := store.Profile("alice"), store.Profile("bob")

	if err := alice.SetBestScore(500); err != nil {
		t.Fatal(err)
	}
	if best, _ := bob.BestScore(); best != 0 {
		t.Errorf("bob best = %d, want 0", best)
	}
	if store.Profile("").Name() != DefaultProfile {
		t.Error("empty profile name should map to the default")
	}
}

func TestBestScoreNeverDecreases(t *testing.T) {
	p := openTestStore(t).Profile("")

	for _, score := range []int{100, 300, 200} {
		if err := p.SetBestScore(score); err != nil {
			t.Fatalf("SetBestScore(%d) failed: %v", score, err)
		}
	}
	if best, err := p.BestScore(); err != nil || best != 300 {
		t.Errorf("BestScore() = %d, %v, want 300", best, err)
	}
}

func TestCorruptGameStateIsReported(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.db.Exec("INSERT INTO game_states (profile, snapshot) VALUES (?, ?)", "eve", `{"grid":{"size":4}}`); err != nil {
		t.Fatal(err)
	}

	snap, err := store.Profile("eve").GameState()
	if snap != nil || !errors.Is(err, t2048.ErrInvalidSnapshot) {
		t.Errorf("GameState() = %v, %v; want ErrInvalidSnapshot", snap, err)
	}

	m := t2048.NewManager(t2048.Options{Seed: 1}, store.Profile("eve"), nil)
	if m.Setup() {
		t.Error("corrupt state should not be restored")
	}
	if m.Err() == nil {
		t.Error("corrupt state should surface through Manager.Err")
	}
}

func TestManagerPersistsThroughProfile(t *testing.T) {
	store := openTestStore(t)
	m := t2048.NewManager(t2048.Options{Seed: 4}, store.Profile("carol"), nil)
	m.Setup()
	for _, dir := range t2048.Directions {
		m.Move(dir)
	}
	if err := m.Err(); err != nil {
		t.Fatalf("persistence error: %v", err)
	}

	resumed := t2048.NewManager(t2048.Options{Seed: 99}, store.Profile("carol"), nil)
	if !resumed.Setup() {
		t.Fatal("second manager should restore the saved game")
	}
	if !resumed.Grid().Equal(m.Grid()) || resumed.Score() != m.Score() {
		t.Errorf("restored %v/%d, want %v/%d", resumed.Grid().Rows(), resumed.Score(), m.Grid().Rows(), m.Score())
	}
}

func TestSaveAndRankRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Strategy: "expectimax", Score: 20000, MaxTile: 2048, Moves: 900, Won: true, Duration: 3 * time.Second},
		{Strategy: "expectimax", Score: 8000, MaxTile: 512, Moves: 500},
		{Strategy: "greedy", Score: 1200, MaxTile: 128, Moves: 150},
	}
	ids := make(map[string]bool)
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == "" || ids[id] {
			t.Fatalf("SaveRun() returned duplicate or empty id %q", id)
		}
		ids[id] = true
	}

	top, err := store.TopRuns("expectimax", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopRuns(expectimax) returned %d runs, want 2", len(top))
	}
	if top[0].Score != 20000 || !top[0].Won || top[0].Duration != 3*time.Second || top[0].Profile != DefaultProfile {
		t.Errorf("top run = %+v", top[0])
	}

	all, err := store.TopRuns("", 2)
	if err != nil || len(all) != 2 {
		t.Fatalf("TopRuns(all, 2) = %d runs, %v", len(all), err)
	}

	stats, err := store.AllStrategyStats()
	if err != nil {
		t.Fatalf("AllStrategyStats() failed: %v", err)
	}
	em := stats["expectimax"]
	if em == nil || em.Runs != 2 || em.Wins != 1 || em.HighScore != 20000 || em.BestTile != 2048 {
		t.Errorf("expectimax stats = %+v", em)
	}
	if em.AvgScore != 14000 || em.WinRate() != 0.5 {
		t.Errorf("avg=%v winrate=%v", em.AvgScore, em.WinRate())
	}

	if err := store.ClearRuns("greedy"); err != nil {
		t.Fatal(err)
	}
	if left, _ := store.TopRuns("greedy", 10); len(left) != 0 {
		t.Errorf("greedy runs survived ClearRuns: %v", left)
	}
}
