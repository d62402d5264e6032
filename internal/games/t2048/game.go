package t2048

import (
	"errors"
	"math/rand"
)

// spawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const spawn4Prob = 0.10

// SpawnOutcome is one possible value of a freshly spawned tile.
type SpawnOutcome struct {
	Value int
	Prob  float64
}

// SpawnOutcomes is the spawn distribution lookahead must reproduce.
var SpawnOutcomes = [2]SpawnOutcome{
	{Value: 2, Prob: 1 - spawn4Prob},
	{Value: 4, Prob: spawn4Prob},
}

// Metadata accompanies every actuation.
type Metadata struct {
	Score      int
	Over       bool
	Won        bool
	BestScore  int
	Terminated bool
}

// Actuator receives the grid and metadata after every state change.
// The grid must be treated as read-only.
type Actuator interface {
	Actuate(g *Grid, meta Metadata)
}

// StateStore persists game state and the best score.
// GameState returns (nil, nil) when nothing is stored.
type StateStore interface {
	GameState() (*GameSnapshot, error)
	SetGameState(s GameSnapshot) error
	ClearGameState() error
	BestScore() (int, error)
	SetBestScore(score int) error
}

// Options configures a Manager.
type Options struct {
	Size       int
	Target     int
	StartTiles int
	Seed       int64
}

// Manager owns the live game state and applies moves to it.
// A Manager is not safe for concurrent use.
type Manager struct {
	opts     Options
	rng      *rand.Rand
	store    StateStore
	actuator Actuator

	grid        *Grid
	score       int
	over        bool
	won         bool
	keepPlaying bool
	bestScore   int

	// lastErr keeps the most recent persistence failure; play continues regardless.
	lastErr error
}

// NewManager creates a manager. store and actuator may be nil.
func NewManager(opts Options, store StateStore, actuator Actuator) *Manager {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Target <= 0 {
		opts.Target = DefaultTarget
	}
	if opts.StartTiles <= 0 {
		opts.StartTiles = 2
	}
	return &Manager{
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		store:    store,
		actuator: actuator,
	}
}

// Setup restores a persisted game when one is available and valid,
// otherwise starts a fresh game. It reports whether state was restored.
func (m *Manager) Setup() bool {
	restored := false
	if prev := m.loadState(); prev != nil {
		grid, err := FromSnapshot(prev.Grid)
		if err == nil {
			m.grid = grid
			m.score = prev.Score
			m.over = prev.Over
			m.won = prev.Won
			m.keepPlaying = prev.KeepPlaying
			restored = true
		}
	}
	if !restored {
		m.reset()
	}

	if m.store != nil {
		best, err := m.store.BestScore()
		m.record(err)
		m.bestScore = max(best, m.score)
	}

	m.actuate()
	return restored
}

func (m *Manager) loadState() *GameSnapshot {
	if m.store == nil {
		return nil
	}
	prev, err := m.store.GameState()
	if err != nil {
		m.record(err)
		return nil
	}
	if prev == nil || prev.Validate() != nil || prev.Grid.Size != m.opts.Size {
		return nil
	}
	return prev
}

// reset starts a fresh game without touching the store.
func (m *Manager) reset() {
	m.grid = NewGrid(m.opts.Size)
	m.score = 0
	m.over = false
	m.won = false
	m.keepPlaying = false
	for range m.opts.StartTiles {
		m.addRandomTile()
	}
}

// Restart discards the current game and its persisted state.
func (m *Manager) Restart() {
	if m.store != nil {
		m.record(m.store.ClearGameState())
	}
	m.reset()
	m.actuate()
}

// KeepPlaying lets the player continue after reaching the target.
func (m *Manager) KeepPlaying() {
	m.keepPlaying = true
	m.actuate()
}

// Terminated returns true if the game is over, or won without keepPlaying.
func (m *Manager) Terminated() bool {
	return m.over || (m.won && !m.keepPlaying)
}

// addRandomTile spawns a 2 (90%) or 4 (10%) in a random empty cell.
func (m *Manager) addRandomTile() {
	pos, err := m.grid.RandomAvailableCell(m.rng)
	if err != nil {
		return
	}
	value := 2
	if m.rng.Float64() < spawn4Prob {
		value = 4
	}
	m.grid.InsertTile(NewTile(pos, value))
}

// Move applies a move to the live game. Returns false when the move was
// ignored: the game is terminated or nothing would change.
func (m *Manager) Move(dir Direction) bool {
	if m.Terminated() {
		return false
	}

	result := Resolve(m.grid, dir, m.opts.Target)
	if !result.Moved {
		return false
	}

	m.score += result.ScoreDelta
	if result.Won {
		m.won = true
	}

	m.addRandomTile()

	if !MovesAvailable(m.grid) {
		m.over = true
	}

	m.actuate()
	return true
}

// actuate persists state and notifies the actuator.
func (m *Manager) actuate() {
	if m.store != nil {
		if m.score > m.bestScore {
			m.bestScore = m.score
			m.record(m.store.SetBestScore(m.score))
		}
		if m.over {
			m.record(m.store.ClearGameState())
		} else {
			m.record(m.store.SetGameState(m.Snapshot()))
		}
	} else {
		m.bestScore = max(m.bestScore, m.score)
	}

	if m.actuator != nil {
		m.actuator.Actuate(m.grid, m.Metadata())
	}
}

func (m *Manager) record(err error) {
	if err != nil {
		m.lastErr = errors.Join(m.lastErr, err)
	}
}

// Err returns and clears accumulated persistence errors.
func (m *Manager) Err() error {
	err := m.lastErr
	m.lastErr = nil
	return err
}

// Metadata returns the values passed to the actuator.
func (m *Manager) Metadata() Metadata {
	return Metadata{
		Score:      m.score,
		Over:       m.over,
		Won:        m.won,
		BestScore:  m.bestScore,
		Terminated: m.Terminated(),
	}
}

// Snapshot returns a value copy of the game state.
func (m *Manager) Snapshot() GameSnapshot {
	return GameSnapshot{
		Grid:        m.grid.Serialize(),
		Score:       m.score,
		Over:        m.over,
		Won:         m.won,
		KeepPlaying: m.keepPlaying,
	}
}

// Grid returns a detached copy of the live grid.
func (m *Manager) Grid() *Grid {
	return m.grid.Clone()
}

// Score returns the current score.
func (m *Manager) Score() int {
	return m.score
}

// BestScore returns the best score seen so far.
func (m *Manager) BestScore() int {
	return m.bestScore
}

// Over returns true once no move is possible.
func (m *Manager) Over() bool {
	return m.over
}

// Won returns true once the target tile has been created.
func (m *Manager) Won() bool {
	return m.won
}

// Target returns the winning tile value.
func (m *Manager) Target() int {
	return m.opts.Target
}
