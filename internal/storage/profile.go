package storage

import (
	"database/sql"
	"fmt"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
)

// Profile persists one player's game state and best score.
type Profile struct {
	db   *sql.DB
	name string
}

// Ensure Profile implements t2048.StateStore
var _ t2048.StateStore = (*Profile)(nil)

// Name returns the profile name.
func (p *Profile) Name() string {
	return p.name
}

// GameState returns the saved game, or nil when none is stored.
// A stored snapshot that fails validation is reported as an error wrapping
// t2048.ErrInvalidSnapshot.
func (p *Profile) GameState() (*t2048.GameSnapshot, error) {
	var data string
	err := p.db.QueryRow("SELECT snapshot FROM game_states WHERE profile = ?", p.name).Scan(&data)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game state: %w", err)
	}

	snap, err := t2048.ParseGameSnapshot([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("storage: stored game state for %q: %w", p.name, err)
	}
	return &snap, nil
}

// SetGameState replaces the saved game.
func (p *Profile) SetGameState(snap t2048.GameSnapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return fmt.Errorf("storage: cannot encode game state: %w", err)
	}

	_, err = p.db.Exec(
		`INSERT INTO game_states (profile, snapshot, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP`,
		p.name, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game state: %w", err)
	}
	return nil
}

// ClearGameState removes the saved game.
func (p *Profile) ClearGameState() error {
	if _, err := p.db.Exec("DELETE FROM game_states WHERE profile = ?", p.name); err != nil {
		return fmt.Errorf("storage: cannot clear game state: %w", err)
	}
	return nil
}

// BestScore returns the best score, 0 if none is stored.
func (p *Profile) BestScore() (int, error) {
	var score int
	err := p.db.QueryRow("SELECT score FROM best_scores WHERE profile = ?", p.name).Scan(&score)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore stores score if it beats the current best.
func (p *Profile) SetBestScore(score int) error {
	_, err := p.db.Exec(
		`INSERT INTO best_scores (profile, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET score = MAX(score, excluded.score), updated_at = CURRENT_TIMESTAMP`,
		p.name, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}
