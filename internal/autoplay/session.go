package autoplay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/core"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// Options configures a Session.
type Options struct {
	Strategy   registry.Tag
	Strategies config.StrategiesConfig
	Interval   time.Duration
	Logger     *log.Logger
	// OnFinish is called once per game, the first time it terminates.
	OnFinish func(Result)
}

// Session handles player events for one game: moves, restart, keepPlaying,
// toggleStrategy, autoSolve and hints. It is safe for concurrent use; the
// autoplay driver and the input loop share it.
type Session struct {
	mu         sync.Mutex
	mgr        *t2048.Manager
	strategies config.StrategiesConfig
	strategy   registry.Strategy
	logger     *log.Logger
	onFinish   func(Result)
	driver     *Driver
	search     sync.Mutex // strategies are not safe for concurrent use

	turn      uint64 // bumped on every board or strategy change, guards stale searches
	moves     int
	autoMoves int
	hint      string
	recorded  bool
	startedAt time.Time
}

// NewSession wraps mgr. The manager is set up by Start.
func NewSession(mgr *t2048.Manager, opts Options) (*Session, error) {
	if opts.Strategy == "" {
		opts.Strategy = registry.TagExpectimax
	}
	strategy, err := registry.Create(opts.Strategy, opts.Strategies)
	if err != nil {
		return nil, fmt.Errorf("autoplay: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	s := &Session{
		mgr:        mgr,
		strategies: opts.Strategies,
		strategy:   strategy,
		logger:     logger,
		onFinish:   opts.OnFinish,
	}
	s.driver = NewDriver(opts.Interval, s.Step, logger)
	return s, nil
}

// Start restores or creates the game and reports whether it was restored.
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := s.mgr.Setup()
	s.startedAt = time.Now()
	s.recorded = s.mgr.Terminated()
	s.logErr()
	s.logger.Info("game ready", "restored", restored, "score", s.mgr.Score(), "strategy", s.strategy.Tag())
	return restored
}

// Handle dispatches an input action. It reports whether the action was consumed.
func (s *Session) Handle(ctx context.Context, action core.Action) bool {
	switch action {
	case core.ActionUp:
		return s.Move(t2048.DirUp)
	case core.ActionRight:
		return s.Move(t2048.DirRight)
	case core.ActionDown:
		return s.Move(t2048.DirDown)
	case core.ActionLeft:
		return s.Move(t2048.DirLeft)
	case core.ActionRestart:
		s.Restart()
	case core.ActionKeepPlaying:
		s.KeepPlaying()
	case core.ActionToggleStrategy:
		s.ToggleStrategy()
	case core.ActionAutoSolve:
		s.ToggleAutoplay(ctx)
	case core.ActionHint:
		s.Hint(ctx)
	default:
		return false
	}
	return true
}

// Move applies a player move.
func (s *Session) Move(dir t2048.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(dir, false)
}

func (s *Session) applyLocked(dir t2048.Direction, auto bool) bool {
	if !s.mgr.Move(dir) {
		return false
	}
	s.turn++
	s.moves++
	if auto {
		s.autoMoves++
	}
	s.hint = ""
	s.logErr()
	s.finishLocked()
	return true
}

// finishLocked reports the run the first time the game terminates.
func (s *Session) finishLocked() {
	if s.recorded || !s.mgr.Terminated() {
		return
	}
	s.recorded = true

	res := Result{
		Strategy:  s.strategy.Tag(),
		Score:     s.mgr.Score(),
		MaxTile:   s.mgr.Grid().MaxTile(),
		Moves:     s.moves,
		AutoMoves: s.autoMoves,
		Won:       s.mgr.Won(),
		Over:      s.mgr.Over(),
		Duration:  time.Since(s.startedAt),
	}
	s.logger.Info("game finished", "score", res.Score, "max_tile", res.MaxTile, "moves", res.Moves, "won", res.Won)
	if s.onFinish != nil {
		s.onFinish(res)
	}
}

// Restart discards the current game and starts a fresh one.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mgr.Restart()
	s.turn++
	s.moves = 0
	s.autoMoves = 0
	s.hint = ""
	s.recorded = false
	s.startedAt = time.Now()
	s.logErr()
}

// KeepPlaying continues a won game.
func (s *Session) KeepPlaying() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mgr.KeepPlaying()
	s.turn++
	s.logErr()
}

// ToggleStrategy switches to the next strategy in the cycle and returns its tag.
func (s *Session) ToggleStrategy() registry.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := registry.Next(s.strategy.Tag())
	strategy, err := registry.Create(next, s.strategies)
	if err != nil {
		s.logger.Error("cannot switch strategy", "tag", next, "err", err)
		return s.strategy.Tag()
	}
	s.strategy = strategy
	s.hint = ""
	s.turn++
	s.logger.Info("strategy switched", "tag", next)
	return next
}

// ToggleAutoplay starts or stops the autoplay driver and returns whether it is now running.
func (s *Session) ToggleAutoplay(ctx context.Context) bool {
	if s.driver.Running() {
		s.driver.Stop()
		return false
	}
	if s.Terminated() {
		return false
	}
	s.driver.Start(ctx)
	return true
}

// StopAutoplay stops the driver if it is running.
func (s *Session) StopAutoplay() {
	s.driver.Stop()
}

// Autoplaying reports whether the driver is running.
func (s *Session) Autoplaying() bool {
	return s.driver.Running()
}

// AutoplayDone returns a channel closed when the current autoplay loop exits.
func (s *Session) AutoplayDone() <-chan struct{} {
	return s.driver.Done()
}

// Step asks the active strategy for a move and applies it. The search runs
// without holding the session lock; if the board changed meanwhile the move
// is discarded. Step returns false once the game is terminated.
func (s *Session) Step(ctx context.Context) bool {
	s.mu.Lock()
	if s.mgr.Terminated() {
		s.mu.Unlock()
		return false
	}
	grid, strategy, turn := s.mgr.Grid(), s.strategy, s.turn
	s.mu.Unlock()

	s.search.Lock()
	dir := strategy.SelectMove(ctx, grid)
	s.search.Unlock()
	if ctx.Err() != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turn != turn {
		return !s.mgr.Terminated()
	}
	if !s.applyLocked(dir, true) {
		s.logger.Warn("autoplay stalled", "strategy", strategy.Tag(), "dir", dir)
		return false
	}
	s.logger.Debug("move", "strategy", strategy.Tag(), "dir", dir, "score", s.mgr.Score())
	return !s.mgr.Terminated()
}

// Hint returns the active strategy's choice without moving.
func (s *Session) Hint(ctx context.Context) t2048.Direction {
	s.mu.Lock()
	grid, strategy, turn := s.mgr.Grid(), s.strategy, s.turn
	s.mu.Unlock()

	s.search.Lock()
	dir := strategy.SelectMove(ctx, grid)
	s.search.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.turn == turn {
		s.hint = dir.String()
	}
	return dir
}

// Terminated reports whether the game accepts no more moves.
func (s *Session) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.Terminated()
}

// StrategyTag returns the active strategy.
func (s *Session) StrategyTag() registry.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy.Tag()
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() t2048.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.Snapshot()
}

// HUD returns the status lines for rendering.
func (s *Session) HUD() t2048.HUD {
	s.mu.Lock()
	hud := t2048.HUD{
		Strategy: registry.Title(s.strategy.Tag()),
		Hint:     s.hint,
	}
	s.mu.Unlock()

	hud.Autoplay = s.driver.Running()
	return hud
}

// Close stops autoplay.
func (s *Session) Close() {
	s.driver.Stop()
}

func (s *Session) logErr() {
	if err := s.mgr.Err(); err != nil {
		s.logger.Warn("cannot persist game", "err", err)
	}
}
