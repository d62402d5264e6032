package autoplay

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

// ErrStalled is returned when a strategy picks a move that changes nothing
// while the game is still running.
var ErrStalled = errors.New("autoplay: strategy chose a move that changes nothing")

// Result summarises one game played by a strategy.
type Result struct {
	Strategy  registry.Tag
	Score     int
	MaxTile   int
	Moves     int
	AutoMoves int // moves chosen by the strategy rather than the player
	Won       bool
	Over      bool
	Duration  time.Duration
}

// RunOptions controls a headless run.
type RunOptions struct {
	MaxMoves    int  // 0 means no limit
	KeepPlaying bool // continue past the target tile
	Logger      *log.Logger
}

// Run plays mgr to completion with strategy. The manager must already be set up.
// Cancelling ctx ends the run early; the partial result is returned with ctx.Err().
func Run(ctx context.Context, mgr *t2048.Manager, strategy registry.Strategy, opts RunOptions) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	start := time.Now()
	res := Result{Strategy: strategy.Tag()}
	finish := func(err error) (Result, error) {
		res.Score = mgr.Score()
		res.MaxTile = mgr.Grid().MaxTile()
		res.Won = mgr.Won()
		res.Over = mgr.Over()
		res.AutoMoves = res.Moves
		res.Duration = time.Since(start)
		return res, err
	}

	for opts.MaxMoves <= 0 || res.Moves < opts.MaxMoves {
		if mgr.Terminated() {
			if !opts.KeepPlaying || mgr.Over() {
				break
			}
			mgr.KeepPlaying()
		}
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		dir := strategy.SelectMove(ctx, mgr.Grid())
		if !mgr.Move(dir) {
			if ctx.Err() != nil {
				return finish(ctx.Err())
			}
			return finish(ErrStalled)
		}
		res.Moves++
		logger.Debug("move", "strategy", res.Strategy, "dir", dir, "score", mgr.Score())

		if err := mgr.Err(); err != nil {
			logger.Warn("cannot persist game", "err", err)
		}
	}

	return finish(nil)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
