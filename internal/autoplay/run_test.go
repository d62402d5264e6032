package autoplay

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
)

func newStrategy(t *testing.T, tag registry.Tag) registry.Strategy {
	t.Helper()
	s, err := registry.Create(tag, testStrategies())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunToCompletion(t *testing.T) {
	mgr := t2048.NewManager(t2048.Options{Seed: 11}, nil, nil)
	mgr.Setup()

	res, err := Run(context.Background(), mgr, newStrategy(t, registry.TagGreedy), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !mgr.Terminated() {
		t.Error("Run returned before the game ended")
	}
	if res.Moves == 0 || res.Score != mgr.Score() || res.MaxTile != mgr.Grid().MaxTile() {
		t.Errorf("result = %+v", res)
	}
	if res.Over != mgr.Over() || res.Won != mgr.Won() {
		t.Errorf("result flags = %+v", res)
	}
}

func TestRunMaxMoves(t *testing.T) {
	mgr := t2048.NewManager(t2048.Options{Seed: 12}, nil, nil)
	mgr.Setup()

	res, err := Run(context.Background(), mgr, newStrategy(t, registry.TagHeuristic), RunOptions{MaxMoves: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Moves != 10 {
		t.Errorf("moves = %d, want 10", res.Moves)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := t2048.NewManager(t2048.Options{Seed: 13}, nil, nil)
	mgr.Setup()

	res, err := Run(ctx, mgr, newStrategy(t, registry.TagGreedy), RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if res.Moves != 0 {
		t.Errorf("moves = %d after cancel", res.Moves)
	}
}

func TestRunKeepPlayingPastTarget(t *testing.T) {
	mgr := t2048.NewManager(t2048.Options{Seed: 14, Target: 16}, nil, nil)
	mgr.Setup()

	res, err := Run(context.Background(), mgr, newStrategy(t, registry.TagHeuristic), RunOptions{KeepPlaying: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Won || !res.Over {
		t.Errorf("keep-playing run should win then play to game over: %+v", res)
	}
	if res.MaxTile <= 16 {
		t.Errorf("max tile = %d, expected play beyond the target", res.MaxTile)
	}
}
