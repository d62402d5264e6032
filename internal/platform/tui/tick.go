// Package tui provides the Bubble Tea integration for tilebot.
// It handles the terminal UI loop, input mapping and the SSH front end.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilebot/internal/games/t2048"
)

// FrameMsg carries the board state published by the game manager.
type FrameMsg struct {
	Grid *t2048.Grid
	Meta t2048.Metadata
}

// AutoplayStoppedMsg is sent when the autoplay loop exits on its own.
type AutoplayStoppedMsg struct{}

// hintReadyMsg is sent when a background hint search finishes.
type hintReadyMsg struct{}

// frameActuator forwards manager updates to the UI loop. Only the latest
// frame is kept: a slow renderer skips intermediate autoplay positions.
type frameActuator struct {
	frames chan FrameMsg
}

func newFrameActuator() *frameActuator {
	return &frameActuator{frames: make(chan FrameMsg, 1)}
}

// Actuate implements t2048.Actuator. It never blocks.
func (a *frameActuator) Actuate(g *t2048.Grid, meta t2048.Metadata) {
	f := FrameMsg{Grid: g.Clone(), Meta: meta}
	select {
	case <-a.frames:
	default:
	}
	select {
	case a.frames <- f:
	default:
	}
}

// waitForFrame returns a command that delivers the next published frame.
func waitForFrame(ctx context.Context, frames <-chan FrameMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return f
		case <-ctx.Done():
			return nil
		}
	}
}

// waitForAutoplay returns a command that fires when the autoplay loop exits.
func waitForAutoplay(ctx context.Context, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-done:
			return AutoplayStoppedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
