// Package autoplay drives games with strategies: the interactive Session
// that consumes input events, the interval Driver behind autoSolve, and
// headless runs for solving and benchmarking.
package autoplay

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// StepFunc performs one autoplay step. Returning false stops the driver.
type StepFunc func(ctx context.Context) bool

// Driver calls a StepFunc on a fixed interval until the step reports the
// game is finished, the context is cancelled, or Stop is called.
type Driver struct {
	interval time.Duration
	step     StepFunc
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver creates a stopped driver.
func NewDriver(interval time.Duration, step StepFunc, logger *log.Logger) *Driver {
	if interval <= 0 {
		interval = 150 * time.Millisecond
	}
	if logger == nil {
		logger = discardLogger()
	}
	done := make(chan struct{})
	close(done)
	return &Driver{
		interval: interval,
		step:     step,
		logger:   logger,
		done:     done,
	}
}

// Start launches the step loop. It returns false if the driver is already running.
func (d *Driver) Start(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.runningLocked() {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.run(ctx, d.done)
	return true
}

// Stop cancels the loop and waits for the current step to return.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-done
}

// Running reports whether the loop is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runningLocked()
}

func (d *Driver) runningLocked() bool {
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the current loop exits.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

func (d *Driver) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Debug("autoplay started", "interval", d.interval)
	steps := 0
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("autoplay stopped", "steps", steps)
			return
		case <-ticker.C:
			steps++
			if !d.step(ctx) {
				d.logger.Debug("autoplay finished", "steps", steps)
				return
			}
		}
	}
}
