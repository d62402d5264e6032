package autoplay

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop in time")
	}
}

func TestDriverStopsWhenStepDeclines(t *testing.T) {
	var calls atomic.Int32
	d := NewDriver(time.Millisecond, func(context.Context) bool {
		return calls.Add(1) < 3
	}, nil)

	if d.Running() {
		t.Fatal("new driver should be stopped")
	}
	if !d.Start(context.Background()) {
		t.Fatal("Start() should launch the loop")
	}
	waitDone(t, d.Done())

	if got := calls.Load(); got != 3 {
		t.Errorf("steps = %d, want 3", got)
	}
	if d.Running() {
		t.Error("driver still running after the step declined")
	}
}

func TestDriverStopAndRestart(t *testing.T) {
	var calls atomic.Int32
	d := NewDriver(time.Millisecond, func(context.Context) bool {
		calls.Add(1)
		return true
	}, nil)

	d.Start(context.Background())
	if d.Start(context.Background()) {
		t.Error("second Start() should report the loop is already running")
	}
	time.Sleep(10 * time.Millisecond)
	d.Stop()
	if d.Running() {
		t.Fatal("driver running after Stop()")
	}

	before := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != before {
		t.Error("steps continued after Stop()")
	}

	if !d.Start(context.Background()) {
		t.Error("driver should restart after Stop()")
	}
	d.Stop()
}

func TestDriverFollowsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDriver(time.Millisecond, func(context.Context) bool { return true }, nil)
	d.Start(ctx)
	cancel()
	waitDone(t, d.Done())
}

func TestStopIdleDriver(t *testing.T) {
	d := NewDriver(0, func(context.Context) bool { return true }, nil)
	d.Stop()
	if d.Running() {
		t.Error("idle driver reports running")
	}
}
