package core

import (
	"testing"
	"time"
)

// A long stall must not trigger a spiral of death: frame time is capped
// at 0.25s, which at 60Hz is exactly 15 ticks.
func TestGameLoopCapsFrameTime(t *testing.T) {
	gl := NewGameLoop(60)
	gl.lastTime = time.Now().Add(-10 * time.Second)

	alpha := gl.Update()
	if got := gl.World.TickCount; got != 15 {
		t.Errorf("TickCount = %d, want 15", got)
	}
	if alpha < 0 || alpha >= 1 {
		t.Errorf("alpha = %g, want [0, 1)", alpha)
	}
}

func TestGameLoopPausedRunsNoTicks(t *testing.T) {
	gl := NewGameLoop(60)
	gl.Pause()
	gl.lastTime = time.Now().Add(-10 * time.Second)

	gl.Update()
	if got := gl.World.TickCount; got != 0 {
		t.Errorf("TickCount = %d while paused, want 0", got)
	}
}

// PreTick must run exactly once per simulated tick so per-tick input
// capture stays aligned with the simulation.
func TestPreTickRunsOncePerTick(t *testing.T) {
	gl := NewGameLoop(60)
	calls := 0
	var tickAtCall []uint64
	gl.PreTick = func(w *World) {
		calls++
		tickAtCall = append(tickAtCall, w.TickCount)
	}
	gl.lastTime = time.Now().Add(-10 * time.Second)

	gl.Update()
	if calls != int(gl.World.TickCount) {
		t.Fatalf("PreTick calls = %d, ticks = %d", calls, gl.World.TickCount)
	}
	for i, tick := range tickAtCall {
		if tick != uint64(i) {
			t.Errorf("call %d saw TickCount %d, want %d", i, tick, i)
		}
	}
}

func TestPlayPauseTransitions(t *testing.T) {
	gl := NewGameLoop(60)
	if gl.State != StatePlaying {
		t.Fatalf("initial state = %d, want playing", gl.State)
	}
	gl.Pause()
	if gl.State != StatePaused {
		t.Errorf("state after Pause = %d, want paused", gl.State)
	}
	gl.Play()
	if gl.State != StatePlaying {
		t.Errorf("state after Play = %d, want playing", gl.State)
	}
}
