package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestClock_TicksAtConfiguredFPS(t *testing.T) {
	var ticks int32
	c := NewClock(200, func(dt float64) {
		atomic.AddInt32(&ticks, 1)
	})
	c.Start()
	time.Sleep(60 * time.Millisecond)
	c.Stop()

	if n := atomic.LoadInt32(&ticks); n < 5 {
		t.Errorf("got %d ticks in 60ms at 200fps, want at least 5", n)
	}
}

func TestClock_PauseYieldsZeroDt(t *testing.T) {
	dts := make(chan float64, 8)
	c := NewClock(100, func(dt float64) {
		select {
		case dts <- dt:
		default:
		}
	})
	c.Pause()
	if !c.IsPaused() {
		t.Fatal("expected IsPaused true")
	}
	c.Start()
	time.Sleep(30 * time.Millisecond)
	c.Stop()

	select {
	case dt := <-dts:
		if dt != 0 {
			t.Errorf("dt while paused = %v, want 0", dt)
		}
	default:
		t.Fatal("expected at least one tick while paused")
	}
}

func TestClock_ResumeAdvancesDt(t *testing.T) {
	dts := make(chan float64, 8)
	c := NewClock(100, func(dt float64) {
		select {
		case dts <- dt:
		default:
		}
	})
	c.Pause()
	c.Resume()
	c.Start()
	time.Sleep(30 * time.Millisecond)
	c.Stop()

	found := false
	for {
		select {
		case dt := <-dts:
			if dt > 0 {
				found = true
			}
		default:
			if !found {
				t.Fatal("expected at least one nonzero dt while running")
			}
			return
		}
	}
}

func TestClock_StartStopIdempotent(t *testing.T) {
	c := NewClock(50, func(float64) {})
	c.Start()
	c.Start() // no-op, must not panic or double-start
	c.Stop()
	c.Stop() // no-op, must not panic on double close
}

func TestClock_SetFPSUpdatesReportedRate(t *testing.T) {
	c := NewClock(30, func(float64) {})
	c.SetFPS(60)
	if got := c.FPS(); got != 60 {
		t.Errorf("FPS() = %d, want 60", got)
	}
	c.SetFPS(0) // invalid, must be ignored
	if got := c.FPS(); got != 60 {
		t.Errorf("FPS() after invalid SetFPS = %d, want unchanged 60", got)
	}
}
