// Package engine drives the fixed-tick render loop: Clock schedules
// ticks at the configured fps, Renderer advances and composites the
// model on each tick and publishes the resulting frame.
package engine

import (
	"sync"
	"time"
)

// Clock is a single producer that ticks at a configurable fps: a
// ticker-driven loop with a reset channel for runtime rate changes and
// a run-flag guarded goroutine lifecycle.
type Clock struct {
	mu sync.Mutex

	fps      int
	paused   bool
	running  bool
	onTick   func(dt float64)
	stopChan chan struct{}
	rateChan chan struct{}
}

// NewClock creates a clock that calls onTick once per tick with dt in
// seconds: the nominal tick period 1/fps, or 0 while paused.
func NewClock(fps int, onTick func(dt float64)) *Clock {
	return &Clock{
		fps:      fps,
		onTick:   onTick,
		stopChan: make(chan struct{}),
		rateChan: make(chan struct{}, 1),
	}
}

// Start begins the tick loop in its own goroutine. Calling Start twice
// is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	go c.loop()
}

// Stop halts the tick loop. Safe to call multiple times.
func (c *Clock) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopChan)
	c.mu.Unlock()
}

// Pause suspends dt advancement; render requests against the last
// state continue to be served.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume resumes dt advancement.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// IsPaused reports whether the clock is currently paused.
func (c *Clock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// SetFPS changes the tick rate. Takes effect on the next tick.
func (c *Clock) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	c.fps = fps
	c.mu.Unlock()

	select {
	case c.rateChan <- struct{}{}:
	default:
	}
}

// FPS returns the current configured tick rate.
func (c *Clock) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *Clock) loop() {
	c.mu.Lock()
	interval := time.Second / time.Duration(c.fps)
	c.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-c.stopChan:
			return
		case <-c.rateChan:
			c.mu.Lock()
			newInterval := time.Second / time.Duration(c.fps)
			c.mu.Unlock()
			ticker.Stop()
			ticker = time.NewTicker(newInterval)
		case now := <-ticker.C:
			elapsed := now.Sub(lastTick)
			lastTick = now

			c.mu.Lock()
			paused := c.paused
			fps := c.fps
			c.mu.Unlock()

			dt := elapsed.Seconds()
			if paused {
				dt = 0
			} else if fps > 0 {
				// Use the nominal tick period rather than wall-clock
				// drift so motion stays exactly reproducible at a
				// fixed fps.
				dt = 1.0 / float64(fps)
			}

			if c.onTick != nil {
				c.onTick(dt)
			}
		}
	}
}
