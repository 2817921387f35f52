package engine

import (
	"github.com/tapelight/ledengine/internal/events"
	"github.com/tapelight/ledengine/internal/model"
)

// Frame is one rendered output buffer, published once per tick.
type Frame struct {
	EffectID *int
	Pixels   []model.RGB
}

// Renderer is the thin per-frame driver: advance, composite, publish.
// It owns no threads of its own; Clock calls Tick once per tick. The
// scene lock is held only while advancing and compositing; the frame
// is published after it is released.
type Renderer struct {
	scene *model.Scene
	bus   *events.Bus
}

// NewRenderer creates a renderer over scene, publishing frames on bus.
func NewRenderer(scene *model.Scene, bus *events.Bus) *Renderer {
	return &Renderer{scene: scene, bus: bus}
}

// Tick advances the scene by dt and composites the resulting frame
// under a single exclusive lock acquisition, then publishes the frame
// with the lock released.
func (r *Renderer) Tick(dt float64) Frame {
	pixels, effectID := r.scene.UpdateAndRender(dt)
	frame := Frame{EffectID: effectID, Pixels: pixels}

	if r.bus != nil {
		r.bus.Publish(events.TopicFrame, frame)
	}
	return frame
}
