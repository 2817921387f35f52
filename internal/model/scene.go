package model

import (
	"fmt"
	"sort"
	"sync"
)

// Scene is the top-level persisted unit: a collection of effects
// sharing one palette book and a "current" effect selection. Scene is
// the single shared mutable resource in the system; its mutex is taken
// by both the render task and the control-plane receive task.
type Scene struct {
	mu sync.RWMutex

	id              int
	palettes        *PaletteBook
	currentPalette  string
	effects         map[int]*Effect
	currentEffectID *int
}

// NewScene creates an empty scene with a fresh palette book.
func NewScene(id int) *Scene {
	return &Scene{
		id:             id,
		palettes:       NewPaletteBook(),
		currentPalette: "A",
		effects:        make(map[int]*Effect),
	}
}

// ID returns the scene's id.
func (s *Scene) ID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// AddEffect adds or replaces an effect, propagating the scene's
// current palette name to it.
func (s *Scene) AddEffect(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.SetPaletteName(s.currentPalette)
	s.effects[e.ID] = e
	if s.currentEffectID == nil {
		id := e.ID
		s.currentEffectID = &id
	}
}

// RemoveEffect removes an effect by id. If it was the current effect,
// the lowest-id remaining effect is promoted to current, or the
// current effect selection becomes nil if none remain.
func (s *Scene) RemoveEffect(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.effects[id]; !ok {
		return false
	}
	delete(s.effects, id)

	if s.currentEffectID != nil && *s.currentEffectID == id {
		s.currentEffectID = nil
		if len(s.effects) > 0 {
			ids := make([]int, 0, len(s.effects))
			for eid := range s.effects {
				ids = append(ids, eid)
			}
			sort.Ints(ids)
			lowest := ids[0]
			s.currentEffectID = &lowest
		}
	}
	return true
}

// Effect returns the effect with the given id, or nil. See
// EnsureEffect for the auto-materializing variant.
func (s *Scene) Effect(id int) *Effect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effects[id]
}

// EnsureEffect returns the effect with the given id, creating one
// with default attributes (led_count=225, fps=60) if it does not
// exist.
func (s *Scene) EnsureEffect(id int) *Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.effects[id]; ok {
		return e
	}
	e := DefaultEffect(id)
	e.SetPaletteName(s.currentPalette)
	s.effects[id] = e
	if s.currentEffectID == nil {
		newID := id
		s.currentEffectID = &newID
	}
	return e
}

// SwitchEffect selects the current effect by id. Returns an error if
// it does not exist. This is the sole entry point an external
// auto-cycler needs to drive effect selection.
func (s *Scene) SwitchEffect(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.effects[id]; !ok {
		return fmt.Errorf("scene %d: unknown effect %d", s.id, id)
	}
	s.currentEffectID = &id
	return nil
}

// CurrentEffectID returns the currently selected effect id, or nil.
func (s *Scene) CurrentEffectID() *int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentEffectID == nil {
		return nil
	}
	id := *s.currentEffectID
	return &id
}

// SetPalette sets the scene's current palette name, fanning the
// change out to every effect.
func (s *Scene) SetPalette(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPalette = name
	for _, e := range s.effects {
		e.SetPaletteName(name)
	}
}

// CurrentPaletteName returns the scene's current palette name.
func (s *Scene) CurrentPaletteName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPalette
}

// UpdatePalette replaces one named palette's colors.
func (s *Scene) UpdatePalette(name string, colors []RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palettes.Set(name, colors)
}

// UpdatePaletteFromFlatRGB decodes and applies a flat RGB triple list
// to a named palette.
func (s *Scene) UpdatePaletteFromFlatRGB(name string, flat []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palettes.SetFromFlatRGB(name, flat)
}

// Palettes returns a deep copy of the palette book, safe to read
// without holding the scene lock. Used for control-plane init
// snapshots and JSON save.
func (s *Scene) Palettes() *PaletteBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palettes.Clone()
}

// Update advances only the current effect; inactive effects are left
// untouched.
func (s *Scene) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentEffectID == nil {
		return
	}
	if e, ok := s.effects[*s.currentEffectID]; ok {
		e.AdvanceAll(dt)
	}
}

// UpdateAndRender advances the current effect by dt and composites its
// frame under one exclusive lock acquisition, so the frame reflects
// every control-plane write that completed before the tick took the
// lock and none that arrive during it. Returns the frame (nil if no
// effect is selected) and the current effect id.
func (s *Scene) UpdateAndRender(dt float64) ([]RGB, *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentEffectID == nil {
		return nil, nil
	}
	e, ok := s.effects[*s.currentEffectID]
	if !ok {
		return nil, nil
	}
	e.AdvanceAll(dt)
	id := *s.currentEffectID
	return e.Render(s.palettes), &id
}

// Render returns the current effect's composited frame, or an empty
// frame if no effect is selected.
func (s *Scene) Render() []RGB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentEffectID == nil {
		return nil
	}
	e, ok := s.effects[*s.currentEffectID]
	if !ok {
		return nil
	}
	return e.Render(s.palettes)
}

// EffectIDs returns the ids of every effect in the scene, ascending.
func (s *Scene) EffectIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.effects))
	for id := range s.effects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// WithEffect runs fn with exclusive access to the effect, serializing
// against render and other OSC writers through the scene lock. fn
// must not call back into Scene.
func (s *Scene) WithEffect(id int, fn func(*Effect)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.effects[id]
	if !ok {
		return fmt.Errorf("scene %d: unknown effect %d", s.id, id)
	}
	fn(e)
	return nil
}

// WithEffectLocked gives read-only access to an effect under RLock,
// for diagnostic snapshots.
func (s *Scene) WithEffectLocked(id int, fn func(*Effect)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.effects[id]
	if !ok {
		return false
	}
	fn(e)
	return true
}
