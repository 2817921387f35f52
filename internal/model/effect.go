package model

import (
	"fmt"
	"sort"
)

// Effect is an ordered collection of segments sharing one LED count
// and tick rate. An Effect exclusively owns its segments; callers
// serialize access through the owning Scene's lock.
type Effect struct {
	ID          int
	LEDCount    int
	FPS         int
	PaletteName string

	segments map[int]*Segment
}

// NewEffect creates an effect with the given LED count and fps. Both
// must be positive.
func NewEffect(id, ledCount, fps int) *Effect {
	return &Effect{
		ID:          id,
		LEDCount:    ledCount,
		FPS:         fps,
		PaletteName: "A",
		segments:    make(map[int]*Segment),
	}
}

// AddSegment adds or replaces a segment under this effect.
func (e *Effect) AddSegment(seg *Segment) {
	seg.SetPaletteName(e.PaletteName)
	e.segments[seg.ID] = seg
}

// RemoveSegment removes a segment by id. Returns false if it did not
// exist.
func (e *Effect) RemoveSegment(id int) bool {
	if _, ok := e.segments[id]; !ok {
		return false
	}
	delete(e.segments, id)
	return true
}

// Segment returns the segment with the given id, or nil.
func (e *Effect) Segment(id int) *Segment {
	return e.segments[id]
}

// EnsureSegment returns the segment with the given id, creating a
// default one if it does not exist. Used by control-plane writes that
// auto-materialize an unknown segment instead of rejecting the write.
func (e *Effect) EnsureSegment(id int) *Segment {
	if seg, ok := e.segments[id]; ok {
		return seg
	}
	seg := DefaultSegment(id)
	e.AddSegment(seg)
	return seg
}

// UpdateSegmentParam applies a single tagged parameter update to one
// segment. Returns an error if the segment does not exist or the
// update is invalid.
func (e *Effect) UpdateSegmentParam(segID int, update ParameterUpdate) error {
	seg, ok := e.segments[segID]
	if !ok {
		return fmt.Errorf("effect %d: unknown segment %d", e.ID, segID)
	}
	return seg.Apply(update)
}

// SetPaletteName propagates a new current palette name to the effect
// and all its segments.
func (e *Effect) SetPaletteName(name string) {
	e.PaletteName = name
	for _, seg := range e.segments {
		seg.SetPaletteName(name)
	}
}

// SegmentIDs returns the segment ids in ascending order, the
// deterministic order segments are composited in.
func (e *Effect) SegmentIDs() []int {
	ids := make([]int, 0, len(e.segments))
	for id := range e.segments {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AdvanceAll advances every segment's motion and envelope clock by dt
// seconds. No cross-segment coupling.
func (e *Effect) AdvanceAll(dt float64) {
	for _, id := range e.SegmentIDs() {
		e.segments[id].Advance(dt)
	}
}

// pixel accumulates the running source-over composite at one LED
// position.
type pixel struct {
	color   RGB
	opacity float64
}

// Render composites all segments, in ascending segment-id order, into
// an led_count-sized RGB buffer using source-over compositing.
func (e *Effect) Render(palette *PaletteBook) []RGB {
	acc := make([]pixel, e.LEDCount)

	for _, id := range e.SegmentIDs() {
		seg := e.segments[id]
		for p, sample := range seg.LightData(palette) {
			if sample.Alpha <= 0 || p < 0 || p >= e.LEDCount {
				continue
			}
			alpha := clampUnit(sample.Alpha)
			px := &acc[p]

			if px.opacity == 0 {
				px.color = sample.Color
				px.opacity = alpha
				continue
			}

			// Standard Porter-Duff source-over: the new (later, higher
			// id) segment is painted on top and dominates by its own
			// alpha, attenuating what's already accumulated by
			// (1-alpha). total equals the resulting opacity below.
			dstWeight := px.opacity * (1 - alpha)
			total := alpha + dstWeight
			if total > 0 {
				px.color = RGB{
					R: clampByte((float64(sample.Color.R)*alpha + float64(px.color.R)*dstWeight) / total),
					G: clampByte((float64(sample.Color.G)*alpha + float64(px.color.G)*dstWeight) / total),
					B: clampByte((float64(sample.Color.B)*alpha + float64(px.color.B)*dstWeight) / total),
				}
			}
			px.opacity = clampUnit(total)
		}
	}

	out := make([]RGB, e.LEDCount)
	for i, px := range acc {
		out[i] = px.color
	}
	return out
}
