package model

import (
	"fmt"
	"math"
)

// ParamName identifies one recognized Segment attribute. A grouped OSC
// update decomposes into a sequence of ParameterUpdate values tagged
// with one of these names instead of setting arbitrary attributes by
// name.
type ParamName string

// Recognized segment parameter names.
const (
	ParamColor           ParamName = "color"
	ParamTransparency    ParamName = "transparency"
	ParamLength          ParamName = "length"
	ParamMoveSpeed       ParamName = "move_speed"
	ParamMoveRange       ParamName = "move_range"
	ParamInitialPosition ParamName = "initial_position"
	ParamCurrentPosition ParamName = "current_position"
	ParamIsEdgeReflect   ParamName = "is_edge_reflect"
	ParamDimmerTime      ParamName = "dimmer_time"
	ParamGradient        ParamName = "gradient"
	ParamGradientColors  ParamName = "gradient_colors"
	ParamFade            ParamName = "fade"

	// Scheduling hints stored for external cyclers and echoed back in
	// the init snapshot; the render pipeline itself never reads them.
	ParamPositionInterval ParamName = "position_interval"
	ParamSpanRange        ParamName = "span_range"
	ParamSpanSpeed        ParamName = "span_speed"
	ParamSpanInterval     ParamName = "span_interval"
)

// ParameterUpdate is a single named attribute write.
type ParameterUpdate struct {
	Name  ParamName
	Value any
}

// Segment is a single moving light object on the strip.
type Segment struct {
	ID int

	Color         [4]int
	Transparency  [4]float64
	Length        [3]int
	MoveSpeed     float64
	MoveRange     [2]float64
	InitialPos    float64
	CurrentPos    float64
	IsEdgeReflect bool
	DimmerTime    [5]int
	Gradient      bool
	GradientArgs  [3]int // [enable, idxL, idxR]
	Fade          bool
	Time          float64

	// Controller scheduling hints (see ParamPositionInterval et al).
	PositionInterval float64
	SpanRange        [2]float64
	SpanSpeed        float64
	SpanInterval     float64

	paletteName string
}

// NewSegment creates a segment with the default attributes of a
// freshly materialized light object.
func NewSegment(id int) *Segment {
	return &Segment{
		ID:            id,
		Color:         [4]int{0, 0, 0, 0},
		Transparency:  [4]float64{1, 1, 1, 1},
		Length:        [3]int{1, 1, 1},
		MoveSpeed:     0,
		MoveRange:     [2]float64{0, 224},
		InitialPos:    0,
		CurrentPos:    0,
		IsEdgeReflect: false,
		DimmerTime:    [5]int{0, 0, 0, 0, 0},
		Fade:          false,

		PositionInterval: 10,
		SpanRange:        [2]float64{0, 224},
		SpanSpeed:        0,
		SpanInterval:     10,

		paletteName: "A",
	}
}

// SetPaletteName updates the palette this segment resolves colors
// against. Called by the owning Effect when its palette changes.
func (s *Segment) SetPaletteName(name string) {
	s.paletteName = name
}

// clampMoveRange enforces move_range[0] <= move_range[1], widening
// move_range[1] to move_range[0]+1 when a setter would otherwise
// invert the bounds, and clamps current_position back into range.
func (s *Segment) clampMoveRange() {
	if s.MoveRange[0] > s.MoveRange[1] {
		s.MoveRange[1] = s.MoveRange[0] + 1
	}
	if s.CurrentPos < s.MoveRange[0] {
		s.CurrentPos = s.MoveRange[0]
	}
	if s.CurrentPos > s.MoveRange[1] {
		s.CurrentPos = s.MoveRange[1]
	}
}

// SetColor sets the four control-point color indices.
func (s *Segment) SetColor(c [4]int) { s.Color = c }

// SetTransparency sets the four control-point opacities, clamped to [0,1].
func (s *Segment) SetTransparency(t [4]float64) {
	for i := range t {
		s.Transparency[i] = clampUnit(t[i])
	}
}

// SetLength sets the three inter-control-point distances.
func (s *Segment) SetLength(l [3]int) { s.Length = l }

// SetMoveSpeed sets LEDs/second (signed; sign encodes direction).
func (s *Segment) SetMoveSpeed(v float64) { s.MoveSpeed = v }

// SetMoveRange sets the inclusive position bounds and immediately
// clamps current_position into the new range.
func (s *Segment) SetMoveRange(lo, hi float64) {
	s.MoveRange = [2]float64{lo, hi}
	s.clampMoveRange()
}

// SetInitialPosition sets initial_position.
func (s *Segment) SetInitialPosition(v float64) { s.InitialPos = v }

// SetCurrentPosition sets current_position, clamped into move_range.
func (s *Segment) SetCurrentPosition(v float64) {
	s.CurrentPos = v
	s.clampMoveRange()
}

// SetEdgeReflect sets the reflect/wrap motion mode.
func (s *Segment) SetEdgeReflect(v bool) { s.IsEdgeReflect = v }

// SetDimmerTime sets the five-element envelope timing (ms).
func (s *Segment) SetDimmerTime(t [5]int) { s.DimmerTime = t }

// SetGradient enables/disables gradient color override.
func (s *Segment) SetGradient(v bool) { s.Gradient = v }

// SetGradientArgs sets [enable, idxL, idxR].
func (s *Segment) SetGradientArgs(a [3]int) { s.GradientArgs = a }

// SetFade enables/disables the dimmer envelope.
func (s *Segment) SetFade(v bool) { s.Fade = v }

// Apply dispatches a single tagged parameter update, validating its
// shape and reporting an error for malformed values instead of
// silently storing them.
func (s *Segment) Apply(u ParameterUpdate) error {
	switch u.Name {
	case ParamColor:
		v, err := toIntArray4(u.Value)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		s.SetColor(v)
	case ParamTransparency:
		v, err := toFloatArray4(u.Value)
		if err != nil {
			return fmt.Errorf("transparency: %w", err)
		}
		s.SetTransparency(v)
	case ParamLength:
		v, err := toIntArray3(u.Value)
		if err != nil {
			return fmt.Errorf("length: %w", err)
		}
		s.SetLength(v)
	case ParamMoveSpeed:
		v, err := toFloat(u.Value)
		if err != nil {
			return fmt.Errorf("move_speed: %w", err)
		}
		s.SetMoveSpeed(v)
	case ParamMoveRange:
		lo, hi, err := toFloatPair(u.Value)
		if err != nil {
			return fmt.Errorf("move_range: %w", err)
		}
		s.SetMoveRange(lo, hi)
	case ParamInitialPosition:
		v, err := toFloat(u.Value)
		if err != nil {
			return fmt.Errorf("initial_position: %w", err)
		}
		s.SetInitialPosition(v)
	case ParamCurrentPosition:
		v, err := toFloat(u.Value)
		if err != nil {
			return fmt.Errorf("current_position: %w", err)
		}
		s.SetCurrentPosition(v)
	case ParamIsEdgeReflect:
		v, err := toBool(u.Value)
		if err != nil {
			return fmt.Errorf("is_edge_reflect: %w", err)
		}
		s.SetEdgeReflect(v)
	case ParamDimmerTime:
		v, err := toIntArray5(u.Value)
		if err != nil {
			return fmt.Errorf("dimmer_time: %w", err)
		}
		s.SetDimmerTime(v)
	case ParamGradient:
		v, err := toBool(u.Value)
		if err != nil {
			return fmt.Errorf("gradient: %w", err)
		}
		s.SetGradient(v)
	case ParamGradientColors:
		v, err := toIntArray3(u.Value)
		if err != nil {
			return fmt.Errorf("gradient_colors: %w", err)
		}
		s.SetGradientArgs(v)
	case ParamFade:
		v, err := toBool(u.Value)
		if err != nil {
			return fmt.Errorf("fade: %w", err)
		}
		s.SetFade(v)
	case ParamPositionInterval:
		v, err := toFloat(u.Value)
		if err != nil {
			return fmt.Errorf("position_interval: %w", err)
		}
		s.PositionInterval = v
	case ParamSpanRange:
		lo, hi, err := toFloatPair(u.Value)
		if err != nil {
			return fmt.Errorf("span_range: %w", err)
		}
		s.SpanRange = [2]float64{lo, hi}
	case ParamSpanSpeed:
		v, err := toFloat(u.Value)
		if err != nil {
			return fmt.Errorf("span_speed: %w", err)
		}
		s.SpanSpeed = v
	case ParamSpanInterval:
		v, err := toFloat(u.Value)
		if err != nil {
			return fmt.Errorf("span_interval: %w", err)
		}
		s.SpanInterval = v
	default:
		return fmt.Errorf("unknown segment parameter %q", u.Name)
	}
	return nil
}

// Advance moves the segment by move_speed*dt and normalizes the
// result into move_range. It also advances the envelope phase clock.
func (s *Segment) Advance(dt float64) {
	s.Time += dt
	s.CurrentPos += s.MoveSpeed * dt

	lo, hi := s.MoveRange[0], s.MoveRange[1]
	if hi < lo {
		hi = lo + 1
	}

	if s.IsEdgeReflect {
		// Reflect repeatedly until inside range: handles a large dt
		// overshooting both boundaries in one step without tunneling
		// through a wall.
		for i := 0; i < 64; i++ {
			if s.CurrentPos < lo {
				s.CurrentPos = lo + (lo - s.CurrentPos)
				s.MoveSpeed = -s.MoveSpeed
				continue
			}
			if s.CurrentPos > hi {
				s.CurrentPos = hi - (s.CurrentPos - hi)
				s.MoveSpeed = -s.MoveSpeed
				continue
			}
			break
		}
		// The reflection loop is bounded (a zero-width range never
		// converges), so pin any remainder onto the nearest boundary.
		if s.CurrentPos < lo {
			s.CurrentPos = lo
		} else if s.CurrentPos > hi {
			s.CurrentPos = hi
		}
	} else {
		span := hi - lo + 1
		if span > 0 {
			offset := math.Mod(s.CurrentPos-lo, span)
			if offset < 0 {
				offset += span
			}
			s.CurrentPos = lo + offset
		}
	}
}

// controlPoints returns the four control-point positions x0..x3,
// centered on current_position and spread out by the cumulative
// inter-point lengths.
func (s *Segment) controlPoints() [4]float64 {
	totalLen := float64(s.Length[0] + s.Length[1] + s.Length[2])
	x0 := s.CurrentPos - totalLen/2
	x1 := x0 + float64(s.Length[0])
	x2 := x1 + float64(s.Length[1])
	x3 := x2 + float64(s.Length[2])
	return [4]float64{x0, x1, x2, x3}
}

// resolvedColors returns the four control-point RGB colors, applying
// the gradient override when enabled.
func (s *Segment) resolvedColors(palette *PaletteBook) [4]RGB {
	var colors [4]RGB
	if s.Gradient && s.GradientArgs[0] == 1 {
		left := palette.ColorAt(s.paletteName, s.GradientArgs[1])
		right := palette.ColorAt(s.paletteName, s.GradientArgs[2])
		colors[0] = left
		colors[3] = right
		colors[1] = lerpRGB(left, right, 1.0/3.0)
		colors[2] = lerpRGB(left, right, 2.0/3.0)
		return colors
	}
	for i := 0; i < 4; i++ {
		colors[i] = palette.ColorAt(s.paletteName, s.Color[i])
	}
	return colors
}

// Brightness evaluates the dimmer envelope at the segment's current
// phase clock, using a linear fade-in/out; the cycle length comes
// from dimmer_time[4].
func (s *Segment) Brightness() float64 {
	if !s.Fade || s.DimmerTime[4] == 0 {
		return 1.0
	}
	cycle := float64(s.DimmerTime[4])
	tMs := math.Mod(s.Time*1000, cycle)
	if tMs < 0 {
		tMs += cycle
	}

	f0, f1, f2, f3 := float64(s.DimmerTime[0]), float64(s.DimmerTime[1]), float64(s.DimmerTime[2]), float64(s.DimmerTime[3])

	switch {
	case tMs < f0:
		return 0
	case tMs < f1:
		if f1 == f0 {
			return 1
		}
		return clampUnit((tMs - f0) / (f1 - f0))
	case tMs < f2:
		return 1
	case tMs < f3:
		if f3 == f2 {
			return 0
		}
		return clampUnit(1 - (tMs-f2)/(f3-f2))
	default:
		return 0
	}
}

// LEDSample is one LED's contribution from a segment.
type LEDSample struct {
	Color RGB
	Alpha float64
}

// LightData returns the sparse per-LED contribution of this segment:
// only integer LED positions the segment's span covers, and only
// those inside move_range, are present.
func (s *Segment) LightData(palette *PaletteBook) map[int]LEDSample {
	x := s.controlPoints()
	colors := s.resolvedColors(palette)
	brightness := s.Brightness()

	lo, hi := s.MoveRange[0], s.MoveRange[1]
	startP := int(math.Floor(x[0]))
	endP := int(math.Ceil(x[3]))

	out := make(map[int]LEDSample, endP-startP+1)
	for p := startP; p <= endP; p++ {
		fp := float64(p)
		if fp < lo || fp > hi {
			continue
		}

		i := subSegmentIndex(x, fp)
		segStart, segEnd := x[i], x[i+1]
		denom := segEnd - segStart
		if denom < 1 {
			denom = 1
		}
		t := clampUnit((fp - segStart) / denom)

		rgb := lerpRGB(colors[i], colors[i+1], t)
		alpha := clampUnit(lerp(s.Transparency[i], s.Transparency[i+1], t) * brightness)

		out[p] = LEDSample{Color: rgb, Alpha: alpha}
	}
	return out
}

// subSegmentIndex finds i in {0,1,2} such that x[i] <= p <= x[i+1],
// ties going to the lower index.
func subSegmentIndex(x [4]float64, p float64) int {
	for i := 0; i < 2; i++ {
		if p <= x[i+1] {
			return i
		}
	}
	return 2
}
