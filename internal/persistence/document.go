// Package persistence provides JSON load/save of a Scene document. A
// Scene serializes to a single self-contained document; this package
// owns the file IO directly.
package persistence

import (
	"strconv"

	"github.com/tapelight/ledengine/internal/model"
)

// Document is the on-disk shape of a Scene. Field names match the
// wire document exactly so JSON round-trips without tag juggling.
type Document struct {
	SceneID         int                  `json:"scene_ID"`
	CurrentEffectID *int                 `json:"current_effect_ID"`
	CurrentPalette  string               `json:"current_palette"`
	Palettes        map[string][][3]int  `json:"palettes"`
	Effects         map[string]EffectDoc `json:"effects"`
}

// EffectDoc is the on-disk shape of one Effect.
type EffectDoc struct {
	EffectID int                   `json:"effect_ID"`
	LEDCount int                   `json:"led_count"`
	FPS      int                   `json:"fps"`
	Segments map[string]SegmentDoc `json:"segments"`
}

// SegmentDoc is the on-disk shape of one Segment: every persisted
// attribute except the phase clock and derived caches.
type SegmentDoc struct {
	SegmentID       int        `json:"segment_id"`
	Color           [4]int     `json:"color"`
	Transparency    [4]float64 `json:"transparency"`
	Length          [3]int     `json:"length"`
	MoveSpeed       float64    `json:"move_speed"`
	MoveRange       [2]float64 `json:"move_range"`
	InitialPosition float64    `json:"initial_position"`
	CurrentPosition *float64   `json:"current_position,omitempty"`
	IsEdgeReflect   bool       `json:"is_edge_reflect"`
	DimmerTime      [5]int     `json:"dimmer_time"`
	Gradient        bool       `json:"gradient"`
	GradientColors  [3]int     `json:"gradient_colors"`
	Fade            bool       `json:"fade"`
}

// ToDocument converts a live Scene into its persisted shape.
func ToDocument(scene *model.Scene) Document {
	palettes := scene.Palettes()
	paletteDoc := make(map[string][][3]int)
	for _, name := range palettes.Names() {
		colors := palettes.Get(name)
		triples := make([][3]int, len(colors))
		for i, c := range colors {
			triples[i] = [3]int{int(c.R), int(c.G), int(c.B)}
		}
		paletteDoc[name] = triples
	}

	effectsDoc := make(map[string]EffectDoc)
	for _, effectID := range scene.EffectIDs() {
		scene.WithEffectLocked(effectID, func(e *model.Effect) {
			segDoc := make(map[string]SegmentDoc)
			for _, segID := range e.SegmentIDs() {
				segDoc[strconv.Itoa(segID)] = segmentToDoc(e.Segment(segID))
			}
			effectsDoc[strconv.Itoa(effectID)] = EffectDoc{
				EffectID: e.ID,
				LEDCount: e.LEDCount,
				FPS:      e.FPS,
				Segments: segDoc,
			}
		})
	}

	return Document{
		SceneID:         scene.ID(),
		CurrentEffectID: scene.CurrentEffectID(),
		CurrentPalette:  scene.CurrentPaletteName(),
		Palettes:        paletteDoc,
		Effects:         effectsDoc,
	}
}

func segmentToDoc(seg *model.Segment) SegmentDoc {
	pos := seg.CurrentPos
	return SegmentDoc{
		SegmentID:       seg.ID,
		Color:           seg.Color,
		Transparency:    seg.Transparency,
		Length:          seg.Length,
		MoveSpeed:       seg.MoveSpeed,
		MoveRange:       seg.MoveRange,
		InitialPosition: seg.InitialPos,
		CurrentPosition: &pos,
		IsEdgeReflect:   seg.IsEdgeReflect,
		DimmerTime:      seg.DimmerTime,
		Gradient:        seg.Gradient,
		GradientColors:  seg.GradientArgs,
		Fade:            seg.Fade,
	}
}

// ToScene rebuilds a live Scene bottom-up from a Document: palettes,
// then segments, then effects, then the scene itself. current_position
// is restored when present, else falls back to initial_position.
func ToScene(doc Document) *model.Scene {
	scene := model.NewScene(doc.SceneID)

	for name, triples := range doc.Palettes {
		colors := make([]model.RGB, len(triples))
		for i, t := range triples {
			colors[i] = model.RGB{R: clampByte(t[0]), G: clampByte(t[1]), B: clampByte(t[2])}
		}
		scene.UpdatePalette(name, colors)
	}
	if doc.CurrentPalette != "" {
		scene.SetPalette(doc.CurrentPalette)
	}

	for _, effectDoc := range doc.Effects {
		effect := model.NewEffect(effectDoc.EffectID, effectDoc.LEDCount, effectDoc.FPS)
		for _, segDoc := range effectDoc.Segments {
			effect.AddSegment(segmentFromDoc(segDoc))
		}
		scene.AddEffect(effect)
	}

	if doc.CurrentEffectID != nil {
		_ = scene.SwitchEffect(*doc.CurrentEffectID)
	}
	return scene
}

func segmentFromDoc(doc SegmentDoc) *model.Segment {
	seg := model.NewSegment(doc.SegmentID)
	seg.SetColor(doc.Color)
	seg.SetTransparency(doc.Transparency)
	seg.SetLength(doc.Length)
	seg.SetMoveSpeed(doc.MoveSpeed)
	seg.SetMoveRange(doc.MoveRange[0], doc.MoveRange[1])
	seg.SetInitialPosition(doc.InitialPosition)
	if doc.CurrentPosition != nil {
		seg.SetCurrentPosition(*doc.CurrentPosition)
	} else {
		seg.SetCurrentPosition(doc.InitialPosition)
	}
	seg.SetEdgeReflect(doc.IsEdgeReflect)
	seg.SetDimmerTime(doc.DimmerTime)
	seg.SetGradientArgs(doc.GradientColors)
	seg.SetGradient(doc.Gradient)
	seg.SetFade(doc.Fade)
	return seg
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
