package osc

import (
	"encoding/json"
	"strconv"

	"github.com/tapelight/ledengine/internal/model"
)

// Snapshot assembles the full /request/init reply: a /palette/{X}
// message per palette, and color/position/span/transparency messages
// for every effect/segment, emitted under both the /segment/ and
// /object/ address families for client compatibility. State is copied
// out under the scene's own accessor locks; the caller sends the
// returned messages lock-free.
func Snapshot(scene *model.Scene) []Message {
	var msgs []Message

	palettes := scene.Palettes()
	for _, name := range palettes.Names() {
		msgs = append(msgs, paletteMessage(name, palettes.Get(name)))
	}

	for _, effectID := range scene.EffectIDs() {
		scene.WithEffectLocked(effectID, func(e *model.Effect) {
			for _, segID := range e.SegmentIDs() {
				seg := e.Segment(segID)
				msgs = append(msgs, segmentMessages(effectID, segID, seg)...)
			}
		})
	}

	return msgs
}

func paletteMessage(name string, colors []model.RGB) Message {
	flat := make([]int, 0, len(colors)*3)
	for _, c := range colors {
		flat = append(flat, int(c.R), int(c.G), int(c.B))
	}
	args := make([]any, len(flat))
	for i, v := range flat {
		args[i] = v
	}
	return Message{Address: "/palette/" + name, Args: args}
}

// segmentMessages emits the four grouped payloads for one segment,
// duplicated under /segment/ and /object/ for client compatibility.
func segmentMessages(effectID, segID int, seg *model.Segment) []Message {
	color := mustJSON(map[string]any{
		"colors": seg.Color,
		"speed":  seg.MoveSpeed,
		"gradient": boolToInt(seg.Gradient),
	})
	position := mustJSON(map[string]any{
		"initial_position": seg.InitialPos,
		"speed":            seg.MoveSpeed,
		"range":            seg.MoveRange,
		"interval":         seg.PositionInterval,
	})
	span := mustJSON(map[string]any{
		"span":            seg.Length[0] + seg.Length[1] + seg.Length[2],
		"range":           seg.SpanRange,
		"speed":           seg.SpanSpeed,
		"interval":        seg.SpanInterval,
		"gradient_colors": seg.GradientArgs,
		"fade":            boolToInt(seg.Fade),
	})
	transparency := seg.Transparency

	var msgs []Message
	for _, family := range [2]string{"segment", "object"} {
		base := addrBase(effectID, family, segID)
		msgs = append(msgs,
			Message{Address: base + "/color", Args: []any{color}},
			Message{Address: base + "/position", Args: []any{position}},
			Message{Address: base + "/span", Args: []any{span}},
			Message{Address: base + "/transparency", Args: transparencyArgs(transparency)},
		)
	}
	return msgs
}

func addrBase(effectID int, family string, segID int) string {
	return "/effect/" + strconv.Itoa(effectID) + "/" + family + "/" + strconv.Itoa(segID)
}

func transparencyArgs(t [4]float64) []any {
	args := make([]any, len(t))
	for i, v := range t {
		args[i] = float32(v)
	}
	return args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
