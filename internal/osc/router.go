package osc

import (
	"log"
	"strconv"

	"github.com/tapelight/ledengine/internal/events"
	"github.com/tapelight/ledengine/internal/model"
)

// Route dispatches one decoded Message against scene, matching the
// recognized address families (everything but /request/init, which
// Server handles directly since it needs the sender's address to
// reply). Unrecognized addresses are logged and ignored, never an
// error returned to the caller: there is no OSC reply channel for
// unsolicited writes.
func Route(scene *model.Scene, bus *events.Bus, msg Message) {
	parts := AddressParts(msg.Address)

	switch {
	case len(parts) == 5 && parts[0] == "effect" && (parts[2] == "segment" || parts[2] == "object"):
		routeSegmentParam(scene, parts, msg.Args, parts[2] == "object")
		publishModelChanged(bus)

	case len(parts) == 2 && parts[0] == "palette" && isPaletteName(parts[1]):
		routePalette(scene, parts[1], msg.Args)
		publishModelChanged(bus)

	default:
		log.Printf("osc: 🤷 ignoring unrecognized address %q", msg.Address)
	}
}

// isPaletteName reports whether name is one of the five palette slots;
// an address naming any other palette is unrecognized.
func isPaletteName(name string) bool {
	for _, n := range model.PaletteNames {
		if n == name {
			return true
		}
	}
	return false
}

func publishModelChanged(bus *events.Bus) {
	if bus != nil {
		bus.Publish(events.TopicModelChanged, struct{}{})
	}
}

// routeSegmentParam implements the /segment/ and /object/ address
// families: a write to an unknown effect/segment under /segment/ is
// discarded with a warning; under /object/ both are auto-materialized
// with default attributes.
func routeSegmentParam(scene *model.Scene, parts []string, args []any, autoMaterialize bool) {
	effectID, err := strconv.Atoi(parts[1])
	if err != nil {
		log.Printf("osc: 🎛️ bad effect id %q: %v", parts[1], err)
		return
	}
	segmentID, err := strconv.Atoi(parts[3])
	if err != nil {
		log.Printf("osc: 🎛️ bad segment id %q: %v", parts[3], err)
		return
	}
	param := parts[4]

	updates, err := CoerceParam(param, args)
	if err != nil {
		log.Printf("osc: 🎛️ coercing %s: %v", param, err)
		return
	}

	var effect *model.Effect
	if autoMaterialize {
		effect = scene.EnsureEffect(effectID)
	} else {
		effect = scene.Effect(effectID)
		if effect == nil {
			log.Printf("osc: 🎛️ discarding write to unknown effect %d (segment family does not auto-materialize)", effectID)
			return
		}
	}

	err = scene.WithEffect(effect.ID, func(e *model.Effect) {
		var seg *model.Segment
		if autoMaterialize {
			seg = e.EnsureSegment(segmentID)
		} else {
			seg = e.Segment(segmentID)
		}
		if seg == nil {
			log.Printf("osc: 🎛️ discarding write to unknown segment %d (segment family does not auto-materialize)", segmentID)
			return
		}
		for _, u := range updates {
			if err := seg.Apply(u); err != nil {
				log.Printf("osc: 🎛️ segment %d: %v", segmentID, err)
				return
			}
		}
	})
	if err != nil {
		log.Printf("osc: 🎛️ %v", err)
	}
}

// routePalette implements the /palette/{name} address family: a flat
// RGB triple list replaces the named palette.
func routePalette(scene *model.Scene, name string, args []any) {
	flat, err := toFlatIntList(args)
	if err != nil {
		log.Printf("osc: 🎨 bad palette payload for %q: %v", name, err)
		return
	}
	if err := scene.UpdatePaletteFromFlatRGB(name, flat); err != nil {
		log.Printf("osc: 🎨 palette %q: %v", name, err)
	}
}
