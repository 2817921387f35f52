// Package model implements the effect data model: palettes, segments,
// effects and scenes, and the per-frame rendering math that turns them
// into an RGB buffer.
package model

import "math"

// RGB is a single LED color sample.
type RGB struct {
	R, G, B uint8
}

// clampByte clamps a float channel value into the valid 0..255 range,
// silently absorbing overflow rather than erroring. Fractional values
// floor, so an even 50/50 blend of 255 and 0 lands on 127.
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Floor(v))
}

// clampUnit clamps a value to [0,1], as required for transparency and
// dimmer brightness values.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerpRGB performs a channel-wise linear interpolation between two
// colors, flooring each channel to an integer value.
func lerpRGB(a, b RGB, t float64) RGB {
	t = clampUnit(t)
	return RGB{
		R: clampByte(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clampByte(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clampByte(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// lerp interpolates a scalar between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*clampUnit(t)
}
