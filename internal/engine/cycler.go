package engine

import "github.com/tapelight/ledengine/internal/model"

// SwitchEffect makes effectID the scene's current effect, so the next
// Renderer.Tick advances and renders it instead of whatever was
// current before. Auto-cyclers are external schedulers layered on top
// of this hook: a caller wanting effect rotation drives SwitchEffect
// from its own ticker against scene.EffectIDs().
func SwitchEffect(scene *model.Scene, effectID int) error {
	return scene.SwitchEffect(effectID)
}
