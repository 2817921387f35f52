package engine

import (
	"testing"

	"github.com/tapelight/ledengine/internal/model"
)

func TestSwitchEffect(t *testing.T) {
	scene := model.NewScene(1)
	scene.AddEffect(model.NewEffect(1, 10, 60))
	scene.AddEffect(model.NewEffect(2, 10, 60))

	if err := SwitchEffect(scene, 2); err != nil {
		t.Fatalf("SwitchEffect: %v", err)
	}
	cur := scene.CurrentEffectID()
	if cur == nil || *cur != 2 {
		t.Errorf("CurrentEffectID() = %v, want 2", cur)
	}

	if err := SwitchEffect(scene, 99); err == nil {
		t.Error("expected error switching to unknown effect")
	}
}
