package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapelight/ledengine/internal/model"
)

func buildTestScene() *model.Scene {
	scene := model.NewScene(1)
	scene.UpdatePalette("A", []model.RGB{{R: 255}, {G: 255}})

	effect := model.NewEffect(3, 225, 60)
	seg := model.NewSegment(2)
	seg.SetColor([4]int{1, 2, 3, 0})
	seg.SetMoveSpeed(12.5)
	seg.SetMoveRange(0, 224)
	seg.SetCurrentPosition(40)
	seg.SetDimmerTime([5]int{0, 100, 900, 1000, 1000})
	seg.SetFade(true)
	effect.AddSegment(seg)
	scene.AddEffect(effect)

	return scene
}

// Testable property 6: load(save(S)) == S structurally, including
// current_position.
func TestSaveLoad_RoundTrip(t *testing.T) {
	original := buildTestScene()
	path := filepath.Join(t.TempDir(), "scene.json")

	require.NoError(t, Save(original, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	originalDoc := ToDocument(original)
	loadedDoc := ToDocument(loaded)

	assert.Equal(t, originalDoc.SceneID, loadedDoc.SceneID)
	assert.Equal(t, originalDoc.CurrentPalette, loadedDoc.CurrentPalette)

	origSeg := originalDoc.Effects["3"].Segments["2"]
	gotSeg := loadedDoc.Effects["3"].Segments["2"]
	assert.Equal(t, origSeg.Color, gotSeg.Color)
	require.NotNil(t, gotSeg.CurrentPosition)
	assert.Equal(t, *origSeg.CurrentPosition, *gotSeg.CurrentPosition)
	assert.Equal(t, origSeg.DimmerTime, gotSeg.DimmerTime)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSONIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
