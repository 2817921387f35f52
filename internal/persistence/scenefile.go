package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tapelight/ledengine/internal/model"
)

// Load reads and parses a scene document from path, rebuilding a live
// Scene. A file that cannot be read or is not valid JSON is a load
// failure: fatal when passed via --config-file at startup, a plain error
// on a runtime reload (the caller keeps its current scene). Keys missing
// from a well-formed document are not reported; they take their Go zero
// values.
func Load(path string) (*model.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persistence: read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persistence: parse %s: %w", path, err)
	}

	return ToScene(doc), nil
}

// Save writes scene to path as a JSON document, the exact inverse of
// Load. The parent directory is created if missing.
func Save(scene *model.Scene, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("persistence: create directory %s: %w", dir, err)
		}
	}

	doc := ToDocument(scene)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	return nil
}
