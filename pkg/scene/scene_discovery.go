package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	Name        string // Name used to select the scene
	Description string // Optional description
	Type        string // "builtin" or "json"
	FilePath    string // Path to the scene file (json type only)
	Spheres     int    // Number of spheres in the world
}

// builtinScenes maps scene names to their constructors
var builtinScenes = map[string]func() *Scene{
	"default":     NewDefaultScene,
	"two-spheres": NewTwoSpheresScene,
	"book-cover":  NewBookCoverScene,
	"glass":       NewGlassScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds a fresh instance of a built-in scene
func Lookup(name string) (*Scene, error) {
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

// Load resolves a scene reference: a path ending in .json is read as a scene
// file, anything else is looked up among the built-in scenes.
func Load(ref string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(ref), ".json") {
		return LoadFile(ref)
	}
	return Lookup(ref)
}

// ListScenes returns the built-in scenes followed by the JSON scene files
// found in dir, each group sorted by name. A missing dir yields only the
// built-in scenes.
func ListScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range Names() {
		s := builtinScenes[name]()
		scenes = append(scenes, SceneInfo{
			Name:        s.Name,
			Description: s.Description,
			Type:        "builtin",
			Spheres:     s.World.Len(),
		})
	}

	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	for _, filePath := range files {
		s, err := LoadFile(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, SceneInfo{
			Name:        s.Name,
			Description: s.Description,
			Type:        "json",
			FilePath:    filePath,
			Spheres:     s.World.Len(),
		})
	}

	return scenes, nil
}
