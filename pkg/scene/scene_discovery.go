package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// ErrUnknownScene is returned when a scene name is not in the catalogue
var ErrUnknownScene = errors.New("unknown scene")

// DefaultTriangleCount is the size of the random soup used when the
// triangles scene is requested without a mesh
const DefaultTriangleCount = 64

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to the YAML file (file type only)
}

// Inputs carries the assets a built-in scene may use
type Inputs struct {
	WallTexture *material.ImageTexture // room back wall, optional
	Triangles   TriangleSoup           // triangles scene, optional
	Seed        int64                  // random soup seed
	Options     []Option
}

type builtin struct {
	info SceneInfo
	make func(in Inputs) (*Scene, error)
}

var builtins = []builtin{
	{
		info: SceneInfo{ID: "room", Name: "Room", Description: "Animated room with a glass cube, mirror ball and swinging light", Type: "builtin"},
		make: func(in Inputs) (*Scene, error) {
			return NewRoomScene(in.WallTexture, in.Options...)
		},
	},
	{
		info: SceneInfo{ID: "mirrors", Name: "Mirrors", Description: "Two facing mirrors under a small light", Type: "builtin"},
		make: func(in Inputs) (*Scene, error) {
			return NewMirrorScene(in.Options...)
		},
	},
	{
		info: SceneInfo{ID: "triangles", Name: "Triangles", Description: "Triangle soup lit from above", Type: "builtin"},
		make: func(in Inputs) (*Scene, error) {
			tris := in.Triangles
			if len(tris) == 0 {
				tris = RandomTriangles(DefaultTriangleCount, in.Seed)
			}
			return NewTriangleScene(tris, in.Options...)
		},
	},
}

// BuiltinScenes lists the scenes that need no scene file
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
	}
	return infos
}

// NewBuiltin constructs a built-in scene by id
func NewBuiltin(id string, in Inputs) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.make(in)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListSceneFiles scans dir for *.yaml scene files. A missing directory
// yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		info, err := ParseSceneHeader(path)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneHeader reads "# Scene:" and "# Description:" comments at the
// top of a scene file
func ParseSceneHeader(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       "file:" + base,
		Name:     titleCase(base),
		Type:     "file",
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}
		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if v, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(v)
		}
	}
	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(BuiltinScenes(), files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-room" -> "Glass Room"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
