package loaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// ParseSceneDescription decodes a YAML scene description. Unknown keys
// are rejected.
func ParseSceneDescription(data []byte) (scene.Description, error) {
	var desc scene.Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		return desc, fmt.Errorf("failed to decode scene description: %w", err)
	}
	return desc, nil
}

// LoadSceneFile reads a YAML scene, loads the textures it lists relative
// to the file and builds the scene
func LoadSceneFile(path string, opts ...scene.Option) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	desc, err := ParseSceneDescription(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	assets := material.NewAssets()
	dir := filepath.Dir(path)
	for _, texPath := range desc.Textures {
		if !filepath.IsAbs(texPath) {
			texPath = filepath.Join(dir, texPath)
		}
		tex, err := LoadTexture(texPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, err := assets.AddTexture(tex); err != nil {
			return nil, fmt.Errorf("%s: texture %s: %w", path, texPath, err)
		}
	}

	s, err := scene.FromDescription(desc, append(opts, scene.WithAssets(assets))...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
