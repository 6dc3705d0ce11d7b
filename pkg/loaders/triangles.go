package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// LoadTriangles reads a triangle soup: whitespace separated floats, nine
// per triangle (three vertices of x y z). Lines starting with # are
// comments.
func LoadTriangles(r io.Reader) (scene.TriangleSoup, error) {
	var (
		values []float64
		line   int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q", line, field)
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read triangles: %w", err)
	}
	if len(values)%9 != 0 {
		return nil, fmt.Errorf("incomplete triangle: %d values left over after %d triangles", len(values)%9, len(values)/9)
	}

	tris := make(scene.TriangleSoup, len(values)/9)
	for i := range tris {
		v := values[i*9:]
		tris[i] = [3]core.Vec3{
			core.NewVec3(v[0], v[1], v[2]),
			core.NewVec3(v[3], v[4], v[5]),
			core.NewVec3(v[6], v[7], v[8]),
		}
	}
	return tris, nil
}

// LoadTrianglesFile opens a triangle soup file
func LoadTrianglesFile(path string) (scene.TriangleSoup, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open triangle file: %w", err)
	}
	defer file.Close()

	tris, err := LoadTriangles(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tris, nil
}

// LoadMesh loads a triangle soup from a .ply file or a raw triangle file
func LoadMesh(path string, logger *zap.Logger) (scene.TriangleSoup, error) {
	if strings.EqualFold(filepath.Ext(path), ".ply") {
		mesh, err := LoadPLY(path, logger)
		if err != nil {
			return nil, err
		}
		return mesh.Triangles(), nil
	}
	return LoadTrianglesFile(path)
}
