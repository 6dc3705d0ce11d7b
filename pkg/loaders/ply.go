package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian" or "ascii"
	Version     string
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// Mesh is an indexed triangle mesh
type Mesh struct {
	Vertices []core.Vec3
	Faces    []int // Triangle indices (3 per triangle)
}

// Triangles expands the mesh into world-space triangles
func (m *Mesh) Triangles() scene.TriangleSoup {
	tris := make(scene.TriangleSoup, len(m.Faces)/3)
	for i := range tris {
		f := m.Faces[i*3:]
		tris[i] = [3]core.Vec3{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
	}
	return tris
}

// LoadPLY loads vertex positions and faces from a PLY file. Polygons are
// split into triangle fans; other vertex and face properties are skipped.
func LoadPLY(path string, logger *zap.Logger) (*Mesh, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("loaded PLY mesh",
		zap.String("path", path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Faces)/3),
		zap.Duration("elapsed", time.Since(start)),
	)
	return mesh, nil
}

// ReadPLY parses a PLY stream
func ReadPLY(r *bufio.Reader) (*Mesh, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var src valueReader
	switch header.Format {
	case "binary_little_endian":
		src = &binaryReader{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		src = &binaryReader{r: r, order: binary.BigEndian}
	case "ascii":
		src = &asciiReader{r: r}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	mesh, err := readPLYBody(header, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string
	first := true

	for {
		raw, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		line := strings.TrimSpace(raw)
		if first {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	if header.VertexCount > 0 {
		for _, axis := range []string{"x", "y", "z"} {
			if header.vertexIndex(axis) < 0 {
				return nil, fmt.Errorf("vertex property %q missing", axis)
			}
		}
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func (h *PLYHeader) vertexIndex(name string) int {
	for i, p := range h.VertexProps {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func readPLYBody(header *PLYHeader, src valueReader) (*Mesh, error) {
	mesh := &Mesh{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3),
	}

	xi, yi, zi := header.vertexIndex("x"), header.vertexIndex("y"), header.vertexIndex("z")
	values := make([]float64, len(header.VertexProps))
	for i := 0; i < header.VertexCount; i++ {
		for j, prop := range header.VertexProps {
			if prop.IsList {
				if err := skipList(src, prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := src.read(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			values[j] = v
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(values[xi], values[yi], values[zi]))
	}

	var indices []int
	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			isIndexList := prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
			if !isIndexList {
				if err := skipProperty(src, prop); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			n, err := src.read(prop.ListType)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			indices = indices[:0]
			for k := 0; k < int(n); k++ {
				v, err := src.read(prop.DataType)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				idx := int(v)
				if idx < 0 || idx >= len(mesh.Vertices) {
					return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
				}
				indices = append(indices, idx)
			}
			for k := 1; k+1 < len(indices); k++ {
				mesh.Faces = append(mesh.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}
	return mesh, nil
}

func skipProperty(src valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(src, prop)
	}
	_, err := src.read(prop.Type)
	return err
}

func skipList(src valueReader, prop PLYProperty) error {
	n, err := src.read(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(n); k++ {
		if _, err := src.read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// valueReader decodes one scalar of a PLY type
type valueReader interface {
	read(dataType string) (float64, error)
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}
	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

type asciiReader struct {
	r *bufio.Reader
}

func (a *asciiReader) read(dataType string) (float64, error) {
	if getTypeSize(dataType) == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	var token []byte
	for {
		c, err := a.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				break
			}
			return 0, err
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if len(token) > 0 {
				break
			}
			continue
		}
		token = append(token, c)
	}
	return strconv.ParseFloat(string(token), 64)
}

// getTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
