package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/terrascape/internal/logger"
	"github.com/Faultbox/terrascape/pkg/math"
)

// ErrEmptyModel is returned when an OBJ stream yields no usable triangles.
var ErrEmptyModel = errors.New("mesh: model has no triangles")

// LoadOBJ replaces the mesh content with the model from an OBJ file.
func (m *Mesh) LoadOBJ(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	if err := m.ReadOBJ(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.vertices)),
		zap.Int("triangles", len(m.triangles)))
	return nil
}

// ReadOBJ replaces the mesh content with the model read from r. Only the
// vertex ("v"), vertex-normal ("vn") and triangular face ("f") statements are
// honored; faces with more or fewer than three corners are dropped with a
// diagnostic. Negative face indices count backwards from the vertices read so
// far. Normals from the file are used only when they pair one-to-one with the
// vertices, otherwise they are synthesized; texture coordinates are always
// synthesized by sphere mapping.
func (m *Mesh) ReadOBJ(r io.Reader) error {
	m.Clear()

	var fileNormals []math.Vec3
	dropped := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			m.vertices = append(m.vertices, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			fileNormals = append(fileNormals, n)

		case "f":
			if len(fields) != 4 {
				dropped++
				continue
			}
			var tri Triangle
			for i, corner := range fields[1:] {
				idx, err := parseFaceIndex(corner, len(m.vertices))
				if err != nil {
					return fmt.Errorf("line %d: face: %w", lineNo, err)
				}
				tri[i] = idx
			}
			m.triangles = append(m.triangles, tri)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read model: %w", err)
	}

	if dropped > 0 {
		logger.Warn("dropped non-triangular faces", zap.Int("count", dropped))
	}
	if len(m.vertices) == 0 || len(m.triangles) == 0 {
		return ErrEmptyModel
	}

	m.calculateBoundingBox()
	if len(fileNormals) == len(m.vertices) {
		m.normals = fileNormals
	} else {
		m.calculateNormalsByArea()
	}
	m.calculateTexCoordsSphereMapping()
	return nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %q: %w", fields[i], err)
		}
		out[i] = float32(f)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// parseFaceIndex extracts the vertex reference of one face corner
// ("7", "7/1", "7//3" or "-1") and returns it 0-based.
func parseFaceIndex(corner string, vertexCount int) (uint32, error) {
	ref := corner
	if slash := strings.IndexByte(corner, '/'); slash >= 0 {
		ref = corner[:slash]
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", corner, err)
	}
	if idx < 0 {
		idx = vertexCount + 1 + idx
	}
	if idx < 1 || idx > vertexCount {
		return 0, fmt.Errorf("index %d out of range [1,%d]", idx, vertexCount)
	}
	return uint32(idx - 1), nil
}
