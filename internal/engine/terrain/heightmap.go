// Package terrain generates procedural heightmaps using the fault algorithm
// and classifies elevations into terrain colors.
package terrain

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand"
	"time"
)

// ErrInvalidDimension is returned when a heightmap dimension is below 1.
var ErrInvalidDimension = errors.New("terrain: heightmap dimensions must be at least 1x1")

// Displacement selects how each fault line displaces the terrain.
type Displacement int

const (
	// WaveCosine adds a smooth cosine wave around each fault line.
	WaveCosine Displacement = 0
	// WaveSine adds a smooth sine wave around each fault line.
	WaveSine Displacement = 1
	// Values 2-4 (and anything else) apply a hard step across the fault line.
)

// IsWave reports whether the displacement belongs to the smooth wave family.
// Everything outside the two wave kinds is a hard fault step.
func (d Displacement) IsWave() bool {
	return d == WaveCosine || d == WaveSine
}

func (d Displacement) String() string {
	switch d {
	case WaveCosine:
		return "wave-cosine"
	case WaveSine:
		return "wave-sine"
	default:
		return fmt.Sprintf("fault-step(%d)", int(d))
	}
}

// Heightmap is a rectangular grid of elevations, length x width.
type Heightmap struct {
	elevations [][]float64
	length     int
	width      int
}

// NewHeightmap wraps an existing rectangular elevation grid. The outer slice
// runs along X, the inner along Z; every row must have the same width.
func NewHeightmap(elevations [][]float64) (*Heightmap, error) {
	if len(elevations) < 1 || len(elevations[0]) < 1 {
		return nil, fmt.Errorf("%w: got %dx?", ErrInvalidDimension, len(elevations))
	}
	width := len(elevations[0])
	for x, row := range elevations {
		if len(row) != width {
			return nil, fmt.Errorf("terrain: row %d has width %d, want %d", x, len(row), width)
		}
	}
	return &Heightmap{elevations: elevations, length: len(elevations), width: width}, nil
}

// Len returns the grid extent along X.
func (h *Heightmap) Len() int { return h.length }

// Width returns the grid extent along Z.
func (h *Heightmap) Width() int { return h.width }

// At returns the elevation at cell (x, z).
func (h *Heightmap) At(x, z int) float64 { return h.elevations[x][z] }

// Generator produces heightmaps from a random source. Use NewGenerator with a
// fixed seed for reproducible output; NewRandomGenerator for interactive use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a deterministic generator for the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomGenerator returns a time-seeded generator.
func NewRandomGenerator() *Generator {
	return NewGenerator(time.Now().UnixNano())
}

// RandomDisplacement picks one of the five displacement kinds.
func (g *Generator) RandomDisplacement() Displacement {
	return Displacement(g.rng.Intn(5))
}

// perIteration is the elevation contributed by a single fault line.
const perIteration = 0.1

// Generate runs the fault algorithm: iterations random lines are cut through
// the grid, each displacing every cell according to its signed distance from
// the line and the displacement kind. The cumulative sum gives a fractal-like
// terrain. iterations == 0 yields an all-zero grid.
func (g *Generator) Generate(length, width, iterations int, kind Displacement) (*Heightmap, error) {
	if length < 1 || width < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, length, width)
	}

	elevations := make([][]float64, length)
	for x := range elevations {
		elevations[x] = make([]float64, width)
	}

	d := gomath.Sqrt(float64(length*length + width*width))
	waveSize := d / 10.0

	for i := 0; i < iterations; i++ {
		theta := g.rng.Float64() * 2 * gomath.Pi
		a := gomath.Sin(theta)
		b := gomath.Cos(theta)
		c := g.rng.Float64()*d - d/2

		for x := 0; x < length; x++ {
			for z := 0; z < width; z++ {
				dist := a*float64(x) + b*float64(z) - c

				switch kind {
				case WaveCosine:
					elevations[x][z] += perIteration / 2 * gomath.Cos(dist/waveSize*gomath.Pi)
				case WaveSine:
					elevations[x][z] += perIteration / 2 * gomath.Sin(dist/waveSize*gomath.Pi)
				default:
					if dist > 0 {
						elevations[x][z] += perIteration
					} else {
						elevations[x][z] -= perIteration
					}
				}
			}
		}
	}

	return &Heightmap{elevations: elevations, length: length, width: width}, nil
}
