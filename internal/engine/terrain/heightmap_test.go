package terrain

import (
	"errors"
	"testing"
)

func TestGenerateZeroIterations(t *testing.T) {
	g := NewGenerator(1)

	for _, dims := range [][2]int{{1, 1}, {4, 7}, {50, 50}} {
		hm, err := g.Generate(dims[0], dims[1], 0, WaveCosine)
		if err != nil {
			t.Fatalf("Generate(%d, %d, 0): %v", dims[0], dims[1], err)
		}
		if hm.Len() != dims[0] || hm.Width() != dims[1] {
			t.Fatalf("got %dx%d grid, want %dx%d", hm.Len(), hm.Width(), dims[0], dims[1])
		}
		for x := 0; x < hm.Len(); x++ {
			for z := 0; z < hm.Width(); z++ {
				if hm.At(x, z) != 0 {
					t.Fatalf("cell (%d,%d) = %f, want 0", x, z, hm.At(x, z))
				}
			}
		}
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	g := NewGenerator(1)

	cases := [][2]int{{0, 10}, {10, 0}, {-1, 5}, {0, 0}}
	for _, c := range cases {
		if _, err := g.Generate(c[0], c[1], 100, WaveSine); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Generate(%d, %d) error = %v, want ErrInvalidDimension", c[0], c[1], err)
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	for _, kind := range []Displacement{WaveCosine, WaveSine, Displacement(2), Displacement(4)} {
		a, err := NewGenerator(99).Generate(20, 30, 50, kind)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		b, err := NewGenerator(99).Generate(20, 30, 50, kind)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for x := 0; x < a.Len(); x++ {
			for z := 0; z < a.Width(); z++ {
				if a.At(x, z) != b.At(x, z) {
					t.Fatalf("kind %v: cell (%d,%d) differs between identically seeded runs", kind, x, z)
				}
			}
		}
	}
}

func TestGenerateDisplaces(t *testing.T) {
	hm, err := NewGenerator(7).Generate(16, 16, 200, Displacement(3))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	nonzero := false
	for x := 0; x < hm.Len() && !nonzero; x++ {
		for z := 0; z < hm.Width(); z++ {
			if hm.At(x, z) != 0 {
				nonzero = true
				break
			}
		}
	}
	if !nonzero {
		t.Error("200 fault iterations left the grid flat")
	}
}

func TestStepDisplacementQuantized(t *testing.T) {
	// Hard fault steps only ever add or subtract the per-iteration
	// displacement, so after n iterations every cell holds k*0.1 with
	// |k| <= n and k same parity as n.
	const iterations = 9
	hm, err := NewGenerator(3).Generate(8, 8, iterations, Displacement(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for x := 0; x < hm.Len(); x++ {
		for z := 0; z < hm.Width(); z++ {
			steps := hm.At(x, z) / perIteration
			k := int(steps + 0.5*sign(steps))
			if diff := steps - float64(k); diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("cell (%d,%d) = %f is not a multiple of %f", x, z, hm.At(x, z), perIteration)
			}
			if k > iterations || k < -iterations || (iterations-k)%2 != 0 {
				t.Fatalf("cell (%d,%d): impossible step count %d after %d iterations", x, z, k, iterations)
			}
		}
	}
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

func TestIsWave(t *testing.T) {
	if !WaveCosine.IsWave() || !WaveSine.IsWave() {
		t.Error("kinds 0 and 1 are the wave family")
	}
	for _, k := range []Displacement{2, 3, 4, 17} {
		if k.IsWave() {
			t.Errorf("kind %d should be a hard fault", k)
		}
	}
}

func TestRandomDisplacementRange(t *testing.T) {
	g := NewGenerator(5)
	for i := 0; i < 100; i++ {
		k := g.RandomDisplacement()
		if k < 0 || k > 4 {
			t.Fatalf("RandomDisplacement() = %d, want 0..4", k)
		}
	}
}
