package terrain

import (
	"testing"

	"github.com/Faultbox/terrascape/pkg/math"
)

func TestColorForFaultBands(t *testing.T) {
	tests := []struct {
		height float64
		want   math.Vec3
	}{
		{-10, DeepWater},
		{-7.0, ShallowWater}, // band limits are exclusive upper bounds
		{-5, ShallowWater},
		{-3.5, Sand},
		{-1, LowLand},
		{2, Grass},
		{6, Forest},
		{8.5, Mountain},
		{9.5, Rock},
		{10, Snow},
		{42, Snow},
	}

	for _, tt := range tests {
		if got := ColorFor(tt.height, Displacement(2)); got != tt.want {
			t.Errorf("ColorFor(%f, fault) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestColorForWaveBands(t *testing.T) {
	tests := []struct {
		height float64
		want   math.Vec3
	}{
		{-8, ShallowWater}, // no deep water in the wave table
		{-5, Sand},
		{-4, LowLand},
		{-2, Grass},
		{0, Forest},
		{1, Mountain},
		{3, Rock},
		{5, Snow},
	}

	for _, tt := range tests {
		if got := ColorFor(tt.height, WaveSine); got != tt.want {
			t.Errorf("ColorFor(%f, wave) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestColorFamiliesDiffer(t *testing.T) {
	// The same mid-range elevation classifies differently per family.
	h := 1.0
	if ColorFor(h, WaveCosine) == ColorFor(h, Displacement(3)) {
		t.Errorf("wave and fault band tables should disagree at height %f", h)
	}
}
