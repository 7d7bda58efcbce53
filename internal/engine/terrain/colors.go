package terrain

import "github.com/Faultbox/terrascape/pkg/math"

// Named terrain colors used by the elevation band tables.
var (
	DeepWater    = math.Vec3{X: 0.0, Y: 0.0, Z: 0.5}
	ShallowWater = math.Vec3{X: 0.0, Y: 0.5, Z: 1.0}
	Sand         = math.Vec3{X: 0.93, Y: 0.87, Z: 0.5}
	LowLand      = math.Vec3{X: 0.2, Y: 0.8, Z: 0.2}
	Grass        = math.Vec3{X: 0.0, Y: 0.6, Z: 0.0}
	Forest       = math.Vec3{X: 0.0, Y: 0.4, Z: 0.0}
	Mountain     = math.Vec3{X: 0.6, Y: 0.4, Z: 0.2}
	Rock         = math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	Snow         = math.Vec3{X: 1.0, Y: 1.0, Z: 1.0}
)

// colorBand maps elevations below Limit to Color. Bands are checked in order;
// the final band of each table is an unconditional catch-all.
type colorBand struct {
	Limit float64
	Color math.Vec3
}

// faultBands is the table for hard fault-step terrain. The thresholds are
// tuned to the elevation range the step displacement produces.
var faultBands = []colorBand{
	{-7.0, DeepWater},
	{-4.0, ShallowWater},
	{-3.0, Sand},
	{0.0, LowLand},
	{5.0, Grass},
	{8.0, Forest},
	{9.0, Mountain},
	{10.0, Rock},
}

// waveBands is the table for the smooth wave displacements. Deep water is
// dropped and the thresholds compressed: wave terrain stays much flatter
// than fault-step terrain.
var waveBands = []colorBand{
	{-5.5, ShallowWater},
	{-4.5, Sand},
	{-3.5, LowLand},
	{-1.5, Grass},
	{0.5, Forest},
	{2.0, Mountain},
	{3.5, Rock},
}

// ColorFor classifies an elevation into a terrain color. The band table is
// selected by the displacement family that generated the terrain.
func ColorFor(height float64, kind Displacement) math.Vec3 {
	bands := faultBands
	if kind.IsWave() {
		bands = waveBands
	}
	for _, band := range bands {
		if height < band.Limit {
			return band.Color
		}
	}
	return Snow
}
