// Package settings holds the read-only render settings shared by all tile
// renders of a map.
package settings

import (
	"errors"
	"fmt"
	"math"

	"github.com/df-mc/voxelmap/mapper/cube"
)

var (
	// ErrInvertedBounds is returned by Validate if a component of Min is
	// bigger than the same component of Max.
	ErrInvertedBounds = errors.New("settings: min bound exceeds max bound")
	// ErrAmbientLight is returned by Validate if AmbientLight is outside the
	// range [0, 1].
	ErrAmbientLight = errors.New("settings: ambient light must be within [0, 1]")
)

// Settings holds the bounds and thresholds used while rendering tiles. A
// Settings value is never modified during rendering, so it may be shared by
// renders running at the same time.
type Settings struct {
	// Min and Max are the inclusive corners of the volume of the world that
	// is rendered. Voxels outside of this volume never produce geometry.
	Min, Max cube.Pos
	// Boundary is an additional, possibly non-rectangular, boundary on the
	// horizontal plane. Columns outside of it are skipped entirely. A nil
	// Boundary does not restrict any column.
	Boundary Boundary
	// RemoveCavesBelowY is the Y value below which voxels only contribute
	// light if they are lit by the light source selected by
	// CaveDetectionUsesBlockLight.
	RemoveCavesBelowY int
	// CaveDetectionUsesBlockLight selects block light instead of sky light to
	// decide if a voxel below RemoveCavesBelowY is part of a cave.
	CaveDetectionUsesBlockLight bool
	// AmbientLight is the minimum light factor applied by geometry factories
	// when shading faces. It must be in the range [0, 1].
	AmbientLight float64
}

// Default returns Settings that render the full integer space without caves
// being removed.
func Default() Settings {
	return Settings{
		Min:               cube.Pos{math.MinInt32, math.MinInt32, math.MinInt32},
		Max:               cube.Pos{math.MaxInt32, math.MaxInt32, math.MaxInt32},
		RemoveCavesBelowY: math.MinInt32,
		AmbientLight:      0.1,
	}
}

// Validate checks if s is usable for rendering. An error is returned if the
// bounds are inverted or the ambient light is out of range.
func (s Settings) Validate() error {
	for i := range s.Min {
		if s.Min[i] > s.Max[i] {
			return fmt.Errorf("%w: min %v, max %v", ErrInvertedBounds, s.Min, s.Max)
		}
	}
	if s.AmbientLight < 0 || s.AmbientLight > 1 || math.IsNaN(s.AmbientLight) {
		return fmt.Errorf("%w: got %v", ErrAmbientLight, s.AmbientLight)
	}
	return nil
}

// Range returns the Y range of the render volume.
func (s Settings) Range() cube.Range {
	return cube.Range{s.Min[1], s.Max[1]}
}

// InsideRenderBoundaries checks if the column at x and z is within the
// Boundary of s. It does not check the rectangular bounds Min and Max.
func (s Settings) InsideRenderBoundaries(x, z int) bool {
	return s.Boundary == nil || s.Boundary.Contains(x, z)
}

// InsideRenderBounds checks if pos is within Min and Max and within the
// Boundary of s.
func (s Settings) InsideRenderBounds(pos cube.Pos) bool {
	for i := range pos {
		if pos[i] < s.Min[i] || pos[i] > s.Max[i] {
			return false
		}
	}
	return s.InsideRenderBoundaries(pos[0], pos[2])
}

// CaveLight returns the light level selected for cave detection from the
// block and sky light passed.
func (s Settings) CaveLight(blockLight, skyLight uint8) uint8 {
	if s.CaveDetectionUsesBlockLight {
		return blockLight
	}
	return skyLight
}
