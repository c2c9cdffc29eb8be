// Package world implements the read side of a voxel world as consumed by the
// tile renderers: a Source of blocks and light, an in-memory implementation
// and a neighbourhood view of a single block.
package world

import (
	"github.com/df-mc/voxelmap/mapper/cube"
)

// Source is a read-only source of voxels. Implementations must be safe for
// concurrent use by multiple renders, as long as the world is not modified
// while rendering.
type Source interface {
	// MinY returns the lowest Y value with data in the column at x and z.
	MinY(x, z int) int
	// MaxY returns the highest Y value with data in the column at x and z. If
	// MaxY is lower than MinY, the column holds no data.
	MaxY(x, z int) int
	// Block returns the Block at pos. An error is returned if the data at pos
	// could not be read or decoded.
	Block(pos cube.Pos) (Block, error)
}
