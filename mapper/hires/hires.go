// Package hires renders the detailed geometry of map tiles. A tile is
// rendered by scanning every column of its region from bottom to top, asking
// a ModelFactory for the geometry and colour of every voxel, and compositing
// those colours into a per-column summary that is passed to a
// TileMetaConsumer.
package hires

import (
	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/world"
)

// BlockContext is a read-only view of a single voxel of a world and the
// voxels around it. It is only valid for the duration of a single
// ModelFactory.Render call and must not be retained.
type BlockContext interface {
	// Pos returns the world position of the voxel.
	Pos() cube.Pos
	// Block returns the voxel itself.
	Block() world.Block
	// BlockLight returns the block light level at the voxel.
	BlockLight() uint8
	// SkyLight returns the sky light level at the voxel.
	SkyLight() uint8
	// InsideRenderBounds checks if the voxel should be rendered at all.
	InsideRenderBounds() bool
	// Neighbour returns the voxel directly next to this one on a face.
	Neighbour(face cube.Face) (world.Block, error)
	// Relative returns a voxel at an offset of at most one in every
	// direction.
	Relative(dx, dy, dz int) (world.Block, error)
}

// ModelFactory produces the geometry and colour of single voxels. A
// ModelFactory may hold scratch state and is never used by more than one
// render at the same time.
type ModelFactory interface {
	// Render adds the faces of the voxel b to view, in coordinates relative
	// to the voxel, and sets c to the colour of the voxel as seen from above.
	// c is transparent when Render is called. Render may add no faces at all.
	Render(b BlockContext, view *BlockModelView, c *colour.Colour) error
}

// ModelFactoryFunc is a function implementing ModelFactory.
type ModelFactoryFunc func(b BlockContext, view *BlockModelView, c *colour.Colour) error

// Render ...
func (f ModelFactoryFunc) Render(b BlockContext, view *BlockModelView, c *colour.Colour) error {
	return f(b, view, c)
}

// TileMetaConsumer receives the summary of every column of a rendered tile:
// its composited colour, the highest Y at which a visible voxel was found and
// the light level at the top of the column. Set is called exactly once per
// column, on the goroutine performing the render.
type TileMetaConsumer interface {
	Set(x, z int, c colour.Colour, height, light int)
}

// TileMetaConsumerFunc is a function implementing TileMetaConsumer.
type TileMetaConsumerFunc func(x, z int, c colour.Colour, height, light int)

// Set ...
func (f TileMetaConsumerFunc) Set(x, z int, c colour.Colour, height, light int) {
	f(x, z, c, height, light)
}

// NopTileMetaConsumer is a TileMetaConsumer that discards all column
// summaries.
type NopTileMetaConsumer struct{}

// Set ...
func (NopTileMetaConsumer) Set(int, int, colour.Colour, int, int) {}
