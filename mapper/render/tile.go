package render

import (
	"fmt"

	"github.com/df-mc/voxelmap/mapper/cube"
)

// TileID identifies a tile of a Grid.
type TileID struct {
	X, Z int32
}

// String ...
func (id TileID) String() string {
	return fmt.Sprintf("(%v, %v)", id.X, id.Z)
}

// Morton returns the order value of the tile. Tiles sorted by their Morton
// value are rendered close to the tiles rendered just before them.
func (id TileID) Morton() uint64 {
	return morton2(toUnsigned(id.X), toUnsigned(id.Z))
}

func toUnsigned(v int32) uint32 {
	return uint32(v) ^ (1 << 31)
}

func splitBy1(x uint32) uint64 {
	x64 := uint64(x)
	x64 = (x64 | x64<<16) & 0x0000FFFF0000FFFF
	x64 = (x64 | x64<<8) & 0x00FF00FF00FF00FF
	x64 = (x64 | x64<<4) & 0x0F0F0F0F0F0F0F0F
	x64 = (x64 | x64<<2) & 0x3333333333333333
	x64 = (x64 | x64<<1) & 0x5555555555555555
	return x64
}

func morton2(x, z uint32) uint64 {
	return splitBy1(x) | splitBy1(z)<<1
}

// Grid divides the columns of a world into square tiles of Size by Size
// columns. The tile 0, 0 starts at the column Offset.
type Grid struct {
	Size   int
	Offset cube.ColumnPos
}

// Tile returns the tile holding the column at x, z.
func (g Grid) Tile(x, z int) TileID {
	return TileID{X: int32(floorDiv(x-g.Offset.X(), g.Size)), Z: int32(floorDiv(z-g.Offset.Z(), g.Size))}
}

// Origin returns the lowest column of a tile.
func (g Grid) Origin(id TileID) cube.ColumnPos {
	return cube.ColumnPos{g.Offset.X() + int(id.X)*g.Size, g.Offset.Z() + int(id.Z)*g.Size}
}

// Region returns the inclusive region of a tile, spanning the Y range passed.
func (g Grid) Region(id TileID, ra cube.Range) (lo, hi cube.Pos) {
	o := g.Origin(id)
	return cube.Pos{o.X(), ra.Min(), o.Z()}, cube.Pos{o.X() + g.Size - 1, ra.Max(), o.Z() + g.Size - 1}
}

// Tiles returns all tiles holding at least one column of the inclusive
// area between the columns from and to.
func (g Grid) Tiles(from, to cube.ColumnPos) []TileID {
	lo, hi := g.Tile(from.X(), from.Z()), g.Tile(to.X(), to.Z())
	if lo.X > hi.X || lo.Z > hi.Z {
		return nil
	}
	tiles := make([]TileID, 0, int(hi.X-lo.X+1)*int(hi.Z-lo.Z+1))
	for x := lo.X; x <= hi.X; x++ {
		for z := lo.Z; z <= hi.Z; z++ {
			tiles = append(tiles, TileID{X: x, Z: z})
		}
	}
	return tiles
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
