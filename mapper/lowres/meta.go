// Package lowres collects the per-column summaries produced while rendering
// hires tiles. The summaries make up the coarse overview layer of a map.
package lowres

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
)

// TileMeta holds the colour, height and light of every column of a single
// square tile. It implements hires.TileMetaConsumer.
//
// A TileMeta is not safe for concurrent use.
type TileMeta struct {
	origin cube.ColumnPos
	size   int

	colours []colour.Colour
	heights []int32
	lights  []uint8
}

// NewTileMeta returns a TileMeta for tiles of size by size columns.
func NewTileMeta(size int) *TileMeta {
	if size <= 0 {
		panic(fmt.Sprintf("tile size must be positive, got %v", size))
	}
	return &TileMeta{
		size:    size,
		colours: make([]colour.Colour, size*size),
		heights: make([]int32, size*size),
		lights:  make([]uint8, size*size),
	}
}

// Reset clears all columns and moves the TileMeta to the tile whose lowest
// column is origin.
func (m *TileMeta) Reset(origin cube.ColumnPos) {
	m.origin = origin
	clear(m.colours)
	clear(m.heights)
	clear(m.lights)
}

// Origin returns the world position of the lowest column of the tile.
func (m *TileMeta) Origin() cube.ColumnPos {
	return m.origin
}

// Size returns the width of the tile in columns.
func (m *TileMeta) Size() int {
	return m.size
}

// Set stores the summary of the column at world position x, z. Columns
// outside of the tile are ignored.
func (m *TileMeta) Set(x, z int, c colour.Colour, height, light int) {
	i, ok := m.index(x-m.origin.X(), z-m.origin.Z())
	if !ok {
		return
	}
	m.colours[i] = c.Premultiply()
	m.heights[i] = int32(height)
	m.lights[i] = uint8(min(max(light, 0), math.MaxUint8))
}

// At returns the summary of the column at x, z relative to the origin of the
// tile.
func (m *TileMeta) At(x, z int) (c colour.Colour, height, light int) {
	i, ok := m.index(x, z)
	if !ok {
		panic(fmt.Sprintf("column %v, %v outside tile of size %v", x, z, m.size))
	}
	return m.colours[i], int(m.heights[i]), int(m.lights[i])
}

func (m *TileMeta) index(x, z int) (int, bool) {
	if x < 0 || z < 0 || x >= m.size || z >= m.size {
		return 0, false
	}
	return z*m.size + x, true
}

// Image returns the colours of the tile as an image, with the X axis of the
// world running left to right and the Z axis top to bottom.
func (m *TileMeta) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.size, m.size))
	for z := 0; z < m.size; z++ {
		for x := 0; x < m.size; x++ {
			img.SetNRGBA(x, z, m.colours[z*m.size+x].NRGBA())
		}
	}
	return img
}

// encodedColumnSize is the size of a single encoded column: four float32
// colour channels, an int32 height and a light byte.
const encodedColumnSize = 4*4 + 4 + 1

// MarshalBinary encodes the TileMeta. The encoding holds the size and origin
// of the tile followed by every column in row order.
func (m *TileMeta) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 4*3+len(m.colours)*encodedColumnSize)
	b = binary.LittleEndian.AppendUint32(b, uint32(m.size))
	b = binary.LittleEndian.AppendUint32(b, uint32(int32(m.origin.X())))
	b = binary.LittleEndian.AppendUint32(b, uint32(int32(m.origin.Z())))
	for i, c := range m.colours {
		for _, v := range [4]float32{c.R, c.G, c.B, c.A} {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(m.heights[i]))
		b = append(b, m.lights[i])
	}
	return b, nil
}

// UnmarshalBinary decodes a TileMeta encoded using MarshalBinary. The size
// of m is changed to that of the encoded tile.
func (m *TileMeta) UnmarshalBinary(b []byte) error {
	if len(b) < 12 {
		return errors.New("lowres: tile meta too short")
	}
	size := int(binary.LittleEndian.Uint32(b))
	if size <= 0 || size > 1<<12 || len(b) != 12+size*size*encodedColumnSize {
		return fmt.Errorf("lowres: invalid tile meta of %v bytes for size %v", len(b), size)
	}
	*m = *NewTileMeta(size)
	m.origin = cube.ColumnPos{int(int32(binary.LittleEndian.Uint32(b[4:]))), int(int32(binary.LittleEndian.Uint32(b[8:])))}
	b = b[12:]
	for i := range m.colours {
		var ch [4]float32
		for j := range ch {
			ch[j] = math.Float32frombits(binary.LittleEndian.Uint32(b[j*4:]))
		}
		m.colours[i].Set(ch[0], ch[1], ch[2], ch[3], true)
		m.heights[i] = int32(binary.LittleEndian.Uint32(b[16:]))
		m.lights[i] = b[20]
		b = b[encodedColumnSize:]
	}
	return nil
}
