package world

import (
	"fmt"

	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/settings"
)

// Neighbourhood is a view of a single block of a Source and the blocks
// around it. It is moved through the world with Set and caches the blocks
// read around its current position, so that geometry factories can look at
// neighbours repeatedly without reading the Source again.
//
// A Neighbourhood is not safe for concurrent use.
type Neighbourhood struct {
	src Source
	s   settings.Settings

	pos   cube.Pos
	block Block

	gen    uint32
	stamps [27]uint32
	cache  [27]Block
}

// NewNeighbourhood returns a Neighbourhood reading from src. It must be moved
// to a position using Set before it is used.
func NewNeighbourhood(src Source, s settings.Settings) *Neighbourhood {
	return &Neighbourhood{src: src, s: s}
}

// Set moves the Neighbourhood to pos and reads the block at that position.
// Blocks around pos cached for the previous position are discarded.
func (n *Neighbourhood) Set(pos cube.Pos) error {
	n.gen++
	if n.gen == 0 {
		clear(n.stamps[:])
		n.gen = 1
	}
	n.pos = pos
	b, err := n.src.Block(pos)
	if err != nil {
		return fmt.Errorf("read block %v: %w", pos, err)
	}
	n.block = b
	n.cache[13], n.stamps[13] = b, n.gen
	return nil
}

// Pos returns the current position of the Neighbourhood.
func (n *Neighbourhood) Pos() cube.Pos {
	return n.pos
}

// Block returns the block at the current position.
func (n *Neighbourhood) Block() Block {
	return n.block
}

// BlockLight returns the block light level at the current position.
func (n *Neighbourhood) BlockLight() uint8 {
	return n.block.BlockLight
}

// SkyLight returns the sky light level at the current position.
func (n *Neighbourhood) SkyLight() uint8 {
	return n.block.SkyLight
}

// InsideRenderBounds checks if the current position is within the render
// bounds of the settings and holds data. Voids are never rendered.
func (n *Neighbourhood) InsideRenderBounds() bool {
	return !n.block.Void() && n.s.InsideRenderBounds(n.pos)
}

// Neighbour returns the block directly next to the current position on the
// face passed.
func (n *Neighbourhood) Neighbour(face cube.Face) (Block, error) {
	off := face.Offset()
	return n.Relative(off[0], off[1], off[2])
}

// Relative returns the block at an offset from the current position. Each
// component of the offset must be in the range [-1, 1].
func (n *Neighbourhood) Relative(dx, dy, dz int) (Block, error) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || dz < -1 || dz > 1 {
		panic(fmt.Sprintf("neighbourhood offset (%v,%v,%v) out of range", dx, dy, dz))
	}
	i := (dx+1)*9 + (dy+1)*3 + dz + 1
	if n.stamps[i] == n.gen {
		return n.cache[i], nil
	}
	pos := n.pos.Add(cube.Pos{dx, dy, dz})
	b, err := n.src.Block(pos)
	if err != nil {
		return Block{}, fmt.Errorf("read neighbour %v: %w", pos, err)
	}
	n.cache[i], n.stamps[i] = b, n.gen
	return b, nil
}
