package world

import (
	"github.com/df-mc/voxelmap/mapper/cube"
)

// lightNode is a position queued for light spreading.
type lightNode struct {
	pos   cube.Pos
	level uint8
}

// ComputeLight recalculates the block and sky light of all columns in the
// world using the Materials passed. Sky light enters every column from the
// top and travels down without loss through blocks that do not filter
// light. Both kinds of light then spread to neighbouring blocks, losing one
// level per block plus the Filter of the block entered.
func (m *Memory) ComputeLight(mats Materials) {
	filters := make([]Material, len(m.names))
	for i, name := range m.names {
		filters[i] = mats.Material(name)
	}

	var skyQueue, blockQueue []lightNode
	for pos, c := range m.columns {
		clear(c.blockLight)
		clear(c.skyLight)

		top := m.neighbourTop(pos)
		level := uint8(15)
		for y := m.ra[1]; y >= m.ra[0]; y-- {
			i := y - m.ra[0]
			mat := filters[c.blocks[i]]
			level = subtract(level, mat.Filter)
			c.skyLight[i] = level
			if level > 1 && y <= top+1 {
				skyQueue = append(skyQueue, lightNode{pos: cube.Pos{pos[0], y, pos[1]}, level: level})
			}
			if mat.Emission > 0 {
				c.blockLight[i] = mat.Emission
				blockQueue = append(blockQueue, lightNode{pos: cube.Pos{pos[0], y, pos[1]}, level: mat.Emission})
			}
		}
	}
	m.spread(skyQueue, filters, func(c *column) []uint8 { return c.skyLight })
	m.spread(blockQueue, filters, func(c *column) []uint8 { return c.blockLight })
}

// neighbourTop returns the highest non-air Y value of the column at pos and
// its four horizontal neighbours. Sky light above it cannot spread anywhere.
func (m *Memory) neighbourTop(pos cube.ColumnPos) int {
	top := m.ra[0] - 1
	for _, off := range [...]cube.ColumnPos{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if c, ok := m.columns[cube.ColumnPos{pos[0] + off[0], pos[1] + off[1]}]; ok {
			top = max(top, c.highest)
		}
	}
	return top
}

// spread performs a breadth-first flood of light from the nodes in queue.
func (m *Memory) spread(queue []lightNode, filters []Material, levels func(c *column) []uint8) {
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, face := range cube.Faces() {
			side := n.pos.Side(face)
			if side.OutOfBounds(m.ra) {
				continue
			}
			c, ok := m.columns[side.Column()]
			if !ok {
				continue
			}
			i := side[1] - m.ra[0]
			level := subtract(subtract(n.level, 1), filters[c.blocks[i]].Filter)
			l := levels(c)
			if level <= l[i] {
				continue
			}
			l[i] = level
			if level > 1 {
				queue = append(queue, lightNode{pos: side, level: level})
			}
		}
	}
}

func subtract(level, v uint8) uint8 {
	if v >= level {
		return 0
	}
	return level - v
}
