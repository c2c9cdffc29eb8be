package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/df-mc/voxelmap/mapper/cube"
)

// ErrOutOfRange is returned when writing a block outside the Range of a
// Memory world.
var ErrOutOfRange = errors.New("world: position out of range")

// Memory is a Source that keeps all of its columns in memory. Blocks are
// stored as indices into a palette of names shared by all columns.
//
// Memory is not safe for concurrent writes. Once built, it may be read by any
// number of renders at the same time, as long as it is no longer modified.
type Memory struct {
	ra      cube.Range
	columns map[cube.ColumnPos]*column

	names []string
	index map[string]uint16
}

type column struct {
	blocks     []uint16
	blockLight []uint8
	skyLight   []uint8

	// highest is the highest Y value of a non-air block, or ra[0]-1 if the
	// column holds nothing but air.
	highest int
}

// NewMemory creates an empty Memory world with the vertical Range passed.
func NewMemory(ra cube.Range) *Memory {
	return &Memory{
		ra:      ra,
		columns: make(map[cube.ColumnPos]*column),
		names:   []string{Air},
		index:   map[string]uint16{Air: 0},
	}
}

// Range returns the vertical range of the world.
func (m *Memory) Range() cube.Range {
	return m.ra
}

// Columns returns the number of columns holding data.
func (m *Memory) Columns() int {
	return len(m.columns)
}

// MinY returns the lowest Y value of the world if the column at x and z has
// data.
func (m *Memory) MinY(x, z int) int {
	return m.ra[0]
}

// MaxY returns the Y value of the highest non-air block in the column at x
// and z. It is lower than MinY if the column has no data or only holds air.
func (m *Memory) MaxY(x, z int) int {
	c, ok := m.columns[cube.ColumnPos{x, z}]
	if !ok {
		return m.ra[0] - 1
	}
	return c.highest
}

// Block returns the Block at pos. Positions in columns without data and
// below the Range of the world are voids, positions above the Range are air
// with full sky light.
func (m *Memory) Block(pos cube.Pos) (Block, error) {
	if pos[1] > m.ra[1] {
		return Block{Name: Air, SkyLight: 15}, nil
	}
	if pos[1] < m.ra[0] {
		return Block{}, nil
	}
	c, ok := m.columns[pos.Column()]
	if !ok {
		return Block{}, nil
	}
	i := pos[1] - m.ra[0]
	return Block{Name: m.names[c.blocks[i]], BlockLight: c.blockLight[i], SkyLight: c.skyLight[i]}, nil
}

// SetBlock sets the block at pos to the block with the name passed. The
// column is created if it did not yet exist. Light is not updated until
// ComputeLight is called.
func (m *Memory) SetBlock(pos cube.Pos, name string) error {
	if pos.OutOfBounds(m.ra) {
		return fmt.Errorf("set block %v: %w", pos, ErrOutOfRange)
	}
	id, err := m.id(name)
	if err != nil {
		return fmt.Errorf("set block %v: %w", pos, err)
	}
	c := m.column(pos.Column())
	i := pos[1] - m.ra[0]
	c.blocks[i] = id

	if id != 0 && pos[1] > c.highest {
		c.highest = pos[1]
	} else if id == 0 && pos[1] == c.highest {
		for c.highest >= m.ra[0] && c.blocks[c.highest-m.ra[0]] == 0 {
			c.highest--
		}
	}
	return nil
}

// FillColumn sets all blocks of the column at x and z from the Y value from
// up to and including the Y value to, to the block with the name passed.
func (m *Memory) FillColumn(x, z, from, to int, name string) error {
	for y := from; y <= to; y++ {
		if err := m.SetBlock(cube.Pos{x, y, z}, name); err != nil {
			return err
		}
	}
	return nil
}

// SetLight overrides the light levels at pos. It is mostly useful for tests,
// as ComputeLight overwrites all light levels.
func (m *Memory) SetLight(pos cube.Pos, blockLight, skyLight uint8) error {
	if pos.OutOfBounds(m.ra) {
		return fmt.Errorf("set light %v: %w", pos, ErrOutOfRange)
	}
	c := m.column(pos.Column())
	i := pos[1] - m.ra[0]
	c.blockLight[i], c.skyLight[i] = blockLight, skyLight
	return nil
}

func (m *Memory) id(name string) (uint16, error) {
	if id, ok := m.index[name]; ok {
		return id, nil
	}
	if name == "" {
		return 0, errors.New("empty block name")
	}
	if len(m.names) > math.MaxUint16 {
		return 0, fmt.Errorf("palette full, cannot add %v", name)
	}
	id := uint16(len(m.names))
	m.names = append(m.names, name)
	m.index[name] = id
	return id, nil
}

func (m *Memory) column(pos cube.ColumnPos) *column {
	if c, ok := m.columns[pos]; ok {
		return c
	}
	h := m.ra.Height()
	c := &column{
		blocks:     make([]uint16, h),
		blockLight: make([]uint8, h),
		skyLight:   make([]uint8, h),
		highest:    m.ra[0] - 1,
	}
	m.columns[pos] = c
	return c
}
