package cube

import (
	"fmt"
)

// Pos holds the position of a voxel. The position is represented of an array
// with an x, y and z value, where the y value is positive.
type Pos [3]int

// String converts the Pos to a string in the format (1,2,3) and returns it.
func (p Pos) String() string {
	return fmt.Sprintf("(%v,%v,%v)", p[0], p[1], p[2])
}

// X returns the X coordinate of the voxel position.
func (p Pos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the voxel position.
func (p Pos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the voxel position.
func (p Pos) Z() int {
	return p[2]
}

// Column returns the ColumnPos the Pos is part of.
func (p Pos) Column() ColumnPos {
	return ColumnPos{p[0], p[2]}
}

// OutOfBounds checks if the Y value is either bigger than r[1] or smaller
// than r[0].
func (p Pos) OutOfBounds(r Range) bool {
	y := p[1]
	return y > r[1] || y < r[0]
}

// Add adds two positions together and returns a new one with the combined
// values.
func (p Pos) Add(pos Pos) Pos {
	return Pos{p[0] + pos[0], p[1] + pos[1], p[2] + pos[2]}
}

// Sub subtracts pos from p and returns the result.
func (p Pos) Sub(pos Pos) Pos {
	return Pos{p[0] - pos[0], p[1] - pos[1], p[2] - pos[2]}
}

// Min returns the componentwise minimum of p and pos.
func (p Pos) Min(pos Pos) Pos {
	return Pos{min(p[0], pos[0]), min(p[1], pos[1]), min(p[2], pos[2])}
}

// Max returns the componentwise maximum of p and pos.
func (p Pos) Max(pos Pos) Pos {
	return Pos{max(p[0], pos[0]), max(p[1], pos[1]), max(p[2], pos[2])}
}

// Side returns the position on the side of this voxel position, at a specific
// face.
func (p Pos) Side(face Face) Pos {
	return p.Add(face.Offset())
}

// ColumnPos holds the horizontal position of a column of voxels.
type ColumnPos [2]int

// X returns the X coordinate of the column.
func (p ColumnPos) X() int {
	return p[0]
}

// Z returns the Z coordinate of the column.
func (p ColumnPos) Z() int {
	return p[1]
}

// String converts the ColumnPos to a string in the format (1,2).
func (p ColumnPos) String() string {
	return fmt.Sprintf("(%v,%v)", p[0], p[1])
}
