package cube

// Face represents the face of a voxel.
type Face int

const (
	// FaceDown represents the bottom face of a voxel.
	FaceDown Face = iota
	// FaceUp represents the top face of a voxel.
	FaceUp
	// FaceNorth represents the north face of a voxel.
	FaceNorth
	// FaceSouth represents the south face of a voxel.
	FaceSouth
	// FaceWest represents the west face of a voxel.
	FaceWest
	// FaceEast represents the east face of a voxel.
	FaceEast
)

// Faces returns a list of all faces, starting with down, then up, then
// north to west.
func Faces() []Face {
	return faces[:]
}

var faces = [...]Face{FaceDown, FaceUp, FaceNorth, FaceSouth, FaceWest, FaceEast}

// Offset returns the position offset of the neighbour on this face.
func (f Face) Offset() Pos {
	switch f {
	case FaceDown:
		return Pos{0, -1, 0}
	case FaceUp:
		return Pos{0, 1, 0}
	case FaceNorth:
		return Pos{0, 0, -1}
	case FaceSouth:
		return Pos{0, 0, 1}
	case FaceWest:
		return Pos{-1, 0, 0}
	case FaceEast:
		return Pos{1, 0, 0}
	}
	panic("invalid face")
}

// Opposite returns the opposite face. FaceDown will return FaceUp, FaceNorth
// will return FaceSouth and FaceWest will return FaceEast, and vice versa.
func (f Face) Opposite() Face {
	switch f {
	default:
		return FaceUp
	case FaceUp:
		return FaceDown
	case FaceNorth:
		return FaceSouth
	case FaceSouth:
		return FaceNorth
	case FaceWest:
		return FaceEast
	case FaceEast:
		return FaceWest
	}
}

// String returns the Face as a string.
func (f Face) String() string {
	switch f {
	case FaceDown:
		return "down"
	case FaceUp:
		return "up"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceWest:
		return "west"
	case FaceEast:
		return "east"
	}
	panic("invalid face")
}
