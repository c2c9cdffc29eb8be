package settings

// Boundary is a predicate over the horizontal plane of the world. Renders
// skip columns for which Contains returns false.
type Boundary interface {
	Contains(x, z int) bool
}

// BoundaryFunc is a function that implements Boundary.
type BoundaryFunc func(x, z int) bool

// Contains calls f(x, z).
func (f BoundaryFunc) Contains(x, z int) bool {
	return f(x, z)
}

// Rect is an inclusive rectangular Boundary.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ int
}

// Contains ...
func (r Rect) Contains(x, z int) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Circle is a circular Boundary around a centre. A column at x and z is part
// of the circle if the point (x, z) lies within Radius of the centre.
type Circle struct {
	CentreX, CentreZ int
	Radius           int
}

// Contains ...
func (c Circle) Contains(x, z int) bool {
	dx, dz := int64(x-c.CentreX), int64(z-c.CentreZ)
	r := int64(c.Radius)
	return dx*dx+dz*dz <= r*r
}

// All is a Boundary that contains a column only if all of its Boundaries
// contain it. An empty All contains every column.
type All []Boundary

// Contains ...
func (a All) Contains(x, z int) bool {
	for _, b := range a {
		if !b.Contains(x, z) {
			return false
		}
	}
	return true
}
