package cube

// Range represents the height range of a world or column. The first value of
// the Range holds the minimum Y value, the second value holds the maximum Y
// value. Both values are inclusive.
type Range [2]int

// Min returns the minimum Y value of a Range. It is equivalent to Range[0].
func (r Range) Min() int {
	return r[0]
}

// Max returns the maximum Y value of a Range. It is equivalent to Range[1].
func (r Range) Max() int {
	return r[1]
}

// Height returns the total height of the Range, the difference between Max
// and Min plus one. An empty Range has a height of 0.
func (r Range) Height() int {
	return max(0, r[1]-r[0]+1)
}

// Empty checks if the Range holds no Y values at all.
func (r Range) Empty() bool {
	return r[0] > r[1]
}

// Intersect returns the Range of Y values present in both r and o.
func (r Range) Intersect(o Range) Range {
	return Range{max(r[0], o[0]), min(r[1], o[1])}
}
