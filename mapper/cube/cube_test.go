package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPos(t *testing.T) {
	p := Pos{1, -2, 3}
	assert.Equal(t, "(1,-2,3)", p.String())
	assert.Equal(t, ColumnPos{1, 3}, p.Column())
	assert.Equal(t, Pos{2, 0, 6}, p.Add(Pos{1, 2, 3}))
	assert.Equal(t, Pos{0, -4, 0}, p.Sub(Pos{1, 2, 3}))
	assert.Equal(t, Pos{0, -2, 3}, p.Min(Pos{0, 5, 9}))
	assert.Equal(t, Pos{1, 5, 9}, p.Max(Pos{0, 5, 9}))
	assert.True(t, p.OutOfBounds(Range{0, 15}))
	assert.False(t, p.OutOfBounds(Range{-2, -2}))
}

func TestFaces(t *testing.T) {
	for _, f := range Faces() {
		assert.Equal(t, Pos{}, f.Offset().Add(f.Opposite().Offset()), "face %v", f)
		assert.Equal(t, f, f.Opposite().Opposite())
	}
	assert.Equal(t, Pos{0, 65, 0}, Pos{0, 64, 0}.Side(FaceUp))
	assert.Equal(t, "east", FaceEast.String())
}

func TestRange(t *testing.T) {
	r := Range{-64, 319}
	assert.Equal(t, 384, r.Height())
	assert.False(t, r.Empty())
	assert.Equal(t, Range{0, 127}, r.Intersect(Range{0, 127}))

	empty := r.Intersect(Range{400, 500})
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Height())
}
