package hires

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileModelGrow(t *testing.T) {
	m := NewTileModel(1)
	for i := 0; i < 100; i++ {
		f := m.Add(1)
		require.Equal(t, i, f)
		m.SetPositions(f, mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{}, mgl32.Vec3{})
		m.SetLight(f, 15, uint8(i%16))
		m.SetMaterial(f, int32(i))
	}
	assert.Equal(t, 100, m.Size())
	for i := 0; i < 100; i++ {
		assert.Equal(t, float32(i), m.Positions(i)[0].X())
		sky, block := m.Light(i)
		assert.Equal(t, uint8(15), sky)
		assert.Equal(t, uint8(i%16), block)
		assert.Equal(t, int32(i), m.Material(i))
	}
}

func TestTileModelClear(t *testing.T) {
	m := NewTileModel(4)
	f := m.Add(2)
	m.SetColour(f, mgl32.Vec3{1, 1, 1})
	m.SetAO(f, mgl32.Vec3{0.5, 0.5, 0.5})
	m.Clear()
	assert.Zero(t, m.Size())

	// Reused faces are zeroed.
	f = m.Add(1)
	assert.Equal(t, mgl32.Vec3{}, m.Colour(f))
	assert.Equal(t, mgl32.Vec3{}, m.AO(f))
}

func TestTileModelHash(t *testing.T) {
	build := func(y float32) *TileModel {
		m := NewTileModel(1)
		f := m.Add(1)
		m.SetPositions(f, mgl32.Vec3{0, y, 0}, mgl32.Vec3{1, y, 0}, mgl32.Vec3{0, y, 1})
		m.SetUVs(f, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, 1})
		return m
	}
	assert.Equal(t, build(1).Hash(), build(1).Hash())
	assert.NotEqual(t, build(1).Hash(), build(2).Hash())

	// Capacity does not influence the hash.
	m := NewTileModel(64)
	f := m.Add(1)
	m.SetPositions(f, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, 1, 1})
	m.SetUVs(f, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, 1})
	assert.Equal(t, build(1).Hash(), m.Hash())
}

func TestBlockModelView(t *testing.T) {
	m := NewTileModel(2)
	v := NewBlockModelView(m)
	v.Add(1)
	v.Translate(1, 2, 3)

	v.Initialize()
	assert.Zero(t, v.Size())
	assert.Equal(t, 1, v.Start())
	i := v.Add(2)
	assert.Equal(t, 1, i)
	assert.Equal(t, 2, v.Size())
	v.Translate(10, 0, 0)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.Positions(0)[0])
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, m.Positions(1)[0])
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, m.Positions(2)[2])
}
