package hires

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	positionSize = 3 * 3
	uvSize       = 3 * 2
	colourSize   = 3
	aoSize       = 3
)

// TileModel holds the geometry of a single map tile. Geometry is stored as a
// list of triangular faces in tile-local coordinates, each with texture
// coordinates, a colour, light levels, ambient occlusion and a material.
//
// A TileModel is owned by a single render at a time and is not safe for
// concurrent use.
type TileModel struct {
	size int

	positions  []float32
	uvs        []float32
	colours    []float32
	skyLight   []uint8
	blockLight []uint8
	ao         []float32
	materials  []int32
}

// NewTileModel returns an empty TileModel with room for the amount of faces
// passed.
func NewTileModel(capacity int) *TileModel {
	m := &TileModel{}
	m.grow(max(capacity, 1))
	return m
}

// Size returns the amount of faces in the model.
func (m *TileModel) Size() int {
	return m.size
}

// Add reserves n new faces at the end of the model and returns the index of
// the first of them. The faces are zeroed.
func (m *TileModel) Add(n int) int {
	start := m.size
	if start+n > len(m.skyLight) {
		m.grow(max(len(m.skyLight)*2, start+n))
	}
	m.size += n
	clear(m.positions[start*positionSize : m.size*positionSize])
	clear(m.uvs[start*uvSize : m.size*uvSize])
	clear(m.colours[start*colourSize : m.size*colourSize])
	clear(m.skyLight[start:m.size])
	clear(m.blockLight[start:m.size])
	clear(m.ao[start*aoSize : m.size*aoSize])
	clear(m.materials[start:m.size])
	return start
}

// Clear removes all faces from the model, keeping its capacity.
func (m *TileModel) Clear() {
	m.size = 0
}

func (m *TileModel) grow(capacity int) {
	m.positions = resize(m.positions, capacity*positionSize)
	m.uvs = resize(m.uvs, capacity*uvSize)
	m.colours = resize(m.colours, capacity*colourSize)
	m.skyLight = resize(m.skyLight, capacity)
	m.blockLight = resize(m.blockLight, capacity)
	m.ao = resize(m.ao, capacity*aoSize)
	m.materials = resize(m.materials, capacity)
}

func resize[T any](s []T, n int) []T {
	r := make([]T, n)
	copy(r, s)
	return r
}

// SetPositions sets the three vertices of a face.
func (m *TileModel) SetPositions(face int, a, b, c mgl32.Vec3) {
	i := face * positionSize
	copy(m.positions[i:], a[:])
	copy(m.positions[i+3:], b[:])
	copy(m.positions[i+6:], c[:])
}

// Positions returns the three vertices of a face.
func (m *TileModel) Positions(face int) [3]mgl32.Vec3 {
	p := m.positions[face*positionSize:]
	return [3]mgl32.Vec3{{p[0], p[1], p[2]}, {p[3], p[4], p[5]}, {p[6], p[7], p[8]}}
}

// SetUVs sets the texture coordinates of the three vertices of a face.
func (m *TileModel) SetUVs(face int, a, b, c mgl32.Vec2) {
	i := face * uvSize
	copy(m.uvs[i:], a[:])
	copy(m.uvs[i+2:], b[:])
	copy(m.uvs[i+4:], c[:])
}

// UVs returns the texture coordinates of a face.
func (m *TileModel) UVs(face int) [3]mgl32.Vec2 {
	p := m.uvs[face*uvSize:]
	return [3]mgl32.Vec2{{p[0], p[1]}, {p[2], p[3]}, {p[4], p[5]}}
}

// SetColour sets the tint of a face.
func (m *TileModel) SetColour(face int, c mgl32.Vec3) {
	copy(m.colours[face*colourSize:], c[:])
}

// Colour returns the tint of a face.
func (m *TileModel) Colour(face int) mgl32.Vec3 {
	p := m.colours[face*colourSize:]
	return mgl32.Vec3{p[0], p[1], p[2]}
}

// SetLight sets the sky and block light levels of a face.
func (m *TileModel) SetLight(face int, sky, block uint8) {
	m.skyLight[face], m.blockLight[face] = sky, block
}

// Light returns the sky and block light levels of a face.
func (m *TileModel) Light(face int) (sky, block uint8) {
	return m.skyLight[face], m.blockLight[face]
}

// SetAO sets the ambient occlusion factor of the three vertices of a face.
func (m *TileModel) SetAO(face int, ao mgl32.Vec3) {
	copy(m.ao[face*aoSize:], ao[:])
}

// AO returns the ambient occlusion factors of a face.
func (m *TileModel) AO(face int) mgl32.Vec3 {
	p := m.ao[face*aoSize:]
	return mgl32.Vec3{p[0], p[1], p[2]}
}

// SetMaterial sets the material index of a face.
func (m *TileModel) SetMaterial(face int, material int32) {
	m.materials[face] = material
}

// Material returns the material index of a face.
func (m *TileModel) Material(face int) int32 {
	return m.materials[face]
}

// Translate moves the faces from start up to, but not including, end by the
// offset passed.
func (m *TileModel) Translate(start, end int, offset mgl32.Vec3) {
	for i := start * positionSize; i < end*positionSize; i += 3 {
		m.positions[i] += offset[0]
		m.positions[i+1] += offset[1]
		m.positions[i+2] += offset[2]
	}
}

// Hash returns a hash of all faces in the model. Two models with the same
// faces in the same order have the same hash.
func (m *TileModel) Hash() uint64 {
	d := xxhash.New()
	n := m.size
	_ = binary.Write(d, binary.LittleEndian, m.positions[:n*positionSize])
	_ = binary.Write(d, binary.LittleEndian, m.uvs[:n*uvSize])
	_ = binary.Write(d, binary.LittleEndian, m.colours[:n*colourSize])
	_, _ = d.Write(m.skyLight[:n])
	_, _ = d.Write(m.blockLight[:n])
	_ = binary.Write(d, binary.LittleEndian, m.ao[:n*aoSize])
	_ = binary.Write(d, binary.LittleEndian, m.materials[:n])
	return d.Sum64()
}
