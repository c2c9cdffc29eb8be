package blockmodel

import (
	"fmt"

	"github.com/brentp/intintmap"
	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/hires"
	"github.com/df-mc/voxelmap/mapper/world"
	"github.com/go-gl/mathgl/mgl32"
)

// liquidHeight is the height of the top face of a liquid without the same
// liquid above it.
const liquidHeight = 14.0 / 16.0

// Factory renders blocks as coloured cubes. A Factory caches palette lookups
// and is not safe for concurrent use: a new one should be obtained from
// Models.Factory for every render.
type Factory struct {
	m     *Models
	cache *intintmap.Map
}

// Render ...
func (f *Factory) Render(b hires.BlockContext, view *hires.BlockModelView, c *colour.Colour) error {
	block := b.Block()
	if block.Air() || block.Void() {
		return nil
	}
	id := f.lookup(block.Name)
	entry := f.m.entries[id]

	top := float32(1)
	if entry.Liquid {
		above, err := b.Neighbour(cube.FaceUp)
		if err != nil {
			return err
		}
		if above.Name != block.Name {
			top = liquidHeight
		}
	}

	model := view.Model()
	for _, face := range cube.Faces() {
		neighbour, err := b.Neighbour(face)
		if err != nil {
			return err
		}
		if f.culled(block, neighbour, face, top) {
			continue
		}
		ao, err := f.occlusion(b, face)
		if err != nil {
			return fmt.Errorf("occlusion %v: %w", face, err)
		}
		corners := quad(face, top)
		tint := mgl32.Vec3{entry.Colour.R, entry.Colour.G, entry.Colour.B}.Mul(shade(face))
		sky, bl := neighbour.SkyLight, neighbour.BlockLight
		if neighbour.Void() {
			sky, bl = b.SkyLight(), b.BlockLight()
		}

		// Every quad is split into two triangles: (0, 1, 2) and (0, 2, 3).
		i := view.Add(2)
		for t, idx := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			tri := i + t
			model.SetPositions(tri, corners[idx[0]], corners[idx[1]], corners[idx[2]])
			model.SetUVs(tri, uvs[idx[0]], uvs[idx[1]], uvs[idx[2]])
			model.SetAO(tri, mgl32.Vec3{ao[idx[0]], ao[idx[1]], ao[idx[2]]})
			model.SetColour(tri, tint)
			model.SetLight(tri, sky, bl)
			model.SetMaterial(tri, id)
		}
	}
	if view.Size() > 0 {
		*c = entry.Colour
	}
	return nil
}

// culled checks if the face of block is hidden by the neighbour on that face.
// The lowered surface of a liquid is never hidden by the block above it.
func (f *Factory) culled(block, neighbour world.Block, face cube.Face, top float32) bool {
	switch {
	case neighbour.Void():
		return true
	case neighbour.Air():
		return false
	case neighbour.Name == block.Name:
		return true
	case face == cube.FaceUp && top < 1:
		return false
	}
	return f.m.entries[f.lookup(neighbour.Name)].Occluding
}

// occlusion returns the ambient occlusion factor of the four corners of a
// face, in the order returned by quad.
func (f *Factory) occlusion(b hires.BlockContext, face cube.Face) ([4]float32, error) {
	var ao [4]float32
	n := face.Offset()
	a, c := tangents(face)
	for i, corner := range quad(face, 1) {
		sa, sc := sign(corner[a]), sign(corner[c])
		var da, dc cube.Pos
		da[a], dc[c] = sa, sc

		side1, err := f.occludes(b, n.Add(da))
		if err != nil {
			return ao, err
		}
		side2, err := f.occludes(b, n.Add(dc))
		if err != nil {
			return ao, err
		}
		diagonal, err := f.occludes(b, n.Add(da).Add(dc))
		if err != nil {
			return ao, err
		}
		level := 3
		if side1 && side2 {
			level = 0
		} else {
			level -= count(side1) + count(side2) + count(diagonal)
		}
		ao[i] = f.m.ambient + (1-f.m.ambient)*float32(level)/3
	}
	return ao, nil
}

// occludes checks if the block at an offset from b is occluding.
func (f *Factory) occludes(b hires.BlockContext, off cube.Pos) (bool, error) {
	block, err := b.Relative(off[0], off[1], off[2])
	if err != nil {
		return false, err
	}
	if block.Air() || block.Void() {
		return false, nil
	}
	return f.m.entries[f.lookup(block.Name)].Occluding, nil
}

var uvs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quad returns the four corners of a face of the unit cube, counter-clockwise
// when looking at the face from outside. top is the height of the cube.
func quad(face cube.Face, top float32) [4]mgl32.Vec3 {
	switch face {
	case cube.FaceDown:
		return [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}
	case cube.FaceUp:
		return [4]mgl32.Vec3{{0, top, 0}, {0, top, 1}, {1, top, 1}, {1, top, 0}}
	case cube.FaceNorth:
		return [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, top, 0}, {1, top, 0}}
	case cube.FaceSouth:
		return [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, top, 1}, {0, top, 1}}
	case cube.FaceWest:
		return [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, top, 1}, {0, top, 0}}
	default:
		return [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, top, 0}, {1, top, 1}}
	}
}

// tangents returns the two axes lying in the plane of a face.
func tangents(face cube.Face) (int, int) {
	switch face {
	case cube.FaceDown, cube.FaceUp:
		return 0, 2
	case cube.FaceNorth, cube.FaceSouth:
		return 0, 1
	default:
		return 1, 2
	}
}

// shade returns the brightness of a face lit from straight above.
func shade(face cube.Face) float32 {
	switch face {
	case cube.FaceUp:
		return 1
	case cube.FaceDown:
		return 0.5
	case cube.FaceNorth, cube.FaceSouth:
		return 0.8
	default:
		return 0.6
	}
}

func sign(v float32) int {
	if v > 0 {
		return 1
	}
	return -1
}

func count(b bool) int {
	if b {
		return 1
	}
	return 0
}
