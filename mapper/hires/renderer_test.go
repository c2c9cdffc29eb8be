package hires

import (
	"errors"
	"testing"

	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/settings"
	"github.com/df-mc/voxelmap/mapper/world"
	"github.com/df-mc/voxelmap/mapper/world/generator"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatFactory adds a single face for every block it has a colour for and
// sets the colour of the block to it.
type flatFactory map[string]colour.Colour

func (f flatFactory) Render(b BlockContext, view *BlockModelView, c *colour.Colour) error {
	col, ok := f[b.Block().Name]
	if !ok {
		return nil
	}
	*c = col
	i := view.Add(1)
	view.Model().SetPositions(i, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	return nil
}

var (
	grey = colour.RGBA(0.5, 0.5, 0.5, 1)
	red  = colour.RGBA(1, 0, 0, 1)
	tint = colour.RGBA(0, 0, 1, 0.5)

	testFactory = flatFactory{
		world.Stone:      grey,
		world.GrayWool:   grey,
		world.RedWool:    red,
		world.StainedRed: tint,
	}
)

type summary struct {
	c             colour.Colour
	height, light int
}

// recorder records every column summary it receives.
type recorder struct {
	columns map[cube.ColumnPos]summary
	calls   int
}

func newRecorder() *recorder {
	return &recorder{columns: map[cube.ColumnPos]summary{}}
}

func (r *recorder) Set(x, z int, c colour.Colour, height, light int) {
	r.calls++
	r.columns[cube.ColumnPos{x, z}] = summary{c: c, height: height, light: light}
}

func newRenderer(t *testing.T, s settings.Settings, f ModelFactory) *Renderer {
	t.Helper()
	r, err := Config{Settings: s, Factory: func() ModelFactory { return f }}.New()
	require.NoError(t, err)
	return r
}

func TestConfigNew(t *testing.T) {
	_, err := Config{Settings: settings.Default()}.New()
	assert.ErrorIs(t, err, ErrNoFactory)

	s := settings.Default()
	s.Min, s.Max = cube.Pos{1, 0, 0}, cube.Pos{0, 0, 0}
	_, err = Config{Settings: s, Factory: func() ModelFactory { return testFactory }}.New()
	assert.ErrorIs(t, err, settings.ErrInvertedBounds)
}

func TestRenderInvalidRegion(t *testing.T) {
	calls := 0
	r, err := Config{Settings: settings.Default(), Factory: func() ModelFactory {
		calls++
		return testFactory
	}}.New()
	require.NoError(t, err)

	rec := newRecorder()
	err = r.Render(world.NewMemory(cube.Range{0, 15}), cube.Pos{0, 5, 0}, cube.Pos{3, 4, 3}, NewTileModel(1), rec)
	assert.ErrorIs(t, err, ErrInvalidRegion)
	assert.Zero(t, rec.calls)
	assert.Zero(t, calls)
}

func TestRenderOutsideBoundary(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 15})
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			require.NoError(t, w.FillColumn(x, z, 0, 5, world.Stone))
		}
	}
	s := settings.Default()
	s.Boundary = settings.Rect{MinX: 0, MinZ: 0, MaxX: 1, MaxZ: 3}

	model, rec := NewTileModel(16), newRecorder()
	require.NoError(t, newRenderer(t, s, testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{3, 15, 3}, model, rec))

	assert.Equal(t, 16, rec.calls)
	for pos, sum := range rec.columns {
		if pos.X() > 1 {
			assert.Equal(t, summary{}, sum, "column %v outside boundary", pos)
			continue
		}
		assert.Equal(t, 5, sum.height, "column %v inside boundary", pos)
	}
	// 2 columns wide, 4 deep, 6 blocks high.
	require.Equal(t, 2*4*6, model.Size())
	for i := 0; i < model.Size(); i++ {
		assert.Less(t, model.Positions(i)[0].X(), float32(2))
	}
}

func TestRenderEmptyColumn(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 15})
	require.NoError(t, w.SetBlock(cube.Pos{1, 3, 1}, world.Stone))
	require.NoError(t, w.SetBlock(cube.Pos{1, 3, 1}, world.Air))

	model, rec := NewTileModel(1), newRecorder()
	require.NoError(t, newRenderer(t, settings.Default(), testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{1, 15, 1}, model, rec))

	assert.Equal(t, 4, rec.calls)
	for pos, sum := range rec.columns {
		assert.Equal(t, summary{}, sum, "column %v", pos)
	}
	assert.Zero(t, model.Size())
}

func TestRenderStackedOpaqueBlocks(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 31})
	require.NoError(t, w.SetBlock(cube.Pos{0, 10, 0}, world.GrayWool))
	require.NoError(t, w.SetBlock(cube.Pos{0, 12, 0}, world.RedWool))
	require.NoError(t, w.SetLight(cube.Pos{0, 10, 0}, 3, 0))
	require.NoError(t, w.SetLight(cube.Pos{0, 12, 0}, 7, 0))

	s := settings.Default()
	s.RemoveCavesBelowY = 0

	rec := newRecorder()
	require.NoError(t, newRenderer(t, s, testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{0, 31, 0}, NewTileModel(2), rec))

	sum := rec.columns[cube.ColumnPos{0, 0}]
	assert.Equal(t, 12, sum.height)
	assert.Equal(t, red.Premultiply(), sum.c)
	assert.Equal(t, 7, sum.light)
}

func TestRenderCompositingOrder(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 15})
	require.NoError(t, w.SetBlock(cube.Pos{0, 2, 0}, world.RedWool))
	require.NoError(t, w.SetBlock(cube.Pos{0, 3, 0}, world.StainedRed))
	require.NoError(t, w.SetBlock(cube.Pos{1, 2, 0}, world.StainedRed))
	require.NoError(t, w.SetBlock(cube.Pos{1, 3, 0}, world.RedWool))

	rec := newRecorder()
	require.NoError(t, newRenderer(t, settings.Default(), testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{1, 15, 0}, NewTileModel(4), rec))

	// Translucent blue over red.
	sum := rec.columns[cube.ColumnPos{0, 0}]
	assert.Equal(t, 3, sum.height)
	assert.InDelta(t, 0.5, sum.c.R, 1e-6)
	assert.InDelta(t, 0, sum.c.G, 1e-6)
	assert.InDelta(t, 0.5, sum.c.B, 1e-6)
	assert.InDelta(t, 1, sum.c.A, 1e-6)

	// Opaque red over translucent blue hides the blue entirely.
	sum = rec.columns[cube.ColumnPos{1, 0}]
	assert.Equal(t, 3, sum.height)
	assert.Equal(t, red.Premultiply(), sum.c)
}

func TestRenderLightAttenuation(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 15})
	require.NoError(t, w.SetBlock(cube.Pos{0, 4, 0}, world.Stone))
	require.NoError(t, w.SetBlock(cube.Pos{0, 5, 0}, world.StainedRed))
	require.NoError(t, w.SetLight(cube.Pos{0, 4, 0}, 9, 0))
	require.NoError(t, w.SetLight(cube.Pos{0, 5, 0}, 6, 0))

	rec := newRecorder()
	require.NoError(t, newRenderer(t, settings.Default(), testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{0, 15, 0}, NewTileModel(2), rec))

	// max(floor(9 * (1 - 0.5)), 6) = 6, where floor(max(9, 6) * 0.5) would
	// be 4.
	assert.Equal(t, 6, rec.columns[cube.ColumnPos{0, 0}].light)

	require.NoError(t, w.SetLight(cube.Pos{0, 5, 0}, 2, 0))
	rec = newRecorder()
	require.NoError(t, newRenderer(t, settings.Default(), testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{0, 15, 0}, NewTileModel(2), rec))
	assert.Equal(t, 4, rec.columns[cube.ColumnPos{0, 0}].light)
}

func TestRenderCaveBlanking(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 31})
	require.NoError(t, w.SetBlock(cube.Pos{0, 3, 0}, world.Stone))
	require.NoError(t, w.SetBlock(cube.Pos{0, 6, 0}, world.Stone))
	require.NoError(t, w.SetLight(cube.Pos{0, 3, 0}, 8, 4))
	require.NoError(t, w.SetLight(cube.Pos{0, 4, 0}, 0, 4))
	require.NoError(t, w.SetLight(cube.Pos{0, 5, 0}, 0, 4))
	require.NoError(t, w.SetLight(cube.Pos{0, 6, 0}, 2, 0))

	s := settings.Default()
	s.RemoveCavesBelowY = 20

	render := func(s settings.Settings) summary {
		rec := newRecorder()
		require.NoError(t, newRenderer(t, s, testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{0, 31, 0}, NewTileModel(2), rec))
		return rec.columns[cube.ColumnPos{0, 0}]
	}

	// The unlit block at y=6 hides the light found at y=3.
	assert.Equal(t, 0, render(s).light)

	// With block light selected, y=6 is lit by its own block light.
	bs := s
	bs.CaveDetectionUsesBlockLight = true
	assert.Equal(t, 2, render(bs).light)

	// A lit block higher up the column counts again.
	require.NoError(t, w.SetBlock(cube.Pos{0, 8, 0}, world.Stone))
	require.NoError(t, w.SetLight(cube.Pos{0, 8, 0}, 5, 3))
	assert.Equal(t, 5, render(s).light)
	assert.Equal(t, 8, render(s).height)
}

func TestRenderEmptyBlockBlanksCave(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 31})
	require.NoError(t, w.SetBlock(cube.Pos{0, 3, 0}, world.Stone))
	require.NoError(t, w.SetBlock(cube.Pos{0, 5, 0}, world.Glass))
	require.NoError(t, w.SetLight(cube.Pos{0, 3, 0}, 8, 4))
	require.NoError(t, w.SetLight(cube.Pos{0, 4, 0}, 0, 0))
	require.NoError(t, w.SetLight(cube.Pos{0, 5, 0}, 0, 4))

	s := settings.Default()
	s.RemoveCavesBelowY = 20
	render := func() (summary, int) {
		rec, model := newRecorder(), NewTileModel(2)
		require.NoError(t, newRenderer(t, s, testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{0, 31, 0}, model, rec))
		return rec.columns[cube.ColumnPos{0, 0}], model.Size()
	}

	// The air at y=4 adds no geometry, but without sky light it still
	// removes the light of the stone below.
	sum, faces := render()
	assert.Equal(t, 1, faces)
	assert.Equal(t, 3, sum.height)
	assert.Equal(t, 0, sum.light)

	require.NoError(t, w.SetLight(cube.Pos{0, 4, 0}, 0, 4))
	sum, _ = render()
	assert.Equal(t, 8, sum.light)
}

// voidWorld hides the data of all blocks at one Y value of a world.
type voidWorld struct {
	*world.Memory
	y int
}

func (w voidWorld) Block(pos cube.Pos) (world.Block, error) {
	if pos.Y() == w.y {
		return world.Block{}, nil
	}
	return w.Memory.Block(pos)
}

func TestRenderSkipsVoids(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 31})
	require.NoError(t, w.FillColumn(0, 0, 0, 6, world.Stone))
	require.NoError(t, w.SetLight(cube.Pos{0, 5, 0}, 4, 2))

	s := settings.Default()
	s.RemoveCavesBelowY = 20

	rec, model := newRecorder(), NewTileModel(2)
	require.NoError(t, newRenderer(t, s, testFactory).Render(voidWorld{Memory: w, y: 6}, cube.Pos{0, 0, 0}, cube.Pos{0, 31, 0}, model, rec))

	// The void at y=6 is neither rendered nor does it remove the light
	// found at y=5.
	assert.Equal(t, 6, model.Size())
	sum := rec.columns[cube.ColumnPos{0, 0}]
	assert.Equal(t, 5, sum.height)
	assert.Equal(t, 4, sum.light)
	assert.Equal(t, grey.Premultiply(), sum.c)
}

func TestRenderTranslatesGeometry(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 31})
	require.NoError(t, w.SetBlock(cube.Pos{20, 7, -30}, world.Stone))

	model := NewTileModel(1)
	require.NoError(t, newRenderer(t, settings.Default(), testFactory).Render(w, cube.Pos{16, 0, -32}, cube.Pos{31, 31, -17}, model, nil))

	require.Equal(t, 1, model.Size())
	assert.Equal(t, [3]mgl32.Vec3{{4, 7, 2}, {5, 7, 2}, {4, 8, 2}}, model.Positions(0))
}

func TestRenderClipsToSettings(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 31})
	for x := 0; x < 8; x++ {
		require.NoError(t, w.FillColumn(x, 0, 0, 12, world.Stone))
	}
	s := settings.Default()
	s.Min, s.Max = cube.Pos{2, 0, 0}, cube.Pos{5, 10, 0}

	model, rec := NewTileModel(1), newRecorder()
	require.NoError(t, newRenderer(t, s, testFactory).Render(w, cube.Pos{0, 0, 0}, cube.Pos{7, 31, 7}, model, rec))

	assert.Equal(t, 4, rec.calls)
	assert.Equal(t, 4*11, model.Size())
	for x := 2; x <= 5; x++ {
		assert.Equal(t, 10, rec.columns[cube.ColumnPos{x, 0}].height)
	}
	// Tile coordinates stay relative to the requested region.
	assert.Equal(t, float32(2), model.Positions(0)[0].X())
}

func TestRenderIdempotent(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 127})
	require.NoError(t, generator.Config{Seed: 42}.New().Generate(w, 0, 0, 15, 15))

	f := flatFactory{
		world.Stone: grey, world.Grass: colour.MustHex("#5e9d34"), world.Sand: colour.MustHex("#dbd3a0"),
		world.Water: colour.MustHex("#3f76e4aa"), world.OakLeaves: colour.MustHex("#48b518cc"),
	}
	r := newRenderer(t, settings.Default(), f)

	m1, rec1 := NewTileModel(1), newRecorder()
	m2, rec2 := NewTileModel(1024), newRecorder()
	require.NoError(t, r.Render(w, cube.Pos{0, 0, 0}, cube.Pos{15, 127, 15}, m1, rec1))
	require.NoError(t, r.Render(w, cube.Pos{0, 0, 0}, cube.Pos{15, 127, 15}, m2, rec2))

	assert.NotZero(t, m1.Size())
	assert.Equal(t, m1.Size(), m2.Size())
	assert.Equal(t, m1.Hash(), m2.Hash())
	assert.Equal(t, rec1.columns, rec2.columns)
	assert.Equal(t, 256, rec1.calls)
}

func TestRenderFactoryPerCall(t *testing.T) {
	calls := 0
	r, err := Config{Settings: settings.Default(), Factory: func() ModelFactory {
		calls++
		return testFactory
	}}.New()
	require.NoError(t, err)

	w := world.NewMemory(cube.Range{0, 15})
	require.NoError(t, w.FillColumn(0, 0, 0, 3, world.Stone))
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Render(w, cube.Pos{0, 0, 0}, cube.Pos{1, 15, 1}, NewTileModel(1), nil))
	}
	assert.Equal(t, 3, calls)
}

var errMalformed = errors.New("malformed block")

type failingWorld struct{ *world.Memory }

func (failingWorld) Block(pos cube.Pos) (world.Block, error) {
	return world.Block{}, errMalformed
}

func TestRenderPropagatesErrors(t *testing.T) {
	w := world.NewMemory(cube.Range{0, 15})
	require.NoError(t, w.FillColumn(0, 0, 0, 3, world.Stone))

	failing := ModelFactoryFunc(func(b BlockContext, view *BlockModelView, c *colour.Colour) error {
		if b.Pos().Y() == 2 {
			return errMalformed
		}
		return testFactory.Render(b, view, c)
	})
	rec := newRecorder()
	err := newRenderer(t, settings.Default(), failing).Render(w, cube.Pos{0, 0, 0}, cube.Pos{0, 15, 0}, NewTileModel(1), rec)
	assert.ErrorIs(t, err, errMalformed)
	assert.Zero(t, rec.calls)

	assert.ErrorContains(t, err, "render block")

	err = newRenderer(t, settings.Default(), testFactory).Render(failingWorld{w}, cube.Pos{0, 0, 0}, cube.Pos{0, 15, 0}, NewTileModel(1), nil)
	assert.ErrorIs(t, err, errMalformed)
	assert.ErrorContains(t, err, "render block")
}
