package mapper

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/hires/blockmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMap(t *testing.T, folder string, opts ...func(uc *UserConfig)) *Map {
	t.Helper()
	uc := DefaultConfig()
	uc.World.Seed = 3
	uc.World.MinX, uc.World.MinZ = -16, -16
	uc.World.MaxX, uc.World.MaxZ = 15, 15
	uc.Render.TileSize = 16
	uc.Render.Workers = 2
	uc.Store.Folder = folder
	for _, opt := range opts {
		opt(&uc)
	}

	conf, err := uc.Config(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	m, err := conf.New()
	require.NoError(t, err)
	return m
}

func TestMapRender(t *testing.T) {
	m := testMap(t, "")
	defer m.Close()
	require.NoError(t, m.Generate())

	stats, err := m.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Written: 4}, stats)

	tiles, err := m.Store().Tiles()
	require.NoError(t, err)
	assert.Len(t, tiles, 4)

	meta, err := m.Store().Meta(cube.ColumnPos{-1, -1})
	require.NoError(t, err)
	assert.Equal(t, cube.ColumnPos{-16, -16}, meta.Origin())
	c, height, _ := meta.At(0, 0)
	assert.Greater(t, height, 0)
	assert.NotZero(t, c.A)

	// Nothing changed, so nothing is written again.
	stats, err = m.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Unchanged: 4}, stats)

	img, err := m.Overview()
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
	assert.NotZero(t, img.NRGBAAt(0, 0).A)
	assert.NotZero(t, img.NRGBAAt(31, 31).A)
}

func TestMapStorePersists(t *testing.T) {
	dir := t.TempDir()
	m := testMap(t, dir)
	require.NoError(t, m.Generate())
	_, err := m.Render(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Close())

	m = testMap(t, dir)
	defer m.Close()
	require.NoError(t, m.Generate())
	stats, err := m.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Unchanged: 4}, stats)
}

func TestMapRewritesChangedSummaries(t *testing.T) {
	dir := t.TempDir()
	render := func(opts ...func(uc *UserConfig)) Stats {
		m := testMap(t, dir, opts...)
		defer m.Close()
		require.NoError(t, m.Generate())
		stats, err := m.Render(context.Background())
		require.NoError(t, err)
		return stats
	}
	assert.Equal(t, Stats{Written: 4}, render())

	// Only the alpha of the blocks changes, which leaves the tile models as
	// they were but changes the colours of the columns.
	stats := render(func(uc *UserConfig) {
		for name, entry := range blockmodel.DefaultPalette() {
			c := entry.Colour
			c.A /= 2
			uc.Palette[name] = c.String()
		}
	})
	assert.Greater(t, stats.Written, 0)
}
