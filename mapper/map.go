package mapper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync/atomic"

	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/hires"
	"github.com/df-mc/voxelmap/mapper/hires/blockmodel"
	"github.com/df-mc/voxelmap/mapper/render"
	"github.com/df-mc/voxelmap/mapper/tilestore"
	"github.com/df-mc/voxelmap/mapper/world"
)

// Map is a world together with everything needed to render it into tiles.
type Map struct {
	conf  Config
	world *world.Memory
	sched *render.Scheduler
	store *tilestore.Store
}

// New creates a Map from the Config. The world of the Map is empty until
// Generate is called.
func (conf Config) New() (*Map, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	models, err := blockmodel.Config{Palette: conf.Palette, AmbientLight: conf.Settings.AmbientLight}.New()
	if err != nil {
		return nil, err
	}
	r, err := hires.Config{Settings: conf.Settings, Factory: models.Factory, Log: conf.Log}.New()
	if err != nil {
		return nil, err
	}
	sched, err := render.Config{
		Log:      conf.Log,
		Renderer: r,
		Grid:     conf.Grid,
		Workers:  conf.Workers,
		Metrics:  conf.Metrics,
	}.New()
	if err != nil {
		return nil, err
	}

	storeConf := tilestore.Config{Log: conf.Log}
	var store *tilestore.Store
	if conf.StoreFolder == "" {
		store, err = storeConf.OpenMemory()
	} else {
		store, err = storeConf.Open(conf.StoreFolder)
	}
	if err != nil {
		return nil, err
	}
	return &Map{conf: conf, world: world.NewMemory(conf.WorldRange), sched: sched, store: store}, nil
}

// World returns the world of the Map.
func (m *Map) World() *world.Memory {
	return m.world
}

// Store returns the tile store of the Map.
func (m *Map) Store() *tilestore.Store {
	return m.store
}

// Generate generates the area of the Map.
func (m *Map) Generate() error {
	from, to := m.conf.From, m.conf.To
	m.conf.Log.Info("Generating world.", "from", from, "to", to)
	if err := m.conf.Generator.New().Generate(m.world, from.X(), from.Z(), to.X(), to.Z()); err != nil {
		return fmt.Errorf("generate world: %w", err)
	}
	return nil
}

// Stats holds the amount of tiles handled by Map.Render.
type Stats struct {
	// Written is the amount of tiles whose model changed and was stored.
	Written int
	// Unchanged is the amount of tiles whose model and summary were identical
	// to the stored ones.
	Unchanged int
}

// Render renders all tiles of the area of the Map and stores the tiles that
// changed since they were last stored.
func (m *Map) Render(ctx context.Context) (Stats, error) {
	var written, unchanged atomic.Int64
	tiles := m.sched.Grid().Tiles(m.conf.From, m.conf.To)
	err := m.sched.Render(ctx, m.world, tiles, render.HandlerFunc(func(res render.Result) error {
		pos := cube.ColumnPos{int(res.Tile.X), int(res.Tile.Z)}
		changed, err := m.store.Changed(pos, res.Hash)
		if err != nil {
			return err
		}
		if !changed {
			unchanged.Add(1)
			return nil
		}
		if err := m.store.PutMeta(pos, res.Meta); err != nil {
			return err
		}
		if err := m.store.PutHash(pos, res.Hash); err != nil {
			return err
		}
		written.Add(1)
		return nil
	}))
	stats := Stats{Written: int(written.Load()), Unchanged: int(unchanged.Load())}
	if err != nil {
		return stats, fmt.Errorf("render tiles: %w", err)
	}
	m.conf.Log.Info("Stored tiles.", "written", stats.Written, "unchanged", stats.Unchanged)
	return stats, nil
}

// Overview returns the lowres colours of all stored tiles of the area of the
// Map as a single image. The top left pixel is the column at From.
func (m *Map) Overview() (*image.NRGBA, error) {
	from, to := m.conf.From, m.conf.To
	img := image.NewNRGBA(image.Rect(0, 0, to.X()-from.X()+1, to.Z()-from.Z()+1))
	grid := m.sched.Grid()
	for _, id := range grid.Tiles(from, to) {
		meta, err := m.store.Meta(cube.ColumnPos{int(id.X), int(id.Z)})
		if errors.Is(err, tilestore.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		o := grid.Origin(id)
		at := image.Pt(o.X()-from.X(), o.Z()-from.Z())
		tile := meta.Image()
		draw.Draw(img, tile.Bounds().Add(at), tile, image.Point{}, draw.Src)
	}
	return img, nil
}

// Close closes the tile store of the Map.
func (m *Map) Close() error {
	return m.store.Close()
}
