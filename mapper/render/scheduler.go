// Package render renders batches of map tiles in parallel. Every worker owns
// the tile model and summary it renders into, so that the only state shared
// between workers is the read-only world and render settings.
package render

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/hires"
	"github.com/df-mc/voxelmap/mapper/lowres"
	"github.com/df-mc/voxelmap/mapper/world"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of rendering a single tile: the region rendered, the
// hires model and lowres summary of the tile and a hash of both.
// Model and Meta are owned by the worker that rendered the tile and are
// reused for its next tile once the Handler returns.
type Result struct {
	Tile     TileID
	Min, Max cube.Pos
	Model    *hires.TileModel
	Meta     *lowres.TileMeta
	Hash     uint64
	Duration time.Duration
}

// Handler handles the Results of a batch. HandleTile is called on the
// goroutine of the worker that rendered the tile, so it may be called from
// multiple goroutines at once.
type Handler interface {
	HandleTile(res Result) error
}

// HandlerFunc is a function implementing Handler.
type HandlerFunc func(res Result) error

// HandleTile ...
func (f HandlerFunc) HandleTile(res Result) error {
	return f(res)
}

// TileError is returned by Scheduler.Render if a tile could not be rendered
// or handled.
type TileError struct {
	Tile TileID
	Err  error
}

// Error ...
func (e *TileError) Error() string {
	return fmt.Sprintf("tile %v: %v", e.Tile, e.Err)
}

// Unwrap ...
func (e *TileError) Unwrap() error {
	return e.Err
}

// Scheduler renders batches of tiles using a fixed amount of workers.
type Scheduler struct {
	conf Config
}

// Grid returns the Grid the Scheduler divides the world with.
func (s *Scheduler) Grid() Grid {
	return s.conf.Grid
}

// Render renders the tiles passed from the world src and passes every Result
// to h. Tiles are started in Morton order. The first error returned by the
// renderer or h stops the batch and is returned as a *TileError. Cancelling
// ctx stops the batch after the tiles currently being rendered.
func (s *Scheduler) Render(ctx context.Context, src world.Source, tiles []TileID, h Handler) error {
	if len(tiles) == 0 {
		return nil
	}
	order := make([]TileID, len(tiles))
	copy(order, tiles)
	sort.Slice(order, func(i, j int) bool {
		return order[i].Morton() < order[j].Morton()
	})

	workers := min(s.conf.Workers, len(order))
	log := s.conf.Log.With("batch", uuid.New().String())
	log.Info("Rendering tiles.", "tiles", len(order), "workers", workers)
	start := time.Now()

	var rendered atomic.Int64
	queue := make(chan TileID)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(queue)
		for i, id := range order {
			select {
			case queue <- id:
			case <-ctx.Done():
				s.conf.Metrics.skipped(len(order) - i)
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			w := s.newWorker(src)
			for id := range queue {
				if err := ctx.Err(); err != nil {
					s.conf.Metrics.skipped(1)
					return err
				}
				if err := s.renderTile(w, id, h); err != nil {
					return err
				}
				rendered.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		log.Error("Tile batch failed.", "rendered", rendered.Load(), "err", err)
		return err
	}
	log.Info("Rendered tiles.", "tiles", rendered.Load(), "duration", time.Since(start))
	return nil
}

// renderTile renders a single tile using w and passes the Result to h.
func (s *Scheduler) renderTile(w *worker, id TileID, h Handler) error {
	s.conf.Metrics.start()
	defer s.conf.Metrics.stop()

	res, err := w.render(id)
	if err == nil {
		err = h.HandleTile(res)
	}
	if err != nil {
		s.conf.Metrics.failed()
		return &TileError{Tile: id, Err: err}
	}
	s.conf.Metrics.rendered(res.Model.Size(), w.columns, res.Duration)
	return nil
}

// worker renders tiles into its own model and summary.
type worker struct {
	s     *Scheduler
	src   world.Source
	model *hires.TileModel
	meta  *lowres.TileMeta

	columns int
	consume hires.TileMetaConsumer
}

func (s *Scheduler) newWorker(src world.Source) *worker {
	w := &worker{
		s:     s,
		src:   src,
		model: hires.NewTileModel(s.conf.ModelCapacity),
		meta:  lowres.NewTileMeta(s.conf.Grid.Size),
	}
	w.consume = hires.TileMetaConsumerFunc(func(x, z int, c colour.Colour, height, light int) {
		w.columns++
		w.meta.Set(x, z, c, height, light)
	})
	return w
}

// render renders the tile id. The Result returned is only valid until the
// next call to render.
func (w *worker) render(id TileID) (Result, error) {
	s := w.s
	start := time.Now()

	w.model.Clear()
	w.meta.Reset(s.conf.Grid.Origin(id))
	w.columns = 0
	lo, hi := s.conf.Grid.Region(id, s.conf.Renderer.Settings().Range())
	if err := s.conf.Renderer.Render(w.src, lo, hi, w.model, w.consume); err != nil {
		return Result{}, err
	}
	hash, err := w.hash()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Tile:     id,
		Min:      lo,
		Max:      hi,
		Model:    w.model,
		Meta:     w.meta,
		Hash:     hash,
		Duration: time.Since(start),
	}, nil
}

// hash returns a hash covering both the model and the summary of the tile
// last rendered. Settings such as block alpha or cave removal change only the
// summary, so the model hash alone does not tell if a tile changed.
func (w *worker) hash() (uint64, error) {
	b, err := w.meta.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("encode tile meta: %w", err)
	}
	d := xxhash.New()
	_ = binary.Write(d, binary.LittleEndian, w.model.Hash())
	_, _ = d.Write(b)
	return d.Sum64(), nil
}
