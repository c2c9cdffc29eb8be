package hires

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/settings"
	"github.com/df-mc/voxelmap/mapper/world"
)

var (
	// ErrInvalidRegion is returned by Renderer.Render if a component of the
	// region minimum is bigger than the same component of the maximum.
	ErrInvalidRegion = errors.New("hires: region min exceeds region max")
	// ErrNoFactory is returned by Config.New if no Factory is set.
	ErrNoFactory = errors.New("hires: no model factory configured")
)

// Config holds the configuration of a Renderer.
type Config struct {
	// Settings are the render settings shared by all tiles rendered.
	Settings settings.Settings
	// Factory returns a new ModelFactory. It is called once for every tile
	// rendered, so that no factory is ever used by two renders at once.
	Factory func() ModelFactory
	// Log is the Logger to use for debug messages. If nil, slog.Default()
	// is used.
	Log *slog.Logger
}

// New creates a Renderer using the Config. An error is returned if the
// settings are invalid or no Factory is set.
func (conf Config) New() (*Renderer, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Factory == nil {
		return nil, ErrNoFactory
	}
	if err := conf.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("hires: %w", err)
	}
	return &Renderer{conf: conf}, nil
}

// Renderer renders regions of a world into a TileModel. A Renderer holds no
// mutable state, so Render may be called from multiple goroutines at once as
// long as each call is passed its own TileModel.
type Renderer struct {
	conf Config
}

// Settings returns the settings the Renderer renders with.
func (r *Renderer) Settings() settings.Settings {
	return r.conf.Settings
}

// Render renders the inclusive region between modelMin and modelMax of w into
// model and passes a summary of every column rendered to meta. Geometry is
// added to model in coordinates relative to the tile anchor, which is
// (modelMin.X(), 0, modelMin.Z()). If meta is nil, column summaries are
// discarded.
//
// The region is clipped to the bounds of the render settings first. Errors
// returned by w or the ModelFactory abort the render, leaving model partially
// filled.
func (r *Renderer) Render(w world.Source, modelMin, modelMax cube.Pos, model *TileModel, meta TileMetaConsumer) error {
	for i := range modelMin {
		if modelMin[i] > modelMax[i] {
			return fmt.Errorf("%w: min %v, max %v", ErrInvalidRegion, modelMin, modelMax)
		}
	}
	if meta == nil {
		meta = NopTileMetaConsumer{}
	}
	s := r.conf.Settings
	lo, hi := modelMin.Max(s.Min), modelMax.Min(s.Max)
	anchorX, anchorZ := modelMin.X(), modelMin.Z()

	var (
		factory      = r.conf.Factory()
		block        = world.NewNeighbourhood(w, s)
		view         = NewBlockModelView(model)
		blockColour  colour.Colour
		columnColour colour.Colour
		start        = model.Size()
	)
	for x := lo.X(); x <= hi.X(); x++ {
		for z := lo.Z(); z <= hi.Z(); z++ {
			columnColour.Reset()
			maxHeight, topLight := 0, 0.0

			if s.InsideRenderBoundaries(x, z) {
				minY, maxY := max(lo.Y(), w.MinY(x, z)), min(hi.Y(), w.MaxY(x, z))
				for y := minY; y <= maxY; y++ {
					pos := cube.Pos{x, y, z}
					if err := block.Set(pos); err != nil {
						return fmt.Errorf("render block %v: %w", pos, err)
					}
					if !block.InsideRenderBounds() {
						continue
					}
					view.Initialize()
					blockColour.Reset()
					if err := factory.Render(block, view, &blockColour); err != nil {
						return fmt.Errorf("render block %v: %w", pos, err)
					}

					if y >= s.RemoveCavesBelowY || s.CaveLight(block.BlockLight(), block.SkyLight()) > 0 {
						if blockColour.A > 0 {
							topLight = math.Floor(topLight * (1 - float64(blockColour.A)))
						}
						topLight = max(topLight, float64(block.BlockLight()))
					} else {
						topLight = 0
					}

					if view.Size() <= 0 {
						continue
					}
					view.Translate(float32(x-anchorX), float32(y), float32(z-anchorZ))
					if blockColour.A > 0 {
						maxHeight = y
						columnColour.Overlay(blockColour.Premultiply())
					}
				}
			}
			meta.Set(x, z, columnColour, maxHeight, int(topLight))
		}
	}
	r.conf.Log.Debug("Rendered tile.", "min", modelMin, "max", modelMax, "faces", model.Size()-start)
	return nil
}
