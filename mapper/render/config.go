package render

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/df-mc/voxelmap/mapper/hires"
)

// Config holds the tunable parameters of a Scheduler.
type Config struct {
	// Log is the Logger used for batch progress. If nil, slog.Default() is
	// used.
	Log *slog.Logger
	// Renderer renders the hires model of every tile.
	Renderer *hires.Renderer
	// Grid divides the world into tiles. If Grid.Size is 0 or less, tiles of
	// 32 by 32 columns are used.
	Grid Grid
	// Workers is the amount of tiles rendered at the same time. If 0 or less,
	// runtime.GOMAXPROCS(0) is used.
	Workers int
	// ModelCapacity is the amount of faces every worker initially allocates
	// for its tile model.
	ModelCapacity int
	// Metrics receives render counters. It may be nil.
	Metrics *Metrics
}

// New creates a Scheduler using the Config.
func (conf Config) New() (*Scheduler, error) {
	if conf.Renderer == nil {
		return nil, errors.New("render: scheduler requires a renderer")
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Grid.Size <= 0 {
		conf.Grid.Size = 32
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.GOMAXPROCS(0)
	}
	if conf.ModelCapacity <= 0 {
		conf.ModelCapacity = 4096
	}
	return &Scheduler{conf: conf}, nil
}
