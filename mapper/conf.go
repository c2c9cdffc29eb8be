// Package mapper ties the parts of the map renderer together: it generates a
// world, renders it tile by tile and keeps the state of every tile in a tile
// store.
package mapper

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/hires/blockmodel"
	"github.com/df-mc/voxelmap/mapper/render"
	"github.com/df-mc/voxelmap/mapper/settings"
	"github.com/df-mc/voxelmap/mapper/world/generator"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config contains the options of a Map.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Generator generates the world that is rendered.
	Generator generator.Config
	// WorldRange is the Y range of the generated world.
	WorldRange cube.Range
	// From and To are the inclusive corners of the area generated and
	// rendered.
	From, To cube.ColumnPos
	// Settings are the render settings.
	Settings settings.Settings
	// Palette holds the colours of all blocks. If nil,
	// blockmodel.DefaultPalette() is used.
	Palette blockmodel.Palette
	// Grid divides the area into tiles.
	Grid render.Grid
	// Workers is the amount of tiles rendered at the same time. If 0, the
	// amount of CPUs is used.
	Workers int
	// StoreFolder is the folder of the tile store. If empty, tiles are only
	// stored in memory.
	StoreFolder string
	// Metrics receives render counters. It may be nil.
	Metrics *render.Metrics
}

// UserConfig is the user configuration of the map renderer. It may be
// serialised as TOML or YAML and can be converted to a Config by calling
// UserConfig.Config().
type UserConfig struct {
	World struct {
		// Seed is the seed of the world generator.
		Seed int64
		// MinY and MaxY are the vertical bounds of the world.
		MinY, MaxY int
		// WaterLevel is the Y value up to which oceans are filled.
		WaterLevel int
		// DisableCaves disables the generation of caves.
		DisableCaves bool
		// MinX, MinZ, MaxX and MaxZ are the inclusive bounds of the area
		// generated and rendered.
		MinX, MinZ, MaxX, MaxZ int
	}
	Render struct {
		// CentreX, CentreZ and Radius describe a circular boundary. Columns
		// outside of it are not rendered. A Radius of 0 disables the
		// boundary.
		CentreX, CentreZ, Radius int
		// MinY and MaxY limit the vertical range rendered.
		MinY, MaxY int
		// RemoveCavesBelowY hides unlit caves below this Y value.
		RemoveCavesBelowY int
		// CaveDetectionUsesBlockLight detects caves by block light instead of
		// sky light.
		CaveDetectionUsesBlockLight bool
		// AmbientLight is the minimum brightness of faces, in the range
		// [0, 1].
		AmbientLight float64
		// TileSize is the width of a tile in columns.
		TileSize int
		// Workers is the amount of tiles rendered at once. Set to 0 to use
		// the amount of CPUs.
		Workers int
	}
	// Palette overrides the colours of blocks, mapping block names to colours
	// in #rrggbb or #rrggbbaa notation.
	Palette map[string]string
	Store struct {
		// Folder is the folder holding the tile store. Leave empty to keep
		// tiles in memory only.
		Folder string
	}
	Metrics struct {
		// Address is the address on which Prometheus metrics are served.
		// Leave empty to disable serving metrics.
		Address string
	}
	Output struct {
		// Overview is the PNG file the lowres overview of the map is written
		// to. Leave empty to not write an overview.
		Overview string
	}
}

// Config converts a UserConfig to a Config. An error is returned if the
// palette or render settings are invalid.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	conf := Config{
		Log: log,
		Generator: generator.Config{
			Seed:         uc.World.Seed,
			WaterLevel:   uc.World.WaterLevel,
			DisableCaves: uc.World.DisableCaves,
		},
		WorldRange:  cube.Range{uc.World.MinY, uc.World.MaxY},
		From:        cube.ColumnPos{uc.World.MinX, uc.World.MinZ},
		To:          cube.ColumnPos{uc.World.MaxX, uc.World.MaxZ},
		Grid:        render.Grid{Size: uc.Render.TileSize},
		Workers:     uc.Render.Workers,
		StoreFolder: uc.Store.Folder,
	}
	if conf.WorldRange.Empty() {
		return conf, fmt.Errorf("invalid world range %v", conf.WorldRange)
	}

	s := settings.Default()
	s.Min[1], s.Max[1] = uc.Render.MinY, uc.Render.MaxY
	s.RemoveCavesBelowY = uc.Render.RemoveCavesBelowY
	s.CaveDetectionUsesBlockLight = uc.Render.CaveDetectionUsesBlockLight
	s.AmbientLight = uc.Render.AmbientLight
	if uc.Render.Radius > 0 {
		s.Boundary = settings.Circle{CentreX: uc.Render.CentreX, CentreZ: uc.Render.CentreZ, Radius: uc.Render.Radius}
	}
	if err := s.Validate(); err != nil {
		return conf, fmt.Errorf("render settings: %w", err)
	}
	conf.Settings = s

	conf.Palette = blockmodel.DefaultPalette()
	for name, hex := range uc.Palette {
		c, err := colour.Hex(strings.TrimSpace(hex))
		if err != nil {
			return conf, fmt.Errorf("palette entry %v: %w", name, err)
		}
		entry, ok := conf.Palette[name]
		if !ok {
			entry.Occluding = c.A >= 1
		}
		entry.Colour = c
		conf.Palette[name] = entry
	}
	return conf, nil
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.Seed = 0
	c.World.MinY, c.World.MaxY = 0, 127
	c.World.WaterLevel = 62
	c.World.MinX, c.World.MinZ = -128, -128
	c.World.MaxX, c.World.MaxZ = 127, 127
	c.Render.MinY, c.Render.MaxY = 0, 127
	c.Render.RemoveCavesBelowY = 55
	c.Render.AmbientLight = 0.1
	c.Render.TileSize = 32
	c.Palette = map[string]string{}
	c.Store.Folder = "tiles"
	c.Output.Overview = "overview.png"
	return c
}

// LoadUserConfig reads the UserConfig from the file passed. Files ending in
// .yaml or .yml are decoded as YAML, all other files as TOML. If the file
// does not exist, it is created holding DefaultConfig().
func LoadUserConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if data, err = encodeUserConfig(path, c); err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	} else if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if yamlFile(path) {
		err = yaml.Unmarshal(data, &c)
	} else {
		err = toml.Unmarshal(data, &c)
	}
	if err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

func encodeUserConfig(path string, c UserConfig) ([]byte, error) {
	if yamlFile(path) {
		return yaml.Marshal(c)
	}
	return toml.Marshal(c)
}

func yamlFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
