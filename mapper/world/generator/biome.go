package generator

import (
	"github.com/df-mc/voxelmap/mapper/world"
)

// Biome describes the shape and surface of the terrain in an area.
type Biome interface {
	// Name returns a readable name of the biome.
	Name() string
	// Elevation returns the range of surface heights of the biome.
	Elevation() (min, max int)
	// GroundCover returns the blocks placed on top of the stone of the biome,
	// from the surface downwards.
	GroundCover() []string
	// Trees returns the chance, out of 1000, that a tree grows on a column.
	Trees() int
}

// grassy is embedded by biomes covered with grass and dirt.
type grassy struct{}

func (grassy) GroundCover() []string {
	return []string{world.Grass, world.Dirt, world.Dirt, world.Dirt}
}

func (grassy) Trees() int {
	return 0
}

type Ocean struct{}

func (Ocean) Name() string { return "ocean" }

func (Ocean) Elevation() (min, max int) {
	return 46, 58
}

func (Ocean) GroundCover() []string {
	return []string{world.Gravel, world.Gravel, world.Clay, world.Gravel}
}

func (Ocean) Trees() int { return 0 }

type Plains struct {
	grassy
}

func (Plains) Name() string { return "plains" }

func (Plains) Elevation() (min, max int) {
	return 63, 68
}

type Forest struct {
	grassy
}

func (Forest) Name() string { return "forest" }

func (Forest) Elevation() (min, max int) {
	return 63, 81
}

func (Forest) Trees() int { return 20 }

type Desert struct{}

func (Desert) Name() string { return "desert" }

func (Desert) Elevation() (min, max int) {
	return 63, 74
}

func (Desert) GroundCover() []string {
	return []string{world.Sand, world.Sand, world.Sand, world.Sandstone, world.Sandstone}
}

func (Desert) Trees() int { return 0 }

type Mountains struct {
	grassy
}

func (Mountains) Name() string { return "mountains" }

func (Mountains) Elevation() (min, max int) {
	return 63, 127
}

type IcePlains struct{}

func (IcePlains) Name() string { return "ice_plains" }

func (IcePlains) Elevation() (min, max int) {
	return 63, 74
}

func (IcePlains) GroundCover() []string {
	return []string{world.Snow, world.Dirt, world.Dirt, world.Dirt}
}

func (IcePlains) Trees() int { return 2 }
