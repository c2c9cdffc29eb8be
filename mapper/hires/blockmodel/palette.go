package blockmodel

import (
	"github.com/df-mc/voxelmap/mapper/colour"
	"github.com/df-mc/voxelmap/mapper/world"
)

// Entry describes how blocks with a specific name are rendered.
type Entry struct {
	// Colour is the colour of the block. Its alpha controls how much of the
	// blocks below shine through on the map.
	Colour colour.Colour
	// Occluding blocks hide the faces of the blocks next to them.
	Occluding bool
	// Liquid blocks have a lowered top face unless the same liquid is above.
	Liquid bool
}

// Palette maps block names to their Entry. Air is never rendered and does
// not need an Entry.
type Palette map[string]Entry

// Missing is the Entry used for blocks not present in a Palette.
var Missing = Entry{Colour: colour.MustHex("#ff00dc"), Occluding: true}

// DefaultPalette returns a Palette holding all blocks produced by the world
// generator.
func DefaultPalette() Palette {
	solid := func(hex string) Entry {
		return Entry{Colour: colour.MustHex(hex), Occluding: true}
	}
	return Palette{
		world.Stone:      solid("#7d7d7d"),
		world.Dirt:       solid("#866043"),
		world.Grass:      solid("#5e9d34"),
		world.Sand:       solid("#dbd3a0"),
		world.Sandstone:  solid("#d8cb9b"),
		world.Gravel:     solid("#857f7e"),
		world.Snow:       solid("#f0fbfb"),
		world.Bedrock:    solid("#565656"),
		world.Glowstone:  solid("#f9d49c"),
		world.OakLog:     solid("#6d5533"),
		world.Clay:       solid("#a0a6b3"),
		world.CoalOre:    solid("#737373"),
		world.IronOre:    solid("#887f76"),
		world.Obsidian:   solid("#14121e"),
		world.RedWool:    solid("#a12722"),
		world.GrayWool:   solid("#3e4447"),
		world.Lava:       {Colour: colour.MustHex("#d45a12"), Occluding: true, Liquid: true},
		world.Water:      {Colour: colour.MustHex("#3f76e4b3"), Liquid: true},
		world.Ice:        {Colour: colour.MustHex("#91b7fdcc")},
		world.Glass:      {Colour: colour.MustHex("#c0f5fe33")},
		world.StainedRed: {Colour: colour.MustHex("#993333a0")},
		world.OakLeaves:  {Colour: colour.MustHex("#48b518e6")},
	}
}
