// Package blockmodel implements the default hires.ModelFactory. Every block
// is rendered as a cube with a single colour from a Palette. Faces hidden by
// neighbouring blocks are culled and the remaining faces are shaded with
// ambient occlusion.
package blockmodel

import (
	"fmt"
	"slices"

	"github.com/brentp/intintmap"
	"github.com/df-mc/voxelmap/mapper/hires"
	"github.com/segmentio/fasthash/fnv1a"
)

// Config holds the configuration of Models.
type Config struct {
	// Palette holds the blocks that may be rendered. If nil, DefaultPalette
	// is used.
	Palette Palette
	// AmbientLight is the minimum brightness of a fully occluded vertex, in
	// the range [0, 1].
	AmbientLight float64
}

// New creates Models from the Config.
func (conf Config) New() (*Models, error) {
	if conf.Palette == nil {
		conf.Palette = DefaultPalette()
	}
	if conf.AmbientLight < 0 || conf.AmbientLight > 1 {
		return nil, fmt.Errorf("blockmodel: ambient light %v not within [0, 1]", conf.AmbientLight)
	}
	m := &Models{ambient: float32(conf.AmbientLight), ids: make(map[string]int32, len(conf.Palette)+1)}
	m.names = make([]string, 0, len(conf.Palette))
	for name := range conf.Palette {
		m.names = append(m.names, name)
	}
	// Material IDs are stable for the same Palette.
	slices.Sort(m.names)
	m.entries = make([]Entry, len(m.names), len(m.names)+1)
	for i, name := range m.names {
		m.entries[i] = conf.Palette[name]
		m.ids[name] = int32(i)
	}
	m.entries = append(m.entries, Missing)
	return m, nil
}

// Models holds the read-only data shared by all factories. It may be used by
// multiple goroutines at once.
type Models struct {
	ambient float32
	names   []string
	entries []Entry
	ids     map[string]int32
}

// Factory returns a new ModelFactory rendering blocks using m. It may be used
// directly as the Factory of a hires.Config.
func (m *Models) Factory() hires.ModelFactory {
	return &Factory{m: m, cache: intintmap.New(64, 0.6)}
}

// Material returns the material ID of the block with the name passed, as set
// on the faces produced for it. Unknown blocks share the ID of Missing.
func (m *Models) Material(name string) int32 {
	if id, ok := m.ids[name]; ok {
		return id
	}
	return int32(len(m.names))
}

// Entry returns the Entry for a material ID.
func (m *Models) Entry(id int32) Entry {
	return m.entries[id]
}

// lookup finds the material ID of a block name through a cache keyed by the
// hash of the name.
func (f *Factory) lookup(name string) int32 {
	h := int64(fnv1a.HashString64(name))
	if id, ok := f.cache.Get(h); ok && (int(id) == len(f.m.names) || f.m.names[id] == name) {
		return int32(id)
	}
	id := f.m.Material(name)
	f.cache.Put(h, int64(id))
	return id
}
