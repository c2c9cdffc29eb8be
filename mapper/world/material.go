package world

// Material holds the light properties of a block.
type Material struct {
	// Filter is the amount of light levels subtracted from light passing
	// through the block. A Filter of 15 or more makes the block opaque to
	// light. Light passing through air is reduced by 1 per block for block
	// light and not at all for sky light travelling straight down.
	Filter uint8
	// Emission is the light level emitted by the block.
	Emission uint8
}

// Opaque checks if no light passes through the Material.
func (m Material) Opaque() bool {
	return m.Filter >= 15
}

// Materials maps block names to their Material. Names missing from the map
// are treated as opaque blocks without emission.
type Materials map[string]Material

// Material returns the Material of the block with the name passed.
func (m Materials) Material(name string) Material {
	if mat, ok := m[name]; ok {
		return mat
	}
	return Material{Filter: 15}
}

// DefaultMaterials returns the Materials of the blocks named in this package.
func DefaultMaterials() Materials {
	return Materials{
		Air:        {},
		Water:      {Filter: 2},
		Ice:        {Filter: 2},
		Glass:      {},
		StainedRed: {},
		OakLeaves:  {Filter: 1},
		Lava:       {Filter: 15, Emission: 15},
		Glowstone:  {Filter: 15, Emission: 15},
	}
}
