package world

// Block is a voxel as read from a Source. It holds the name of the block
// state and the light levels at its position. Light levels are in the range
// 0-15, where 0 means no light is present and 15 means fully lit.
type Block struct {
	// Name is the namespaced name of the block, such as "minecraft:stone". A
	// Block without a name is a void: no data is present at its position.
	Name string
	// BlockLight is the light emitted by blocks, such as glowstone, that
	// reaches this position.
	BlockLight uint8
	// SkyLight is the light of the sky that reaches this position.
	SkyLight uint8
}

// Names of blocks produced by the generator and known to the default
// materials and palette.
const (
	Air        = "minecraft:air"
	Stone      = "minecraft:stone"
	Dirt       = "minecraft:dirt"
	Grass      = "minecraft:grass_block"
	Sand       = "minecraft:sand"
	Sandstone  = "minecraft:sandstone"
	Gravel     = "minecraft:gravel"
	Snow       = "minecraft:snow_block"
	Ice        = "minecraft:ice"
	Water      = "minecraft:water"
	Lava       = "minecraft:lava"
	Bedrock    = "minecraft:bedrock"
	Glowstone  = "minecraft:glowstone"
	Glass      = "minecraft:glass"
	OakLeaves  = "minecraft:oak_leaves"
	OakLog     = "minecraft:oak_log"
	Clay       = "minecraft:clay"
	CoalOre    = "minecraft:coal_ore"
	IronOre    = "minecraft:iron_ore"
	Obsidian   = "minecraft:obsidian"
	RedWool    = "minecraft:red_wool"
	GrayWool   = "minecraft:gray_wool"
	StainedRed = "minecraft:red_stained_glass"
)

// Void checks if b holds no data at all.
func (b Block) Void() bool {
	return b.Name == ""
}

// Air checks if b is an air block.
func (b Block) Air() bool {
	return b.Name == Air
}

// Light returns the highest of the block and sky light of b.
func (b Block) Light() uint8 {
	return max(b.BlockLight, b.SkyLight)
}
