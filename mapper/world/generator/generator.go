// Package generator produces procedural terrain in a world.Memory, so that
// maps can be rendered without a saved world.
package generator

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/world"
)

// SmoothSize is the radius of the kernel used to smooth biome elevations.
const SmoothSize = 2

var gaussianKernel = [5][5]float64{
	{1.4715177646858, 2.141045714076, 2.4261226388505, 2.141045714076, 1.4715177646858},
	{2.141045714076, 3.1152031322856, 3.5299876103384, 3.1152031322856, 2.141045714076},
	{2.4261226388505, 3.5299876103384, 4, 3.5299876103384, 2.4261226388505},
	{2.141045714076, 3.1152031322856, 3.5299876103384, 3.1152031322856, 2.141045714076},
	{1.4715177646858, 2.141045714076, 2.4261226388505, 2.141045714076, 1.4715177646858},
}

const (
	biomeScale   = 1.0 / 256
	terrainScale = 1.0 / 64
	caveScale    = 1.0 / 24
	// caveThreshold is the value of 3D noise above which stone is carved
	// into caves.
	caveThreshold = 0.3
)

// Config holds the settings of a Generator.
type Config struct {
	// Seed is the seed of all noise used.
	Seed int64
	// WaterLevel is the highest Y value filled with water in columns whose
	// surface is below it.
	WaterLevel int
	// DisableCaves disables carving caves into the terrain.
	DisableCaves bool
}

// Generator generates terrain using Perlin noise. It is safe for concurrent
// use, as long as separate Generate calls write to separate worlds.
type Generator struct {
	conf Config

	terrain, temperature, rainfall, caves *perlin.Perlin
}

// New creates a Generator using the Config passed. A WaterLevel of 0 is set
// to 62.
func (conf Config) New() *Generator {
	if conf.WaterLevel == 0 {
		conf.WaterLevel = 62
	}
	return &Generator{
		conf:        conf,
		terrain:     perlin.NewPerlin(2, 2, 4, conf.Seed),
		temperature: perlin.NewPerlin(2, 2, 2, conf.Seed+1),
		rainfall:    perlin.NewPerlin(2, 2, 2, conf.Seed+2),
		caves:       perlin.NewPerlin(2, 2, 3, conf.Seed+3),
	}
}

// Generate fills all columns from minX, minZ up to and including maxX, maxZ
// of the world passed and computes its light afterwards.
func (g *Generator) Generate(w *world.Memory, minX, minZ, maxX, maxZ int) error {
	if minX > maxX || minZ > maxZ {
		return fmt.Errorf("generate: invalid area (%v,%v)-(%v,%v)", minX, minZ, maxX, maxZ)
	}
	ra := w.Range()
	biomes := make(map[cube.ColumnPos]Biome)
	biomeAt := func(x, z int) Biome {
		pos := cube.ColumnPos{x, z}
		if b, ok := biomes[pos]; ok {
			return b
		}
		b := g.pickBiome(x, z)
		biomes[pos] = b
		return b
	}

	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			b := biomeAt(x, z)
			height := min(g.height(x, z, biomeAt), ra[1]-8)
			if err := g.column(w, x, z, height, b); err != nil {
				return fmt.Errorf("generate column (%v,%v): %w", x, z, err)
			}
		}
	}
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			b := biomeAt(x, z)
			if b.Trees() == 0 || g.hash(x, 0, z)%1000 >= uint64(b.Trees()) {
				continue
			}
			if err := g.tree(w, x, z, minX, minZ, maxX, maxZ); err != nil {
				return fmt.Errorf("generate tree (%v,%v): %w", x, z, err)
			}
		}
	}
	w.ComputeLight(world.DefaultMaterials())
	return nil
}

// height returns the surface height at x and z, smoothing the elevation of
// the surrounding biomes with a Gaussian kernel.
func (g *Generator) height(x, z int, biomeAt func(x, z int) Biome) int {
	var minSum, maxSum, weightSum float64
	for sx := -SmoothSize; sx <= SmoothSize; sx++ {
		for sz := -SmoothSize; sz <= SmoothSize; sz++ {
			weight := gaussianKernel[sx+SmoothSize][sz+SmoothSize]
			lo, hi := biomeAt(x+sx, z+sz).Elevation()
			minSum += float64(lo) * weight
			maxSum += float64(hi) * weight
			weightSum += weight
		}
	}
	minSum /= weightSum
	maxSum /= weightSum

	n := noise01(g.terrain.Noise2D(float64(x)*terrainScale, float64(z)*terrainScale))
	return int(minSum + (maxSum-minSum)*n)
}

func (g *Generator) column(w *world.Memory, x, z, height int, b Biome) error {
	ra := w.Range()
	cover := b.GroundCover()
	for y := ra[0]; y <= max(height, g.conf.WaterLevel); y++ {
		name := world.Stone
		switch {
		case y == ra[0]:
			name = world.Bedrock
		case y > height:
			name = world.Water
			if _, ok := b.(IcePlains); ok && y == g.conf.WaterLevel {
				name = world.Ice
			}
		case height-y < len(cover):
			name = cover[height-y]
			if name == world.Grass && y < g.conf.WaterLevel {
				name = world.Dirt
			}
		case !g.conf.DisableCaves && y > ra[0]+1 && y < height-len(cover)-2 && g.cave(x, y, z):
			name = world.Air
			if y < ra[0]+8 {
				name = world.Lava
			} else if g.hash(x, y, z)%97 == 0 {
				name = world.Glowstone
			}
		case y < height-len(cover) && g.hash(x, y, z)%61 == 0:
			name = world.CoalOre
			if y < ra[0]+48 && g.hash(z, y, x)%3 == 0 {
				name = world.IronOre
			}
		}
		if err := w.SetBlock(cube.Pos{x, y, z}, name); err != nil {
			return err
		}
	}
	return nil
}

// tree grows a small tree on top of the column at x and z. Leaves outside of
// the generated area are left out.
func (g *Generator) tree(w *world.Memory, x, z, minX, minZ, maxX, maxZ int) error {
	base := w.MaxY(x, z)
	ground, err := w.Block(cube.Pos{x, base, z})
	if err != nil {
		return err
	}
	if ground.Name != world.Grass && ground.Name != world.Snow {
		return nil
	}
	trunk := 4 + int(g.hash(x, base, z)%3)
	ra := w.Range()
	if base+trunk+2 > ra[1] {
		return nil
	}
	for dy := 1; dy <= trunk; dy++ {
		if err := w.SetBlock(cube.Pos{x, base + dy, z}, world.OakLog); err != nil {
			return err
		}
	}
	top := base + trunk
	for lx := x - 2; lx <= x+2; lx++ {
		for lz := z - 2; lz <= z+2; lz++ {
			if lx < minX || lx > maxX || lz < minZ || lz > maxZ {
				continue
			}
			for ly := top - 1; ly <= top+1; ly++ {
				r := 2
				if ly == top+1 {
					r = 1
				}
				if abs(lx-x) > r || abs(lz-z) > r || (lx == x && lz == z && ly < top+1) {
					continue
				}
				pos := cube.Pos{lx, ly, lz}
				if b, err := w.Block(pos); err != nil {
					return err
				} else if !b.Air() && !b.Void() {
					continue
				}
				if err := w.SetBlock(pos, world.OakLeaves); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Generator) cave(x, y, z int) bool {
	return g.caves.Noise3D(float64(x)*caveScale, float64(y)*caveScale*2, float64(z)*caveScale) > caveThreshold
}

// pickBiome selects a biome based on the temperature and rainfall at x and
// z. The position is jittered slightly to produce less regular borders.
func (g *Generator) pickBiome(x, z int) Biome {
	hash := int64(x)*2345803 ^ int64(z)*9236449 ^ g.conf.Seed
	hash *= hash + 223
	xNoise := hash >> 20 & 3
	zNoise := hash >> 22 & 3
	if xNoise == 3 {
		xNoise = 1
	}
	if zNoise == 3 {
		zNoise = 1
	}
	fx, fz := float64(int64(x)+xNoise-1)*biomeScale, float64(int64(z)+zNoise-1)*biomeScale

	temperature := noise01(g.temperature.Noise2D(fx, fz))
	rainfall := noise01(g.rainfall.Noise2D(fx, fz))
	switch {
	case temperature < 0.3:
		return IcePlains{}
	case rainfall > 0.7:
		return Ocean{}
	case temperature > 0.7 && rainfall < 0.4:
		return Desert{}
	case temperature < 0.4:
		return Mountains{}
	case rainfall > 0.5:
		return Forest{}
	}
	return Plains{}
}

func (g *Generator) hash(x, y, z int) uint64 {
	h := uint64(int64(x)*73856093^int64(y)*19349663^int64(z)*83492791^g.conf.Seed) * 0x9e3779b97f4a7c15
	return h ^ h>>29
}

func noise01(v float64) float64 {
	return min(1, max(0, (v+1)/2))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
