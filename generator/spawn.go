package generator

// NotFound is returned by HighestSolidBlock for columns without a usable surface.
const NotFound = -1

const (
	spawnAttempts = 10
	spawnRange    = 16
)

// FallbackSpawn is used when no random column near the origin has a surface.
var FallbackSpawn = Point{X: 0, Y: 80, Z: 0}

// SafeSpawn probes random columns around the origin and returns the first one standing on a solid block.
// The columns are drawn from an unseeded source; spawn placement does not need to be reproducible.
func (g *EndGenerator) SafeSpawn(w World) Point {
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		x := g.intn(2*spawnRange) - spawnRange
		z := g.intn(2*spawnRange) - spawnRange
		if y := HighestSolidBlock(w, x, z); y != NotFound {
			return Point{X: float64(x), Y: float64(y) + 0.5, Z: float64(z)}
		}
	}
	return FallbackSpawn
}

// HighestSolidBlock descends the column from the top of the world through air and returns the height just above
// the first solid block. Liquids and reaching the bottom of the world both yield NotFound.
func HighestSolidBlock(w World, x, z int) int {
	y := w.HeightLimit() - 1
	if y <= 0 {
		return NotFound
	}
	for {
		m := w.BlockMaterialAt(x, y, z)
		if m.IsSolid() {
			return y + 1
		}
		if m.IsLiquid() {
			return NotFound
		}
		y--
		if y <= 0 {
			return NotFound
		}
	}
}
