// Package material enumerates the block materials the generator reads and writes. Values are the legacy numeric
// block ids stored in Anvil chunk sections, so a Material can be written to disk without a lookup table.
package material

import "strconv"

type Material uint8

const (
	Air          Material = 0
	Stone        Material = 1
	Bedrock      Material = 7
	FlowingWater Material = 8
	Water        Material = 9
	FlowingLava  Material = 10
	Lava         Material = 11
	Obsidian     Material = 49
	EndStone     Material = 121
)

var names = map[Material]string{
	Air:          "air",
	Stone:        "stone",
	Bedrock:      "bedrock",
	FlowingWater: "flowing_water",
	Water:        "water",
	FlowingLava:  "flowing_lava",
	Lava:         "lava",
	Obsidian:     "obsidian",
	EndStone:     "end_stone",
}

func (m Material) IsAir() bool {
	return m == Air
}

// IsLiquid reports whether the material is water or lava, still or flowing.
func (m Material) IsLiquid() bool {
	return m >= FlowingWater && m <= Lava
}

// IsSolid reports whether a spawn can stand on the material.
func (m Material) IsSolid() bool {
	return !m.IsAir() && !m.IsLiquid()
}

func (m Material) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return "block#" + strconv.Itoa(int(m))
}
