package generator

type Biome struct {
	ID   byte
	Name string
}

// Sky is the only biome of the end dimension.
var Sky = Biome{ID: 9, Name: "the_end"}

type BiomeManager interface {
	BiomeAt(x, z int) Biome
}

// SingleBiome reports the same biome for every column.
type SingleBiome struct {
	Biome Biome
}

func (s SingleBiome) BiomeAt(x, z int) Biome {
	return s.Biome
}
