package generator

// SurfaceHeights reports sea level for every column of the chunk. The end has no ground level to measure.
func (g *EndGenerator) SurfaceHeights(w World, chunkX, chunkZ int) [][]int {
	heights := make([][]int, ChunkSize)
	for x := range heights {
		heights[x] = make([]int, ChunkSize)
		for z := range heights[x] {
			heights[x][z] = SeaLevel
		}
	}
	return heights
}
