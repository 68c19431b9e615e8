package noise

// ScalePoint multiplies the input coordinates by a per-axis factor before evaluating Source.
type ScalePoint struct {
	Source                 Source
	XScale, YScale, ZScale float64
}

func (s ScalePoint) Eval3(x, y, z float64) float64 {
	return s.Source.Eval3(x*s.XScale, y*s.YScale, z*s.ZScale)
}

// Sample fills a [sizeX][sizeY][sizeZ] array with one value per voxel of the region starting at origin. The
// source is only evaluated on a lattice every rate voxels and the values in between are trilinearly
// interpolated, so voxels on the lattice hold exact samples.
func Sample(src Source, sizeX, sizeY, sizeZ, rate, originX, originY, originZ int) [][][]float64 {
	if rate < 1 {
		rate = 1
	}
	out := make([][][]float64, max(sizeX, 0))
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		for x := range out {
			out[x] = make([][]float64, max(sizeY, 0))
			for y := range out[x] {
				out[x][y] = []float64{}
			}
		}
		return out
	}

	// One extra lattice point per axis so the upper corner of the last cell always exists.
	lx, ly, lz := (sizeX-1)/rate+2, (sizeY-1)/rate+2, (sizeZ-1)/rate+2
	lattice := make([]float64, lx*ly*lz)
	at := func(i, j, k int) int { return (i*ly+j)*lz + k }
	for i := 0; i < lx; i++ {
		for j := 0; j < ly; j++ {
			for k := 0; k < lz; k++ {
				lattice[at(i, j, k)] = src.Eval3(
					float64(originX+i*rate),
					float64(originY+j*rate),
					float64(originZ+k*rate),
				)
			}
		}
	}

	step := float64(rate)
	for x := 0; x < sizeX; x++ {
		out[x] = make([][]float64, sizeY)
		i, tx := x/rate, float64(x%rate)/step
		for y := 0; y < sizeY; y++ {
			row := make([]float64, sizeZ)
			j, ty := y/rate, float64(y%rate)/step
			for z := 0; z < sizeZ; z++ {
				k, tz := z/rate, float64(z%rate)/step
				c00 := lerp(tx, lattice[at(i, j, k)], lattice[at(i+1, j, k)])
				c10 := lerp(tx, lattice[at(i, j+1, k)], lattice[at(i+1, j+1, k)])
				c01 := lerp(tx, lattice[at(i, j, k+1)], lattice[at(i+1, j, k+1)])
				c11 := lerp(tx, lattice[at(i, j+1, k+1)], lattice[at(i+1, j+1, k+1)])
				row[z] = lerp(tz, lerp(ty, c00, c10), lerp(ty, c01, c11))
			}
			out[x][y] = row
		}
	}
	return out
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
