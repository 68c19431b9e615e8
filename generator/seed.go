package generator

const seedMultiplier = 23

// NoiseSeed derives the noise seed for a world seed. Multiplying by an odd constant is a bijection on 64-bit
// integers, so distinct world seeds keep distinct noise. In legacy mode the world seed is first truncated to 32
// bits and the product wraps at 32 bits, which collapses seeds that share their low word.
func NoiseSeed(seed int64, legacy bool) int64 {
	if legacy {
		return int64(int32(seed) * seedMultiplier)
	}
	return seed * seedMultiplier
}
