package mathx

// Deterministic integer hashing for seeded draws. Stable across versions and
// platforms: never swap these for math/rand, chunk regeneration depends on
// the exact output.

// Hash64 mixes a 64-bit input into a well-distributed 64-bit output
// (splitmix64 finalizer).
func Hash64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Hash2 returns a stable hash for 2D integer coordinates plus a seed.
func Hash2(seed int64, x, z int) uint64 {
	h := uint64(seed)
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(int64(z)) * 0xc2b2ae3d27d4eb4f
	return Hash64(h)
}

// Unit maps a hash to a float in [0, 1).
func Unit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
