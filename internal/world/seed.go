package world

// mixSeed folds two seed components into one well-distributed value
// using the splitmix64 finalizer. Floor sub-seeds, retry perturbations,
// and per-world noise salts all derive through this, so one run seed
// reproduces the entire dungeon.
func mixSeed(seed, salt int64) int64 {
	z := uint64(seed) + 0x9E3779B97F4A7C15*(uint64(salt)+1)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// floorSeed derives the deterministic sub-seed for one generation
// attempt of one floor.
func floorSeed(runSeed int64, floor FloorID, attempt int) int64 {
	return mixSeed(mixSeed(runSeed, int64(floor)), int64(attempt))
}
