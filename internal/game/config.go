package game

// Config holds game configuration options.
type Config struct {
	// Seed for the run. All floor sub-seeds derive from it, so the same
	// seed reproduces the same dungeon. A seed of 0 means a random seed
	// will be generated.
	Seed int64

	// Floor dimensions. Zero values fall back to the world defaults.
	Width, Height int

	// SightRadius overrides the actor's line-of-sight range when > 0.
	SightRadius int
}
