package core

import "time"

// RuntimeConfig contains per-session settings passed from the CLI or SSH
// server down to the game session.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	Seed     int64         // RNG seed, 0 means time-based
	Interval time.Duration // Delay between autoplay moves
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		Seed:     0,
		Interval: 150 * time.Millisecond,
	}
}

// ResolveSeed returns Seed, or a time-based seed when it is 0.
func (c RuntimeConfig) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
