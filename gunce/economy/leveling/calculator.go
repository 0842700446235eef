// Package leveling maps cumulative experience to levels. Pure math, no I/O;
// every profile write recomputes its level through here so the stored level
// can never drift from the stored experience.
package leveling

// Progress describes where an experience total sits in the level curve.
type Progress struct {
	Level       int
	IntoLevel   int64
	NextLevelAt int64
}

type Calculator struct {
	config *Config
}

func NewCalculator(config *Config) *Calculator {
	if config == nil {
		config = NewDefaultConfig()
	}
	return &Calculator{config: config}
}

// ExpRequired returns the experience needed to advance from the given level
// to the next one. Total for all levels >= 1.
func (c *Calculator) ExpRequired(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(level) * c.config.ExpPerLevelStep
}

// LevelOf consumes cumulative experience greedily from level 1 upward.
// The loop terminates because ExpRequired grows with level.
func (c *Calculator) LevelOf(experience int64) Progress {
	if experience < 0 {
		experience = 0
	}

	level := 1
	var consumed int64
	for experience >= consumed+c.ExpRequired(level) {
		consumed += c.ExpRequired(level)
		level++
	}

	return Progress{
		Level:       level,
		IntoLevel:   experience - consumed,
		NextLevelAt: c.ExpRequired(level),
	}
}
