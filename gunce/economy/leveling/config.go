package leveling

import "github.com/gunceblog/gunce-backend/gunce/economy/utils"

type Config struct {
	// EXP required to leave level N is N * ExpPerLevelStep
	ExpPerLevelStep int64
}

func NewDefaultConfig() *Config {
	return &Config{
		ExpPerLevelStep: utils.ExpPerLevelStep, // Level 1 -> 2 costs 25, level 2 -> 3 costs 50
	}
}
