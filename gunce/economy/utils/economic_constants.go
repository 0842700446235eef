package utils

import "time"

// Reward Constants
//
// Reward magnitudes are server constants looked up by action type. They are
// never read from request payloads; a client-declared amount is only an
// integrity check against these values.
const (
	BadgeExpReward  = 50 // EXP granted once per badge
	BadgeGemReward  = 25 // Gems granted once per badge
	DailyRewardGems = 10 // Gems per daily login claim
	CrateCost       = 10 // Gem price of one frame crate
)

// Leveling Constants
const (
	ExpPerLevelStep = 25 // ExpRequired(level) = level * ExpPerLevelStep
)

// Transaction Constants
const (
	DefaultTxTimeout = 30 * time.Second // Default transaction timeout
	CleanupInterval  = 30 * time.Second // Crate lock cleanup ticker interval
	OpenLockDuration = 10 * time.Second // How long an in-flight crate open holds its lock
	OpenCooldown     = 2 * time.Second  // Minimum gap between crate opens per user
)
