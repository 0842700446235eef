// types.go
package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegacyStreaks holds the streak counters of the old platform. Only the
// daily streak survives the import; the rest is informational.
type LegacyStreaks struct {
	Daily float64 `bson:"daily"`
	Visit float64 `bson:"visit"`
}

// LegacyPrefs is the preference blob of the old platform. The selected
// frame lives under profile.frame there.
type LegacyPrefs struct {
	Notifications struct {
		Daily   bool `bson:"daily"`
		Comment bool `bson:"comment"`
		Badge   bool `bson:"badge"`
	} `bson:"notifications"`
	Profile struct {
		Bio   string `bson:"bio"`
		Frame string `bson:"frame"`
		Color string `bson:"color"`
	} `bson:"profile"`
}

// LegacyProfile is a user document in the old platform's MongoDB.
// Numeric fields use float64 because the Node app stored doubles and
// ints interchangeably.
type LegacyProfile struct {
	ID           primitive.ObjectID `bson:"_id"`
	UserID       string             `bson:"user_id"`
	Username     string             `bson:"username"`
	Exp          float64            `bson:"exp"`
	Gems         float64            `bson:"gems"`
	Achievements []string           `bson:"achievements"`
	Frames       []string           `bson:"frames"`
	LastDaily    time.Time          `bson:"lastdaily"`
	Joined       time.Time          `bson:"joined"`
	Streaks      LegacyStreaks      `bson:"streaks"`
	Prefs        LegacyPrefs        `bson:"prefs"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// MigrationStats tracks import progress and issues
type MigrationStats struct {
	Tables         map[string]*TableStats `json:"tables"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time"`
	TotalErrors    int                    `json:"total_errors"`
	TotalSkipped   int                    `json:"total_skipped"`
	TotalProcessed int                    `json:"total_processed"`
}

// TableStats tracks stats for individual tables
type TableStats struct {
	TableName      string          `json:"table_name"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Skipped        int             `json:"skipped"`
	Errors         int             `json:"errors"`
	SkippedRecords []SkippedRecord `json:"skipped_records"`
}

// SkippedRecord tracks why a record was skipped
type SkippedRecord struct {
	Reason    string    `json:"reason"`
	Data      string    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
