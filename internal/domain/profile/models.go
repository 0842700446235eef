package profile

import (
	"time"
)

// Summary is the domain view of a profile: persisted state joined with the
// derived leveling numbers and resolved badge names.
type Summary struct {
	UserID        string      `json:"user_id"`
	Username      string      `json:"username"`
	Experience    int64       `json:"experience"`
	Level         int         `json:"level"`
	ExpIntoLevel  int64       `json:"exp_into_level"`
	ExpNextLevel  int64       `json:"exp_next_level"`
	Gems          int64       `json:"gems"`
	Badges        []BadgeInfo `json:"badges"`
	OwnedFrames   []string    `json:"owned_frames"`
	SelectedFrame string      `json:"selected_frame,omitempty"`
	LastDaily     time.Time   `json:"last_daily,omitempty"`
	MemberSince   time.Time   `json:"member_since"`
}

// BadgeInfo is a held badge resolved against the catalog.
type BadgeInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// RankedProfile is one leaderboard row.
type RankedProfile struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Experience int64  `json:"experience"`
	Level      int    `json:"level"`
}
