package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Profile is the persisted economic state of one platform user. The user_id
// comes from the auth provider and is opaque to this service; all economy
// operations key on it.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID       int64  `bun:"id,pk,autoincrement"`
	UserID   string `bun:"user_id,notnull,unique"`
	Username string `bun:"username,notnull"`

	Experience int64 `bun:"experience,notnull,default:0"`
	Level      int   `bun:"level,notnull,default:1"`
	Gems       int64 `bun:"gems,notnull,default:0"`

	// Sets stored as JSONB
	Badges      []string `bun:"badges,type:jsonb"`
	OwnedFrames []string `bun:"owned_frames,type:jsonb"`

	// SelectedFrame must be a member of OwnedFrames; the economy engine only
	// reads it, the profile editor elsewhere writes it.
	SelectedFrame string `bun:"selected_frame"`

	LastDailyReward time.Time `bun:"last_daily_reward,nullzero"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// HasBadge reports whether the badge is already held.
func (p *Profile) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// OwnsFrame reports whether the cosmetic frame is already owned.
func (p *Profile) OwnsFrame(name string) bool {
	for _, f := range p.OwnedFrames {
		if f == name {
			return true
		}
	}
	return false
}
