package models

import (
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/repositories"
)

// UserSession represents a user session for web authentication. The auth
// provider lives on the platform side; this service only verifies the
// signed session it issues.
type UserSession struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
	IsAdmin   bool      `json:"is_admin"`
}

// ProfileDTO is the wire shape of a profile, with the level progress the
// frontend renders as a bar.
type ProfileDTO struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Experience    int64     `json:"experience"`
	Level         int       `json:"level"`
	ExpIntoLevel  int64     `json:"exp_into_level"`
	ExpNextLevel  int64     `json:"exp_next_level"`
	Gems          int64     `json:"gems"`
	Badges        []string  `json:"badges"`
	OwnedFrames   []string  `json:"owned_frames"`
	SelectedFrame string    `json:"selected_frame,omitempty"`
	LastDaily     time.Time `json:"last_daily,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// BadgeDTO is one catalog badge for the frontend.
type BadgeDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	ExpReward   int64  `json:"exp_reward"`
	GemReward   int64  `json:"gem_reward"`
}

// FrameDTO is one catalog frame with its rarity and artwork URL.
type FrameDTO struct {
	Name            string `json:"name"`
	Tier            string `json:"tier"`
	DropWeight      int    `json:"drop_weight"`
	DuplicateRefund int64  `json:"duplicate_refund"`
	ImageURL        string `json:"image_url,omitempty"`
}

// CatalogDTO bundles the static catalogs the frontend needs in one call.
type CatalogDTO struct {
	Badges    []BadgeDTO `json:"badges"`
	Frames    []FrameDTO `json:"frames"`
	CrateCost int64      `json:"crate_cost"`
	DailyGems int64      `json:"daily_gems"`
}

// AwardBadgeRequest is the body of POST /api/profiles/:id/badges.
type AwardBadgeRequest struct {
	BadgeID string `json:"badge_id"`
}

// OpenCrateRequest is the body of POST /api/profiles/:id/crates/open.
// DeclaredCost is what the client believes the crate costs; the server
// rejects the request when it disagrees rather than silently charging a
// different amount. IdempotencyKey guards against double submits.
type OpenCrateRequest struct {
	DeclaredCost   int64  `json:"declared_cost"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// CreateProfileRequest is the body of POST /api/profiles.
type CreateProfileRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// CrateOpenDTO is the wire shape of a crate opening result.
type CrateOpenDTO struct {
	Frame        FrameDTO    `json:"frame"`
	Duplicate    bool        `json:"duplicate"`
	RefundAmount int64       `json:"refund_amount"`
	Profile      *ProfileDTO `json:"profile"`
}

// DailyClaimDTO is the wire shape of a daily reward claim.
type DailyClaimDTO struct {
	GemsAwarded int64       `json:"gems_awarded"`
	Profile     *ProfileDTO `json:"profile"`
}

// BadgeAwardDTO is the wire shape of a badge award.
type BadgeAwardDTO struct {
	Badge     BadgeDTO    `json:"badge"`
	Awarded   bool        `json:"awarded"`
	ExpReward int64       `json:"exp_reward"`
	GemReward int64       `json:"gem_reward"`
	Profile   *ProfileDTO `json:"profile"`
}

// Repositories holds all repository instances for dependency injection
type Repositories struct {
	Profile      repositories.ProfileRepository
	CrateOpening repositories.CrateOpeningRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(
	profile repositories.ProfileRepository,
	crateOpening repositories.CrateOpeningRepository,
) *Repositories {
	return &Repositories{
		Profile:      profile,
		CrateOpening: crateOpening,
	}
}
