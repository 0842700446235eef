package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CrateOpening is the audit row written in the same transaction as every
// successful crate open. It is append-only.
type CrateOpening struct {
	bun.BaseModel `bun:"table:crate_openings,alias:co"`

	ID           int64     `bun:"id,pk,autoincrement"`
	UserID       string    `bun:"user_id,notnull"`
	FrameName    string    `bun:"frame_name,notnull"`
	RarityTier   string    `bun:"rarity_tier,notnull"`
	Cost         int64     `bun:"cost,notnull"`
	Duplicate    bool      `bun:"duplicate,notnull,default:false"`
	RefundAmount int64     `bun:"refund_amount,notnull,default:0"`
	OpenedAt     time.Time `bun:"opened_at,notnull,default:current_timestamp"`
}
