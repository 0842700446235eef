package badges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy"
	"github.com/gunceblog/gunce-backend/gunce/economy/leveling"
	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
	"github.com/gunceblog/gunce-backend/gunce/logger"
	"github.com/uptrace/bun"
)

// AwardResult reports the outcome of a badge award. Awarded is false when
// the badge was already held and nothing changed.
type AwardResult struct {
	Profile *models.Profile
	Badge   Badge
	Awarded bool
}

type Awarder struct {
	txManager  *utils.EconomicTransactionManager
	calculator *leveling.Calculator
}

func NewAwarder(txManager *utils.EconomicTransactionManager, calculator *leveling.Calculator) *Awarder {
	return &Awarder{
		txManager:  txManager,
		calculator: calculator,
	}
}

// Award grants the badge and its fixed EXP and gem reward exactly once.
// Re-awarding a held badge is a no-op, not an error. The badge, the reward
// and the level recomputation commit as one transaction.
func (a *Awarder) Award(ctx context.Context, userID string, badgeID string) (*AwardResult, error) {
	start := time.Now()

	badge, ok := Lookup(badgeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", economy.ErrUnknownBadge, badgeID)
	}

	var result AwardResult
	result.Badge = badge

	err := a.txManager.WithTransaction(ctx, utils.StandardTransactionOptions(), func(ctx context.Context, tx bun.Tx) error {
		profile, err := a.txManager.GetProfileForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, utils.ErrProfileRowMissing) {
				return economy.ErrProfileNotFound
			}
			return err
		}

		if !applyAward(profile, badge, a.calculator) {
			result.Profile = profile
			result.Awarded = false
			return nil
		}

		if err := a.txManager.UpdateProfileTx(ctx, tx, profile); err != nil {
			return err
		}

		result.Profile = profile
		result.Awarded = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogOperation("award_badge", userID, time.Since(start), nil,
		slog.String("badge_id", badgeID),
		slog.Bool("awarded", result.Awarded),
		slog.Int("level", result.Profile.Level))

	return &result, nil
}

// applyAward mutates the profile with the badge and its fixed reward.
// Returns false without touching anything when the badge is already held.
func applyAward(profile *models.Profile, badge Badge, calculator *leveling.Calculator) bool {
	if profile.HasBadge(badge.ID) {
		return false
	}

	profile.Badges = append(profile.Badges, badge.ID)
	profile.Experience += utils.BadgeExpReward
	profile.Gems += utils.BadgeGemReward
	profile.Level = calculator.LevelOf(profile.Experience).Level
	return true
}
