// Package daily implements the once-per-calendar-day login reward. The
// eligibility window is the calendar date in the service reference location,
// not a rolling 24 hours: a user who claimed at 23:59 may claim again right
// after midnight.
package daily

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy"
	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
	"github.com/gunceblog/gunce-backend/gunce/logger"
	"github.com/uptrace/bun"
)

type Service struct {
	txManager *utils.EconomicTransactionManager
	location  *time.Location
	now       func() time.Time
}

func NewService(txManager *utils.EconomicTransactionManager, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		txManager: txManager,
		location:  location,
		now:       time.Now,
	}
}

// Claim credits the fixed daily gem reward and stamps the claim time. The
// eligibility check and the credit are a single conditional UPDATE keyed on
// the previous claim timestamp, so two same-day claims can never both
// succeed regardless of interleaving.
func (s *Service) Claim(ctx context.Context, userID string) (*models.Profile, error) {
	start := time.Now()
	now := s.now().In(s.location)
	dayStart := startOfDay(now)

	var updated *models.Profile

	err := s.txManager.WithTransaction(ctx, utils.StandardTransactionOptions(), func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*models.Profile)(nil)).
			Set("gems = gems + ?", int64(utils.DailyRewardGems)).
			Set("last_daily_reward = ?", now).
			Set("updated_at = ?", now).
			Where("user_id = ?", userID).
			Where("(last_daily_reward IS NULL OR last_daily_reward < ?)", dayStart).
			Exec(ctx)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			// Either no profile or already claimed today; read back to tell
			// the two apart.
			profile, err := s.txManager.GetProfileForUpdate(ctx, tx, userID)
			if err != nil {
				if errors.Is(err, utils.ErrProfileRowMissing) {
					return economy.ErrProfileNotFound
				}
				return err
			}
			if ClaimedOn(profile.LastDailyReward, now, s.location) {
				return economy.ErrAlreadyClaimed
			}
			// Row exists and looks eligible yet the conditional update
			// missed it; surface as a transient conflict for retry.
			return errors.New("daily claim lost conditional update race")
		}

		profile, err := s.txManager.GetProfileForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogOperation("daily_claim", userID, time.Since(start), nil,
		slog.Int64("gems", updated.Gems))

	return updated, nil
}

// ClaimedOn reports whether last falls on the same calendar date as now in
// the given location. A zero last means never claimed.
func ClaimedOn(last time.Time, now time.Time, loc *time.Location) bool {
	if last.IsZero() {
		return false
	}
	ly, lm, ld := last.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return ly == ny && lm == nm && ld == nd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
