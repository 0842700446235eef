// Package crates implements the loot-crate draw: spend gems, receive a
// weighted-random avatar frame, or a rarity-scaled refund when the draw is
// a duplicate. The balance check, the debit, the owned-set growth and the
// audit row commit as a single transaction against the profile row.
package crates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/database/repositories"
	"github.com/gunceblog/gunce-backend/gunce/economy"
	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
	"github.com/gunceblog/gunce-backend/gunce/logger"
	"github.com/uptrace/bun"
)

// OpenResult reports everything a successful open decided.
type OpenResult struct {
	Profile      *models.Profile
	Frame        Frame
	Tier         RarityTier
	WasOwned     bool
	RefundAmount int64
}

type Manager struct {
	txManager   *utils.EconomicTransactionManager
	openingRepo repositories.CrateOpeningRepository
	locks       *LockManager

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewManager(txManager *utils.EconomicTransactionManager, openingRepo repositories.CrateOpeningRepository) *Manager {
	return &Manager{
		txManager:   txManager,
		openingRepo: openingRepo,
		locks:       NewLockManager(utils.OpenCooldown),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Locks exposes the in-process lock manager so the caller can start its
// cleanup routine.
func (m *Manager) Locks() *LockManager {
	return m.locks
}

// Open performs one crate draw for the user. The cost is the server price;
// callers validate any client-declared amount against utils.CrateCost
// before getting here. idempotencyKey may be empty; only a committed open
// consumes it, so a retry after a failed open goes through.
func (m *Manager) Open(ctx context.Context, userID string, idempotencyKey string) (*OpenResult, error) {
	start := time.Now()

	if !m.locks.RegisterKey(idempotencyKey) {
		return nil, economy.ErrOpenInProgress
	}
	if ok, _ := m.locks.CanOpen(userID); !ok {
		m.locks.ReleaseKey(idempotencyKey)
		return nil, economy.ErrOpenInProgress
	}
	if !m.locks.LockOpen(userID) {
		m.locks.ReleaseKey(idempotencyKey)
		return nil, economy.ErrOpenInProgress
	}
	defer m.locks.ReleaseOpen(userID)

	cost := int64(utils.CrateCost)
	var result OpenResult

	err := m.txManager.WithTransaction(ctx, utils.SerializableTransactionOptions(), func(ctx context.Context, tx bun.Tx) error {
		profile, err := m.txManager.GetProfileForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, utils.ErrProfileRowMissing) {
				return economy.ErrProfileNotFound
			}
			return err
		}

		if !canAfford(profile, cost) {
			return fmt.Errorf("%w: have %d, need %d", economy.ErrInsufficientFunds, profile.Gems, cost)
		}

		m.rngMu.Lock()
		frame, tier := draw(m.rng)
		m.rngMu.Unlock()

		wasOwned, refund := applyDraw(profile, frame, tier, cost)

		if err := m.txManager.UpdateProfileTx(ctx, tx, profile); err != nil {
			return err
		}

		if err := m.openingRepo.InsertTx(ctx, tx, &models.CrateOpening{
			UserID:       userID,
			FrameName:    frame.Name,
			RarityTier:   tier.Name,
			Cost:         cost,
			Duplicate:    wasOwned,
			RefundAmount: refund,
		}); err != nil {
			return fmt.Errorf("failed to record crate opening: %w", err)
		}

		result = OpenResult{
			Profile:      profile,
			Frame:        frame,
			Tier:         tier,
			WasOwned:     wasOwned,
			RefundAmount: refund,
		}
		return nil
	})
	if err != nil {
		m.locks.ReleaseKey(idempotencyKey)
		return nil, err
	}

	m.locks.SetCooldown(userID)

	logger.LogOperation("open_crate", userID, time.Since(start), nil,
		slog.String("frame", result.Frame.Name),
		slog.String("tier", result.Tier.Name),
		slog.Bool("duplicate", result.WasOwned),
		slog.Int64("refund", result.RefundAmount),
		slog.Int64("gems", result.Profile.Gems))

	return &result, nil
}

// canAfford is the balance gate of an open. It runs against the row-locked
// profile inside the transaction, never against a client-supplied balance.
func canAfford(profile *models.Profile, cost int64) bool {
	return profile.Gems >= cost
}

// applyDraw settles one draw against the profile: duplicates convert to the
// tier refund and leave the owned set alone, new frames join the owned set.
// The ledger moves exactly once: gems - cost + refund.
func applyDraw(profile *models.Profile, frame Frame, tier RarityTier, cost int64) (wasOwned bool, refund int64) {
	wasOwned = profile.OwnsFrame(frame.Name)
	if wasOwned {
		refund = tier.DuplicateRefund
	} else {
		profile.OwnedFrames = append(profile.OwnedFrames, frame.Name)
	}

	profile.Gems = profile.Gems - cost + refund
	return wasOwned, refund
}

// roller is the randomness a draw needs; *rand.Rand satisfies it.
type roller interface {
	Intn(n int) int
}

// draw picks a rarity tier by cumulative weight over [0,100), then a frame
// uniformly within the tier. A tier with no frames falls back to the most
// common tier rather than failing the open.
func draw(rng roller) (Frame, RarityTier) {
	tier := tierForRoll(rng.Intn(100))

	pool := framesByTier[tier.Name]
	if len(pool) == 0 {
		tier = Tiers[0]
		pool = framesByTier[tier.Name]
	}

	return pool[rng.Intn(len(pool))], tier
}
