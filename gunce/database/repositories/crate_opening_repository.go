package repositories

import (
	"context"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/uptrace/bun"
)

type CrateOpeningRepository interface {
	InsertTx(ctx context.Context, tx bun.Tx, opening *models.CrateOpening) error
	GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*models.CrateOpening, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountDuplicatesSince(ctx context.Context, since time.Time) (int, error)
}

type crateOpeningRepository struct {
	db *bun.DB
}

func NewCrateOpeningRepository(db *bun.DB) CrateOpeningRepository {
	return &crateOpeningRepository{db: db}
}

// InsertTx writes the audit row inside the caller's transaction so the
// ledger update and its record commit or roll back together.
func (r *crateOpeningRepository) InsertTx(ctx context.Context, tx bun.Tx, opening *models.CrateOpening) error {
	opening.OpenedAt = time.Now()
	_, err := tx.NewInsert().Model(opening).Exec(ctx)
	return err
}

func (r *crateOpeningRepository) GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*models.CrateOpening, error) {
	var openings []*models.CrateOpening
	err := r.db.NewSelect().
		Model(&openings).
		Where("user_id = ?", userID).
		Order("opened_at DESC").
		Limit(limit).
		Scan(ctx)
	return openings, err
}

func (r *crateOpeningRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*models.CrateOpening)(nil)).
		Where("opened_at >= ?", since).
		Count(ctx)
}

func (r *crateOpeningRepository) CountDuplicatesSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*models.CrateOpening)(nil)).
		Where("opened_at >= ?", since).
		Where("duplicate = TRUE").
		Count(ctx)
}
