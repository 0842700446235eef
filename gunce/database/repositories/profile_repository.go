package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/uptrace/bun"
)

// ProfileRepository covers the reads and the create the service performs
// outside a transaction. Every profile mutation after creation goes through
// the transaction manager, so there is no bare Update here.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetTopByExperience(ctx context.Context, limit int) ([]*models.Profile, error)
}

type profileRepository struct {
	db *bun.DB
}

func NewProfileRepository(db *bun.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	if profile.Level < 1 {
		profile.Level = 1
	}
	_, err := r.db.NewInsert().Model(profile).Exec(ctx)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	slog.Debug("ProfileRepository.GetByUserID called",
		slog.String("type", "db"),
		slog.String("operation", "GetByUserID"),
		slog.String("user_id", userID))

	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Profile not found in database",
				slog.String("type", "db"),
				slog.String("operation", "GetByUserID"),
				slog.String("user_id", userID),
				slog.String("error", "sql.ErrNoRows"))
		} else {
			slog.Error("Database error when getting profile",
				slog.String("type", "db"),
				slog.String("operation", "GetByUserID"),
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		}
		return profile, err
	}

	return profile, nil
}

func (r *profileRepository) GetTopByExperience(ctx context.Context, limit int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.NewSelect().
		Model(&profiles).
		OrderExpr("experience DESC").
		Limit(limit).
		Scan(ctx)
	return profiles, err
}

