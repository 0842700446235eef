package profile

import (
	"context"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetTopByExperience(ctx context.Context, limit int) ([]*models.Profile, error)
}
