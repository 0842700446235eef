package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/internal/domain/profile/mock"
	"go.uber.org/mock/gomock"
)

func Test_service_GetSummary(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		GetByUserID(gomock.Any(), "u-1").
		Return(&models.Profile{
			UserID:     "u-1",
			Username:   "elif",
			Experience: 130,
			Level:      3,
			Gems:       42,
			Badges:     []string{"ilk-yazi", "retired-badge"},
			CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil)

	s := NewService(repo, nil)

	got, err := s.GetSummary(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	if got.Level != 3 || got.ExpIntoLevel != 55 || got.ExpNextLevel != 75 {
		t.Errorf("progress = level %d, into %d, next %d; want 3, 55, 75",
			got.Level, got.ExpIntoLevel, got.ExpNextLevel)
	}
	if len(got.Badges) != 2 {
		t.Fatalf("badges = %d, want 2", len(got.Badges))
	}
	if got.Badges[0].DisplayName != "İlk Yazı" {
		t.Errorf("badge[0] = %q, want catalog display name", got.Badges[0].DisplayName)
	}
	// Unknown badge falls back to its raw id
	if got.Badges[1].DisplayName != "retired-badge" {
		t.Errorf("badge[1] = %q, want raw id fallback", got.Badges[1].DisplayName)
	}
}

func Test_service_GetSummary_RepoError(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		GetByUserID(gomock.Any(), "missing").
		Return(nil, errors.New("no rows"))

	s := NewService(repo, nil)

	if _, err := s.GetSummary(context.Background(), "missing"); err == nil {
		t.Error("GetSummary() expected error for missing profile")
	}
}

func Test_service_GetLeaderboard(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		GetTopByExperience(gomock.Any(), 2).
		Return([]*models.Profile{
			{UserID: "u-1", Username: "elif", Experience: 900, Level: 8},
			{UserID: "u-2", Username: "mert", Experience: 400, Level: 5},
		}, nil)

	s := NewService(repo, nil)

	got, err := s.GetLeaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Rank != 1 || got[0].UserID != "u-1" {
		t.Errorf("first entry = %+v, want rank 1 for u-1", got[0])
	}
	if got[1].Rank != 2 {
		t.Errorf("second entry rank = %d, want 2", got[1].Rank)
	}
}
