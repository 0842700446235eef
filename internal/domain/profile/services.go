package profile

import (
	"context"
	"fmt"

	"github.com/gunceblog/gunce-backend/gunce/economy/badges"
	"github.com/gunceblog/gunce-backend/gunce/economy/leveling"
)

type Service interface {
	GetSummary(ctx context.Context, userID string) (*Summary, error)
	GetLeaderboard(ctx context.Context, limit int) ([]RankedProfile, error)
}

type service struct {
	repository Repository
	calculator *leveling.Calculator
}

func NewService(repository Repository, calculator *leveling.Calculator) *service {
	if calculator == nil {
		calculator = leveling.NewCalculator(nil)
	}
	return &service{
		repository: repository,
		calculator: calculator,
	}
}

// GetSummary loads a profile and resolves the derived fields the raw row
// does not carry.
func (s *service) GetSummary(ctx context.Context, userID string) (*Summary, error) {
	p, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile")
	}

	progress := s.calculator.LevelOf(p.Experience)

	held := make([]BadgeInfo, 0, len(p.Badges))
	for _, id := range p.Badges {
		badge, ok := badges.Lookup(id)
		if !ok {
			// Stored badge no longer in the catalog; keep the id so the
			// frontend can at least show something.
			held = append(held, BadgeInfo{ID: id, DisplayName: id})
			continue
		}
		held = append(held, BadgeInfo{
			ID:          badge.ID,
			DisplayName: badge.DisplayName,
			Description: badge.Description,
		})
	}

	return &Summary{
		UserID:        p.UserID,
		Username:      p.Username,
		Experience:    p.Experience,
		Level:         progress.Level,
		ExpIntoLevel:  progress.IntoLevel,
		ExpNextLevel:  progress.NextLevelAt,
		Gems:          p.Gems,
		Badges:        held,
		OwnedFrames:   p.OwnedFrames,
		SelectedFrame: p.SelectedFrame,
		LastDaily:     p.LastDailyReward,
		MemberSince:   p.CreatedAt,
	}, nil
}

// GetLeaderboard returns the top profiles ranked by experience.
func (s *service) GetLeaderboard(ctx context.Context, limit int) ([]RankedProfile, error) {
	if limit <= 0 {
		limit = 25
	}

	profiles, err := s.repository.GetTopByExperience(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard")
	}

	ranked := make([]RankedProfile, 0, len(profiles))
	for i, p := range profiles {
		ranked = append(ranked, RankedProfile{
			Rank:       i + 1,
			UserID:     p.UserID,
			Username:   p.Username,
			Experience: p.Experience,
			Level:      p.Level,
		})
	}
	return ranked, nil
}
