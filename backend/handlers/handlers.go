package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gunceblog/gunce-backend/backend/config"
	webmodels "github.com/gunceblog/gunce-backend/backend/models"
	webservices "github.com/gunceblog/gunce-backend/backend/services"
	"github.com/gunceblog/gunce-backend/backend/utils"
	"github.com/gunceblog/gunce-backend/gunce/database"
	dbmodels "github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy"
	"github.com/gunceblog/gunce-backend/gunce/economy/badges"
	"github.com/gunceblog/gunce-backend/gunce/economy/crates"
	"github.com/gunceblog/gunce-backend/gunce/economy/daily"
	"github.com/gunceblog/gunce-backend/gunce/economy/leveling"
	"github.com/gunceblog/gunce-backend/gunce/services"
	"github.com/gunceblog/gunce-backend/internal/domain/profile"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         *config.WebAppConfig
	DB             *database.DB
	Repos          *webmodels.Repositories
	SpacesService  *services.SpacesService
	SessionService *webservices.SessionService

	Calculator     *leveling.Calculator
	BadgeAwarder   *badges.Awarder
	DailyService   *daily.Service
	CrateManager   *crates.Manager
	Monitor        *economy.Monitor
	ProfileService profile.Service

	Version string
	Commit  string
}

// GetSession delegates to the session service.
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// parseLimit parses a query limit with a default and a hard cap.
func parseLimit(c *fiber.Ctx, def, max int) int {
	limit := def
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}

// profileDTO converts a profile row to its wire shape, filling in the
// level-progress numbers from the calculator.
func (w *WebApp) profileDTO(p *dbmodels.Profile) *webmodels.ProfileDTO {
	progress := w.Calculator.LevelOf(p.Experience)

	badgeIDs := p.Badges
	if badgeIDs == nil {
		badgeIDs = []string{}
	}
	frames := p.OwnedFrames
	if frames == nil {
		frames = []string{}
	}

	return &webmodels.ProfileDTO{
		UserID:        p.UserID,
		Username:      p.Username,
		Experience:    p.Experience,
		Level:         progress.Level,
		ExpIntoLevel:  progress.IntoLevel,
		ExpNextLevel:  progress.NextLevelAt,
		Gems:          p.Gems,
		Badges:        badgeIDs,
		OwnedFrames:   frames,
		SelectedFrame: p.SelectedFrame,
		LastDaily:     p.LastDailyReward,
		CreatedAt:     p.CreatedAt,
	}
}

// frameDTO converts a catalog frame, attaching the CDN artwork URL when a
// Spaces service is configured.
func (w *WebApp) frameDTO(f crates.Frame) webmodels.FrameDTO {
	tier := crates.TierOf(f)
	dto := webmodels.FrameDTO{
		Name:            f.Name,
		Tier:            tier.Name,
		DropWeight:      tier.DropWeight,
		DuplicateRefund: tier.DuplicateRefund,
	}
	if w.SpacesService != nil {
		dto.ImageURL = w.SpacesService.FrameImageURL(f.Name)
	}
	return dto
}

// HealthCheck returns service health including database connectivity
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Version)

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := webApp.DB.GetPool().Ping(ctx); err != nil {
			slog.Error("Health check: database ping failed",
				slog.String("error", err.Error()))
			health.AddComponent("database", "unhealthy", err.Error(), nil)
		} else {
			health.AddComponent("database", "healthy", "", nil)
		}

		if stats := webApp.Monitor.LastStats(); stats != nil {
			health.AddComponent("economy_monitor", "healthy", "", map[string]interface{}{
				"last_snapshot": stats.Timestamp,
			})
		} else {
			health.AddComponent("economy_monitor", "healthy", "no snapshot yet", nil)
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}
