package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/gunceblog/gunce-backend/backend/models"
	"github.com/gunceblog/gunce-backend/backend/utils"
	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy"
	"github.com/gunceblog/gunce-backend/gunce/economy/badges"
	"github.com/gunceblog/gunce-backend/gunce/economy/crates"
	economyutils "github.com/gunceblog/gunce-backend/gunce/economy/utils"
)

// GetProfile returns a single profile with computed level progress
func GetProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if err := utils.ValidateUserID(userID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		profile, err := webApp.Repos.Profile.GetByUserID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c, "Profile not found")
			}
			return utils.SendInternalServerError(c, "Failed to load profile")
		}

		return utils.SendSuccess(c, webApp.profileDTO(profile), "")
	}
}

// CreateProfile registers a new economic profile for a platform user
func CreateProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.CreateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		req.UserID = strings.TrimSpace(req.UserID)
		if err := utils.ValidateUserID(req.UserID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}
		if err := utils.ValidateUsername(req.Username); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		profile := &models.Profile{
			UserID:   req.UserID,
			Username: strings.TrimSpace(req.Username),
			Level:    1,
		}
		if err := webApp.Repos.Profile.Create(c.Context(), profile); err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return utils.SendConflict(c, "Profile already exists", nil)
			}
			slog.Error("Failed to create profile",
				slog.String("user_id", req.UserID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create profile")
		}

		return utils.SendCreated(c, webApp.profileDTO(profile), "Profile created")
	}
}

// AwardBadge grants a badge and its fixed reward, exactly once per badge
func AwardBadge(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if err := utils.ValidateUserID(userID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		var req webmodels.AwardBadgeRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if suggestion, err := utils.ValidateBadgeID(req.BadgeID); err != nil {
			details := map[string]string{"badge_id": req.BadgeID}
			if suggestion != "" {
				details["did_you_mean"] = suggestion
			}
			return utils.SendUnprocessableEntity(c, err.Error(), details)
		}

		result, err := webApp.BadgeAwarder.Award(c.Context(), userID, req.BadgeID)
		if err != nil {
			return sendEconomyError(c, err, "Failed to award badge")
		}

		dto := &webmodels.BadgeAwardDTO{
			Badge:   badgeDTO(result.Badge),
			Awarded: result.Awarded,
			Profile: webApp.profileDTO(result.Profile),
		}
		if result.Awarded {
			dto.ExpReward = economyutils.BadgeExpReward
			dto.GemReward = economyutils.BadgeGemReward
		}

		message := "Badge awarded"
		if !result.Awarded {
			message = "Badge already held"
		}
		return utils.SendSuccess(c, dto, message)
	}
}

// ClaimDaily credits the calendar-day login reward
func ClaimDaily(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if err := utils.ValidateUserID(userID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		profile, err := webApp.DailyService.Claim(c.Context(), userID)
		if err != nil {
			return sendEconomyError(c, err, "Failed to claim daily reward")
		}

		return utils.SendSuccess(c, &webmodels.DailyClaimDTO{
			GemsAwarded: economyutils.DailyRewardGems,
			Profile:     webApp.profileDTO(profile),
		}, "Daily reward claimed")
	}
}

// OpenCrate performs one loot-crate draw
func OpenCrate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if err := utils.ValidateUserID(userID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		var req webmodels.OpenCrateRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return utils.SendBadRequest(c, "Invalid request body", nil)
			}
		}

		if err := utils.ValidateDeclaredCost(req.DeclaredCost); err != nil {
			return utils.SendUnprocessableEntity(c, err.Error(), nil)
		}

		result, err := webApp.CrateManager.Open(c.Context(), userID, req.IdempotencyKey)
		if err != nil {
			return sendEconomyError(c, err, "Failed to open crate")
		}

		message := "New frame acquired"
		if result.WasOwned {
			message = "Duplicate frame, gems refunded"
		}

		return utils.SendSuccess(c, &webmodels.CrateOpenDTO{
			Frame:        webApp.frameDTO(result.Frame),
			Duplicate:    result.WasOwned,
			RefundAmount: result.RefundAmount,
			Profile:      webApp.profileDTO(result.Profile),
		}, message)
	}
}

// Catalog returns the static badge and frame catalogs with current prices
func Catalog(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		badgeDTOs := make([]webmodels.BadgeDTO, 0, len(badges.Catalog))
		for _, b := range badges.Catalog {
			badgeDTOs = append(badgeDTOs, badgeDTO(b))
		}

		frameDTOs := make([]webmodels.FrameDTO, 0, len(crates.Frames))
		for _, f := range crates.Frames {
			frameDTOs = append(frameDTOs, webApp.frameDTO(f))
		}

		return utils.SendSuccess(c, &webmodels.CatalogDTO{
			Badges:    badgeDTOs,
			Frames:    frameDTOs,
			CrateCost: economyutils.CrateCost,
			DailyGems: economyutils.DailyRewardGems,
		}, "")
	}
}

// Leaderboard returns the top profiles by experience
func Leaderboard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := parseLimit(c, 25, 100)

		ranked, err := webApp.ProfileService.GetLeaderboard(c.Context(), limit)
		if err != nil {
			slog.Error("Failed to load leaderboard", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to load leaderboard")
		}

		return utils.SendSuccess(c, ranked, "")
	}
}

// ProfileSummary returns the domain view of a profile: persisted state
// joined with leveling progress and catalog-resolved badges
func ProfileSummary(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if err := utils.ValidateUserID(userID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		summary, err := webApp.ProfileService.GetSummary(c.Context(), userID)
		if err != nil {
			return utils.SendNotFound(c, "Profile not found")
		}

		return utils.SendSuccess(c, summary, "")
	}
}

// RecentOpenings returns a user's recent crate openings from the audit log
func RecentOpenings(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if err := utils.ValidateUserID(userID); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}
		limit := parseLimit(c, 20, 100)

		openings, err := webApp.Repos.CrateOpening.GetRecentByUserID(c.Context(), userID, limit)
		if err != nil {
			slog.Error("Failed to load crate openings",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to load crate openings")
		}

		return utils.SendSuccess(c, openings, "")
	}
}

// EconomyStats returns the monitor's last snapshot (admin only)
func EconomyStats(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats := webApp.Monitor.LastStats()
		if stats == nil {
			fresh, err := webApp.Monitor.CollectStats(c.Context())
			if err != nil {
				slog.Error("Failed to collect economy stats", slog.String("error", err.Error()))
				return utils.SendInternalServerError(c, "Failed to collect stats")
			}
			stats = fresh
		}
		return utils.SendSuccess(c, stats, "")
	}
}

func badgeDTO(b badges.Badge) webmodels.BadgeDTO {
	return webmodels.BadgeDTO{
		ID:          b.ID,
		DisplayName: b.DisplayName,
		Description: b.Description,
		ExpReward:   economyutils.BadgeExpReward,
		GemReward:   economyutils.BadgeGemReward,
	}
}

// sendEconomyError maps the economy error taxonomy onto HTTP statuses.
// Everything not in the taxonomy is a 500.
func sendEconomyError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, economy.ErrProfileNotFound):
		return utils.SendNotFound(c, "Profile not found")
	case errors.Is(err, economy.ErrAlreadyClaimed):
		return utils.SendConflict(c, "Daily reward already claimed today", nil)
	case errors.Is(err, economy.ErrOpenInProgress):
		return utils.SendConflict(c, "A crate open is already in progress", nil)
	case errors.Is(err, economy.ErrInsufficientFunds):
		return utils.SendForbidden(c, "Not enough gems")
	case errors.Is(err, economy.ErrUnknownBadge):
		return utils.SendUnprocessableEntity(c, err.Error(), nil)
	default:
		slog.Error("Economy operation failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
		return utils.SendInternalServerError(c, fallback)
	}
}
