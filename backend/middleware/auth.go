package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gunceblog/gunce-backend/backend/models"
	"github.com/gunceblog/gunce-backend/backend/services"
	"github.com/gunceblog/gunce-backend/backend/utils"
)

// AuthRequired middleware ensures the request carries a valid session
func AuthRequired(sessionService *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := sessionService.GetSession(c)
		if err != nil {
			slog.Debug("Auth required: no valid session", slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if session == nil || session.UserID == "" {
			slog.Debug("Auth required: invalid session")
			return utils.SendUnauthorized(c, "Authentication required")
		}

		// Store user in context
		c.Locals("user", session)

		slog.Debug("Auth middleware: user authenticated",
			slog.String("user_id", session.UserID),
			slog.String("username", session.Username))

		return c.Next()
	}
}

// AdminRequired middleware ensures the user has admin privileges
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user")
		if user == nil {
			slog.Warn("Admin required: no user in context")
			return utils.SendForbidden(c, "Access denied")
		}

		session, ok := user.(*models.UserSession)
		if !ok {
			slog.Warn("Admin required: invalid user session type")
			return utils.SendForbidden(c, "Access denied")
		}

		if !session.IsAdmin {
			slog.Warn("Admin required: user lacks admin privileges",
				slog.String("user_id", session.UserID),
				slog.String("username", session.Username))
			return utils.SendForbidden(c, "Admin access required")
		}

		return c.Next()
	}
}

// SelfOrAdminRequired ensures the authenticated user is operating on their
// own profile, unless they are an admin. Badge awards are exempt: those
// come from the platform's service account, which carries the admin role.
func SelfOrAdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendForbidden(c, "Access denied")
		}

		targetID := c.Params("id")
		if session.UserID != targetID && !session.IsAdmin {
			slog.Warn("Profile access denied",
				slog.String("user_id", session.UserID),
				slog.String("target_id", targetID))
			return utils.SendForbidden(c, "Cannot operate on another user's profile")
		}

		return c.Next()
	}
}

// OptionalAuth middleware adds user info to context if authenticated, but doesn't require it
func OptionalAuth(sessionService *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := sessionService.GetSession(c)
		if err == nil && session != nil && session.UserID != "" {
			c.Locals("user", session)
		}

		return c.Next()
	}
}
