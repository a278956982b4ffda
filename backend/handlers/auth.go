package handlers

import (
	"log/slog"
	"strings"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// Login creates or resolves the user record and issues a signed session
// cookie.
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		username := strings.TrimSpace(req.Username)
		if !utils.ValidUsernameRegex.MatchString(username) {
			return utils.SendBadRequest(c, "Invalid username", map[string]string{
				"username": "Usernames are 2-32 characters of letters, digits, _ - .",
			})
		}

		user, err := webApp.Repos.User.GetOrCreate(c.Context(), username, username)
		if err != nil {
			slog.Error("Failed to resolve user", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to resolve user")
		}

		session := &webmodels.UserSession{
			UserID:   user.ID,
			Username: user.Username,
			Avatar:   user.AvatarURL,
			Roles:    user.Roles,
			IsAdmin:  user.IsAdmin(),
		}
		if err := webApp.SessionService.CreateSession(c, session); err != nil {
			slog.Error("Failed to create session", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendSuccess(c, session, "Logged in")
	}
}

// Logout destroys the session cookie.
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendSuccess(c, nil, "Logged out")
	}
}

// ValidateSession returns the current session for frontend bootstrapping.
func ValidateSession(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := webApp.GetSession(c)
		if err != nil {
			return utils.SendUnauthorized(c, "No valid session")
		}
		return utils.SendSuccess(c, session, "Session is valid")
	}
}
