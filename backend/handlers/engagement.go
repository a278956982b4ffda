package handlers

import (
	"database/sql"
	"errors"
	"log/slog"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/catalog"
	"github.com/deckhubapp/deckhub/deckhub/engagement"
	"github.com/gofiber/fiber/v2"
)

func parseToggleRequest(c *fiber.Ctx) (engagement.Action, int64, error) {
	id, err := parseInt64(c.Params("id"))
	if err != nil {
		return "", 0, errors.New("invalid target ID")
	}

	var req webmodels.EngagementRequest
	if err := c.BodyParser(&req); err != nil {
		return "", 0, errors.New("invalid request body")
	}

	action, err := engagement.ParseAction(req.Action)
	if err != nil {
		return "", 0, err
	}
	return action, id, nil
}

func sendToggleError(c *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, engagement.ErrInvalidAction):
		return utils.SendBadRequest(c, "Unknown action", nil)
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, catalog.ErrCardNotFound):
		return utils.SendNotFound(c, notFoundMessage)
	}
	slog.Error("Failed to apply toggle", slog.String("error", err.Error()))
	return utils.SendInternalServerError(c, "Failed to apply action")
}

// DeckLikeToggle applies a like/unlike action to a deck for the session
// user. Repeating an action is a successful no-op.
func DeckLikeToggle(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		action, id, err := parseToggleRequest(c)
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		result, err := webApp.Engagement.ToggleDeckLike(c.Context(), session.UserID, id, action)
		if err != nil {
			return sendToggleError(c, err, "Deck not found")
		}
		return utils.SendSuccess(c, result, "Action applied")
	}
}

// CardFavoriteToggle applies a favorite/unfavorite action to a card for
// the session user.
func CardFavoriteToggle(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		action, id, err := parseToggleRequest(c)
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		result, err := webApp.Engagement.ToggleCardFavorite(c.Context(), session.UserID, id, action)
		if err != nil {
			return sendToggleError(c, err, "Card not found")
		}
		return utils.SendSuccess(c, result, "Action applied")
	}
}

// CommentLikeToggle applies a like/unlike action to a comment for the
// session user.
func CommentLikeToggle(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		action, id, err := parseToggleRequest(c)
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		result, err := webApp.Engagement.ToggleCommentLike(c.Context(), session.UserID, id, action)
		if err != nil {
			return sendToggleError(c, err, "Comment not found")
		}
		return utils.SendSuccess(c, result, "Action applied")
	}
}
