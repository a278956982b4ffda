package handlers

import (
	"errors"
	"log/slog"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/deckhubapp/deckhub/deckhub/social"
	"github.com/gofiber/fiber/v2"
)

// CommentsCreate appends a comment to a target and notifies its owner.
func CommentsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		var req webmodels.CommentRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if details := utils.ValidateCommentRequest(&req); details != nil {
			return utils.SendBadRequest(c, "Invalid comment payload", details)
		}

		comment, err := webApp.Comments.Post(c.Context(), session.UserID, models.TargetType(req.TargetType), req.TargetID, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, social.ErrEmptyContent):
				return utils.SendBadRequest(c, "Comment content is empty", nil)
			case errors.Is(err, social.ErrInvalidTarget):
				return utils.SendBadRequest(c, "Unknown comment target", nil)
			}
			slog.Error("Failed to post comment", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to post comment")
		}

		return utils.SendCreated(c, comment, "Comment posted")
	}
}

// CommentsByTarget lists a target's comments newest-first with author
// profile fields joined in.
func CommentsByTarget(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetType := models.TargetType(c.Params("targetType"))
		targetID, err := parseInt64(c.Params("targetId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid target ID", nil)
		}

		comments, err := webApp.Comments.List(c.Context(), targetType, targetID)
		if err != nil {
			if errors.Is(err, social.ErrInvalidTarget) {
				return utils.SendBadRequest(c, "Unknown comment target", nil)
			}
			slog.Error("Failed to list comments", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list comments")
		}

		return utils.SendSuccess(c, comments, "Comments loaded")
	}
}
