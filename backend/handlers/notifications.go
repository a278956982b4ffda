package handlers

import (
	"log/slog"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// NotificationsList returns the session user's notifications newest-first,
// paginated.
func NotificationsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)
		page, limit := utils.ParsePagination(c, 20, 100)

		notifications, total, err := webApp.Repos.Notification.GetByUser(c.Context(), session.UserID, (page-1)*limit, limit)
		if err != nil {
			slog.Error("Failed to list notifications", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list notifications")
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(total))
		return utils.SendPaginated(c, notifications, pagination, "Notifications loaded")
	}
}

// NotificationsUnreadCount returns the session user's unread badge count.
func NotificationsUnreadCount(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		count, err := webApp.Repos.Notification.CountUnread(c.Context(), session.UserID)
		if err != nil {
			slog.Error("Failed to count notifications", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to count notifications")
		}
		return utils.SendSuccess(c, fiber.Map{"unread": count}, "Unread count loaded")
	}
}

// NotificationsMarkRead flags one of the session user's notifications as
// read. Marking another user's notification is a silent no-op.
func NotificationsMarkRead(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid notification ID", nil)
		}

		if err := webApp.Repos.Notification.MarkRead(c.Context(), id, session.UserID); err != nil {
			slog.Error("Failed to mark notification read", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to mark notification read")
		}
		return utils.SendSuccess(c, nil, "Notification marked read")
	}
}

// NotificationsMarkAllRead clears the session user's unread set.
func NotificationsMarkAllRead(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		if err := webApp.Repos.Notification.MarkAllRead(c.Context(), session.UserID); err != nil {
			slog.Error("Failed to mark notifications read", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to mark notifications read")
		}
		return utils.SendSuccess(c, nil, "All notifications marked read")
	}
}
