package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/gofiber/fiber/v2"
)

// EventRequest creates or updates a platform event.
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// EventsUpcoming lists public events that have not ended yet.
func EventsUpcoming(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := webApp.Repos.Event.GetUpcoming(c.Context(), 20)
		if err != nil {
			slog.Error("Failed to list events", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list events")
		}
		return utils.SendSuccess(c, events, "Events loaded")
	}
}

// EventsDetail returns a single event.
func EventsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid event ID", nil)
		}

		event, err := webApp.Repos.Event.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c, "Event not found")
			}
			slog.Error("Failed to load event", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to load event")
		}
		return utils.SendSuccess(c, event, "Event loaded")
	}
}

// EventsCreate publishes a new event. Admin only.
func EventsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req EventRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if req.Title == "" {
			return utils.SendBadRequest(c, "Title is required", nil)
		}
		if !req.EndsAt.After(req.StartsAt) {
			return utils.SendBadRequest(c, "Event must end after it starts", nil)
		}

		event := &models.Event{
			Title:       req.Title,
			Description: req.Description,
			IsPublic:    req.IsPublic,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		}
		if err := webApp.Repos.Event.Create(c.Context(), event); err != nil {
			slog.Error("Failed to create event", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create event")
		}
		return utils.SendCreated(c, event, "Event created")
	}
}

// EventsDelete removes an event. Admin only.
func EventsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid event ID", nil)
		}
		if err := webApp.Repos.Event.Delete(c.Context(), id); err != nil {
			slog.Error("Failed to delete event", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete event")
		}
		return utils.SendNoContent(c)
	}
}
