package handlers

import (
	"database/sql"
	"errors"
	"log/slog"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/deck"
	"github.com/gofiber/fiber/v2"
)

func deckInputFromRequest(req *webmodels.DeckRequest) deck.Input {
	return deck.Input{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		MainEnergy:  req.MainEnergy,
		Tags:        req.Tags,
		Cards:       req.Cards,
		Energy:      req.Energy,
	}
}

// DecksCreate validates and persists a new deck for the session user.
func DecksCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		var req webmodels.DeckRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if details := utils.ValidateDeckRequest(&req); details != nil {
			return utils.SendBadRequest(c, "Invalid deck payload", details)
		}

		created, violations, err := webApp.DeckService.Create(c.Context(), session.UserID, deckInputFromRequest(&req))
		if err != nil {
			slog.Error("Failed to create deck", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create deck")
		}
		if len(violations) > 0 {
			return utils.SendRuleViolations(c, violations)
		}

		return utils.SendCreated(c, created, "Deck created")
	}
}

// DecksDetail returns a deck and counts the view.
func DecksDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid deck ID", nil)
		}

		found, err := webApp.DeckService.Get(c.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c, "Deck not found")
			}
			slog.Error("Failed to load deck", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to load deck")
		}

		return utils.SendSuccess(c, found, "Deck loaded")
	}
}

// DecksUpdate replaces a deck's whole list after re-validation.
func DecksUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid deck ID", nil)
		}

		var req webmodels.DeckRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if details := utils.ValidateDeckRequest(&req); details != nil {
			return utils.SendBadRequest(c, "Invalid deck payload", details)
		}

		updated, violations, err := webApp.DeckService.Update(c.Context(), session.UserID, id, deckInputFromRequest(&req))
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return utils.SendNotFound(c, "Deck not found")
			case errors.Is(err, deck.ErrNotOwner):
				return utils.SendForbidden(c, "Only the deck owner can edit it")
			}
			slog.Error("Failed to update deck", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update deck")
		}
		if len(violations) > 0 {
			return utils.SendRuleViolations(c, violations)
		}

		return utils.SendSuccess(c, updated, "Deck updated")
	}
}

// DecksClone copies a deck into the session user's collection with social
// state reset.
func DecksClone(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid deck ID", nil)
		}

		clone, violations, err := webApp.DeckService.Clone(c.Context(), session.UserID, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c, "Deck not found")
			}
			slog.Error("Failed to clone deck", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to clone deck")
		}
		if len(violations) > 0 {
			return utils.SendRuleViolations(c, violations)
		}

		return utils.SendCreated(c, clone, "Deck cloned")
	}
}

// DecksDelete removes a deck. Admins may delete any deck.
func DecksDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid deck ID", nil)
		}

		err = webApp.DeckService.Delete(c.Context(), session.UserID, session.IsAdmin, id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return utils.SendNotFound(c, "Deck not found")
			case errors.Is(err, deck.ErrNotOwner):
				return utils.SendForbidden(c, "Only the deck owner can delete it")
			}
			slog.Error("Failed to delete deck", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete deck")
		}

		return utils.SendNoContent(c)
	}
}

// DecksBrowse lists public decks, newest first, paginated.
func DecksBrowse(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := utils.ParsePagination(c, 20, 100)
		offset := (page - 1) * limit

		decks, total, err := webApp.Repos.Deck.GetPublic(c.Context(), offset, limit)
		if err != nil {
			slog.Error("Failed to list decks", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list decks")
		}

		summaries := make([]webmodels.DeckSummary, 0, len(decks))
		for _, d := range decks {
			summaries = append(summaries, webmodels.NewDeckSummary(d))
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(total))
		return utils.SendPaginated(c, summaries, pagination, "Decks loaded")
	}
}

// DecksMine lists the session user's own decks, public or not.
func DecksMine(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := utils.ExtractUserSession(c)

		decks, err := webApp.Repos.Deck.GetByCreator(c.Context(), session.UserID)
		if err != nil {
			slog.Error("Failed to list decks", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list decks")
		}

		summaries := make([]webmodels.DeckSummary, 0, len(decks))
		for _, d := range decks {
			summaries = append(summaries, webmodels.NewDeckSummary(d))
		}
		return utils.SendSuccess(c, summaries, "Decks loaded")
	}
}
