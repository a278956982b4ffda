package handlers

import (
	"log/slog"

	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/deckhubapp/deckhub/deckhub/services"
	"github.com/gofiber/fiber/v2"
)

// CardRequest creates or updates a catalog card. Admin only.
type CardRequest struct {
	Name     string          `json:"name"`
	NameEN   string          `json:"name_en"`
	Kind     string          `json:"kind"`
	Type     string          `json:"type"`
	HP       int             `json:"hp"`
	Rarity   string          `json:"rarity"`
	SetCode  string          `json:"set_code"`
	Attacks  []models.Attack `json:"attacks"`
	ImageURL string          `json:"image_url"`
}

func cardFromRequest(req *CardRequest) (*models.Card, map[string]string) {
	details := make(map[string]string)

	if req.Name == "" {
		details["name"] = "Name is required"
	}
	attribute := models.EnergyType(req.Type)
	if !attribute.Valid() {
		details["type"] = "Unknown energy type"
	}
	kind := models.CardKind(req.Kind)
	switch kind {
	case models.KindBasic, models.KindStage1, models.KindStage2, models.KindEX:
	default:
		details["kind"] = "Unknown card kind"
	}
	if len(details) > 0 {
		return nil, details
	}

	return &models.Card{
		Name:      req.Name,
		NameEN:    req.NameEN,
		Kind:      kind,
		Attribute: attribute,
		HP:        req.HP,
		Rarity:    req.Rarity,
		SetCode:   req.SetCode,
		Attacks:   req.Attacks,
		ImageURL:  req.ImageURL,
	}, nil
}

// AdminCardsCreate inserts a new catalog card.
func AdminCardsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CardRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		card, details := cardFromRequest(&req)
		if details != nil {
			return utils.SendBadRequest(c, "Invalid card payload", details)
		}

		if err := webApp.Repos.Card.Create(c.Context(), card); err != nil {
			slog.Error("Failed to create card", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create card")
		}
		return utils.SendCreated(c, card, "Card created")
	}
}

// AdminCardsUpdate replaces a catalog card's attributes and drops the stale
// cache entry.
func AdminCardsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		var req CardRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		card, details := cardFromRequest(&req)
		if details != nil {
			return utils.SendBadRequest(c, "Invalid card payload", details)
		}
		card.ID = id

		if err := webApp.Repos.Card.Update(c.Context(), card); err != nil {
			slog.Error("Failed to update card", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update card")
		}
		webApp.Catalog.Invalidate(id)

		return utils.SendSuccess(c, card, "Card updated")
	}
}

// AdminCardsDelete removes a catalog card.
func AdminCardsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		if err := webApp.Repos.Card.Delete(c.Context(), id); err != nil {
			slog.Error("Failed to delete card", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete card")
		}
		webApp.Catalog.Invalidate(id)

		return utils.SendNoContent(c)
	}
}

// AdminCardsImport ingests a catalog drop submitted as a JSON array.
func AdminCardsImport(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []services.CardImportEntry
		if err := c.BodyParser(&entries); err != nil {
			return utils.SendBadRequest(c, "Invalid catalog drop", nil)
		}
		if len(entries) == 0 {
			return utils.SendBadRequest(c, "Catalog drop is empty", nil)
		}

		result, err := webApp.CardImport.Import(c.Context(), entries)
		if err != nil {
			slog.Error("Catalog import failed", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Catalog import failed")
		}
		return utils.SendSuccess(c, result, "Catalog imported")
	}
}
