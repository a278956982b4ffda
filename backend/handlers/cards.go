package handlers

import (
	"errors"
	"log/slog"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/catalog"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/gofiber/fiber/v2"
)

// CardsSearch lists cards matching the query, paginated. An empty query
// lists everything; an attribute filter narrows to one energy type.
func CardsSearch(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.CardSearchRequest
		if err := c.QueryParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid search parameters", nil)
		}

		page, limit := utils.ParsePagination(c, 30, 100)

		if req.Attribute != "" {
			attr := models.EnergyType(req.Attribute)
			if !attr.Valid() {
				return utils.SendBadRequest(c, "Unknown attribute", nil)
			}
			cards, err := webApp.Repos.Card.GetByAttribute(c.Context(), attr)
			if err != nil {
				slog.Error("Failed to search cards", slog.String("error", err.Error()))
				return utils.SendInternalServerError(c, "Failed to search cards")
			}
			return utils.SendSuccess(c, cards, "Cards loaded")
		}

		cards, total, err := webApp.Repos.Card.Search(c.Context(), req.Query, (page-1)*limit, limit)
		if err != nil {
			slog.Error("Failed to search cards", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to search cards")
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(total))
		return utils.SendPaginated(c, cards, pagination, "Cards loaded")
	}
}

// CardsSuggest fuzzy-matches card names for deck builder autocomplete.
func CardsSuggest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("query")
		if query == "" {
			return utils.SendBadRequest(c, "Query is required", nil)
		}

		cards, err := webApp.Catalog.SearchByName(c.Context(), query, 10)
		if err != nil {
			slog.Error("Failed to suggest cards", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to suggest cards")
		}
		return utils.SendSuccess(c, cards, "Suggestions loaded")
	}
}

// CardsDetail returns a single card through the catalog cache.
func CardsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", nil)
		}

		card, err := webApp.Catalog.Resolve(c.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrCardNotFound) {
				return utils.SendNotFound(c, "Card not found")
			}
			slog.Error("Failed to load card", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to load card")
		}
		return utils.SendSuccess(c, card, "Card loaded")
	}
}
