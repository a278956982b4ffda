package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deckhubapp/deckhub/backend/config"
	webmodels "github.com/deckhubapp/deckhub/backend/models"
	webservices "github.com/deckhubapp/deckhub/backend/services"
	"github.com/deckhubapp/deckhub/backend/utils"
	"github.com/deckhubapp/deckhub/deckhub/catalog"
	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/deck"
	"github.com/deckhubapp/deckhub/deckhub/engagement"
	"github.com/deckhubapp/deckhub/deckhub/services"
	"github.com/deckhubapp/deckhub/deckhub/social"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         *config.WebAppConfig
	DB             *database.DB
	Repos          *webmodels.Repositories
	Catalog        *catalog.Service
	DeckService    *deck.Service
	Engagement     *engagement.Service
	Comments       *social.CommentService
	CardImport     *services.CardImportService
	SessionService *webservices.SessionService
	Version        string
	Commit         string
}

// GetSession gets the current user session
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// getDashboardStats retrieves dashboard statistics with the count queries
// running concurrently.
func getDashboardStats(ctx context.Context, webApp *WebApp) (*webmodels.DashboardStats, error) {
	stats := &webmodels.DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := webApp.Repos.Card.GetCardCount(gctx)
		if err != nil {
			return fmt.Errorf("failed to get card count: %w", err)
		}
		stats.TotalCards = total
		return nil
	})
	g.Go(func() error {
		total, err := webApp.Repos.Deck.GetDeckCount(gctx)
		if err != nil {
			return fmt.Errorf("failed to get deck count: %w", err)
		}
		stats.TotalDecks = total
		return nil
	})
	g.Go(func() error {
		total, err := webApp.Repos.User.GetUserCount(gctx)
		if err != nil {
			return fmt.Errorf("failed to get user count: %w", err)
		}
		stats.TotalUsers = total
		return nil
	})
	g.Go(func() error {
		total, err := webApp.Repos.Comment.GetCommentCount(gctx)
		if err != nil {
			return fmt.Errorf("failed to get comment count: %w", err)
		}
		stats.TotalComments = total
		return nil
	})
	g.Go(func() error {
		total, err := webApp.Repos.Notification.CountAllUnread(gctx)
		if err != nil {
			return fmt.Errorf("failed to get unread notification count: %w", err)
		}
		stats.UnreadNotifications = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// HealthCheck reports service and database health.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := webApp.DB.Ping(c.Context()); err != nil {
			dbStatus = "unhealthy"
		}

		return utils.SendSuccess(c, fiber.Map{
			"status":   "healthy",
			"version":  webApp.Version,
			"commit":   webApp.Commit,
			"database": dbStatus,
		}, "Service is healthy")
	}
}

// DashboardStatsAPI returns platform totals for the admin dashboard.
func DashboardStatsAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := getDashboardStats(c.Context(), webApp)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load dashboard stats")
		}
		return utils.SendSuccess(c, stats, "Dashboard stats loaded")
	}
}
