package models

import (
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

// UserSession represents a user session for web authentication
type UserSession struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
	IsAdmin   bool      `json:"is_admin"`
}

// LoginRequest is the credential payload for session creation.
type LoginRequest struct {
	Username string `json:"username"`
}

// DeckRequest is a whole candidate deck as submitted by a client. Every
// write replaces the full list; there are no partial deck edits.
type DeckRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	IsPublic    bool                     `json:"is_public"`
	MainEnergy  []models.EnergyType      `json:"main_energy"`
	Tags        []string                 `json:"tags"`
	Cards       []models.CardSelection   `json:"cards"`
	Energy      []models.EnergySelection `json:"energy"`
}

// EngagementRequest carries an explicit toggle direction.
type EngagementRequest struct {
	Action string `json:"action"`
}

// CommentRequest creates a comment on a target entity.
type CommentRequest struct {
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
	Content    string `json:"content"`
}

// CardSearchRequest represents search parameters for cards
type CardSearchRequest struct {
	Query     string `json:"query" form:"query"`
	Attribute string `json:"attribute" form:"attribute"`
	Page      int    `json:"page" form:"page"`
	Limit     int    `json:"limit" form:"limit"`
}

// DashboardStats aggregates platform counts for the admin dashboard.
type DashboardStats struct {
	TotalCards          int64 `json:"total_cards"`
	TotalDecks          int64 `json:"total_decks"`
	TotalUsers          int64 `json:"total_users"`
	TotalComments       int64 `json:"total_comments"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// DeckSummary is the listing shape for deck browse endpoints.
type DeckSummary struct {
	ID         int64               `json:"id"`
	CreatorID  string              `json:"creator_id"`
	Name       string              `json:"name"`
	MainEnergy []models.EnergyType `json:"main_energy"`
	Tags       []string            `json:"tags"`
	LikeCount  int                 `json:"like_count"`
	Views      int64               `json:"views"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewDeckSummary converts a deck aggregate to its listing shape.
func NewDeckSummary(d *models.Deck) DeckSummary {
	return DeckSummary{
		ID:         d.ID,
		CreatorID:  d.CreatorID,
		Name:       d.Name,
		MainEnergy: d.MainEnergy,
		Tags:       d.Tags,
		LikeCount:  d.LikeCount(),
		Views:      d.Views,
		CreatedAt:  d.CreatedAt,
	}
}
