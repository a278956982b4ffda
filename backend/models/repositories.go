package models

import (
	"github.com/deckhubapp/deckhub/deckhub/database/repositories"
)

// Repositories groups all repository interfaces for easy injection
type Repositories struct {
	User         repositories.UserRepository
	Card         repositories.CardRepository
	Deck         repositories.DeckRepository
	Comment      repositories.CommentRepository
	Notification repositories.NotificationRepository
	Event        repositories.EventRepository
}

// NewRepositories creates a new repositories group from individual repositories
func NewRepositories(
	user repositories.UserRepository,
	card repositories.CardRepository,
	deck repositories.DeckRepository,
	comment repositories.CommentRepository,
	notification repositories.NotificationRepository,
	event repositories.EventRepository,
) *Repositories {
	return &Repositories{
		User:         user,
		Card:         card,
		Deck:         deck,
		Comment:      comment,
		Notification: notification,
		Event:        event,
	}
}
