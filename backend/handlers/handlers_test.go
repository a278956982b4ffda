package handlers

import (
	"context"
	"errors"
	"testing"

	webmodels "github.com/deckhubapp/deckhub/backend/models"
	"github.com/deckhubapp/deckhub/deckhub/database/repositories"
)

// The count-only fakes embed the repository interfaces so only the count
// methods need implementations.
type countCardRepo struct {
	repositories.CardRepository
	count int64
	err   error
}

func (r countCardRepo) GetCardCount(ctx context.Context) (int64, error) { return r.count, r.err }

type countDeckRepo struct {
	repositories.DeckRepository
	count int64
}

func (r countDeckRepo) GetDeckCount(ctx context.Context) (int64, error) { return r.count, nil }

type countUserRepo struct {
	repositories.UserRepository
	count int64
}

func (r countUserRepo) GetUserCount(ctx context.Context) (int64, error) { return r.count, nil }

type countCommentRepo struct {
	repositories.CommentRepository
	count int64
}

func (r countCommentRepo) GetCommentCount(ctx context.Context) (int64, error) { return r.count, nil }

type countNotificationRepo struct {
	repositories.NotificationRepository
	unread int64
}

func (r countNotificationRepo) CountAllUnread(ctx context.Context) (int64, error) {
	return r.unread, nil
}

func TestGetDashboardStats(t *testing.T) {
	webApp := &WebApp{Repos: &webmodels.Repositories{
		Card:         countCardRepo{count: 120},
		Deck:         countDeckRepo{count: 34},
		User:         countUserRepo{count: 56},
		Comment:      countCommentRepo{count: 78},
		Notification: countNotificationRepo{unread: 9},
	}}

	stats, err := getDashboardStats(context.Background(), webApp)
	if err != nil {
		t.Fatalf("getDashboardStats() error = %v", err)
	}
	if stats.TotalCards != 120 || stats.TotalDecks != 34 || stats.TotalUsers != 56 || stats.TotalComments != 78 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.UnreadNotifications != 9 {
		t.Errorf("UnreadNotifications = %d, want 9", stats.UnreadNotifications)
	}
}

func TestGetDashboardStatsPropagatesErrors(t *testing.T) {
	webApp := &WebApp{Repos: &webmodels.Repositories{
		Card:         countCardRepo{err: errors.New("db down")},
		Deck:         countDeckRepo{},
		User:         countUserRepo{},
		Comment:      countCommentRepo{},
		Notification: countNotificationRepo{},
	}}

	if _, err := getDashboardStats(context.Background(), webApp); err == nil {
		t.Fatal("getDashboardStats() error = nil, want error")
	}
}
