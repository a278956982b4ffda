package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

type fakeDeckStore struct {
	deck    *models.Deck
	updates int
}

func (f *fakeDeckStore) GetByID(ctx context.Context, id int64) (*models.Deck, error) {
	if f.deck == nil || f.deck.ID != id {
		return nil, errors.New("deck not found")
	}
	return f.deck, nil
}

func (f *fakeDeckStore) UpdateLikes(ctx context.Context, id int64, likes []string) error {
	f.deck.Likes = likes
	f.updates++
	return nil
}

type fakeUserStore struct {
	user    *models.User
	updates int
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, errors.New("user not found")
	}
	return f.user, nil
}

func (f *fakeUserStore) UpdateFavoriteCards(ctx context.Context, id string, cardIDs []int64) error {
	f.user.FavoriteCards = cardIDs
	f.updates++
	return nil
}

type fakeCommentStore struct {
	comment *models.Comment
	updates int
}

func (f *fakeCommentStore) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if f.comment == nil || f.comment.ID != id {
		return nil, errors.New("comment not found")
	}
	return f.comment, nil
}

func (f *fakeCommentStore) UpdateLikes(ctx context.Context, id int64, likes []string) error {
	f.comment.Likes = likes
	f.updates++
	return nil
}

type fakeCardResolver struct {
	known map[int64]bool
}

func (f *fakeCardResolver) Resolve(ctx context.Context, id int64) (*models.Card, error) {
	if !f.known[id] {
		return nil, errors.New("card not found")
	}
	return &models.Card{ID: id}, nil
}

type recordedNotification struct {
	kind       models.NotificationType
	actorID    string
	ownerID    string
	targetType models.TargetType
	targetID   int64
}

// fakeNotifier records every Notify call in sent and keeps pending as the
// net inbox state after revocations.
type fakeNotifier struct {
	sent    []recordedNotification
	pending []recordedNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64) {
	if ownerID == "" || actorID == ownerID {
		return
	}
	n := recordedNotification{kind, actorID, ownerID, targetType, targetID}
	f.sent = append(f.sent, n)
	f.pending = append(f.pending, n)
}

func (f *fakeNotifier) Revoke(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64) {
	if ownerID == "" || actorID == ownerID {
		return
	}
	kept := f.pending[:0]
	for _, n := range f.pending {
		if n.kind == kind && n.actorID == actorID && n.targetType == targetType && n.targetID == targetID {
			continue
		}
		kept = append(kept, n)
	}
	f.pending = kept
}

func newTestService() (*Service, *fakeDeckStore, *fakeUserStore, *fakeCommentStore, *fakeNotifier) {
	decks := &fakeDeckStore{deck: &models.Deck{ID: 1, CreatorID: "owner", Likes: []string{}}}
	users := &fakeUserStore{user: &models.User{ID: "actor", FavoriteCards: []int64{}}}
	comments := &fakeCommentStore{comment: &models.Comment{ID: 5, AuthorID: "owner", Likes: []string{}}}
	cards := &fakeCardResolver{known: map[int64]bool{42: true}}
	notifier := &fakeNotifier{}
	return NewService(decks, users, comments, cards, notifier), decks, users, comments, notifier
}

func TestToggleDeckLikeNotifiesOwnerOnce(t *testing.T) {
	s, decks, _, _, notifier := newTestService()
	ctx := context.Background()

	// First like transitions into Engaged and notifies.
	result, err := s.ToggleDeckLike(ctx, "actor", 1, ActionLike)
	if err != nil {
		t.Fatalf("ToggleDeckLike() error = %v", err)
	}
	if !result.Changed || !result.Engaged || result.Count != 1 {
		t.Fatalf("ToggleDeckLike() result = %+v", result)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.kind != models.NotificationLike || sent.ownerID != "owner" || sent.targetType != models.TargetDeck {
		t.Errorf("notification = %+v", sent)
	}

	// Liking again is a successful no-op: no write, no second notification.
	result, err = s.ToggleDeckLike(ctx, "actor", 1, ActionLike)
	if err != nil {
		t.Fatalf("ToggleDeckLike() error = %v", err)
	}
	if result.Changed {
		t.Error("second like reported Changed = true")
	}
	if decks.updates != 1 {
		t.Errorf("store updates = %d, want 1", decks.updates)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("notifications = %d, want 1", len(notifier.sent))
	}
}

func TestToggleDeckLikeUnlikeNeverNotifies(t *testing.T) {
	s, _, _, _, notifier := newTestService()
	ctx := context.Background()

	if _, err := s.ToggleDeckLike(ctx, "actor", 1, ActionLike); err != nil {
		t.Fatalf("ToggleDeckLike() error = %v", err)
	}
	result, err := s.ToggleDeckLike(ctx, "actor", 1, ActionUnlike)
	if err != nil {
		t.Fatalf("ToggleDeckLike() error = %v", err)
	}
	if result.Engaged || result.Count != 0 {
		t.Fatalf("ToggleDeckLike() result = %+v", result)
	}
	// The unlike schedules nothing new and retracts the pending like
	// notification.
	if len(notifier.sent) != 1 {
		t.Errorf("notifications scheduled = %d, want 1 (like only)", len(notifier.sent))
	}
	if len(notifier.pending) != 0 {
		t.Errorf("notifications pending = %d, want 0 after unlike", len(notifier.pending))
	}
}

func TestToggleDeckLikeCycleLeavesOneNotification(t *testing.T) {
	s, _, _, _, notifier := newTestService()
	ctx := context.Background()

	// Like, unlike, like again. The owner should end up with exactly one
	// notification, not one per like.
	for _, action := range []Action{ActionLike, ActionUnlike, ActionLike} {
		if _, err := s.ToggleDeckLike(ctx, "actor", 1, action); err != nil {
			t.Fatalf("ToggleDeckLike(%s) error = %v", action, err)
		}
	}

	if len(notifier.pending) != 1 {
		t.Fatalf("notifications pending = %d, want exactly 1", len(notifier.pending))
	}
	n := notifier.pending[0]
	if n.kind != models.NotificationLike || n.ownerID != "owner" || n.targetType != models.TargetDeck || n.targetID != 1 {
		t.Errorf("notification = %+v", n)
	}
}

func TestToggleDeckLikeRejectsFavoriteActions(t *testing.T) {
	s, _, _, _, _ := newTestService()
	if _, err := s.ToggleDeckLike(context.Background(), "actor", 1, ActionFavorite); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("ToggleDeckLike(favorite) error = %v, want ErrInvalidAction", err)
	}
}

func TestToggleCardFavorite(t *testing.T) {
	s, _, users, _, notifier := newTestService()
	ctx := context.Background()

	result, err := s.ToggleCardFavorite(ctx, "actor", 42, ActionFavorite)
	if err != nil {
		t.Fatalf("ToggleCardFavorite() error = %v", err)
	}
	if !result.Changed || result.Count != 1 {
		t.Fatalf("ToggleCardFavorite() result = %+v", result)
	}
	if !Has(users.user.FavoriteCards, int64(42)) {
		t.Errorf("FavoriteCards = %v, want to contain 42", users.user.FavoriteCards)
	}
	// Cards have no owner, so favorites never notify.
	if len(notifier.sent) != 0 {
		t.Errorf("notifications = %d, want 0", len(notifier.sent))
	}

	// Unknown cards are rejected before touching the user.
	if _, err := s.ToggleCardFavorite(ctx, "actor", 999, ActionFavorite); err == nil {
		t.Error("ToggleCardFavorite(unknown card) error = nil, want error")
	}
	if users.updates != 1 {
		t.Errorf("user updates = %d, want 1", users.updates)
	}
}

func TestToggleCommentLike(t *testing.T) {
	s, _, _, comments, notifier := newTestService()
	ctx := context.Background()

	result, err := s.ToggleCommentLike(ctx, "actor", 5, ActionLike)
	if err != nil {
		t.Fatalf("ToggleCommentLike() error = %v", err)
	}
	if !result.Engaged || result.Count != 1 {
		t.Fatalf("ToggleCommentLike() result = %+v", result)
	}
	if comments.updates != 1 {
		t.Errorf("comment updates = %d, want 1", comments.updates)
	}
	// The comment author owns the comment and gets notified.
	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.kind != models.NotificationLike || sent.ownerID != "owner" || sent.targetType != models.TargetComment || sent.targetID != 5 {
		t.Errorf("notification = %+v", sent)
	}

	// Repeat is a no-op.
	result, _ = s.ToggleCommentLike(ctx, "actor", 5, ActionLike)
	if result.Changed || comments.updates != 1 {
		t.Errorf("second like: result = %+v, updates = %d", result, comments.updates)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("notifications = %d, want 1 after repeat", len(notifier.sent))
	}

	// Unliking retracts the author's notification.
	if _, err := s.ToggleCommentLike(ctx, "actor", 5, ActionUnlike); err != nil {
		t.Fatalf("ToggleCommentLike() error = %v", err)
	}
	if len(notifier.pending) != 0 {
		t.Errorf("notifications pending = %d, want 0 after unlike", len(notifier.pending))
	}
}
