package social

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

type fakeNotificationStore struct {
	created []*models.Notification
	err     error
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationStore) DeleteByTrigger(ctx context.Context, kind models.NotificationType, triggeredBy string, targetType models.TargetType, targetID int64) error {
	if f.err != nil {
		return f.err
	}
	kept := f.created[:0]
	for _, n := range f.created {
		if n.Type == kind && n.TriggeredBy == triggeredBy && n.TargetType == targetType && n.TargetID == targetID {
			continue
		}
		kept = append(kept, n)
	}
	f.created = kept
	return nil
}

func TestEmitterNotifyForeignOwner(t *testing.T) {
	store := &fakeNotificationStore{}
	e := NewEmitter(store)

	e.Notify(context.Background(), models.NotificationLike, "actor", "owner", models.TargetDeck, 7)

	if len(store.created) != 1 {
		t.Fatalf("created = %d notifications, want 1", len(store.created))
	}
	n := store.created[0]
	if n.UserID != "owner" || n.TriggeredBy != "actor" {
		t.Errorf("notification routing = recipient %q triggered_by %q", n.UserID, n.TriggeredBy)
	}
	if n.TargetType != models.TargetDeck || n.TargetID != 7 {
		t.Errorf("notification target = %s/%d", n.TargetType, n.TargetID)
	}
	if !strings.Contains(n.Message, "liked") {
		t.Errorf("Message = %q", n.Message)
	}
	if n.Read {
		t.Error("new notification is already read")
	}
}

func TestEmitterSelfActionProducesNothing(t *testing.T) {
	store := &fakeNotificationStore{}
	e := NewEmitter(store)

	e.Notify(context.Background(), models.NotificationLike, "owner", "owner", models.TargetDeck, 7)

	if len(store.created) != 0 {
		t.Fatalf("created = %d notifications, want 0", len(store.created))
	}
}

func TestEmitterOwnerlessTargetProducesNothing(t *testing.T) {
	store := &fakeNotificationStore{}
	e := NewEmitter(store)

	e.Notify(context.Background(), models.NotificationComment, "actor", "", models.TargetCard, 42)

	if len(store.created) != 0 {
		t.Fatalf("created = %d notifications, want 0", len(store.created))
	}
}

func TestEmitterRevokeRemovesPendingNotification(t *testing.T) {
	store := &fakeNotificationStore{}
	e := NewEmitter(store)
	ctx := context.Background()

	e.Notify(ctx, models.NotificationLike, "actor", "owner", models.TargetDeck, 7)
	e.Notify(ctx, models.NotificationLike, "other", "owner", models.TargetDeck, 7)

	e.Revoke(ctx, models.NotificationLike, "actor", "owner", models.TargetDeck, 7)

	// Only the revoking actor's notification is removed.
	if len(store.created) != 1 {
		t.Fatalf("created = %d notifications, want 1", len(store.created))
	}
	if store.created[0].TriggeredBy != "other" {
		t.Errorf("surviving notification triggered_by = %q, want %q", store.created[0].TriggeredBy, "other")
	}
}

func TestEmitterRevokeSkipsSelfAndOwnerless(t *testing.T) {
	store := &fakeNotificationStore{}
	e := NewEmitter(store)
	ctx := context.Background()

	e.Notify(ctx, models.NotificationLike, "actor", "owner", models.TargetDeck, 7)

	e.Revoke(ctx, models.NotificationLike, "owner", "owner", models.TargetDeck, 7)
	e.Revoke(ctx, models.NotificationLike, "actor", "", models.TargetDeck, 7)

	if len(store.created) != 1 {
		t.Fatalf("created = %d notifications, want 1", len(store.created))
	}
}

// A failing notification store must never propagate: delivery is
// best-effort.
func TestEmitterSwallowsStoreErrors(t *testing.T) {
	store := &fakeNotificationStore{err: errors.New("db down")}
	e := NewEmitter(store)

	e.Notify(context.Background(), models.NotificationLike, "actor", "owner", models.TargetDeck, 7)
	e.Revoke(context.Background(), models.NotificationLike, "actor", "owner", models.TargetDeck, 7)
}

func TestMessageFor(t *testing.T) {
	tests := []struct {
		kind models.NotificationType
		want string
	}{
		{models.NotificationLike, "Someone liked your deck"},
		{models.NotificationComment, "Someone commented on your deck"},
		{models.NotificationFollow, "Someone started following you"},
		{models.NotificationType("weird"), "You have a new notification"},
	}
	for _, tt := range tests {
		if got := messageFor(tt.kind, models.TargetDeck); got != tt.want {
			t.Errorf("messageFor(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
