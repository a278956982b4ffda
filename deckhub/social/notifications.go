// Package social covers the cross-entity side effects of engagement:
// comment threads and the notifications they and like-toggles fan out.
package social

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	DeleteByTrigger(ctx context.Context, kind models.NotificationType, triggeredBy string, targetType models.TargetType, targetID int64) error
}

// Emitter creates notifications for actions on foreign-owned targets.
// Persistence failures are logged and swallowed: delivery is best-effort
// and must never fail the triggering action.
type Emitter struct {
	store NotificationStore
}

func NewEmitter(store NotificationStore) *Emitter {
	return &Emitter{store: store}
}

// Notify creates a notification iff the actor and the target owner differ.
// Self-actions and ownerless targets produce nothing.
func (e *Emitter) Notify(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64) {
	if ownerID == "" || actorID == ownerID {
		return
	}

	notification := &models.Notification{
		Type:        kind,
		Message:     messageFor(kind, targetType),
		TargetType:  targetType,
		TargetID:    targetID,
		UserID:      ownerID,
		TriggeredBy: actorID,
	}

	if err := e.store.Create(ctx, notification); err != nil {
		slog.Error("Failed to create notification",
			slog.String("kind", string(kind)),
			slog.String("recipient", ownerID),
			slog.String("triggered_by", actorID),
			slog.String("error", err.Error()))
	}
}

// Revoke retracts the notification an earlier action produced, once the
// action is undone. Best-effort like Notify.
func (e *Emitter) Revoke(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64) {
	if ownerID == "" || actorID == ownerID {
		return
	}

	if err := e.store.DeleteByTrigger(ctx, kind, actorID, targetType, targetID); err != nil {
		slog.Error("Failed to revoke notification",
			slog.String("kind", string(kind)),
			slog.String("recipient", ownerID),
			slog.String("triggered_by", actorID),
			slog.String("error", err.Error()))
	}
}

func messageFor(kind models.NotificationType, targetType models.TargetType) string {
	switch kind {
	case models.NotificationLike:
		return fmt.Sprintf("Someone liked your %s", targetType)
	case models.NotificationComment:
		return fmt.Sprintf("Someone commented on your %s", targetType)
	case models.NotificationFollow:
		return "Someone started following you"
	case models.NotificationMention:
		return fmt.Sprintf("Someone mentioned you in a %s", targetType)
	default:
		return "You have a new notification"
	}
}
