package repositories

import (
	"context"
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/uptrace/bun"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	CountAllUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id int64) error
	DeleteByTrigger(ctx context.Context, kind models.NotificationType, triggeredBy string, targetType models.TargetType, targetID int64) error
}

type notificationRepository struct {
	db *bun.DB
}

func NewNotificationRepository(db *bun.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	notification.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(notification).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *notificationRepository) GetByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Notification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	total, err := r.db.NewSelect().
		Model((*models.Notification)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var notifications []*models.Notification
	err = r.db.NewSelect().
		Model(&notifications).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	return notifications, total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Notification)(nil)).
		Where("user_id = ? AND NOT read", userID).
		Count(ctx)
	return int64(count), err
}

func (r *notificationRepository) CountAllUnread(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Notification)(nil)).
		Where("NOT read").
		Count(ctx)
	return int64(count), err
}

// MarkRead only flips notifications owned by userID so one user cannot
// clear another user's inbox.
func (r *notificationRepository) MarkRead(ctx context.Context, id int64, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.Notification)(nil)).
		Set("read = true").
		Where("id = ? AND user_id = ?", id, userID).
		Exec(ctx)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.Notification)(nil)).
		Set("read = true").
		Where("user_id = ? AND NOT read", userID).
		Exec(ctx)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Notification)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// DeleteByTrigger removes the notifications a specific action produced,
// matched by kind, actor and target. Used to retract a like notification
// once the like is undone.
func (r *notificationRepository) DeleteByTrigger(ctx context.Context, kind models.NotificationType, triggeredBy string, targetType models.TargetType, targetID int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Notification)(nil)).
		Where("type = ? AND triggered_by = ? AND target_type = ? AND target_id = ?", kind, triggeredBy, targetType, targetID).
		Exec(ctx)
	return err
}
