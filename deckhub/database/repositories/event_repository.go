package repositories

import (
	"context"
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/uptrace/bun"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetUpcoming(ctx context.Context, limit int) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

type eventRepository struct {
	db *bun.DB
}

func NewEventRepository(db *bun.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(event).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	event := new(models.Event)
	err := r.db.NewSelect().
		Model(event).
		Where("id = ?", id).
		Scan(ctx)
	return event, err
}

func (r *eventRepository) GetUpcoming(ctx context.Context, limit int) ([]*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	var events []*models.Event
	err := r.db.NewSelect().
		Model(&events).
		Where("is_public AND ends_at > ?", time.Now()).
		Order("starts_at ASC").
		Limit(limit).
		Scan(ctx)
	return events, err
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	event.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(event).
		WherePK().
		Exec(ctx)
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
