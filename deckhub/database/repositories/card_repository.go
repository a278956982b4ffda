package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/uptrace/bun"
)

const maxBatchSize = 1000

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error)
	GetByName(ctx context.Context, name string) ([]*models.Card, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetByAttribute(ctx context.Context, attribute models.EnergyType) ([]*models.Card, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*models.Card, int, error)
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id int64) error
	BulkCreate(ctx context.Context, cards []*models.Card) (int, error)
	GetCardCount(ctx context.Context) (int64, error)
}

type cardRepository struct {
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(card).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

func (r *cardRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	if len(ids) == 0 {
		return nil, nil
	}

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) GetByName(ctx context.Context, name string) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("LOWER(name) = LOWER(?) OR LOWER(name_en) = LOWER(?)", name, name).
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Order("id ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) GetByAttribute(ctx context.Context, attribute models.EnergyType) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("attribute = ?", attribute).
		Order("id ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) Search(ctx context.Context, query string, offset, limit int) ([]*models.Card, int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	q := r.db.NewSelect().Model((*models.Card)(nil))
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("name ILIKE ? OR name_en ILIKE ?", pattern, pattern)
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	var cards []*models.Card
	err = q.Model(&cards).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search cards: %w", err)
	}

	return cards, total, nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	card.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(card).
		WherePK().
		Exec(ctx)
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Card)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *cardRepository) BulkCreate(ctx context.Context, cards []*models.Card) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	if len(cards) == 0 {
		return 0, nil
	}

	now := time.Now()
	for _, card := range cards {
		card.CreatedAt = now
		card.UpdatedAt = now
	}

	inserted := 0
	for start := 0; start < len(cards); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(cards) {
			end = len(cards)
		}

		batch := cards[start:end]
		if _, err := r.db.NewInsert().
			Model(&batch).
			Exec(ctx); err != nil {
			return inserted, fmt.Errorf("failed to bulk insert cards: %w", err)
		}
		inserted += len(batch)
	}

	return inserted, nil
}

func (r *cardRepository) GetCardCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Count(ctx)
	return int64(count), err
}
