package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/uptrace/bun"
)

type DeckRepository interface {
	Create(ctx context.Context, deck *models.Deck) error
	GetByID(ctx context.Context, id int64) (*models.Deck, error)
	GetByCreator(ctx context.Context, creatorID string) ([]*models.Deck, error)
	GetPublic(ctx context.Context, offset, limit int) ([]*models.Deck, int, error)
	Update(ctx context.Context, deck *models.Deck) error
	UpdateLikes(ctx context.Context, id int64, likes []string) error
	IncrementViews(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	GetDeckCount(ctx context.Context) (int64, error)
}

type deckRepository struct {
	db *bun.DB
}

func NewDeckRepository(db *bun.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	deck.CreatedAt = time.Now()
	deck.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(deck).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *deckRepository) GetByID(ctx context.Context, id int64) (*models.Deck, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	deck := new(models.Deck)
	err := r.db.NewSelect().
		Model(deck).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return deck, nil
}

func (r *deckRepository) GetByCreator(ctx context.Context, creatorID string) ([]*models.Deck, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	var decks []*models.Deck
	err := r.db.NewSelect().
		Model(&decks).
		Where("creator_id = ?", creatorID).
		Order("updated_at DESC").
		Scan(ctx)
	return decks, err
}

func (r *deckRepository) GetPublic(ctx context.Context, offset, limit int) ([]*models.Deck, int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	q := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Where("is_public")

	total, err := q.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count decks: %w", err)
	}

	var decks []*models.Deck
	err = r.db.NewSelect().
		Model(&decks).
		Where("is_public").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list public decks: %w", err)
	}

	return decks, total, nil
}

// Update replaces the whole deck row. Callers must only pass decks that
// already passed validation so a failed edit never half-applies.
func (r *deckRepository) Update(ctx context.Context, deck *models.Deck) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	deck.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(deck).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateLikes writes only the likes set, leaving the rest of the deck
// untouched. Like toggles never re-run full deck validation.
func (r *deckRepository) UpdateLikes(ctx context.Context, id int64, likes []string) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	if likes == nil {
		likes = []string{}
	}
	data, err := json.Marshal(likes)
	if err != nil {
		return fmt.Errorf("failed to encode likes: %w", err)
	}

	_, err = r.db.NewUpdate().
		Model((*models.Deck)(nil)).
		Set("likes = ?::jsonb", string(data)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *deckRepository) IncrementViews(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.Deck)(nil)).
		Set("views = views + 1").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Deck)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *deckRepository) GetDeckCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Count(ctx)
	return int64(count), err
}
