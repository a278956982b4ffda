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

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetOrCreate(ctx context.Context, id string, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFavoriteCards(ctx context.Context, id string, cardIDs []int64) error
	Delete(ctx context.Context, id string) error
	GetUserCount(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Scan(ctx)
	return user, err
}

func (r *userRepository) GetOrCreate(ctx context.Context, id string, username string) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user = &models.User{
		ID:            id,
		Username:      username,
		Roles:         []string{},
		FavoriteCards: []int64{},
	}
	if err := r.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	user.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}

// UpdateFavoriteCards writes only the favorites set. Favorite toggles never
// touch the rest of the user record.
func (r *userRepository) UpdateFavoriteCards(ctx context.Context, id string, cardIDs []int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	if cardIDs == nil {
		cardIDs = []int64{}
	}
	data, err := json.Marshal(cardIDs)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	_, err = r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("favorite_cards = ?::jsonb", string(data)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *userRepository) GetUserCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Count(ctx)
	return int64(count), err
}
