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

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	GetByTarget(ctx context.Context, targetType models.TargetType, targetID int64) ([]*models.CommentWithAuthor, error)
	UpdateLikes(ctx context.Context, id int64, likes []string) error
	Delete(ctx context.Context, id int64) error
	GetCommentCount(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *bun.DB
}

func NewCommentRepository(db *bun.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(comment).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	comment := new(models.Comment)
	err := r.db.NewSelect().
		Model(comment).
		Where("cm.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// GetByTarget lists comments for a target newest-first with the author's
// public profile fields joined in.
func (r *commentRepository) GetByTarget(ctx context.Context, targetType models.TargetType, targetID int64) ([]*models.CommentWithAuthor, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	var comments []*models.CommentWithAuthor
	err := r.db.NewSelect().
		Model(&comments).
		ModelTableExpr("comments AS cm").
		ColumnExpr("cm.*").
		ColumnExpr("u.username AS author_name").
		ColumnExpr("u.avatar_url AS author_avatar").
		Join("LEFT JOIN users AS u ON u.id = cm.author_id").
		Where("cm.target_type = ? AND cm.target_id = ?", targetType, targetID).
		Order("cm.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) UpdateLikes(ctx context.Context, id int64, likes []string) error {
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
		Model((*models.Comment)(nil)).
		Set("likes = ?::jsonb", string(data)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *commentRepository) GetCommentCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Comment)(nil)).
		Count(ctx)
	return int64(count), err
}
