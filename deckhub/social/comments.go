package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

var (
	// ErrEmptyContent rejects empty or whitespace-only comments before any
	// persistence call.
	ErrEmptyContent = errors.New("social: comment content is empty")
	// ErrInvalidTarget rejects unknown target types.
	ErrInvalidTarget = errors.New("social: invalid comment target")
)

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByTarget(ctx context.Context, targetType models.TargetType, targetID int64) ([]*models.CommentWithAuthor, error)
}

// OwnerResolver maps a target to the user who owns it. Targets without an
// owner resolve to "".
type OwnerResolver interface {
	OwnerOf(ctx context.Context, targetType models.TargetType, targetID int64) (string, error)
}

// Notifier is satisfied by the Emitter.
type Notifier interface {
	Notify(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64)
}

// CommentService appends comments to targets and fans out notifications to
// the target owner.
type CommentService struct {
	store    CommentStore
	owners   OwnerResolver
	notifier Notifier
}

func NewCommentService(store CommentStore, owners OwnerResolver, notifier Notifier) *CommentService {
	return &CommentService{
		store:    store,
		owners:   owners,
		notifier: notifier,
	}
}

// Post persists a comment and notifies the target owner. Whitespace-only
// content is rejected before anything is written.
func (s *CommentService) Post(ctx context.Context, actorID string, targetType models.TargetType, targetID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if !targetType.Valid() {
		return nil, ErrInvalidTarget
	}

	comment := &models.Comment{
		TargetType: targetType,
		TargetID:   targetID,
		AuthorID:   actorID,
		Content:    content,
		Likes:      []string{},
	}

	if err := s.store.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to persist comment: %w", err)
	}

	owner, err := s.owners.OwnerOf(ctx, targetType, targetID)
	if err == nil {
		s.notifier.Notify(ctx, models.NotificationComment, actorID, owner, targetType, targetID)
	}

	return comment, nil
}

// List returns a target's comments newest-first with author profile fields.
func (s *CommentService) List(ctx context.Context, targetType models.TargetType, targetID int64) ([]*models.CommentWithAuthor, error) {
	if !targetType.Valid() {
		return nil, ErrInvalidTarget
	}
	return s.store.GetByTarget(ctx, targetType, targetID)
}

type DeckOwnerStore interface {
	GetByID(ctx context.Context, id int64) (*models.Deck, error)
}

// Owners resolves target ownership. Decks belong to their creator; cards,
// events and posts are platform content with no owning user.
type Owners struct {
	decks DeckOwnerStore
}

func NewOwners(decks DeckOwnerStore) *Owners {
	return &Owners{decks: decks}
}

func (o *Owners) OwnerOf(ctx context.Context, targetType models.TargetType, targetID int64) (string, error) {
	switch targetType {
	case models.TargetDeck:
		deck, err := o.decks.GetByID(ctx, targetID)
		if err != nil {
			return "", err
		}
		return deck.CreatorID, nil
	default:
		return "", nil
	}
}
