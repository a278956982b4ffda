package engagement

import (
	"context"
	"fmt"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

type DeckStore interface {
	GetByID(ctx context.Context, id int64) (*models.Deck, error)
	UpdateLikes(ctx context.Context, id int64, likes []string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFavoriteCards(ctx context.Context, id string, cardIDs []int64) error
}

type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	UpdateLikes(ctx context.Context, id int64, likes []string) error
}

type CardResolver interface {
	Resolve(ctx context.Context, id int64) (*models.Card, error)
}

// Notifier schedules a notification for a state transition into Engaged on
// a foreign-owned target, and retracts it again on the reverse transition.
// Delivery is best-effort and never fails the toggle.
type Notifier interface {
	Notify(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64)
	Revoke(ctx context.Context, kind models.NotificationType, actorID, ownerID string, targetType models.TargetType, targetID int64)
}

type Service struct {
	decks    DeckStore
	users    UserStore
	comments CommentStore
	cards    CardResolver
	notifier Notifier
}

func NewService(decks DeckStore, users UserStore, comments CommentStore, cards CardResolver, notifier Notifier) *Service {
	return &Service{
		decks:    decks,
		users:    users,
		comments: comments,
		cards:    cards,
		notifier: notifier,
	}
}

// ToggleDeckLike applies a like/unlike action to a deck's likes set. A
// transition into Engaged on someone else's deck notifies the owner; the
// reverse transition retracts that notification instead of scheduling a
// new one, so repeated like/unlike cycles leave at most one.
func (s *Service) ToggleDeckLike(ctx context.Context, actorID string, deckID int64, action Action) (Result, error) {
	if action != ActionLike && action != ActionUnlike {
		return Result{}, ErrInvalidAction
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return Result{}, err
	}

	likes, result, err := Toggle(deck.Likes, actorID, action)
	if err != nil {
		return Result{}, err
	}

	if result.Changed {
		if err := s.decks.UpdateLikes(ctx, deckID, likes); err != nil {
			return Result{}, fmt.Errorf("failed to update likes: %w", err)
		}
		if result.Engaged {
			s.notifier.Notify(ctx, models.NotificationLike, actorID, deck.CreatorID, models.TargetDeck, deckID)
		} else {
			s.notifier.Revoke(ctx, models.NotificationLike, actorID, deck.CreatorID, models.TargetDeck, deckID)
		}
	}

	return result, nil
}

// ToggleCardFavorite applies a favorite/unfavorite action to the acting
// user's favorite-card set. Cards are platform reference data with no
// owner, so favorites never notify.
func (s *Service) ToggleCardFavorite(ctx context.Context, actorID string, cardID int64, action Action) (Result, error) {
	if action != ActionFavorite && action != ActionUnfavorite {
		return Result{}, ErrInvalidAction
	}

	if _, err := s.cards.Resolve(ctx, cardID); err != nil {
		return Result{}, err
	}

	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return Result{}, err
	}

	favorites, result, err := Toggle(user.FavoriteCards, cardID, action)
	if err != nil {
		return Result{}, err
	}

	if result.Changed {
		if err := s.users.UpdateFavoriteCards(ctx, actorID, favorites); err != nil {
			return Result{}, fmt.Errorf("failed to update favorites: %w", err)
		}
	}

	return result, nil
}

// ToggleCommentLike applies a like/unlike action to a comment's likes set.
// Comments are owned by their author, so transitions notify and retract
// the same way deck likes do.
func (s *Service) ToggleCommentLike(ctx context.Context, actorID string, commentID int64, action Action) (Result, error) {
	if action != ActionLike && action != ActionUnlike {
		return Result{}, ErrInvalidAction
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return Result{}, err
	}

	likes, result, err := Toggle(comment.Likes, actorID, action)
	if err != nil {
		return Result{}, err
	}

	if result.Changed {
		if err := s.comments.UpdateLikes(ctx, commentID, likes); err != nil {
			return Result{}, fmt.Errorf("failed to update likes: %w", err)
		}
		if result.Engaged {
			s.notifier.Notify(ctx, models.NotificationLike, actorID, comment.AuthorID, models.TargetComment, commentID)
		} else {
			s.notifier.Revoke(ctx, models.NotificationLike, actorID, comment.AuthorID, models.TargetComment, commentID)
		}
	}

	return result, nil
}
