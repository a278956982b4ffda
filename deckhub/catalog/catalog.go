// Package catalog is the read-only card lookup service consumed by the deck
// validator and composer. Card attributes are immutable reference data, so
// resolved cards are held in an LRU cache in front of the repository.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/deckhubapp/deckhub/deckhub/database/repositories"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

const cacheSize = 10000

// ErrCardNotFound marks a card ID that does not resolve, as opposed to an
// infrastructure failure while looking it up.
var ErrCardNotFound = errors.New("catalog: card not found")

type Service struct {
	cards repositories.CardRepository
	cache *lru.Cache
}

func NewService(cards repositories.CardRepository) *Service {
	cache, _ := lru.New(cacheSize)
	return &Service{
		cards: cards,
		cache: cache,
	}
}

// Resolve returns the immutable attribute set for a card ID.
func (s *Service) Resolve(ctx context.Context, id int64) (*models.Card, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached.(*models.Card), nil
	}

	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to resolve card %d: %w", id, err)
	}

	s.cache.Add(id, card)
	return card, nil
}

// Known reports which of the given card IDs resolve. Unresolved IDs are
// simply absent from the result; only infrastructure failures error.
func (s *Service) Known(ctx context.Context, ids []int64) (map[int64]bool, error) {
	known := make(map[int64]bool, len(ids))

	var missing []int64
	for _, id := range ids {
		if _, ok := s.cache.Get(id); ok {
			known[id] = true
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		cards, err := s.cards.GetByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cards: %w", err)
		}
		for _, card := range cards {
			s.cache.Add(card.ID, card)
			known[card.ID] = true
		}
	}

	return known, nil
}

// Invalidate drops a card from the cache after catalog maintenance.
func (s *Service) Invalidate(id int64) {
	s.cache.Remove(id)
}

// cardSearchItems implements fuzzy.Source over catalog cards.
type cardSearchItems []*models.Card

func (items cardSearchItems) Len() int {
	return len(items)
}

func (items cardSearchItems) String(i int) string {
	return strings.ToLower(items[i].Name + " " + items[i].NameEN)
}

// SearchByName ranks catalog cards against the query by fuzzy match.
func (s *Service) SearchByName(ctx context.Context, query string, limit int) ([]*models.Card, error) {
	cards, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := cardSearchItems(cards)
	matches := fuzzy.FindFrom(strings.ToLower(strings.TrimSpace(query)), items)

	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}

	results := make([]*models.Card, 0, limit)
	for _, match := range matches[:limit] {
		results = append(results, items[match.Index])
	}
	return results, nil
}
