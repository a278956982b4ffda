package deck

import (
	"context"
	"errors"
	"fmt"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

var (
	// ErrNotOwner means the acting user may not modify this deck.
	ErrNotOwner = errors.New("deck: not the deck owner")
)

// Store is the persistence surface the deck service needs. Single-record
// writes only; the service never assumes multi-record transactions.
type Store interface {
	Create(ctx context.Context, deck *models.Deck) error
	GetByID(ctx context.Context, id int64) (*models.Deck, error)
	Update(ctx context.Context, deck *models.Deck) error
	IncrementViews(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Catalog resolves which card IDs exist.
type Catalog interface {
	Known(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// Input is a whole candidate deck as submitted by a client.
type Input struct {
	Name        string
	Description string
	IsPublic    bool
	MainEnergy  []models.EnergyType
	Tags        []string
	Cards       []models.CardSelection
	Energy      []models.EnergySelection
}

type Service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// validate resolves the input's card IDs and runs the composition rules.
func (s *Service) validate(ctx context.Context, in Input) ([]Violation, error) {
	ids := make([]int64, 0, len(in.Cards))
	for _, sel := range in.Cards {
		ids = append(ids, sel.CardID)
	}

	known, err := s.catalog.Known(ctx, ids)
	if err != nil {
		return nil, err
	}

	return Validate(Composition{
		Cards:      in.Cards,
		Energy:     in.Energy,
		MainEnergy: in.MainEnergy,
	}, known)
}

// Create validates and persists a new deck for the acting user. On rule
// violations nothing is written and the violations are returned.
func (s *Service) Create(ctx context.Context, actorID string, in Input) (*models.Deck, []Violation, error) {
	violations, err := s.validate(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	if len(violations) > 0 {
		return nil, violations, nil
	}

	b := NewBuilder().
		SetInfo(in.Name, in.Description, in.IsPublic).
		SetTags(in.Tags).
		SetMainEnergy(in.MainEnergy)
	deck := b.Build(actorID)
	deck.Cards = append([]models.CardSelection{}, in.Cards...)
	deck.Energy = append([]models.EnergySelection{}, in.Energy...)

	if err := s.store.Create(ctx, deck); err != nil {
		return nil, nil, fmt.Errorf("failed to persist deck: %w", err)
	}
	return deck, nil, nil
}

// Update re-validates the whole replacement list and only then overwrites
// the stored deck, so a failed edit leaves the last valid state untouched.
func (s *Service) Update(ctx context.Context, actorID string, deckID int64, in Input) (*models.Deck, []Violation, error) {
	existing, err := s.store.GetByID(ctx, deckID)
	if err != nil {
		return nil, nil, err
	}
	if existing.CreatorID != actorID {
		return nil, nil, ErrNotOwner
	}

	violations, err := s.validate(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	if len(violations) > 0 {
		return nil, violations, nil
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.IsPublic = in.IsPublic
	existing.Tags = append([]string{}, in.Tags...)
	existing.MainEnergy = append([]models.EnergyType{}, in.MainEnergy...)
	existing.Cards = append([]models.CardSelection{}, in.Cards...)
	existing.Energy = append([]models.EnergySelection{}, in.Energy...)

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, nil, fmt.Errorf("failed to persist deck: %w", err)
	}
	return existing, nil, nil
}

// Clone copies an existing deck's lists into a fresh deck owned by the
// acting user, with likes and views reset. The clone is re-validated like
// any new deck.
func (s *Service) Clone(ctx context.Context, actorID string, deckID int64) (*models.Deck, []Violation, error) {
	source, err := s.store.GetByID(ctx, deckID)
	if err != nil {
		return nil, nil, err
	}

	b := FromDeck(source)
	clone := b.Build(actorID)

	violations, err := s.validate(ctx, Input{
		Name:       clone.Name,
		MainEnergy: clone.MainEnergy,
		Cards:      clone.Cards,
		Energy:     clone.Energy,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(violations) > 0 {
		return nil, violations, nil
	}

	if err := s.store.Create(ctx, clone); err != nil {
		return nil, nil, fmt.Errorf("failed to persist deck: %w", err)
	}
	return clone, nil, nil
}

// Get returns a deck and bumps its view counter. The view bump is a plain
// SQL increment, not part of the engagement set semantics.
func (s *Service) Get(ctx context.Context, deckID int64) (*models.Deck, error) {
	deck, err := s.store.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if err := s.store.IncrementViews(ctx, deckID); err == nil {
		deck.Views++
	}
	return deck, nil
}

// Delete removes a deck; only the creator or an admin may do so.
func (s *Service) Delete(ctx context.Context, actorID string, isAdmin bool, deckID int64) error {
	deck, err := s.store.GetByID(ctx, deckID)
	if err != nil {
		return err
	}
	if deck.CreatorID != actorID && !isAdmin {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, deckID)
}
