package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

// fakeCardRepo serves a fixed card set and counts repository hits so tests
// can see the cache working.
type fakeCardRepo struct {
	cards map[int64]*models.Card
	hits  int
}

func newFakeCardRepo(cards ...*models.Card) *fakeCardRepo {
	repo := &fakeCardRepo{cards: make(map[int64]*models.Card, len(cards))}
	for _, c := range cards {
		repo.cards[c.ID] = c
	}
	return repo
}

func (f *fakeCardRepo) Create(ctx context.Context, card *models.Card) error {
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardRepo) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	f.hits++
	card, ok := f.cards[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return card, nil
}

func (f *fakeCardRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error) {
	f.hits++
	var found []*models.Card
	for _, id := range ids {
		if card, ok := f.cards[id]; ok {
			found = append(found, card)
		}
	}
	return found, nil
}

func (f *fakeCardRepo) GetByName(ctx context.Context, name string) ([]*models.Card, error) {
	return nil, nil
}

func (f *fakeCardRepo) GetAll(ctx context.Context) ([]*models.Card, error) {
	f.hits++
	all := make([]*models.Card, 0, len(f.cards))
	for _, card := range f.cards {
		all = append(all, card)
	}
	return all, nil
}

func (f *fakeCardRepo) GetByAttribute(ctx context.Context, attribute models.EnergyType) ([]*models.Card, error) {
	return nil, nil
}

func (f *fakeCardRepo) Search(ctx context.Context, query string, offset, limit int) ([]*models.Card, int, error) {
	return nil, 0, nil
}

func (f *fakeCardRepo) Update(ctx context.Context, card *models.Card) error { return nil }
func (f *fakeCardRepo) Delete(ctx context.Context, id int64) error          { return nil }

func (f *fakeCardRepo) BulkCreate(ctx context.Context, cards []*models.Card) (int, error) {
	for _, c := range cards {
		f.cards[c.ID] = c
	}
	return len(cards), nil
}

func (f *fakeCardRepo) GetCardCount(ctx context.Context) (int64, error) {
	return int64(len(f.cards)), nil
}

func TestResolveCachesCards(t *testing.T) {
	repo := newFakeCardRepo(&models.Card{ID: 1, Name: "Blazikit"})
	s := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		card, err := s.Resolve(ctx, 1)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if card.Name != "Blazikit" {
			t.Errorf("Resolve() = %+v", card)
		}
	}
	if repo.hits != 1 {
		t.Errorf("repository hits = %d, want 1", repo.hits)
	}
}

func TestResolveUnknownCard(t *testing.T) {
	s := NewService(newFakeCardRepo())

	_, err := s.Resolve(context.Background(), 99)
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrCardNotFound", err)
	}
}

func TestKnown(t *testing.T) {
	repo := newFakeCardRepo(&models.Card{ID: 1}, &models.Card{ID: 2})
	s := NewService(repo)
	ctx := context.Background()

	known, err := s.Known(ctx, []int64{1, 2, 99})
	if err != nil {
		t.Fatalf("Known() error = %v", err)
	}
	if !known[1] || !known[2] {
		t.Errorf("Known() = %v, want 1 and 2 resolved", known)
	}
	if known[99] {
		t.Errorf("Known() resolved unknown card 99")
	}

	// Second call is served from cache.
	hits := repo.hits
	if _, err := s.Known(ctx, []int64{1, 2}); err != nil {
		t.Fatalf("Known() error = %v", err)
	}
	if repo.hits != hits {
		t.Errorf("repository hits grew from %d to %d on cached lookup", hits, repo.hits)
	}
}

func TestInvalidate(t *testing.T) {
	repo := newFakeCardRepo(&models.Card{ID: 1})
	s := NewService(repo)
	ctx := context.Background()

	if _, err := s.Resolve(ctx, 1); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	s.Invalidate(1)
	if _, err := s.Resolve(ctx, 1); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if repo.hits != 2 {
		t.Errorf("repository hits = %d, want 2 after invalidation", repo.hits)
	}
}

func TestSearchByName(t *testing.T) {
	repo := newFakeCardRepo(
		&models.Card{ID: 1, Name: "Blazikit", NameEN: "Blazikit"},
		&models.Card{ID: 2, Name: "Aquarion", NameEN: "Aquarion"},
		&models.Card{ID: 3, Name: "Blazewing", NameEN: "Blazewing"},
	)
	s := NewService(repo)

	results, err := s.SearchByName(context.Background(), "blaz", 10)
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("SearchByName() = %d results, want 2", len(results))
	}
	for _, card := range results {
		if card.ID == 2 {
			t.Errorf("SearchByName() matched %q", card.Name)
		}
	}
}
