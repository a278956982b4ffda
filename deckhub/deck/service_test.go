package deck

import (
	"context"
	"errors"
	"testing"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/deckhubapp/deckhub/deckhub/deck/mock"
	"go.uber.org/mock/gomock"
)

// validInput is a legal 60-card submission: 4x of cards 1..5 plus 40 fire
// energy.
func validInput() Input {
	comp := fullComposition()
	return Input{
		Name:       "Mono Fire",
		IsPublic:   true,
		MainEnergy: comp.MainEnergy,
		Cards:      comp.Cards,
		Energy:     comp.Energy,
	}
}

func catalogMock(t *testing.T, known map[int64]bool) *mock.MockCatalog {
	catalog := mock.NewMockCatalog(gomock.NewController(t))
	catalog.EXPECT().
		Known(gomock.Any(), gomock.Any()).
		Return(known, nil).
		AnyTimes()
	return catalog
}

func TestServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil)

	s := NewService(store, catalogMock(t, knownCards(1, 2, 3, 4, 5)))

	deck, violations, err := s.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("Create() violations = %v, want none", violations)
	}
	if deck.CreatorID != "user-1" {
		t.Errorf("CreatorID = %q, want %q", deck.CreatorID, "user-1")
	}
	if deck.TotalCount() != DeckSize {
		t.Errorf("TotalCount() = %d, want %d", deck.TotalCount(), DeckSize)
	}
	if deck.Views != 0 || len(deck.Likes) != 0 {
		t.Errorf("new deck has social state: views=%d likes=%v", deck.Views, deck.Likes)
	}
}

func TestServiceCreateInvalidDoesNotPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	// No Create expectation: a rule violation must never reach the store.

	s := NewService(store, catalogMock(t, knownCards(1, 2, 3, 4, 5)))

	in := validInput()
	in.Energy[0].Count = 39

	deck, violations, err := s.Create(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if deck != nil {
		t.Fatalf("Create() deck = %v, want nil", deck)
	}
	if len(violations) != 1 || violations[0].Code != CodeTotalCountMismatch {
		t.Fatalf("Create() violations = %v, want one %s", violations, CodeTotalCountMismatch)
	}
}

func TestServiceUpdate(t *testing.T) {
	existing := &models.Deck{
		ID:        7,
		CreatorID: "user-1",
		Name:      "Old Name",
		Cards:     fullComposition().Cards,
		Energy:    fullComposition().Energy,
	}

	tests := []struct {
		name    string
		actorID string
		mutate  func(*Input)
		setup   func(store *mock.MockStore)
		wantErr error
		wantBad bool
	}{
		{
			name:    "owner update",
			actorID: "user-1",
			mutate:  func(in *Input) { in.Name = "New Name" },
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
				store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "not the owner",
			actorID: "user-2",
			mutate:  func(in *Input) {},
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
			},
			wantErr: ErrNotOwner,
		},
		{
			name:    "invalid replacement keeps stored deck",
			actorID: "user-1",
			mutate:  func(in *Input) { in.MainEnergy = nil },
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
				// No Update expectation: the last valid state must survive.
			},
			wantBad: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mock.NewMockStore(gomock.NewController(t))
			tt.setup(store)
			s := NewService(store, catalogMock(t, knownCards(1, 2, 3, 4, 5)))

			in := validInput()
			tt.mutate(&in)

			_, violations, err := s.Update(context.Background(), tt.actorID, 7, in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Update() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if tt.wantBad != (len(violations) > 0) {
				t.Fatalf("Update() violations = %v, wantBad %v", violations, tt.wantBad)
			}
		})
	}
}

func TestServiceClone(t *testing.T) {
	source := &models.Deck{
		ID:         3,
		CreatorID:  "owner",
		Name:       "Source",
		Cards:      fullComposition().Cards,
		Energy:     fullComposition().Energy,
		MainEnergy: fullComposition().MainEnergy,
		Likes:      []string{"a", "b"},
		Views:      99,
	}

	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	store.EXPECT().GetByID(gomock.Any(), int64(3)).Return(source, nil)
	store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deck *models.Deck) error {
			if deck.CreatorID != "cloner" {
				t.Errorf("clone CreatorID = %q, want %q", deck.CreatorID, "cloner")
			}
			if len(deck.Likes) != 0 || deck.Views != 0 {
				t.Errorf("clone kept social state: likes=%v views=%d", deck.Likes, deck.Views)
			}
			return nil
		})

	s := NewService(store, catalogMock(t, knownCards(1, 2, 3, 4, 5)))

	clone, violations, err := s.Clone(context.Background(), "cloner", 3)
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("Clone() violations = %v, want none", violations)
	}
	if clone.TotalCount() != source.TotalCount() {
		t.Errorf("clone TotalCount() = %d, want %d", clone.TotalCount(), source.TotalCount())
	}
}

func TestServiceGetBumpsViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	store.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&models.Deck{ID: 5, Views: 10}, nil)
	store.EXPECT().IncrementViews(gomock.Any(), int64(5)).Return(nil)

	s := NewService(store, catalogMock(t, nil))

	deck, err := s.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if deck.Views != 11 {
		t.Errorf("Views = %d, want 11", deck.Views)
	}
}

func TestServiceDelete(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		isAdmin bool
		setup   func(store *mock.MockStore)
		wantErr error
	}{
		{
			name:    "creator deletes",
			actorID: "owner",
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&models.Deck{ID: 9, CreatorID: "owner"}, nil)
				store.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)
			},
		},
		{
			name:    "admin deletes foreign deck",
			actorID: "mod",
			isAdmin: true,
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&models.Deck{ID: 9, CreatorID: "owner"}, nil)
				store.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)
			},
		},
		{
			name:    "stranger rejected",
			actorID: "user-2",
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&models.Deck{ID: 9, CreatorID: "owner"}, nil)
			},
			wantErr: ErrNotOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mock.NewMockStore(gomock.NewController(t))
			tt.setup(store)
			s := NewService(store, catalogMock(t, nil))

			err := s.Delete(context.Background(), tt.actorID, tt.isAdmin, 9)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
