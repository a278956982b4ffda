package migration

import (
	"strings"
	"testing"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConvertUser(t *testing.T) {
	mu := MongoUser{
		ID:            primitive.NewObjectID(),
		UserID:        "  user-1  ",
		Username:      "alice\x00",
		Avatar:        "https://cdn.example.com/a.png",
		FavoriteCards: []interface{}{int32(7), float64(12), "19", "not-a-number"},
	}

	user, err := convertUser(mu)
	if err != nil {
		t.Fatalf("convertUser() error = %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("ID = %q, want %q", user.ID, "user-1")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if len(user.FavoriteCards) != 3 {
		t.Errorf("FavoriteCards = %v, want 3 entries", user.FavoriteCards)
	}
	if user.Roles == nil {
		t.Error("Roles = nil, want empty slice")
	}
}

func TestConvertUserMissingID(t *testing.T) {
	if _, err := convertUser(MongoUser{ID: primitive.NewObjectID(), UserID: "   "}); err == nil {
		t.Error("convertUser() error = nil, want error for blank userId")
	}
}

func TestConvertDeck(t *testing.T) {
	md := MongoDeck{
		ID:        primitive.NewObjectID(),
		CreatorID: "creator",
		Name:      "Grass Rush",
		Public:    true,
		Cards: []MongoCardRef{
			{CardID: int32(1), Count: 4},
			{CardID: "2", Count: 2},
		},
		Energy:     map[string]int32{"grass": 20, "fire": 0},
		MainEnergy: []string{"grass"},
		Likes:      []string{"a", "a", " ", "b"},
		Views:      31,
	}

	deck, err := convertDeck(md)
	if err != nil {
		t.Fatalf("convertDeck() error = %v", err)
	}
	if len(deck.Cards) != 2 || deck.Cards[1].CardID != 2 {
		t.Errorf("Cards = %v", deck.Cards)
	}
	// zero-count energy rows are dropped
	if len(deck.Energy) != 1 || deck.Energy[0].Type != models.EnergyGrass || deck.Energy[0].Count != 20 {
		t.Errorf("Energy = %v", deck.Energy)
	}
	if len(deck.Likes) != 2 {
		t.Errorf("Likes = %v, want deduped pair", deck.Likes)
	}
	if deck.Views != 31 {
		t.Errorf("Views = %d, want 31", deck.Views)
	}
}

func TestConvertDeckRejectsBadData(t *testing.T) {
	base := MongoDeck{ID: primitive.NewObjectID(), CreatorID: "creator"}

	tests := []struct {
		name   string
		mutate func(*MongoDeck)
	}{
		{"malformed card ref", func(d *MongoDeck) {
			d.Cards = []MongoCardRef{{CardID: "x", Count: 1}}
		}},
		{"zero count card ref", func(d *MongoDeck) {
			d.Cards = []MongoCardRef{{CardID: int64(1), Count: 0}}
		}},
		{"unknown energy type", func(d *MongoDeck) {
			d.Energy = map[string]int32{"plasma": 3}
		}},
		{"unknown main energy", func(d *MongoDeck) {
			d.MainEnergy = []string{"plasma"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := base
			tt.mutate(&md)
			if _, err := convertDeck(md); err == nil {
				t.Error("convertDeck() error = nil, want error")
			}
		})
	}
}

func TestConvertCommentResolvesDeckTarget(t *testing.T) {
	legacyDeck := primitive.NewObjectID()
	deckIDs := map[string]int64{legacyDeck.Hex(): 42}

	mc := MongoComment{
		ID:         primitive.NewObjectID(),
		TargetType: "deck",
		TargetID:   legacyDeck,
		AuthorID:   "author",
		Content:    "  solid list  ",
	}

	comment, err := convertComment(mc, deckIDs)
	if err != nil {
		t.Fatalf("convertComment() error = %v", err)
	}
	if comment.TargetID != 42 {
		t.Errorf("TargetID = %d, want 42", comment.TargetID)
	}
	if comment.Content != "solid list" {
		t.Errorf("Content = %q", comment.Content)
	}
}

func TestConvertCommentUnmigratedDeck(t *testing.T) {
	mc := MongoComment{
		ID:         primitive.NewObjectID(),
		TargetType: "deck",
		TargetID:   primitive.NewObjectID(),
		Content:    "orphan",
	}
	if _, err := convertComment(mc, map[string]int64{}); err == nil {
		t.Error("convertComment() error = nil, want error for unmigrated deck")
	}
}

func TestResolveTargetID(t *testing.T) {
	legacyDeck := primitive.NewObjectID()
	deckIDs := map[string]int64{legacyDeck.Hex(): 7}

	tests := []struct {
		name       string
		targetType models.TargetType
		raw        interface{}
		want       int64
		wantErr    bool
	}{
		{"deck objectid", models.TargetDeck, legacyDeck, 7, false},
		{"deck hex string", models.TargetDeck, legacyDeck.Hex(), 7, false},
		{"deck numeric fallback", models.TargetDeck, int64(99), 99, false},
		{"card numeric", models.TargetCard, int32(5), 5, false},
		{"card garbage", models.TargetCard, "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTargetID(tt.targetType, tt.raw, deckIDs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("resolveTargetID() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTargetID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTargetID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCleanseString(t *testing.T) {
	in := "  hello\x00 \x01world\t\n  "
	got := cleanseString(in)
	if got != "hello world" {
		t.Errorf("cleanseString(%q) = %q, want %q", in, got, "hello world")
	}
	if cleanseString(strings.Repeat("\x00", 4)) != "" {
		t.Error("cleanseString(control chars) should be empty")
	}
}
