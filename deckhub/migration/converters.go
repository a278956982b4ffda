package migration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func convertUser(mu MongoUser) (*models.User, error) {
	id := strings.TrimSpace(mu.UserID)
	if id == "" {
		return nil, fmt.Errorf("user %s has no userId", mu.ID.Hex())
	}

	now := time.Now()
	createdAt := mu.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	favorites := make([]int64, 0, len(mu.FavoriteCards))
	for _, raw := range mu.FavoriteCards {
		if cardID, ok := toInt64(raw); ok {
			favorites = append(favorites, cardID)
		}
	}

	roles := mu.Roles
	if roles == nil {
		roles = []string{}
	}

	return &models.User{
		ID:            id,
		Username:      cleanseString(mu.Username),
		AvatarURL:     strings.TrimSpace(mu.Avatar),
		Email:         strings.TrimSpace(mu.Email),
		Roles:         roles,
		FavoriteCards: favorites,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}, nil
}

func convertDeck(md MongoDeck) (*models.Deck, error) {
	creator := strings.TrimSpace(md.CreatorID)
	if creator == "" {
		return nil, fmt.Errorf("deck %s has no creatorId", md.ID.Hex())
	}

	cards := make([]models.CardSelection, 0, len(md.Cards))
	for _, ref := range md.Cards {
		cardID, ok := toInt64(ref.CardID)
		if !ok || ref.Count <= 0 {
			return nil, fmt.Errorf("deck %s has malformed card ref %v", md.ID.Hex(), ref.CardID)
		}
		cards = append(cards, models.CardSelection{CardID: cardID, Count: int(ref.Count)})
	}

	energy := make([]models.EnergySelection, 0, len(md.Energy))
	for name, count := range md.Energy {
		energyType, ok := normalizeEnergy(name)
		if !ok {
			return nil, fmt.Errorf("deck %s has unknown energy type %q", md.ID.Hex(), name)
		}
		if count > 0 {
			energy = append(energy, models.EnergySelection{Type: energyType, Count: int(count)})
		}
	}

	mainEnergy := make([]models.EnergyType, 0, len(md.MainEnergy))
	for _, name := range md.MainEnergy {
		energyType, ok := normalizeEnergy(name)
		if !ok {
			return nil, fmt.Errorf("deck %s has unknown main energy %q", md.ID.Hex(), name)
		}
		mainEnergy = append(mainEnergy, energyType)
	}

	likes := dedupeStrings(md.Likes)

	now := time.Now()
	createdAt := md.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	tags := md.Tags
	if tags == nil {
		tags = []string{}
	}

	return &models.Deck{
		CreatorID:   creator,
		Name:        cleanseString(md.Name),
		Description: cleanseString(md.Description),
		IsPublic:    md.Public,
		Cards:       cards,
		Energy:      energy,
		MainEnergy:  mainEnergy,
		Tags:        tags,
		Likes:       likes,
		Views:       md.Views,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}, nil
}

// convertComment maps a legacy comment. deckIDs translates legacy deck
// ObjectID hexes to the new serial deck IDs.
func convertComment(mc MongoComment, deckIDs map[string]int64) (*models.Comment, error) {
	targetType := models.TargetType(mc.TargetType)
	if !targetType.Valid() {
		return nil, fmt.Errorf("comment %s has unknown target type %q", mc.ID.Hex(), mc.TargetType)
	}

	targetID, err := resolveTargetID(targetType, mc.TargetID, deckIDs)
	if err != nil {
		return nil, fmt.Errorf("comment %s: %w", mc.ID.Hex(), err)
	}

	content := strings.TrimSpace(cleanseString(mc.Content))
	if content == "" {
		return nil, fmt.Errorf("comment %s is empty", mc.ID.Hex())
	}

	now := time.Now()
	createdAt := mc.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &models.Comment{
		TargetType: targetType,
		TargetID:   targetID,
		AuthorID:   strings.TrimSpace(mc.AuthorID),
		Content:    content,
		Likes:      dedupeStrings(mc.Likes),
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}, nil
}

func convertNotification(mn MongoNotification, deckIDs map[string]int64) (*models.Notification, error) {
	kind := models.NotificationType(mn.Type)
	switch kind {
	case models.NotificationLike, models.NotificationComment, models.NotificationFollow,
		models.NotificationMention, models.NotificationSystem:
	default:
		return nil, fmt.Errorf("notification %s has unknown type %q", mn.ID.Hex(), mn.Type)
	}

	recipient := strings.TrimSpace(mn.UserID)
	if recipient == "" {
		return nil, fmt.Errorf("notification %s has no recipient", mn.ID.Hex())
	}

	targetType := models.TargetType(mn.TargetType)
	var targetID int64
	if targetType.Valid() {
		var err error
		targetID, err = resolveTargetID(targetType, mn.TargetID, deckIDs)
		if err != nil {
			return nil, fmt.Errorf("notification %s: %w", mn.ID.Hex(), err)
		}
	}

	createdAt := mn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &models.Notification{
		Type:        kind,
		Message:     cleanseString(mn.Message),
		TargetType:  targetType,
		TargetID:    targetID,
		UserID:      recipient,
		TriggeredBy: strings.TrimSpace(mn.TriggeredBy),
		Read:        mn.Read,
		CreatedAt:   createdAt,
	}, nil
}

// resolveTargetID turns a legacy target reference into the new numeric ID.
// Deck targets carry ObjectID hexes that must exist in the deck mapping;
// everything else was already numeric.
func resolveTargetID(targetType models.TargetType, raw interface{}, deckIDs map[string]int64) (int64, error) {
	if targetType == models.TargetDeck {
		hex, ok := rawObjectIDHex(raw)
		if !ok {
			// Some late-era documents already stored numeric deck IDs.
			if id, ok := toInt64(raw); ok {
				return id, nil
			}
			return 0, fmt.Errorf("unresolvable deck target %v", raw)
		}
		id, ok := deckIDs[hex]
		if !ok {
			return 0, fmt.Errorf("deck target %s was not migrated", hex)
		}
		return id, nil
	}

	id, ok := toInt64(raw)
	if !ok {
		return 0, fmt.Errorf("non-numeric target %v", raw)
	}
	return id, nil
}

// normalizeEnergy matches legacy energy names case-insensitively, since the
// Mongoose backend stored them lowercased.
func normalizeEnergy(name string) (models.EnergyType, bool) {
	for _, known := range models.EnergyTypes {
		if strings.EqualFold(name, string(known)) {
			return known, true
		}
	}
	return "", false
}

func rawObjectIDHex(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case primitive.ObjectID:
		return v.Hex(), true
	case string:
		if _, err := primitive.ObjectIDFromHex(v); err == nil {
			return v, true
		}
	}
	return "", false
}

// toInt64 accepts the numeric shapes BSON decoding produces for untyped
// legacy fields.
func toInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

func dedupeStrings(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func cleanseString(s string) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r == 0 || (r < 32 && r != 9 && r != 10 && r != 13) {
			continue
		}
		result.WriteRune(r)
	}
	return strings.TrimSpace(result.String())
}
