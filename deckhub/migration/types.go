package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoUser is a user document from the legacy Mongoose backend.
type MongoUser struct {
	ID            primitive.ObjectID `bson:"_id"`
	UserID        string             `bson:"userId"`
	Username      string             `bson:"username"`
	Avatar        string             `bson:"avatar"`
	Email         string             `bson:"email"`
	Roles         []string           `bson:"roles"`
	FavoriteCards []interface{}      `bson:"favoriteCards"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// MongoCardRef is one entry of a legacy deck's card list.
type MongoCardRef struct {
	CardID interface{} `bson:"cardId"`
	Count  int32       `bson:"count"`
}

// MongoDeck is a deck document from the legacy backend. Energy was stored
// as a type-to-count map and likes as an array of user ID strings.
type MongoDeck struct {
	ID          primitive.ObjectID `bson:"_id"`
	CreatorID   string             `bson:"creatorId"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Public      bool               `bson:"public"`
	Cards       []MongoCardRef     `bson:"cards"`
	Energy      map[string]int32   `bson:"energy"`
	MainEnergy  []string           `bson:"mainEnergy"`
	Tags        []string           `bson:"tags"`
	Likes       []string           `bson:"likes"`
	Views       int64              `bson:"views"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// MongoComment is a comment document. Targets reference either a legacy
// deck ObjectID hex or a numeric card ID, discriminated by targetType.
type MongoComment struct {
	ID         primitive.ObjectID `bson:"_id"`
	TargetType string             `bson:"targetType"`
	TargetID   interface{}        `bson:"targetId"`
	AuthorID   string             `bson:"authorId"`
	Content    string             `bson:"content"`
	Likes      []string           `bson:"likes"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// MongoNotification is a notification document from the legacy backend.
type MongoNotification struct {
	ID          primitive.ObjectID `bson:"_id"`
	Type        string             `bson:"type"`
	Message     string             `bson:"message"`
	TargetType  string             `bson:"targetType"`
	TargetID    interface{}        `bson:"targetId"`
	UserID      string             `bson:"userId"`
	TriggeredBy string             `bson:"triggeredBy"`
	Read        bool               `bson:"read"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// TableStats tracks per-table progress for one migration run.
type TableStats struct {
	Read     int
	Inserted int
	Skipped  int
}

// MigrationStats aggregates the whole run.
type MigrationStats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
}

func (s *MigrationStats) table(name string) *TableStats {
	if s.Tables == nil {
		s.Tables = make(map[string]*TableStats)
	}
	if s.Tables[name] == nil {
		s.Tables[name] = &TableStats{}
	}
	return s.Tables[name]
}
