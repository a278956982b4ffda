package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TargetType names the entity a comment or engagement action applies to.
type TargetType string

const (
	TargetDeck  TargetType = "deck"
	TargetCard  TargetType = "card"
	TargetEvent TargetType = "event"
	TargetPost  TargetType = "post"

	// TargetComment only appears on notifications; comments are not
	// commentable targets themselves, so Valid excludes it.
	TargetComment TargetType = "comment"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetDeck, TargetCard, TargetEvent, TargetPost:
		return true
	}
	return false
}

type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	TargetType TargetType `bun:"target_type,notnull" json:"target_type"`
	TargetID   int64      `bun:"target_id,notnull" json:"target_id"`
	AuthorID   string     `bun:"author_id,notnull" json:"author_id"`
	Content    string     `bun:"content,notnull" json:"content"`

	Likes []string `bun:"likes,type:jsonb" json:"likes"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// CommentWithAuthor is the read-side shape for comment listings: the comment
// joined with the author's public profile fields.
type CommentWithAuthor struct {
	Comment

	AuthorName   string `bun:"author_name" json:"author_name"`
	AuthorAvatar string `bun:"author_avatar" json:"author_avatar"`
}
