package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Title       string `bun:"title,notnull" json:"title"`
	Description string `bun:"description" json:"description"`
	IsPublic    bool   `bun:"is_public,notnull,default:true" json:"is_public"`

	StartsAt time.Time `bun:"starts_at" json:"starts_at"`
	EndsAt   time.Time `bun:"ends_at" json:"ends_at"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
