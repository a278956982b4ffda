package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string `bun:"id,pk" json:"id"`
	Username  string `bun:"username,notnull,unique" json:"username"`
	AvatarURL string `bun:"avatar_url" json:"avatar_url"`
	Email     string `bun:"email" json:"-"`

	Roles []string `bun:"roles,type:jsonb" json:"roles"`

	// FavoriteCards is a set of card IDs, each member at most once.
	FavoriteCards []int64 `bun:"favorite_cards,type:jsonb" json:"favorite_cards"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	for _, role := range u.Roles {
		if role == "admin" {
			return true
		}
	}
	return false
}
