package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CardSelection is one (card, count) pair inside a deck list.
type CardSelection struct {
	CardID int64 `json:"cardId"`
	Count  int   `json:"count"`
}

// EnergySelection is one (energy type, count) pair inside a deck list.
type EnergySelection struct {
	Type  EnergyType `json:"type"`
	Count int        `json:"count"`
}

type Deck struct {
	bun.BaseModel `bun:"table:decks,alias:d"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	CreatorID   string `bun:"creator_id,notnull" json:"creator_id"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description" json:"description"`
	IsPublic    bool   `bun:"is_public,notnull,default:false" json:"is_public"`

	// Arrays stored as JSONB
	Cards      []CardSelection   `bun:"cards,type:jsonb" json:"cards"`
	Energy     []EnergySelection `bun:"energy,type:jsonb" json:"energy"`
	MainEnergy []EnergyType      `bun:"main_energy,type:jsonb" json:"main_energy"`
	Tags       []string          `bun:"tags,type:jsonb" json:"tags"`

	// Likes is a set of user IDs, each member at most once.
	Likes []string `bun:"likes,type:jsonb" json:"likes"`
	Views int64    `bun:"views,notnull,default:0" json:"views"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// TotalCount is the grand total of card and energy counts.
func (d *Deck) TotalCount() int {
	total := 0
	for _, sel := range d.Cards {
		total += sel.Count
	}
	for _, sel := range d.Energy {
		total += sel.Count
	}
	return total
}

func (d *Deck) LikeCount() int {
	return len(d.Likes)
}
