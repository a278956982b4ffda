package models

import (
	"time"

	"github.com/uptrace/bun"
)

// EnergyType is the fixed attribute/energy enumeration shared by cards,
// energy selections and deck main-energy declarations.
type EnergyType string

const (
	EnergyGrass     EnergyType = "Grass"
	EnergyFire      EnergyType = "Fire"
	EnergyWater     EnergyType = "Water"
	EnergyElectric  EnergyType = "Electric"
	EnergyPsychic   EnergyType = "Psychic"
	EnergyFighting  EnergyType = "Fighting"
	EnergyDark      EnergyType = "Dark"
	EnergySteel     EnergyType = "Steel"
	EnergyColorless EnergyType = "Colorless"
)

var EnergyTypes = []EnergyType{
	EnergyGrass,
	EnergyFire,
	EnergyWater,
	EnergyElectric,
	EnergyPsychic,
	EnergyFighting,
	EnergyDark,
	EnergySteel,
	EnergyColorless,
}

func (t EnergyType) Valid() bool {
	for _, known := range EnergyTypes {
		if t == known {
			return true
		}
	}
	return false
}

type CardKind string

const (
	KindBasic  CardKind = "Basic"
	KindStage1 CardKind = "Stage1"
	KindStage2 CardKind = "Stage2"
	KindEX     CardKind = "EX"
)

type Attack struct {
	Name   string       `json:"name"`
	Cost   []EnergyType `json:"cost"`
	Damage int          `json:"damage,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// Card is immutable reference data created by catalog ingestion.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID        int64      `bun:"id,pk,autoincrement" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	NameEN    string     `bun:"name_en" json:"name_en"`
	Attribute EnergyType `bun:"attribute,notnull" json:"attribute"`
	Rarity    string     `bun:"rarity" json:"rarity"`
	SetCode   string     `bun:"set_code" json:"set_code"`
	HP        int        `bun:"hp,notnull,default:0" json:"hp"`
	Kind      CardKind   `bun:"kind,notnull" json:"kind"`
	Attacks   []Attack   `bun:"attacks,type:jsonb" json:"attacks"`
	ImageURL  string     `bun:"image_url" json:"image_url"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
