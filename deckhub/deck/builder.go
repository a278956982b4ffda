package deck

import (
	"errors"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

var (
	// ErrCardLimitReached means the card already has MaxCardCopies copies.
	ErrCardLimitReached = errors.New("deck: card copy limit reached")
	// ErrDeckFull means the running total already hit DeckSize.
	ErrDeckFull = errors.New("deck: deck is full")
)

// Builder assembles a deck list one unit at a time, enforcing the copy cap
// and the running total ceiling as it goes. The zero value is not usable;
// construct with NewBuilder or FromDeck.
type Builder struct {
	name        string
	description string
	isPublic    bool
	tags        []string
	mainEnergy  []models.EnergyType
	cards       []models.CardSelection
	energy      []models.EnergySelection
}

func NewBuilder() *Builder {
	return &Builder{
		tags:       []string{},
		mainEnergy: []models.EnergyType{},
		cards:      []models.CardSelection{},
		energy:     []models.EnergySelection{},
	}
}

// FromDeck seeds a builder from an existing deck's lists. The builder copies
// every slice, so the clone never shares state with the source, and likes,
// views and ownership are not carried over.
func FromDeck(d *models.Deck) *Builder {
	b := NewBuilder()
	b.name = d.Name
	b.description = d.Description
	b.isPublic = d.IsPublic
	b.tags = append([]string{}, d.Tags...)
	b.mainEnergy = append([]models.EnergyType{}, d.MainEnergy...)
	b.cards = append([]models.CardSelection{}, d.Cards...)
	b.energy = append([]models.EnergySelection{}, d.Energy...)
	return b
}

func (b *Builder) SetInfo(name, description string, isPublic bool) *Builder {
	b.name = name
	b.description = description
	b.isPublic = isPublic
	return b
}

func (b *Builder) SetTags(tags []string) *Builder {
	b.tags = append([]string{}, tags...)
	return b
}

func (b *Builder) SetMainEnergy(types []models.EnergyType) *Builder {
	b.mainEnergy = append([]models.EnergyType{}, types...)
	return b
}

// TotalCount is the running grand total across cards and energy.
func (b *Builder) TotalCount() int {
	return b.Composition().TotalCount()
}

// AddCard adds one copy of a card. A card already at the copy cap is
// rejected with ErrCardLimitReached; a new card only fits while the grand
// total is below DeckSize.
func (b *Builder) AddCard(cardID int64) error {
	for i, sel := range b.cards {
		if sel.CardID == cardID {
			if sel.Count >= MaxCardCopies {
				return ErrCardLimitReached
			}
			if b.TotalCount() >= DeckSize {
				return ErrDeckFull
			}
			b.cards[i].Count++
			return nil
		}
	}

	if b.TotalCount() >= DeckSize {
		return ErrDeckFull
	}
	b.cards = append(b.cards, models.CardSelection{CardID: cardID, Count: 1})
	return nil
}

// RemoveCard removes one copy of a card, dropping the entry at zero.
// Removing an absent card is a no-op.
func (b *Builder) RemoveCard(cardID int64) {
	for i, sel := range b.cards {
		if sel.CardID == cardID {
			if sel.Count <= 1 {
				b.cards = append(b.cards[:i], b.cards[i+1:]...)
			} else {
				b.cards[i].Count--
			}
			return
		}
	}
}

// AddEnergy adds one energy card of the given type. Energy has no per-type
// cap, only the shared DeckSize ceiling.
func (b *Builder) AddEnergy(energyType models.EnergyType) error {
	if b.TotalCount() >= DeckSize {
		return ErrDeckFull
	}
	for i, sel := range b.energy {
		if sel.Type == energyType {
			b.energy[i].Count++
			return nil
		}
	}
	b.energy = append(b.energy, models.EnergySelection{Type: energyType, Count: 1})
	return nil
}

// RemoveEnergy removes one energy card of the given type; absent types are
// a no-op.
func (b *Builder) RemoveEnergy(energyType models.EnergyType) {
	for i, sel := range b.energy {
		if sel.Type == energyType {
			if sel.Count <= 1 {
				b.energy = append(b.energy[:i], b.energy[i+1:]...)
			} else {
				b.energy[i].Count--
			}
			return
		}
	}
}

func (b *Builder) Composition() Composition {
	return Composition{
		Cards:      b.cards,
		Energy:     b.energy,
		MainEnergy: b.mainEnergy,
	}
}

// Build produces the persistable deck aggregate for the acting user with
// fresh social state. Build does not validate; the deck service runs the
// validator before persisting.
func (b *Builder) Build(creatorID string) *models.Deck {
	return &models.Deck{
		CreatorID:   creatorID,
		Name:        b.name,
		Description: b.description,
		IsPublic:    b.isPublic,
		Cards:       append([]models.CardSelection{}, b.cards...),
		Energy:      append([]models.EnergySelection{}, b.energy...),
		MainEnergy:  append([]models.EnergyType{}, b.mainEnergy...),
		Tags:        append([]string{}, b.tags...),
		Likes:       []string{},
		Views:       0,
	}
}
