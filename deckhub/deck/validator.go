// Package deck holds the deck-composition rules: what a legal 60-card deck
// looks like, and the incremental builder used to assemble one.
package deck

import (
	"errors"
	"fmt"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

const (
	// DeckSize is the exact number of cards plus energy a deck must hold.
	DeckSize = 60
	// MaxCardCopies caps how many copies of a single card a deck may hold.
	MaxCardCopies = 4
)

// ErrMalformedComposition marks client/programmer errors such as zero or
// negative counts. Rule violations are reported as Violations, never as
// errors.
var ErrMalformedComposition = errors.New("deck: malformed composition")

type ViolationCode string

const (
	CodeTotalCountMismatch ViolationCode = "TOTAL_COUNT_MISMATCH"
	CodeCardCountExceeded  ViolationCode = "CARD_COUNT_EXCEEDED"
	CodeUnknownCard        ViolationCode = "UNKNOWN_CARD"
	CodeNoMainEnergy       ViolationCode = "NO_MAIN_ENERGY_SELECTED"
	CodeInvalidEnergyType  ViolationCode = "INVALID_ENERGY_TYPE"
)

// Violation is one broken composition rule. A composition is valid exactly
// when its violation list is empty.
type Violation struct {
	Code       ViolationCode     `json:"code"`
	Message    string            `json:"message"`
	CardID     int64             `json:"card_id,omitempty"`
	Count      int               `json:"count,omitempty"`
	Actual     int               `json:"actual,omitempty"`
	Expected   int               `json:"expected,omitempty"`
	EnergyType models.EnergyType `json:"energy_type,omitempty"`
}

// Composition is a candidate deck list before validation.
type Composition struct {
	Cards      []models.CardSelection
	Energy     []models.EnergySelection
	MainEnergy []models.EnergyType
}

func (c Composition) TotalCount() int {
	total := 0
	for _, sel := range c.Cards {
		total += sel.Count
	}
	for _, sel := range c.Energy {
		total += sel.Count
	}
	return total
}

// Validate checks a composition against the deck rules and enumerates every
// violation. known maps the card IDs that resolve in the catalog; IDs absent
// from it are reported as UnknownCard violations, not errors. Validate has
// no side effects and is safe to call repeatedly.
func Validate(comp Composition, known map[int64]bool) ([]Violation, error) {
	for _, sel := range comp.Cards {
		if sel.Count <= 0 {
			return nil, fmt.Errorf("%w: card %d has count %d", ErrMalformedComposition, sel.CardID, sel.Count)
		}
	}
	for _, sel := range comp.Energy {
		if sel.Count <= 0 {
			return nil, fmt.Errorf("%w: energy %s has count %d", ErrMalformedComposition, sel.Type, sel.Count)
		}
	}

	var violations []Violation

	if total := comp.TotalCount(); total != DeckSize {
		violations = append(violations, Violation{
			Code:     CodeTotalCountMismatch,
			Message:  fmt.Sprintf("deck must hold exactly %d cards, got %d", DeckSize, total),
			Actual:   total,
			Expected: DeckSize,
		})
	}

	for _, sel := range comp.Cards {
		if sel.Count > MaxCardCopies {
			violations = append(violations, Violation{
				Code:    CodeCardCountExceeded,
				Message: fmt.Sprintf("card %d appears %d times, limit is %d", sel.CardID, sel.Count, MaxCardCopies),
				CardID:  sel.CardID,
				Count:   sel.Count,
			})
		}
		if !known[sel.CardID] {
			violations = append(violations, Violation{
				Code:    CodeUnknownCard,
				Message: fmt.Sprintf("card %d does not exist", sel.CardID),
				CardID:  sel.CardID,
			})
		}
	}

	// Energy counts have no per-type cap, but the type itself must be real.
	for _, sel := range comp.Energy {
		if !sel.Type.Valid() {
			violations = append(violations, Violation{
				Code:       CodeInvalidEnergyType,
				Message:    fmt.Sprintf("unknown energy type %q", sel.Type),
				EnergyType: sel.Type,
			})
		}
	}

	if len(comp.MainEnergy) == 0 {
		violations = append(violations, Violation{
			Code:    CodeNoMainEnergy,
			Message: "at least one main energy type must be selected",
		})
	}
	for _, t := range comp.MainEnergy {
		if !t.Valid() {
			violations = append(violations, Violation{
				Code:       CodeInvalidEnergyType,
				Message:    fmt.Sprintf("unknown energy type %q", t),
				EnergyType: t,
			})
		}
	}

	return violations, nil
}
