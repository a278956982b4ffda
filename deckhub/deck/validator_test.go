package deck

import (
	"errors"
	"testing"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
)

func knownCards(ids ...int64) map[int64]bool {
	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return known
}

// fullComposition builds a valid 60-card composition: 4x of cards 1..5
// (20 cards) plus 40 fire energy.
func fullComposition() Composition {
	cards := make([]models.CardSelection, 0, 5)
	for id := int64(1); id <= 5; id++ {
		cards = append(cards, models.CardSelection{CardID: id, Count: 4})
	}
	return Composition{
		Cards:      cards,
		Energy:     []models.EnergySelection{{Type: models.EnergyFire, Count: 40}},
		MainEnergy: []models.EnergyType{models.EnergyFire},
	}
}

func TestValidate(t *testing.T) {
	known := knownCards(1, 2, 3, 4, 5)

	tests := []struct {
		name      string
		mutate    func(*Composition)
		wantCodes []ViolationCode
	}{
		{
			name:      "valid deck",
			mutate:    func(c *Composition) {},
			wantCodes: nil,
		},
		{
			name: "one card short",
			mutate: func(c *Composition) {
				c.Energy[0].Count = 39
			},
			wantCodes: []ViolationCode{CodeTotalCountMismatch},
		},
		{
			name: "one card over",
			mutate: func(c *Composition) {
				c.Energy[0].Count = 41
			},
			wantCodes: []ViolationCode{CodeTotalCountMismatch},
		},
		{
			name: "card over copy limit",
			mutate: func(c *Composition) {
				c.Cards[0].Count = 5
				c.Energy[0].Count = 39
			},
			wantCodes: []ViolationCode{CodeCardCountExceeded},
		},
		{
			name: "unknown card",
			mutate: func(c *Composition) {
				c.Cards[0].CardID = 999
			},
			wantCodes: []ViolationCode{CodeUnknownCard},
		},
		{
			name: "no main energy",
			mutate: func(c *Composition) {
				c.MainEnergy = nil
			},
			wantCodes: []ViolationCode{CodeNoMainEnergy},
		},
		{
			name: "main energy outside enumeration",
			mutate: func(c *Composition) {
				c.MainEnergy = []models.EnergyType{"Plasma"}
			},
			wantCodes: []ViolationCode{CodeInvalidEnergyType},
		},
		{
			name: "energy list type outside enumeration",
			mutate: func(c *Composition) {
				c.Energy[0].Type = "Plasma"
			},
			wantCodes: []ViolationCode{CodeInvalidEnergyType},
		},
		{
			name: "multiple violations reported together",
			mutate: func(c *Composition) {
				c.Cards[0].Count = 5
				c.MainEnergy = nil
			},
			wantCodes: []ViolationCode{CodeTotalCountMismatch, CodeCardCountExceeded, CodeNoMainEnergy},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := fullComposition()
			tt.mutate(&comp)

			violations, err := Validate(comp, known)
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}

			gotCodes := make([]ViolationCode, 0, len(violations))
			for _, v := range violations {
				gotCodes = append(gotCodes, v.Code)
			}

			if len(gotCodes) != len(tt.wantCodes) {
				t.Fatalf("Validate() violations = %v, want codes %v", violations, tt.wantCodes)
			}
			for i, code := range tt.wantCodes {
				if gotCodes[i] != code {
					t.Errorf("Validate() violation[%d] = %s, want %s", i, gotCodes[i], code)
				}
			}
		})
	}
}

func TestValidateTotalMismatchFields(t *testing.T) {
	comp := fullComposition()
	comp.Energy[0].Count = 39 // 59 total

	violations, err := Validate(comp, knownCards(1, 2, 3, 4, 5))
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("Validate() violations = %v, want exactly one", violations)
	}
	if violations[0].Actual != 59 || violations[0].Expected != 60 {
		t.Errorf("Validate() mismatch fields = actual %d expected %d, want 59/60",
			violations[0].Actual, violations[0].Expected)
	}
}

func TestValidateMalformedInput(t *testing.T) {
	comp := fullComposition()
	comp.Cards[0].Count = -1

	if _, err := Validate(comp, knownCards(1, 2, 3, 4, 5)); !errors.Is(err, ErrMalformedComposition) {
		t.Errorf("Validate() error = %v, want ErrMalformedComposition", err)
	}

	comp = fullComposition()
	comp.Energy[0].Count = 0
	if _, err := Validate(comp, knownCards(1, 2, 3, 4, 5)); !errors.Is(err, ErrMalformedComposition) {
		t.Errorf("Validate() error = %v, want ErrMalformedComposition", err)
	}
}

func TestValidateIsPure(t *testing.T) {
	comp := fullComposition()
	known := knownCards(1, 2, 3, 4, 5)

	first, err := Validate(comp, known)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	second, err := Validate(comp, known)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if len(first) != 0 || len(second) != 0 {
		t.Errorf("Validate() repeated calls disagree: %v vs %v", first, second)
	}
}
