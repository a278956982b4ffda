package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
	"github.com/deckhubapp/deckhub/deckhub/database/repositories"
	"golang.org/x/sync/errgroup"
)

const artworkCheckConcurrency = 8

// CardImportEntry is one card in a catalog drop file.
type CardImportEntry struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	NameEN   string          `json:"name_en"`
	Kind     string          `json:"kind"`
	Type     string          `json:"type"`
	HP       int             `json:"hp"`
	Rarity   string          `json:"rarity"`
	SetCode  string          `json:"set_code"`
	Attacks  []models.Attack `json:"attacks"`
	ImageURL string          `json:"image_url"`
}

// ImportResult summarizes one catalog ingestion run.
type ImportResult struct {
	Total          int
	Imported       int
	Skipped        int
	MissingArtwork []int64
	Duration       time.Duration
}

// CatalogInvalidator drops stale entries from the card cache after an
// import touches existing IDs.
type CatalogInvalidator interface {
	Invalidate(id int64)
}

// CardImportService ingests catalog drop files into the cards table.
type CardImportService struct {
	cards   repositories.CardRepository
	catalog CatalogInvalidator
	spaces  *SpacesService
}

func NewCardImportService(cards repositories.CardRepository, catalog CatalogInvalidator, spaces *SpacesService) *CardImportService {
	return &CardImportService{
		cards:   cards,
		catalog: catalog,
		spaces:  spaces,
	}
}

// ImportFile reads a JSON catalog drop and bulk-inserts its cards.
func (s *CardImportService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog drop: %w", err)
	}

	var entries []CardImportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog drop: %w", err)
	}
	return s.Import(ctx, entries)
}

// Import bulk-inserts catalog entries. Entries with an unknown energy type
// or kind are skipped with a log line rather than aborting the run.
func (s *CardImportService) Import(ctx context.Context, entries []CardImportEntry) (*ImportResult, error) {
	start := time.Now()

	result := &ImportResult{Total: len(entries)}

	cards := make([]*models.Card, 0, len(entries))
	for _, entry := range entries {
		card, err := entryToCard(entry)
		if err != nil {
			slog.Warn("Skipping catalog entry",
				slog.Int64("card_id", entry.ID),
				slog.String("error", err.Error()))
			result.Skipped++
			continue
		}
		cards = append(cards, card)
	}

	imported, err := s.cards.BulkCreate(ctx, cards)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cards: %w", err)
	}
	result.Imported = imported

	for _, card := range cards {
		s.catalog.Invalidate(card.ID)
	}

	if s.spaces != nil {
		missing, err := s.checkArtwork(ctx, cards)
		if err != nil {
			return nil, err
		}
		result.MissingArtwork = missing
	}

	result.Duration = time.Since(start)
	slog.Info("Catalog import finished",
		slog.Int("total", result.Total),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("missing_artwork", len(result.MissingArtwork)),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// checkArtwork verifies every imported card has an artwork object,
// bounded-concurrency fan-out over the bucket.
func (s *CardImportService) checkArtwork(ctx context.Context, cards []*models.Card) ([]int64, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(artworkCheckConcurrency)

	missingChan := make(chan int64, len(cards))
	for _, card := range cards {
		card := card
		g.Go(func() error {
			if !s.spaces.VerifyArtwork(gctx, card.ID) {
				select {
				case missingChan <- card.ID:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("artwork check failed: %w", err)
	}
	close(missingChan)

	var missing []int64
	for id := range missingChan {
		missing = append(missing, id)
	}
	return missing, nil
}

func entryToCard(entry CardImportEntry) (*models.Card, error) {
	energyType := models.EnergyType(entry.Type)
	if !energyType.Valid() {
		return nil, fmt.Errorf("unknown energy type %q", entry.Type)
	}

	kind := models.CardKind(entry.Kind)
	switch kind {
	case models.KindBasic, models.KindStage1, models.KindStage2, models.KindEX:
	default:
		return nil, fmt.Errorf("unknown card kind %q", entry.Kind)
	}

	for _, attack := range entry.Attacks {
		for _, cost := range attack.Cost {
			if !cost.Valid() {
				return nil, fmt.Errorf("attack %q has unknown energy cost %q", attack.Name, cost)
			}
		}
	}

	return &models.Card{
		ID:        entry.ID,
		Name:      entry.Name,
		NameEN:    entry.NameEN,
		Kind:      kind,
		Attribute: energyType,
		HP:        entry.HP,
		Rarity:    entry.Rarity,
		SetCode:   entry.SetCode,
		Attacks:   entry.Attacks,
		ImageURL:  entry.ImageURL,
	}, nil
}
