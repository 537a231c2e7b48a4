package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
)

const defaultTimeout = 20 * time.Second

var supportedMimeTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"application/pdf": true,
}

// Archiver keeps a copy of ingested uploads in object storage. Archival is
// best effort and never fails a request.
type Archiver interface {
	Archive(ctx context.Context, data []byte, mimeType string) (string, error)
}

type IngredientProfile struct {
	Allergens            []string `json:"allergens"`
	DietaryCategories    []string `json:"dietaryCategories"`
	ExtractedIngredients []string `json:"extractedIngredients"`
}

type ExtractedItem struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	Ingredients       string   `json:"ingredients"`
	Allergens         []string `json:"allergens"`
	DietaryCategories []string `json:"dietaryCategories"`
}

type Gateway struct {
	client  Client
	archive Archiver
	timeout time.Duration
}

func NewGateway(client Client, archive Archiver, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{client: client, archive: archive, timeout: timeout}
}

// --------------------------------------------------
// Parse free-text ingredients
// --------------------------------------------------
func (g *Gateway) ParseIngredients(ctx context.Context, text string) (*IngredientProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.Generate(ctx, BuildIngredientPrompt(text))
	if err != nil {
		return nil, upstreamError(err)
	}

	var parsed struct {
		Allergens            []string `json:"allergens"`
		DietaryCategories    []string `json:"dietaryCategories"`
		ExtractedIngredients []string `json:"extractedIngredients"`
	}
	if err := json.Unmarshal(salvageJSON(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrExtractionFailed, err)
	}

	profile := &IngredientProfile{
		Allergens:            NormalizeAllergens(parsed.Allergens),
		DietaryCategories:    NormalizeDietaryCategories(parsed.DietaryCategories),
		ExtractedIngredients: parsed.ExtractedIngredients,
	}
	if profile.ExtractedIngredients == nil {
		profile.ExtractedIngredients = []string{}
	}
	return profile, nil
}

// --------------------------------------------------
// Extract menu items from a document upload
// --------------------------------------------------
func (g *Gateway) ExtractMenuItems(ctx context.Context, data []byte, mimeType string) ([]*ExtractedItem, error) {
	if !supportedMimeTypes[mimeType] {
		return nil, apperr.ErrUnsupportedMedia
	}

	if g.archive != nil {
		if _, err := g.archive.Archive(ctx, data, mimeType); err != nil {
			log.Printf("menu upload archival failed: %v", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.GenerateWithFile(callCtx, BuildMenuExtractionPrompt(), data, mimeType)
	if err != nil {
		return nil, upstreamError(err)
	}

	var parsed struct {
		Items []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Price       any    `json:"price"`
			Ingredients string `json:"ingredients"`
		} `json:"items"`
	}
	if err := json.Unmarshal(salvageJSON(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrExtractionFailed, err)
	}

	items := make([]*ExtractedItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item := &ExtractedItem{
			Name:              strings.TrimSpace(entry.Name),
			Description:       strings.TrimSpace(entry.Description),
			Price:             coercePrice(entry.Price),
			Ingredients:       strings.TrimSpace(entry.Ingredients),
			Allergens:         []string{},
			DietaryCategories: []string{},
		}

		profile, err := g.ParseIngredients(ctx, item.Ingredients)
		if err != nil {
			return nil, err
		}
		item.Allergens = profile.Allergens
		item.DietaryCategories = profile.DietaryCategories
		if item.Ingredients == "" && len(profile.ExtractedIngredients) > 0 {
			item.Ingredients = strings.Join(profile.ExtractedIngredients, ", ")
		}

		items = append(items, item)
	}
	return items, nil
}

func upstreamError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.ErrUpstreamTimeout
	}
	return fmt.Errorf("%w: %v", apperr.ErrExtractionFailed, err)
}

// salvageJSON extracts the outermost JSON object when the model wraps its
// output in extra text.
func salvageJSON(raw string) []byte {
	if json.Valid([]byte(raw)) {
		return []byte(raw)
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return []byte(raw[start : end+1])
	}
	return []byte(raw)
}

func coercePrice(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(v, "$", ""))
		if price, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return price
		}
	}
	return 0
}
