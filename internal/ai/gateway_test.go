package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
)

type fakeClient struct {
	generateOut   string
	generateErr   error
	fileOut       string
	fileErr       error
	generateCalls int
	fileCalls     int
}

func (f *fakeClient) Generate(_ context.Context, _ string) (string, error) {
	f.generateCalls++
	return f.generateOut, f.generateErr
}

func (f *fakeClient) GenerateWithFile(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	f.fileCalls++
	return f.fileOut, f.fileErr
}

type fakeArchiver struct {
	calls int
	err   error
}

func (f *fakeArchiver) Archive(_ context.Context, _ []byte, _ string) (string, error) {
	f.calls++
	return "https://cdn.example.com/menu-uploads/x.png", f.err
}

func TestParseIngredientsNormalizesOutput(t *testing.T) {
	client := &fakeClient{
		generateOut: `{"allergens":["Tree Nuts","gluten","mercury"],"dietaryCategories":["VEGAN","pescatarian"],"extractedIngredients":["flour","almonds"]}`,
	}
	g := NewGateway(client, nil, time.Second)

	profile, err := g.ParseIngredients(context.Background(), "flour, almonds")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profile.Allergens) != 2 || profile.Allergens[0] != "tree_nuts" || profile.Allergens[1] != "wheat" {
		t.Errorf("unexpected allergens: %v", profile.Allergens)
	}
	if len(profile.DietaryCategories) != 1 || profile.DietaryCategories[0] != "vegan" {
		t.Errorf("unexpected dietary categories: %v", profile.DietaryCategories)
	}
	if len(profile.ExtractedIngredients) != 2 {
		t.Errorf("unexpected ingredients: %v", profile.ExtractedIngredients)
	}
}

func TestParseIngredientsSalvagesWrappedJSON(t *testing.T) {
	client := &fakeClient{
		generateOut: "Here you go:\n{\"allergens\":[\"fish\"],\"dietaryCategories\":[],\"extractedIngredients\":[]}\nEnjoy!",
	}
	g := NewGateway(client, nil, time.Second)

	profile, err := g.ParseIngredients(context.Background(), "fish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile.Allergens) != 1 || profile.Allergens[0] != "fish" {
		t.Errorf("unexpected allergens: %v", profile.Allergens)
	}
}

func TestParseIngredientsMalformedOutput(t *testing.T) {
	client := &fakeClient{generateOut: "I cannot help with that."}
	g := NewGateway(client, nil, time.Second)

	_, err := g.ParseIngredients(context.Background(), "stuff")
	if !errors.Is(err, apperr.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestParseIngredientsTimeout(t *testing.T) {
	client := &fakeClient{generateErr: context.DeadlineExceeded}
	g := NewGateway(client, nil, time.Second)

	_, err := g.ParseIngredients(context.Background(), "stuff")
	if !errors.Is(err, apperr.ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestExtractMenuItemsRejectsUnsupportedMedia(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client, nil, time.Second)

	_, err := g.ExtractMenuItems(context.Background(), []byte("gif"), "image/gif")
	if !errors.Is(err, apperr.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if client.fileCalls != 0 || client.generateCalls != 0 {
		t.Errorf("unsupported media must be rejected before any external call")
	}
}

func TestExtractMenuItems(t *testing.T) {
	client := &fakeClient{
		fileOut:     `{"items":[{"name":" Fishy Fish ","description":"Tasty","price":"$17.95","ingredients":"fish, salt"}]}`,
		generateOut: `{"allergens":["fish"],"dietaryCategories":[],"extractedIngredients":["fish","salt"]}`,
	}
	g := NewGateway(client, nil, time.Second)

	items, err := g.ExtractMenuItems(context.Background(), []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Name != "Fishy Fish" {
		t.Errorf("expected trimmed name, got %q", item.Name)
	}
	if item.Price != 17.95 {
		t.Errorf("expected coerced price 17.95, got %v", item.Price)
	}
	if len(item.Allergens) != 1 || item.Allergens[0] != "fish" {
		t.Errorf("unexpected allergens: %v", item.Allergens)
	}
}

func TestExtractMenuItemsFillsIngredientsFromParse(t *testing.T) {
	client := &fakeClient{
		fileOut:     `{"items":[{"name":"Mystery Dish","description":"","price":5,"ingredients":""}]}`,
		generateOut: `{"allergens":[],"dietaryCategories":[],"extractedIngredients":["rice","beans"]}`,
	}
	g := NewGateway(client, nil, time.Second)

	items, err := g.ExtractMenuItems(context.Background(), []byte("pdf"), "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Ingredients != "rice, beans" {
		t.Errorf("expected ingredients backfilled, got %q", items[0].Ingredients)
	}
}

func TestExtractMenuItemsArchivalIsBestEffort(t *testing.T) {
	client := &fakeClient{
		fileOut: `{"items":[]}`,
	}
	archiver := &fakeArchiver{err: errors.New("bucket unavailable")}
	g := NewGateway(client, archiver, time.Second)

	items, err := g.ExtractMenuItems(context.Background(), []byte("png"), "image/png")
	if err != nil {
		t.Fatalf("archival failure must not fail extraction: %v", err)
	}
	if archiver.calls != 1 {
		t.Errorf("expected archiver to be invoked once, got %d", archiver.calls)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %v", items)
	}
}
