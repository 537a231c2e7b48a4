package store

import (
	"context"
	"encoding/json"
	"strings"
)

// Store is a path-addressed hierarchical document store. Records live at
// "<collection>/<id>" and reading a collection path returns the id->record
// map. Get returns nil (and no error) for an absent path; reads never alias
// the store's internal state.
type Store interface {
	Get(ctx context.Context, path string) (map[string]any, error)
	Set(ctx context.Context, path string, value map[string]any) error
	Update(ctx context.Context, path string, fields map[string]any) error
	Delete(ctx context.Context, path string) error
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Encode converts a record struct into a store document.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode converts a store document back into a record struct.
func Decode(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
