package store

import (
	"context"
	"errors"
	"sync"
)

// Memory is an in-process tree store used by tests and local development.
type Memory struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemory() *Memory {
	return &Memory{root: make(map[string]any)}
}

func (m *Memory) Get(_ context.Context, path string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node := any(m.root)
	for _, key := range splitPath(path) {
		child, ok := node.(map[string]any)
		if !ok {
			return nil, nil
		}
		node, ok = child[key]
		if !ok {
			return nil, nil
		}
	}

	doc, ok := node.(map[string]any)
	if !ok {
		return nil, nil
	}
	if len(doc) == 0 {
		return nil, nil
	}
	return deepCopyMap(doc), nil
}

func (m *Memory) Set(_ context.Context, path string, value map[string]any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return errors.New("cannot set store root")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parent := m.root
	for _, key := range parts[:len(parts)-1] {
		child, ok := parent[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			parent[key] = child
		}
		parent = child
	}
	parent[parts[len(parts)-1]] = deepCopyMap(value)
	return nil
}

func (m *Memory) Update(ctx context.Context, path string, fields map[string]any) error {
	current, err := m.Get(ctx, path)
	if err != nil {
		return err
	}
	if current == nil {
		return m.Set(ctx, path, fields)
	}
	for k, v := range fields {
		current[k] = v
	}
	return m.Set(ctx, path, current)
}

func (m *Memory) Delete(_ context.Context, path string) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return errors.New("cannot delete store root")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parent := m.root
	for _, key := range parts[:len(parts)-1] {
		child, ok := parent[key].(map[string]any)
		if !ok {
			return nil
		}
		parent = child
	}
	delete(parent, parts[len(parts)-1])
	return nil
}

func deepCopyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
