package console

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// PreferenceStore persists per-viewer page settings (page size, default
// filters) keyed by page code.
type PreferenceStore interface {
	PageSettings(ctx context.Context, viewer ViewerContext, code string) (map[string]any, error)
	SavePageSettings(ctx context.Context, viewer ViewerContext, code string, settings map[string]any) error
}

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]map[string]any
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]map[string]any),
	}
}

// PageSettings returns stored settings or an empty map.
func (s *InMemoryPreferenceStore) PageSettings(_ context.Context, viewer ViewerContext, code string) (map[string]any, error) {
	if viewer.UserID == 0 {
		return map[string]any{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if settings, ok := s.data[s.key(viewer, code)]; ok {
		return cloneSettings(settings), nil
	}
	return map[string]any{}, nil
}

// SavePageSettings persists settings for a viewer.
func (s *InMemoryPreferenceStore) SavePageSettings(_ context.Context, viewer ViewerContext, code string, settings map[string]any) error {
	if viewer.UserID == 0 {
		return fmt.Errorf("console: preference store requires a signed-in viewer")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(viewer, code)] = cloneSettings(settings)
	return nil
}

func (s *InMemoryPreferenceStore) key(viewer ViewerContext, code string) string {
	return strconv.Itoa(viewer.UserID) + "::" + code
}

func cloneSettings(settings map[string]any) map[string]any {
	out := make(map[string]any, len(settings))
	for key, value := range settings {
		out[key] = value
	}
	return out
}

// SavePageSettings validates a settings payload against the page's schema and
// persists it for the viewer.
func (s *Service) SavePageSettings(ctx context.Context, viewer ViewerContext, code string, settings map[string]any) error {
	if err := s.ValidateSettings(code, settings); err != nil {
		return err
	}
	return s.opts.Preferences.SavePageSettings(ctx, viewer, code, settings)
}

// PageSettings returns the page's default settings overlaid with the viewer's
// stored preferences.
func (s *Service) PageSettings(ctx context.Context, viewer ViewerContext, code string) (map[string]any, error) {
	def, ok := s.opts.Registry.Definition(code)
	if !ok {
		return nil, fmt.Errorf("console: unknown page %q", code)
	}
	merged := make(map[string]any, len(def.Settings))
	for key, value := range def.Settings {
		merged[key] = value
	}
	stored, err := s.opts.Preferences.PageSettings(ctx, viewer, code)
	if err != nil {
		return nil, err
	}
	for key, value := range stored {
		merged[key] = value
	}
	return merged, nil
}
