package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"crafts-market/internal/core/debounce"
	"crafts-market/internal/core/logger"
	"crafts-market/internal/features/catalog/domain"

	"go.uber.org/zap"
)

// FileSource implements ports.CatalogSource from a JSON data file.
//
// The file is read once at construction and served as an immutable snapshot.
// Every read schedules a debounced background reload, so a burst of browsing
// re-reads the file at most once per quiet period, with the latest request
// winning. A reload that fails keeps the previous snapshot in place.
type FileSource struct {
	path     string
	reloader *debounce.Debouncer

	mu    sync.RWMutex
	items []domain.Item
}

// NewFileSource creates a FileSource and performs the initial load.
func NewFileSource(path string, quiet time.Duration) (*FileSource, error) {
	s := &FileSource{
		path:     path,
		reloader: debounce.New(quiet),
	}

	items, err := readCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", path, err)
	}
	s.items = items

	return s, nil
}

// Items returns the current snapshot and schedules a debounced reload.
func (s *FileSource) Items(ctx context.Context) ([]domain.Item, error) {
	s.reloader.Trigger(s.reload)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, nil
}

// Close cancels any pending reload.
func (s *FileSource) Close() {
	s.reloader.Stop()
}

func (s *FileSource) reload() {
	items, err := readCatalogFile(s.path)
	if err != nil {
		logger.Named("catalog").Warn("Catalog reload failed, keeping previous snapshot",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func readCatalogFile(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}

	return items, nil
}
