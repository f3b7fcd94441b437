package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// Ensure FileSource implements the interface.
var _ driven.CatalogSource = (*FileSource)(nil)

// FileSource reads form records from a JSON file.
type FileSource struct {
	path string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewFileSource creates a source for the catalog at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the catalog file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and decodes the catalog.
// Returns domain.ErrNotFound when no path is set or the file does not exist.
func (s *FileSource) Load(ctx context.Context) ([]domain.FormRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, domain.ErrNotFound
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("catalog %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	records, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}

	logger.Debug("loaded %d catalog records from %s", len(records), s.path)
	return records, nil
}

func decode(data []byte) ([]domain.FormRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Forms []domain.FormRecord `json:"forms"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Forms, nil
	}

	var records []domain.FormRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Watch reports changes to the catalog file until ctx is cancelled.
// The parent directory is watched because editors often replace the file
// rather than write it in place. Bursts of events are not coalesced.
func (s *FileSource) Watch(ctx context.Context) (<-chan struct{}, error) {
	if s.path == "" {
		return nil, fmt.Errorf("watch catalog: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return nil, errors.New("catalog already watched")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}
	s.watcher = watcher

	changes := make(chan struct{}, 1)
	go s.watchLoop(ctx, watcher, changes)
	return changes, nil
}

func (s *FileSource) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer func() {
		s.mu.Lock()
		if s.watcher == watcher {
			s.watcher = nil
		}
		s.mu.Unlock()
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.isCatalogChange(event) {
				continue
			}
			logger.Debug("catalog changed: %s", event)
			// Drop the signal if one is already pending.
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("catalog watcher: %v", err)
		}
	}
}

// isCatalogChange reports whether event touches the catalog file contents.
func (s *FileSource) isCatalogChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.path) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}

// Close stops any active watch.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
