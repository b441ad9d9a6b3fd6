// Package videos provides filesystem storage for uploaded video files.
package videos

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// allowedExtensions lists the upload formats we accept.
var allowedExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
}

// Storage manages video filesystem operations.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a new Storage instance.
// basePath should be the upload directory (e.g., ~/EditDrop/uploads).
// Videos are stored in {basePath}/videos/.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	storagePath := filepath.Join(basePath, "videos")
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create videos directory: %w", err)
	}

	return &Storage{basePath: storagePath}, nil
}

// Save streams an uploaded video to disk under a random name and returns
// its locator, e.g. "videos/3f8a....mp4". The locator is what gets stored
// on the edit.
func (s *Storage) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext = strings.ToLower(ext)
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported video extension %q", ext)
	}

	name := uuid.NewString() + ext

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.basePath, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create video file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write video file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close video file: %w", err)
	}

	return "videos/" + name, nil
}

// Path resolves a locator produced by Save to an absolute file path.
// Locators pointing outside the storage directory are rejected.
func (s *Storage) Path(locator string) (string, error) {
	name, ok := strings.CutPrefix(locator, "videos/")
	if !ok || name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid video locator %q", locator)
	}
	return filepath.Join(s.basePath, name), nil
}

// Delete removes a stored video. Missing files are not an error, so
// deleting an edit whose file is already gone stays idempotent.
func (s *Storage) Delete(locator string) error {
	path, err := s.Path(locator)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete video file: %w", err)
	}
	return nil
}

// Exists reports whether the locator resolves to a stored file.
func (s *Storage) Exists(locator string) bool {
	path, err := s.Path(locator)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, statErr := os.Stat(path)
	return statErr == nil
}
