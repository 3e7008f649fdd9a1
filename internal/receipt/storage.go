package receipt

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Storage defines the interface for reading source receipt images
type Storage interface {
	// List returns the names of all images ending with ext, sorted by name
	List(ext string) ([]string, error)

	// Get retrieves an image by name
	Get(name string) ([]byte, error)

	// Path returns the normalized path of an image
	Path(name string) string
}

// LocalStorage implements the Storage interface using local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating receipts directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// List returns the image names in the receipts directory
func (l *LocalStorage) List(ext string) ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("listing receipts directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Get retrieves an image from local storage
func (l *LocalStorage) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Path joins the image name onto the receipts directory
func (l *LocalStorage) Path(name string) string {
	return filepath.Clean(filepath.Join(l.basePath, name))
}

// ContentType guesses the MIME type of an image from its name
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "image/jpeg"
}
