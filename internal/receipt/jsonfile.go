package receipt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// JSONCache implements the Cache interface on top of a single JSON file
// holding an array of records. Every Append rewrites the whole file.
type JSONCache struct {
	path      string
	validator *validator.Validate
	names     map[string]struct{} // base names, loaded on first Has; nil after Append
}

// NewJSONCache creates a JSONCache for the given file path.
// The file does not need to exist yet.
func NewJSONCache(path string) (*JSONCache, error) {
	if path == "" {
		return nil, errors.New("cache file path is required")
	}
	return &JSONCache{path: path, validator: validator.New()}, nil
}

// Has reports whether a record with this base name exists.
// The file is read once and the names kept until the next Append.
func (c *JSONCache) Has(name string) (bool, error) {
	if c.names == nil {
		records, err := c.All()
		if err != nil {
			return false, err
		}
		c.names = make(map[string]struct{}, len(records))
		for _, record := range records {
			c.names[record.BaseName()] = struct{}{}
		}
	}
	_, ok := c.names[name]
	return ok, nil
}

// All reads the cache file. A missing file is an empty cache.
func (c *JSONCache) All() ([]*Record, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrCacheCorrupt, c.path, err)
	}
	for i, record := range records {
		if record == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrCacheCorrupt, i)
		}
		if err := c.validator.Struct(record); err != nil {
			return nil, fmt.Errorf("%w: validating record %d: %w", ErrCacheCorrupt, i, err)
		}
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

// Append reads the existing records, appends the new ones and rewrites the file
func (c *JSONCache) Append(records ...*Record) error {
	existing, err := c.All()
	if err != nil {
		return err
	}
	if err := writeRecordsJSON(c.path, append(existing, records...)); err != nil {
		return err
	}
	c.names = nil
	return nil
}

// Close is a no-op for the file cache
func (c *JSONCache) Close() error {
	return nil
}

// encodeRecordsJSON renders records the way result.json has always looked:
// four space indent and no HTML escaping of non-ASCII receipt text.
func encodeRecordsJSON(records []*Record) ([]byte, error) {
	if records == nil {
		records = []*Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshaling records: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeRecordsJSON writes records atomically through a temp file and rename
func writeRecordsJSON(path string, records []*Record) error {
	payload, err := encodeRecordsJSON(records)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, payload)
}

func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
