package receipt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// Record represents the structured data extracted from one receipt image
type Record struct {
	FileName      string     `json:"file_name" validate:"required"`
	StoreName     *string    `json:"store_name,omitempty"`
	StoreLocation *string    `json:"store_location,omitempty"`
	Groceries     []LineItem `json:"groceries"` // nil until the extractor reaches the item section
}

// BaseName returns the cache key of the record
func (r *Record) BaseName() string {
	return filepath.Base(r.FileName)
}

// MarshalJSON omits groceries only when the list was never started, so an
// empty list survives a round trip through the cache.
func (r Record) MarshalJSON() ([]byte, error) {
	type wire struct {
		FileName      string      `json:"file_name"`
		StoreName     *string     `json:"store_name,omitempty"`
		StoreLocation *string     `json:"store_location,omitempty"`
		Groceries     *[]LineItem `json:"groceries,omitempty"`
	}
	w := wire{
		FileName:      r.FileName,
		StoreName:     r.StoreName,
		StoreLocation: r.StoreLocation,
	}
	if r.Groceries != nil {
		w.Groceries = &r.Groceries
	}
	return marshalText(w)
}

// LineItem is one (item name, price) pair found on a receipt.
// Price keeps the exact decimal text printed on the receipt.
type LineItem struct {
	Name  string
	Price string
}

// MarshalJSON encodes the item as a two element array
func (l LineItem) MarshalJSON() ([]byte, error) {
	return marshalText([2]string{l.Name, l.Price})
}

// UnmarshalJSON decodes the two element array form
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding line item: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line item must have 2 elements, got %d", len(pair))
	}
	l.Name = pair[0]
	l.Price = pair[1]
	return nil
}

// marshalText encodes v without escaping HTML characters, which receipts
// print freely (e.g. "<" in "Eggs <12>")
func marshalText(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
