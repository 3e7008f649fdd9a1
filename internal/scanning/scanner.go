package scanning

// Scanner defines the interface for receipt text recognition
type Scanner interface {
	// ScanText recognizes the text of a receipt image and returns its
	// fragments in reading order
	ScanText(imageData []byte, contentType string) ([]string, error)
	// Close closes the scanner and releases resources
	Close() error
}
