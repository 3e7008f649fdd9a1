package receipt

// Cache defines the interface for the set of already processed receipts.
// Records are keyed by the base name of their file name.
type Cache interface {
	// Has reports whether an image with this base name was processed
	Has(name string) (bool, error)

	// Append adds records after the existing ones
	Append(records ...*Record) error

	// All returns every record in insertion order
	All() ([]*Record, error)

	// Close releases the cache
	Close() error
}
