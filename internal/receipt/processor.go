package receipt

import (
	"fmt"
	"log/slog"

	"github.com/zombor/receipt-reader/internal/scanning"
)

// DefaultExtension is the only image type picked up from the receipts directory
const DefaultExtension = ".jpg"

// Parser turns the recognized text fragments of one image into a record
type Parser interface {
	Parse(fileName string, texts []string) *Record
}

// Summary describes the outcome of one batch run
type Summary struct {
	Listed    int
	Skipped   int
	Processed int
	Total     int // records in the cache after the run
}

// Processor runs the receipt batch: every unprocessed image is scanned,
// parsed and appended to the cache, then all records go to the sinks.
type Processor struct {
	cache     Cache
	scanner   scanning.Scanner
	storage   Storage
	parser    Parser
	sinks     []Sink
	extension string
}

// NewProcessor creates a new Processor reading DefaultExtension images
func NewProcessor(cache Cache, scanner scanning.Scanner, storage Storage, parser Parser, sinks ...Sink) *Processor {
	return NewProcessorWithExtension(DefaultExtension, cache, scanner, storage, parser, sinks...)
}

// NewProcessorWithExtension creates a new Processor for a custom image extension
func NewProcessorWithExtension(ext string, cache Cache, scanner scanning.Scanner, storage Storage, parser Parser, sinks ...Sink) *Processor {
	return &Processor{
		cache:     cache,
		scanner:   scanner,
		storage:   storage,
		parser:    parser,
		sinks:     sinks,
		extension: ext,
	}
}

// Run processes every new image. It stops at the first error.
func (p *Processor) Run() (*Summary, error) {
	names, err := p.storage.List(p.extension)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	summary := &Summary{Listed: len(names)}

	var records []*Record
	for _, name := range names {
		seen, err := p.cache.Has(name)
		if err != nil {
			return nil, fmt.Errorf("checking cache: %w", err)
		}
		if seen {
			slog.Debug("Skipping scanned receipt", "name", name)
			summary.Skipped++
			continue
		}

		record, err := p.processImage(name)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	summary.Processed = len(records)

	if len(records) == 0 {
		slog.Info("No new receipts found", "listed", summary.Listed)
		return summary, nil
	}

	if err := p.cache.Append(records...); err != nil {
		return nil, fmt.Errorf("appending to cache: %w", err)
	}
	all, err := p.cache.All()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	summary.Total = len(all)

	for _, sink := range p.sinks {
		if err := sink.Write(all); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSinkWrite, err)
		}
	}

	return summary, nil
}

// processImage reads, scans and parses a single image
func (p *Processor) processImage(name string) (*Record, error) {
	path := p.storage.Path(name)
	slog.Info("Using receipt", "name", name)

	data, err := p.storage.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageRead, name, err)
	}

	texts, err := p.scanner.ScanText(data, ContentType(name))
	if err != nil {
		slog.Error("Failed to scan receipt",
			"filename", name,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %s: %w", ErrRecognition, name, err)
	}
	for i, text := range texts {
		slog.Debug("Recognized text", "filename", name, "position", i, "text", text)
	}

	record := p.parser.Parse(path, texts)
	slog.Info("Parsed receipt",
		"filename", name,
		"fragments", len(texts),
		"items", len(record.Groceries),
	)
	return record, nil
}
