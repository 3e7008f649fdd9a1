package parsing

import (
	"log/slog"

	"github.com/zombor/receipt-reader/internal/receipt"
)

// Extractor builds a record from the tokens of one receipt layout
type Extractor interface {
	Extract(fileName string, tokens []Token) *receipt.Record
}

// Parser classifies a token stream and hands it to the extractor
// registered for its layout
type Parser struct {
	classify   Classifier
	extractors map[Layout]Extractor
	fallback   Layout
}

// NewParser creates a Parser that knows the Standard and Costco layouts
func NewParser() *Parser {
	p := NewParserWithClassifier(ClassifyLayout)
	p.Register(LayoutStandard, StandardExtractor{})
	p.Register(LayoutCostco, CostcoExtractor{})
	return p
}

// NewParserWithClassifier creates a Parser with no extractors registered
func NewParserWithClassifier(classify Classifier) *Parser {
	return &Parser{
		classify:   classify,
		extractors: make(map[Layout]Extractor),
		fallback:   LayoutStandard,
	}
}

// Register adds or replaces the extractor for a layout
func (p *Parser) Register(layout Layout, extractor Extractor) {
	p.extractors[layout] = extractor
}

// Parse turns the recognized fragments of fileName into a record.
// Layouts without an extractor are parsed as standard receipts.
func (p *Parser) Parse(fileName string, texts []string) *receipt.Record {
	tokens := NewTokens(texts)
	layout := p.classify(tokens)

	extractor, ok := p.extractors[layout]
	if !ok {
		slog.Warn("No extractor for layout, using fallback", "layout", layout, "fallback", p.fallback)
		extractor, ok = p.extractors[p.fallback]
	}
	if !ok {
		// Nothing registered at all: keep the file name so the image is not rescanned
		return &receipt.Record{FileName: fileName}
	}

	slog.Debug("Classified receipt", "filename", fileName, "layout", layout)
	return extractor.Extract(fileName, tokens)
}
