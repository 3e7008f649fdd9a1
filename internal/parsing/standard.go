package parsing

import "github.com/zombor/receipt-reader/internal/receipt"

// StandardExtractor reads generic receipts: store name on the first line,
// location on the second, line items after that.
type StandardExtractor struct{}

var standardPolicies = Policies{
	FieldStoreName:     SetOnce,
	FieldStoreLocation: SetOnce,
}

// Extract builds the record of a standard receipt
func (StandardExtractor) Extract(fileName string, tokens []Token) *receipt.Record {
	b := NewBuilder(fileName, standardPolicies)
	for i, tok := range tokens {
		switch {
		case i == 0:
			b.Set(FieldStoreName, tok.Text)
		case i == 1:
			b.Set(FieldStoreLocation, tok.Text)
		default:
			scanLineItem(b, tokens, i)
		}
	}
	return b.Record()
}
