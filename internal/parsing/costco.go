package parsing

import (
	"strings"

	"github.com/zombor/receipt-reader/internal/receipt"
)

const (
	costcoLocationPosition = 2
	costcoHeaderLength     = 5
	costcoNamePrefix       = "Costco: "
)

// CostcoExtractor reads Costco receipts, which print the warehouse address
// on the third line and a '#' store number within the first five.
type CostcoExtractor struct{}

var costcoPolicies = Policies{
	FieldStoreName:     Overwrite,
	FieldStoreLocation: SetOnce,
}

// Extract builds the record of a Costco receipt. All rules are checked for
// every position.
func (CostcoExtractor) Extract(fileName string, tokens []Token) *receipt.Record {
	b := NewBuilder(fileName, costcoPolicies)
	for i, tok := range tokens {
		if i == costcoLocationPosition {
			b.Set(FieldStoreLocation, tok.Text)
		}
		if i < costcoHeaderLength && strings.Contains(tok.Text, "#") {
			b.Set(FieldStoreName, costcoNamePrefix+tok.Text)
		}
		if i > 1 {
			scanLineItem(b, tokens, i)
		}
	}
	return b.Record()
}
