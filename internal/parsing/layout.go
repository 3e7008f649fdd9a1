package parsing

import "strings"

// Layout identifies a receipt format family
type Layout string

const (
	LayoutStandard Layout = "Standard"
	LayoutCostco   Layout = "Costco"
)

// Classifier picks the layout of a token stream
type Classifier func(tokens []Token) Layout

// ClassifyLayout returns LayoutCostco when any token carries a '#'
// (store and member numbers), LayoutStandard otherwise.
func ClassifyLayout(tokens []Token) Layout {
	for _, tok := range tokens {
		if strings.Contains(tok.Text, "#") {
			return LayoutCostco
		}
	}
	return LayoutStandard
}
