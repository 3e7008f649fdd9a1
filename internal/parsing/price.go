package parsing

import (
	"regexp"
	"strings"
)

var pricePattern = regexp.MustCompile(`[0-9]+\.[0-9]+`)

// unitPriceMarker flags per-kilogram sub-lines on weighed goods
const unitPriceMarker = "/k"

// IsPrice reports whether text starts with a decimal number.
// The number does not have to make up the whole text.
func IsPrice(text string) bool {
	loc := pricePattern.FindStringIndex(text)
	return loc != nil && loc[0] == 0
}

// ExtractPrice returns the first decimal number anywhere in text
func ExtractPrice(text string) (string, bool) {
	price := pricePattern.FindString(text)
	return price, price != ""
}

// IsUnitPrice reports whether text is a per-unit price line
func IsUnitPrice(text string) bool {
	return strings.Contains(text, unitPriceMarker)
}
