package parsing

// scanLineItem applies the price-follows-name rule shared by every layout.
// It is only called for positions past the two header lines, and it starts
// the item list even when the token is not a price.
func scanLineItem(b *Builder, tokens []Token, i int) {
	b.EnsureGroceries()

	tok := tokens[i]
	if !IsPrice(tok.Text) {
		return
	}
	// The previous fragment is used verbatim as the item name; quantity and
	// product codes printed in front of it are not stripped.
	name := tokens[i-1].Text
	price, _ := ExtractPrice(tok.Text)
	if IsUnitPrice(tok.Text) {
		return
	}
	b.AddItem(name, price)
}
