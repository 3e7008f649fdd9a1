package parsing

// Token is one recognized text fragment. Position is its index in the
// stream, which stands in for reading order on the printed receipt.
type Token struct {
	Text     string
	Position int
}

// NewTokens numbers the fragments returned by a scanner
func NewTokens(texts []string) []Token {
	tokens := make([]Token, len(texts))
	for i, text := range texts {
		tokens[i] = Token{Text: text, Position: i}
	}
	return tokens
}
