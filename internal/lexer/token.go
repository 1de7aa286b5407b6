package lexer

// Token is an immutable record of a single lexeme: its kind, its byte
// range [Start, End) within the source, and its decoded text (populated
// only for identifiers and literals requiring escape processing — plain
// operators/punctuation carry an empty Text and are re-derived from Kind).
//
// Invariant: 0 <= Start <= End <= len(source).
type Token struct {
	Kind  Kind
	Start int
	End   int
	Text  string
}

// Len returns the byte length of the token's source range.
func (t Token) Len() int { return t.End - t.Start }
