package syntax

// Token is a positional lexeme. Its text is recovered by slicing the input at
// the running sum of preceding lengths.
type Token struct {
	Kind Kind
	Len  int
}

// Span locates a token within the input it was lexed from.
type Span struct {
	Start int
	End   int
}

// Spans returns the byte span of every token. The spans partition
// [0, sum of lengths).
func Spans(tokens []Token) []Span {
	spans := make([]Span, len(tokens))
	offset := 0

	for i, tok := range tokens {
		spans[i] = Span{Start: offset, End: offset + tok.Len}
		offset += tok.Len
	}

	return spans
}

// TotalLen returns the number of input bytes covered by tokens.
func TotalLen(tokens []Token) int {
	total := 0
	for _, tok := range tokens {
		total += tok.Len
	}
	return total
}
