package repoctx

import "context"

// Tokenizer encodes text into tokenizer units and decodes them back. It is an
// explicitly constructed, injectable component so callers can substitute a
// deterministic stub; a nil Tokenizer means token counting is unavailable and
// count annotations and budget truncation are skipped.
type Tokenizer interface {
	Encode(ctx context.Context, text string) ([]int, error)
	Decode(ctx context.Context, tokens []int) (string, error)
}

// CountTokens returns the number of tokens in text. A nil tokenizer or an
// encoding failure counts as zero.
func CountTokens(ctx context.Context, tok Tokenizer, text string) int {
	if tok == nil || text == "" {
		return 0
	}
	tokens, err := tok.Encode(ctx, text)
	if err != nil {
		return 0
	}
	return len(tokens)
}
