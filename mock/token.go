package mock

import (
	"context"

	"github.com/fwojciec/repoctx"
)

var _ repoctx.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a mock implementation of repoctx.Tokenizer.
type Tokenizer struct {
	EncodeFn func(ctx context.Context, text string) ([]int, error)
	DecodeFn func(ctx context.Context, tokens []int) (string, error)
}

func (t *Tokenizer) Encode(ctx context.Context, text string) ([]int, error) {
	return t.EncodeFn(ctx, text)
}

func (t *Tokenizer) Decode(ctx context.Context, tokens []int) (string, error) {
	return t.DecodeFn(ctx, tokens)
}
