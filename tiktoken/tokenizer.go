// Package tiktoken provides a repoctx.Tokenizer backed by BPE encodings from
// tiktoken.
package tiktoken

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/fwojciec/repoctx"
)

// DefaultEncoding is used when no encoding name is given. cl100k_base is
// the conventional default for context-size estimation.
const DefaultEncoding = "cl100k_base"

// Ensure Tokenizer implements repoctx.Tokenizer at compile time.
var _ repoctx.Tokenizer = (*Tokenizer)(nil)

// Tokenizer encodes and decodes text with a fixed BPE encoding.
type Tokenizer struct {
	enc  *tiktoken.Tiktoken
	name string
}

// New creates a Tokenizer for the named encoding (e.g. "cl100k_base",
// "o200k_base", "r50k_base"). An empty name selects DefaultEncoding.
func New(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer %q: %w", encoding, err)
	}
	return &Tokenizer{enc: enc, name: encoding}, nil
}

// NewForModel creates a Tokenizer for a model name, falling back to
// DefaultEncoding when the model is unknown.
func NewForModel(model string) (*Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err == nil && enc != nil {
		return &Tokenizer{enc: enc, name: model}, nil
	}
	return New(DefaultEncoding)
}

// Name returns the encoding or model name the tokenizer was built with.
func (t *Tokenizer) Name() string {
	return t.name
}

// Encode tokenizes text into BPE token IDs.
func (t *Tokenizer) Encode(ctx context.Context, text string) ([]int, error) {
	if t.enc == nil {
		return nil, errors.New("nil tiktoken encoder")
	}
	return t.enc.Encode(text, nil, nil), nil
}

// Decode converts BPE token IDs back into text.
func (t *Tokenizer) Decode(ctx context.Context, tokens []int) (string, error) {
	if t.enc == nil {
		return "", errors.New("nil tiktoken encoder")
	}
	return t.enc.Decode(tokens), nil
}
