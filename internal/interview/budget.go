package interview

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

const clippedMarker = " [...]"

// AnswerBudget caps how many tokens of a candidate answer are forwarded to
// the model. A nil budget forwards answers untouched.
type AnswerBudget struct {
	codec tokenizer.Codec
	limit int
}

func NewAnswerBudget(limit int) (*AnswerBudget, error) {
	if limit <= 0 {
		return nil, nil
	}
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &AnswerBudget{codec: codec, limit: limit}, nil
}

// Clip returns s cut to the token limit. On any tokenizer error s is
// returned unchanged.
func (b *AnswerBudget) Clip(s string) string {
	if b == nil {
		return s
	}
	ids, _, err := b.codec.Encode(s)
	if err != nil || len(ids) <= b.limit {
		return s
	}
	out, err := b.codec.Decode(ids[:b.limit])
	if err != nil {
		return s
	}
	return out + clippedMarker
}

func (b *AnswerBudget) Count(s string) int {
	if b == nil {
		return 0
	}
	ids, _, err := b.codec.Encode(s)
	if err != nil {
		return 0
	}
	return len(ids)
}
