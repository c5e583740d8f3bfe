package driving

import (
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

// QueryService answers free-text questions against a built index.
type QueryService interface {
	// Answer maps a question to a formatted text block. It is pure and
	// never fails: ambiguity and misses are data, surfaced as guidance
	// text, not errors.
	Answer(question string, idx *domain.Index) string
}
