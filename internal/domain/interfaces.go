package domain

import "context"

// Extractor turns a raw document payload into plain text.
// Unknown file types are reported via ErrUnsupportedFormat.
type Extractor interface {
	Extract(doc Document) (string, error)
}

// Embedder converts text into vectors in a shared similarity space.
// Implementations must be safe for concurrent use.
type Embedder interface {
	Name() string
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Embed(ctx context.Context, text string) ([]float64, error)
}

// DecisionClient asks a language model for a structured decision over the
// retrieved chunk texts. Unparsable model output degrades to a fallback
// Decision instead of an error; transport failures return ErrLLM.
type DecisionClient interface {
	Decide(ctx context.Context, query string, chunks []string) (Decision, error)
}
