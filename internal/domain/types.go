package domain

// Document is a raw uploaded payload before text extraction.
type Document struct {
	Name string
	Data []byte
}

// Chunk is a bounded word-window of a document with position metadata.
// StartWord and EndWord are word offsets into the normalized document text,
// so EndWord-StartWord == WordCount. Chunk IDs are 0-based per source.
type Chunk struct {
	Text      string
	Source    string
	ChunkID   int
	StartWord int
	EndWord   int
	WordCount int
}

// RankedChunk is a chunk selected by retrieval, with its similarity to the
// query and its 1-based rank in the result ordering.
type RankedChunk struct {
	Chunk
	Score float64
	Rank  int
}

// Retrieval is the output of one full pipeline run over a request's
// documents and query.
type Retrieval struct {
	Chunks         []RankedChunk
	TotalDocuments int
	TotalChunks    int
}

// Sources returns the distinct source names among the retrieved chunks,
// in order of first appearance.
func (r *Retrieval) Sources() []string {
	seen := make(map[string]struct{}, len(r.Chunks))
	var out []string
	for _, ch := range r.Chunks {
		if _, ok := seen[ch.Source]; ok {
			continue
		}
		seen[ch.Source] = struct{}{}
		out = append(out, ch.Source)
	}
	return out
}

// Justification is one supporting clause cited by the decision model.
type Justification struct {
	Clause    string `json:"clause"`
	Text      string `json:"text"`
	Relevance string `json:"relevance"`
}

// Decision is the structured result of the LLM decision call.
type Decision struct {
	Decision      string          `json:"decision"`
	Justification []Justification `json:"justification,omitempty"`
	Confidence    float64         `json:"confidence"`
	Summary       string          `json:"summary,omitempty"`
	Reasoning     string          `json:"reasoning,omitempty"`
	RawResponse   string          `json:"raw_response,omitempty"`
	Note          string          `json:"note,omitempty"`
}
