// Package retriever coordinates the retrieval pipeline: per-document text
// extraction, chunking, batch embedding, index construction and top-k
// selection. Everything it builds lives inside a single request.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"intellidocs/internal/chunker"
	"intellidocs/internal/domain"
	"intellidocs/internal/index"
)

// DefaultTopK is the number of chunks retrieved when the caller does not
// say otherwise.
const DefaultTopK = 5

// Service runs the retrieval pipeline with injected collaborators.
type Service struct {
	extractor domain.Extractor
	embedder  domain.Embedder
	chunker   *chunker.WordChunker
	logger    *zap.Logger
}

// NewService assembles a retrieval service. A nil logger disables logging.
func NewService(extractor domain.Extractor, embedder domain.Embedder, ch *chunker.WordChunker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{extractor: extractor, embedder: embedder, chunker: ch, logger: logger}
}

// Corpus is the per-request ordered chunk collection together with the
// index built over it. Position i in the index corresponds to Chunks[i];
// the two travel together so the alignment cannot drift.
type Corpus struct {
	Chunks         []domain.Chunk
	Index          *index.Flat
	TotalDocuments int
}

// Ingest extracts, chunks, embeds and indexes the given documents. A
// failing document aborts the whole call with an error naming it; there is
// no partial-success mode. Cancellation is honored between documents.
func (s *Service) Ingest(ctx context.Context, docs []domain.Document) (*Corpus, error) {
	var chunks []domain.Chunk
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := s.extractor.Extract(doc)
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedFormat) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, doc.Name, err)
		}
		docChunks, droppedTail := s.chunker.Chunk(text, doc.Name)
		if droppedTail > 0 {
			s.logger.Warn("trailing words below minimum chunk size were dropped",
				zap.String("source", doc.Name),
				zap.Int("words", droppedTail),
			)
		}
		s.logger.Debug("document chunked",
			zap.String("source", doc.Name),
			zap.Int("chunks", len(docChunks)),
		)
		chunks = append(chunks, docChunks...)
	}
	if len(chunks) == 0 {
		return nil, domain.ErrNoContent
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", domain.ErrEmbedding, len(vectors), len(chunks))
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return nil, err
	}
	s.logger.Info("corpus indexed",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)),
		zap.Int("dimension", idx.Dim()),
		zap.String("embedder", s.embedder.Name()),
	)
	return &Corpus{Chunks: chunks, Index: idx, TotalDocuments: len(docs)}, nil
}

// Query embeds the query, searches the corpus and assembles ranked chunks.
// Zero hits surface as domain.ErrNoRelevantResult, a distinguished
// not-found outcome rather than a server fault.
func (s *Service) Query(ctx context.Context, corpus *Corpus, query string, k int) ([]domain.RankedChunk, error) {
	if corpus == nil || corpus.Index == nil {
		return nil, index.ErrNotBuilt
	}
	if len(corpus.Chunks) == 0 {
		return nil, index.ErrEmptyInput
	}
	if corpus.Index.Len() != len(corpus.Chunks) {
		return nil, fmt.Errorf("corpus out of sync: %d chunks, %d vectors", len(corpus.Chunks), corpus.Index.Len())
	}
	if k <= 0 {
		k = DefaultTopK
	}
	qv, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrEmbedding, err)
	}
	hits, err := corpus.Index.Search(qv, k)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, domain.ErrNoRelevantResult
	}
	ranked := make([]domain.RankedChunk, len(hits))
	for i, h := range hits {
		ranked[i] = domain.RankedChunk{
			Chunk: corpus.Chunks[h.Position],
			Score: h.Score,
			Rank:  i + 1,
		}
	}
	return ranked, nil
}

// Retrieve runs the whole pipeline for one request. Input validation
// happens before any extraction work.
func (s *Service) Retrieve(ctx context.Context, docs []domain.Document, query string, k int) (*domain.Retrieval, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrMissingQuery
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	corpus, err := s.Ingest(ctx, docs)
	if err != nil {
		return nil, err
	}
	ranked, err := s.Query(ctx, corpus, query, k)
	if err != nil {
		return nil, err
	}
	s.logger.Info("retrieval complete",
		zap.Int("retrieved", len(ranked)),
		zap.Float64("top_score", ranked[0].Score),
	)
	return &domain.Retrieval{
		Chunks:         ranked,
		TotalDocuments: len(docs),
		TotalChunks:    len(corpus.Chunks),
	}, nil
}
