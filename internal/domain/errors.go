package domain

import "errors"

// Pipeline errors. The retrieval orchestrator converts every per-document
// and per-stage failure into one of these kinds; the HTTP layer maps each
// kind to a distinct status and message.
var (
	// ErrMissingQuery means the request carried no query text.
	ErrMissingQuery = errors.New("missing query")

	// ErrNoDocuments means the request carried no document payloads.
	ErrNoDocuments = errors.New("no documents provided")

	// ErrUnsupportedFormat means a document's file type is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction means text extraction failed for a specific document.
	// The whole request fails; there is no partial-success mode.
	ErrExtraction = errors.New("text extraction failed")

	// ErrNoContent means no document yielded any usable chunks.
	ErrNoContent = errors.New("no usable text in any document")

	// ErrEmbedding means the embedding collaborator failed or returned
	// empty or mismatched output.
	ErrEmbedding = errors.New("embedding failed")

	// ErrNoRelevantResult means the search succeeded but selected nothing.
	// Callers should treat this as a not-found outcome, not a server fault.
	ErrNoRelevantResult = errors.New("no relevant information found")

	// ErrLLM means the decision collaborator failed at the transport level.
	ErrLLM = errors.New("decision model call failed")
)
