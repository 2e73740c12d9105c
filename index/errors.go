package index

import "errors"

var (
	// ErrEmptyCorpus is returned when Build is called with no texts.
	ErrEmptyCorpus = errors.New("cannot build index over an empty corpus")

	// ErrEmbedderRequired is returned when Build is called without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a different
	// number of vectors than texts it was given.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrDimensionMismatch is returned when vectors disagree on dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyEmbedding is returned when the embedder produces a zero-length vector.
	ErrEmptyEmbedding = errors.New("embedder returned an empty vector")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrUnknownStore is returned for an unrecognized vector store kind.
	ErrUnknownStore = errors.New("unknown vector store")
)
