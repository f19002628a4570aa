package domain

import "time"

// EmbeddingDimensions is the vector dimension used across the system.
const EmbeddingDimensions = 1536

// EmbeddingRow is one persisted (chunk, vector, position) triple belonging
// to a KnowledgeRecord. Chunk indices for a knowledge id are contiguous and
// zero-based, in the order the chunker produced them.
type EmbeddingRow struct {
	ID           string
	ProjectID    string
	KnowledgeID  string
	ContentChunk string
	Embedding    []float32
	ChunkIndex   int
	CreatedAt    time.Time
}

// IsDegraded reports whether the row carries a zero placeholder vector,
// substituted when the embedding service failed for the chunk's batch.
// Degraded rows are candidates for a later re-embed pass.
func (r *EmbeddingRow) IsDegraded() bool {
	if len(r.Embedding) == 0 {
		return true
	}
	for _, v := range r.Embedding {
		if v != 0 {
			return false
		}
	}
	return true
}

// ZeroVector returns an all-zero placeholder vector of the given dimension.
func ZeroVector(dimensions int) []float32 {
	if dimensions <= 0 {
		dimensions = EmbeddingDimensions
	}
	return make([]float32, dimensions)
}
