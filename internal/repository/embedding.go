package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/structa-ai/structa/internal/domain"
)

// EmbeddingRepository handles persistence of chunk embedding rows.
type EmbeddingRepository struct {
	db dbtx
}

func NewEmbeddingRepository(pool *pgxpool.Pool) *EmbeddingRepository {
	return &EmbeddingRepository{db: pool}
}

func NewEmbeddingRepositoryWithTx(tx pgx.Tx) *EmbeddingRepository {
	return &EmbeddingRepository{db: tx}
}

// Insert appends one embedding row.
func (r *EmbeddingRepository) Insert(ctx context.Context, row *domain.EmbeddingRow) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_embeddings (id, project_id, knowledge_id, content_chunk, embedding, chunk_index, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID,
		row.ProjectID,
		row.KnowledgeID,
		row.ContentChunk,
		pgvector.NewVector(row.Embedding),
		row.ChunkIndex,
		createdAt,
	)
	return err
}

// DeleteByKnowledge removes all rows for a knowledge record. Run before
// re-inserting so reprocessing never accumulates duplicate rows.
func (r *EmbeddingRepository) DeleteByKnowledge(ctx context.Context, knowledgeID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project_embeddings WHERE knowledge_id = $1`, knowledgeID)
	return err
}

// CountByKnowledge returns the number of persisted rows for a knowledge record.
func (r *EmbeddingRepository) CountByKnowledge(ctx context.Context, knowledgeID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM project_embeddings WHERE knowledge_id = $1`,
		knowledgeID,
	).Scan(&count)
	return count, err
}

// ListByKnowledge returns a record's rows ordered by chunk index.
func (r *EmbeddingRepository) ListByKnowledge(ctx context.Context, knowledgeID string) ([]*domain.EmbeddingRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, knowledge_id, content_chunk, embedding, chunk_index, created_at
		 FROM project_embeddings WHERE knowledge_id = $1 ORDER BY chunk_index ASC`,
		knowledgeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.EmbeddingRow
	for rows.Next() {
		var row domain.EmbeddingRow
		var embedding pgvector.Vector
		if err := rows.Scan(&row.ID, &row.ProjectID, &row.KnowledgeID, &row.ContentChunk, &embedding, &row.ChunkIndex, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Embedding = embedding.Slice()
		results = append(results, &row)
	}
	return results, rows.Err()
}
