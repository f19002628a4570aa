//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/structa-ai/structa/internal/domain"
	"github.com/structa-ai/structa/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedKnowledge(ctx context.Context, t *testing.T, repo *KnowledgeRepository) *domain.KnowledgeRecord {
	k := newKnowledgeRecord("project-1")
	require.NoError(t, repo.Create(ctx, k))
	return k
}

func embeddingRow(k *domain.KnowledgeRecord, index int, chunk string) *domain.EmbeddingRow {
	vector := domain.ZeroVector(domain.EmbeddingDimensions)
	vector[0] = float32(index + 1)
	return &domain.EmbeddingRow{
		ID:           uuid.NewString(),
		ProjectID:    k.ProjectID,
		KnowledgeID:  k.ID,
		ContentChunk: chunk,
		Embedding:    vector,
		ChunkIndex:   index,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestEmbeddingRepository_InsertAndList(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	knowledgeRepo := NewKnowledgeRepository(pool)
	embeddingRepo := NewEmbeddingRepository(pool)

	k := seedKnowledge(ctx, t, knowledgeRepo)

	// Insert out of order to verify ordering on read
	require.NoError(t, embeddingRepo.Insert(ctx, embeddingRow(k, 1, "Second chunk.")))
	require.NoError(t, embeddingRepo.Insert(ctx, embeddingRow(k, 0, "First chunk.")))

	rows, err := embeddingRepo.ListByKnowledge(ctx, k.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].ChunkIndex)
	assert.Equal(t, "First chunk.", rows[0].ContentChunk)
	assert.Equal(t, 1, rows[1].ChunkIndex)
	assert.Equal(t, "Second chunk.", rows[1].ContentChunk)
	assert.Len(t, rows[0].Embedding, domain.EmbeddingDimensions)
	assert.Equal(t, float32(1), rows[0].Embedding[0])
}

func TestEmbeddingRepository_CountAndDelete(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	knowledgeRepo := NewKnowledgeRepository(pool)
	embeddingRepo := NewEmbeddingRepository(pool)

	k := seedKnowledge(ctx, t, knowledgeRepo)
	other := seedKnowledge(ctx, t, knowledgeRepo)

	for i := 0; i < 3; i++ {
		require.NoError(t, embeddingRepo.Insert(ctx, embeddingRow(k, i, "chunk")))
	}
	require.NoError(t, embeddingRepo.Insert(ctx, embeddingRow(other, 0, "other chunk")))

	count, err := embeddingRepo.CountByKnowledge(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, embeddingRepo.DeleteByKnowledge(ctx, k.ID))

	count, err = embeddingRepo.CountByKnowledge(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Other records are untouched
	count, err = embeddingRepo.CountByKnowledge(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEmbeddingRepository_DeleteByKnowledge_Empty(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	embeddingRepo := NewEmbeddingRepository(pool)

	// Deleting rows for an unknown record is a no-op
	assert.NoError(t, embeddingRepo.DeleteByKnowledge(ctx, uuid.NewString()))
}
