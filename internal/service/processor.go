package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/structa-ai/structa/internal/domain"
	"github.com/structa-ai/structa/internal/telemetry"
)

// TextFetcher defines the content retrieval interface for the processor
type TextFetcher interface {
	FetchText(ctx context.Context, filePath string) string
}

// Embedder defines the interface for batch embedding generation
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) (vectors [][]float32, degraded int)
}

// ProcessorKnowledgeRepository defines the knowledge-record operations the processor needs
type ProcessorKnowledgeRepository interface {
	ListUnprocessed(ctx context.Context) ([]*domain.KnowledgeRecord, error)
	MarkProcessed(ctx context.Context, id string, chunksCount int, processedAt time.Time) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// ProcessorEmbeddingRepository defines the embedding-row operations the processor needs
type ProcessorEmbeddingRepository interface {
	DeleteByKnowledge(ctx context.Context, knowledgeID string) error
	Insert(ctx context.Context, row *domain.EmbeddingRow) error
}

// Processor drives one knowledge record through fetch, chunk, embed and
// persist, and records the outcome on the record. All collaborators are
// injected so tests can substitute fakes.
type Processor struct {
	fetcher       TextFetcher
	embedder      Embedder
	knowledgeRepo ProcessorKnowledgeRepository
	embeddingRepo ProcessorEmbeddingRepository
	chunkCfg      ChunkConfig
}

// NewProcessor creates a Processor with default chunking.
func NewProcessor(
	fetcher TextFetcher,
	embedder Embedder,
	knowledgeRepo ProcessorKnowledgeRepository,
	embeddingRepo ProcessorEmbeddingRepository,
) *Processor {
	return NewProcessorWithChunkConfig(fetcher, embedder, knowledgeRepo, embeddingRepo, DefaultChunkConfig())
}

func NewProcessorWithChunkConfig(
	fetcher TextFetcher,
	embedder Embedder,
	knowledgeRepo ProcessorKnowledgeRepository,
	embeddingRepo ProcessorEmbeddingRepository,
	chunkCfg ChunkConfig,
) *Processor {
	return &Processor{
		fetcher:       fetcher,
		embedder:      embedder,
		knowledgeRepo: knowledgeRepo,
		embeddingRepo: embeddingRepo,
		chunkCfg:      chunkCfg,
	}
}

// ProcessKnowledge runs the full pipeline for one knowledge record:
// fetch text, chunk, embed, replace the record's embedding rows, then mark
// the record processed. Any hard failure marks the record failed with the
// failure's description before the error is returned. There are no retries
// within one call; a failed record stays unprocessed and can be re-attempted.
func (p *Processor) ProcessKnowledge(ctx context.Context, projectID, knowledgeID, filePath, fileName string) error {
	ctx, span := telemetry.StartSpan(ctx, "processor.process_knowledge", telemetry.SpanAttributes{
		ProjectID:   projectID,
		KnowledgeID: knowledgeID,
		FileName:    fileName,
	})
	defer span.End()

	log.Printf("processing knowledge %s (%s)", knowledgeID, fileName)

	err := p.process(ctx, projectID, knowledgeID, filePath)
	if err != nil {
		span.SetError(err)
		if markErr := p.knowledgeRepo.MarkFailed(ctx, knowledgeID, err.Error()); markErr != nil {
			log.Printf("failed to record processing error for knowledge %s: %v", knowledgeID, markErr)
		}
		return fmt.Errorf("failed to process knowledge %s: %w", knowledgeID, err)
	}

	log.Printf("successfully processed knowledge %s (%s)", knowledgeID, fileName)
	return nil
}

func (p *Processor) process(ctx context.Context, projectID, knowledgeID, filePath string) error {
	text := p.fetcher.FetchText(ctx, filePath)
	if strings.TrimSpace(text) == "" {
		return domain.ErrNoContentExtracted
	}
	log.Printf("extracted %d characters of text", len(text))

	chunks := chunkText(text, p.chunkCfg)
	log.Printf("created %d chunks", len(chunks))

	vectors, degraded := p.embedder.EmbedTexts(ctx, chunks)
	if degraded > 0 {
		log.Printf("knowledge %s: %d of %d chunks carry degraded zero vectors", knowledgeID, degraded, len(chunks))
	}

	// Replace-on-retry: clearing previous rows keeps chunk indices
	// contiguous across reprocessing attempts.
	if err := p.embeddingRepo.DeleteByKnowledge(ctx, knowledgeID); err != nil {
		return fmt.Errorf("failed to clear existing embedding rows: %w", err)
	}

	createdAt := time.Now().UTC()
	inserted := 0
	for i, chunk := range chunks {
		row := &domain.EmbeddingRow{
			ID:           uuid.NewString(),
			ProjectID:    projectID,
			KnowledgeID:  knowledgeID,
			ContentChunk: chunk,
			Embedding:    vectors[i],
			ChunkIndex:   i,
			CreatedAt:    createdAt,
		}
		if err := p.embeddingRepo.Insert(ctx, row); err != nil {
			// Best-effort: a lost row degrades retrieval quality but
			// does not fail the record.
			log.Printf("failed to store chunk %d for knowledge %s: %v", i, knowledgeID, err)
			continue
		}
		inserted++
	}
	log.Printf("stored %d/%d chunks for knowledge %s", inserted, len(chunks), knowledgeID)

	// chunks_count records chunks produced, not rows landed.
	if err := p.knowledgeRepo.MarkProcessed(ctx, knowledgeID, len(chunks), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark knowledge processed: %w", err)
	}

	return nil
}

// ProcessAllUnprocessed scans the work queue of unprocessed knowledge
// records and drives each through ProcessKnowledge sequentially. A failure
// on one record is logged and does not stop the scan.
func (p *Processor) ProcessAllUnprocessed(ctx context.Context) error {
	records, err := p.knowledgeRepo.ListUnprocessed(ctx)
	if err != nil {
		return fmt.Errorf("failed to list unprocessed knowledge: %w", err)
	}

	log.Printf("found %d unprocessed knowledge records", len(records))

	for _, record := range records {
		if err := p.ProcessKnowledge(ctx, record.ProjectID, record.ID, record.FilePath, record.FileName); err != nil {
			log.Printf("failed to process %s: %v", record.FileName, err)
		}
	}

	return nil
}
