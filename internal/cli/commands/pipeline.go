package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/structa-ai/structa/internal/config"
	"github.com/structa-ai/structa/internal/database"
	"github.com/structa-ai/structa/internal/openai"
	"github.com/structa-ai/structa/internal/repository"
	"github.com/structa-ai/structa/internal/service"
	"github.com/structa-ai/structa/internal/storage"
)

// pipeline bundles everything a processing command needs.
type pipeline struct {
	pool          *pgxpool.Pool
	knowledgeRepo *repository.KnowledgeRepository
	processor     *service.Processor
}

func (p *pipeline) Close() {
	p.pool.Close()
}

// buildPipeline wires storage, embeddings, repositories and the orchestrator
// from configuration. S3 and OpenAI credentials are both required: the
// pipeline cannot run without fetching documents or computing vectors.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	if !cfg.HasS3() {
		return nil, fmt.Errorf("S3 storage not configured: STRUCTA_S3_ENDPOINT, STRUCTA_S3_ACCESS_KEY_ID and STRUCTA_S3_SECRET_ACCESS_KEY are required")
	}
	if !cfg.HasOpenAI() {
		return nil, fmt.Errorf("embedding provider not configured: STRUCTA_OPENAI_API_KEY is required")
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Println("connected to database")

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	embeddingClient := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
	})

	knowledgeRepo := repository.NewKnowledgeRepository(pool)
	embeddingRepo := repository.NewEmbeddingRepository(pool)
	fetcher := service.NewContentFetcher(s3Client)

	processor := service.NewProcessorWithChunkConfig(
		fetcher,
		embeddingClient,
		knowledgeRepo,
		embeddingRepo,
		service.ChunkConfig{MaxChars: cfg.ChunkMaxChars},
	)

	return &pipeline{
		pool:          pool,
		knowledgeRepo: knowledgeRepo,
		processor:     processor,
	}, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
