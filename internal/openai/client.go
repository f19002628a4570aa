package openai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/structa-ai/structa/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultEmbeddingDimensions is the expected dimension of embeddings from text-embedding-3-small
	DefaultEmbeddingDimensions = domain.EmbeddingDimensions
	// DefaultBatchSize is the number of texts sent per embeddings request
	DefaultBatchSize = 100
)

var (
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
)

// EmbeddingAPI defines the interface for batch embedding generation
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Client wraps the OpenAI API client. A failed batch never fails the whole
// call: each text of the batch receives a zero placeholder vector instead,
// so the output stays positionally aligned with the input.
type Client struct {
	api        EmbeddingAPI
	dimensions int
	batchSize  int
}

type OpenAIAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIAdapter(apiKey string, model openai.EmbeddingModel) *OpenAIAdapter {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// CreateEmbeddings calls the OpenAI API to create embeddings for one batch
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// The API does not guarantee response order; Index restores it.
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}

	return vectors, nil
}

type Config struct {
	APIKey              string
	EmbeddingModel      string
	EmbeddingDimensions int
	BatchSize           int
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg.APIKey, openai.EmbeddingModel(cfg.EmbeddingModel)),
		dimensions: dimensions,
		batchSize:  batchSize,
	}
}

// NewClientFromEnv creates a new OpenAI client using OPENAI_API_KEY environment variable
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// Dimensions returns the configured embedding dimension.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// EmbedTexts generates embeddings for the given texts in order. The returned
// slice always has one vector per input text. Batches that fail (network
// error, service error, malformed response) degrade to zero vectors for
// every text in the batch; degraded reports how many texts were affected.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) (vectors [][]float32, degraded int) {
	if len(texts) == 0 {
		return nil, 0
	}

	vectors = make([][]float32, 0, len(texts))
	totalBatches := (len(texts) + c.batchSize - 1) / c.batchSize

	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]
		batchNum := start/c.batchSize + 1

		batchVectors, err := c.api.CreateEmbeddings(ctx, batch)
		if err == nil {
			err = c.validateDimensions(batchVectors)
		}
		if err != nil {
			log.Printf("embeddings: batch %d/%d failed, substituting zero vectors for %d texts: %v",
				batchNum, totalBatches, len(batch), err)
			for range batch {
				vectors = append(vectors, domain.ZeroVector(c.dimensions))
			}
			degraded += len(batch)
			continue
		}

		vectors = append(vectors, batchVectors...)
		log.Printf("embeddings: batch %d/%d ok (%d vectors)", batchNum, totalBatches, len(batchVectors))
	}

	return vectors, degraded
}

func (c *Client) validateDimensions(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != c.dimensions {
			return fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(v), c.dimensions)
		}
	}
	return nil
}
