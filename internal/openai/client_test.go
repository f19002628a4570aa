package openai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOpenAIAPI is a mock for the OpenAI API
type MockOpenAIAPI struct {
	mock.Mock
}

func (m *MockOpenAIAPI) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func makeVectors(n, dims int) [][]float32 {
	vectors := make([][]float32, n)
	for i := range vectors {
		vectors[i] = make([]float32, dims)
		for j := range vectors[i] {
			vectors[i][j] = float32(i+1) * 0.001
		}
	}
	return vectors
}

func makeTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}
	return texts
}

func TestClient_EmbedTexts_SingleBatch(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536, batchSize: 100}

	ctx := context.Background()
	texts := makeTexts(3)
	expected := makeVectors(3, 1536)

	mockAPI.On("CreateEmbeddings", ctx, texts).Return(expected, nil)

	vectors, degraded := client.EmbedTexts(ctx, texts)

	assert.Len(t, vectors, 3)
	assert.Equal(t, expected, vectors)
	assert.Zero(t, degraded)
	mockAPI.AssertExpectations(t)
}

func TestClient_EmbedTexts_Empty(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536, batchSize: 100}

	vectors, degraded := client.EmbedTexts(context.Background(), nil)

	assert.Nil(t, vectors)
	assert.Zero(t, degraded)
	mockAPI.AssertNotCalled(t, "CreateEmbeddings")
}

func TestClient_EmbedTexts_BatchPartitioning(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 8, batchSize: 100}

	ctx := context.Background()
	texts := makeTexts(250)

	mockAPI.On("CreateEmbeddings", ctx, texts[0:100]).Return(makeVectors(100, 8), nil)
	mockAPI.On("CreateEmbeddings", ctx, texts[100:200]).Return(makeVectors(100, 8), nil)
	mockAPI.On("CreateEmbeddings", ctx, texts[200:250]).Return(makeVectors(50, 8), nil)

	vectors, degraded := client.EmbedTexts(ctx, texts)

	assert.Len(t, vectors, 250)
	assert.Zero(t, degraded)
	mockAPI.AssertExpectations(t)
}

func TestClient_EmbedTexts_FailedBatchDegradesToZeroVectors(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 8, batchSize: 100}

	ctx := context.Background()
	texts := makeTexts(300)
	apiErr := errors.New("API rate limit exceeded")

	mockAPI.On("CreateEmbeddings", ctx, texts[0:100]).Return(makeVectors(100, 8), nil)
	mockAPI.On("CreateEmbeddings", ctx, texts[100:200]).Return(nil, apiErr)
	mockAPI.On("CreateEmbeddings", ctx, texts[200:300]).Return(makeVectors(100, 8), nil)

	vectors, degraded := client.EmbedTexts(ctx, texts)

	assert.Len(t, vectors, 300)
	assert.Equal(t, 100, degraded)

	zero := make([]float32, 8)
	for i := 100; i < 200; i++ {
		assert.Equal(t, zero, vectors[i], "vector %d should be the zero placeholder", i)
	}
	assert.NotEqual(t, zero, vectors[0])
	assert.NotEqual(t, zero, vectors[200])
	mockAPI.AssertExpectations(t)
}

func TestClient_EmbedTexts_WrongDimensionsDegrades(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := &Client{api: mockAPI, dimensions: 1536, batchSize: 100}

	ctx := context.Background()
	texts := makeTexts(2)

	// Malformed response: vectors of the wrong dimension count as a failed batch.
	mockAPI.On("CreateEmbeddings", ctx, texts).Return(makeVectors(2, 768), nil)

	vectors, degraded := client.EmbedTexts(ctx, texts)

	assert.Len(t, vectors, 2)
	assert.Equal(t, 2, degraded)
	assert.Len(t, vectors[0], 1536)
	mockAPI.AssertExpectations(t)
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key")

	assert.NotNil(t, client)
	assert.NotNil(t, client.api)
	assert.Equal(t, DefaultEmbeddingDimensions, client.Dimensions())
	assert.Equal(t, DefaultBatchSize, client.batchSize)
}

func TestNewClientFromEnv_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	client, err := NewClientFromEnv()

	assert.Nil(t, client)
	assert.Equal(t, ErrNoAPIKey, err)
}
