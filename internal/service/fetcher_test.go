package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectDownloader mocks the storage client
type MockObjectDownloader struct {
	mock.Mock
}

func (m *MockObjectDownloader) DownloadObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestContentFetcher_FetchText_Success(t *testing.T) {
	mockStorage := new(MockObjectDownloader)
	ctx := context.Background()

	content := []byte("%PDF-1.4 fake bytes")
	mockStorage.On("DownloadObject", ctx, "proj-1/spec/report.pdf").Return(content, nil)

	var extractedPath string
	fetcher := &ContentFetcher{
		storage: mockStorage,
		extract: func(path string) (string, error) {
			extractedPath = path
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, data, "scratch file holds the downloaded bytes")
			return "Alpha. Beta.\nGamma.\n", nil
		},
	}

	text := fetcher.FetchText(ctx, "proj-1/spec/report.pdf")

	assert.Equal(t, "Alpha. Beta.\nGamma.\n", text)
	mockStorage.AssertExpectations(t)

	// The scratch file must not outlive the extraction.
	_, err := os.Stat(extractedPath)
	assert.True(t, os.IsNotExist(err), "scratch file should be removed")
}

func TestContentFetcher_FetchText_DownloadFailure(t *testing.T) {
	mockStorage := new(MockObjectDownloader)
	ctx := context.Background()

	mockStorage.On("DownloadObject", ctx, "missing.pdf").Return(nil, errors.New("object \"missing.pdf\" not found"))

	fetcher := NewContentFetcher(mockStorage)

	text := fetcher.FetchText(ctx, "missing.pdf")

	assert.Empty(t, text, "download failure degrades to empty text")
	mockStorage.AssertExpectations(t)
}

func TestContentFetcher_FetchText_ExtractionFailure(t *testing.T) {
	mockStorage := new(MockObjectDownloader)
	ctx := context.Background()

	mockStorage.On("DownloadObject", ctx, "corrupt.pdf").Return([]byte("garbage"), nil)

	fetcher := &ContentFetcher{
		storage: mockStorage,
		extract: func(path string) (string, error) {
			return "", errors.New("failed to open PDF")
		},
	}

	text := fetcher.FetchText(ctx, "corrupt.pdf")

	assert.Empty(t, text, "extraction failure degrades to empty text")
	mockStorage.AssertExpectations(t)
}

func TestScratchPattern(t *testing.T) {
	assert.Equal(t, "knowledge-*-report.pdf", scratchPattern("proj-1/spec/report.pdf"))
	assert.Equal(t, "knowledge-*-plain.pdf", scratchPattern("plain.pdf"))
}
