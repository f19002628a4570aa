package service

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/structa-ai/structa/internal/pdf"
)

// ObjectDownloader defines the storage interface the content fetcher needs
type ObjectDownloader interface {
	DownloadObject(ctx context.Context, key string) ([]byte, error)
}

// TextExtractor extracts plain text from a PDF file on disk.
type TextExtractor func(path string) (string, error)

// ContentFetcher downloads a knowledge document from object storage and
// extracts its text. The downloaded bytes live in a scratch file only for
// the duration of extraction.
type ContentFetcher struct {
	storage ObjectDownloader
	extract TextExtractor
}

// NewContentFetcher creates a ContentFetcher backed by the given storage.
func NewContentFetcher(storage ObjectDownloader) *ContentFetcher {
	return &ContentFetcher{
		storage: storage,
		extract: pdf.ExtractText,
	}
}

// FetchText returns the concatenated page text of the PDF stored at
// filePath. Every failure degrades to an empty string; the caller decides
// whether absent content is fatal. The failure reason is logged.
func (f *ContentFetcher) FetchText(ctx context.Context, filePath string) string {
	data, err := f.storage.DownloadObject(ctx, filePath)
	if err != nil {
		log.Printf("fetch: download failed for %q: %v", filePath, err)
		return ""
	}

	scratch, err := os.CreateTemp("", scratchPattern(filePath))
	if err != nil {
		log.Printf("fetch: failed to create scratch file for %q: %v", filePath, err)
		return ""
	}
	defer os.Remove(scratch.Name())

	if _, err := scratch.Write(data); err != nil {
		scratch.Close()
		log.Printf("fetch: failed to write scratch file for %q: %v", filePath, err)
		return ""
	}
	if err := scratch.Close(); err != nil {
		log.Printf("fetch: failed to close scratch file for %q: %v", filePath, err)
		return ""
	}

	text, err := f.extract(scratch.Name())
	if err != nil {
		log.Printf("fetch: text extraction failed for %q: %v", filePath, err)
		return ""
	}

	return text
}

// scratchPattern derives a CreateTemp pattern from the source file name so
// scratch files stay recognizable while remaining unique per invocation.
func scratchPattern(filePath string) string {
	return "knowledge-*-" + filepath.Base(filePath)
}
