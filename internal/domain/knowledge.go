package domain

import (
	"fmt"
	"time"
)

// KnowledgeRecord tracks one uploaded source document through its
// processing lifecycle. Records are created by the upload flow in an
// unprocessed state and mutated once per processing attempt.
type KnowledgeRecord struct {
	ID              string
	ProjectID       string
	FilePath        string
	FileName        string
	Processed       bool
	ProcessedAt     *time.Time
	ChunksCount     *int
	ProcessingError string
	CreatedAt       time.Time
}

// NewKnowledgeRecord creates a KnowledgeRecord in the unprocessed state.
func NewKnowledgeRecord(id, projectID, filePath, fileName string, createdAt time.Time) *KnowledgeRecord {
	return &KnowledgeRecord{
		ID:        id,
		ProjectID: projectID,
		FilePath:  filePath,
		FileName:  fileName,
		Processed: false,
		CreatedAt: createdAt,
	}
}

// MarkProcessed transitions the record to its successful terminal state.
// chunksCount is the number of chunks produced by the chunker, which may
// exceed the number of embedding rows that actually landed.
func (k *KnowledgeRecord) MarkProcessed(chunksCount int, at time.Time) {
	k.Processed = true
	k.ProcessedAt = &at
	k.ChunksCount = &chunksCount
	k.ProcessingError = ""
}

// MarkFailed transitions the record to its failed terminal state. A failed
// record stays eligible for reprocessing.
func (k *KnowledgeRecord) MarkFailed(reason string) {
	k.Processed = false
	k.ProcessingError = reason
}

// ValidateKnowledgeRecord validates a KnowledgeRecord instance.
func ValidateKnowledgeRecord(k *KnowledgeRecord) error {
	if k == nil {
		return fmt.Errorf("knowledge record cannot be nil")
	}

	if k.ID == "" {
		return fmt.Errorf("knowledge record ID is required")
	}

	if k.ProjectID == "" {
		return fmt.Errorf("knowledge record ProjectID is required")
	}

	if k.FilePath == "" {
		return fmt.Errorf("knowledge record FilePath is required")
	}

	return nil
}
