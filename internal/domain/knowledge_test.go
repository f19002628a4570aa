package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewKnowledgeRecord(t *testing.T) {
	createdAt := time.Now().UTC()
	k := NewKnowledgeRecord("know-1", "proj-1", "proj-1/spec/report.pdf", "report.pdf", createdAt)

	assert.Equal(t, "know-1", k.ID)
	assert.Equal(t, "proj-1", k.ProjectID)
	assert.Equal(t, "proj-1/spec/report.pdf", k.FilePath)
	assert.Equal(t, "report.pdf", k.FileName)
	assert.False(t, k.Processed)
	assert.Nil(t, k.ProcessedAt)
	assert.Nil(t, k.ChunksCount)
	assert.Empty(t, k.ProcessingError)
}

func TestKnowledgeRecord_MarkProcessed(t *testing.T) {
	k := NewKnowledgeRecord("know-1", "proj-1", "path.pdf", "path.pdf", time.Now().UTC())
	k.ProcessingError = "previous failure"

	at := time.Now().UTC()
	k.MarkProcessed(12, at)

	assert.True(t, k.Processed)
	if assert.NotNil(t, k.ProcessedAt) {
		assert.Equal(t, at, *k.ProcessedAt)
	}
	if assert.NotNil(t, k.ChunksCount) {
		assert.Equal(t, 12, *k.ChunksCount)
	}
	assert.Empty(t, k.ProcessingError, "success clears the previous error")
}

func TestKnowledgeRecord_MarkFailed(t *testing.T) {
	k := NewKnowledgeRecord("know-1", "proj-1", "path.pdf", "path.pdf", time.Now().UTC())

	k.MarkFailed("no text content extracted from PDF")

	assert.False(t, k.Processed)
	assert.Equal(t, "no text content extracted from PDF", k.ProcessingError)
}

func TestValidateKnowledgeRecord(t *testing.T) {
	valid := NewKnowledgeRecord("know-1", "proj-1", "path.pdf", "report.pdf", time.Now().UTC())
	assert.NoError(t, ValidateKnowledgeRecord(valid))

	tests := []struct {
		name   string
		mutate func(*KnowledgeRecord)
	}{
		{"nil record", nil},
		{"missing id", func(k *KnowledgeRecord) { k.ID = "" }},
		{"missing project id", func(k *KnowledgeRecord) { k.ProjectID = "" }},
		{"missing file path", func(k *KnowledgeRecord) { k.FilePath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mutate == nil {
				assert.Error(t, ValidateKnowledgeRecord(nil))
				return
			}
			k := NewKnowledgeRecord("know-1", "proj-1", "path.pdf", "report.pdf", time.Now().UTC())
			tt.mutate(k)
			assert.Error(t, ValidateKnowledgeRecord(k))
		})
	}
}
