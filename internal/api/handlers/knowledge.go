package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/structa-ai/structa/internal/api"
	"github.com/structa-ai/structa/internal/domain"
)

// KnowledgeStore exposes the knowledge records the API needs to read.
type KnowledgeStore interface {
	GetByID(ctx context.Context, id string) (*domain.KnowledgeRecord, error)
	ListUnprocessed(ctx context.Context) ([]*domain.KnowledgeRecord, error)
}

// KnowledgeProcessor runs the ingestion pipeline for a single record.
type KnowledgeProcessor interface {
	ProcessKnowledge(ctx context.Context, projectID, knowledgeID, filePath, fileName string) error
}

type KnowledgeHandler struct {
	store     KnowledgeStore
	processor KnowledgeProcessor
}

func NewKnowledgeHandler(store KnowledgeStore, processor KnowledgeProcessor) *KnowledgeHandler {
	return &KnowledgeHandler{store: store, processor: processor}
}

type KnowledgeResponse struct {
	ID              string `json:"id"`
	ProjectID       string `json:"project_id"`
	FilePath        string `json:"file_path"`
	FileName        string `json:"file_name"`
	Processed       bool   `json:"processed"`
	ProcessedAt     string `json:"processed_at,omitempty"`
	ChunksCount     *int   `json:"chunks_count,omitempty"`
	ProcessingError string `json:"processing_error,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func knowledgeToResponse(k *domain.KnowledgeRecord) *KnowledgeResponse {
	resp := &KnowledgeResponse{
		ID:              k.ID,
		ProjectID:       k.ProjectID,
		FilePath:        k.FilePath,
		FileName:        k.FileName,
		Processed:       k.Processed,
		ChunksCount:     k.ChunksCount,
		ProcessingError: k.ProcessingError,
		CreatedAt:       k.CreatedAt.UTC().Format(time.RFC3339),
	}
	if k.ProcessedAt != nil {
		resp.ProcessedAt = k.ProcessedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

type KnowledgeListResponse struct {
	Items []*KnowledgeResponse `json:"items"`
	Count int                  `json:"count"`
}

// ListPending returns knowledge records still waiting for processing.
func (h *KnowledgeHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListUnprocessed(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*KnowledgeResponse, len(records))
	for i, record := range records {
		responses[i] = knowledgeToResponse(record)
	}

	api.Success(w, http.StatusOK, KnowledgeListResponse{
		Items: responses,
		Count: len(responses),
	})
}

// Get returns a single knowledge record by id.
func (h *KnowledgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, knowledgeToResponse(record))
}

// Process runs the ingestion pipeline for one record on demand. Records that
// already have embeddings get them replaced, so re-triggering is safe.
func (h *KnowledgeHandler) Process(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	if err := h.processor.ProcessKnowledge(r.Context(), record.ProjectID, record.ID, record.FilePath, record.FileName); err != nil {
		api.HandleError(w, err)
		return
	}

	// Re-read so the response reflects the processed flag and chunk count.
	updated, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, knowledgeToResponse(updated))
}
