package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/structa-ai/structa/internal/domain"
)

// KnowledgeRepository handles persistence of knowledge records.
type KnowledgeRepository struct {
	db dbtx
}

func NewKnowledgeRepository(pool *pgxpool.Pool) *KnowledgeRepository {
	return &KnowledgeRepository{db: pool}
}

func NewKnowledgeRepositoryWithTx(tx pgx.Tx) *KnowledgeRepository {
	return &KnowledgeRepository{db: tx}
}

func (r *KnowledgeRepository) Create(ctx context.Context, k *domain.KnowledgeRecord) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_knowledge (id, project_id, file_path, file_name, processed, processed_at, chunks_count, processing_error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		k.ID, k.ProjectID, k.FilePath, k.FileName, k.Processed, k.ProcessedAt, k.ChunksCount, nullableString(k.ProcessingError), k.CreatedAt,
	)
	return err
}

func (r *KnowledgeRepository) GetByID(ctx context.Context, id string) (*domain.KnowledgeRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, project_id, file_path, file_name, processed, processed_at, chunks_count, processing_error, created_at
		 FROM project_knowledge WHERE id = $1`,
		id,
	)
	k, err := scanKnowledgeRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKnowledgeNotFound
		}
		return nil, err
	}
	return k, nil
}

// ListUnprocessed returns the work queue: every record with processed = false,
// oldest first.
func (r *KnowledgeRepository) ListUnprocessed(ctx context.Context) ([]*domain.KnowledgeRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, file_path, file_name, processed, processed_at, chunks_count, processing_error, created_at
		 FROM project_knowledge WHERE processed = false ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.KnowledgeRecord
	for rows.Next() {
		k, err := scanKnowledgeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, k)
	}
	return records, rows.Err()
}

// MarkProcessed records a successful processing attempt and clears any
// previous error.
func (r *KnowledgeRepository) MarkProcessed(ctx context.Context, id string, chunksCount int, processedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE project_knowledge
		 SET processed = true, processed_at = $1, chunks_count = $2, processing_error = NULL
		 WHERE id = $3`,
		processedAt, chunksCount, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrKnowledgeNotFound
	}
	return nil
}

// MarkFailed records a failed processing attempt. The record stays
// unprocessed and eligible for another pass.
func (r *KnowledgeRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE project_knowledge SET processed = false, processing_error = $1 WHERE id = $2`,
		reason, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrKnowledgeNotFound
	}
	return nil
}

func scanKnowledgeRecord(row pgx.Row) (*domain.KnowledgeRecord, error) {
	var k domain.KnowledgeRecord
	var processedAt pgtype.Timestamptz
	var chunksCount pgtype.Int4
	var processingError pgtype.Text
	if err := row.Scan(&k.ID, &k.ProjectID, &k.FilePath, &k.FileName, &k.Processed, &processedAt, &chunksCount, &processingError, &k.CreatedAt); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		t := processedAt.Time
		k.ProcessedAt = &t
	}
	if chunksCount.Valid {
		n := int(chunksCount.Int32)
		k.ChunksCount = &n
	}
	if processingError.Valid {
		k.ProcessingError = processingError.String
	}
	return &k, nil
}
