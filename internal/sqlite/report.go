package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

// ReportRepository stores completed reports keyed by (thread, tier)
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Put inserts or replaces the record for its (thread, tier) key
func (r *ReportRepository) Put(ctx context.Context, rec *report.Record) error {
	if rec == nil || rec.ThreadID == "" {
		return repository.ErrInvalidInput
	}
	if err := rec.Body.Validate(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}

	body, err := report.EncodeBody(rec.Body)
	if err != nil {
		return fmt.Errorf("failed to encode report body: %w", err)
	}

	query := `
		INSERT INTO report_records (thread_id, tier, body, generated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(thread_id, tier) DO UPDATE SET
			body = excluded.body,
			generated_at = excluded.generated_at
	`

	if _, err := r.db.ExecContext(ctx, query, rec.ThreadID, string(rec.Tier), string(body), rec.GeneratedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save report record: %w", err)
	}

	return nil
}

// Get retrieves the record for a thread and tier
func (r *ReportRepository) Get(ctx context.Context, threadID string, tier report.Tier) (*report.Record, error) {
	query := `
		SELECT body, generated_at
		FROM report_records
		WHERE thread_id = ? AND tier = ?
	`

	var body string
	var generatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, threadID, string(tier)).Scan(&body, &generatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report record: %w", err)
	}

	decoded, err := report.DecodeBody([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode report body: %w", err)
	}

	return &report.Record{
		ThreadID:    threadID,
		Tier:        tier,
		Body:        decoded,
		GeneratedAt: generatedAt,
	}, nil
}
