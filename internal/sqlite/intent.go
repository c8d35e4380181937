package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

// IntentRepository persists upgrade intents
type IntentRepository struct {
	db *DB
}

// NewIntentRepository creates a new IntentRepository
func NewIntentRepository(db *DB) *IntentRepository {
	return &IntentRepository{db: db}
}

// Put inserts an upgrade intent
func (r *IntentRepository) Put(ctx context.Context, intent *upgrade.Intent) error {
	if intent == nil || intent.ID == "" || intent.ThreadID == "" {
		return repository.ErrInvalidInput
	}

	var modules sql.NullString
	if intent.Modules != nil {
		encoded, err := json.Marshal(intent.Modules)
		if err != nil {
			return fmt.Errorf("failed to encode intent modules: %w", err)
		}
		modules = sql.NullString{String: string(encoded), Valid: true}
	}

	query := `
		INSERT INTO upgrade_intents (id, thread_id, tier, modules, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, intent.ID, intent.ThreadID, string(intent.Tier), modules, intent.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save upgrade intent: %w", err)
	}

	return nil
}

// Get retrieves the newest intent for a thread and tier
func (r *IntentRepository) Get(ctx context.Context, threadID string, tier report.Tier) (*upgrade.Intent, error) {
	query := `
		SELECT id, thread_id, tier, modules, created_at
		FROM upgrade_intents
		WHERE thread_id = ? AND tier = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, threadID, string(tier)))
}

// Latest retrieves the newest intent for a thread across all tiers
func (r *IntentRepository) Latest(ctx context.Context, threadID string) (*upgrade.Intent, error) {
	query := `
		SELECT id, thread_id, tier, modules, created_at
		FROM upgrade_intents
		WHERE thread_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, threadID))
}

func (r *IntentRepository) scanOne(row *sql.Row) (*upgrade.Intent, error) {
	var intent upgrade.Intent
	var tier string
	var modules sql.NullString
	var createdAt time.Time

	err := row.Scan(&intent.ID, &intent.ThreadID, &tier, &modules, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upgrade intent: %w", err)
	}

	intent.Tier = report.Tier(tier)
	intent.CreatedAt = createdAt
	if modules.Valid {
		if err := json.Unmarshal([]byte(modules.String), &intent.Modules); err != nil {
			return nil, fmt.Errorf("failed to decode intent modules: %w", err)
		}
	}

	return &intent, nil
}
