package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/thread"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

// ThreadRepository persists the single active thread state for the
// interview engine
type ThreadRepository struct {
	db *DB
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// Save writes the state into the slot, replacing whatever thread held it
func (r *ThreadRepository) Save(ctx context.Context, state *thread.State) error {
	if state == nil || state.ThreadID == "" {
		return repository.ErrInvalidInput
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode thread state: %w", err)
	}

	query := `
		INSERT INTO thread_slot (slot, thread_id, state, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			thread_id = excluded.thread_id,
			state = excluded.state,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, state.ThreadID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save thread state: %w", err)
	}

	return nil
}

// Load returns the slot's state when it holds expectedThreadID. An empty
// slot or a slot holding a different thread yields repository.ErrNotFound;
// the occupant is never evicted on a mismatch.
func (r *ThreadRepository) Load(ctx context.Context, expectedThreadID string) (*thread.State, error) {
	state, err := r.Current(ctx)
	if err != nil {
		return nil, err
	}
	if state.ThreadID != expectedThreadID {
		return nil, repository.ErrNotFound
	}
	return state, nil
}

// Current returns whatever state occupies the slot, if any
func (r *ThreadRepository) Current(ctx context.Context) (*thread.State, error) {
	query := `SELECT state FROM thread_slot WHERE slot = 1`

	var payload string
	err := r.db.QueryRowContext(ctx, query).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load thread state: %w", err)
	}

	var state thread.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("failed to decode thread state: %w", err)
	}

	return &state, nil
}

// Clear empties the slot. Clearing an already-empty slot is not an error
func (r *ThreadRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM thread_slot WHERE slot = 1`); err != nil {
		return fmt.Errorf("failed to clear thread slot: %w", err)
	}
	return nil
}
