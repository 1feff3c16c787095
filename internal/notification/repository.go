// Package notification delivers admin alerts for submitted leads.
// Delivery never sits on the request path: the subscriber runs in its
// own goroutine and failures only ever reach the log and the outbox.
package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Outbox statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// ErrOutboxNotFound is returned for unknown outbox ids.
var ErrOutboxNotFound = errors.New("outbox entry not found")

// OutboxEntry is one queued notification.
type OutboxEntry struct {
	ID        uuid.UUID
	Kind      string
	Payload   []byte
	Attempts  int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository persists the notification outbox.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a pending notification and returns its id.
func (r *Repository) Insert(ctx context.Context, kind string, payload []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pago_notification_outbox (kind, payload, status)
		VALUES ($1, $2, $3)
		RETURNING id`, kind, payload, StatusPending).Scan(&id)
	return id, err
}

// Get fetches one outbox entry.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*OutboxEntry, error) {
	var entry OutboxEntry
	err := r.pool.QueryRow(ctx, `
		SELECT id, kind, payload, attempts, status, created_at, updated_at
		FROM pago_notification_outbox WHERE id = $1`, id).
		Scan(&entry.ID, &entry.Kind, &entry.Payload, &entry.Attempts,
			&entry.Status, &entry.CreatedAt, &entry.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOutboxNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarkSent finalizes a delivered entry.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pago_notification_outbox
		SET status = $2, attempts = attempts + 1, updated_at = NOW()
		WHERE id = $1`, id, StatusSent)
	return err
}

// MarkFailed bumps the attempt counter; final decides whether the
// entry is retried again or parked as failed.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, final bool) error {
	status := StatusPending
	if final {
		status = StatusFailed
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE pago_notification_outbox
		SET status = $2, attempts = attempts + 1, updated_at = NOW()
		WHERE id = $1`, id, status)
	return err
}
