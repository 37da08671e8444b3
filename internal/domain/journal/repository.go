package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages journal line persistence. The store is append-only:
// there are no update or delete operations on posted lines. All reads
// return lines ordered by (entry_date, seq) ascending so running-balance
// computations are reproducible across report runs.
type Repository interface {
	// CreateBatch inserts all lines of one batch
	CreateBatch(ctx context.Context, lines []Line) error

	// GetByAccountID returns every line for the account up to and including
	// the given date
	GetByAccountID(ctx context.Context, accountID uuid.UUID, until time.Time) ([]Line, error)

	// GetUntil returns every line dated up to and including the given date
	GetUntil(ctx context.Context, until time.Time) ([]Line, error)

	// GetAll returns the complete journal, used by the integrity audit
	GetAll(ctx context.Context) ([]Line, error)

	GetByBatchID(ctx context.Context, batchID uuid.UUID) ([]Line, error)
	BatchExists(ctx context.Context, batchID uuid.UUID) (bool, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrBatchNotFound indicates no lines exist for a batch
type ErrBatchNotFound struct {
	BatchID uuid.UUID
}

func (e ErrBatchNotFound) Error() string {
	return "journal batch not found: " + e.BatchID.String()
}

// Is implements the errors.Is interface for ErrBatchNotFound
func (e ErrBatchNotFound) Is(target error) bool {
	t, ok := target.(ErrBatchNotFound)
	if !ok {
		return false
	}
	if t.BatchID == uuid.Nil {
		return true
	}
	return e.BatchID == t.BatchID
}

// ErrDuplicateBatch indicates batch uniqueness violation
type ErrDuplicateBatch struct {
	BatchID uuid.UUID
}

func (e ErrDuplicateBatch) Error() string {
	return "duplicate journal batch: " + e.BatchID.String()
}
