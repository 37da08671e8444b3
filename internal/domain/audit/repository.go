package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository manages posted-batch audit records with pagination support
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetByBatchID(ctx context.Context, batchID uuid.UUID) (*Record, error)
	GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*Record, error)
	CountByBatchID(ctx context.Context, batchID uuid.UUID) (int64, error)
}

// ErrRecordNotFound indicates missing audit record
type ErrRecordNotFound struct {
	BatchID uuid.UUID
}

func (e ErrRecordNotFound) Error() string {
	return "audit record not found: " + e.BatchID.String()
}

// Is implements the errors.Is interface for ErrRecordNotFound
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	if t.BatchID == uuid.Nil {
		return true
	}
	return e.BatchID == t.BatchID
}

// ErrDuplicateRecord indicates batch uniqueness violation in the audit trail
type ErrDuplicateRecord struct {
	BatchID uuid.UUID
}

func (e ErrDuplicateRecord) Error() string {
	return "duplicate audit record: " + e.BatchID.String()
}

// Is implements the errors.Is interface for ErrDuplicateRecord
func (e ErrDuplicateRecord) Is(target error) bool {
	t, ok := target.(ErrDuplicateRecord)
	if !ok {
		return false
	}
	if t.BatchID == uuid.Nil {
		return true
	}
	return e.BatchID == t.BatchID
}
