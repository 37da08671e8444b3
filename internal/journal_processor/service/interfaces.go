package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

// ProcessingService defines the interface for processing journal batch
// posting requests.
type ProcessingService interface {
	ProcessBatch(ctx context.Context, request *shared.PostingRequest) error
}

// BatchValidator validates posting requests before any journal write
type BatchValidator interface {
	// Validate checks the batch's structural invariants: non-empty,
	// non-negative amounts, and debits equal to credits within epsilon
	Validate(ctx context.Context, request *shared.PostingRequest) error

	// CheckIdempotency reports whether the batch was already posted
	CheckIdempotency(ctx context.Context, request *shared.PostingRequest) (bool, error)
}

// JournalWriter appends a validated batch to the journal inside the given
// database transaction
type JournalWriter interface {
	WriteBatch(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) ([]journal.Line, error)
}

// OutboxManager stages the posted batch's audit record for reliable
// publishing after commit
type OutboxManager interface {
	CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) error
}

// FailureRecorder writes rejected batches straight to the audit trail.
// Rejections never touch the journal, so there is no transaction to
// coordinate with and no outbox hop.
type FailureRecorder interface {
	RecordRejection(ctx context.Context, request *shared.PostingRequest, reason shared.RejectReason) error
}
