package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/document"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/ledger"
)

// AccountService defines chart-of-accounts read operations
type AccountService interface {
	// ListAccounts returns the full chart ordered by account code
	ListAccounts(ctx context.Context) ([]*account.Account, error)

	// GetAccountLedger computes the general-ledger view of one account over
	// a period. Returns ErrAccountNotFound if the account doesn't exist
	GetAccountLedger(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*ledger.AccountLedger, error)
}

// ReportService defines the financial statement and audit computations.
// Every report is computed from a fresh journal snapshot; nothing is cached
// or persisted on the read path.
type ReportService interface {
	TrialBalance(ctx context.Context, from, to time.Time) (*ledger.TrialBalance, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*ledger.ProfitAndLoss, error)
	BalanceSheet(ctx context.Context, from, to time.Time) (*ledger.BalanceSheet, error)

	// Aging buckets open documents of the given kind by days overdue
	Aging(ctx context.Context, kind document.Kind, referenceDate time.Time) (*ledger.AgingReport, error)

	// Integrity runs the out-of-band journal audit over the full journal
	Integrity(ctx context.Context) (*ledger.IntegrityReport, error)

	// AuditTrail returns paginated posting audit records within a window
	AuditTrail(ctx context.Context, from, to time.Time, page, perPage int) ([]*audit.Record, error)
}

// BatchStatus is the resolved state of a submitted journal batch.
type BatchStatus struct {
	BatchID      uuid.UUID
	Status       shared.PostingStatus
	RejectReason string
	Lines        []journal.Line
	Record       *audit.Record
}

// PostingService defines journal batch submission and status lookup
type PostingService interface {
	// SubmitBatch validates the request shape and hands the batch to the
	// posting pipeline. Posting itself is asynchronous
	SubmitBatch(ctx context.Context, request *shared.PostingRequest) error

	// GetBatchStatus resolves a batch against the journal and the audit
	// trail. Returns nil when the batch is unknown or still in flight
	GetBatchStatus(ctx context.Context, batchID uuid.UUID) (*BatchStatus, error)
}
