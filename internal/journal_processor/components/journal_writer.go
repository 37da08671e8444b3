package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/journal_processor/service"
)

type JournalWriterImpl struct {
	accountRepo account.Repository
	journalRepo journal.Repository
	logger      *slog.Logger
}

func NewJournalWriter(accountRepo account.Repository, journalRepo journal.Repository, logger *slog.Logger) service.JournalWriter {
	return &JournalWriterImpl{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// WriteBatch verifies every referenced account exists and appends the batch
// to the journal inside the given transaction.
func (w *JournalWriterImpl) WriteBatch(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) ([]journal.Line, error) {
	logger := w.logger
	if request.CorrelationID != "" {
		logger = w.logger.With("correlation_id", request.CorrelationID)
	}

	accountIDs := uniqueAccountIDs(request.Lines)

	accounts, err := w.accountRepo.WithTx(tx).GetByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to load accounts for batch", "batch_id", request.BatchID.String(), "error", err)
		return nil, fmt.Errorf("failed to load accounts for batch %s: %w", request.BatchID.String(), err)
	}

	known := make(map[uuid.UUID]bool, len(accounts))
	for _, acc := range accounts {
		known[acc.ID] = true
	}
	for _, id := range accountIDs {
		if !known[id] {
			logger.Error("Batch references unknown account",
				"batch_id", request.BatchID.String(),
				"account_id", id.String(),
			)
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
	}

	now := time.Now()
	lines := make([]journal.Line, 0, len(request.Lines))
	for _, posting := range request.Lines {
		lines = append(lines, journal.Line{
			ID:            uuid.New(),
			AccountID:     posting.AccountID,
			Debit:         posting.Debit,
			Credit:        posting.Credit,
			EntryDate:     posting.EntryDate,
			BatchID:       request.BatchID,
			ReferenceType: posting.ReferenceType,
			ReferenceID:   posting.ReferenceID,
			Description:   posting.Description,
			EntryNumber:   posting.EntryNumber,
			CreatedAt:     now,
		})
	}

	if err := w.journalRepo.WithTx(tx).CreateBatch(ctx, lines); err != nil {
		return nil, err
	}

	logger.Info("Appended batch to journal", "batch_id", request.BatchID.String(), "line_count", len(lines))
	return lines, nil
}

func uniqueAccountIDs(lines []shared.PostingLine) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	return ids
}
