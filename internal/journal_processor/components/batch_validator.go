package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/journal_processor/service"
)

type BatchValidatorImpl struct {
	journalRepo journal.Repository
	epsilon     decimal.Decimal
	logger      *slog.Logger
}

func NewBatchValidator(journalRepo journal.Repository, epsilon decimal.Decimal, logger *slog.Logger) service.BatchValidator {
	return &BatchValidatorImpl{
		journalRepo: journalRepo,
		epsilon:     epsilon,
		logger:      logger,
	}
}

// Validate checks the batch's structural invariants before any write.
func (v *BatchValidatorImpl) Validate(ctx context.Context, request *shared.PostingRequest) error {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	if len(request.Lines) == 0 {
		logger.Error("Batch has no lines", "batch_id", request.BatchID.String())
		return shared.ErrEmptyBatch
	}

	for _, line := range request.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			logger.Error("Negative amount in batch",
				"batch_id", request.BatchID.String(),
				"account_id", line.AccountID.String(),
			)
			return shared.ErrNegativeAmount
		}
	}

	debit, credit := request.Totals()
	if debit.Sub(credit).Abs().GreaterThan(v.epsilon) {
		logger.Error("Batch debits do not equal credits",
			"batch_id", request.BatchID.String(),
			"total_debit", debit.StringFixed(2),
			"total_credit", credit.StringFixed(2),
		)
		return fmt.Errorf("batch %s is unbalanced (debit %s, credit %s): %w",
			request.BatchID.String(), debit.StringFixed(2), credit.StringFixed(2), shared.ErrUnbalanced)
	}

	return nil
}

// CheckIdempotency checks if the batch was already posted to the journal
func (v *BatchValidatorImpl) CheckIdempotency(ctx context.Context, request *shared.PostingRequest) (bool, error) {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	exists, err := v.journalRepo.BatchExists(ctx, request.BatchID)
	if err != nil {
		logger.Error("Failed to check journal for idempotency", "batch_id", request.BatchID.String(), "error", err)
		return false, fmt.Errorf("idempotency check failed for batch %s: %w", request.BatchID.String(), err)
	}

	if exists {
		logger.Info("Batch already posted (idempotency)", "batch_id", request.BatchID.String())
		return true, nil // Skip processing
	}

	return false, nil // Continue processing
}
