package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/platform/persistence"
)

type ProcessingServiceImpl struct {
	beginTx         func(ctx context.Context) (pgx.Tx, error)
	validator       BatchValidator
	journalWriter   JournalWriter
	outboxManager   OutboxManager
	failureRecorder FailureRecorder
	logger          *slog.Logger
}

func NewProcessingService(
	pgDB *persistence.PostgresDB,
	validator BatchValidator,
	journalWriter JournalWriter,
	outboxManager OutboxManager,
	failureRecorder FailureRecorder,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		beginTx: func(ctx context.Context) (pgx.Tx, error) {
			return pgDB.Pool().Begin(ctx)
		},
		validator:       validator,
		journalWriter:   journalWriter,
		outboxManager:   outboxManager,
		failureRecorder: failureRecorder,
		logger:          logger,
	}
}

// ProcessBatch handles the core logic for posting one journal batch.
// Rejections are terminal: the verdict is written to the audit trail and
// the Kafka message is acknowledged. Only infrastructure errors propagate,
// which makes the consumer retry.
func (s *ProcessingServiceImpl) ProcessBatch(ctx context.Context, request *shared.PostingRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing journal batch", "batch_id", request.BatchID.String(), "line_count", len(request.Lines))

	// 1. Validate the batch shape and balance
	if err := s.validator.Validate(ctx, request); err != nil {
		logger.Error("Batch validation failed", "batch_id", request.BatchID.String(), "error", err)

		reason := shared.RejectReasonUnknownError
		switch {
		case errors.Is(err, shared.ErrEmptyBatch):
			reason = shared.RejectReasonEmptyBatch
		case errors.Is(err, shared.ErrNegativeAmount):
			reason = shared.RejectReasonNegativeAmount
		case errors.Is(err, shared.ErrUnbalanced):
			reason = shared.RejectReasonUnbalancedBatch
		}

		if recordErr := s.failureRecorder.RecordRejection(ctx, request, reason); recordErr != nil {
			logger.Error("Failed to record batch rejection", "batch_id", request.BatchID.String(), "error", recordErr)
		}

		return nil // Acknowledge the message, the verdict is recorded
	}

	// 2. Check idempotency
	skip, err := s.validator.CheckIdempotency(ctx, request)
	if err != nil {
		return err // Let Kafka retry
	}
	if skip {
		return nil // Already posted
	}

	// 3. Begin database transaction
	var tx pgx.Tx
	tx, err = s.beginTx(ctx)
	if err != nil {
		logger.Error("Failed to begin database transaction", "batch_id", request.BatchID.String(), "error", err)
		return fmt.Errorf("failed to begin DB transaction for batch %s: %w", request.BatchID.String(), err)
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic recovered, rolling back transaction", "panic", p, "batch_id", request.BatchID.String())
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			logger.Error("Error occurred, rolling back transaction", "error", err, "batch_id", request.BatchID.String())
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("Failed to rollback transaction after error", "rollback_error", rbErr, "original_error", err, "batch_id", request.BatchID.String())
			}
		}
	}()

	// 4. Append the batch to the journal
	_, err = s.journalWriter.WriteBatch(ctx, tx, request)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			if recordErr := s.failureRecorder.RecordRejection(ctx, request, shared.RejectReasonUnknownAccount); recordErr != nil {
				logger.Error("Failed to record unknown account rejection", "batch_id", request.BatchID.String(), "error", recordErr)
			}
			err = nil // Rejection handled, roll back the empty transaction quietly
			_ = tx.Rollback(ctx)
			return nil
		}
		if errors.Is(err, journal.ErrDuplicateBatch{BatchID: request.BatchID}) {
			logger.Info("Batch already posted, skipping", "batch_id", request.BatchID.String())
			err = nil
			_ = tx.Rollback(ctx)
			return nil
		}
		return err // Let the defer handle rollback, then Kafka retries
	}

	// 5. Stage the audit record in the outbox
	if err = s.outboxManager.CreateOutboxEntry(ctx, tx, request); err != nil {
		return err
	}

	// 6. Commit transaction
	if err = tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit database transaction",
			"batch_id", request.BatchID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to commit DB transaction for batch %s: %w", request.BatchID.String(), err)
	}

	logger.Info("Journal batch posted", "batch_id", request.BatchID.String(), "line_count", len(request.Lines))
	return nil
}
