package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/journal_processor/service"
)

type FailureRecorderImpl struct {
	auditRepo audit.Repository
	logger    *slog.Logger
}

func NewFailureRecorder(auditRepo audit.Repository, logger *slog.Logger) service.FailureRecorder {
	return &FailureRecorderImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// RecordRejection writes the rejected batch's verdict straight to the audit
// trail. Nothing was written to the journal, so there is no transaction and
// no outbox hop.
func (r *FailureRecorderImpl) RecordRejection(ctx context.Context, request *shared.PostingRequest, reason shared.RejectReason) error {
	logger := r.logger
	if request.CorrelationID != "" {
		logger = r.logger.With("correlation_id", request.CorrelationID)
	}

	record := audit.NewRecord(request, shared.PostingStatusRejected, string(reason))
	now := time.Now()
	record.RecordedAt = &now

	if err := r.auditRepo.Create(ctx, record); err != nil {
		if errors.Is(err, audit.ErrDuplicateRecord{}) {
			logger.Info("Rejection already recorded", "batch_id", request.BatchID.String(), "reason", reason)
			return nil
		}
		logger.Error("Failed to record rejection", "batch_id", request.BatchID.String(), "reason", reason, "error", err)
		return fmt.Errorf("failed to record rejection for batch %s: %w", request.BatchID.String(), err)
	}

	logger.Info("Recorded batch rejection", "batch_id", request.BatchID.String(), "reason", reason)
	return nil
}
