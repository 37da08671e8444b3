package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/platform/messaging/producers"
)

// PostingServiceImpl implements the PostingService interface
type PostingServiceImpl struct {
	journalRepo journal.Repository
	auditRepo   audit.Repository
	producer    producers.MessagePublisher
	logger      *slog.Logger
}

// NewPostingService creates a new posting service
func NewPostingService(logger *slog.Logger, journalRepo journal.Repository, auditRepo audit.Repository, producer producers.MessagePublisher) PostingService {
	return &PostingServiceImpl{
		journalRepo: journalRepo,
		auditRepo:   auditRepo,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitBatch validates the batch shape and publishes it to the posting
// topic. Only structural problems are rejected here; balance and account
// checks belong to the processor so that every verdict lands in the audit
// trail with a reason.
func (s *PostingServiceImpl) SubmitBatch(ctx context.Context, request *shared.PostingRequest) error {
	if len(request.Lines) == 0 {
		return shared.ErrEmptyBatch
	}
	for _, line := range request.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.ErrNegativeAmount
		}
	}

	key := request.BatchID.String()
	if err := s.producer.Publish(ctx, key, request); err != nil {
		s.logger.Error("Failed to publish posting request",
			"batch_id", request.BatchID.String(),
			"line_count", len(request.Lines),
			"error", err,
		)
		return err
	}

	s.logger.Info("Posting request published",
		"batch_id", request.BatchID.String(),
		"line_count", len(request.Lines),
	)

	return nil
}

// GetBatchStatus resolves a batch against the journal first and the audit
// trail second. Posted batches have lines; rejected batches only have an
// audit record. A batch with neither is unknown or still in flight, which
// the caller cannot tell apart, so both report as nil.
func (s *PostingServiceImpl) GetBatchStatus(ctx context.Context, batchID uuid.UUID) (*BatchStatus, error) {
	lines, err := s.journalRepo.GetByBatchID(ctx, batchID)
	if err != nil && !errors.Is(err, journal.ErrBatchNotFound{}) {
		return nil, err
	}

	record, err := s.auditRepo.GetByBatchID(ctx, batchID)
	if err != nil && !errors.Is(err, audit.ErrRecordNotFound{}) {
		return nil, err
	}

	if len(lines) > 0 {
		return &BatchStatus{
			BatchID: batchID,
			Status:  shared.PostingStatusPosted,
			Lines:   lines,
			Record:  record,
		}, nil
	}

	if record != nil {
		return &BatchStatus{
			BatchID:      batchID,
			Status:       record.Status,
			RejectReason: record.RejectReason,
			Record:       record,
		}, nil
	}

	s.logger.Info("Batch not found in journal or audit trail", "batch_id", batchID.String())
	return nil, nil
}
