package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/outbox"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

// AuditPublisher publishes outbox messages to the audit trail
type AuditPublisher interface {
	PublishToAuditTrail(ctx context.Context, message *outbox.Message) error
}

// AuditPublisherImpl implements AuditPublisher
type AuditPublisherImpl struct {
	outboxRepo outbox.Repository
	auditRepo  audit.Repository
	logger     *slog.Logger
}

// NewAuditPublisher creates a new publisher
func NewAuditPublisher(
	outboxRepo outbox.Repository,
	auditRepo audit.Repository,
	logger *slog.Logger,
) AuditPublisher {
	return &AuditPublisherImpl{
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

// PublishToAuditTrail writes the staged audit record to the trail and marks
// the outbox message as processed.
func (p *AuditPublisherImpl) PublishToAuditTrail(ctx context.Context, message *outbox.Message) error {
	record, err := message.GetAuditRecord()
	if err != nil {
		p.logger.Error("Failed to unmarshal audit record from outbox payload",
			"outbox_id", message.ID, "batch_id", message.BatchID.String(), "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	// Add correlation ID to logger
	logger := p.logger
	if record.CorrelationID != "" {
		logger = p.logger.With("correlation_id", record.CorrelationID)
	}

	logger.Info("Attempting to publish outbox message to audit trail", "outbox_id", message.ID, "batch_id", message.BatchID.String())

	now := time.Now().UTC()
	record.RecordedAt = &now

	if err := p.auditRepo.Create(ctx, record); err != nil {
		if errors.Is(err, audit.ErrDuplicateRecord{}) {
			logger.Info("Audit record already exists", "batch_id", message.BatchID.String())
		} else {
			logger.Error("Failed to create audit record in MongoDB", "batch_id", message.BatchID.String(), "error", err)
			return fmt.Errorf("failed to create audit record for batch %s: %w", message.BatchID.String(), err)
		}
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "batch_id", message.BatchID.String(), "error", err,
		)
		return fmt.Errorf("audit write for batch %s OK, but failed to mark outbox %d as PROCESSED: %w", message.BatchID.String(), message.ID, err)
	}

	logger.Info("Outbox message successfully processed and marked as PROCESSED", "outbox_id", message.ID, "batch_id", message.BatchID.String())
	return nil
}
