package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/outbox"
	"github.com/freightbooks-ledger/internal/domain/shared"
	"github.com/freightbooks-ledger/internal/journal_processor/service"
)

type OutboxManagerImpl struct {
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

func NewOutboxManager(outboxRepo outbox.Repository, logger *slog.Logger) service.OutboxManager {
	return &OutboxManagerImpl{
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// CreateOutboxEntry stages the posted batch's audit record inside the
// posting transaction so the trail cannot miss a committed batch.
func (m *OutboxManagerImpl) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) error {
	logger := m.logger
	if request.CorrelationID != "" {
		logger = m.logger.With("correlation_id", request.CorrelationID)
	}

	record := audit.NewRecord(request, shared.PostingStatusPosted, "")

	message, err := outbox.NewMessage(record)
	if err != nil {
		logger.Error("Failed to build outbox message", "batch_id", request.BatchID.String(), "error", err)
		return fmt.Errorf("failed to build outbox message for batch %s: %w", request.BatchID.String(), err)
	}

	if err := m.outboxRepo.WithTx(tx).Create(ctx, message); err != nil {
		logger.Error("Failed to create outbox entry", "batch_id", request.BatchID.String(), "error", err)
		return fmt.Errorf("failed to create outbox entry for batch %s: %w", request.BatchID.String(), err)
	}

	return nil
}
