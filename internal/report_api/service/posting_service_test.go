package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

func newPostingService(journalRepo *MockJournalRepository, auditRepo *MockAuditRepository, producer *MockMessagePublisher) PostingService {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewPostingService(logger, journalRepo, auditRepo, producer)
}

func postingRequest(amount string) *shared.PostingRequest {
	value := decimal.RequireFromString(amount)
	return &shared.PostingRequest{
		BatchID: uuid.New(),
		Lines: []shared.PostingLine{
			{AccountID: uuid.New(), Debit: value, EntryDate: time.Now()},
			{AccountID: uuid.New(), Credit: value, EntryDate: time.Now()},
		},
		Timestamp: time.Now(),
	}
}

func TestPostingService_SubmitBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes keyed by batch ID", func(t *testing.T) {
		producer := new(MockMessagePublisher)
		svc := newPostingService(new(MockJournalRepository), new(MockAuditRepository), producer)

		request := postingRequest("640.00")
		producer.On("Publish", ctx, request.BatchID.String(), request).Return(nil)

		err := svc.SubmitBatch(ctx, request)
		assert.NoError(t, err)
		producer.AssertExpectations(t)
	})

	t.Run("empty batch rejected before publishing", func(t *testing.T) {
		producer := new(MockMessagePublisher)
		svc := newPostingService(new(MockJournalRepository), new(MockAuditRepository), producer)

		request := &shared.PostingRequest{BatchID: uuid.New()}
		err := svc.SubmitBatch(ctx, request)
		assert.ErrorIs(t, err, shared.ErrEmptyBatch)
		producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative amount rejected before publishing", func(t *testing.T) {
		producer := new(MockMessagePublisher)
		svc := newPostingService(new(MockJournalRepository), new(MockAuditRepository), producer)

		request := postingRequest("100.00")
		request.Lines[0].Debit = decimal.RequireFromString("-100.00")

		err := svc.SubmitBatch(ctx, request)
		assert.ErrorIs(t, err, shared.ErrNegativeAmount)
		producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish error surfaces", func(t *testing.T) {
		producer := new(MockMessagePublisher)
		svc := newPostingService(new(MockJournalRepository), new(MockAuditRepository), producer)

		request := postingRequest("640.00")
		brokerErr := errors.New("broker unavailable")
		producer.On("Publish", ctx, request.BatchID.String(), request).Return(brokerErr)

		err := svc.SubmitBatch(ctx, request)
		assert.ErrorIs(t, err, brokerErr)
		producer.AssertExpectations(t)
	})
}

func TestPostingService_GetBatchStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("posted batch resolves from journal", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		auditRepo := new(MockAuditRepository)
		svc := newPostingService(journalRepo, auditRepo, new(MockMessagePublisher))

		batchID := uuid.New()
		lines := []journal.Line{
			{ID: uuid.New(), BatchID: batchID, Debit: decimal.RequireFromString("50.00")},
			{ID: uuid.New(), BatchID: batchID, Credit: decimal.RequireFromString("50.00")},
		}
		record := &audit.Record{BatchID: batchID, Status: shared.PostingStatusPosted, LineCount: 2}

		journalRepo.On("GetByBatchID", ctx, batchID).Return(lines, nil)
		auditRepo.On("GetByBatchID", ctx, batchID).Return(record, nil)

		status, err := svc.GetBatchStatus(ctx, batchID)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, shared.PostingStatusPosted, status.Status)
		assert.Len(t, status.Lines, 2)
		assert.Equal(t, record, status.Record)
	})

	t.Run("rejected batch resolves from audit trail", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		auditRepo := new(MockAuditRepository)
		svc := newPostingService(journalRepo, auditRepo, new(MockMessagePublisher))

		batchID := uuid.New()
		record := &audit.Record{
			BatchID:      batchID,
			Status:       shared.PostingStatusRejected,
			RejectReason: string(shared.RejectReasonUnbalancedBatch),
		}

		journalRepo.On("GetByBatchID", ctx, batchID).Return(nil, journal.ErrBatchNotFound{BatchID: batchID})
		auditRepo.On("GetByBatchID", ctx, batchID).Return(record, nil)

		status, err := svc.GetBatchStatus(ctx, batchID)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, shared.PostingStatusRejected, status.Status)
		assert.Equal(t, string(shared.RejectReasonUnbalancedBatch), status.RejectReason)
		assert.Empty(t, status.Lines)
	})

	t.Run("unknown batch reports nil", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		auditRepo := new(MockAuditRepository)
		svc := newPostingService(journalRepo, auditRepo, new(MockMessagePublisher))

		batchID := uuid.New()
		journalRepo.On("GetByBatchID", ctx, batchID).Return(nil, journal.ErrBatchNotFound{BatchID: batchID})
		auditRepo.On("GetByBatchID", ctx, batchID).Return(nil, audit.ErrRecordNotFound{BatchID: batchID})

		status, err := svc.GetBatchStatus(ctx, batchID)
		assert.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("journal error surfaces", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		auditRepo := new(MockAuditRepository)
		svc := newPostingService(journalRepo, auditRepo, new(MockMessagePublisher))

		batchID := uuid.New()
		dbErr := errors.New("query failed")
		journalRepo.On("GetByBatchID", ctx, batchID).Return(nil, dbErr)

		status, err := svc.GetBatchStatus(ctx, batchID)
		assert.Nil(t, status)
		assert.ErrorIs(t, err, dbErr)
		auditRepo.AssertNotCalled(t, "GetByBatchID", mock.Anything, mock.Anything)
	})
}
