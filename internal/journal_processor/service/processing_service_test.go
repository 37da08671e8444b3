package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

// Mock implementations of the dependencies

type MockBatchValidator struct {
	mock.Mock
}

func (m *MockBatchValidator) Validate(ctx context.Context, request *shared.PostingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockBatchValidator) CheckIdempotency(ctx context.Context, request *shared.PostingRequest) (bool, error) {
	args := m.Called(ctx, request)
	return args.Bool(0), args.Error(1)
}

type MockJournalWriter struct {
	mock.Mock
}

func (m *MockJournalWriter) WriteBatch(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) ([]journal.Line, error) {
	args := m.Called(ctx, tx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.Line), args.Error(1)
}

type MockOutboxManager struct {
	mock.Mock
}

func (m *MockOutboxManager) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

type MockFailureRecorder struct {
	mock.Mock
}

func (m *MockFailureRecorder) RecordRejection(ctx context.Context, request *shared.PostingRequest, reason shared.RejectReason) error {
	args := m.Called(ctx, request, reason)
	return args.Error(0)
}

// MockTx implements the pgx.Tx interface for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return &pgconn.StatementDescription{}, nil
}

func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *MockTx) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (m *MockTx) Conn() *pgx.Conn {
	return nil
}

func testPostingRequest() *shared.PostingRequest {
	amount := decimal.RequireFromString("850.00")
	return &shared.PostingRequest{
		BatchID: uuid.New(),
		Lines: []shared.PostingLine{
			{AccountID: uuid.New(), Debit: amount, EntryDate: time.Now()},
			{AccountID: uuid.New(), Credit: amount, EntryDate: time.Now()},
		},
		CorrelationID: "corr1",
		Timestamp:     time.Now(),
	}
}

func TestProcessingService_ProcessBatch(t *testing.T) {
	logger := slog.Default()
	request := testPostingRequest()

	postedLines := []journal.Line{
		{ID: uuid.New(), BatchID: request.BatchID},
		{ID: uuid.New(), BatchID: request.BatchID},
	}

	tests := []struct {
		name          string
		setupMocks    func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx)
		beginTxErr    error
		expectedError string
	}{
		{
			name: "successful batch posting",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
				w.On("WriteBatch", mock.Anything, tx, request).Return(postedLines, nil).Once()
				o.On("CreateOutboxEntry", mock.Anything, tx, request).Return(nil).Once()
				tx.On("Commit", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "unbalanced batch is rejected and acknowledged",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(shared.ErrUnbalanced).Once()
				f.On("RecordRejection", mock.Anything, request, shared.RejectReasonUnbalancedBatch).Return(nil).Once()
			},
		},
		{
			name: "empty batch is rejected and acknowledged",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(shared.ErrEmptyBatch).Once()
				f.On("RecordRejection", mock.Anything, request, shared.RejectReasonEmptyBatch).Return(nil).Once()
			},
		},
		{
			name: "negative amount is rejected and acknowledged",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(shared.ErrNegativeAmount).Once()
				f.On("RecordRejection", mock.Anything, request, shared.RejectReasonNegativeAmount).Return(nil).Once()
			},
		},
		{
			name: "idempotency check returns skip",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(true, nil).Once()
			},
		},
		{
			name: "idempotency check error propagates for retry",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, errors.New("db error")).Once()
			},
			expectedError: "db error",
		},
		{
			name: "begin transaction error",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
			},
			beginTxErr:    errors.New("pool exhausted"),
			expectedError: "failed to begin DB transaction",
		},
		{
			name: "unknown account is rejected and acknowledged",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
				w.On("WriteBatch", mock.Anything, tx, request).Return(nil, account.ErrAccountNotFound{AccountID: request.Lines[0].AccountID}).Once()
				f.On("RecordRejection", mock.Anything, request, shared.RejectReasonUnknownAccount).Return(nil).Once()
				tx.On("Rollback", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "duplicate batch is skipped",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
				w.On("WriteBatch", mock.Anything, tx, request).Return(nil, journal.ErrDuplicateBatch{BatchID: request.BatchID}).Once()
				tx.On("Rollback", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "journal write error propagates for retry",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
				w.On("WriteBatch", mock.Anything, tx, request).Return(nil, errors.New("insert failed")).Once()
				tx.On("Rollback", mock.Anything).Return(nil).Once()
			},
			expectedError: "insert failed",
		},
		{
			name: "create outbox entry error",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
				w.On("WriteBatch", mock.Anything, tx, request).Return(postedLines, nil).Once()
				o.On("CreateOutboxEntry", mock.Anything, tx, request).Return(errors.New("outbox insert failed")).Once()
				tx.On("Rollback", mock.Anything).Return(nil).Once()
			},
			expectedError: "outbox insert failed",
		},
		{
			name: "commit transaction error",
			setupMocks: func(v *MockBatchValidator, w *MockJournalWriter, o *MockOutboxManager, f *MockFailureRecorder, tx *MockTx) {
				v.On("Validate", mock.Anything, request).Return(nil).Once()
				v.On("CheckIdempotency", mock.Anything, request).Return(false, nil).Once()
				w.On("WriteBatch", mock.Anything, tx, request).Return(postedLines, nil).Once()
				o.On("CreateOutboxEntry", mock.Anything, tx, request).Return(nil).Once()
				tx.On("Commit", mock.Anything).Return(errors.New("commit failed")).Once()
				tx.On("Rollback", mock.Anything).Return(nil).Once()
			},
			expectedError: "failed to commit DB transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockValidator := &MockBatchValidator{}
			mockJournalWriter := &MockJournalWriter{}
			mockOutboxManager := &MockOutboxManager{}
			mockFailureRecorder := &MockFailureRecorder{}
			mockTx := &MockTx{}

			svc := &ProcessingServiceImpl{
				beginTx: func(ctx context.Context) (pgx.Tx, error) {
					if tt.beginTxErr != nil {
						return nil, tt.beginTxErr
					}
					return mockTx, nil
				},
				validator:       mockValidator,
				journalWriter:   mockJournalWriter,
				outboxManager:   mockOutboxManager,
				failureRecorder: mockFailureRecorder,
				logger:          logger,
			}

			tt.setupMocks(mockValidator, mockJournalWriter, mockOutboxManager, mockFailureRecorder, mockTx)

			err := svc.ProcessBatch(context.Background(), request)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockValidator.AssertExpectations(t)
			mockJournalWriter.AssertExpectations(t)
			mockOutboxManager.AssertExpectations(t)
			mockFailureRecorder.AssertExpectations(t)
			mockTx.AssertExpectations(t)
		})
	}
}
