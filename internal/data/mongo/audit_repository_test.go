package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/shared"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, record *audit.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) GetByBatchID(ctx context.Context, batchID uuid.UUID) (*audit.Record, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Record), args.Error(1)
}

func (m *MockAuditRepository) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*audit.Record, error) {
	args := m.Called(ctx, startTime, endTime, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Record), args.Error(1)
}

func (m *MockAuditRepository) CountByBatchID(ctx context.Context, batchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewAuditRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewAuditRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &AuditRepository{}, repo)
}

func TestAuditRepository_Create(t *testing.T) {
	batchID := uuid.New()
	record := &audit.Record{
		BatchID:     batchID,
		Status:      shared.PostingStatusPosted,
		LineCount:   2,
		TotalDebit:  "100.00",
		TotalCredit: "100.00",
		SubmittedAt: time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func(m *MockAuditRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			setupMocks: func(m *MockAuditRepository) {
				m.On("Create", mock.Anything, record).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate record",
			setupMocks: func(m *MockAuditRepository) {
				m.On("Create", mock.Anything, record).Return(audit.ErrDuplicateRecord{BatchID: batchID})
			},
			expectedError: audit.ErrDuplicateRecord{BatchID: batchID},
		},
		{
			name: "database error",
			setupMocks: func(m *MockAuditRepository) {
				m.On("Create", mock.Anything, record).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockAuditRepository{}
			tt.setupMocks(mockRepo)

			ctx := context.Background()
			err := mockRepo.Create(ctx, record)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuditRepository_GetByBatchID(t *testing.T) {
	batchID := uuid.New()
	record := &audit.Record{
		BatchID:      batchID,
		Status:       shared.PostingStatusRejected,
		RejectReason: string(shared.RejectReasonUnbalancedBatch),
		LineCount:    3,
		TotalDebit:   "150.00",
		TotalCredit:  "140.00",
		SubmittedAt:  time.Now(),
	}

	tests := []struct {
		name           string
		setupMocks     func(m *MockAuditRepository)
		expectedRecord *audit.Record
		expectedError  error
	}{
		{
			name: "record found",
			setupMocks: func(m *MockAuditRepository) {
				m.On("GetByBatchID", mock.Anything, batchID).Return(record, nil)
			},
			expectedRecord: record,
			expectedError:  nil,
		},
		{
			name: "record not found",
			setupMocks: func(m *MockAuditRepository) {
				m.On("GetByBatchID", mock.Anything, batchID).Return(nil, audit.ErrRecordNotFound{BatchID: batchID})
			},
			expectedRecord: nil,
			expectedError:  audit.ErrRecordNotFound{BatchID: batchID},
		},
		{
			name: "database error",
			setupMocks: func(m *MockAuditRepository) {
				m.On("GetByBatchID", mock.Anything, batchID).Return(nil, errors.New("db error"))
			},
			expectedRecord: nil,
			expectedError:  errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockAuditRepository{}
			tt.setupMocks(mockRepo)

			ctx := context.Background()
			result, err := mockRepo.GetByBatchID(ctx, batchID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRecord, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuditRepository_GetByTimeRange(t *testing.T) {
	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()
	records := []*audit.Record{
		{BatchID: uuid.New(), Status: shared.PostingStatusPosted, SubmittedAt: end.Add(-time.Hour)},
		{BatchID: uuid.New(), Status: shared.PostingStatusPosted, SubmittedAt: end.Add(-2 * time.Hour)},
	}

	mockRepo := &MockAuditRepository{}
	mockRepo.On("GetByTimeRange", mock.Anything, start, end, 50, 0).Return(records, nil)

	result, err := mockRepo.GetByTimeRange(context.Background(), start, end, 50, 0)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	mockRepo.AssertExpectations(t)
}
