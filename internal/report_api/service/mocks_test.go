package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/document"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/platform/messaging/producers"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAll(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) account.Repository {
	args := m.Called(tx)
	return args.Get(0).(account.Repository)
}

var _ account.Repository = (*MockAccountRepository)(nil)

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) CreateBatch(ctx context.Context, lines []journal.Line) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, until time.Time) ([]journal.Line, error) {
	args := m.Called(ctx, accountID, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.Line), args.Error(1)
}

func (m *MockJournalRepository) GetUntil(ctx context.Context, until time.Time) ([]journal.Line, error) {
	args := m.Called(ctx, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.Line), args.Error(1)
}

func (m *MockJournalRepository) GetAll(ctx context.Context) ([]journal.Line, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.Line), args.Error(1)
}

func (m *MockJournalRepository) GetByBatchID(ctx context.Context, batchID uuid.UUID) ([]journal.Line, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.Line), args.Error(1)
}

func (m *MockJournalRepository) BatchExists(ctx context.Context, batchID uuid.UUID) (bool, error) {
	args := m.Called(ctx, batchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) WithTx(tx pgx.Tx) journal.Repository {
	args := m.Called(tx)
	return args.Get(0).(journal.Repository)
}

var _ journal.Repository = (*MockJournalRepository)(nil)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) GetOpen(ctx context.Context, kind document.Kind) ([]document.Document, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) Exists(ctx context.Context, referenceType string, referenceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, referenceType, referenceID)
	return args.Bool(0), args.Error(1)
}

var _ document.Repository = (*MockDocumentRepository)(nil)

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

var _ audit.Repository = (*MockAuditRepository)(nil)

type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ producers.MessagePublisher = (*MockMessagePublisher)(nil)
