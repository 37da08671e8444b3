package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/ledger"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	journalRepo journal.Repository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository, journalRepo journal.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// ListAccounts returns the full chart of accounts ordered by code
func (s *AccountServiceImpl) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.accountRepo.GetAll(ctx)
}

// GetAccountLedger computes the general-ledger view of one account.
// Lines dated before the period start form the opening balance, so the
// journal is fetched through the period end only.
func (s *AccountServiceImpl) GetAccountLedger(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*ledger.AccountLedger, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.GetByAccountID(ctx, accountID, to)
	if err != nil {
		return nil, err
	}

	return ledger.Build(acc, lines, from, to)
}
