package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/document"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/ledger"
)

// ReportServiceImpl implements the ReportService interface. Each call loads
// a journal snapshot and runs the pure computation over it, so concurrent
// report requests never interfere with each other or with posting.
type ReportServiceImpl struct {
	accountRepo  account.Repository
	journalRepo  journal.Repository
	documentRepo document.Repository
	auditRepo    audit.Repository
	epsilon      decimal.Decimal
	logger       *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(
	logger *slog.Logger,
	accountRepo account.Repository,
	journalRepo journal.Repository,
	documentRepo document.Repository,
	auditRepo audit.Repository,
	epsilon decimal.Decimal,
) ReportService {
	return &ReportServiceImpl{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		documentRepo: documentRepo,
		auditRepo:    auditRepo,
		epsilon:      epsilon,
		logger:       logger,
	}
}

// buildLedgers loads the chart and the journal through the period end and
// computes per-account ledgers. All three statements share this snapshot.
func (s *ReportServiceImpl) buildLedgers(ctx context.Context, from, to time.Time) ([]*ledger.AccountLedger, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.GetUntil(ctx, to)
	if err != nil {
		return nil, err
	}

	return ledger.BuildAll(accounts, lines, from, to)
}

// TrialBalance computes the trial balance over the given period
func (s *ReportServiceImpl) TrialBalance(ctx context.Context, from, to time.Time) (*ledger.TrialBalance, error) {
	ledgers, err := s.buildLedgers(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ledger.ComposeTrialBalance(ledgers, s.epsilon), nil
}

// ProfitAndLoss computes the tiered income statement over the given period
func (s *ReportServiceImpl) ProfitAndLoss(ctx context.Context, from, to time.Time) (*ledger.ProfitAndLoss, error) {
	ledgers, err := s.buildLedgers(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ledger.ComposeProfitAndLoss(ledgers), nil
}

// BalanceSheet computes the balance sheet as of the period end, with net
// income accumulated through the period end carried into equity
func (s *ReportServiceImpl) BalanceSheet(ctx context.Context, from, to time.Time) (*ledger.BalanceSheet, error) {
	ledgers, err := s.buildLedgers(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ledger.ComposeBalanceSheet(ledgers, s.epsilon), nil
}

// Aging buckets the open documents of one kind by days overdue relative to
// the reference date
func (s *ReportServiceImpl) Aging(ctx context.Context, kind document.Kind, referenceDate time.Time) (*ledger.AgingReport, error) {
	docs, err := s.documentRepo.GetOpen(ctx, kind)
	if err != nil {
		return nil, err
	}
	return ledger.Age(docs, kind, referenceDate), nil
}

// Integrity runs the journal audit: per-batch double-entry balance plus
// dangling account and document references. A document lookup failure counts
// as unresolved rather than aborting the audit.
func (s *ReportServiceImpl) Integrity(ctx context.Context) (*ledger.IntegrityReport, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	knownAccounts := make(map[uuid.UUID]struct{}, len(accounts))
	for _, acc := range accounts {
		knownAccounts[acc.ID] = struct{}{}
	}

	lookup := func(referenceType string, referenceID uuid.UUID) bool {
		exists, err := s.documentRepo.Exists(ctx, referenceType, referenceID)
		if err != nil {
			s.logger.Warn("Document lookup failed during integrity audit",
				"reference_type", referenceType,
				"reference_id", referenceID.String(),
				"error", err,
			)
			return false
		}
		return exists
	}

	return ledger.Verify(lines, knownAccounts, lookup, s.epsilon), nil
}

// AuditTrail returns paginated posting audit records submitted within the window
func (s *ReportServiceImpl) AuditTrail(ctx context.Context, from, to time.Time, page, perPage int) ([]*audit.Record, error) {
	offset := (page - 1) * perPage
	return s.auditRepo.GetByTimeRange(ctx, from, to, perPage, offset)
}
