package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
)

// Movement is one journal line inside the reporting period, annotated with
// the balance after applying it.
type Movement struct {
	Line    journal.Line
	Running decimal.Decimal
}

// AccountLedger is the general-ledger view of one account over a period:
// opening balance, dated movements with running balances, period totals,
// and closing balance. Closing always equals opening plus the signed net of
// the movements, and equals the last movement's running balance.
type AccountLedger struct {
	Account      *account.Account
	Opening      decimal.Decimal
	Movements    []Movement
	PeriodDebit  decimal.Decimal
	PeriodCredit decimal.Decimal
	Closing      decimal.Decimal
}

// Build computes the ledger for one account. lines must hold every line for
// the account dated up to and including the period end; lines before the
// period start form the opening balance. An account with no lines at all
// yields a zero ledger, not an error.
func Build(acc *account.Account, lines []journal.Line, from, to time.Time) (*AccountLedger, error) {
	if from.After(to) {
		return nil, ErrInvalidDateRange{From: from, To: to}
	}
	creditNormal, err := account.IsCreditNormal(acc.Type)
	if err != nil {
		return nil, err
	}

	var before, within []journal.Line
	for _, line := range lines {
		if line.AccountID != acc.ID {
			return nil, ErrMixedAccounts{Want: acc.ID.String(), Got: line.AccountID.String()}
		}
		switch {
		case line.EntryDate.Before(from):
			before = append(before, line)
		case !line.EntryDate.After(to):
			within = append(within, line)
		}
	}

	openingTotals, err := Accumulate(acc, before)
	if err != nil {
		return nil, err
	}
	opening := openingTotals.Net

	// Ties on entry date keep their insertion order; a stable sort makes
	// running-balance snapshots reproducible between report runs.
	sort.SliceStable(within, func(i, j int) bool {
		return within[i].EntryDate.Before(within[j].EntryDate)
	})

	ledger := &AccountLedger{
		Account:      acc,
		Opening:      opening,
		PeriodDebit:  decimal.Zero,
		PeriodCredit: decimal.Zero,
		Closing:      opening,
	}

	running := opening
	for _, line := range within {
		running = running.Add(signedNet(line, creditNormal))
		ledger.Movements = append(ledger.Movements, Movement{Line: line, Running: running})
		ledger.PeriodDebit = ledger.PeriodDebit.Add(line.Debit)
		ledger.PeriodCredit = ledger.PeriodCredit.Add(line.Credit)
	}
	ledger.Closing = running

	return ledger, nil
}

// BuildAll computes ledgers for every account over the same period,
// partitioning the line set per account first. Accounts keep their input
// order; lines referencing no known account are ignored here (the
// integrity verifier reports them).
func BuildAll(accounts []*account.Account, lines []journal.Line, from, to time.Time) ([]*AccountLedger, error) {
	if from.After(to) {
		return nil, ErrInvalidDateRange{From: from, To: to}
	}

	byAccount := make(map[uuid.UUID][]journal.Line, len(accounts))
	for _, line := range lines {
		byAccount[line.AccountID] = append(byAccount[line.AccountID], line)
	}

	ledgers := make([]*AccountLedger, 0, len(accounts))
	for _, acc := range accounts {
		ledger, err := Build(acc, byAccount[acc.ID], from, to)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	return ledgers, nil
}
