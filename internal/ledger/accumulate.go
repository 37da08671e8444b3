package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
)

// Totals is the result of folding journal lines for a single account.
// Net is already signed in the account's natural-increase direction:
// credit-normal accounts report credits minus debits, debit-normal accounts
// the reverse.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Net    decimal.Decimal
}

// Accumulate folds a sequence of journal lines into signed totals for one
// account. The fold is order-independent; callers needing running balances
// sort before folding line by line (see Build). Lines must all belong to
// the given account, the function fails on any foreign line rather than
// absorbing it.
func Accumulate(acc *account.Account, lines []journal.Line) (Totals, error) {
	creditNormal, err := account.IsCreditNormal(acc.Type)
	if err != nil {
		return Totals{}, err
	}

	debit := decimal.Zero
	credit := decimal.Zero
	for _, line := range lines {
		if line.AccountID != acc.ID {
			return Totals{}, ErrMixedAccounts{Want: acc.ID.String(), Got: line.AccountID.String()}
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}

	net := debit.Sub(credit)
	if creditNormal {
		net = credit.Sub(debit)
	}

	return Totals{Debit: debit, Credit: credit, Net: net}, nil
}

// signedNet returns one line's effect on the account balance under the
// given sign convention.
func signedNet(line journal.Line, creditNormal bool) decimal.Decimal {
	if creditNormal {
		return line.Credit.Sub(line.Debit)
	}
	return line.Debit.Sub(line.Credit)
}
