// Package ledger implements the double-entry computation engine: balance
// accumulation, per-account ledgers with running balances, the standard
// financial statements, receivable/payable aging, and journal integrity
// verification. Everything here is a pure function over snapshots already
// fetched into memory; the package performs no I/O and holds no state, so
// overlapping report computations need no coordination.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultEpsilon is the tolerance for double-entry invariant checks, one
// cent of the reporting currency. Invariants compare |debits - credits|
// against this rather than demanding exact equality.
var DefaultEpsilon = decimal.New(1, -2)

// ErrInvalidDateRange indicates a period whose start falls after its end.
// It is rejected before any computation runs.
type ErrInvalidDateRange struct {
	From time.Time
	To   time.Time
}

func (e ErrInvalidDateRange) Error() string {
	return "invalid date range: " + e.From.Format("2006-01-02") + " is after " + e.To.Format("2006-01-02")
}

// Is implements the errors.Is interface for ErrInvalidDateRange
func (e ErrInvalidDateRange) Is(target error) bool {
	_, ok := target.(ErrInvalidDateRange)
	return ok
}

// ErrMixedAccounts indicates lines for more than one account were passed to
// a per-account computation. Partitioning is the caller's job; silently
// folding foreign lines into a balance would corrupt it.
type ErrMixedAccounts struct {
	Want string
	Got  string
}

func (e ErrMixedAccounts) Error() string {
	return "journal lines mix accounts: want " + e.Want + ", got " + e.Got
}

// Is implements the errors.Is interface for ErrMixedAccounts
func (e ErrMixedAccounts) Is(target error) bool {
	_, ok := target.(ErrMixedAccounts)
	return ok
}
