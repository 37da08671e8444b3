package ledger

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/journal"
)

func TestBuild(t *testing.T) {
	periodStart := date("2026-01-01")
	periodEnd := date("2026-01-31")

	t.Run("RunningBalancesAndClosing", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		lines := []journal.Line{
			testLine(acc.ID, "100.00", "0", date("2026-01-05")),
			testLine(acc.ID, "0", "40.00", date("2026-01-20")),
		}

		ledger, err := Build(acc, lines, periodStart, periodEnd)
		require.NoError(t, err)

		assert.True(t, ledger.Opening.IsZero())
		require.Len(t, ledger.Movements, 2)
		assert.True(t, ledger.Movements[0].Running.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, ledger.Movements[1].Running.Equal(decimal.RequireFromString("60.00")))
		assert.True(t, ledger.Closing.Equal(decimal.RequireFromString("60.00")))
		assert.True(t, ledger.PeriodDebit.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, ledger.PeriodCredit.Equal(decimal.RequireFromString("40.00")))
	})

	t.Run("OpeningFromLinesBeforePeriod", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		lines := []journal.Line{
			testLine(acc.ID, "500.00", "0", date("2025-12-15")),
			testLine(acc.ID, "0", "120.00", date("2026-01-10")),
		}

		ledger, err := Build(acc, lines, periodStart, periodEnd)
		require.NoError(t, err)

		assert.True(t, ledger.Opening.Equal(decimal.RequireFromString("500.00")))
		require.Len(t, ledger.Movements, 1)
		assert.True(t, ledger.Movements[0].Running.Equal(decimal.RequireFromString("380.00")))
		assert.True(t, ledger.Closing.Equal(decimal.RequireFromString("380.00")))
	})

	t.Run("ClosingEqualsOpeningPlusMovements", func(t *testing.T) {
		acc := testAccount("200", account.TypeLiability)
		lines := []journal.Line{
			testLine(acc.ID, "0", "900.00", date("2025-11-01")),
			testLine(acc.ID, "150.00", "0", date("2026-01-03")),
			testLine(acc.ID, "0", "75.00", date("2026-01-28")),
		}

		ledger, err := Build(acc, lines, periodStart, periodEnd)
		require.NoError(t, err)

		movements, err := Accumulate(acc, []journal.Line{lines[1], lines[2]})
		require.NoError(t, err)
		assert.True(t, ledger.Closing.Equal(ledger.Opening.Add(movements.Net)))
		assert.True(t, ledger.Closing.Equal(ledger.Movements[len(ledger.Movements)-1].Running))
	})

	t.Run("PeriodBoundariesAreInclusive", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		lines := []journal.Line{
			testLine(acc.ID, "10.00", "0", periodStart),
			testLine(acc.ID, "20.00", "0", periodEnd),
			testLine(acc.ID, "40.00", "0", date("2026-02-01")),
		}

		ledger, err := Build(acc, lines, periodStart, periodEnd)
		require.NoError(t, err)
		require.Len(t, ledger.Movements, 2)
		assert.True(t, ledger.Closing.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("SameDateTiesKeepInsertionOrder", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		first := testLine(acc.ID, "10.00", "0", date("2026-01-05"))
		second := testLine(acc.ID, "0", "4.00", date("2026-01-05"))
		lines := []journal.Line{first, second}

		ledger, err := Build(acc, lines, periodStart, periodEnd)
		require.NoError(t, err)
		require.Len(t, ledger.Movements, 2)
		assert.Equal(t, first.ID, ledger.Movements[0].Line.ID)
		assert.Equal(t, second.ID, ledger.Movements[1].Line.ID)

		// Re-running over the same snapshot reproduces the same sequence.
		again, err := Build(acc, lines, periodStart, periodEnd)
		require.NoError(t, err)
		assert.Equal(t, ledger.Movements[0].Line.ID, again.Movements[0].Line.ID)
		assert.True(t, ledger.Movements[0].Running.Equal(again.Movements[0].Running))
	})

	t.Run("NoLinesYieldsZeroLedger", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		ledger, err := Build(acc, nil, periodStart, periodEnd)
		require.NoError(t, err)
		assert.True(t, ledger.Opening.IsZero())
		assert.True(t, ledger.Closing.IsZero())
		assert.Empty(t, ledger.Movements)
	})

	t.Run("StartAfterEndRejected", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		_, err := Build(acc, nil, periodEnd, periodStart)
		assert.True(t, errors.Is(err, ErrInvalidDateRange{}))
	})

	t.Run("MixedAccountsRejected", func(t *testing.T) {
		acc := testAccount("110", account.TypeAsset)
		foreign := testLine(uuid.New(), "10.00", "0", date("2026-01-05"))
		_, err := Build(acc, []journal.Line{foreign}, periodStart, periodEnd)
		assert.True(t, errors.Is(err, ErrMixedAccounts{}))
	})
}

func TestBuildAll(t *testing.T) {
	periodStart := date("2026-01-01")
	periodEnd := date("2026-01-31")

	t.Run("PartitionsLinesPerAccount", func(t *testing.T) {
		asset := testAccount("110", account.TypeAsset)
		revenue := testAccount("400", account.TypeRevenue)
		batchID := uuid.New()
		lines := []journal.Line{
			{ID: uuid.New(), AccountID: asset.ID, Debit: decimal.RequireFromString("100.00"), EntryDate: date("2026-01-05"), BatchID: batchID},
			{ID: uuid.New(), AccountID: revenue.ID, Credit: decimal.RequireFromString("100.00"), EntryDate: date("2026-01-05"), BatchID: batchID},
		}

		ledgers, err := BuildAll([]*account.Account{asset, revenue}, lines, periodStart, periodEnd)
		require.NoError(t, err)
		require.Len(t, ledgers, 2)
		assert.True(t, ledgers[0].Closing.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, ledgers[1].Closing.Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("AccountsWithoutLinesGetZeroLedgers", func(t *testing.T) {
		idle := testAccount("300", account.TypeEquity)
		ledgers, err := BuildAll([]*account.Account{idle}, nil, periodStart, periodEnd)
		require.NoError(t, err)
		require.Len(t, ledgers, 1)
		assert.True(t, ledgers[0].Opening.IsZero())
		assert.True(t, ledgers[0].Closing.IsZero())
	})

	t.Run("StartAfterEndRejected", func(t *testing.T) {
		_, err := BuildAll(nil, nil, periodEnd, periodStart)
		assert.True(t, errors.Is(err, ErrInvalidDateRange{}))
	})
}
