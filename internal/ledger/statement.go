package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/account"
)

// CurrentEarningsLabel names the synthetic equity line carrying the
// period's net income on the balance sheet. It is derived, never a
// persisted account.
const CurrentEarningsLabel = "Current-Period Earnings"

// TrialBalanceRow is one account's opening, period movement, and closing.
type TrialBalanceRow struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Opening decimal.Decimal `json:"opening"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Closing decimal.Decimal `json:"closing"`
}

// TrialBalanceGroup aggregates rows of one account type.
type TrialBalanceGroup struct {
	Type   account.Type      `json:"type"`
	Rows   []TrialBalanceRow `json:"rows"`
	Debit  decimal.Decimal   `json:"debit"`
	Credit decimal.Decimal   `json:"credit"`
}

// TrialBalance lists every active account grouped by type. Balanced is
// false when period debits and credits disagree beyond epsilon; the report
// still renders, carrying the discrepancy, because finance users need to
// see where the data is wrong rather than an empty page.
type TrialBalance struct {
	Groups      []TrialBalanceGroup `json:"groups"`
	TotalDebit  decimal.Decimal     `json:"total_debit"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	Difference  decimal.Decimal     `json:"difference"`
	Balanced    bool                `json:"balanced"`
}

// ComposeTrialBalance derives the trial balance from per-account ledgers.
// Accounts with zero opening, period movement, and closing are omitted.
func ComposeTrialBalance(ledgers []*AccountLedger, epsilon decimal.Decimal) *TrialBalance {
	groups := make(map[account.Type]*TrialBalanceGroup)

	tb := &TrialBalance{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, l := range ledgers {
		if l.Opening.IsZero() && l.PeriodDebit.IsZero() && l.PeriodCredit.IsZero() && l.Closing.IsZero() {
			continue
		}
		grp, ok := groups[l.Account.Type]
		if !ok {
			grp = &TrialBalanceGroup{Type: l.Account.Type, Debit: decimal.Zero, Credit: decimal.Zero}
			groups[l.Account.Type] = grp
		}
		grp.Rows = append(grp.Rows, TrialBalanceRow{
			Code:    l.Account.Code,
			Name:    l.Account.Name,
			Opening: l.Opening,
			Debit:   l.PeriodDebit,
			Credit:  l.PeriodCredit,
			Closing: l.Closing,
		})
		grp.Debit = grp.Debit.Add(l.PeriodDebit)
		grp.Credit = grp.Credit.Add(l.PeriodCredit)
		tb.TotalDebit = tb.TotalDebit.Add(l.PeriodDebit)
		tb.TotalCredit = tb.TotalCredit.Add(l.PeriodCredit)
	}

	for _, accountType := range account.AllTypes {
		grp, ok := groups[accountType]
		if !ok {
			continue
		}
		sort.Slice(grp.Rows, func(i, j int) bool { return grp.Rows[i].Code < grp.Rows[j].Code })
		tb.Groups = append(tb.Groups, *grp)
	}

	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)
	tb.Balanced = tb.Difference.Abs().LessThanOrEqual(epsilon)

	return tb
}

// StatementLine is one account (or synthetic line) on a balance sheet or
// profit and loss section.
type StatementLine struct {
	Code   string          `json:"code,omitempty"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// StatementSection groups statement lines under a label with a total.
type StatementSection struct {
	Label string          `json:"label"`
	Lines []StatementLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func newSection(label string) StatementSection {
	return StatementSection{Label: label, Total: decimal.Zero}
}

func (s *StatementSection) add(line StatementLine) {
	s.Lines = append(s.Lines, line)
	s.Total = s.Total.Add(line.Amount)
}

func (s *StatementSection) sortByCode() {
	sort.Slice(s.Lines, func(i, j int) bool { return s.Lines[i].Code < s.Lines[j].Code })
}

// ProfitAndLoss is the tiered income statement. The tiers build strictly on
// each other: gross profit from revenue and cost of goods, operating profit
// after operating expenses, net income after the other income and expense
// lines. Every tier covers the same reporting period.
type ProfitAndLoss struct {
	Revenue           StatementSection `json:"revenue"`
	CostOfGoods       StatementSection `json:"cost_of_goods"`
	OperatingExpenses StatementSection `json:"operating_expenses"`
	OtherIncome       StatementSection `json:"other_income"`
	OtherExpense      StatementSection `json:"other_expense"`
	GrossProfit       decimal.Decimal  `json:"gross_profit"`
	OperatingProfit   decimal.Decimal  `json:"operating_profit"`
	NetIncome         decimal.Decimal  `json:"net_income"`
}

// ComposeProfitAndLoss derives the income statement from each account's
// activity within the period. Balances accumulated before the period start
// stay in the opening balance and never reach a tier. COGS and direct-cost
// accounts share the cost-of-goods tier.
func ComposeProfitAndLoss(ledgers []*AccountLedger) *ProfitAndLoss {
	pl := &ProfitAndLoss{
		Revenue:           newSection("Revenue"),
		CostOfGoods:       newSection("Cost of Goods Sold"),
		OperatingExpenses: newSection("Operating Expenses"),
		OtherIncome:       newSection("Other Income"),
		OtherExpense:      newSection("Other Expense"),
	}

	for _, l := range ledgers {
		activity := l.Closing.Sub(l.Opening)
		if activity.IsZero() {
			continue
		}
		line := StatementLine{Code: l.Account.Code, Name: l.Account.Name, Amount: activity}
		switch l.Account.Type {
		case account.TypeRevenue:
			pl.Revenue.add(line)
		case account.TypeCOGS, account.TypeDirectCost:
			pl.CostOfGoods.add(line)
		case account.TypeExpense:
			pl.OperatingExpenses.add(line)
		case account.TypeOtherIncome:
			pl.OtherIncome.add(line)
		case account.TypeOtherExpense:
			pl.OtherExpense.add(line)
		}
	}

	for _, s := range []*StatementSection{&pl.Revenue, &pl.CostOfGoods, &pl.OperatingExpenses, &pl.OtherIncome, &pl.OtherExpense} {
		s.sortByCode()
	}

	pl.GrossProfit = pl.Revenue.Total.Sub(pl.CostOfGoods.Total)
	pl.OperatingProfit = pl.GrossProfit.Sub(pl.OperatingExpenses.Total)
	pl.NetIncome = pl.OperatingProfit.Add(pl.OtherIncome.Total).Sub(pl.OtherExpense.Total)

	return pl
}

// BalanceSheet partitions closing balances into assets, liabilities, and
// equity, with net income accumulated through the period end injected into
// equity as a synthetic earnings line. Difference carries the accounting identity
// violation (assets minus liabilities-plus-equity) when the underlying
// journal is unbalanced; it is reported, never zeroed.
type BalanceSheet struct {
	Assets      StatementSection `json:"assets"`
	Liabilities StatementSection `json:"liabilities"`
	Equity      StatementSection `json:"equity"`
	NetIncome   decimal.Decimal  `json:"net_income"`
	Difference  decimal.Decimal  `json:"difference"`
	Balanced    bool             `json:"balanced"`
}

// ComposeBalanceSheet derives the balance sheet from the same per-account
// ledgers the other statements use. Asset, liability, and equity lines are
// closing balances, cumulative through the period end, so the injected
// earnings line must carry net income accumulated through the period end
// too; the identity then holds for any period start.
func ComposeBalanceSheet(ledgers []*AccountLedger, epsilon decimal.Decimal) *BalanceSheet {
	bs := &BalanceSheet{
		Assets:      newSection("Assets"),
		Liabilities: newSection("Liabilities"),
		Equity:      newSection("Equity"),
	}

	for _, l := range ledgers {
		if l.Closing.IsZero() {
			continue
		}
		line := StatementLine{Code: l.Account.Code, Name: l.Account.Name, Amount: l.Closing}
		switch l.Account.Type {
		case account.TypeAsset:
			bs.Assets.add(line)
		case account.TypeLiability:
			bs.Liabilities.add(line)
		case account.TypeEquity:
			bs.Equity.add(line)
		}
	}

	bs.Assets.sortByCode()
	bs.Liabilities.sortByCode()
	bs.Equity.sortByCode()

	bs.NetIncome = cumulativeNetIncome(ledgers)
	bs.Equity.add(StatementLine{Name: CurrentEarningsLabel, Amount: bs.NetIncome})

	bs.Difference = bs.Assets.Total.Sub(bs.Liabilities.Total.Add(bs.Equity.Total))
	bs.Balanced = bs.Difference.Abs().LessThanOrEqual(epsilon)

	return bs
}

// cumulativeNetIncome nets the income-statement closing balances, which run
// through the period end regardless of the period start.
func cumulativeNetIncome(ledgers []*AccountLedger) decimal.Decimal {
	total := decimal.Zero
	for _, l := range ledgers {
		switch l.Account.Type {
		case account.TypeRevenue, account.TypeOtherIncome:
			total = total.Add(l.Closing)
		case account.TypeCOGS, account.TypeDirectCost, account.TypeExpense, account.TypeOtherExpense:
			total = total.Sub(l.Closing)
		}
	}
	return total
}
