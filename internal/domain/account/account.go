package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyCode = errors.New("account code cannot be empty")
	ErrEmptyName = errors.New("account name cannot be empty")
)

// Type classifies an account within the chart of accounts. The set is
// closed: every account must carry one of these values, and the type is
// immutable once journal lines reference the account.
type Type string

const (
	TypeAsset        Type = "ASSET"
	TypeLiability    Type = "LIABILITY"
	TypeEquity       Type = "EQUITY"
	TypeRevenue      Type = "REVENUE"
	TypeExpense      Type = "EXPENSE"
	TypeCOGS         Type = "COGS"
	TypeDirectCost   Type = "DIRECT_COST"
	TypeOtherIncome  Type = "OTHER_INCOME"
	TypeOtherExpense Type = "OTHER_EXPENSE"
)

// AllTypes lists every account type in statement presentation order.
var AllTypes = []Type{
	TypeAsset,
	TypeLiability,
	TypeEquity,
	TypeRevenue,
	TypeCOGS,
	TypeDirectCost,
	TypeExpense,
	TypeOtherIncome,
	TypeOtherExpense,
}

// Account is one row of the chart of accounts. The reporting engine treats
// it as read-only; chart setup happens outside the reporting path.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"` // unique, sortable
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a chart-of-accounts entry with the given code, name, and type
func New(code, name string, accountType Type) (*Account, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := IsCreditNormal(accountType); err != nil {
		return nil, err
	}

	return &Account{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		Type:      accountType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}
