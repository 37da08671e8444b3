package account

// ErrUnknownAccountType indicates a type outside the closed account type set.
// Callers must treat it as fatal; defaulting the sign convention would
// silently flip balances on every report.
type ErrUnknownAccountType struct {
	Type Type
}

func (e ErrUnknownAccountType) Error() string {
	return "unknown account type: " + string(e.Type)
}

// Is implements the errors.Is interface for ErrUnknownAccountType
func (e ErrUnknownAccountType) Is(target error) bool {
	t, ok := target.(ErrUnknownAccountType)
	if !ok {
		return false
	}
	// An empty target Type matches any ErrUnknownAccountType
	if t.Type == "" {
		return true
	}
	return e.Type == t.Type
}

// IsCreditNormal reports whether an account type's balance increases on the
// credit side. This single boolean fixes the sign convention used everywhere
// balances are accumulated, so it is the only place the convention lives.
func IsCreditNormal(accountType Type) (bool, error) {
	switch accountType {
	case TypeLiability, TypeEquity, TypeRevenue, TypeOtherIncome:
		return true, nil
	case TypeAsset, TypeExpense, TypeCOGS, TypeDirectCost, TypeOtherExpense:
		return false, nil
	default:
		return false, ErrUnknownAccountType{Type: accountType}
	}
}
