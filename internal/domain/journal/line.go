package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one leg of a double-entry posting. Lines are immutable once
// posted: corrections are new reversing batches, never edits.
type Line struct {
	ID            uuid.UUID       `json:"id"`
	Seq           int64           `json:"seq"` // insertion order, assigned by the store
	AccountID     uuid.UUID       `json:"account_id"`
	Debit         decimal.Decimal `json:"debit"`  // non-negative
	Credit        decimal.Decimal `json:"credit"` // non-negative
	EntryDate     time.Time       `json:"entry_date"`
	BatchID       uuid.UUID       `json:"batch_id"`
	ReferenceType string          `json:"reference_type,omitempty"` // e.g. INVOICE, PURCHASE_ORDER
	ReferenceID   uuid.UUID       `json:"reference_id,omitempty"`   // uuid.Nil for manual entries
	Description   string          `json:"description,omitempty"`
	EntryNumber   string          `json:"entry_number,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Net returns the raw debit-minus-credit effect of the line. The zero value
// of decimal.Decimal is zero, so absent amounts need no special casing.
func (l Line) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// HasReference reports whether the line points at an originating document.
func (l Line) HasReference() bool {
	return l.ReferenceType != "" && l.ReferenceID != uuid.Nil
}
