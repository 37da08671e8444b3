package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes receivable documents (customer invoices) from payable
// ones (vendor bills / purchase orders). Aging logic is identical for both;
// the kind is data, not a separate code path.
type Kind string

const (
	KindReceivable Kind = "RECEIVABLE"
	KindPayable    Kind = "PAYABLE"
)

// Journal lines reference documents through these type tags.
const (
	ReferenceInvoice = "INVOICE"
	ReferenceBill    = "BILL"
)

// KindForReference maps a journal line's reference type to the document
// kind it must resolve against. Unknown reference types return false.
func KindForReference(referenceType string) (Kind, bool) {
	switch referenceType {
	case ReferenceInvoice:
		return KindReceivable, true
	case ReferenceBill:
		return KindPayable, true
	default:
		return "", false
	}
}

// Status is the settlement state of a document
type Status string

const (
	StatusOpen             Status = "OPEN"
	StatusPartiallySettled Status = "PARTIALLY_SETTLED"
	StatusSettled          Status = "SETTLED"
	StatusCancelled        Status = "CANCELLED"
)

// Document is an open receivable or payable as seen by the aging engine:
// the settlement fields plus the display fields drill-down views need.
type Document struct {
	ID          uuid.UUID       `json:"id"`
	Kind        Kind            `json:"kind"`
	Number      string          `json:"number"`
	PartyName   string          `json:"party_name"` // customer or vendor
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding_amount"`
	Status      Status          `json:"status"`
	Currency    string          `json:"currency"`
}

// Open reports whether the document still carries an unsettled balance.
// Settled and cancelled documents never age.
func (d Document) Open() bool {
	return d.Status == StatusOpen || d.Status == StatusPartiallySettled
}
