package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/document"
)

// Aging bucket labels, ordered from not-yet-due to most overdue.
const (
	BucketCurrent = "current"
	Bucket1To30   = "1-30"
	Bucket31To60  = "31-60"
	Bucket61To90  = "61-90"
	BucketOver90  = "90+"
)

// BucketOrder is the canonical presentation order of aging buckets.
var BucketOrder = []string{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// AgingBucket accumulates the open documents falling into one overdue band,
// keeping the member list for drill-down.
type AgingBucket struct {
	Label     string              `json:"label"`
	Count     int                 `json:"count"`
	Amount    decimal.Decimal     `json:"amount"`
	Documents []document.Document `json:"documents"`
}

// AgingReport buckets open documents by days overdue relative to a
// reference date. One report shape serves receivables and payables alike.
type AgingReport struct {
	Kind          document.Kind `json:"kind"`
	ReferenceDate time.Time     `json:"reference_date"`
	Buckets       []AgingBucket `json:"buckets"`
	TotalCount    int           `json:"total_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Age buckets open documents by how many days past due they are on the
// reference date. Settled and cancelled documents are excluded, as are
// documents without a due date. Bucket boundaries are inclusive on the
// upper end: due in the future is current, then 0-30, 31-60, 61-90, and
// beyond 90 days overdue.
func Age(docs []document.Document, kind document.Kind, referenceDate time.Time) *AgingReport {
	report := &AgingReport{
		Kind:          kind,
		ReferenceDate: referenceDate,
		TotalAmount:   decimal.Zero,
	}

	buckets := make(map[string]*AgingBucket, len(BucketOrder))
	for _, label := range BucketOrder {
		buckets[label] = &AgingBucket{Label: label, Amount: decimal.Zero}
	}

	for _, doc := range docs {
		if doc.Kind != kind || !doc.Open() || doc.DueDate == nil {
			continue
		}
		bucket := buckets[bucketFor(daysOverdue(referenceDate, *doc.DueDate))]
		bucket.Count++
		bucket.Amount = bucket.Amount.Add(doc.Outstanding)
		bucket.Documents = append(bucket.Documents, doc)
		report.TotalCount++
		report.TotalAmount = report.TotalAmount.Add(doc.Outstanding)
	}

	for _, label := range BucketOrder {
		report.Buckets = append(report.Buckets, *buckets[label])
	}

	return report
}

// daysOverdue counts whole calendar days from due date to reference date,
// negative when the document is not yet due. Both instants are truncated to
// their UTC dates first so partial days never shift a document's bucket.
func daysOverdue(referenceDate, dueDate time.Time) int {
	ref := truncateToDate(referenceDate)
	due := truncateToDate(dueDate)
	return int(ref.Sub(due) / (24 * time.Hour))
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func bucketFor(days int) string {
	switch {
	case days < 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}
