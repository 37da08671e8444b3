package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightbooks-ledger/internal/domain/document"
)

func testDocument(kind document.Kind, status document.Status, outstanding string, dueDate *time.Time) document.Document {
	return document.Document{
		ID:          uuid.New(),
		Kind:        kind,
		Number:      "DOC-" + uuid.NewString()[:8],
		PartyName:   "Acme Freight",
		DueDate:     dueDate,
		Outstanding: decimal.RequireFromString(outstanding),
		Status:      status,
		Currency:    "USD",
	}
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func bucketByLabel(t *testing.T, report *AgingReport, label string) AgingBucket {
	t.Helper()
	for _, bucket := range report.Buckets {
		if bucket.Label == label {
			return bucket
		}
	}
	t.Fatalf("bucket %q missing from report", label)
	return AgingBucket{}
}

func TestAge(t *testing.T) {
	referenceDate := date("2026-03-01")

	t.Run("FortyFiveDaysOverdueLandsIn31To60", func(t *testing.T) {
		doc := testDocument(document.KindReceivable, document.StatusOpen, "1500.00", datePtr("2026-01-15"))
		report := Age([]document.Document{doc}, document.KindReceivable, referenceDate)

		bucket := bucketByLabel(t, report, Bucket31To60)
		assert.Equal(t, 1, bucket.Count)
		assert.True(t, bucket.Amount.Equal(decimal.RequireFromString("1500.00")))
	})

	t.Run("BucketBoundaries", func(t *testing.T) {
		cases := []struct {
			dueDate string
			label   string
		}{
			{"2026-03-10", BucketCurrent}, // due in the future
			{"2026-03-01", Bucket1To30},   // due today, zero days overdue
			{"2026-01-30", Bucket1To30},   // 30 days
			{"2026-01-29", Bucket31To60},  // 31 days
			{"2025-12-31", Bucket31To60},  // 60 days
			{"2025-12-30", Bucket61To90},  // 61 days
			{"2025-12-01", Bucket61To90},  // 90 days
			{"2025-11-30", BucketOver90},  // 91 days
		}
		for _, tc := range cases {
			doc := testDocument(document.KindReceivable, document.StatusOpen, "100.00", datePtr(tc.dueDate))
			report := Age([]document.Document{doc}, document.KindReceivable, referenceDate)
			bucket := bucketByLabel(t, report, tc.label)
			assert.Equal(t, 1, bucket.Count, "due %s should land in %s", tc.dueDate, tc.label)
		}
	})

	t.Run("ExcludesSettledCancelledAndUndated", func(t *testing.T) {
		docs := []document.Document{
			testDocument(document.KindReceivable, document.StatusSettled, "100.00", datePtr("2026-01-01")),
			testDocument(document.KindReceivable, document.StatusCancelled, "200.00", datePtr("2026-01-01")),
			testDocument(document.KindReceivable, document.StatusOpen, "300.00", nil),
		}
		report := Age(docs, document.KindReceivable, referenceDate)
		assert.Equal(t, 0, report.TotalCount)
		assert.True(t, report.TotalAmount.IsZero())
	})

	t.Run("PartiallySettledStillAges", func(t *testing.T) {
		doc := testDocument(document.KindPayable, document.StatusPartiallySettled, "250.00", datePtr("2026-02-10"))
		report := Age([]document.Document{doc}, document.KindPayable, referenceDate)
		assert.Equal(t, 1, report.TotalCount)
		assert.True(t, report.TotalAmount.Equal(decimal.RequireFromString("250.00")))
	})

	t.Run("FiltersByKind", func(t *testing.T) {
		docs := []document.Document{
			testDocument(document.KindReceivable, document.StatusOpen, "100.00", datePtr("2026-02-01")),
			testDocument(document.KindPayable, document.StatusOpen, "999.00", datePtr("2026-02-01")),
		}
		report := Age(docs, document.KindReceivable, referenceDate)
		assert.Equal(t, 1, report.TotalCount)
		assert.True(t, report.TotalAmount.Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, document.KindReceivable, report.Kind)
	})

	t.Run("TotalsEqualBucketSums", func(t *testing.T) {
		docs := []document.Document{
			testDocument(document.KindReceivable, document.StatusOpen, "100.00", datePtr("2026-03-15")),
			testDocument(document.KindReceivable, document.StatusOpen, "200.00", datePtr("2026-02-20")),
			testDocument(document.KindReceivable, document.StatusOpen, "400.00", datePtr("2025-10-01")),
		}
		report := Age(docs, document.KindReceivable, referenceDate)

		sum := decimal.Zero
		count := 0
		for _, bucket := range report.Buckets {
			sum = sum.Add(bucket.Amount)
			count += bucket.Count
		}
		assert.True(t, report.TotalAmount.Equal(sum))
		assert.Equal(t, report.TotalCount, count)
	})

	t.Run("Idempotent", func(t *testing.T) {
		docs := []document.Document{
			testDocument(document.KindReceivable, document.StatusOpen, "100.00", datePtr("2026-01-15")),
		}
		first := Age(docs, document.KindReceivable, referenceDate)
		second := Age(docs, document.KindReceivable, referenceDate)
		assert.Equal(t, first, second)
	})

	t.Run("LaterReferenceDateNeverMovesDocumentsEarlier", func(t *testing.T) {
		doc := testDocument(document.KindReceivable, document.StatusOpen, "100.00", datePtr("2026-01-15"))
		earlier := Age([]document.Document{doc}, document.KindReceivable, date("2026-02-01"))
		later := Age([]document.Document{doc}, document.KindReceivable, date("2026-05-01"))

		assert.Equal(t, 1, bucketByLabel(t, earlier, Bucket1To30).Count)
		assert.Equal(t, 1, bucketByLabel(t, later, BucketOver90).Count)
	})

	t.Run("TimeOfDayDoesNotShiftBuckets", func(t *testing.T) {
		due := time.Date(2026, 1, 30, 23, 59, 0, 0, time.UTC)
		doc := testDocument(document.KindReceivable, document.StatusOpen, "100.00", &due)
		report := Age([]document.Document{doc}, document.KindReceivable, time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC))
		assert.Equal(t, 1, bucketByLabel(t, report, Bucket1To30).Count, "30 whole days overdue regardless of clock time")
	})

	t.Run("EmptyInputYieldsEmptyBuckets", func(t *testing.T) {
		report := Age(nil, document.KindPayable, referenceDate)
		require.Len(t, report.Buckets, len(BucketOrder))
		for i, bucket := range report.Buckets {
			assert.Equal(t, BucketOrder[i], bucket.Label)
			assert.Zero(t, bucket.Count)
			assert.True(t, bucket.Amount.IsZero())
		}
	})
}
