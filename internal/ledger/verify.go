package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/domain/journal"
)

// DocumentLookup resolves a journal line's document reference. It returns
// false when the referenced document does not exist.
type DocumentLookup func(referenceType string, referenceID uuid.UUID) bool

// UnbalancedBatch records one batch whose debits and credits disagree
// beyond epsilon, with the totals and member lines needed to chase it down.
type UnbalancedBatch struct {
	BatchID    uuid.UUID       `json:"batch_id"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Difference decimal.Decimal `json:"difference"`
	LineIDs    []uuid.UUID     `json:"line_ids"`
}

// OrphanedAccountRef is a line pointing at an account that does not exist.
type OrphanedAccountRef struct {
	LineID    uuid.UUID `json:"line_id"`
	AccountID uuid.UUID `json:"account_id"`
}

// OrphanedDocumentRef is a line whose document reference cannot be resolved.
type OrphanedDocumentRef struct {
	LineID        uuid.UUID `json:"line_id"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   uuid.UUID `json:"reference_id"`
}

// IntegrityReport collects the verifier's findings. Findings are
// informational: they are gathered, never thrown, and the pass never
// mutates anything.
type IntegrityReport struct {
	CheckedLines         int                   `json:"checked_lines"`
	CheckedBatches       int                   `json:"checked_batches"`
	UnbalancedBatches    []UnbalancedBatch     `json:"unbalanced_batches"`
	OrphanedAccountRefs  []OrphanedAccountRef  `json:"orphaned_account_refs"`
	OrphanedDocumentRefs []OrphanedDocumentRef `json:"orphaned_document_refs"`
}

// Clean reports whether the audit found nothing to flag.
func (r *IntegrityReport) Clean() bool {
	return len(r.UnbalancedBatches) == 0 &&
		len(r.OrphanedAccountRefs) == 0 &&
		len(r.OrphanedDocumentRefs) == 0
}

// Verify runs the out-of-band journal audit: per-batch double-entry
// balance, dangling account references, and dangling document references.
// Batches are reported in first-seen order so repeated audits are stable.
func Verify(lines []journal.Line, knownAccounts map[uuid.UUID]struct{}, lookup DocumentLookup, epsilon decimal.Decimal) *IntegrityReport {
	report := &IntegrityReport{CheckedLines: len(lines)}

	type batchTotals struct {
		debit   decimal.Decimal
		credit  decimal.Decimal
		lineIDs []uuid.UUID
	}
	batches := make(map[uuid.UUID]*batchTotals)
	var batchOrder []uuid.UUID

	for _, line := range lines {
		totals, seen := batches[line.BatchID]
		if !seen {
			totals = &batchTotals{debit: decimal.Zero, credit: decimal.Zero}
			batches[line.BatchID] = totals
			batchOrder = append(batchOrder, line.BatchID)
		}
		totals.debit = totals.debit.Add(line.Debit)
		totals.credit = totals.credit.Add(line.Credit)
		totals.lineIDs = append(totals.lineIDs, line.ID)

		if _, ok := knownAccounts[line.AccountID]; !ok {
			report.OrphanedAccountRefs = append(report.OrphanedAccountRefs, OrphanedAccountRef{
				LineID:    line.ID,
				AccountID: line.AccountID,
			})
		}

		if line.HasReference() && lookup != nil && !lookup(line.ReferenceType, line.ReferenceID) {
			report.OrphanedDocumentRefs = append(report.OrphanedDocumentRefs, OrphanedDocumentRef{
				LineID:        line.ID,
				ReferenceType: line.ReferenceType,
				ReferenceID:   line.ReferenceID,
			})
		}
	}

	report.CheckedBatches = len(batchOrder)
	for _, batchID := range batchOrder {
		totals := batches[batchID]
		difference := totals.debit.Sub(totals.credit)
		if difference.Abs().GreaterThan(epsilon) {
			report.UnbalancedBatches = append(report.UnbalancedBatches, UnbalancedBatch{
				BatchID:    batchID,
				Debit:      totals.debit,
				Credit:     totals.credit,
				Difference: difference,
				LineIDs:    totals.lineIDs,
			})
		}
	}

	return report
}
