package shared

// PostingStatus defines journal batch processing states
type PostingStatus string

const (
	PostingStatusPosted   PostingStatus = "POSTED"
	PostingStatusRejected PostingStatus = "REJECTED"
)

// RejectReason defines batch rejection categories
type RejectReason string

const (
	RejectReasonEmptyBatch      RejectReason = "EMPTY_BATCH"
	RejectReasonUnbalancedBatch RejectReason = "UNBALANCED_BATCH"
	RejectReasonNegativeAmount  RejectReason = "NEGATIVE_AMOUNT"
	RejectReasonUnknownAccount  RejectReason = "UNKNOWN_ACCOUNT"
	RejectReasonUnknownError    RejectReason = "UNKNOWN_ERROR"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
