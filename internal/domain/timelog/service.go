package timelog

import "context"

// TimeLogService defines the interface for ledger business logic
type TimeLogService interface {
	// LogTime resolves the counterpart by email and either records a pending
	// transaction directly or creates an invitation with a deferred log
	LogTime(ctx context.Context, actorProfileID string, req LogTimeRequest) (LogTimeResult, error)

	// GetTransaction retrieves a transaction visible to the acting profile
	GetTransaction(ctx context.Context, actorProfileID, transactionID string) (TransactionResponse, error)

	// ListTransactions lists transactions where the acting profile is a party
	ListTransactions(ctx context.Context, actorProfileID string, status *Status, limit int) ([]TransactionResponse, error)

	// Confirm transitions a pending transaction to confirmed; only the
	// counterpart of the logger may call it
	Confirm(ctx context.Context, actorProfileID, transactionID string) (TransactionResponse, error)

	// Dispute transitions a pending transaction to disputed with a reason;
	// only the counterpart of the logger may call it
	Dispute(ctx context.Context, actorProfileID, transactionID string, req DisputeRequest) (TransactionResponse, error)

	// Cancel transitions a pending transaction to cancelled; only the
	// profile that logged it may call it
	Cancel(ctx context.Context, actorProfileID, transactionID string) (TransactionResponse, error)

	// Nudge re-sends the confirmation reminder to the counterpart, throttled
	// to one per hour per transaction
	Nudge(ctx context.Context, actorProfileID, transactionID string) error

	// LogAgentTime records an exchange between the acting profile and an agent
	LogAgentTime(ctx context.Context, actorProfileID string, req LogAgentTimeRequest) (AgentTransactionResponse, error)
}
