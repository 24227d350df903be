package timelog

import "errors"

var (
	ErrTransactionNotFound = errors.New("time transaction not found")
	ErrNotParticipant      = errors.New("profile is not part of this transaction")
	ErrNotCounterpart      = errors.New("only the counterpart can confirm or dispute a logged exchange")
	ErrNotLogger           = errors.New("only the logger can nudge or cancel a pending exchange")
	ErrAlreadyProcessed    = errors.New("transaction has already been processed")
	ErrNudgeTooSoon        = errors.New("a reminder was sent recently, try again later")
	ErrSelfExchange        = errors.New("giver and receiver must be different profiles")
)
