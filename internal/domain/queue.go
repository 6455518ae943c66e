package domain

import "time"

// QueueTicket is a queued request to be paired, scoped to one wallet and one
// stake tier. A wallet has at most one outstanding ticket at a time across
// all stakes. The ticket is destroyed when it is paired or cancelled.
type QueueTicket struct {
	ID         string    `json:"id"`
	Wallet     string    `json:"wallet"`
	Stake      int64     `json:"stake"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// CreditHold is a reservation of staked funds tied to a queue ticket. It
// exists between "stake reserved" and exactly one of "consumed into a match"
// or "refunded to the wallet" - never both, never neither.
type CreditHold struct {
	TicketID string `json:"ticket_id"`
	Wallet   string `json:"wallet"`
	Amount   int64  `json:"amount"`
}
