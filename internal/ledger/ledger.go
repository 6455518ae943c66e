// Package ledger holds and releases staked credits. It is the only component
// allowed to mutate a profile's balance; everything else goes through the
// four operations here.
package ledger

import (
	"context"
	"errors"
	"sync"

	"cardclash/internal/domain"
	"cardclash/internal/logger"
	"cardclash/internal/store"
)

var (
	// ErrInsufficientFunds is the only user-visible ledger error: the
	// reservation is refused and no ticket is created.
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// Ledger tracks per-wallet balances (in the profile store) plus a table of
// outstanding holds keyed by ticket id. All operations serialize on one
// mutex: balance updates are read-current, compute-next, write-next, and the
// write is the atomicity boundary.
type Ledger struct {
	mu       sync.Mutex
	profiles store.ProfileStore
	holds    map[string]domain.CreditHold
}

func New(profiles store.ProfileStore) *Ledger {
	return &Ledger{
		profiles: profiles,
		holds:    make(map[string]domain.CreditHold),
	}
}

// Reserve atomically deducts amount from the wallet's balance and records a
// hold for ticketID. Fails with ErrInsufficientFunds when the balance does
// not cover the stake.
func (l *Ledger) Reserve(ctx context.Context, wallet, ticketID string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.profiles.GetOrCreate(ctx, wallet)
	if err != nil {
		return err
	}
	if p.Credits < amount {
		return ErrInsufficientFunds
	}
	p.Credits -= amount
	if err := l.profiles.Save(ctx, p); err != nil {
		return err
	}
	l.holds[ticketID] = domain.CreditHold{TicketID: ticketID, Wallet: wallet, Amount: amount}
	return nil
}

// Consume closes the hold without crediting anything back: the funds already
// left the balance at reserve time and are now part of a match pot. Returns
// false when the hold does not exist - callers must tolerate double-consume
// attempts caused by retries.
func (l *Ledger) Consume(ctx context.Context, ticketID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.holds[ticketID]; !ok {
		return false
	}
	delete(l.holds, ticketID)
	return true
}

// Refund removes the hold and credits its amount back to the wallet. Returns
// false when the hold does not exist (already consumed or refunded).
func (l *Ledger) Refund(ctx context.Context, ticketID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.holds[ticketID]
	if !ok {
		return false, nil
	}
	p, err := l.profiles.GetOrCreate(ctx, h.Wallet)
	if err != nil {
		return false, err
	}
	p.Credits += h.Amount
	if err := l.profiles.Save(ctx, p); err != nil {
		return false, err
	}
	delete(l.holds, ticketID)
	return true, nil
}

// Adjust applies a delta outside the hold mechanism (pot payouts). A negative
// delta never drives the balance below zero - the result is clamped.
func (l *Ledger) Adjust(ctx context.Context, wallet string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, err := l.profiles.GetOrCreate(ctx, wallet)
	if err != nil {
		return 0, err
	}
	p.Credits += delta
	if p.Credits < 0 {
		logger.Warn("ledger adjust clamped to zero", "wallet", wallet, "delta", delta)
		p.Credits = 0
	}
	if err := l.profiles.Save(ctx, p); err != nil {
		return 0, err
	}
	return p.Credits, nil
}

// Balance returns the wallet's current balance.
func (l *Ledger) Balance(ctx context.Context, wallet string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, err := l.profiles.GetOrCreate(ctx, wallet)
	if err != nil {
		return 0, err
	}
	return p.Credits, nil
}

// HoldFor returns the outstanding hold for ticketID, if any.
func (l *Ledger) HoldFor(ticketID string) (domain.CreditHold, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.holds[ticketID]
	return h, ok
}
