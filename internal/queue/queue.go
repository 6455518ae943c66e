// Package queue pairs waiting tickets within stake partitions, first-in
// first-paired. There is no cross-stake pairing and no priority logic:
// fairness comes purely from tier separation and FIFO order.
package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"cardclash/internal/domain"
	"cardclash/internal/ledger"
	"cardclash/internal/logger"
)

// ErrAlreadyQueued is returned when a wallet already has an outstanding
// ticket in any stake partition.
var ErrAlreadyQueued = errors.New("wallet already queued")

// Queue holds stake-partitioned ordered ticket lists plus a wallet index for
// cancellation. One mutex covers all partitions: TryPair and Cancel are the
// unit of atomicity, so a ticket is never both paired and cancelled.
type Queue struct {
	mu         sync.Mutex
	partitions map[int64][]*domain.QueueTicket
	byWallet   map[string]*domain.QueueTicket
	ledger     *ledger.Ledger
}

func New(l *ledger.Ledger) *Queue {
	return &Queue{
		partitions: make(map[int64][]*domain.QueueTicket),
		byWallet:   make(map[string]*domain.QueueTicket),
		ledger:     l,
	}
}

// Enqueue appends the ticket to its stake partition and the wallet index.
// The caller must have reserved the ticket's stake with the ledger first;
// the queue never touches balances on the way in.
func (q *Queue) Enqueue(t *domain.QueueTicket) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.byWallet[t.Wallet]; ok {
		return ErrAlreadyQueued
	}

	part := q.partitions[t.Stake]
	// Insert keeping (enqueuedAt, id) order; ties on the timestamp are
	// broken by ticket id so pairing order is deterministic.
	i := len(part)
	for i > 0 {
		prev := part[i-1]
		if prev.EnqueuedAt.Before(t.EnqueuedAt) ||
			(prev.EnqueuedAt.Equal(t.EnqueuedAt) && prev.ID < t.ID) {
			break
		}
		i--
	}
	part = append(part, nil)
	copy(part[i+1:], part[i:])
	part[i] = t
	q.partitions[t.Stake] = part
	q.byWallet[t.Wallet] = t
	depthGauge.WithLabelValues(strconv.FormatInt(t.Stake, 10)).Set(float64(len(part)))
	return nil
}

// TryPair pops the two oldest tickets of the stake partition, or reports
// false when fewer than two are waiting. This is the single serialization
// point that keeps a ticket from being matched twice.
func (q *Queue) TryPair(stake int64) (a, b *domain.QueueTicket, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	part := q.partitions[stake]
	if len(part) < 2 {
		return nil, nil, false
	}
	a, b = part[0], part[1]
	q.partitions[stake] = part[2:]
	delete(q.byWallet, a.Wallet)
	delete(q.byWallet, b.Wallet)
	depthGauge.WithLabelValues(strconv.FormatInt(stake, 10)).Set(float64(len(part) - 2))
	return a, b, true
}

// Cancel removes the wallet's outstanding ticket, if any, and refunds its
// hold. Exactly one of pairing and cancellation ever succeeds for a ticket;
// the loser of that race observes false here or a missing-hold no-op.
func (q *Queue) Cancel(ctx context.Context, wallet string) (bool, error) {
	q.mu.Lock()
	t, ok := q.byWallet[wallet]
	if !ok {
		q.mu.Unlock()
		return false, nil
	}
	delete(q.byWallet, wallet)
	part := q.partitions[t.Stake]
	for i, pt := range part {
		if pt.ID == t.ID {
			q.partitions[t.Stake] = append(part[:i], part[i+1:]...)
			break
		}
	}
	depthGauge.WithLabelValues(strconv.FormatInt(t.Stake, 10)).Set(float64(len(q.partitions[t.Stake])))
	q.mu.Unlock()

	refunded, err := q.ledger.Refund(ctx, t.ID)
	if err != nil {
		return true, err
	}
	if !refunded {
		logger.Warn("cancelled ticket had no hold", "ticket", t.ID, "wallet", wallet)
	}
	return true, nil
}

// TicketFor returns the wallet's outstanding ticket, if any.
func (q *Queue) TicketFor(wallet string) (*domain.QueueTicket, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.byWallet[wallet]
	if !ok {
		return nil, false
	}
	cp := *t
	return &cp, true
}

// Depth returns how many tickets are waiting in the stake partition.
func (q *Queue) Depth(stake int64) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.partitions[stake])
}
