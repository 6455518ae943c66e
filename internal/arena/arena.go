// Package arena drives the match lifecycle: it joins the ledger and the
// matchmaking queue on the way in, deals hands when two tickets pair, runs
// the readiness and resolution timers, and hands finished matches to the
// progression updater.
package arena

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"cardclash/internal/domain"
	"cardclash/internal/hand"
	"cardclash/internal/ledger"
	"cardclash/internal/logger"
	"cardclash/internal/progression"
	"cardclash/internal/queue"
	"cardclash/internal/store"

	"github.com/google/uuid"
)

// ErrShuttingDown is returned for queue requests after Shutdown.
var ErrShuttingDown = errors.New("arena is shutting down")

// Config carries the lifecycle timings. ReadyDelay models the dealing-in
// animation before opponent cards may be revealed; ResolveDelay is the time
// from match creation to scoring. QueueTimeout auto-cancels a ticket that
// found no opponent; zero disables it.
type Config struct {
	ReadyDelay   time.Duration
	ResolveDelay time.Duration
	QueueTimeout time.Duration
}

// DefaultConfig mirrors the pacing of the original client animations.
func DefaultConfig() Config {
	return Config{
		ReadyDelay:   800 * time.Millisecond,
		ResolveDelay: 2500 * time.Millisecond,
		QueueTimeout: 60 * time.Second,
	}
}

// QueueStatus reports what happened to a queue request.
type QueueStatus string

const (
	StatusQueued  QueueStatus = "queued"
	StatusMatched QueueStatus = "matched"
)

// QueueOutcome is returned from Queue: either a waiting ticket or, when the
// request completed a pair (or asked for a bot), the created match.
type QueueOutcome struct {
	Status   QueueStatus   `json:"status"`
	TicketID string        `json:"ticket_id,omitempty"`
	Match    *domain.Match `json:"match,omitempty"`
}

// Arena owns the queue-to-resolution flow. Timers are tracked per match and
// per ticket so shutdown can cancel all deferred work; a started match is
// never cancellable by player action.
type Arena struct {
	cfg      Config
	profiles store.ProfileStore
	matches  store.MatchStore
	history  store.HistorySink
	ledger   *ledger.Ledger
	queue    *queue.Queue
	dealer   *hand.Dealer
	notifier Notifier
	bots     *BotFactory
	updater  *progression.Updater

	mu          sync.Mutex
	matchTimers map[string][]*time.Timer
	queueTimers map[string]*time.Timer
	closed      bool
}

// New wires an arena. history and notifier may be nil.
func New(cfg Config, profiles store.ProfileStore, matches store.MatchStore, history store.HistorySink, l *ledger.Ledger, q *queue.Queue, notifier Notifier) *Arena {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Arena{
		cfg:         cfg,
		profiles:    profiles,
		matches:     matches,
		history:     history,
		ledger:      l,
		queue:       q,
		dealer:      hand.NewDealer(),
		notifier:    notifier,
		bots:        NewBotFactory(rand.New(rand.NewSource(time.Now().UnixNano()))),
		updater:     progression.NewUpdater(profiles, l),
		matchTimers: make(map[string][]*time.Timer),
		queueTimers: make(map[string]*time.Timer),
	}
}

// Queue reserves the stake, enqueues a ticket and attempts to pair it. With
// vsBot set the queue is skipped entirely and a bot match starts at once.
func (a *Arena) Queue(ctx context.Context, wallet string, stake int64, vsBot bool) (*QueueOutcome, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrShuttingDown
	}
	a.mu.Unlock()

	ticket := &domain.QueueTicket{
		ID:         uuid.NewString(),
		Wallet:     wallet,
		Stake:      stake,
		EnqueuedAt: time.Now(),
	}

	if err := a.ledger.Reserve(ctx, wallet, ticket.ID, stake); err != nil {
		return nil, err
	}

	if vsBot {
		m, err := a.createMatch(ctx, ticket, nil)
		if err != nil {
			if _, rerr := a.ledger.Refund(ctx, ticket.ID); rerr != nil {
				logger.Error("refund after failed bot match", "ticket", ticket.ID, "error", rerr)
			}
			return nil, err
		}
		return &QueueOutcome{Status: StatusMatched, TicketID: ticket.ID, Match: m}, nil
	}

	if err := a.queue.Enqueue(ticket); err != nil {
		if _, rerr := a.ledger.Refund(ctx, ticket.ID); rerr != nil {
			logger.Error("refund after rejected enqueue", "ticket", ticket.ID, "error", rerr)
		}
		return nil, err
	}
	a.scheduleQueueTimeout(ticket)

	ta, tb, ok := a.queue.TryPair(stake)
	if !ok {
		return &QueueOutcome{Status: StatusQueued, TicketID: ticket.ID}, nil
	}

	m, err := a.createMatch(ctx, ta, tb)
	if err != nil {
		// Holds are still open; give both players their stake back rather
		// than leaving tickets in limbo.
		for _, t := range []*domain.QueueTicket{ta, tb} {
			if _, rerr := a.ledger.Refund(ctx, t.ID); rerr != nil {
				logger.Error("refund after failed pairing", "ticket", t.ID, "error", rerr)
			}
		}
		return nil, err
	}
	// Under concurrent enqueues the popped pair may be two older tickets
	// that do not include this request; the requester then keeps waiting
	// and learns about its own match through the notifier.
	if m.SeatOf(wallet) == nil {
		return &QueueOutcome{Status: StatusQueued, TicketID: ticket.ID}, nil
	}
	return &QueueOutcome{Status: StatusMatched, TicketID: ticket.ID, Match: m}, nil
}

// Cancel removes the wallet's waiting ticket and refunds its hold. Reports
// whether a ticket was found; a ticket that already paired is not found.
func (a *Arena) Cancel(ctx context.Context, wallet string) (bool, error) {
	if t, ok := a.queue.TicketFor(wallet); ok {
		a.stopQueueTimeout(t.ID)
	}
	return a.queue.Cancel(ctx, wallet)
}

// GetMatch returns the match by id or store.ErrNotFound.
func (a *Arena) GetMatch(ctx context.Context, id string) (*domain.Match, error) {
	return a.matches.Get(ctx, id)
}

// createMatch turns a paired ticket (or a lone ticket plus a synthetic bot
// seat) into an active match: seats filled, hands dealt, holds consumed,
// timers armed.
func (a *Arena) createMatch(ctx context.Context, ta, tb *domain.QueueTicket) (*domain.Match, error) {
	seatA, err := a.seatFor(ctx, ta)
	if err != nil {
		return nil, err
	}

	var seatB domain.Seat
	mode := "pvp"
	if tb == nil {
		seatB = a.bots.Seat()
		seatB.Cards = a.dealer.Deal()
		mode = "bot"
	} else {
		seatB, err = a.seatFor(ctx, tb)
		if err != nil {
			return nil, err
		}
	}

	m := &domain.Match{
		ID:        uuid.NewString(),
		Stake:     ta.Stake,
		Pot:       ta.Stake * 2,
		State:     domain.MatchActive,
		SeatA:     seatA,
		SeatB:     seatB,
		CreatedAt: time.Now(),
	}

	// The match must exist before any hold is closed: on a failed save the
	// caller refunds the still-open holds, and a consumed hold cannot be
	// refunded.
	if err := a.matches.Save(ctx, m); err != nil {
		return nil, err
	}

	// Stakes fold into the pot: holds are closed without a refund. A false
	// return here means a racing path already released the hold, which the
	// ledger treats as benign.
	a.ledger.Consume(ctx, ta.ID)
	a.stopQueueTimeout(ta.ID)
	if tb != nil {
		a.ledger.Consume(ctx, tb.ID)
		a.stopQueueTimeout(tb.ID)
	}

	matchesStarted.WithLabelValues(mode).Inc()
	logger.Info("match created", "match", m.ID, "stake", m.Stake, "mode", mode,
		"seat_a", m.SeatA.Wallet, "seat_b", m.SeatB.Wallet)
	a.notifier.Publish(EventInitialized, m)

	a.armMatchTimers(m.ID)
	return m, nil
}

func (a *Arena) seatFor(ctx context.Context, t *domain.QueueTicket) (domain.Seat, error) {
	p, err := a.profiles.GetOrCreate(ctx, t.Wallet)
	if err != nil {
		return domain.Seat{}, err
	}
	return domain.Seat{
		Wallet:   p.Wallet,
		Username: p.Username,
		DeckID:   p.DeckID,
		Cards:    a.dealer.Deal(),
	}, nil
}

func (a *Arena) armMatchTimers(matchID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	ready := time.AfterFunc(a.cfg.ReadyDelay, func() {
		a.runTransition(matchID, a.markReady)
	})
	resolve := time.AfterFunc(a.cfg.ResolveDelay, func() {
		a.runTransition(matchID, func(ctx context.Context, id string) error {
			return a.Resolve(ctx, id)
		})
	})
	a.matchTimers[matchID] = []*time.Timer{ready, resolve}
}

// runTransition is the timer entry point. Timers have no caller to report
// to, so errors and panics are logged and the match is left in its last
// consistent state.
func (a *Arena) runTransition(matchID string, fn func(context.Context, string) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("match transition panic", "match", matchID, "panic", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx, matchID); err != nil {
		logger.Error("match transition failed", "match", matchID, "error", err)
	}
}

// markReady forces both seats ready after the dealing-in delay. This is
// presentational pacing, not a correctness gate: the resolver does not
// require ready before scoring.
func (a *Arena) markReady(ctx context.Context, matchID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.matches.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if m.State != domain.MatchActive {
		return nil
	}
	m.SeatA.Ready = true
	m.SeatB.Ready = true
	if err := a.matches.Save(ctx, m); err != nil {
		return err
	}
	a.notifier.Publish(EventStateChanged, m)
	return nil
}

// Resolve scores both hands and finishes the match. It runs at most once per
// match: a second call observes the terminal state and is a no-op. The hands
// were fixed at creation; resolution only scores them.
func (a *Arena) Resolve(ctx context.Context, matchID string) error {
	a.mu.Lock()
	m, err := a.matches.Get(ctx, matchID)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	if m.State != domain.MatchActive {
		a.mu.Unlock()
		return nil
	}

	ra := hand.Evaluate(m.SeatA.Cards)
	rb := hand.Evaluate(m.SeatB.Cards)

	// Equal scores go to seat A. Ties are statistically negligible with the
	// fractional kicker terms but the convention keeps resolution total.
	winner := m.SeatA
	winRes, loseRes := ra, rb
	if rb.Score > ra.Score {
		winner = m.SeatB
		winRes, loseRes = rb, ra
	}

	now := time.Now()
	m.State = domain.MatchFinished
	m.Winner = winner.Wallet
	m.ResultSummary = winRes.Label + " beats " + loseRes.Label
	m.SeatA.Ready = true
	m.SeatB.Ready = true
	m.FinishedAt = &now
	if err := a.matches.Save(ctx, m); err != nil {
		a.mu.Unlock()
		return err
	}
	a.stopMatchTimers(matchID)
	a.mu.Unlock()

	matchesResolved.WithLabelValues(winRes.Label).Inc()
	logger.Info("match resolved", "match", m.ID, "winner", m.Winner,
		"summary", m.ResultSummary)

	// The finished state is already durable; everything below is follow-up
	// on an immutable snapshot.
	a.updater.Apply(ctx, m)
	a.recordHistory(ctx, m)
	a.notifier.Publish(EventResolved, m)
	return nil
}

func (a *Arena) recordHistory(ctx context.Context, m *domain.Match) {
	if a.history == nil {
		return
	}
	for _, seat := range []domain.Seat{m.SeatA, m.SeatB} {
		if seat.Bot {
			continue
		}
		opp := m.OpponentOf(seat.Wallet)
		e := &store.HistoryEntry{
			MatchID:  m.ID,
			Wallet:   seat.Wallet,
			Opponent: opp.Username,
			Stake:    m.Stake,
			Won:      seat.Wallet == m.Winner,
			Summary:  m.ResultSummary,
		}
		if err := a.history.Record(ctx, e); err != nil {
			logger.Warn("match history record failed", "match", m.ID, "wallet", seat.Wallet, "error", err)
		}
	}
}

func (a *Arena) scheduleQueueTimeout(t *domain.QueueTicket) {
	if a.cfg.QueueTimeout <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	ticketID, wallet := t.ID, t.Wallet
	a.queueTimers[ticketID] = time.AfterFunc(a.cfg.QueueTimeout, func() {
		a.mu.Lock()
		delete(a.queueTimers, ticketID)
		a.mu.Unlock()

		// The wallet may have cancelled and re-queued since this timer was
		// armed; only cancel the ticket the timer belongs to.
		if cur, ok := a.queue.TicketFor(wallet); !ok || cur.ID != ticketID {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		found, err := a.queue.Cancel(ctx, wallet)
		if err != nil {
			logger.Error("queue timeout cancel failed", "ticket", ticketID, "error", err)
			return
		}
		if found {
			logger.Info("queue ticket timed out, no opponent found", "ticket", ticketID, "wallet", wallet)
		}
	})
}

func (a *Arena) stopQueueTimeout(ticketID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.queueTimers[ticketID]; ok {
		t.Stop()
		delete(a.queueTimers, ticketID)
	}
}

// stopMatchTimers must be called with a.mu held.
func (a *Arena) stopMatchTimers(matchID string) {
	for _, t := range a.matchTimers[matchID] {
		t.Stop()
	}
	delete(a.matchTimers, matchID)
}

// Shutdown cancels all pending timers. In-flight matches stay queryable but
// receive no further transitions.
func (a *Arena) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	for id, timers := range a.matchTimers {
		for _, t := range timers {
			t.Stop()
		}
		delete(a.matchTimers, id)
	}
	for id, t := range a.queueTimers {
		t.Stop()
		delete(a.queueTimers, id)
	}
}
