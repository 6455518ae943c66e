package domain

import "time"

// MatchState is the lifecycle state of a match. Matches are only created
// already paired, so there is no queued state on the match itself: a player
// waiting for an opponent is represented by a QueueTicket, not a Match.
type MatchState string

const (
	MatchActive    MatchState = "active"
	MatchFinished  MatchState = "finished"
	MatchCancelled MatchState = "cancelled"
)

// Seat is one player's slot within a match.
type Seat struct {
	Wallet   string `json:"wallet"`
	Username string `json:"username"`
	DeckID   string `json:"deck_id"`
	Cards    Hand   `json:"cards"`
	Ready    bool   `json:"ready"`
	Bot      bool   `json:"bot,omitempty"`
}

// Match is a two-seat wagered card match. Pot is always twice the stake.
// Winner is set exactly once, atomically with the transition to finished,
// and a finished match is never mutated again.
type Match struct {
	ID            string     `json:"id"`
	Stake         int64      `json:"stake"`
	Pot           int64      `json:"pot"`
	State         MatchState `json:"state"`
	SeatA         Seat       `json:"seat_a"`
	SeatB         Seat       `json:"seat_b"`
	Winner        string     `json:"winner,omitempty"`
	ResultSummary string     `json:"result_summary,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// SeatOf returns the seat occupied by wallet, or nil.
func (m *Match) SeatOf(wallet string) *Seat {
	if m.SeatA.Wallet == wallet {
		return &m.SeatA
	}
	if m.SeatB.Wallet == wallet {
		return &m.SeatB
	}
	return nil
}

// ViewFor returns a copy of the match as wallet is allowed to see it: the
// opponent's cards are blanked until that seat is ready. Finished matches
// always expose both hands.
func (m *Match) ViewFor(wallet string) *Match {
	cp := *m
	if cp.State == MatchFinished {
		return &cp
	}
	if opp := cp.OpponentOf(wallet); opp != nil && !opp.Ready {
		if cp.SeatA.Wallet == opp.Wallet {
			cp.SeatA.Cards = Hand{}
		} else {
			cp.SeatB.Cards = Hand{}
		}
	}
	return &cp
}

// OpponentOf returns the other seat relative to wallet, or nil if the wallet
// is not seated in this match.
func (m *Match) OpponentOf(wallet string) *Seat {
	if m.SeatA.Wallet == wallet {
		return &m.SeatB
	}
	if m.SeatB.Wallet == wallet {
		return &m.SeatA
	}
	return nil
}
