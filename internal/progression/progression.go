// Package progression applies post-match rewards: pot payout, XP and levels,
// ELO and streaks. The resolver calls Apply exactly once per match; the
// single-resolution guard lives there, not here.
package progression

import (
	"context"

	"cardclash/internal/domain"
	"cardclash/internal/ledger"
	"cardclash/internal/logger"
	"cardclash/internal/store"
)

// Reward amounts. XP thresholds grow by a fixed step per level, uncapped.
const (
	XPWin  = 200
	XPLoss = 100

	EloWin  = 12
	EloLoss = -8
)

// Updater mutates both participants' profiles when a match resolves.
type Updater struct {
	profiles store.ProfileStore
	ledger   *ledger.Ledger
}

func NewUpdater(profiles store.ProfileStore, l *ledger.Ledger) *Updater {
	return &Updater{profiles: profiles, ledger: l}
}

// Apply grants rewards to every real participant of a finished match. Bot
// seats never receive progression or payout. The two profiles are disjoint,
// so per-seat failures are logged and do not block the other seat.
func (u *Updater) Apply(ctx context.Context, m *domain.Match) {
	for _, seat := range []domain.Seat{m.SeatA, m.SeatB} {
		if seat.Bot {
			continue
		}
		if err := u.applySeat(ctx, m, seat); err != nil {
			logger.Error("progression update failed",
				"match", m.ID, "wallet", seat.Wallet, "error", err)
		}
	}
}

func (u *Updater) applySeat(ctx context.Context, m *domain.Match, seat domain.Seat) error {
	isWinner := seat.Wallet == m.Winner

	// Pot payout goes through the ledger, never by raw balance writes. The
	// loser's stake was consumed into the pot and is not refunded.
	if isWinner && m.Stake > 0 {
		if _, err := u.ledger.Adjust(ctx, seat.Wallet, m.Pot); err != nil {
			return err
		}
	}

	p, err := u.profiles.GetOrCreate(ctx, seat.Wallet)
	if err != nil {
		return err
	}

	gain := int64(XPLoss)
	if isWinner {
		gain = XPWin
	}
	p.XP += gain
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel += domain.XPLevelGrowth
	}

	if isWinner {
		p.Elo += EloWin
	} else {
		p.Elo += EloLoss
		if p.Elo < domain.EloFloor {
			p.Elo = domain.EloFloor
		}
	}

	p.Stats.Matches++
	if isWinner {
		p.Stats.Wins++
		p.Stats.WinStreak++
	} else {
		p.Stats.Losses++
		p.Stats.WinStreak = 0
	}

	return u.profiles.Save(ctx, p)
}
