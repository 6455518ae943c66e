// Package store defines the narrow storage contracts the game core depends
// on, plus an in-memory implementation used in tests and single-node demo
// deployments. Durable implementations live in internal/repository.
package store

import (
	"context"
	"errors"

	"cardclash/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ProfileStore is the profile storage collaborator. It must be
// read-your-writes consistent within a single process.
type ProfileStore interface {
	// GetOrCreate returns the profile for wallet, creating it lazily with
	// default progression values on first reference.
	GetOrCreate(ctx context.Context, wallet string) (*domain.Profile, error)
	// Get returns the profile for wallet or ErrNotFound, never creating one.
	Get(ctx context.Context, wallet string) (*domain.Profile, error)
	// Save persists the full profile record.
	Save(ctx context.Context, p *domain.Profile) error
}

// MatchStore is the match storage collaborator.
type MatchStore interface {
	// Get returns the match by id or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Match, error)
	// Save persists the full match record.
	Save(ctx context.Context, m *domain.Match) error
}

// HistoryEntry is one finished match from one participant's point of view.
type HistoryEntry struct {
	MatchID  string `json:"match_id"`
	Wallet   string `json:"wallet"`
	Opponent string `json:"opponent"`
	Stake    int64  `json:"stake"`
	Won      bool   `json:"won"`
	Summary  string `json:"summary"`
}

// LeaderboardEntry is one row of the wins-ranked leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Wallet   string `json:"wallet"`
	Username string `json:"username"`
	Elo      int64  `json:"elo"`
	Level    int64  `json:"level"`
	Wins     int64  `json:"wins"`
}

// HistorySink records finished matches for history and leaderboard queries.
// Recording is best-effort: the resolver does not fail a match over it.
type HistorySink interface {
	Record(ctx context.Context, e *HistoryEntry) error
	ByWallet(ctx context.Context, wallet string, limit int) ([]*HistoryEntry, error)
}

// Leaderboard serves the wins-ranked top players.
type Leaderboard interface {
	Top(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}
