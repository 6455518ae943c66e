package repository

import (
	"context"

	"cardclash/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchHistoryRepository records finished matches per participant and serves
// the history and leaderboard queries.
type MatchHistoryRepository struct {
	db *pgxpool.Pool
}

func NewMatchHistoryRepository(db *pgxpool.Pool) *MatchHistoryRepository {
	return &MatchHistoryRepository{db: db}
}

func (r *MatchHistoryRepository) Record(ctx context.Context, e *store.HistoryEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO match_history (match_id, wallet, opponent, stake, won, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.MatchID, e.Wallet, e.Opponent, e.Stake, e.Won, e.Summary,
	)
	return err
}

func (r *MatchHistoryRepository) ByWallet(ctx context.Context, wallet string, limit int) ([]*store.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT match_id, wallet, opponent, stake, won, summary
		 FROM match_history
		 WHERE wallet = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		wallet, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*store.HistoryEntry
	for rows.Next() {
		var e store.HistoryEntry
		if err := rows.Scan(&e.MatchID, &e.Wallet, &e.Opponent, &e.Stake, &e.Won, &e.Summary); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Top returns the wins-ranked leaderboard.
func (r *MatchHistoryRepository) Top(ctx context.Context, limit int) ([]*store.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT p.wallet, p.username, p.elo, p.level, p.wins
		 FROM profiles p
		 ORDER BY p.wins DESC, p.elo DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*store.LeaderboardEntry
	rank := 1
	for rows.Next() {
		e := store.LeaderboardEntry{Rank: rank}
		if err := rows.Scan(&e.Wallet, &e.Username, &e.Elo, &e.Level, &e.Wins); err != nil {
			return nil, err
		}
		out = append(out, &e)
		rank++
	}
	return out, rows.Err()
}
