package repository

import (
	"context"
	"errors"

	"cardclash/internal/domain"
	"cardclash/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository is the durable ProfileStore backed by Postgres. Profiles
// are created lazily with an upsert so concurrent first references of the
// same wallet collapse into one row.
type ProfileRepository struct {
	db              *pgxpool.Pool
	startingCredits int64
}

func NewProfileRepository(db *pgxpool.Pool, startingCredits int64) *ProfileRepository {
	return &ProfileRepository{db: db, startingCredits: startingCredits}
}

func (r *ProfileRepository) GetOrCreate(ctx context.Context, wallet string) (*domain.Profile, error) {
	def := domain.NewProfile(wallet, "", r.startingCredits)

	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (wallet, username, deck_id, credits, elo, level, xp, xp_to_next_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (wallet) DO UPDATE SET wallet = EXCLUDED.wallet
		 RETURNING wallet, username, deck_id, credits, elo, level, xp, xp_to_next_level,
		           matches, wins, losses, win_streak, created_at`,
		def.Wallet, def.Username, def.DeckID, def.Credits,
		def.Elo, def.Level, def.XP, def.XPToNextLevel,
	)

	var p domain.Profile
	if err := row.Scan(
		&p.Wallet, &p.Username, &p.DeckID, &p.Credits,
		&p.Elo, &p.Level, &p.XP, &p.XPToNextLevel,
		&p.Stats.Matches, &p.Stats.Wins, &p.Stats.Losses, &p.Stats.WinStreak,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Get(ctx context.Context, wallet string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT wallet, username, deck_id, credits, elo, level, xp, xp_to_next_level,
		        matches, wins, losses, win_streak, created_at
		 FROM profiles
		 WHERE wallet = $1`,
		wallet,
	)

	var p domain.Profile
	if err := row.Scan(
		&p.Wallet, &p.Username, &p.DeckID, &p.Credits,
		&p.Elo, &p.Level, &p.XP, &p.XPToNextLevel,
		&p.Stats.Matches, &p.Stats.Wins, &p.Stats.Losses, &p.Stats.WinStreak,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Save(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET username = $2, deck_id = $3, credits = $4, elo = $5, level = $6,
		     xp = $7, xp_to_next_level = $8, matches = $9, wins = $10,
		     losses = $11, win_streak = $12
		 WHERE wallet = $1`,
		p.Wallet, p.Username, p.DeckID, p.Credits, p.Elo, p.Level,
		p.XP, p.XPToNextLevel, p.Stats.Matches, p.Stats.Wins,
		p.Stats.Losses, p.Stats.WinStreak,
	)
	return err
}
