package repository

import (
	"context"
	"encoding/json"
	"errors"

	"cardclash/internal/domain"
	"cardclash/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRepository is the durable MatchStore. The full match snapshot is kept
// as JSONB; the state column exists for operational queries only.
type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.Match, error) {
	var data []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM matches WHERE id = $1`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	var m domain.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepository) Save(ctx context.Context, m *domain.Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO matches (id, state, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, data = EXCLUDED.data`,
		m.ID, string(m.State), data,
	)
	return err
}
