package store

import (
	"context"
	"sync"

	"cardclash/internal/domain"
)

// MemoryProfiles is a map-backed ProfileStore. Reads return copies so no
// caller ever holds a reference into shared state; every mutation goes
// through Save.
type MemoryProfiles struct {
	mu              sync.RWMutex
	profiles        map[string]domain.Profile
	StartingCredits int64
}

// NewMemoryProfiles returns an empty profile store. New profiles are created
// with startingCredits on first reference.
func NewMemoryProfiles(startingCredits int64) *MemoryProfiles {
	return &MemoryProfiles{
		profiles:        make(map[string]domain.Profile),
		StartingCredits: startingCredits,
	}
}

func (s *MemoryProfiles) GetOrCreate(ctx context.Context, wallet string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[wallet]; ok {
		cp := p
		return &cp, nil
	}
	p := domain.NewProfile(wallet, "", s.StartingCredits)
	s.profiles[wallet] = *p
	cp := *p
	return &cp, nil
}

func (s *MemoryProfiles) Get(ctx context.Context, wallet string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[wallet]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (s *MemoryProfiles) Save(ctx context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Wallet] = *p
	return nil
}

// MemoryMatches is a map-backed MatchStore.
type MemoryMatches struct {
	mu      sync.RWMutex
	matches map[string]domain.Match
}

func NewMemoryMatches() *MemoryMatches {
	return &MemoryMatches{matches: make(map[string]domain.Match)}
}

func (s *MemoryMatches) Get(ctx context.Context, id string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := m
	return &cp, nil
}

func (s *MemoryMatches) Save(ctx context.Context, m *domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = *m
	return nil
}

// MemoryHistory is an append-only in-memory HistorySink.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (s *MemoryHistory) Record(ctx context.Context, e *HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *MemoryHistory) ByWallet(ctx context.Context, wallet string, limit int) ([]*HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*HistoryEntry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].Wallet == wallet {
			cp := s.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
