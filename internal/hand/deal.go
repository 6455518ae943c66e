package hand

import (
	"math/rand"
	"sync"
	"time"

	"cardclash/internal/domain"
)

// Dealer draws hands from conceptually independent 52-card decks: cards never
// repeat within one hand, but the same card may appear across seats.
type Dealer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDealer returns a dealer seeded from the clock.
func NewDealer() *Dealer {
	return &Dealer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededDealer returns a dealer with a fixed seed for reproducible deals.
func NewSeededDealer(seed int64) *Dealer {
	return &Dealer{rng: rand.New(rand.NewSource(seed))}
}

// Deal draws three unique cards from a fresh deck.
func (d *Dealer) Deal() domain.Hand {
	d.mu.Lock()
	defer d.mu.Unlock()

	var h domain.Hand
	seen := make(map[int]bool, 3)
	for i := 0; i < 3; {
		n := d.rng.Intn(52)
		if seen[n] {
			continue
		}
		seen[n] = true
		h[i] = domain.Card{Rank: domain.Ranks[n%13], Suit: domain.Suits[n/13]}
		i++
	}
	return h
}
