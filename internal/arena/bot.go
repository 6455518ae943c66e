package arena

import (
	"fmt"
	"math/rand"
	"sync"

	"cardclash/internal/domain"
)

var botNames = []string{
	"Maverick", "Vega", "Orbit", "Tango", "Raptor",
	"Echo", "Nova", "Bishop", "Jax", "Cinder",
}

// BotFactory produces synthetic opponents for bot matches. A bot seat has no
// wallet balance, no hold, and never receives progression.
type BotFactory struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBotFactory(rng *rand.Rand) *BotFactory {
	return &BotFactory{rng: rng}
}

// Seat returns a fresh bot seat with a CPU_-prefixed username.
func (f *BotFactory) Seat() domain.Seat {
	f.mu.Lock()
	name := botNames[f.rng.Intn(len(botNames))]
	n := f.rng.Intn(1000)
	f.mu.Unlock()

	username := fmt.Sprintf("CPU_%s%03d", name, n)
	return domain.Seat{
		Wallet:   "bot:" + username,
		Username: username,
		DeckID:   domain.DefaultDeckID,
		Bot:      true,
	}
}
