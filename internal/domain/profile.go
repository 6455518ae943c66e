package domain

import "time"

// Default values for lazily created profiles.
const (
	StartingElo       = 1000
	StartingLevel     = 1
	BaseXPToNextLevel = 500
	XPLevelGrowth     = 200
	EloFloor          = 800
	DefaultDeckID     = "classic"
)

// Stats tracks cumulative match results for a profile.
type Stats struct {
	Matches   int64 `db:"matches" json:"matches"`
	Wins      int64 `db:"wins" json:"wins"`
	Losses    int64 `db:"losses" json:"losses"`
	WinStreak int64 `db:"win_streak" json:"win_streak"`
}

// Profile is the per-wallet player record. The wallet address is the sole
// identity key across the whole system; profiles are created lazily on first
// reference and never destroyed.
type Profile struct {
	Wallet        string    `db:"wallet" json:"wallet"`
	Username      string    `db:"username" json:"username"`
	DeckID        string    `db:"deck_id" json:"deck_id"`
	Credits       int64     `db:"credits" json:"credits"`
	Elo           int64     `db:"elo" json:"elo"`
	Level         int64     `db:"level" json:"level"`
	XP            int64     `db:"xp" json:"xp"`
	XPToNextLevel int64     `db:"xp_to_next_level" json:"xp_to_next_level"`
	Stats         Stats     `json:"stats"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// NewProfile returns a fresh profile with default progression values.
// Starting credits are a deployment policy and passed in by the caller.
func NewProfile(wallet, username string, startingCredits int64) *Profile {
	if username == "" {
		username = shortWallet(wallet)
	}
	return &Profile{
		Wallet:        wallet,
		Username:      username,
		DeckID:        DefaultDeckID,
		Credits:       startingCredits,
		Elo:           StartingElo,
		Level:         StartingLevel,
		XP:            0,
		XPToNextLevel: BaseXPToNextLevel,
		CreatedAt:     time.Now(),
	}
}

func shortWallet(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:6] + "…" + wallet[len(wallet)-4:]
}
