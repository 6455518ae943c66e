package domain

// Rank of a playing card, low to high: 2..10, J, Q, K, A.
type Rank string

// Suit of a playing card.
type Suit string

const (
	SuitSpades   Suit = "♠"
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
)

// Ranks lists all card ranks in ascending order. The index of a rank within
// this slice is its strength (0..12).
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Suits lists the four suits.
var Suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Card is a single playing card.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// Index returns the strength index of the card's rank (0 for 2, 12 for A),
// or -1 for an unknown rank.
func (c Card) Index() int {
	for i, r := range Ranks {
		if r == c.Rank {
			return i
		}
	}
	return -1
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// Hand is the fixed three-card hand dealt to one seat.
type Hand [3]Card
