// Package hand deals and scores the three-card hands that decide a match.
package hand

import (
	"fmt"
	"sort"

	"cardclash/internal/domain"
)

// Hand category base scores. Kicker terms are scaled into the 10-point band
// between bases, so a hand of a better category always outranks any hand of a
// worse one regardless of kickers.
const (
	baseStraightFlush = 60
	baseThreeOfAKind  = 50
	baseStraight      = 40
	baseFlush         = 30
	basePair          = 20
	baseHighCard      = 10

	// Raw kicker terms max out below 30 (pair: 12*2+11/10, high card:
	// 12 + 11/2 + 10/3). Dividing by 3 keeps every kicker strictly under
	// the 10-point gap between category bases.
	kickerScale = 3
)

// Result is the score and human-readable label of an evaluated hand.
type Result struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Evaluate scores a three-card hand. The returned score is a deterministic
// total order: for any two hands, the higher score wins. Ranks count
// 0 (deuce) through 12 (ace); A-2-3 does not wrap around as a straight.
//
// Kicker ordering is an internal convention, not real poker kicker logic;
// it only has to order hands consistently.
func Evaluate(h domain.Hand) Result {
	idx := make([]int, 3)
	for i, c := range h {
		n := c.Index()
		if n < 0 {
			panic(fmt.Sprintf("hand: unknown rank %q", c.Rank))
		}
		idx[i] = n
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	hi, mid, lo := idx[0], idx[1], idx[2]

	flush := h[0].Suit == h[1].Suit && h[1].Suit == h[2].Suit
	distinct := hi != mid && mid != lo
	straight := distinct && hi-lo == 2

	// Highest card counts fully, the second half as much, the third a
	// third as much.
	kicker := float64(hi) + float64(mid)/2 + float64(lo)/3

	switch {
	case straight && flush:
		return Result{baseStraightFlush + kicker/kickerScale, "Straight Flush"}
	case hi == mid && mid == lo:
		return Result{baseThreeOfAKind + kicker/kickerScale, "Three of a Kind"}
	case straight:
		return Result{baseStraight + kicker/kickerScale, "Straight"}
	case flush:
		return Result{baseFlush + kicker/kickerScale, "Flush"}
	case !distinct:
		pairRank, kickerRank := hi, lo
		if mid == lo {
			pairRank, kickerRank = lo, hi
		}
		pairKicker := float64(pairRank)*2 + float64(kickerRank)/10
		return Result{basePair + pairKicker/kickerScale, "Pair"}
	default:
		return Result{baseHighCard + kicker/kickerScale, "High Card"}
	}
}
