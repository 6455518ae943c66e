package hand

import (
	"testing"

	"cardclash/internal/domain"
)

func card(rank domain.Rank, suit domain.Suit) domain.Card {
	return domain.Card{Rank: rank, Suit: suit}
}

func hand(a, b, c domain.Card) domain.Hand {
	return domain.Hand{a, b, c}
}

func TestEvaluateCategories(t *testing.T) {
	s, h, d := domain.SuitSpades, domain.SuitHearts, domain.SuitDiamonds

	cases := []struct {
		name  string
		hand  domain.Hand
		label string
	}{
		{"straight flush", hand(card("4", s), card("5", s), card("6", s)), "Straight Flush"},
		{"three of a kind", hand(card("9", s), card("9", h), card("9", d)), "Three of a Kind"},
		{"straight mixed suits", hand(card("J", s), card("Q", h), card("K", d)), "Straight"},
		{"ace high straight", hand(card("Q", s), card("K", h), card("A", d)), "Straight"},
		{"flush", hand(card("2", h), card("7", h), card("K", h)), "Flush"},
		{"pair", hand(card("8", s), card("8", h), card("2", d)), "Pair"},
		{"high card", hand(card("2", s), card("9", h), card("K", d)), "High Card"},
		{"ace does not wrap", hand(card("A", s), card("2", h), card("3", d)), "High Card"},
		{"ace wrap same suit is flush", hand(card("A", s), card("2", s), card("3", s)), "Flush"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.hand)
			if got.Label != tc.label {
				t.Fatalf("Evaluate(%v) = %q, want %q", tc.hand, got.Label, tc.label)
			}
		})
	}
}

func TestEvaluateWithinCategoryOrdering(t *testing.T) {
	s, h, d := domain.SuitSpades, domain.SuitHearts, domain.SuitDiamonds

	pairs := []struct {
		name     string
		stronger domain.Hand
		weaker   domain.Hand
	}{
		{
			"higher straight wins",
			hand(card("10", s), card("J", h), card("Q", d)),
			hand(card("9", s), card("10", h), card("J", d)),
		},
		{
			"higher trips win",
			hand(card("K", s), card("K", h), card("K", d)),
			hand(card("Q", s), card("Q", h), card("Q", d)),
		},
		{
			"pair rank dominates kicker",
			hand(card("4", s), card("4", h), card("2", d)),
			hand(card("3", s), card("3", h), card("A", d)),
		},
		{
			"same pair higher kicker wins",
			hand(card("7", s), card("7", h), card("K", d)),
			hand(card("7", d), card("7", s), card("Q", h)),
		},
		{
			"high card top rank wins with equal kickers",
			hand(card("A", s), card("9", h), card("5", d)),
			hand(card("K", s), card("9", h), card("5", d)),
		},
	}

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			a, b := Evaluate(tc.stronger), Evaluate(tc.weaker)
			if a.Score <= b.Score {
				t.Fatalf("%v (%.3f) should outrank %v (%.3f)",
					tc.stronger, a.Score, tc.weaker, b.Score)
			}
		})
	}
}

// Enumerates every 3-card combination of a 52-card deck and checks that the
// score bands of the six categories never overlap: the weakest hand of a
// category still beats the strongest hand of every category below it.
func TestEvaluateCategoryDominance(t *testing.T) {
	var deck []domain.Card
	for _, suit := range domain.Suits {
		for _, rank := range domain.Ranks {
			deck = append(deck, domain.Card{Rank: rank, Suit: suit})
		}
	}

	order := []string{"High Card", "Pair", "Flush", "Straight", "Three of a Kind", "Straight Flush"}
	rank := make(map[string]int, len(order))
	for i, l := range order {
		rank[l] = i
	}

	minScore := make([]float64, len(order))
	maxScore := make([]float64, len(order))
	seen := make([]bool, len(order))

	total := 0
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			for k := j + 1; k < len(deck); k++ {
				res := Evaluate(domain.Hand{deck[i], deck[j], deck[k]})
				idx, ok := rank[res.Label]
				if !ok {
					t.Fatalf("unknown label %q", res.Label)
				}
				if !seen[idx] {
					minScore[idx], maxScore[idx] = res.Score, res.Score
					seen[idx] = true
				} else {
					if res.Score < minScore[idx] {
						minScore[idx] = res.Score
					}
					if res.Score > maxScore[idx] {
						maxScore[idx] = res.Score
					}
				}
				total++
			}
		}
	}

	if total != 22100 {
		t.Fatalf("enumerated %d hands, want 22100", total)
	}
	for i := range order {
		if !seen[i] {
			t.Fatalf("category %q never produced", order[i])
		}
	}
	for i := 1; i < len(order); i++ {
		if minScore[i] <= maxScore[i-1] {
			t.Fatalf("category %q (min %.3f) overlaps %q (max %.3f)",
				order[i], minScore[i], order[i-1], maxScore[i-1])
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	h := domain.Hand{
		card("7", domain.SuitSpades),
		card("J", domain.SuitHearts),
		card("2", domain.SuitClubs),
	}
	first := Evaluate(h)
	for i := 0; i < 100; i++ {
		if got := Evaluate(h); got != first {
			t.Fatalf("Evaluate not deterministic: %v vs %v", got, first)
		}
	}
}

func TestEvaluatePanicsOnUnknownRank(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown rank")
		}
	}()
	Evaluate(domain.Hand{{Rank: "1", Suit: domain.SuitSpades}})
}
