package domain

import "testing"

func testMatch() *Match {
	return &Match{
		ID:    "m1",
		State: MatchActive,
		SeatA: Seat{
			Wallet: "alice",
			Cards:  Hand{{Rank: "2", Suit: SuitSpades}, {Rank: "3", Suit: SuitSpades}, {Rank: "4", Suit: SuitSpades}},
		},
		SeatB: Seat{
			Wallet: "bob",
			Cards:  Hand{{Rank: "J", Suit: SuitHearts}, {Rank: "Q", Suit: SuitHearts}, {Rank: "K", Suit: SuitHearts}},
		},
	}
}

func TestSeatOf(t *testing.T) {
	m := testMatch()
	if s := m.SeatOf("alice"); s == nil || s.Wallet != "alice" {
		t.Fatalf("SeatOf(alice) = %+v", s)
	}
	if s := m.SeatOf("carol"); s != nil {
		t.Fatalf("SeatOf(carol) = %+v, want nil", s)
	}
	if s := m.OpponentOf("alice"); s == nil || s.Wallet != "bob" {
		t.Fatalf("OpponentOf(alice) = %+v", s)
	}
	if s := m.OpponentOf("carol"); s != nil {
		t.Fatalf("OpponentOf(carol) = %+v, want nil", s)
	}
}

func TestViewForHidesUnreadyOpponentCards(t *testing.T) {
	m := testMatch()

	v := m.ViewFor("alice")
	if v.SeatA.Cards == (Hand{}) {
		t.Fatal("own cards were redacted")
	}
	if v.SeatB.Cards != (Hand{}) {
		t.Fatal("unready opponent cards were exposed")
	}

	// the original match must be untouched
	if m.SeatB.Cards == (Hand{}) {
		t.Fatal("ViewFor mutated the source match")
	}
}

func TestViewForShowsReadyOpponentCards(t *testing.T) {
	m := testMatch()
	m.SeatB.Ready = true

	v := m.ViewFor("alice")
	if v.SeatB.Cards == (Hand{}) {
		t.Fatal("ready opponent cards were redacted")
	}
}

func TestViewForFinishedExposesEverything(t *testing.T) {
	m := testMatch()
	m.State = MatchFinished

	v := m.ViewFor("alice")
	if v.SeatA.Cards == (Hand{}) || v.SeatB.Cards == (Hand{}) {
		t.Fatal("finished match hides cards")
	}
}
