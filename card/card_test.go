package card

import (
	"math/rand"
	"testing"
)

func TestMakeRoundTrip(t *testing.T) {
	for s := Heart; s <= Spade; s++ {
		for rank := 2; rank <= 14; rank++ {
			c := Make(s, rank)
			if c == CardInvalid {
				t.Fatalf("Make(%v, %d) returned invalid", s, rank)
			}
			if c.Rank() != rank {
				t.Fatalf("rank mismatch: got %d, want %d", c.Rank(), rank)
			}
			if c.Suit() != s {
				t.Fatalf("suit mismatch: got %v, want %v", c.Suit(), s)
			}
		}
	}
	if Make(Heart, 1) != CardInvalid {
		t.Fatalf("rank 1 should be invalid, ace is 14")
	}
	if Make(Heart, 15) != CardInvalid {
		t.Fatalf("rank 15 should be invalid")
	}
}

func TestEnumMatchesEncoding(t *testing.T) {
	if CardHeartA != Make(Heart, 14) {
		t.Fatalf("CardHeartA encoding mismatch: %x", byte(CardHeartA))
	}
	if CardSpade2 != Make(Spade, 2) {
		t.Fatalf("CardSpade2 encoding mismatch: %x", byte(CardSpade2))
	}
	if CardDiamondK.Rank() != 13 || CardDiamondK.Suit() != Diamond {
		t.Fatalf("CardDiamondK decoded wrong: %v", CardDiamondK)
	}
}

func TestCardID(t *testing.T) {
	if got := CardHeartQ.ID(); got != "♥-12" {
		t.Fatalf("unexpected id: %q", got)
	}
}

func TestPopCards(t *testing.T) {
	var ds CardList
	ds.Init([]Card{CardHeart2, CardHeart3, CardHeart4})

	cards, ok := ds.PopCards(2)
	if !ok || len(cards) != 2 {
		t.Fatalf("PopCards failed: ok=%v len=%d", ok, len(cards))
	}
	if ds.Count() != 1 {
		t.Fatalf("expected 1 card left, got %d", ds.Count())
	}
	if _, ok := ds.PopCards(2); ok {
		t.Fatalf("PopCards should fail when short")
	}
	if c := ds.PopCard(); c == CardInvalid {
		t.Fatalf("PopCard returned invalid on non-empty list")
	}
	if c := ds.PopCard(); c != CardInvalid {
		t.Fatalf("PopCard on empty list should return invalid, got %v", c)
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	base := []Card{CardHeart2, CardHeart3, CardHeart4, CardHeart5, CardHeart6, CardHeart7}

	var a, b CardList
	a.Init(base)
	b.Init(base)
	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different order at %d: %v vs %v", i, a[i], b[i])
		}
	}
}
