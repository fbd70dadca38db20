package poker

import (
	"math/rand"
	"reflect"
	"testing"
)

// tupleCard builds a Card from the (rank_int, suit_int) tuples used in the
// scenario table: rank 0=Two..12=Ace, suit 0=Spade..3=Heart.
func tupleCard(rank, suit int) Card {
	return Card{Rank: Rank(rank), Suit: Suit(suit)}
}

func indexesOf(h *EvaluatedHand) (base, kickers []int) {
	base = append([]int{}, h.handBase...)
	kickers = append([]int{}, h.kickers...)
	return base, kickers
}

func TestEvaluate_ConcreteScenarios(t *testing.T) {
	type tuple struct{ rank, suit int }
	tests := []struct {
		name     string
		input    []tuple
		category HandCategory
		handBase []int
		kickers  []int
	}{
		{
			"high card",
			[]tuple{{3, 2}, {4, 1}, {6, 0}, {8, 1}, {10, 2}, {11, 3}, {12, 0}},
			HighCard, []int{6}, []int{5, 4, 3, 2},
		},
		{
			"one pair",
			[]tuple{{1, 1}, {1, 0}, {2, 2}, {4, 1}, {10, 2}, {11, 3}, {12, 2}},
			OnePair, []int{1, 0}, []int{6, 5, 4},
		},
		{
			"two pair",
			[]tuple{{2, 0}, {3, 0}, {4, 0}, {10, 1}, {10, 2}, {11, 1}, {11, 3}},
			TwoPair, []int{6, 5, 4, 3}, []int{2},
		},
		{
			"three of a kind",
			[]tuple{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 3}, {3, 3}, {7, 1}},
			ThreeOfAKind, []int{2, 1, 0}, []int{6, 5},
		},
		{
			"straight",
			[]tuple{{3, 0}, {3, 3}, {4, 2}, {5, 3}, {6, 1}, {7, 1}, {12, 2}},
			Straight, []int{5, 4, 3, 2, 0}, []int{},
		},
		{
			"flush",
			[]tuple{{4, 2}, {6, 2}, {8, 2}, {8, 1}, {8, 3}, {10, 2}, {12, 2}},
			Flush, []int{6, 5, 2, 1, 0}, []int{},
		},
		{
			"full house",
			[]tuple{{0, 1}, {2, 2}, {2, 3}, {5, 1}, {5, 2}, {5, 3}, {10, 1}},
			FullHouse, []int{5, 4, 3, 2, 1}, []int{},
		},
		{
			"four of a kind",
			[]tuple{{3, 1}, {6, 2}, {6, 3}, {6, 1}, {6, 0}, {12, 0}, {12, 1}},
			FourOfAKind, []int{4, 3, 2, 1}, []int{6},
		},
		{
			"straight flush",
			[]tuple{{3, 2}, {8, 2}, {9, 2}, {10, 2}, {11, 1}, {11, 2}, {12, 2}},
			StraightFlush, []int{6, 5, 3, 2, 1}, []int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards := make([]Card, len(tc.input))
			for i, tp := range tc.input {
				cards[i] = tupleCard(tp.rank, tp.suit)
			}
			h := NewEvaluatedHand(cards)

			if h.Category() != tc.category {
				t.Fatalf("category = %s, want %s", h.Category(), tc.category)
			}
			base, kickers := indexesOf(h)
			if !reflect.DeepEqual(base, tc.handBase) {
				t.Errorf("handBase = %v, want %v", base, tc.handBase)
			}
			if !reflect.DeepEqual(kickers, tc.kickers) {
				t.Errorf("kickers = %v, want %v", kickers, tc.kickers)
			}
		})
	}
}

func TestEvaluate_NoAceLowWheelStraight(t *testing.T) {
	cards := []Card{
		{Rank: Ace, Suit: Spade}, {Rank: Two, Suit: Club}, {Rank: Three, Suit: Diamond},
		{Rank: Four, Suit: Heart}, {Rank: Five, Suit: Spade}, {Rank: Nine, Suit: Club},
		{Rank: King, Suit: Diamond},
	}
	h := NewEvaluatedHand(cards)
	if h.Category() == Straight || h.Category() == StraightFlush {
		t.Fatalf("A-2-3-4-5 must not be recognized as a straight, got %s", h.Category())
	}
}

func TestEvaluate_PermutationInvariant(t *testing.T) {
	cards := []Card{
		{Rank: Ace, Suit: Spade}, {Rank: Ace, Suit: Club}, {Rank: King, Suit: Diamond},
		{Rank: Queen, Suit: Heart}, {Rank: Jack, Suit: Spade}, {Rank: Nine, Suit: Club},
		{Rank: Two, Suit: Diamond},
	}
	base := NewEvaluatedHand(cards)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		shuffled := append([]Card{}, cards...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		other := NewEvaluatedHand(shuffled)
		if base.Compare(other) != 0 {
			t.Fatalf("permutation changed evaluation: %s vs %s", base, other)
		}
	}
}

func TestEvaluate_AddingCardsNeverWeakens(t *testing.T) {
	hole := []Card{{Rank: Ace, Suit: Spade}, {Rank: King, Suit: Spade}}
	five := NewEvaluatedHand(append(append([]Card{}, hole...),
		Card{Rank: Queen, Suit: Spade}, Card{Rank: Jack, Suit: Spade}, Card{Rank: Two, Suit: Club}))

	full := NewEvaluatedHand(append([]Card{}, hole...))
	full.AddCards([]Card{
		{Rank: Queen, Suit: Spade}, {Rank: Jack, Suit: Spade}, {Rank: Two, Suit: Club},
		{Rank: Ten, Suit: Spade}, {Rank: Nine, Suit: Club},
	})

	if full.Compare(five) < 0 {
		t.Fatalf("adding cards weakened the hand: %s became worse than %s", full, five)
	}
}

func TestEvaluate_AddCardsMatchesSingleConstruction(t *testing.T) {
	all := []Card{
		{Rank: Ten, Suit: Heart}, {Rank: Jack, Suit: Heart}, {Rank: Queen, Suit: Heart},
		{Rank: King, Suit: Heart}, {Rank: Ace, Suit: Heart}, {Rank: Two, Suit: Club},
		{Rank: Three, Suit: Diamond},
	}
	combined := NewEvaluatedHand(all)

	incremental := NewEvaluatedHand(all[:2])
	incremental.AddCards(all[2:])

	if combined.Compare(incremental) != 0 || combined.Category() != incremental.Category() {
		t.Fatalf("AddCards diverged from single construction: %s vs %s", incremental, combined)
	}
}

func TestEvaluate_TotalOrder(t *testing.T) {
	weak := NewEvaluatedHand([]Card{
		{Rank: Two, Suit: Spade}, {Rank: Four, Suit: Club}, {Rank: Six, Suit: Diamond},
		{Rank: Eight, Suit: Heart}, {Rank: Ten, Suit: Spade},
	})
	strong := NewEvaluatedHand([]Card{
		{Rank: Ace, Suit: Spade}, {Rank: Ace, Suit: Club}, {Rank: Ace, Suit: Diamond},
		{Rank: Ace, Suit: Heart}, {Rank: Two, Suit: Club},
	})

	if weak.Compare(strong) >= 0 {
		t.Fatalf("expected high card to rank below four of a kind")
	}
	if strong.Compare(weak) <= 0 {
		t.Fatalf("expected four of a kind to rank above high card")
	}
	if strong.Compare(strong) != 0 {
		t.Fatalf("expected a hand to compare equal to itself")
	}
}

func TestHandGroup_DecidingKicker(t *testing.T) {
	winner := NewEvaluatedHand([]Card{
		{Rank: Ace, Suit: Spade}, {Rank: King, Suit: Club}, {Rank: Queen, Suit: Diamond},
		{Rank: Jack, Suit: Heart}, {Rank: Nine, Suit: Spade},
	})
	loser := NewEvaluatedHand([]Card{
		{Rank: Ace, Suit: Club}, {Rank: King, Suit: Diamond}, {Rank: Queen, Suit: Heart},
		{Rank: Jack, Suit: Spade}, {Rank: Eight, Suit: Club},
	})
	group := HandGroup{winner, loser}

	kicker, ok := group.DecidingKicker()
	if !ok {
		t.Fatalf("expected a deciding kicker")
	}
	if kicker != Nine {
		t.Errorf("deciding kicker = %s, want %s", kicker, Nine)
	}
}

func TestHandGroup_NoDecidingKickerOnExactTie(t *testing.T) {
	a := NewEvaluatedHand([]Card{
		{Rank: Ace, Suit: Spade}, {Rank: King, Suit: Club}, {Rank: Queen, Suit: Diamond},
		{Rank: Jack, Suit: Heart}, {Rank: Nine, Suit: Spade},
	})
	b := NewEvaluatedHand([]Card{
		{Rank: Ace, Suit: Club}, {Rank: King, Suit: Diamond}, {Rank: Queen, Suit: Heart},
		{Rank: Jack, Suit: Spade}, {Rank: Nine, Suit: Club},
	})
	group := HandGroup{a, b}

	if _, ok := group.DecidingKicker(); ok {
		t.Fatalf("expected no deciding kicker for an exact tie")
	}
}
