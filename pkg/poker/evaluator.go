package poker

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// HandCategory ranks the nine standard poker hand categories, from weakest
// to strongest. There is no ace-low "wheel" straight (A-2-3-4-5): Ace only
// ever plays high.
type HandCategory int

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String names a hand category for logging and display.
func (c HandCategory) String() string {
	names := [...]string{
		"High Card", "One Pair", "Two Pair", "Three of a Kind",
		"Straight", "Flush", "Full House", "Four of a Kind", "Straight Flush",
	}
	if int(c) < 0 || int(c) >= len(names) {
		return "Unknown"
	}
	return names[c]
}

// EvaluatedHand tracks the best 5-card hand obtainable from a growing set of
// cards (2 to 7), and supports the total order needed to rank hands against
// each other at showdown. It is not safe for concurrent use.
type EvaluatedHand struct {
	cards    []Card // kept sorted ascending by Rank
	category HandCategory

	// handBase and kickers hold indices into cards, most significant first.
	// Together they always total min(5, len(cards)) entries once evaluated.
	handBase []int
	kickers  []int

	rankCounts [13]int
	suitCounts [4]int
	flushSuit  int // -1 if no suit has 5+ cards
	evaluated  bool
}

// NewEvaluatedHand builds an EvaluatedHand from an initial set of cards (the
// hole cards, typically) and evaluates it immediately.
func NewEvaluatedHand(cards []Card) *EvaluatedHand {
	h := &EvaluatedHand{flushSuit: -1}
	h.AddCards(cards)
	return h
}

// AddCards extends the hand with more cards (e.g. community cards as they
// are revealed) and re-evaluates the best 5-card hand. Cards already present
// are not checked for duplicates; callers are responsible for dealing each
// card at most once.
func (h *EvaluatedHand) AddCards(cards []Card) {
	h.cards = append(h.cards, cards...)
	sort.Slice(h.cards, func(i, j int) bool { return h.cards[i].Rank < h.cards[j].Rank })

	for _, c := range cards {
		h.rankCounts[c.Rank]++
		h.suitCounts[c.Suit]++
	}

	h.flushSuit = -1
	for suit := 0; suit < 4; suit++ {
		if h.suitCounts[suit] >= 5 {
			h.flushSuit = suit
			break
		}
	}

	h.evaluated = false
	if len(h.cards) >= 5 {
		h.evaluate()
	}
}

// Category returns the hand's best category. Only meaningful once at least
// 5 cards have been added.
func (h *EvaluatedHand) Category() HandCategory {
	return h.category
}

// Cards returns the cards used to form the best hand (category-defining
// cards followed by kickers), highest-significance first.
func (h *EvaluatedHand) Cards() []Card {
	out := make([]Card, 0, 5)
	for _, i := range h.handBase {
		out = append(out, h.cards[i])
	}
	for _, i := range h.kickers {
		out = append(out, h.cards[i])
	}
	return out
}

// HandBaseCards returns the category-defining cards only (e.g. the three
// cards of a set, the five cards of a straight), most significant first.
func (h *EvaluatedHand) HandBaseCards() []Card {
	out := make([]Card, len(h.handBase))
	for i, idx := range h.handBase {
		out[i] = h.cards[idx]
	}
	return out
}

// KickerCards returns the cards that round the hand out to 5 but play no
// part in its category, most significant first.
func (h *EvaluatedHand) KickerCards() []Card {
	out := make([]Card, len(h.kickers))
	for i, idx := range h.kickers {
		out[i] = h.cards[idx]
	}
	return out
}

// String renders the category and the cards that make up the best hand.
func (h *EvaluatedHand) String() string {
	cards := h.Cards()
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return fmt.Sprintf("%s (%s)", h.category, JoinStrings(names))
}

// straightIndexes finds five cards, consecutive in rank, in the given
// rank-count histogram and returns their cards-slice indices, ace-high only.
// It returns nil if no straight exists. There is no ace-low wheel special
// case: an Ace only ever extends a straight at the top.
func straightIndexes(rankCounts [13]int) []int {
	indexes := make([]int, 5)
	straightLen := 1
	total := 0
	for _, n := range rankCounts {
		total += n
	}
	indexPtr := total

	for i := len(rankCounts) - 1; i >= 0; i-- {
		indexPtr -= rankCounts[i]
		if i > 0 && rankCounts[i-1] > 0 && rankCounts[i] > 0 {
			indexes[straightLen-1] = indexPtr
			straightLen++
			if straightLen == 5 {
				if indexPtr == 0 {
					indexPtr = total - 1
				} else {
					indexPtr -= rankCounts[i-1]
				}
				indexes[4] = indexPtr
				return indexes
			}
		} else {
			straightLen = 1
		}
	}
	return nil
}

func (h *EvaluatedHand) evaluate() {
	h.evaluated = true

	pairCounts := [5]int{} // pairCounts[n] = how many ranks appear exactly n times
	for _, n := range h.rankCounts {
		pairCounts[n]++
	}

	straightIdx := straightIndexes(h.rankCounts)

	switch {
	case h.flushSuit >= 0 && h.setStraightFlush():
		// handled inside setStraightFlush
	case pairCounts[4] > 0:
		h.setFourOfAKind()
	case pairCounts[3] == 2 || (pairCounts[3] == 1 && pairCounts[2] >= 1):
		h.setFullHouse()
	case h.flushSuit >= 0:
		h.setFlush()
	case straightIdx != nil:
		h.setStraight(straightIdx)
	case pairCounts[3] == 1:
		h.setThreeOfAKind()
	case pairCounts[2] >= 2:
		h.setTwoPair()
	case pairCounts[2] == 1:
		h.setOnePair()
	default:
		h.setHighCard()
	}

	h.setKickers()
	logrus.Debugf("poker: evaluated %d cards as %s", len(h.cards), h.category)
}

func (h *EvaluatedHand) setStraightFlush() bool {
	var suitedCounts [13]int
	permutation := make([]int, 0, len(h.cards))
	for i, c := range h.cards {
		if int(c.Suit) == h.flushSuit {
			suitedCounts[c.Rank]++
			permutation = append(permutation, i)
		}
	}

	idx := straightIndexes(suitedCounts)
	if idx == nil {
		return false
	}
	h.category = StraightFlush
	h.handBase = make([]int, 5)
	for i, p := range idx {
		h.handBase[i] = permutation[p]
	}
	return true
}

func (h *EvaluatedHand) setFourOfAKind() {
	h.category = FourOfAKind
	idx := rankRunEndIndex(h.rankCounts[:], 4)
	h.handBase = []int{idx, idx - 1, idx - 2, idx - 3}
}

func (h *EvaluatedHand) setFullHouse() {
	h.category = FullHouse

	type rankIndex struct {
		rank  int
		index int
	}
	var threes, twos []rankIndex
	idx := -1
	for rank, n := range h.rankCounts {
		idx += n
		switch n {
		case 3:
			threes = append(threes, rankIndex{rank, idx})
		case 2:
			twos = append(twos, rankIndex{rank, idx})
		}
	}

	topThree := threes[len(threes)-1]
	candidates := append(append([]rankIndex{}, threes[:len(threes)-1]...), twos...)
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.rank > best.rank {
			best = c
		}
	}

	i1, i2 := topThree.index, best.index
	h.handBase = []int{i1, i1 - 1, i1 - 2, i2, i2 - 1}
}

func (h *EvaluatedHand) setFlush() {
	h.category = Flush
	h.handBase = nil
	for i := len(h.cards) - 1; i >= 0 && len(h.handBase) < 5; i-- {
		if int(h.cards[i].Suit) == h.flushSuit {
			h.handBase = append(h.handBase, i)
		}
	}
}

func (h *EvaluatedHand) setStraight(idx []int) {
	h.category = Straight
	h.handBase = idx
}

func (h *EvaluatedHand) setThreeOfAKind() {
	h.category = ThreeOfAKind
	idx := rankRunEndIndex(h.rankCounts[:], 3)
	h.handBase = []int{idx, idx - 1, idx - 2}
}

func (h *EvaluatedHand) setTwoPair() {
	h.category = TwoPair
	h.handBase = nil

	idx, found := len(h.cards), 0
	for rank := len(h.rankCounts) - 1; rank >= 0; rank-- {
		idx -= h.rankCounts[rank]
		if h.rankCounts[rank] == 2 {
			h.handBase = append(h.handBase, idx+1, idx)
			found++
			if found == 2 {
				break
			}
		}
	}
}

func (h *EvaluatedHand) setOnePair() {
	h.category = OnePair
	idx := rankRunEndIndex(h.rankCounts[:], 2)
	h.handBase = []int{idx, idx - 1}
}

func (h *EvaluatedHand) setHighCard() {
	h.category = HighCard
	h.handBase = []int{len(h.cards) - 1}
}

func (h *EvaluatedHand) setKickers() {
	h.kickers = nil
	inHand := make([]bool, len(h.cards))
	for _, i := range h.handBase {
		inHand[i] = true
	}

	limit := 5 - len(h.handBase)
	for i := len(h.cards) - 1; i >= 0 && len(h.kickers) < limit; i-- {
		if !inHand[i] {
			h.kickers = append(h.kickers, i)
		}
	}
}

// rankRunEndIndex returns the cards-slice index of the last card of the
// lowest rank that occurs exactly n times. Ranks are scanned ascending, so
// when several ranks qualify (e.g. two pairs) the lowest one is returned;
// callers needing the highest take the other end of the scan explicitly
// (see setTwoPair).
func rankRunEndIndex(rankCounts []int, n int) int {
	idx := -1
	for _, c := range rankCounts {
		idx += c
		if c == n {
			break
		}
	}
	return idx
}

// Compare returns -1, 0, or 1 as h ranks below, equal to, or above other,
// comparing category first and then the category-defining cards and
// kickers in significance order.
func (h *EvaluatedHand) Compare(other *EvaluatedHand) int {
	if h.category != other.category {
		if h.category < other.category {
			return -1
		}
		return 1
	}

	hCards, oCards := h.Cards(), other.Cards()
	for i := 0; i < len(hCards) && i < len(oCards); i++ {
		if hCards[i].Rank != oCards[i].Rank {
			if hCards[i].Rank < oCards[i].Rank {
				return -1
			}
			return 1
		}
	}
	return 0
}
