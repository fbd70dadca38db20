package poker

// fiveCardBased lists the categories whose handBase already spans all 5
// hand-defining cards with no separate kickers — Straight, FullHouse, and
// StraightFlush can't be distinguished by a single kicker once their
// category-defining ranks match, because there's nothing left to compare.
// Flush is the one five-card-based category with a usable "kicker": all
// but its top card compare like ordinary kickers.
var fiveCardBased = map[HandCategory]bool{
	Straight:      true,
	FullHouse:     true,
	StraightFlush: true,
}

// HandGroup compares every hand dealt into a single round (one per player
// still live at showdown) and can identify the single kicker card that
// separates the winner from the best of the rest — the card a showdown
// display should highlight to explain why one hand beat another.
type HandGroup []*EvaluatedHand

// Winner returns the strongest hand in the group, or nil if the group is
// empty. Ties are resolved arbitrarily; callers that need to split a pot
// among tied winners should compare candidates with Compare directly.
func (g HandGroup) Winner() *EvaluatedHand {
	if len(g) == 0 {
		return nil
	}
	best := g[0]
	for _, h := range g[1:] {
		if h.Compare(best) > 0 {
			best = h
		}
	}
	return best
}

// DecidingKicker returns the rank of the single card that proves the
// group's winner beats the strongest hand it beats, or (0, false) if no
// such single card exists: the winner ties everyone, the group has fewer
// than two hands, the runner-up holds a different category, or the two
// hands' category-defining cards already decide it (a "kicker" is only
// a card outside the category-defining cards, except for Flush, where all
// but the top card serve that role).
func (g HandGroup) DecidingKicker() (Rank, bool) {
	win := g.Winner()
	if win == nil {
		return 0, false
	}

	var runnerUp *EvaluatedHand
	for _, h := range g {
		if h.Compare(win) < 0 && (runnerUp == nil || h.Compare(runnerUp) > 0) {
			runnerUp = h
		}
	}
	if runnerUp == nil || win.category != runnerUp.category {
		return 0, false
	}

	wBase, lBase := win.HandBaseCards(), runnerUp.HandBaseCards()

	switch {
	case win.category == Flush:
		if wBase[0].Rank != lBase[0].Rank {
			return 0, false
		}
		return scanForDecidingRank(wBase[1:], lBase[1:])

	case fiveCardBased[win.category]:
		return 0, false

	default:
		if !sameRanks(wBase, lBase) {
			return 0, false
		}
		return scanForDecidingRank(win.KickerCards(), runnerUp.KickerCards())
	}
}

func sameRanks(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Rank != b[i].Rank {
			return false
		}
	}
	return true
}

// scanForDecidingRank walks two equal-length, most-significant-first card
// lists and returns the winner's rank at the first position where the two
// differ. Since win is already known to rank above lose overall, the first
// difference is guaranteed to favor win.
func scanForDecidingRank(win, lose []Card) (Rank, bool) {
	for i := 0; i < len(win) && i < len(lose); i++ {
		if win[i].Rank != lose[i].Rank {
			return win[i].Rank, true
		}
	}
	return 0, false
}
