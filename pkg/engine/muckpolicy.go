package engine

// MuckPolicy decides, once a hand's winner is known, who shows their hand
// and who is offered the choice to muck it. Composing a Round with one of
// these, instead of subclassing the state machine per behavior, means
// swapping behavior never means swapping the state machine.
type MuckPolicy interface {
	// Showdown runs after every side pot has been awarded at the end of a
	// hand that reached the river with two or more players still in.
	Showdown(r *Round)
	// PrematureWinner runs instead of Showdown when every other player
	// folded before a showdown was reached.
	PrematureWinner(r *Round, winner *Player)
}

// DefaultMuckPolicy is the ask-and-wait behavior: walk showdown order,
// reveal whoever's hand ties or beats the best one shown so far, and offer
// everyone else — including a premature winner — a real show/muck choice
// that the round blocks on.
type DefaultMuckPolicy struct{}

func (DefaultMuckPolicy) Showdown(r *Round) {
	r.standardShowdown()
}

func (DefaultMuckPolicy) PrematureWinner(r *Round, winner *Player) {
	r.offerChoice(winner)
}

// AlwaysShowPolicy reveals every not-folded player's hand unconditionally,
// bypassing the best-hand-so-far walk and the muck option entirely.
type AlwaysShowPolicy struct{}

func (AlwaysShowPolicy) Showdown(r *Round) {
	for _, p := range r.players {
		if !p.IsFolded {
			r.revealPublicly(p, nil)
		}
	}
}

func (AlwaysShowPolicy) PrematureWinner(r *Round, winner *Player) {
	r.revealPublicly(winner, nil)
}

// NeverAskPolicy runs the same ask-and-wait walk as DefaultMuckPolicy but
// never actually waits: every choice it would offer is immediately
// answered SHOW on the player's behalf.
type NeverAskPolicy struct{}

func (NeverAskPolicy) Showdown(r *Round) {
	r.standardShowdown()
	r.autoResolvePending(ChoiceShow)
}

func (NeverAskPolicy) PrematureWinner(r *Round, winner *Player) {
	r.offerChoice(winner)
	r.autoResolvePending(ChoiceShow)
}
