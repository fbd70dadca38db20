package engine

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/kuco23/pokerlib/pkg/poker"
)

// Street is a betting round within a hand.
type Street int

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
)

func (s Street) String() string {
	return []string{"Preflop", "Flop", "Turn", "River"}[s]
}

var streetSequence = [...]Street{StreetPreflop, StreetFlop, StreetTurn, StreetRiver}
var streetDealCounts = [...]int{0, 3, 1, 1}

// Round drives a single hand from blinds through showdown. It owns no I/O:
// every state change is reported through the Sink it was built with, and
// every input arrives through PublicIn, PublicInChoice or ForceFold.
type Round struct {
	ID         string
	SmallBlind int
	BigBlind   int

	players PlayerGroup // button-relative: players[0] is on the button
	button  int

	currentIndex     int
	firstToActIndex  int
	lastAggressorIdx int

	street       Street
	streetCursor int
	board        []poker.Card
	deck         *poker.Deck

	finished bool
	closed   bool

	muckOptioned map[string]bool
	muckPolicy   MuckPolicy

	sink Sink
}

// NewRound deals a fresh hand to players (already in button-relative order,
// so players[0] holds the button), posts blinds, and requests the first
// action. All of it happens synchronously; drain the Sink to observe it.
func NewRound(id string, players PlayerGroup, smallBlind, bigBlind int, rng *rand.Rand, policy MuckPolicy, sink Sink) (*Round, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("poker: round requires at least 2 players, got %d", len(players))
	}
	if policy == nil {
		policy = DefaultMuckPolicy{}
	}

	r := &Round{
		ID:               id,
		SmallBlind:       smallBlind,
		BigBlind:         bigBlind,
		players:          players,
		button:           0,
		lastAggressorIdx: -1,
		muckOptioned:     map[string]bool{},
		muckPolicy:       policy,
		sink:             sink,
	}

	for _, p := range r.players {
		p.ResetState()
	}

	deck := poker.NewDeck(rng)
	r.deck = deck

	for _, p := range r.players {
		cards, err := deck.DealN(2)
		if err != nil {
			return nil, err
		}
		p.HoleCards = cards
		p.EvaluatedHand = poker.NewEvaluatedHand(cards)
		privateOut(r.sink, p.ID, EvtDealtCards, map[string]any{"cards": cardStrings(cards)})
	}

	publicOut(r.sink, EvtNewRound, map[string]any{"round_id": r.ID})
	r.advanceStreet()

	r.dealBlinds()

	r.firstToActIndex = r.players.NextActiveIndex(r.currentIndex)
	if r.firstToActIndex == -1 {
		r.firstToActIndex = r.currentIndex
	}
	r.currentIndex = r.firstToActIndex
	r.requestAction()

	return r, nil
}

// dealBlinds computes blind seats relative to the button and deducts them:
// heads-up the button posts the big blind and its lone opponent posts the
// small; with three or more players the two seats immediately before the
// button post small then big.
func (r *Round) dealBlinds() {
	n := len(r.players)
	var sbIdx, bbIdx int
	if n == 2 {
		sbIdx = mod(r.button-1, n)
		bbIdx = r.button
	} else {
		sbIdx = mod(r.button-2, n)
		bbIdx = mod(r.button-1, n)
	}

	sb, bb := r.players[sbIdx], r.players[bbIdx]
	r.addToPot(sb, r.SmallBlind)
	publicOut(r.sink, EvtSmallBlind, map[string]any{"player_id": sb.ID, "amount": sb.TurnStake[r.street]})
	r.addToPot(bb, r.BigBlind)
	publicOut(r.sink, EvtBigBlind, map[string]any{"player_id": bb.ID, "amount": bb.TurnStake[r.street]})

	r.currentIndex = bbIdx
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

// addToPot moves amount from player's stack into the pot, capping at the
// player's stack and marking them all-in if the request uses up or exceeds
// their whole stack.
func (r *Round) addToPot(p *Player, amount int) {
	if amount >= 0 && amount < p.Money {
		p.Money -= amount
		p.TurnStake[r.street] += amount
		p.Stake += amount
		return
	}
	allInStake := p.Money
	p.TurnStake[r.street] += allInStake
	p.Stake += allInStake
	p.Money = 0
	p.IsAllIn = true
	publicOut(r.sink, EvtPlayerIsAllIn, map[string]any{"player_id": p.ID, "all_in_stake": allInStake})
}

func (r *Round) turnStakeMax() int {
	max := 0
	for _, p := range r.players {
		if p.TurnStake[r.street] > max {
			max = p.TurnStake[r.street]
		}
	}
	return max
}

func (r *Round) toCall() int {
	cp := r.players[r.currentIndex]
	return r.turnStakeMax() - cp.TurnStake[r.street]
}

// PublicIn applies a betting action from playerID. Inputs from anyone but
// the current player, or that violate the action's precondition, are
// silently ignored: there is no invalid-input event in this protocol, only
// well-formed state transitions.
func (r *Round) PublicIn(playerID string, action ActionType, raiseBy int) {
	if r.closed || r.finished {
		return
	}
	cp := r.players[r.currentIndex]
	if cp.ID != playerID {
		return
	}

	toCall := r.toCall()
	switch action {
	case ActionCheck:
		if toCall != 0 {
			return
		}
	case ActionRaise:
		if !(toCall < cp.Money) {
			return
		}
	}

	r.applyAction(cp, action, raiseBy)
	cp.PlayedTurn = true
	r.processState(false)
}

func (r *Round) applyAction(p *Player, action ActionType, raiseBy int) {
	switch action {
	case ActionFold:
		p.IsFolded = true
		publicOut(r.sink, EvtPlayerFold, map[string]any{"player_id": p.ID})

	case ActionCheck:
		publicOut(r.sink, EvtPlayerCheck, map[string]any{"player_id": p.ID})

	case ActionCall:
		toCall := r.toCall()
		paid := toCall
		if toCall > p.Money {
			paid = p.Money
		}
		r.addToPot(p, toCall)
		publicOut(r.sink, EvtPlayerCall, map[string]any{"player_id": p.ID, "paid_amount": paid})

	case ActionRaise:
		toCall := r.toCall()
		contribution := toCall + raiseBy
		paid := contribution
		if contribution > p.Money {
			paid = p.Money
		}
		r.addToPot(p, contribution)
		r.lastAggressorIdx = r.currentIndex
		publicOut(r.sink, EvtPlayerRaise, map[string]any{"player_id": p.ID, "raised_by": raiseBy, "paid_amount": paid})

	case ActionAllIn:
		paid := p.Money
		toCall := r.toCall()
		r.addToPot(p, paid)
		if paid > toCall {
			r.lastAggressorIdx = r.currentIndex
		}
		publicOut(r.sink, EvtPlayerWentAllIn, map[string]any{"player_id": p.ID, "paid_amount": paid})
	}
}

// processState runs the post-action state update, in priority order.
// afterForcedFold suppresses the default "move to next player" fallback,
// used when a fold happens outside of PublicIn (e.g. a removed player being
// force-folded by the table) and the caller wants only the higher-priority
// rules evaluated.
func (r *Round) processState(afterForcedFold bool) {
	notFolded := r.players.NotFolded()
	active := r.players.Active()
	balanced := r.potsBalanced()

	switch {
	case len(notFolded) == 0:
		r.finish()

	case len(notFolded) == 1:
		r.dealPrematureWinnings(notFolded[0])
		r.finish()

	case len(active) <= 1 && balanced:
		r.runoutRemainingStreets()
		r.dealWinnings()
		r.finish()

	case r.players.AllPlayedTurn() && balanced:
		if r.street == StreetRiver {
			r.dealWinnings()
			r.finish()
			return
		}
		r.advanceStreet()
		r.currentIndex = r.button
		r.moveToNextPlayer()

	default:
		if !afterForcedFold {
			r.moveToNextPlayer()
		}
	}
}

// potsBalanced reports whether every still-active player has matched the
// largest street contribution among them, and that contribution covers
// every all-in player's contribution on this street — i.e. there is nothing
// left for an active player to call.
func (r *Round) potsBalanced() bool {
	var activeStakes []int
	maxAllIn := 0
	for _, p := range r.players {
		if p.IsActive() {
			activeStakes = append(activeStakes, p.TurnStake[r.street])
		}
		if p.IsAllIn && p.TurnStake[r.street] > maxAllIn {
			maxAllIn = p.TurnStake[r.street]
		}
	}
	if len(activeStakes) == 0 {
		return true
	}
	first := activeStakes[0]
	for _, s := range activeStakes {
		if s != first {
			return false
		}
	}
	return first >= maxAllIn
}

func (r *Round) moveToNextPlayer() {
	next := r.players.NextActiveIndex(r.currentIndex)
	if next == -1 {
		return
	}
	r.currentIndex = next
	r.requestAction()
}

func (r *Round) requestAction() {
	cp := r.players[r.currentIndex]
	publicOut(r.sink, EvtPlayerActionRequired, map[string]any{"player_id": cp.ID, "to_call": r.toCall()})
}

// advanceStreet deals the next street's community cards (0 entering
// preflop, 3 for the flop, 1 each for turn and river), resets every
// player's played-turn flag, and emits NEW_TURN. Calling it once the river
// has already begun is a no-op.
func (r *Round) advanceStreet() {
	if r.streetCursor >= len(streetSequence) {
		return
	}
	r.street = streetSequence[r.streetCursor]
	n := streetDealCounts[r.streetCursor]
	r.streetCursor++
	r.lastAggressorIdx = -1

	var newCards []poker.Card
	if n > 0 {
		dealt, err := r.deck.DealN(n)
		if err != nil {
			logrus.Warnf("poker: round %s: %v", r.ID, err)
		} else {
			newCards = dealt
		}
	}
	r.board = append(r.board, newCards...)

	for _, p := range r.players {
		p.PlayedTurn = false
		if len(newCards) > 0 {
			p.EvaluatedHand.AddCards(newCards)
		}
	}

	publicOut(r.sink, EvtNewTurn, map[string]any{
		"turn":  r.street,
		"board": append([]poker.Card{}, r.board...),
	})
}

func (r *Round) runoutRemainingStreets() {
	for r.streetCursor < len(streetSequence) {
		r.advanceStreet()
	}
}

func (r *Round) totalPotSize() int {
	total := 0
	for _, p := range r.players {
		total += p.Stake
	}
	return total
}

// dealPrematureWinnings awards the entire pot to the sole remaining
// not-folded player when every other competitor has folded before
// showdown. The win is still subject to the muck policy: a premature
// winner can be asked to reveal or muck just like a showdown winner.
func (r *Round) dealPrematureWinnings(winner *Player) {
	won := r.totalPotSize()
	winner.Money += won
	winner.Stake = 0
	publicOut(r.sink, EvtDeclarePrematureWinner, map[string]any{"player_id": winner.ID, "money_won": won})
	r.muckPolicy.PrematureWinner(r, winner)
}

// dealWinnings distributes every side pot and then hands off to the muck
// policy to decide who reveals, who is asked, and who mucks by default.
func (r *Round) dealWinnings() {
	distributeSidePots(r)
	r.muckPolicy.Showdown(r)
}

// showdownOrder returns the players in the order showdown should walk them:
// starting from the street's last aggressor if there was one, otherwise
// from whoever acted first preflop, and proceeding clockwise.
func (r *Round) showdownOrder() PlayerGroup {
	start := r.firstToActIndex
	if r.lastAggressorIdx != -1 {
		start = r.lastAggressorIdx
	}
	n := len(r.players)
	order := make(PlayerGroup, 0, n)
	for k := 0; k < n; k++ {
		order = append(order, r.players[(start+k)%n])
	}
	return order
}

// revealPublicly emits PUBLIC_CARD_SHOW for p, reporting the kicker that
// decided p beat the best hand shown immediately before it, if any.
func (r *Round) revealPublicly(p *Player, against *poker.EvaluatedHand) {
	var kickers []poker.Rank
	if against != nil {
		group := poker.HandGroup{p.EvaluatedHand, against}
		if k, ok := group.DecidingKicker(); ok {
			kickers = []poker.Rank{k}
		}
	}
	publicOut(r.sink, EvtPublicCardShow, map[string]any{
		"player_id": p.ID,
		"cards":     cardStrings(p.HoleCards),
		"kickers":   kickers,
	})
}

// offerChoice adds p to the set awaiting a show/muck decision and requests
// one. The round cannot close while any player is still muck-optioned.
func (r *Round) offerChoice(p *Player) {
	r.muckOptioned[p.ID] = true
	publicOut(r.sink, EvtPlayerChoiceRequired, map[string]any{"player_id": p.ID})
}

// standardShowdown walks showdownOrder revealing each not-folded player
// whose hand ties or beats the best one shown so far, and offering a
// show/muck choice to everyone else: the "ask every non-winner whose hand
// was not forced visible" default policy.
func (r *Round) standardShowdown() {
	order := r.showdownOrder()
	var currentBest *poker.EvaluatedHand
	for _, p := range order {
		if p.IsFolded {
			continue
		}
		if currentBest == nil || p.EvaluatedHand.Compare(currentBest) >= 0 {
			r.revealPublicly(p, currentBest)
			currentBest = p.EvaluatedHand
		} else {
			r.offerChoice(p)
		}
	}
}

// autoResolvePending answers every outstanding show/muck choice with the
// same decision, as if the player had responded themselves. Used by
// policies that never actually wait on an input.
func (r *Round) autoResolvePending(choice ShowdownChoice) {
	ids := make([]string, 0, len(r.muckOptioned))
	for id := range r.muckOptioned {
		ids = append(ids, id)
	}
	for _, id := range ids {
		r.PublicInChoice(id, choice)
	}
}

// PublicInChoice applies a voluntary show/muck decision from a player the
// muck policy put on notice. Any other input is silently ignored.
func (r *Round) PublicInChoice(playerID string, choice ShowdownChoice) {
	if r.closed || !r.muckOptioned[playerID] {
		return
	}
	delete(r.muckOptioned, playerID)

	p := r.players.ByID(playerID)
	if p != nil {
		if choice == ChoiceShow {
			publicOut(r.sink, EvtPlayerRevealCards, map[string]any{"player_id": p.ID, "cards": cardStrings(p.HoleCards)})
		} else {
			publicOut(r.sink, EvtPlayerMuckCards, map[string]any{"player_id": p.ID})
		}
	}

	if len(r.muckOptioned) == 0 && r.finished {
		r.close()
	}
}

// finish marks the hand over and emits ROUND_FINISHED. If no player is
// still owed a show/muck choice, the round closes immediately after.
func (r *Round) finish() {
	if r.finished {
		return
	}
	r.finished = true
	publicOut(r.sink, EvtRoundFinished, nil)
	if len(r.muckOptioned) == 0 {
		r.close()
	}
}

func (r *Round) close() {
	if r.closed {
		return
	}
	r.closed = true
	publicOut(r.sink, EvtRoundClosed, nil)
}

// Finished reports whether the hand's outcome (winner, pot distribution) is
// settled. A finished round can still be open awaiting show/muck choices.
func (r *Round) Finished() bool { return r.finished }

// Closed reports whether the round is fully done: finished, and every
// muck-optioned player has responded.
func (r *Round) Closed() bool { return r.closed }

// Board returns the community cards revealed so far.
func (r *Round) Board() []poker.Card {
	return append([]poker.Card{}, r.board...)
}

// CurrentStreet returns the round's current betting street.
func (r *Round) CurrentStreet() Street { return r.street }

// Players returns the round's button-relative player snapshot.
func (r *Round) Players() PlayerGroup { return r.players }

// ToCall reports how much more the current player owes to match the
// largest street contribution so far.
func (r *Round) ToCall() int {
	if r.closed || r.finished {
		return 0
	}
	return r.toCall()
}

// PendingChoices returns the IDs of every player still owed a show/muck
// decision before the round can close.
func (r *Round) PendingChoices() []string {
	ids := make([]string, 0, len(r.muckOptioned))
	for id := range r.muckOptioned {
		ids = append(ids, id)
	}
	return ids
}

// CurrentPlayer returns whoever PublicIn currently expects an action from.
func (r *Round) CurrentPlayer() *Player {
	if r.closed || r.finished {
		return nil
	}
	return r.players[r.currentIndex]
}

// PlayerByID returns the round's copy of a seated player, or nil if they
// are not part of this hand.
func (r *Round) PlayerByID(id string) *Player {
	return r.players.ByID(id)
}

// ForceFold marks a player folded outside of PublicIn — used by the table
// when a player leaves mid-round — and re-evaluates state with the
// "after forced fold" flag so a resulting single-player pot is still
// awarded without requiring a spurious extra turn.
func (r *Round) ForceFold(id string) {
	if r.closed || r.finished {
		return
	}
	p := r.players.ByID(id)
	if p == nil || p.IsFolded {
		return
	}
	if r.CurrentPlayer() != nil && r.CurrentPlayer().ID == id {
		r.PublicIn(id, ActionFold, 0)
		return
	}
	p.IsFolded = true
	publicOut(r.sink, EvtPlayerFold, map[string]any{"player_id": p.ID})
	r.processState(true)
}
