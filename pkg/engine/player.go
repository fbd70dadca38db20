package engine

import (
	"github.com/kuco23/pokerlib/pkg/poker"
)

// numStreets is the number of betting streets a hand passes through:
// preflop, flop, turn, river.
const numStreets = 4

// Player is a seat's occupant: identity and bankroll persist across hands,
// the rest of the state is reset by ResetState at the start of each Round.
type Player struct {
	TableID string
	ID      string
	Name    string
	Money   int // the stack, outside any hand in progress

	HoleCards     []poker.Card
	EvaluatedHand *poker.EvaluatedHand

	IsFolded bool
	IsAllIn  bool

	Stake      int             // total chips committed to the pot this hand
	TurnStake  [numStreets]int // chips committed on each street
	PlayedTurn bool
}

// NewPlayer creates a player with a starting stack and no hand in progress.
func NewPlayer(tableID, id, name string, money int) *Player {
	return &Player{TableID: tableID, ID: id, Name: name, Money: money}
}

// IsActive reports whether the player can still act this hand: neither
// folded nor already all-in.
func (p *Player) IsActive() bool {
	return !p.IsFolded && !p.IsAllIn
}

// ResetState clears all per-hand state, called by Round at deal time. The
// stack (Money) and identity are untouched.
func (p *Player) ResetState() {
	p.HoleCards = nil
	p.EvaluatedHand = nil
	p.IsFolded = false
	p.IsAllIn = false
	p.Stake = 0
	p.TurnStake = [numStreets]int{}
	p.PlayedTurn = false
}

// String renders the player's name, matching Player equality semantics of
// identity-by-ID rather than by hand strength.
func (p *Player) String() string {
	return p.Name
}

// Equal compares players by ID only, never by hand or stack.
func (p *Player) Equal(other *Player) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}
