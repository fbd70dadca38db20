package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Table owns seats, validates buy-ins, rotates the button, creates Rounds,
// and routes betting actions to whichever Round is in progress. It is the
// only type a host constructs directly.
type Table struct {
	ID     string
	Config TableConfig

	Seats  PlayerSeats
	button int

	round *Round
	rng   *rand.Rand

	sink         Sink
	internalSink *queueingSink
}

// NewTable builds an empty table with cfg's seat count and blind structure.
// Passing a nil sink gives the table its own buffering queue, drained with
// Drain after every call; passing a Sink delivers events to it immediately
// and Drain becomes a no-op.
func NewTable(id string, cfg TableConfig, rng *rand.Rand, sink Sink) *Table {
	t := &Table{
		ID:     id,
		Config: cfg,
		Seats:  NewPlayerSeats(cfg.Seats),
		button: -1,
		rng:    rng,
	}
	if sink == nil {
		qs := newQueueingSink()
		t.internalSink = qs
		t.sink = qs
	} else {
		t.sink = sink
	}
	return t
}

// Drain returns and clears every event buffered since the last Drain. It
// only produces anything when the table was built with a nil Sink; a host
// supplying its own Sink already received events as they happened.
func (t *Table) Drain() ([]PublicEvent, []PrivateEvent) {
	if t.internalSink == nil {
		return nil, nil
	}
	return t.internalSink.drain()
}

// AddPlayer seats player at seatIndex, or at the first free seat if
// seatIndex is negative. Failures are reported privately rather than
// returned, matching the engine's event-driven error model.
func (t *Table) AddPlayer(player *Player, seatIndex int) {
	if t.Seats.Contains(player.ID) {
		privateOut(t.sink, player.ID, EvtPlayerAlreadyAtTable, map[string]any{"table_id": t.ID})
		return
	}
	if player.Money < t.Config.MinBuyIn {
		privateOut(t.sink, player.ID, EvtBuyinTooLow, map[string]any{"table_id": t.ID})
		return
	}

	var seat int
	if seatIndex >= 0 {
		if !t.Seats.SeatFree(seatIndex) {
			privateOut(t.sink, player.ID, EvtTableFull, map[string]any{"table_id": t.ID})
			return
		}
		t.Seats.SeatPlayerAt(player, seatIndex)
		seat = seatIndex
	} else {
		seat = t.Seats.Append(player)
		if seat == -1 {
			privateOut(t.sink, player.ID, EvtTableFull, map[string]any{"table_id": t.ID})
			return
		}
	}
	publicOut(t.sink, EvtPlayerJoined, map[string]any{"player_id": player.ID, "seat": seat})
}

// RemovePlayer takes a player off the table. If they are mid-hand, their
// hand is force-folded first: through the round's normal action path if it
// was their turn, otherwise via ForceFold so the state machine can react to
// the fold without handing them a turn they never took.
func (t *Table) RemovePlayer(playerID string) {
	if !t.Seats.Contains(playerID) {
		return
	}
	t.Seats.Remove(playerID)

	if t.round != nil && !t.round.Closed() {
		t.round.ForceFold(playerID)
	}
	publicOut(t.sink, EvtPlayerRemoved, map[string]any{"player_id": playerID})
}

// StartRound begins a new hand, provided none is already in progress and at
// least two players have chips to play with.
func (t *Table) StartRound(roundID string) {
	if t.round != nil && !t.round.Closed() {
		publicOut(t.sink, EvtRoundInProgress, nil)
		return
	}

	t.kickLosers()

	notBroke := 0
	for _, p := range t.Seats {
		if p != nil && p.Money > 0 {
			notBroke++
		}
	}
	if notBroke < 2 {
		publicOut(t.sink, EvtIncorrectNumberOfPlayers, nil)
		return
	}

	t.button = t.Seats.NextOccupiedIndex(t.button)
	players := t.Seats.GroupFrom(t.button)

	policy, err := t.Config.muckPolicy()
	if err != nil {
		logrus.Warnf("poker: table %s: %v, falling back to default muck policy", t.ID, err)
		policy = DefaultMuckPolicy{}
	}

	publicOut(t.sink, EvtNewRoundStarted, map[string]any{"round_id": roundID})

	round, err := NewRound(roundID, players, t.Config.SmallBlind, t.Config.BigBlind, t.rng, policy, t.sink)
	if err != nil {
		logrus.Errorf("poker: table %s: could not start round %s: %v", t.ID, roundID, err)
		return
	}
	t.round = round
}

// PlaceAction forwards a betting action to the active round, or reports
// ROUND_NOT_INITIALIZED if there is none.
func (t *Table) PlaceAction(playerID string, action ActionType, raiseBy int) {
	if t.round == nil || t.round.Closed() {
		publicOut(t.sink, EvtRoundNotInitialized, nil)
		return
	}
	t.round.PublicIn(playerID, action, raiseBy)
	t.kickLosers()
}

// PlaceChoice forwards a voluntary show/muck decision to the active round.
func (t *Table) PlaceChoice(playerID string, choice ShowdownChoice) {
	if t.round == nil {
		publicOut(t.sink, EvtRoundNotInitialized, nil)
		return
	}
	t.round.PublicInChoice(playerID, choice)
	t.kickLosers()
}

// kickLosers removes every seated player with an empty stack who is not
// still owed anything from the pot: broke and either never entered the
// current hand's pot or already folded out of it.
func (t *Table) kickLosers() {
	for _, p := range t.Seats {
		if p == nil {
			continue
		}
		if p.Money == 0 && (p.Stake == 0 || p.IsFolded) {
			t.Seats.Remove(p.ID)
			publicOut(t.sink, EvtPlayerRemoved, map[string]any{"player_id": p.ID})
		}
	}
}

// RoundInProgress reports whether a hand is currently being played.
func (t *Table) RoundInProgress() bool {
	return t.round != nil && !t.round.Closed()
}

// CurrentRound returns the active round, or nil if none is in progress.
func (t *Table) CurrentRound() *Round {
	return t.round
}
