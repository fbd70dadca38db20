// Package engine implements the round state machine and table controller
// that drive a hand of No-Limit Texas Hold'em: blinds, street progression,
// betting validation, side-pot distribution, showdown, and seat management.
// It performs no I/O; callers observe state changes exclusively through the
// events pushed to the Sink supplied at construction.
package engine

import "github.com/kuco23/pokerlib/pkg/poker"

// PublicEventID tags a Round- or Table-scope event visible to every
// observer at the table.
type PublicEventID int

// Public event identifiers, in the rough order they occur across a hand.
const (
	EvtNewRound PublicEventID = iota
	EvtNewTurn
	EvtSmallBlind
	EvtBigBlind
	EvtPlayerFold
	EvtPlayerCheck
	EvtPlayerCall
	EvtPlayerRaise
	EvtPlayerWentAllIn
	EvtPlayerIsAllIn
	EvtPlayerActionRequired
	EvtPublicCardShow
	EvtDeclarePrematureWinner
	EvtDeclareFinishedWinner
	EvtPlayerChoiceRequired
	EvtPlayerRevealCards
	EvtPlayerMuckCards
	EvtRoundFinished
	EvtRoundClosed

	EvtPlayerJoined
	EvtPlayerRemoved
	EvtNewRoundStarted
	EvtRoundNotInitialized
	EvtRoundInProgress
	EvtIncorrectNumberOfPlayers
)

// String names a public event for logging.
func (id PublicEventID) String() string {
	names := [...]string{
		"NewRound", "NewTurn", "SmallBlind", "BigBlind", "PlayerFold",
		"PlayerCheck", "PlayerCall", "PlayerRaise", "PlayerWentAllIn",
		"PlayerIsAllIn", "PlayerActionRequired", "PublicCardShow",
		"DeclarePrematureWinner", "DeclareFinishedWinner", "PlayerChoiceRequired",
		"PlayerRevealCards", "PlayerMuckCards", "RoundFinished", "RoundClosed",
		"PlayerJoined", "PlayerRemoved", "NewRoundStarted", "RoundNotInitialized",
		"RoundInProgress", "IncorrectNumberOfPlayers",
	}
	if int(id) < 0 || int(id) >= len(names) {
		return "Unknown"
	}
	return names[id]
}

// PrivateEventID tags an event delivered only to the referenced player.
type PrivateEventID int

const (
	EvtDealtCards PrivateEventID = iota
	EvtBuyinTooLow
	EvtTableFull
	EvtPlayerAlreadyAtTable
)

func (id PrivateEventID) String() string {
	names := [...]string{"DealtCards", "BuyinTooLow", "TableFull", "PlayerAlreadyAtTable"}
	if int(id) < 0 || int(id) >= len(names) {
		return "Unknown"
	}
	return names[id]
}

// PublicEvent is one entry in a Round's or Table's public event stream.
// Data carries whatever fields are relevant to that event ID; callers
// switch on ID and type-assert the fields they expect.
type PublicEvent struct {
	ID   PublicEventID
	Data map[string]any
}

// PrivateEvent is delivered only to PlayerID.
type PrivateEvent struct {
	PlayerID string
	ID       PrivateEventID
	Data     map[string]any
}

// Sink receives events as they are produced. A Table is constructed with
// one Sink; the default, queueingSink, is what Round and Table push into
// internally, and is what a host drains after every Table call. A host
// that wants push-style delivery instead can implement Sink directly and
// hand it to NewTable, bypassing the drain step entirely.
type Sink interface {
	PublicOut(e PublicEvent)
	PrivateOut(e PrivateEvent)
}

// queueingSink is the default Sink: it buffers events in arrival order for
// a caller to drain explicitly.
type queueingSink struct {
	public  []PublicEvent
	private []PrivateEvent
}

func newQueueingSink() *queueingSink {
	return &queueingSink{}
}

func (s *queueingSink) PublicOut(e PublicEvent) {
	s.public = append(s.public, e)
}

func (s *queueingSink) PrivateOut(e PrivateEvent) {
	s.private = append(s.private, e)
}

// drain returns and clears all buffered events, public first in arrival
// order.
func (s *queueingSink) drain() ([]PublicEvent, []PrivateEvent) {
	pub, priv := s.public, s.private
	s.public, s.private = nil, nil
	return pub, priv
}

func publicOut(sink Sink, id PublicEventID, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	sink.PublicOut(PublicEvent{ID: id, Data: data})
}

func privateOut(sink Sink, playerID string, id PrivateEventID, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	sink.PrivateOut(PrivateEvent{PlayerID: playerID, ID: id, Data: data})
}

// cardStrings renders cards as their two-character codes; event
// construction sites use it for the "cards" field of an event's data.
func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
