package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures every event in arrival order for assertions, in
// place of the default queueingSink's drain-based API.
type recordingSink struct {
	public  []PublicEvent
	private []PrivateEvent
}

func (s *recordingSink) PublicOut(e PublicEvent)   { s.public = append(s.public, e) }
func (s *recordingSink) PrivateOut(e PrivateEvent) { s.private = append(s.private, e) }

func (s *recordingSink) publicIDs() []PublicEventID {
	ids := make([]PublicEventID, len(s.public))
	for i, e := range s.public {
		ids[i] = e.ID
	}
	return ids
}

func newHeadsUpRound(t *testing.T, sink Sink, policy MuckPolicy) (*Round, *Player, *Player) {
	t.Helper()
	// player2 sits on the button (local index 0, posts the big blind
	// heads-up); player1 is the small blind.
	player2 := NewPlayer("t", "player2", "player2", 1000)
	player1 := NewPlayer("t", "player1", "player1", 1000)
	players := PlayerGroup{player2, player1}

	rng := rand.New(rand.NewSource(1))
	round, err := NewRound("round-1", players, 5, 10, rng, policy, sink)
	require.NoError(t, err)
	return round, player1, player2
}

func TestRound_StartOfRoundEventOrder(t *testing.T) {
	sink := &recordingSink{}
	_, player1, player2 := newHeadsUpRound(t, sink, nil)

	require.Equal(t, []PublicEventID{
		EvtNewRound, EvtNewTurn, EvtSmallBlind, EvtBigBlind, EvtPlayerActionRequired,
	}, sink.publicIDs())

	assert.Equal(t, player1.ID, sink.public[2].Data["player_id"])
	assert.Equal(t, 5, sink.public[2].Data["amount"])
	assert.Equal(t, player2.ID, sink.public[3].Data["player_id"])
	assert.Equal(t, 10, sink.public[3].Data["amount"])
	assert.Equal(t, player1.ID, sink.public[4].Data["player_id"])
	assert.Equal(t, 5, sink.public[4].Data["to_call"])

	require.Len(t, sink.private, 2)
	assert.Equal(t, EvtDealtCards, sink.private[0].ID)
}

func TestRound_HeadsUpEndToEnd(t *testing.T) {
	sink := &recordingSink{}
	round, player1, player2 := newHeadsUpRound(t, sink, nil)

	drain := func() []PublicEvent {
		events := sink.public
		sink.public = nil
		return events
	}
	drain() // discard the start-of-round events, already checked above

	// Step 2: player1 calls the big blind.
	round.PublicIn(player1.ID, ActionCall, 0)
	events := drain()
	require.Equal(t, []PublicEventID{EvtPlayerCall, EvtPlayerActionRequired}, idsOf(events))
	assert.Equal(t, 5, events[0].Data["paid_amount"])
	assert.Equal(t, 0, events[1].Data["to_call"])

	// Step 3: player2 checks, advancing to the flop.
	round.PublicIn(player2.ID, ActionCheck, 0)
	events = drain()
	require.Equal(t, []PublicEventID{EvtPlayerCheck, EvtNewTurn, EvtPlayerActionRequired}, idsOf(events))
	assert.Equal(t, StreetFlop, events[1].Data["turn"])
	assert.Len(t, events[1].Data["board"], 3)
	assert.Equal(t, player1.ID, events[2].Data["player_id"])

	// Step 4: player1 checks.
	round.PublicIn(player1.ID, ActionCheck, 0)
	events = drain()
	require.Equal(t, []PublicEventID{EvtPlayerCheck, EvtPlayerActionRequired}, idsOf(events))

	// Step 5: player2 raises by 50.
	round.PublicIn(player2.ID, ActionRaise, 50)
	events = drain()
	require.Equal(t, []PublicEventID{EvtPlayerRaise, EvtPlayerActionRequired}, idsOf(events))
	assert.Equal(t, 50, events[0].Data["raised_by"])
	assert.Equal(t, 50, events[1].Data["to_call"])

	// Step 6: player1 calls, advancing to the turn.
	round.PublicIn(player1.ID, ActionCall, 0)
	events = drain()
	require.Equal(t, []PublicEventID{EvtPlayerCall, EvtNewTurn, EvtPlayerActionRequired}, idsOf(events))
	assert.Equal(t, 50, events[0].Data["paid_amount"])
	assert.Equal(t, StreetTurn, events[1].Data["turn"])
	assert.Equal(t, 0, events[2].Data["to_call"])

	// Step 7: two checks advance to the river.
	round.PublicIn(player1.ID, ActionCheck, 0)
	drain()
	round.PublicIn(player2.ID, ActionCheck, 0)
	events = drain()
	require.Equal(t, []PublicEventID{EvtPlayerCheck, EvtNewTurn, EvtPlayerActionRequired}, idsOf(events))
	assert.Equal(t, StreetRiver, events[1].Data["turn"])

	// Step 8: player1 shoves their remaining stack.
	require.Equal(t, 940, player1.Money)
	round.PublicIn(player1.ID, ActionAllIn, 0)
	events = drain()
	require.Equal(t, []PublicEventID{EvtPlayerIsAllIn, EvtPlayerWentAllIn, EvtPlayerActionRequired}, idsOf(events))
	assert.Equal(t, 940, events[0].Data["all_in_stake"])
	assert.Equal(t, 940, events[1].Data["paid_amount"])
	assert.Equal(t, 940, events[2].Data["to_call"])

	// Step 9: player2 calls, reaching showdown.
	round.PublicIn(player2.ID, ActionCall, 0)
	events = drain()
	require.Equal(t, EvtPlayerIsAllIn, events[0].ID)
	require.Equal(t, EvtPlayerCall, events[1].ID)
	assert.Equal(t, 940, events[0].Data["all_in_stake"])
	assert.Equal(t, 940, events[1].Data["paid_amount"])

	foundWinner := false
	for _, e := range events {
		if e.ID == EvtDeclareFinishedWinner {
			foundWinner = true
		}
	}
	assert.True(t, foundWinner, "expected at least one DECLARE_FINISHED_WINNER event")
	assert.True(t, round.Finished())
}

func idsOf(events []PublicEvent) []PublicEventID {
	ids := make([]PublicEventID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestRound_CheckWithOutstandingCallIsSilentlyIgnored(t *testing.T) {
	sink := &recordingSink{}
	round, player1, _ := newHeadsUpRound(t, sink, nil)
	sink.public = nil

	round.PublicIn(player1.ID, ActionCheck, 0)
	assert.Empty(t, sink.public, "CHECK with to_call > 0 must be a no-op")
}

func TestRound_ActionFromNonCurrentPlayerIsSilentlyIgnored(t *testing.T) {
	sink := &recordingSink{}
	round, _, player2 := newHeadsUpRound(t, sink, nil)
	sink.public = nil

	round.PublicIn(player2.ID, ActionCall, 0)
	assert.Empty(t, sink.public, "an action from a player who is not current must be a no-op")
}

func TestRound_FoldEndsHandImmediately(t *testing.T) {
	sink := &recordingSink{}
	round, player1, player2 := newHeadsUpRound(t, sink, nil)
	sink.public = nil

	round.PublicIn(player1.ID, ActionFold, 0)
	ids := idsOf(sink.public)
	require.Contains(t, ids, EvtPlayerFold)
	require.Contains(t, ids, EvtDeclarePrematureWinner)
	assert.True(t, round.Finished())

	for _, e := range sink.public {
		if e.ID == EvtDeclarePrematureWinner {
			assert.Equal(t, player2.ID, e.Data["player_id"])
		}
	}
}

func TestRound_ChipsAreConservedThroughoutHand(t *testing.T) {
	sink := &recordingSink{}
	round, player1, player2 := newHeadsUpRound(t, sink, nil)
	initial := player1.Money + player2.Money + player1.Stake + player2.Stake

	actions := []struct {
		player string
		action ActionType
		by     int
	}{
		{player1.ID, ActionCall, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionAllIn, 0},
		{player2.ID, ActionCall, 0},
	}
	for _, step := range actions {
		round.PublicIn(step.player, step.action, step.by)
		total := player1.Money + player2.Money + player1.Stake + player2.Stake
		assert.Equal(t, initial, total, "chip conservation violated")
	}
	assert.Zero(t, player1.Stake)
	assert.Zero(t, player2.Stake)
}

func TestRound_DefaultMuckPolicyStaysOpenUntilChoicesAreAnswered(t *testing.T) {
	sink := &recordingSink{}
	round, player1, player2 := newHeadsUpRound(t, sink, DefaultMuckPolicy{})

	for _, step := range []struct {
		player string
		action ActionType
		by     int
	}{
		{player1.ID, ActionCall, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionAllIn, 0},
		{player2.ID, ActionCall, 0},
	} {
		round.PublicIn(step.player, step.action, step.by)
	}

	assert.True(t, round.Finished())
	pending := round.PendingChoices()
	if len(pending) > 0 {
		assert.False(t, round.Closed(), "round must stay open while a choice is outstanding")
		for _, id := range pending {
			round.PublicInChoice(id, ChoiceMuck)
		}
		assert.True(t, round.Closed())
	} else {
		assert.True(t, round.Closed())
	}
}

func TestRound_AlwaysShowPolicyNeverWaits(t *testing.T) {
	sink := &recordingSink{}
	round, player1, player2 := newHeadsUpRound(t, sink, AlwaysShowPolicy{})

	for _, step := range []struct {
		player string
		action ActionType
		by     int
	}{
		{player1.ID, ActionCall, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionAllIn, 0},
		{player2.ID, ActionCall, 0},
	} {
		round.PublicIn(step.player, step.action, step.by)
	}

	assert.True(t, round.Finished())
	assert.True(t, round.Closed())
	assert.Empty(t, round.PendingChoices())
}

func TestRound_NeverAskPolicyAutoShows(t *testing.T) {
	sink := &recordingSink{}
	round, player1, player2 := newHeadsUpRound(t, sink, NeverAskPolicy{})

	for _, step := range []struct {
		player string
		action ActionType
		by     int
	}{
		{player1.ID, ActionCall, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionCheck, 0},
		{player2.ID, ActionCheck, 0},
		{player1.ID, ActionAllIn, 0},
		{player2.ID, ActionCall, 0},
	} {
		round.PublicIn(step.player, step.action, step.by)
	}

	assert.True(t, round.Closed())
	assert.Empty(t, round.PendingChoices())
}
