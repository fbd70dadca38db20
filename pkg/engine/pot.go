package engine

import "math"

// distributeSidePots groups the hand's competitors into sub-pots capped by
// ascending stake and awards each sub-pot to whoever holds the best hand
// among the players who could have contested it, emitting
// DECLARE_FINISHED_WINNER for every nonzero award. It never reveals a hole
// card — that's the muck policy's job, invoked by the caller once this
// returns.
//
// Fractional shares (a sub-pot split among tied winners, or a stake that
// doesn't divide evenly) are tracked at full precision in a local working
// copy of each player's stake and only rounded once, per award, to avoid
// compounding rounding error across repeated subtraction.
func distributeSidePots(r *Round) {
	stakeSorted := r.players.SortedForPotDistribution()
	if len(stakeSorted) == 0 {
		return
	}

	remaining := make(map[string]float64, len(r.players))
	for _, p := range r.players {
		remaining[p.ID] = float64(p.Stake)
	}

	groupStarts := []int{0}
	for i := 1; i < len(stakeSorted); i++ {
		if stakeSorted[i-1].Stake < stakeSorted[i].Stake {
			groupStarts = append(groupStarts, i)
		}
	}

	for _, i := range groupStarts {
		competitors := stakeSorted[i:]
		// subgameStake is this tier's increment over the tiers already paid
		// out by earlier groups, so it must come from remaining (each
		// contributor's stake still outstanding) rather than the player's
		// original Stake, which every earlier group has already drawn from.
		subgameStake := remaining[competitors[0].ID]
		winners := competitors.Winners()
		nsplit := len(winners)

		takeFrom := make(map[string]float64, len(r.players))
		for _, p := range r.players {
			switch {
			case remaining[p.ID] > 0 && remaining[p.ID] <= subgameStake:
				takeFrom[p.ID] = remaining[p.ID] / float64(nsplit)
			case remaining[p.ID] > 0 && subgameStake <= remaining[p.ID]:
				takeFrom[p.ID] = subgameStake / float64(nsplit)
			default:
				takeFrom[p.ID] = 0
			}
		}

		for _, w := range winners {
			won := 0.0
			for _, p := range r.players {
				take := takeFrom[p.ID]
				won += take
				remaining[p.ID] -= take
			}

			rounded := int(math.RoundToEven(won))
			if rounded == 0 {
				continue
			}
			w.Money += rounded
			publicOut(r.sink, EvtDeclareFinishedWinner, map[string]any{
				"player_id": w.ID,
				"money_won": rounded,
				"handname":  w.EvaluatedHand.Category(),
				"hand":      w.EvaluatedHand.Cards(),
			})
		}
	}

	for _, p := range r.players {
		p.Stake = int(math.Round(remaining[p.ID]))
	}
}
