package engine

import "sort"

// PlayerGroup is a compact, index-addressable view of the players in a
// single Round: no nil entries, indices wrap modulo the group's length so
// "next" and "previous" traversal is naturally circular.
type PlayerGroup []*Player

// At wraps the index modulo the group size, indexing circularly rather
// than panicking on an out-of-range index.
func (g PlayerGroup) At(i int) *Player {
	n := len(g)
	return g[((i%n)+n)%n]
}

// ByID returns the player with the given ID, or nil.
func (g PlayerGroup) ByID(id string) *Player {
	for _, p := range g {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CountActive counts players who are neither folded nor all-in.
func (g PlayerGroup) CountActive() int {
	n := 0
	for _, p := range g {
		if p.IsActive() {
			n++
		}
	}
	return n
}

// CountNotFolded counts players who have not folded (active or all-in).
func (g PlayerGroup) CountNotFolded() int {
	n := 0
	for _, p := range g {
		if !p.IsFolded {
			n++
		}
	}
	return n
}

// Active returns the subgroup of players who are neither folded nor all-in.
func (g PlayerGroup) Active() PlayerGroup {
	var out PlayerGroup
	for _, p := range g {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// NotFolded returns the subgroup of players who have not folded.
func (g PlayerGroup) NotFolded() PlayerGroup {
	var out PlayerGroup
	for _, p := range g {
		if !p.IsFolded {
			out = append(out, p)
		}
	}
	return out
}

// NextActiveIndex returns the next index, strictly after i and searching
// circularly, whose player is active. Returns -1 if none exists.
func (g PlayerGroup) NextActiveIndex(i int) int {
	n := len(g)
	for k := 1; k < n; k++ {
		j := (i + k) % n
		if g[j].IsActive() {
			return j
		}
	}
	return -1
}

// PreviousActiveIndex returns the nearest index before i, searching
// circularly, whose player is active. Returns -1 if none exists.
func (g PlayerGroup) PreviousActiveIndex(i int) int {
	n := len(g)
	for k := 1; k < n; k++ {
		j := (((i - k) % n) + n) % n
		if g[j].IsActive() {
			return j
		}
	}
	return -1
}

// AllPlayedTurn reports whether every active player has acted since the
// current street began.
func (g PlayerGroup) AllPlayedTurn() bool {
	for _, p := range g {
		if p.IsActive() && !p.PlayedTurn {
			return false
		}
	}
	return true
}

// Winners returns every player in the group whose EvaluatedHand ties for
// best. Every player in g must have a non-nil EvaluatedHand.
func (g PlayerGroup) Winners() PlayerGroup {
	if len(g) == 0 {
		return nil
	}
	best := g[0]
	for _, p := range g[1:] {
		if p.EvaluatedHand.Compare(best.EvaluatedHand) > 0 {
			best = p
		}
	}
	var winners PlayerGroup
	for _, p := range g {
		if p.EvaluatedHand.Compare(best.EvaluatedHand) == 0 {
			winners = append(winners, p)
		}
	}
	return winners
}

// SortedForPotDistribution orders the group the way side-pot distribution
// needs: all-in players first by ascending stake, then active players by
// ascending stake. This ordering seeds distributeSidePots's stake-tier
// grouping.
func (g PlayerGroup) SortedForPotDistribution() PlayerGroup {
	var allIn, active PlayerGroup
	for _, p := range g {
		switch {
		case p.IsAllIn:
			allIn = append(allIn, p)
		case p.IsActive():
			active = append(active, p)
		}
	}
	sort.SliceStable(allIn, func(i, j int) bool { return allIn[i].Stake < allIn[j].Stake })
	sort.SliceStable(active, func(i, j int) bool { return active[i].Stake < active[j].Stake })

	out := make(PlayerGroup, 0, len(allIn)+len(active))
	out = append(out, allIn...)
	out = append(out, active...)
	return out
}

// PlayerSeats is a fixed-capacity vector of seats, each either empty (nil)
// or occupied. It is the Table's seating chart; a player's seat index is
// its position in this vector.
type PlayerSeats []*Player

// NewPlayerSeats allocates n empty seats.
func NewPlayerSeats(n int) PlayerSeats {
	return make(PlayerSeats, n)
}

// NFilled counts occupied seats.
func (s PlayerSeats) NFilled() int {
	n := 0
	for _, p := range s {
		if p != nil {
			n++
		}
	}
	return n
}

// SeatFree reports whether seat index ind exists and is empty.
func (s PlayerSeats) SeatFree(ind int) bool {
	return ind >= 0 && ind < len(s) && s[ind] == nil
}

// SeatPlayerAt places player at the given seat if it is free, returning
// whether it succeeded.
func (s PlayerSeats) SeatPlayerAt(player *Player, ind int) bool {
	if s.SeatFree(ind) {
		s[ind] = player
		return true
	}
	return false
}

// Append seats player in the first free seat, returning its index, or -1
// if the table is full.
func (s PlayerSeats) Append(player *Player) int {
	for i, p := range s {
		if p == nil {
			s[i] = player
			return i
		}
	}
	return -1
}

// Remove clears the seat occupied by a player with the given ID, if any.
func (s PlayerSeats) Remove(id string) {
	for i, p := range s {
		if p != nil && p.ID == id {
			s[i] = nil
		}
	}
}

// Contains reports whether a player with the given ID is seated.
func (s PlayerSeats) Contains(id string) bool {
	return s.ByID(id) != nil
}

// ByID returns the seated player with the given ID, or nil.
func (s PlayerSeats) ByID(id string) *Player {
	for _, p := range s {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// SeatOf returns the seat index of the player with the given ID, or -1.
func (s PlayerSeats) SeatOf(id string) int {
	for i, p := range s {
		if p != nil && p.ID == id {
			return i
		}
	}
	return -1
}

// Group returns a compact PlayerGroup of every occupied seat, in seat
// order starting from index 0.
func (s PlayerSeats) Group() PlayerGroup {
	var g PlayerGroup
	for _, p := range s {
		if p != nil {
			g = append(g, p)
		}
	}
	return g
}

// GroupFrom returns a compact PlayerGroup of every occupied seat, starting
// at seat index `from` and wrapping circularly. Used to snapshot a round's
// players in button-relative order.
func (s PlayerSeats) GroupFrom(from int) PlayerGroup {
	n := len(s)
	var g PlayerGroup
	for k := 0; k < n; k++ {
		if p := s[(from+k)%n]; p != nil {
			g = append(g, p)
		}
	}
	return g
}

// NextOccupiedIndex returns the next occupied seat after i, searching
// circularly. If no other seat is occupied it returns i itself when seat i
// is occupied, and -1 when no seat is.
func (s PlayerSeats) NextOccupiedIndex(i int) int {
	n := len(s)
	for k := 1; k <= n; k++ {
		j := (i + k) % n
		if s[j] != nil {
			return j
		}
	}
	return -1
}
