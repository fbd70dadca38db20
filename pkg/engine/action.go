package engine

// ActionType is a betting action a player may submit while a Round is
// awaiting their turn.
type ActionType int

// ActionType constants, the five betting inputs a player can submit.
const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionRaise
	ActionAllIn
)

// String returns the action name, e.g. "Fold", "Raise".
func (a ActionType) String() string {
	return []string{"Fold", "Check", "Call", "Raise", "AllIn"}[a]
}

// ShowdownChoice is a voluntary SHOW or MUCK input, only valid from a
// player listed in the Round's muck-optioned set.
type ShowdownChoice int

const (
	ChoiceShow ShowdownChoice = iota
	ChoiceMuck
)

func (c ShowdownChoice) String() string {
	return []string{"Show", "Muck"}[c]
}

// TableAction is a lifecycle input handled by the Table itself rather than
// forwarded to the current Round.
type TableAction int

const (
	TableActionStartRound TableAction = iota
	TableActionBuyIn
	TableActionLeave
)

func (a TableAction) String() string {
	return []string{"StartRound", "BuyIn", "Leave"}[a]
}
