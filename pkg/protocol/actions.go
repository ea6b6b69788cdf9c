package protocol

// PlayerAction represents an action a player can take on their turn.
type PlayerAction string

const (
	ActionCall  PlayerAction = "CALL"
	ActionCheck PlayerAction = "CHECK"
	ActionRaise PlayerAction = "RAISE"
	ActionFold  PlayerAction = "FOLD"
)

// Known reports whether the action is part of the closed action set.
// Unknown actions are still displayed and logged, just with a generic label.
func (a PlayerAction) Known() bool {
	switch a {
	case ActionCall, ActionCheck, ActionRaise, ActionFold:
		return true
	}
	return false
}

// CarriesAmount reports whether the action's amount field is meaningful.
func (a PlayerAction) CarriesAmount() bool {
	return a == ActionCall || a == ActionRaise
}
