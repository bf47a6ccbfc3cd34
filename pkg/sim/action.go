package sim

import (
	"github.com/yourusername/rtsengine/internal/geom"
)

// ActionKind tags the command an entity performs during one simulated
// tick.
type ActionKind int

const (
	// ActionNone holds position.
	ActionNone ActionKind = iota
	// ActionAttack attacks a specific entity.
	ActionAttack
	// ActionMove steps one cell in Direction.
	ActionMove
	// ActionAutoAttack engages the nearest enemy in attack range, or
	// approaches the nearest enemy in sight range.
	ActionAutoAttack
	// ActionAttackInRange attacks the nearest enemy already in attack
	// range and never moves.
	ActionAttackInRange
)

// Action is one entity's command for one simulated tick. Auto variants
// are resolved to Attack, Move or None at the start of Simulate.
type Action struct {
	EntityID  int
	Kind      ActionKind
	Target    int       // ActionAttack
	Direction geom.Vec2 // ActionMove, unit vector with Manhattan length <= 1
}

func NoneAction(entityID int) Action {
	return Action{EntityID: entityID, Kind: ActionNone}
}

func AttackEntityAction(entityID, target int) Action {
	return Action{EntityID: entityID, Kind: ActionAttack, Target: target}
}

func MoveEntityAction(entityID int, direction geom.Vec2) Action {
	return Action{EntityID: entityID, Kind: ActionMove, Direction: direction}
}

func AutoAttackAction(entityID int) Action {
	return Action{EntityID: entityID, Kind: ActionAutoAttack}
}

func AttackInRangeAction(entityID int) Action {
	return Action{EntityID: entityID, Kind: ActionAttackInRange}
}
