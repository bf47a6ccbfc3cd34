package game

import (
	"github.com/yourusername/rtsengine/internal/geom"
)

// AutoAttack asks the runtime to pick a target: attack the closest of
// ValidTargets reachable within PathfindRange, moving toward it first
// if necessary. An empty ValidTargets list means anything hostile.
type AutoAttack struct {
	PathfindRange int          `json:"pathfind_range"`
	ValidTargets  []EntityType `json:"valid_targets"`
}

// MoveAction orders a unit toward Target.
type MoveAction struct {
	Target              geom.Vec2 `json:"target"`
	FindClosestPosition bool      `json:"find_closest_position"`
	BreakThrough        bool      `json:"break_through"`
}

// BuildAction orders a building (or builder) to produce EntityType at
// Position.
type BuildAction struct {
	EntityType EntityType `json:"entity_type"`
	Position   geom.Vec2  `json:"position"`
}

// AttackAction orders an attack on a specific entity, or delegates
// target selection via AutoAttack. Exactly one of the two is set.
type AttackAction struct {
	Target     *int        `json:"target,omitempty"`
	AutoAttack *AutoAttack `json:"auto_attack,omitempty"`
}

// RepairAction orders a repairer to restore Target's health.
type RepairAction struct {
	Target int `json:"target"`
}

// EntityAction is the per-entity order for one tick. At most one field
// is set; an empty action means hold.
type EntityAction struct {
	Move   *MoveAction   `json:"move_action,omitempty"`
	Build  *BuildAction  `json:"build_action,omitempty"`
	Attack *AttackAction `json:"attack_action,omitempty"`
	Repair *RepairAction `json:"repair_action,omitempty"`
}

// Action is the full order set for one tick, keyed by entity ID.
type Action struct {
	EntityActions map[int]EntityAction `json:"entity_actions"`
}

// NewAction returns an empty order set.
func NewAction() Action {
	return Action{EntityActions: make(map[int]EntityAction)}
}
