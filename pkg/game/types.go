// Package game defines the shared game model: entity kinds, their
// static per-type properties, players, the per-tick snapshot the engine
// receives, and the wire actions it returns.
package game

import (
	"github.com/yourusername/rtsengine/internal/geom"
)

// EntityType identifies a kind of unit or building.
type EntityType string

const (
	Wall        EntityType = "Wall"
	House       EntityType = "House"
	BuilderBase EntityType = "BuilderBase"
	BuilderUnit EntityType = "BuilderUnit"
	MeleeBase   EntityType = "MeleeBase"
	MeleeUnit   EntityType = "MeleeUnit"
	RangedBase  EntityType = "RangedBase"
	RangedUnit  EntityType = "RangedUnit"
	Resource    EntityType = "Resource"
	Turret      EntityType = "Turret"
)

// NoPlayer marks neutral entities (resources).
const NoPlayer = 0

// AttackProperties describes an entity type's attack, if it has one.
type AttackProperties struct {
	Damage int `json:"damage"`
	Range  int `json:"range"`
}

// RepairProperties describes an entity type's repair capability.
type RepairProperties struct {
	Power int `json:"power"`
}

// BuildProperties lists what an entity type can produce.
type BuildProperties struct {
	Options []EntityType `json:"options"`
}

// Properties is the static per-type property table entry.
type Properties struct {
	Size              int               `json:"size"`
	MaxHealth         int               `json:"max_health"`
	InitialCost       int               `json:"initial_cost"`
	SightRange        int               `json:"sight_range"`
	CanMove           bool              `json:"can_move"`
	PopulationUse     int               `json:"population_use"`
	PopulationProvide int               `json:"population_provide"`
	DestroyScore      int               `json:"destroy_score"`
	ResourcePerHealth int               `json:"resource_per_health"`
	Attack            *AttackProperties `json:"attack,omitempty"`
	Repair            *RepairProperties `json:"repair,omitempty"`
	Build             *BuildProperties  `json:"build,omitempty"`
}

// PropertyTable maps each entity type to its properties.
type PropertyTable map[EntityType]Properties

// Entity is one unit or building as reported in a snapshot.
type Entity struct {
	ID       int        `json:"id"`
	PlayerID int        `json:"player_id"` // NoPlayer for neutral
	Type     EntityType `json:"entity_type"`
	Position geom.Vec2  `json:"position"`
	Health   int        `json:"health"`
	Active   bool       `json:"active"`
}

// Bounds returns the square footprint of the entity.
func (e *Entity) Bounds(props PropertyTable) geom.Rect {
	return geom.Square(e.Position, props[e.Type].Size)
}

// Center returns the center cell of the entity's footprint.
func (e *Entity) Center(props PropertyTable) geom.Vec2 {
	return e.Position.Add(geom.Both(props[e.Type].Size / 2))
}

// Player is one competitor's public state.
type Player struct {
	ID       int `json:"id"`
	Score    int `json:"score"`
	Resource int `json:"resource"`
}

// PlayerView is the partial world snapshot delivered every tick.
type PlayerView struct {
	MyID             int           `json:"my_id"`
	MapSize          int           `json:"map_size"`
	FogOfWar         bool          `json:"fog_of_war"`
	MaxTickCount     int           `json:"max_tick_count"`
	MaxPathfindNodes int           `json:"max_pathfind_nodes"`
	CurrentTick      int           `json:"current_tick"`
	Players          []Player      `json:"players"`
	Entities         []Entity      `json:"entities"`
	Properties       PropertyTable `json:"entity_properties"`
}

// IsUnit reports whether the type is a mobile unit.
func IsUnit(t EntityType) bool {
	switch t {
	case BuilderUnit, MeleeUnit, RangedUnit:
		return true
	}
	return false
}

// IsBase reports whether the type is a production building.
func IsBase(t EntityType) bool {
	switch t {
	case BuilderBase, MeleeBase, RangedBase:
		return true
	}
	return false
}

// IsCombat reports whether the type fights on its own: any armed type
// except the builder, whose attack only harvests.
func IsCombat(t EntityType, props PropertyTable) bool {
	return t != BuilderUnit && props[t].Attack != nil
}
