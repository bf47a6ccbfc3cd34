// Package sim holds the deterministic replay engines the planners
// search over: a per-tick entity combat simulator, an economy
// simulator, and a coarse segment-level group simulator. All of them
// are side-effect free with respect to the real world state and take
// randomness as an explicit parameter.
package sim

import (
	"math/rand"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/internal/pathfind"
	"github.com/yourusername/rtsengine/pkg/game"
)

// Entity is one simulated unit or building. Positions are absolute map
// coordinates; the simulator only tracks entities whose footprint lies
// inside its window.
type Entity struct {
	ID       int
	PlayerID int
	Type     game.EntityType
	Position geom.Vec2
	Health   int
	Active   bool
	// Available is the per-tick action budget: cleared when the entity
	// attacks or moves, restored before each Simulate.
	Available bool
}

// Player accumulates per-simulation combat aggregates on top of the
// snapshot score.
type Player struct {
	ID             int
	Score          int
	DamageDone     int
	DamageReceived int
}

// EntitySimulator replays combat and movement for the entities inside
// a bounded window. It owns its entities and tile grid; Clone before
// branching a search.
type EntitySimulator struct {
	window  geom.Rect
	props   game.PropertyTable
	players []Player
	// order holds entity IDs in stable snapshot order; entities maps
	// ID to state.
	order    []int
	entities map[int]*Entity
	// tiles is the occupancy grid over the window, 0 for empty,
	// otherwise an entity ID.
	tiles   []int
	actions []Action
}

// NewEntitySimulator snapshots every entity whose footprint overlaps
// window into a fresh simulator. The property table is shared, never
// mutated.
func NewEntitySimulator(window geom.Rect, props game.PropertyTable, entities []game.Entity, players []game.Player) *EntitySimulator {
	s := &EntitySimulator{
		window:   window,
		props:    props,
		entities: make(map[int]*Entity),
		tiles:    make([]int, window.Width()*window.Height()),
	}
	for _, p := range players {
		s.players = append(s.players, Player{ID: p.ID, Score: p.Score})
	}
	for _, e := range entities {
		if !window.Overlaps(geom.Square(e.Position, props[e.Type].Size)) {
			continue
		}
		se := &Entity{
			ID:       e.ID,
			PlayerID: e.PlayerID,
			Type:     e.Type,
			Position: e.Position,
			Health:   e.Health,
			Active:   e.Active,
		}
		s.order = append(s.order, se.ID)
		s.entities[se.ID] = se
		s.fill(se, se.ID)
	}
	return s
}

// Clone returns a deep copy sharing only the read-only property table.
func (s *EntitySimulator) Clone() *EntitySimulator {
	c := &EntitySimulator{
		window:   s.window,
		props:    s.props,
		players:  append([]Player(nil), s.players...),
		order:    append([]int(nil), s.order...),
		entities: make(map[int]*Entity, len(s.entities)),
		tiles:    append([]int(nil), s.tiles...),
		actions:  append([]Action(nil), s.actions...),
	}
	for id, e := range s.entities {
		copied := *e
		c.entities[id] = &copied
	}
	return c
}

// Window returns the simulated sub-rectangle.
func (s *EntitySimulator) Window() geom.Rect { return s.window }

// Properties returns the shared property table.
func (s *EntitySimulator) Properties() game.PropertyTable { return s.props }

// Entity returns a simulated entity by ID.
func (s *EntitySimulator) Entity(id int) (Entity, bool) {
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// VisitEntities calls fn for every live entity in snapshot order.
func (s *EntitySimulator) VisitEntities(fn func(e Entity)) {
	for _, id := range s.order {
		if e, ok := s.entities[id]; ok {
			fn(*e)
		}
	}
}

// EntityCount returns the number of live entities.
func (s *EntitySimulator) EntityCount() int { return len(s.entities) }

// Players returns the per-player aggregates.
func (s *EntitySimulator) Players() []Player { return s.players }

func (s *EntitySimulator) player(id int) *Player {
	for i := range s.players {
		if s.players[i].ID == id {
			return &s.players[i]
		}
	}
	return nil
}

// Score evaluates the state for the given player set: each listed
// player contributes score+damage_done-damage_received positively,
// every other player negatively.
func (s *EntitySimulator) Score(playerIDs ...int) int {
	total := 0
	for _, p := range s.players {
		v := p.Score + p.DamageDone - p.DamageReceived
		mine := false
		for _, id := range playerIDs {
			if p.ID == id {
				mine = true
				break
			}
		}
		if mine {
			total += v
		} else {
			total -= v
		}
	}
	return total
}

// HasActiveOpponent reports whether any armed active entity belongs to
// a player outside the given set.
func (s *EntitySimulator) HasActiveOpponent(playerIDs ...int) bool {
	for _, id := range s.order {
		e, ok := s.entities[id]
		if !ok || !e.Active || e.PlayerID == game.NoPlayer {
			continue
		}
		if s.props[e.Type].Attack == nil {
			continue
		}
		mine := false
		for _, pid := range playerIDs {
			if e.PlayerID == pid {
				mine = true
				break
			}
		}
		if !mine {
			return true
		}
	}
	return false
}

// AddAction queues one entity's command for the next Simulate call.
func (s *EntitySimulator) AddAction(a Action) {
	s.actions = append(s.actions, a)
}

// Simulate advances one tick: auto actions are resolved against the
// current occupancy, the action list is shuffled, attacks are applied,
// then moves, then dead and out-of-window entities are purged. Invalid
// actions are dropped silently.
func (s *EntitySimulator) Simulate(rng *rand.Rand) {
	for _, id := range s.order {
		if e, ok := s.entities[id]; ok {
			e.Available = true
		}
	}

	for i := range s.actions {
		s.actions[i] = s.resolve(s.actions[i])
	}
	rng.Shuffle(len(s.actions), func(i, j int) {
		s.actions[i], s.actions[j] = s.actions[j], s.actions[i]
	})

	for _, a := range s.actions {
		if a.Kind == ActionAttack {
			s.applyAttack(a)
		}
	}
	s.applyMoves()
	s.purge()
	s.actions = s.actions[:0]
}

// resolve turns auto variants into a concrete Attack, Move or None
// based on the pre-shuffle occupancy.
func (s *EntitySimulator) resolve(a Action) Action {
	if a.Kind != ActionAutoAttack && a.Kind != ActionAttackInRange {
		return a
	}
	e, ok := s.entities[a.EntityID]
	if !ok || e.Health <= 0 {
		return NoneAction(a.EntityID)
	}
	p := s.props[e.Type]
	if p.Attack == nil {
		return NoneAction(a.EntityID)
	}
	target, dist := s.nearestEnemy(e)
	if target == nil {
		return NoneAction(a.EntityID)
	}
	if dist <= p.Attack.Range {
		return AttackEntityAction(e.ID, target.ID)
	}
	if a.Kind == ActionAttackInRange || dist > p.SightRange || !p.CanMove {
		return NoneAction(e.ID)
	}
	step, ok := s.stepToward(e, target, p.Attack.Range)
	if !ok {
		return NoneAction(e.ID)
	}
	return MoveEntityAction(e.ID, step.Sub(e.Position))
}

func (s *EntitySimulator) nearestEnemy(e *Entity) (*Entity, int) {
	var best *Entity
	bestDist := 0
	bounds := geom.Square(e.Position, s.props[e.Type].Size)
	for _, id := range s.order {
		o, ok := s.entities[id]
		if !ok || o.Health <= 0 || o.PlayerID == game.NoPlayer || o.PlayerID == e.PlayerID {
			continue
		}
		d := bounds.Distance(geom.Square(o.Position, s.props[o.Type].Size))
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, bestDist
}

// simGrid adapts the occupancy grid for pathfinding; the moving entity
// does not block itself.
type simGrid struct {
	s      *EntitySimulator
	selfID int
}

func (g simGrid) Bounds() geom.Rect { return g.s.window }

func (g simGrid) Blocked(pos geom.Vec2) bool {
	t := g.s.tiles[g.s.index(pos)]
	return t != 0 && t != g.selfID
}

func (s *EntitySimulator) stepToward(e, target *Entity, radius int) (geom.Vec2, bool) {
	tb := geom.Square(target.Position, s.props[target.Type].Size)
	return pathfind.NextStep(simGrid{s: s, selfID: e.ID}, e.Position, pathfind.RectTarget{Bounds: tb, Radius: radius})
}

func (s *EntitySimulator) applyAttack(a Action) {
	attacker, ok := s.entities[a.EntityID]
	if !ok || attacker.Health <= 0 || !attacker.Available {
		return
	}
	target, ok := s.entities[a.Target]
	if !ok || target.Health <= 0 {
		return
	}
	ap := s.props[attacker.Type]
	if ap.Attack == nil {
		return
	}
	ab := geom.Square(attacker.Position, ap.Size)
	tb := geom.Square(target.Position, s.props[target.Type].Size)
	if ab.Distance(tb) > ap.Attack.Range {
		return
	}
	attacker.Available = false

	dealt := ap.Attack.Damage
	if dealt > target.Health {
		dealt = target.Health
	}
	target.Health -= dealt
	if target.PlayerID != game.NoPlayer {
		if p := s.player(attacker.PlayerID); p != nil {
			p.DamageDone += dealt
		}
		if p := s.player(target.PlayerID); p != nil {
			p.DamageReceived += dealt
		}
	}
	if target.Health <= 0 {
		if p := s.player(attacker.PlayerID); p != nil {
			p.Score += s.props[target.Type].DestroyScore
		}
	}
}

// applyMoves resolves queued moves with fixed-point iteration so that
// a chain of units each stepping into the cell the previous one vacates
// all succeed regardless of list order.
func (s *EntitySimulator) applyMoves() {
	pending := make([]Action, 0, len(s.actions))
	for _, a := range s.actions {
		if a.Kind == ActionMove {
			pending = append(pending, a)
		}
	}
	for {
		progress := false
		remaining := pending[:0]
		for _, a := range pending {
			switch s.tryMove(a) {
			case moveApplied:
				progress = true
			case moveBlocked:
				remaining = append(remaining, a)
			case moveInvalid:
			}
		}
		pending = remaining
		if !progress || len(pending) == 0 {
			return
		}
	}
}

type moveResult int

const (
	moveApplied moveResult = iota
	moveBlocked
	moveInvalid
)

func (s *EntitySimulator) tryMove(a Action) moveResult {
	e, ok := s.entities[a.EntityID]
	if !ok || e.Health <= 0 || !e.Available {
		return moveInvalid
	}
	p := s.props[e.Type]
	if !p.CanMove || a.Direction.Abs().Sum() > 1 {
		return moveInvalid
	}
	dst := e.Position.Add(a.Direction)
	if s.window.Contains(dst) {
		if s.tiles[s.index(dst)] != 0 {
			return moveBlocked
		}
		s.tiles[s.index(dst)] = e.ID
	}
	// A destination outside the window is allowed; the entity leaves
	// the simulation and is purged below.
	s.tiles[s.index(e.Position)] = 0
	e.Position = dst
	e.Available = false
	return moveApplied
}

func (s *EntitySimulator) purge() {
	kept := s.order[:0]
	for _, id := range s.order {
		e, ok := s.entities[id]
		if !ok {
			continue
		}
		size := s.props[e.Type].Size
		inside := s.window.Contains(e.Position) &&
			s.window.Contains(e.Position.Add(geom.Both(size - 1)))
		if e.Health <= 0 || !inside {
			s.clear(e)
			delete(s.entities, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func (s *EntitySimulator) index(pos geom.Vec2) int {
	rel := pos.Sub(s.window.Min)
	return rel.X + rel.Y*s.window.Width()
}

func (s *EntitySimulator) fill(e *Entity, value int) {
	geom.VisitSquareInBounds(e.Position, s.props[e.Type].Size, s.window, func(p geom.Vec2) {
		s.tiles[s.index(p)] = value
	})
}

func (s *EntitySimulator) clear(e *Entity) {
	geom.VisitSquareInBounds(e.Position, s.props[e.Type].Size, s.window, func(p geom.Vec2) {
		if s.tiles[s.index(p)] == e.ID {
			s.tiles[s.index(p)] = 0
		}
	})
}
