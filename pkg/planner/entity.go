package planner

import (
	"math/rand"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/sim"
)

// EntityPlan is a multi-tick action sequence for one entity. Empty
// Actions means the search found no admissible outcome and the caller
// should fall back to default behavior.
type EntityPlan struct {
	Score   int
	Actions []sim.Action
}

// entityState is one node of the search tree. Transition is the arena
// index of the edge that produced it, -1 for the root.
type entityState struct {
	depth      int
	sim        *sim.EntitySimulator
	transition int
}

type entityTransition struct {
	parent int
	action sim.Action
}

// EntityPlanner searches action sequences for a single entity. Other
// units act out caller-supplied plan hints or a scripted auto-attack.
type EntityPlanner struct {
	entityID  int
	playerIDs []int
	minDepth  int
	maxDepth  int

	states      []entityState
	transitions []entityTransition
}

// NewEntityPlanner plans for entityID on behalf of the given players.
// A leaf is admissible once its depth reaches minDepth; branches stop
// growing at maxDepth.
func NewEntityPlanner(entityID int, playerIDs []int, minDepth, maxDepth int) *EntityPlanner {
	return &EntityPlanner{
		entityID:  entityID,
		playerIDs: playerIDs,
		minDepth:  minDepth,
		maxDepth:  maxDepth,
	}
}

// Transitions returns how many search edges the last Update created.
func (p *EntityPlanner) Transitions() int { return len(p.transitions) }

// Update runs the search from the given snapshot and returns the best
// plan found within maxTransitions expansions. Hints supply fixed
// per-tick actions for other entities, indexed by depth.
func (p *EntityPlanner) Update(snapshot *sim.EntitySimulator, hints map[int][]sim.Action,
	maxTransitions int, rng *rand.Rand) EntityPlan {

	p.states = p.states[:0]
	p.transitions = p.transitions[:0]

	if !snapshot.HasActiveOpponent(p.playerIDs...) {
		return EntityPlan{}
	}

	var f frontier
	p.states = append(p.states, entityState{sim: snapshot.Clone(), transition: -1})
	f.push(snapshot.Score(p.playerIDs...), 0)

	bestState := -1
	bestScore := 0
	for {
		node, ok := f.pop()
		if !ok {
			break
		}
		depth := p.states[node.state].depth
		base := p.states[node.state].sim

		if depth >= p.minDepth {
			if bestState < 0 || node.score > bestScore {
				bestState, bestScore = node.state, node.score
			}
		}
		if depth >= p.maxDepth || len(p.transitions) >= maxTransitions {
			continue
		}
		entity, ok := base.Entity(p.entityID)
		if !ok || !base.HasActiveOpponent(p.playerIDs...) {
			continue
		}

		candidates := p.candidates(base, entity)
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		for _, action := range candidates {
			if len(p.transitions) >= maxTransitions {
				break
			}
			child := base.Clone()
			child.AddAction(action)
			p.addOtherActions(child, depth, hints)
			child.Simulate(rng)

			p.transitions = append(p.transitions, entityTransition{parent: node.state, action: action})
			p.states = append(p.states, entityState{
				depth:      depth + 1,
				sim:        child,
				transition: len(p.transitions) - 1,
			})
			f.push(child.Score(p.playerIDs...), len(p.states)-1)
		}
	}

	if bestState < 0 {
		return EntityPlan{}
	}
	return EntityPlan{Score: bestScore, Actions: p.reconstruct(bestState)}
}

// candidates lists every legal action for the entity in this state:
// attacks on enemies in range, single steps into free window cells, and
// holding position.
func (p *EntityPlanner) candidates(s *sim.EntitySimulator, entity sim.Entity) []sim.Action {
	props := s.Properties()[entity.Type]
	out := []sim.Action{sim.NoneAction(entity.ID)}

	if props.Attack != nil {
		bounds := geom.Square(entity.Position, props.Size)
		s.VisitEntities(func(o sim.Entity) {
			if o.PlayerID == game.NoPlayer || o.PlayerID == entity.PlayerID {
				return
			}
			osize := s.Properties()[o.Type].Size
			if bounds.Distance(geom.Square(o.Position, osize)) <= props.Attack.Range {
				out = append(out, sim.AttackEntityAction(entity.ID, o.ID))
			}
		})
	}
	if props.CanMove {
		for _, d := range []geom.Vec2{geom.OnlyX(1), geom.OnlyX(-1), geom.OnlyY(1), geom.OnlyY(-1)} {
			if s.Window().Contains(entity.Position.Add(d)) {
				out = append(out, sim.MoveEntityAction(entity.ID, d))
			}
		}
	}
	return out
}

// addOtherActions queues the remaining entities' behavior for one tick:
// the hinted action when a plan hint covers this depth, otherwise a
// scripted auto-attack for active armed units.
func (p *EntityPlanner) addOtherActions(s *sim.EntitySimulator, depth int, hints map[int][]sim.Action) {
	s.VisitEntities(func(o sim.Entity) {
		if o.ID == p.entityID {
			return
		}
		if plan, ok := hints[o.ID]; ok && depth < len(plan) {
			s.AddAction(plan[depth])
			return
		}
		if !o.Active || o.PlayerID == game.NoPlayer {
			return
		}
		if s.Properties()[o.Type].Attack == nil {
			return
		}
		s.AddAction(sim.AutoAttackAction(o.ID))
	})
}

func (p *EntityPlanner) reconstruct(state int) []sim.Action {
	var actions []sim.Action
	for t := p.states[state].transition; t >= 0; {
		tr := p.transitions[t]
		actions = append(actions, tr.action)
		t = p.states[tr.parent].transition
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}
