package planner

import (
	"math/rand"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/sim"
)

// JointAction is one tick's orders for every combat-relevant entity.
type JointAction []sim.Action

// BattlePlan is a sequence of joint actions; consumers usually issue
// only Steps[0] and replan next tick.
type BattlePlan struct {
	Score int
	Steps []JointAction
}

type battleState struct {
	depth      int
	sim        *sim.EntitySimulator
	transition int
}

type battleTransition struct {
	parent int
	step   JointAction
}

// BattlePlanner searches joint action sequences for all combat units of
// the listed players at once. Per-unit candidate lists are zipped: the
// i-th transition takes the i-th candidate of every unit, reusing a
// shorter list's last candidate, so all units' choices stay coupled in
// one combined step.
type BattlePlanner struct {
	playerIDs []int
	minDepth  int
	maxDepth  int

	states      []battleState
	transitions []battleTransition
}

func NewBattlePlanner(playerIDs []int, minDepth, maxDepth int) *BattlePlanner {
	return &BattlePlanner{playerIDs: playerIDs, minDepth: minDepth, maxDepth: maxDepth}
}

// Transitions returns how many search edges the last Update created.
func (p *BattlePlanner) Transitions() int { return len(p.transitions) }

// Update runs the search and returns the best joint plan found within
// maxTransitions expansions. Hints supply precomputed per-entity plans
// for units not owned by the planning players.
func (p *BattlePlanner) Update(snapshot *sim.EntitySimulator, hints map[int][]sim.Action,
	maxTransitions int, rng *rand.Rand) BattlePlan {

	p.states = p.states[:0]
	p.transitions = p.transitions[:0]

	if !snapshot.HasActiveOpponent(p.playerIDs...) {
		return BattlePlan{}
	}

	var f frontier
	p.states = append(p.states, battleState{sim: snapshot.Clone(), transition: -1})
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
		if !base.HasActiveOpponent(p.playerIDs...) {
			continue
		}

		ids, lists := p.candidateLists(base, depth, hints, rng)
		width := 0
		for _, l := range lists {
			if len(l) > width {
				width = len(l)
			}
		}
		for i := 0; i < width; i++ {
			if len(p.transitions) >= maxTransitions {
				break
			}
			step := make(JointAction, len(ids))
			for u, l := range lists {
				switch {
				case len(l) == 0:
					step[u] = sim.AttackInRangeAction(ids[u])
				case i < len(l):
					step[u] = l[i]
				default:
					step[u] = l[len(l)-1]
				}
			}
			child := base.Clone()
			for _, a := range step {
				child.AddAction(a)
			}
			child.Simulate(rng)

			p.transitions = append(p.transitions, battleTransition{parent: node.state, step: step})
			p.states = append(p.states, battleState{
				depth:      depth + 1,
				sim:        child,
				transition: len(p.transitions) - 1,
			})
			f.push(child.Score(p.playerIDs...), len(p.states)-1)
		}
	}

	if bestState < 0 {
		return BattlePlan{}
	}
	return BattlePlan{Score: bestScore, Steps: p.reconstruct(bestState)}
}

// candidateLists collects, per combat-relevant entity, the actions to
// zip at this depth. Owned units explore their full shuffled action
// space; other units follow a hint or fall back to attack-in-range.
func (p *BattlePlanner) candidateLists(s *sim.EntitySimulator, depth int,
	hints map[int][]sim.Action, rng *rand.Rand) ([]int, [][]sim.Action) {

	var ids []int
	var lists [][]sim.Action
	s.VisitEntities(func(e sim.Entity) {
		props := s.Properties()[e.Type]
		if !e.Active || e.PlayerID == game.NoPlayer || props.Attack == nil {
			return
		}
		if !p.owned(e.PlayerID) {
			var l []sim.Action
			if plan, ok := hints[e.ID]; ok && depth < len(plan) {
				l = []sim.Action{plan[depth]}
			}
			ids = append(ids, e.ID)
			lists = append(lists, l)
			return
		}
		l := p.unitCandidates(s, e, props)
		rng.Shuffle(len(l), func(i, j int) { l[i], l[j] = l[j], l[i] })
		ids = append(ids, e.ID)
		lists = append(lists, l)
	})
	return ids, lists
}

func (p *BattlePlanner) unitCandidates(s *sim.EntitySimulator, e sim.Entity, props game.Properties) []sim.Action {
	out := []sim.Action{sim.NoneAction(e.ID)}
	bounds := geom.Square(e.Position, props.Size)
	s.VisitEntities(func(o sim.Entity) {
		if o.PlayerID == game.NoPlayer || o.PlayerID == e.PlayerID {
			return
		}
		osize := s.Properties()[o.Type].Size
		if bounds.Distance(geom.Square(o.Position, osize)) <= props.Attack.Range {
			out = append(out, sim.AttackEntityAction(e.ID, o.ID))
		}
	})
	if props.CanMove {
		for _, d := range []geom.Vec2{geom.OnlyX(1), geom.OnlyX(-1), geom.OnlyY(1), geom.OnlyY(-1)} {
			if s.Window().Contains(e.Position.Add(d)) {
				out = append(out, sim.MoveEntityAction(e.ID, d))
			}
		}
	}
	return out
}

func (p *BattlePlanner) owned(playerID int) bool {
	for _, id := range p.playerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

func (p *BattlePlanner) reconstruct(state int) []JointAction {
	var steps []JointAction
	for t := p.states[state].transition; t >= 0; {
		tr := p.transitions[t]
		steps = append(steps, tr.step)
		t = p.states[tr.parent].transition
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
