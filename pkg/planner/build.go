package planner

import (
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/sim"
)

// BuildStepKind tags one economy decision.
type BuildStepKind int

const (
	StepBuyBuilder BuildStepKind = iota
	StepBuild
	StepAssignHarvest
	StepAssignBuild
	StepSimulate
)

// BuildStep is one transition of a build plan. Fields beyond Kind are
// set as relevant: Building for StepBuild, Builder/Construction for the
// assign steps, Ticks for StepSimulate.
type BuildStep struct {
	Kind         BuildStepKind
	Building     game.EntityType
	Builder      int
	Construction int
	Ticks        int
}

// BuildPlan is the decision sequence reaching the best final economy
// state. Consecutive simulate steps are coalesced.
type BuildPlan struct {
	Score int
	Steps []BuildStep
}

type buildState struct {
	depth      int
	sim        *sim.BuildSimulator
	transition int
}

type buildTransition struct {
	parent int
	step   BuildStep
}

// simulateTicks is the fixed advance of the no-decision transition.
const simulateTicks = 5

// maxWorkersPerSize caps concurrent builders per construction relative
// to the building's edge length.
const maxWorkersPerSize = 4

// BuildPlanner searches the economy simulator for the best way to
// satisfy a caller-supplied goal within the transition budget, keeping
// the highest-scoring goal-satisfying state seen.
type BuildPlanner struct {
	maxDepth int

	states      []buildState
	transitions []buildTransition
}

// NewBuildPlanner bounds plans at maxDepth decisions, which keeps the
// ever-profitable "harvest a while longer" branches from swallowing the
// whole budget.
func NewBuildPlanner(maxDepth int) *BuildPlanner {
	return &BuildPlanner{maxDepth: maxDepth}
}

// Transitions returns how many search edges the last Update created.
func (p *BuildPlanner) Transitions() int { return len(p.transitions) }

// Update searches from the given snapshot until maxTransitions edges
// have been created, returning the best plan whose final state
// satisfies isFinal. The empty plan is returned when no state ever
// does.
func (p *BuildPlanner) Update(snapshot *sim.BuildSimulator, isFinal func(*sim.BuildSimulator) bool,
	maxTransitions int) BuildPlan {

	p.states = p.states[:0]
	p.transitions = p.transitions[:0]

	var f frontier
	root := snapshot.Clone()
	p.states = append(p.states, buildState{sim: root, transition: -1})
	f.push(root.Score(), 0)

	bestState := -1
	bestScore := 0
	if isFinal(root) {
		bestState, bestScore = 0, root.Score()
	}

	for {
		node, ok := f.pop()
		if !ok {
			break
		}
		if len(p.transitions) >= maxTransitions {
			break
		}
		base := p.states[node.state].sim
		depth := p.states[node.state].depth
		if depth >= p.maxDepth {
			continue
		}
		if isFinal(base) {
			// Goal states are leaves; other branches may still beat
			// them on score.
			continue
		}

		for _, step := range p.steps(base) {
			if len(p.transitions) >= maxTransitions {
				break
			}
			child := base.Clone()
			step.Apply(child)
			if p.seen(child) {
				continue
			}
			p.transitions = append(p.transitions, buildTransition{parent: node.state, step: step})
			p.states = append(p.states, buildState{
				depth:      depth + 1,
				sim:        child,
				transition: len(p.transitions) - 1,
			})
			score := child.Score()
			if isFinal(child) && (bestState < 0 || score > bestScore) {
				bestState, bestScore = len(p.states)-1, score
			}
			f.push(score, len(p.states)-1)
		}
	}

	if bestState < 0 {
		return BuildPlan{}
	}
	return BuildPlan{Score: bestScore, Steps: p.reconstruct(bestState)}
}

// steps enumerates the decisions worth branching on, in fixed priority
// order, always ending with the no-decision time advance.
func (p *BuildPlanner) steps(s *sim.BuildSimulator) []BuildStep {
	var out []BuildStep

	if s.CanBuyBuilder() {
		out = append(out, BuildStep{Kind: StepBuyBuilder})
	}
	if kind, ok := p.nextBuilding(s); ok {
		out = append(out, BuildStep{Kind: StepBuild, Building: kind})
	}
	if idx := firstBuilder(s, sim.TaskNone); idx >= 0 {
		out = append(out, BuildStep{Kind: StepAssignHarvest, Builder: idx})
	}
	for _, c := range s.Constructions() {
		idx := firstBuilder(s, sim.TaskNone)
		if idx < 0 {
			idx = firstBuilder(s, sim.TaskHarvest)
		}
		if idx < 0 {
			break
		}
		if !p.worthAssigning(s, c, idx) {
			continue
		}
		out = append(out, BuildStep{Kind: StepAssignBuild, Builder: idx, Construction: c.ID})
	}
	out = append(out, BuildStep{Kind: StepSimulate, Ticks: simulateTicks})
	return out
}

// nextBuilding picks what to start: the first ranged base while none
// exists, houses afterwards, never two constructions of one kind at
// once.
func (p *BuildPlanner) nextBuilding(s *sim.BuildSimulator) (game.EntityType, bool) {
	props := s.Properties()
	if s.Completed(game.RangedBase) == 0 && !s.ConstructionInFlight(game.RangedBase) &&
		s.Resource() >= props[game.RangedBase].InitialCost {
		return game.RangedBase, true
	}
	if !s.ConstructionInFlight(game.House) && s.Resource() >= props[game.House].InitialCost {
		return game.House, true
	}
	return "", false
}

// worthAssigning accepts an extra worker only when the worker cap
// allows it and projected harvest income over the remaining build time
// still covers the construction's need.
func (p *BuildPlanner) worthAssigning(s *sim.BuildSimulator, c sim.Construction, builder int) bool {
	assigned := s.AssignedBuilders(c.ID)
	if assigned >= maxWorkersPerSize*s.Properties()[c.Kind].Size {
		return false
	}
	rate := (assigned + 1) * s.ConstructRate()
	if rate == 0 {
		return false
	}
	remaining := (c.NeedResource + rate - 1) / rate

	harvesters := s.HarvesterCount()
	if s.Builders()[builder].Task == sim.TaskHarvest {
		harvesters--
	}
	income := harvesters * s.HarvestRate() * remaining
	return s.Resource()+income >= c.NeedResource
}

// Apply replays the step on a simulator, exactly as the search did.
func (st BuildStep) Apply(s *sim.BuildSimulator) {
	switch st.Kind {
	case StepBuyBuilder:
		s.BuyBuilder()
	case StepBuild:
		s.StartConstruction(st.Building)
	case StepAssignHarvest:
		s.AssignHarvest(st.Builder)
	case StepAssignBuild:
		s.AssignBuild(st.Builder, st.Construction)
	case StepSimulate:
		s.Simulate(st.Ticks)
	}
}

// seen reports whether an equal state was already stored; equal states
// reached through different orderings would only duplicate work.
func (p *BuildPlanner) seen(s *sim.BuildSimulator) bool {
	for i := range p.states {
		if p.states[i].sim.Equal(s) {
			return true
		}
	}
	return false
}

func (p *BuildPlanner) reconstruct(state int) []BuildStep {
	var steps []BuildStep
	for t := p.states[state].transition; t >= 0; {
		tr := p.transitions[t]
		steps = append(steps, tr.step)
		t = p.states[tr.parent].transition
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	// Coalesce runs of simulate steps into one.
	out := steps[:0]
	for _, st := range steps {
		if st.Kind == StepSimulate && len(out) > 0 && out[len(out)-1].Kind == StepSimulate {
			out[len(out)-1].Ticks += st.Ticks
			continue
		}
		out = append(out, st)
	}
	return out
}

func firstBuilder(s *sim.BuildSimulator, task sim.BuildTask) int {
	for i, b := range s.Builders() {
		if b.Task == task {
			return i
		}
	}
	return -1
}
