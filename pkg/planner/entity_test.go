package planner

import (
	"math/rand"
	"testing"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/sim"
)

func duelSnapshot() *sim.EntitySimulator {
	window := geom.NewRect(geom.New(20, 20), geom.New(40, 40))
	return sim.NewEntitySimulator(window, game.StandardProperties(), []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(25, 30), Health: 10, Active: true},
		{ID: 2, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(33, 30), Health: 10, Active: true},
	}, []game.Player{{ID: 1}, {ID: 2}})
}

func TestEntityPlannerProducesPlan(t *testing.T) {
	p := NewEntityPlanner(1, []int{1}, 1, 4)
	plan := p.Update(duelSnapshot(), nil, 200, rand.New(rand.NewSource(5)))

	if len(plan.Actions) == 0 {
		t.Fatal("no plan produced for a live duel")
	}
	if len(plan.Actions) > 4 {
		t.Errorf("plan length %d exceeds max depth", len(plan.Actions))
	}
	for _, a := range plan.Actions {
		if a.EntityID != 1 {
			t.Errorf("plan contains action for entity %d", a.EntityID)
		}
	}
}

func TestEntityPlannerBudget(t *testing.T) {
	for _, budget := range []int{1, 7, 50} {
		p := NewEntityPlanner(1, []int{1}, 1, 6)
		p.Update(duelSnapshot(), nil, budget, rand.New(rand.NewSource(5)))
		if p.Transitions() > budget {
			t.Errorf("budget %d: created %d transitions", budget, p.Transitions())
		}
	}
}

func TestEntityPlannerDeterministic(t *testing.T) {
	run := func() EntityPlan {
		p := NewEntityPlanner(1, []int{1}, 2, 4)
		return p.Update(duelSnapshot(), nil, 150, rand.New(rand.NewSource(11)))
	}
	a, b := run(), run()
	if a.Score != b.Score || len(a.Actions) != len(b.Actions) {
		t.Fatalf("plans diverged: %+v vs %+v", a, b)
	}
	for i := range a.Actions {
		if a.Actions[i] != b.Actions[i] {
			t.Errorf("action %d diverged: %+v vs %+v", i, a.Actions[i], b.Actions[i])
		}
	}
}

func TestEntityPlannerNoOpponents(t *testing.T) {
	window := geom.NewRect(geom.New(20, 20), geom.New(40, 40))
	snapshot := sim.NewEntitySimulator(window, game.StandardProperties(), []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(25, 30), Health: 10, Active: true},
	}, []game.Player{{ID: 1}, {ID: 2}})

	p := NewEntityPlanner(1, []int{1}, 1, 4)
	plan := p.Update(snapshot, nil, 100, rand.New(rand.NewSource(1)))
	if len(plan.Actions) != 0 {
		t.Error("expected an empty plan without opponents")
	}
	if p.Transitions() != 0 {
		t.Errorf("created %d transitions without opponents", p.Transitions())
	}
}

func TestEntityPlannerHintsRespected(t *testing.T) {
	// The ally is pinned to hold position by a hint; the search must
	// still work and only ever order entity 1 around.
	window := geom.NewRect(geom.New(20, 20), geom.New(40, 40))
	snapshot := sim.NewEntitySimulator(window, game.StandardProperties(), []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(25, 30), Health: 10, Active: true},
		{ID: 3, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(25, 31), Health: 10, Active: true},
		{ID: 2, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(33, 30), Health: 10, Active: true},
	}, []game.Player{{ID: 1}, {ID: 2}})

	hints := map[int][]sim.Action{
		3: {sim.NoneAction(3), sim.NoneAction(3), sim.NoneAction(3), sim.NoneAction(3)},
	}
	p := NewEntityPlanner(1, []int{1}, 1, 4)
	plan := p.Update(snapshot, hints, 200, rand.New(rand.NewSource(3)))
	if len(plan.Actions) == 0 {
		t.Fatal("no plan produced")
	}
}
