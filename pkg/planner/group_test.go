package planner

import (
	"testing"

	"github.com/yourusername/rtsengine/internal/geom"
)

func TestGroupPlannerSeeksHighScore(t *testing.T) {
	p := NewGroupPlanner(40, 10, 1.0)
	plan := p.Update(geom.New(0, 0), geom.NewRange(geom.New(0, 0), 3), func(seg geom.Vec2) float64 {
		if seg == geom.New(2, 0) {
			return 5.0
		}
		return 0.0
	})

	if len(plan.Waypoints) != 2 {
		t.Fatalf("waypoints = %v, want two segments right", plan.Waypoints)
	}
	if plan.Waypoints[0] != geom.New(15, 5) || plan.Waypoints[1] != geom.New(25, 5) {
		t.Errorf("waypoints = %v, want [(15,5) (25,5)]", plan.Waypoints)
	}
	if plan.Cost != -3.0 {
		t.Errorf("cost = %v, want -3 (two steps at 1 minus a score of 5)", plan.Cost)
	}
}

func TestGroupPlannerEmptyWhenNothingImproves(t *testing.T) {
	p := NewGroupPlanner(40, 10, 1.0)
	plan := p.Update(geom.New(1, 1), geom.NewRange(geom.New(1, 1), 3), func(geom.Vec2) float64 {
		return 0.0
	})
	if len(plan.Waypoints) != 0 {
		t.Errorf("flat field should yield no route, got %v", plan.Waypoints)
	}
}

func TestGroupPlannerRangeExcludesNeighbours(t *testing.T) {
	p := NewGroupPlanner(40, 10, 1.0)
	// The admissible range is centered far away with radius zero, so no
	// neighbour of the start is reachable.
	plan := p.Update(geom.New(0, 0), geom.NewRange(geom.New(3, 3), 0), func(geom.Vec2) float64 {
		return 10.0
	})
	if len(plan.Waypoints) != 0 {
		t.Errorf("expected an empty plan, got %v", plan.Waypoints)
	}
}

func TestGroupPlannerStaysInRange(t *testing.T) {
	p := NewGroupPlanner(80, 10, 1.0)
	admissible := geom.NewRange(geom.New(2, 2), 2)
	plan := p.Update(geom.New(2, 2), admissible, func(seg geom.Vec2) float64 {
		// The score grows with the distance from the start, pulling the
		// route outward; the range must still contain every waypoint.
		return float64(seg.Distance(geom.New(2, 2))) * 3.0
	})

	if len(plan.Waypoints) == 0 {
		t.Fatal("no route produced")
	}
	for _, wp := range plan.Waypoints {
		seg := wp.Div(10)
		if !admissible.Contains(seg) {
			t.Errorf("waypoint %v (segment %v) escapes the admissible range", wp, seg)
		}
	}
}

func TestGroupPlannerDeterministic(t *testing.T) {
	run := func() GroupPlan {
		p := NewGroupPlanner(40, 10, 1.0)
		return p.Update(geom.New(0, 0), geom.NewRange(geom.New(1, 1), 4), func(seg geom.Vec2) float64 {
			return float64((seg.X*7+seg.Y*13)%5) * 1.5
		})
	}
	a, b := run(), run()
	if a.Cost != b.Cost || len(a.Waypoints) != len(b.Waypoints) {
		t.Fatalf("plans diverged: %+v vs %+v", a, b)
	}
	for i := range a.Waypoints {
		if a.Waypoints[i] != b.Waypoints[i] {
			t.Errorf("waypoint %d diverged", i)
		}
	}
}
