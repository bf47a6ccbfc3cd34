package pathfind

import (
	"testing"

	"github.com/yourusername/rtsengine/internal/geom"
)

// testGrid is a fixed-size window with explicitly blocked cells.
type testGrid struct {
	bounds  geom.Rect
	blocked map[geom.Vec2]bool
}

func newTestGrid(min, max geom.Vec2, blocked ...geom.Vec2) *testGrid {
	g := &testGrid{bounds: geom.NewRect(min, max), blocked: map[geom.Vec2]bool{}}
	for _, p := range blocked {
		g.blocked[p] = true
	}
	return g
}

func (g *testGrid) Bounds() geom.Rect          { return g.bounds }
func (g *testGrid) Blocked(p geom.Vec2) bool   { return g.blocked[p] }

func TestFindPathStraightLine(t *testing.T) {
	g := newTestGrid(geom.Zero, geom.Both(10))
	path, ok := FindPath(g, geom.New(2, 5), PointTarget(geom.New(5, 5)))
	if !ok {
		t.Fatal("expected a path")
	}
	want := []geom.Vec2{{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestFindPathAroundWall(t *testing.T) {
	// Vertical wall at x=5, y in [3,8), with a gap at y=8.
	g := newTestGrid(geom.Zero, geom.Both(10),
		geom.New(5, 3), geom.New(5, 4), geom.New(5, 5), geom.New(5, 6), geom.New(5, 7))
	path, ok := FindPath(g, geom.New(3, 5), PointTarget(geom.New(7, 5)))
	if !ok {
		t.Fatal("expected a path")
	}
	if got := path[len(path)-1]; got != geom.New(7, 5) {
		t.Errorf("path ends at %v, want {7 5}", got)
	}
	for _, p := range path {
		if g.Blocked(p) {
			t.Errorf("path goes through blocked cell %v", p)
		}
	}
	// Shortest detour around the wall is 10 steps.
	if len(path) != 10 {
		t.Errorf("len(path) = %d, want 10: %v", len(path), path)
	}
}

func TestFindPathStopsWithinRadius(t *testing.T) {
	g := newTestGrid(geom.Zero, geom.Both(20))
	target := RectTarget{Bounds: geom.Square(geom.New(10, 5), 1), Radius: 3}
	path, ok := FindPath(g, geom.New(2, 5), target)
	if !ok {
		t.Fatal("expected a path")
	}
	end := path[len(path)-1]
	if d := target.Bounds.DistanceToPosition(end); d > 3 {
		t.Errorf("path ends %d away from target, want <= 3", d)
	}
	if len(path) != 5 {
		t.Errorf("len(path) = %d, want 5", len(path))
	}
}

func TestFindPathAlreadySatisfied(t *testing.T) {
	g := newTestGrid(geom.Zero, geom.Both(10))
	target := RectTarget{Bounds: geom.Square(geom.New(3, 3), 1), Radius: 2}
	if _, ok := FindPath(g, geom.New(4, 3), target); ok {
		t.Error("expected no path when src already satisfies the target")
	}
}

func TestFindPathFullyBlocked(t *testing.T) {
	g := newTestGrid(geom.Zero, geom.Both(10),
		geom.New(4, 5), geom.New(6, 5), geom.New(5, 4), geom.New(5, 6))
	if _, ok := FindPath(g, geom.New(5, 5), PointTarget(geom.New(9, 9))); ok {
		t.Error("expected no path out of a sealed cell")
	}
}

func TestNextStepDeterministic(t *testing.T) {
	g := newTestGrid(geom.Zero, geom.Both(10))
	first, ok := NextStep(g, geom.New(5, 5), PointTarget(geom.New(0, 5)))
	if !ok {
		t.Fatal("expected a step")
	}
	for i := 0; i < 10; i++ {
		step, ok := NextStep(g, geom.New(5, 5), PointTarget(geom.New(0, 5)))
		if !ok || step != first {
			t.Fatalf("run %d: step = %v ok=%v, want %v", i, step, ok, first)
		}
	}
	if first != geom.New(4, 5) {
		t.Errorf("first step = %v, want {4 5}", first)
	}
}

func TestReachabilityMap(t *testing.T) {
	const size = 8
	passable := make([]bool, size*size)
	for i := range passable {
		passable[i] = true
	}
	// Wall splitting the map at x=4.
	for y := 0; y < size; y++ {
		passable[geom.PositionToIndex(geom.New(4, y), size)] = false
	}
	m := NewReachabilityMap(size)
	m.Update(geom.New(1, 1), passable)

	if !m.IsReachable(geom.New(3, 7)) {
		t.Error("left side should be reachable")
	}
	if m.IsReachable(geom.New(6, 1)) {
		t.Error("right side should be unreachable across the wall")
	}
	if !m.IsReachable(geom.New(1, 1)) {
		t.Error("start should be reachable")
	}
}
