// Package pathfind implements the grid search engines shared by unit
// movement and the simulators: a best-first shortest-path search toward
// a pluggable target and a breadth-first reachability map.
package pathfind

import (
	"github.com/yourusername/rtsengine/internal/geom"
)

// Target abstracts the goal of a search: a point, or a rectangle
// approached to within some radius.
type Target interface {
	// Distance returns 0 when the position satisfies the target,
	// otherwise the Manhattan gap used as the search heuristic.
	Distance(p geom.Vec2) int
}

// PointTarget is an exact destination cell.
type PointTarget geom.Vec2

func (t PointTarget) Distance(p geom.Vec2) int {
	return geom.Vec2(t).Distance(p)
}

// RectTarget is a rectangle approached to within Radius.
type RectTarget struct {
	Bounds geom.Rect
	Radius int
}

func (t RectTarget) Distance(p geom.Vec2) int {
	d := t.Bounds.DistanceToPosition(p) - t.Radius
	if d < 0 {
		return 0
	}
	return d
}

// Grid is the searchable surface: a bounded window of cells, some of
// which are blocked.
type Grid interface {
	Bounds() geom.Rect
	Blocked(p geom.Vec2) bool
}

// edges are the four cardinal step directions, in the order the search
// expands them.
var edges = [4]geom.Vec2{
	geom.OnlyX(1),
	geom.OnlyX(-1),
	geom.OnlyY(1),
	geom.OnlyY(-1),
}
