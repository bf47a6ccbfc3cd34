package planner

import (
	"container/heap"

	"github.com/yourusername/rtsengine/internal/geom"
)

// GroupPlan is a waypoint route for a squad at map resolution. Empty
// Waypoints means no segment in range improved on standing still.
type GroupPlan struct {
	Cost      float64
	Waypoints []geom.Vec2
}

// GroupPlanner routes squads over the coarse segment grid: a
// uniform-cost search where each step costs a fixed distance weight
// minus the destination segment's field score, so the route drifts
// toward favorable territory while still converging on cheap paths.
type GroupPlanner struct {
	mapSize        int
	segmentSize    int
	gridSize       int
	distanceWeight float64
}

// NewGroupPlanner plans on the segment grid covering a mapSize-sided
// map. distanceWeight is the cost of traversing one segment before the
// field score is subtracted.
func NewGroupPlanner(mapSize, segmentSize int, distanceWeight float64) *GroupPlanner {
	return &GroupPlanner{
		mapSize:        mapSize,
		segmentSize:    segmentSize,
		gridSize:       (mapSize + segmentSize - 1) / segmentSize,
		distanceWeight: distanceWeight,
	}
}

type groupNode struct {
	cost float64
	seq  int
	pos  geom.Vec2
}

type groupHeap []groupNode

func (h groupHeap) Len() int { return len(h) }
func (h groupHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h groupHeap) Swap(i, j int)  { h[i], h[j] = h[j], h[i] }
func (h *groupHeap) Push(x any)    { *h = append(*h, x.(groupNode)) }
func (h *groupHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// Update searches from the squad's current segment, visiting only
// segments inside admissible (segment coordinates), and returns the
// route to the minimum-cost reachable segment. Score rates a segment;
// higher is better.
func (p *GroupPlanner) Update(start geom.Vec2, admissible geom.Range, score func(geom.Vec2) float64) GroupPlan {
	n := p.gridSize * p.gridSize
	costs := make([]float64, n)
	visited := make([]bool, n)
	reached := make([]bool, n)
	backtrack := make([]int, n)

	startIdx := p.index(start)
	reached[startIdx] = true
	backtrack[startIdx] = startIdx

	h := &groupHeap{{cost: 0, seq: 0, pos: start}}
	seq := 1
	bestIdx, bestCost := startIdx, 0.0

	for h.Len() > 0 {
		node := heap.Pop(h).(groupNode)
		idx := p.index(node.pos)
		if visited[idx] {
			continue
		}
		visited[idx] = true
		if node.cost < bestCost {
			bestIdx, bestCost = idx, node.cost
		}

		for _, d := range []geom.Vec2{geom.OnlyX(1), geom.OnlyX(-1), geom.OnlyY(1), geom.OnlyY(-1)} {
			next := node.pos.Add(d)
			if next.X < 0 || next.X >= p.gridSize || next.Y < 0 || next.Y >= p.gridSize {
				continue
			}
			if !admissible.Contains(next) {
				continue
			}
			nextIdx := p.index(next)
			if visited[nextIdx] {
				continue
			}
			cost := node.cost + p.distanceWeight - score(next)
			if reached[nextIdx] && cost >= costs[nextIdx] {
				continue
			}
			costs[nextIdx] = cost
			reached[nextIdx] = true
			backtrack[nextIdx] = idx
			heap.Push(h, groupNode{cost: cost, seq: seq, pos: next})
			seq++
		}
	}

	if bestIdx == startIdx {
		return GroupPlan{}
	}
	var waypoints []geom.Vec2
	for idx := bestIdx; idx != startIdx; idx = backtrack[idx] {
		waypoints = append(waypoints, p.toMap(geom.IndexToPosition(idx, p.gridSize)))
	}
	for i, j := 0, len(waypoints)-1; i < j; i, j = i+1, j-1 {
		waypoints[i], waypoints[j] = waypoints[j], waypoints[i]
	}
	return GroupPlan{Cost: bestCost, Waypoints: waypoints}
}

// toMap converts a segment position to the map cell at its center,
// clipped to map bounds.
func (p *GroupPlanner) toMap(seg geom.Vec2) geom.Vec2 {
	pos := seg.Mul(p.segmentSize).Add(geom.Both(p.segmentSize / 2))
	return pos.Lowest(geom.Both(p.mapSize - 1)).Highest(geom.New(0, 0))
}

func (p *GroupPlanner) index(pos geom.Vec2) int {
	return geom.PositionToIndex(pos, p.gridSize)
}
