package pathfind

import (
	"container/heap"
	"math"

	"github.com/yourusername/rtsengine/internal/geom"
)

type node struct {
	score int
	seq   int
	index int
}

// nodeHeap is a min-heap on score. Equal scores pop newest-first, which
// keeps the search depth-greedy and fully deterministic.
type nodeHeap []node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].seq > h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(v any) { *h = append(*h, v.(node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// FindPath runs a best-first search over the grid from src toward the
// target and returns the step sequence (src excluded) to the reachable
// cell nearest to the target. The boolean is false when no step can be
// taken: src already satisfies the target or every neighbour is blocked.
func FindPath(g Grid, src geom.Vec2, target Target) ([]geom.Vec2, bool) {
	bounds := g.Bounds()
	width := bounds.Width()
	cells := width * bounds.Height()

	costs := make([]int, cells)
	for i := range costs {
		costs[i] = math.MaxInt
	}
	backtrack := make([]int, cells)
	for i := range backtrack {
		backtrack[i] = i
	}
	closed := make([]bool, cells)

	srcIndex := geom.PositionToIndex(src.Sub(bounds.Min), width)
	costs[srcIndex] = 0

	frontier := nodeHeap{{score: target.Distance(src), seq: 0, index: srcIndex}}
	seq := 1

	nearest := srcIndex
	minDistance := target.Distance(src)

	for frontier.Len() > 0 {
		current := heap.Pop(&frontier).(node)
		if closed[current.index] {
			continue
		}
		closed[current.index] = true
		position := geom.IndexToPosition(current.index, width).Add(bounds.Min)
		distance := target.Distance(position)
		if distance < minDistance {
			minDistance = distance
			nearest = current.index
			if distance == 0 {
				break
			}
		}
		for _, shift := range edges {
			neighbour := position.Add(shift)
			if !bounds.Contains(neighbour) || g.Blocked(neighbour) {
				continue
			}
			neighbourIndex := geom.PositionToIndex(neighbour.Sub(bounds.Min), width)
			cost := costs[current.index] + 1
			if costs[neighbourIndex] <= cost {
				continue
			}
			costs[neighbourIndex] = cost
			backtrack[neighbourIndex] = current.index
			heap.Push(&frontier, node{
				score: cost + target.Distance(neighbour),
				seq:   seq,
				index: neighbourIndex,
			})
			seq++
		}
	}

	if nearest == srcIndex {
		return nil, false
	}
	var reversed []int
	for index := nearest; backtrack[index] != index; index = backtrack[index] {
		reversed = append(reversed, index)
	}
	path := make([]geom.Vec2, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, geom.IndexToPosition(reversed[i], width).Add(bounds.Min))
	}
	return path, true
}

// NextStep returns the first step of FindPath.
func NextStep(g Grid, src geom.Vec2, target Target) (geom.Vec2, bool) {
	path, ok := FindPath(g, src, target)
	if !ok || len(path) == 0 {
		return geom.Vec2{}, false
	}
	return path[0], true
}
