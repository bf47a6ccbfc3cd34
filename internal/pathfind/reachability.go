package pathfind

import (
	"github.com/yourusername/rtsengine/internal/geom"
)

// ReachabilityMap answers "can a unit walk from start to here" queries
// for a whole square map with one breadth-first flood fill per update.
type ReachabilityMap struct {
	mapSize   int
	reachable []bool
}

func NewReachabilityMap(mapSize int) *ReachabilityMap {
	return &ReachabilityMap{
		mapSize:   mapSize,
		reachable: make([]bool, mapSize*mapSize),
	}
}

func (m *ReachabilityMap) IsReachable(dst geom.Vec2) bool {
	return m.reachable[geom.PositionToIndex(dst, m.mapSize)]
}

// Update recomputes the map from start over the passable cells.
// passable is indexed like the map itself.
func (m *ReachabilityMap) Update(start geom.Vec2, passable []bool) {
	for i := range m.reachable {
		m.reachable[i] = false
	}
	bounds := geom.NewRect(geom.Zero, geom.Both(m.mapSize))
	m.reachable[geom.PositionToIndex(start, m.mapSize)] = true

	discovered := []geom.Vec2{start}
	for len(discovered) > 0 {
		position := discovered[len(discovered)-1]
		discovered = discovered[:len(discovered)-1]
		for _, shift := range edges {
			neighbour := position.Add(shift)
			if !bounds.Contains(neighbour) {
				continue
			}
			index := geom.PositionToIndex(neighbour, m.mapSize)
			if m.reachable[index] || !passable[index] {
				continue
			}
			m.reachable[index] = true
			discovered = append(discovered, neighbour)
		}
	}
}
