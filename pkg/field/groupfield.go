package field

import (
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

// GroupField rates coarse map segments for squad routing: friendly
// power raises a segment, enemy power and sight lower it, destroy score
// makes enemies worth approaching, and distance to the squad's target
// pulls the whole field toward it.
type GroupField struct {
	segmentSize int
	gridSize    int
	weights     Weights

	friendly *Field
	enemy    *Field
	combined *Field
}

// NewGroupField covers a mapSize-sided map with segments of the given
// edge length.
func NewGroupField(mapSize, segmentSize int, weights Weights) *GroupField {
	gridSize := (mapSize + segmentSize - 1) / segmentSize
	return &GroupField{
		segmentSize: segmentSize,
		gridSize:    gridSize,
		weights:     weights,
		friendly:    NewField(gridSize),
		enemy:       NewField(gridSize),
		combined:    NewField(gridSize),
	}
}

// GridSize returns the segment grid edge length.
func (f *GroupField) GridSize() int { return f.gridSize }

// Update rebuilds the field from the current entities. Target is the
// squad's destination in map coordinates; exclude lists squad members
// whose own power must not attract the squad to itself.
func (f *GroupField) Update(props game.PropertyTable, entities []game.Entity, myID int,
	target geom.Vec2, exclude map[int]bool) {

	f.friendly.Reset()
	f.enemy.Reset()
	f.combined.Reset()

	for _, e := range entities {
		if exclude[e.ID] {
			continue
		}
		p := props[e.Type]
		seg := e.Position.Div(f.segmentSize)
		// Reach in segments, rounded up so short-ranged power still
		// spills into the neighbour segment.
		reach := (p.SightRange + f.segmentSize - 1) / f.segmentSize

		switch {
		case e.Type == game.Resource:
			f.combined.AddAt(seg, f.weights.ResourceValue*float64(e.Health))
		case e.PlayerID == myID:
			power := float64(attackPower(p))
			w := f.weights.MyMobilePower
			if !p.CanMove {
				w = f.weights.MyStaticPower
			}
			f.friendly.Add(seg, 1, reach, w*power)
		case e.PlayerID != game.NoPlayer:
			power := float64(attackPower(p))
			f.enemy.Add(seg, 1, reach, f.weights.EnemyPower*power)
			f.enemy.Add(seg, 1, reach, f.weights.EnemySight*float64(p.SightRange))
			f.enemy.AddAt(seg, f.weights.EnemyDestroyScore*float64(p.DestroyScore))
		}
	}

	targetSeg := target.Div(f.segmentSize)
	for y := 0; y < f.gridSize; y++ {
		for x := 0; x < f.gridSize; x++ {
			seg := geom.New(x, y)
			d := seg.Distance(targetSeg)
			f.combined.AddAt(seg, f.friendly.Score(seg)+f.enemy.Score(seg))
			// Distance is weighted negatively, so far segments score low.
			f.combined.AddAt(seg, f.weights.Distance*float64(d))
		}
	}
}

// Score rates one segment; higher is better for the squad.
func (f *GroupField) Score(segment geom.Vec2) float64 {
	return f.combined.Score(segment)
}

func attackPower(p game.Properties) int {
	if p.Attack == nil {
		return 0
	}
	return p.Attack.Damage * (p.Attack.Range + 1)
}
