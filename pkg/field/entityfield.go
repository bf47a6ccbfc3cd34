package field

import (
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

// EntityField rates map cells for a single unit: friendly power nearby
// is cover, hostile power is danger, and the unit's own goal pulls the
// field toward it. Scores are normalized to [0, 1] so different units'
// fields are comparable.
type EntityField struct {
	weights Weights
	field   *Field
}

func NewEntityField(mapSize int, weights Weights) *EntityField {
	return &EntityField{weights: weights, field: NewField(mapSize)}
}

// Update rebuilds and normalizes the field. Self is the unit the field
// is for; its own power contributes nothing.
func (f *EntityField) Update(props game.PropertyTable, entities []game.Entity,
	myID, self int, goal geom.Vec2) {

	f.field.Reset()
	for _, e := range entities {
		if e.ID == self || e.PlayerID == game.NoPlayer {
			continue
		}
		p := props[e.Type]
		power := float64(attackPower(p))
		if e.PlayerID == myID {
			w := f.weights.MyMobilePower
			if !p.CanMove {
				w = f.weights.MyStaticPower
			}
			f.field.Add(e.Position, p.Size, p.SightRange, w*power)
		} else {
			f.field.Add(e.Position, p.Size, p.SightRange, f.weights.EnemyPower*power)
		}
	}

	size := f.field.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := geom.New(x, y)
			f.field.AddAt(pos, f.weights.Distance*float64(pos.Distance(goal)))
		}
	}
	f.field.Normalize()
}

// Score rates one cell in [0, 1].
func (f *EntityField) Score(position geom.Vec2) float64 {
	return f.field.Score(position)
}

// Best returns the highest-rated cell.
func (f *EntityField) Best() geom.Vec2 {
	return f.field.Best()
}
