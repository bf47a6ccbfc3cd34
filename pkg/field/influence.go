package field

import (
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

// InfluenceField tracks hostile pressure per map cell: every armed
// enemy projects its attack power over its sight range. Workers and
// scouts use it to stay out of reach.
type InfluenceField struct {
	field *Field
}

func NewInfluenceField(mapSize int) *InfluenceField {
	return &InfluenceField{field: NewField(mapSize)}
}

// Update rebuilds the field from the known entities.
func (f *InfluenceField) Update(props game.PropertyTable, entities []game.Entity, myID int) {
	f.field.Reset()
	for _, e := range entities {
		if e.PlayerID == game.NoPlayer || e.PlayerID == myID {
			continue
		}
		p := props[e.Type]
		if p.Attack == nil {
			continue
		}
		reach := p.SightRange
		if p.Attack.Range > reach {
			reach = p.Attack.Range
		}
		f.field.Add(e.Position, p.Size, reach, float64(attackPower(p)))
	}
}

// Influence returns the hostile pressure at a cell.
func (f *InfluenceField) Influence(position geom.Vec2) float64 {
	return f.field.Score(position)
}

// Safe reports whether a cell is outside all known hostile reach.
func (f *InfluenceField) Safe(position geom.Vec2) bool {
	return f.field.Score(position) == 0
}
