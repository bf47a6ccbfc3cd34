// Package field computes spatial heuristic scores: per-cell or
// per-segment grids rating territory by friendly and hostile power,
// sight coverage and distance to a target. All contributions are linear
// ramps with caller-tunable weights; nothing here is hardcoded game
// policy.
package field

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yourusername/rtsengine/internal/geom"
)

// Ramp is the contribution of a source with the given power felt at
// some distance: full power at distance zero, fading linearly to zero
// at maxDistance, never negative.
func Ramp(distance int, power float64, maxDistance int) float64 {
	if maxDistance <= 0 {
		if distance == 0 {
			return power
		}
		return 0
	}
	v := power - power*float64(distance)/float64(maxDistance)
	switch {
	case power >= 0 && v < 0, power < 0 && v > 0:
		return 0
	case power >= 0 && v > power, power < 0 && v < power:
		return power
	}
	return v
}

// Field is a square grid of accumulated scores.
type Field struct {
	size   int
	scores []float64
}

// NewField returns a zeroed size-sided field.
func NewField(size int) *Field {
	return &Field{size: size, scores: make([]float64, size*size)}
}

// Size returns the grid edge length.
func (f *Field) Size() int { return f.size }

// Reset zeroes every cell.
func (f *Field) Reset() {
	for i := range f.scores {
		f.scores[i] = 0
	}
}

func (f *Field) bounds() geom.Rect {
	return geom.NewRect(geom.New(0, 0), geom.Both(f.size))
}

// Add spreads a source's power over every cell within radius of its
// square footprint, ramping down with distance.
func (f *Field) Add(position geom.Vec2, size, radius int, power float64) {
	src := geom.Square(position, size)
	geom.VisitRange(position, size, radius, f.bounds(), func(p geom.Vec2) {
		d := src.DistanceToPosition(p)
		f.scores[f.index(p)] += Ramp(d, power, radius)
	})
}

// AddAt accumulates directly into one cell.
func (f *Field) AddAt(position geom.Vec2, power float64) {
	if f.bounds().Contains(position) {
		f.scores[f.index(position)] += power
	}
}

// Score returns the accumulated value at a cell, zero off the grid.
func (f *Field) Score(position geom.Vec2) float64 {
	if !f.bounds().Contains(position) {
		return 0
	}
	return f.scores[f.index(position)]
}

// Normalize rescales all cells into [0, 1]. A constant field becomes
// all zeros.
func (f *Field) Normalize() {
	lo := floats.Min(f.scores)
	hi := floats.Max(f.scores)
	if hi == lo {
		f.Reset()
		return
	}
	floats.AddConst(-lo, f.scores)
	floats.Scale(1/(hi-lo), f.scores)
}

// Best returns the highest-scoring cell, the first in row-major order
// on ties.
func (f *Field) Best() geom.Vec2 {
	best := 0
	for i := range f.scores {
		if f.scores[i] > f.scores[best] {
			best = i
		}
	}
	return geom.IndexToPosition(best, f.size)
}

func (f *Field) index(p geom.Vec2) int {
	return geom.PositionToIndex(p, f.size)
}
