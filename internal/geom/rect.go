package geom

// Rect is an axis-aligned rectangle of grid cells. Min is inclusive,
// Max is exclusive.
type Rect struct {
	Min, Max Vec2
}

func NewRect(min, max Vec2) Rect { return Rect{Min: min, Max: max} }

// Square returns the size×size rect anchored at position.
func Square(position Vec2, size int) Rect {
	return Rect{Min: position, Max: position.Add(Both(size))}
}

func (r Rect) Center() Vec2 { return r.Min.Add(r.Max).Div(2) }

// Width returns Max.X-Min.X.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height returns Max.Y-Min.Y.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Vec2) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// DistanceToPosition returns 0 when p is inside r, otherwise the
// Manhattan gap between p and the nearest cell of r.
func (r Rect) DistanceToPosition(p Vec2) int {
	return axisGap(p.X, r.Min.X, r.Max.X) + axisGap(p.Y, r.Min.Y, r.Max.Y)
}

// Distance returns the Manhattan gap between two rects, 0 when they
// overlap or touch on both axes.
func (r Rect) Distance(other Rect) int {
	return axisRangeGap(r.Min.X, r.Max.X, other.Min.X, other.Max.X) +
		axisRangeGap(r.Min.Y, r.Max.Y, other.Min.Y, other.Max.Y)
}

// Visit calls fn for every cell of r in row-major order.
func (r Rect) Visit(fn func(Vec2)) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fn(New(x, y))
		}
	}
}

func (r Rect) Overlaps(other Rect) bool {
	return r.Min.X < other.Max.X && other.Min.X < r.Max.X &&
		r.Min.Y < other.Max.Y && other.Min.Y < r.Max.Y
}

func axisGap(v, min, max int) int {
	if v < min {
		return min - v
	}
	if v >= max {
		return v - (max - 1)
	}
	return 0
}

func axisRangeGap(aMin, aMax, bMin, bMax int) int {
	if aMax <= bMin {
		return bMin - aMax + 1
	}
	if bMax <= aMin {
		return aMin - bMax + 1
	}
	return 0
}

// Range is a Manhattan disc: all positions within Radius of Center.
type Range struct {
	Center Vec2
	Radius int
}

func NewRange(center Vec2, radius int) Range {
	return Range{Center: center, Radius: radius}
}

func (r Range) Contains(p Vec2) bool {
	return r.Center.Distance(p) <= r.Radius
}
