package geom

// PositionToIndex maps a position to its index in a row-major flattened
// grid of the given width.
func PositionToIndex(p Vec2, width int) int {
	return p.X + p.Y*width
}

// IndexToPosition is the inverse of PositionToIndex.
func IndexToPosition(index, width int) Vec2 {
	return Vec2{X: index % width, Y: index / width}
}

// VisitSquare calls visit for every cell of the size×size square at
// position, row by row.
func VisitSquare(position Vec2, size int, visit func(Vec2)) {
	for y := position.Y; y < position.Y+size; y++ {
		for x := position.X; x < position.X+size; x++ {
			visit(Vec2{x, y})
		}
	}
}

// VisitSquareInBounds is VisitSquare clipped to bounds.
func VisitSquareInBounds(position Vec2, size int, bounds Rect, visit func(Vec2)) {
	min := position.Highest(bounds.Min)
	max := position.Add(Both(size)).Lowest(bounds.Max)
	for y := min.Y; y < max.Y; y++ {
		for x := min.X; x < max.X; x++ {
			visit(Vec2{x, y})
		}
	}
}

// VisitRange calls visit for every cell within the given Manhattan range
// of a size×size square at position, clipped to bounds. The shape is the
// square itself plus a diamond-shaped margin of the given range.
func VisitRange(position Vec2, size, rng int, bounds Rect, visit func(Vec2)) {
	bottom := position.Y + size
	yMin := max(position.Y-rng, bounds.Min.Y)
	yMax := min(bottom+rng, bounds.Max.Y)
	for y := yMin; y < yMax; y++ {
		shift := rng
		if y < position.Y {
			shift = rng - (position.Y - y)
		} else if y >= bottom {
			shift = rng - (y - (bottom - 1))
		}
		xMin := max(position.X-shift, bounds.Min.X)
		xMax := min(position.X+size+shift, bounds.Max.X)
		for x := xMin; x < xMax; x++ {
			visit(Vec2{x, y})
		}
	}
}

// FindInsideRect scans [min, max) row by row and returns the first
// position accepted by f.
func FindInsideRect(min, max Vec2, f func(Vec2) bool) (Vec2, bool) {
	for y := min.Y; y < max.Y; y++ {
		for x := min.X; x < max.X; x++ {
			p := Vec2{x, y}
			if f(p) {
				return p, true
			}
		}
	}
	return Vec2{}, false
}

// FindOnRectBorder walks the border cells of [min, max) counterclockwise
// starting from the left edge and returns the first position accepted
// by f.
func FindOnRectBorder(min, max Vec2, f func(Vec2) bool) (Vec2, bool) {
	for y := min.Y; y < max.Y-1; y++ {
		if p := (Vec2{min.X, y}); f(p) {
			return p, true
		}
	}
	for x := min.X; x < max.X-1; x++ {
		if p := (Vec2{x, max.Y - 1}); f(p) {
			return p, true
		}
	}
	for y := min.Y + 1; y < max.Y; y++ {
		if p := (Vec2{max.X - 1, y}); f(p) {
			return p, true
		}
	}
	for x := min.X + 1; x < max.X; x++ {
		if p := (Vec2{x, min.Y}); f(p) {
			return p, true
		}
	}
	return Vec2{}, false
}

// FindNeighbour walks the one-cell ring around a size×size square at
// position and returns the first cell accepted by f.
func FindNeighbour(position Vec2, size int, f func(Vec2) bool) (Vec2, bool) {
	for y := position.Y; y < position.Y+size; y++ {
		if p := (Vec2{position.X - 1, y}); f(p) {
			return p, true
		}
	}
	for x := position.X; x < position.X+size; x++ {
		if p := (Vec2{x, position.Y + size}); f(p) {
			return p, true
		}
	}
	for y := position.Y; y < position.Y+size; y++ {
		if p := (Vec2{position.X + size, y}); f(p) {
			return p, true
		}
	}
	for x := position.X; x < position.X+size; x++ {
		if p := (Vec2{x, position.Y - 1}); f(p) {
			return p, true
		}
	}
	return Vec2{}, false
}
