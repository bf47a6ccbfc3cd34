package geom

import (
	"testing"
)

func TestVec2Distance(t *testing.T) {
	tests := []struct {
		a, b Vec2
		want int
	}{
		{Vec2{0, 0}, Vec2{0, 0}, 0},
		{Vec2{1, 2}, Vec2{4, 6}, 7},
		{Vec2{4, 6}, Vec2{1, 2}, 7},
		{Vec2{-3, 5}, Vec2{2, -1}, 11},
	}
	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(Vec2{2, 3}, Vec2{5, 7})
	inside := []Vec2{{2, 3}, {4, 6}, {2, 6}}
	outside := []Vec2{{5, 3}, {2, 7}, {1, 3}, {2, 2}}
	for _, p := range inside {
		if !r.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}
	for _, p := range outside {
		if r.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestRectDistanceToPosition(t *testing.T) {
	r := Square(Vec2{30, 35}, 1)
	tests := []struct {
		p    Vec2
		want int
	}{
		{Vec2{30, 35}, 0},
		{Vec2{34, 35}, 4},
		{Vec2{35, 36}, 6},
		{Vec2{29, 34}, 2},
	}
	for _, tt := range tests {
		if got := r.DistanceToPosition(tt.p); got != tt.want {
			t.Errorf("DistanceToPosition(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestRectDistance(t *testing.T) {
	tests := []struct {
		a, b Rect
		want int
	}{
		// Adjacent unit squares are at distance 1.
		{Square(Vec2{0, 0}, 1), Square(Vec2{1, 0}, 1), 1},
		// Overlapping rects are at distance 0.
		{Square(Vec2{0, 0}, 3), Square(Vec2{2, 2}, 3), 0},
		{Square(Vec2{30, 30}, 1), Square(Vec2{35, 30}, 1), 5},
		{Square(Vec2{30, 30}, 1), Square(Vec2{33, 34}, 1), 7},
	}
	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Distance(tt.a); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestIndexPositionRoundTrip(t *testing.T) {
	const width = 80
	for _, p := range []Vec2{{0, 0}, {79, 0}, {0, 79}, {13, 57}} {
		i := PositionToIndex(p, width)
		if got := IndexToPosition(i, width); got != p {
			t.Errorf("round trip %v -> %d -> %v", p, i, got)
		}
	}
}

func collectRange(position Vec2, size, rng int) []Vec2 {
	var result []Vec2
	bounds := NewRect(Zero, Both(80))
	VisitRange(position, size, rng, bounds, func(p Vec2) {
		result = append(result, p)
	})
	return result
}

func equalPositions(a, b []Vec2) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVisitRangeSize1Range1(t *testing.T) {
	got := collectRange(Vec2{5, 5}, 1, 1)
	want := []Vec2{
		{5, 4},
		{4, 5}, {5, 5}, {6, 5},
		{5, 6},
	}
	if !equalPositions(got, want) {
		t.Errorf("VisitRange(1,1) = %v, want %v", got, want)
	}
}

func TestVisitRangeSize2Range1(t *testing.T) {
	got := collectRange(Vec2{5, 5}, 2, 1)
	want := []Vec2{
		{5, 4}, {6, 4},
		{4, 5}, {5, 5}, {6, 5}, {7, 5},
		{4, 6}, {5, 6}, {6, 6}, {7, 6},
		{5, 7}, {6, 7},
	}
	if !equalPositions(got, want) {
		t.Errorf("VisitRange(2,1) = %v, want %v", got, want)
	}
}

func TestVisitRangeSize2Range2(t *testing.T) {
	got := collectRange(Vec2{5, 5}, 2, 2)
	want := []Vec2{
		{5, 3}, {6, 3},
		{4, 4}, {5, 4}, {6, 4}, {7, 4},
		{3, 5}, {4, 5}, {5, 5}, {6, 5}, {7, 5}, {8, 5},
		{3, 6}, {4, 6}, {5, 6}, {6, 6}, {7, 6}, {8, 6},
		{4, 7}, {5, 7}, {6, 7}, {7, 7},
		{5, 8}, {6, 8},
	}
	if !equalPositions(got, want) {
		t.Errorf("VisitRange(2,2) = %v, want %v", got, want)
	}
}

func TestVisitRangeClippedAtMapEdge(t *testing.T) {
	var result []Vec2
	VisitRange(Vec2{0, 0}, 1, 1, NewRect(Zero, Both(80)), func(p Vec2) {
		result = append(result, p)
	})
	want := []Vec2{{0, 0}, {1, 0}, {0, 1}}
	if !equalPositions(result, want) {
		t.Errorf("VisitRange at edge = %v, want %v", result, want)
	}
}

func TestFindNeighbourOrder(t *testing.T) {
	var visited []Vec2
	FindNeighbour(Vec2{5, 5}, 2, func(p Vec2) bool {
		visited = append(visited, p)
		return false
	})
	if len(visited) != 8 {
		t.Fatalf("visited %d cells, want 8", len(visited))
	}
	if visited[0] != (Vec2{4, 5}) {
		t.Errorf("first neighbour = %v, want {4 5}", visited[0])
	}
}
