package sim

import (
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

// SimGroup is a squad as the group simulator sees it: pooled stats at a
// segment-grid position.
type SimGroup struct {
	ID           int
	Segment      geom.Vec2
	Health       int
	Damage       int
	DestroyScore int
}

// Segment aggregates everything standing on one coarse map block.
type Segment struct {
	MyHealth          int
	MyDamage          int
	MyDestroyScore    int
	EnemyHealth       int
	EnemyDamage       int
	EnemyDestroyScore int
	ResourceHealth    int
}

// GroupSimulator projects squad-level combat on a coarse segment grid.
// Individual units are pooled per segment; the squads being steered are
// excluded from the pools and tracked separately so their movement can
// be simulated.
type GroupSimulator struct {
	segmentSize int
	gridSize    int
	segments    []Segment
	groups      []SimGroup
	moves       map[int]geom.Vec2
}

// NewGroupSimulator pools all entities into segments. Entities whose ID
// is in excluded (squad members, simed via groups instead) are skipped.
func NewGroupSimulator(mapSize, segmentSize, myID int, props game.PropertyTable,
	entities []game.Entity, excluded map[int]bool, groups []SimGroup) *GroupSimulator {

	gridSize := (mapSize + segmentSize - 1) / segmentSize
	s := &GroupSimulator{
		segmentSize: segmentSize,
		gridSize:    gridSize,
		segments:    make([]Segment, gridSize*gridSize),
		groups:      append([]SimGroup(nil), groups...),
		moves:       make(map[int]geom.Vec2),
	}
	for _, e := range entities {
		if excluded[e.ID] {
			continue
		}
		seg := &s.segments[s.index(e.Position.Div(segmentSize))]
		p := props[e.Type]
		damage := 0
		if p.Attack != nil {
			damage = p.Attack.Damage
		}
		switch {
		case e.Type == game.Resource:
			seg.ResourceHealth += e.Health
		case e.PlayerID == myID:
			seg.MyHealth += e.Health
			seg.MyDamage += damage
			seg.MyDestroyScore += p.DestroyScore
		case e.PlayerID != game.NoPlayer:
			seg.EnemyHealth += e.Health
			seg.EnemyDamage += damage
			seg.EnemyDestroyScore += p.DestroyScore
		}
	}
	return s
}

// Clone returns a deep copy.
func (s *GroupSimulator) Clone() *GroupSimulator {
	c := &GroupSimulator{
		segmentSize: s.segmentSize,
		gridSize:    s.gridSize,
		segments:    append([]Segment(nil), s.segments...),
		groups:      append([]SimGroup(nil), s.groups...),
		moves:       make(map[int]geom.Vec2, len(s.moves)),
	}
	for k, v := range s.moves {
		c.moves[k] = v
	}
	return c
}

// GridSize returns the segment grid edge length.
func (s *GroupSimulator) GridSize() int { return s.gridSize }

// SegmentSize returns the edge length of one segment in map cells.
func (s *GroupSimulator) SegmentSize() int { return s.segmentSize }

// SegmentAt returns the pooled stats for a segment-grid position.
func (s *GroupSimulator) SegmentAt(pos geom.Vec2) Segment {
	return s.segments[s.index(pos)]
}

// Groups returns the surviving squads.
func (s *GroupSimulator) Groups() []SimGroup { return s.groups }

// Group returns one squad by ID.
func (s *GroupSimulator) Group(id int) (SimGroup, bool) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return SimGroup{}, false
}

// AddMove queues a one-segment step for a squad, applied after the next
// Simulate's combat phase.
func (s *GroupSimulator) AddMove(groupID int, direction geom.Vec2) {
	s.moves[groupID] = direction
}

// MyHealth sums pooled friendly health including squads.
func (s *GroupSimulator) MyHealth() int {
	total := 0
	for _, seg := range s.segments {
		total += seg.MyHealth
	}
	for _, g := range s.groups {
		total += g.Health
	}
	return total
}

// EnemyHealth sums pooled hostile health.
func (s *GroupSimulator) EnemyHealth() int {
	total := 0
	for _, seg := range s.segments {
		total += seg.EnemyHealth
	}
	return total
}

// Advantage is the projected health balance, positive when favorable.
func (s *GroupSimulator) Advantage() int {
	return s.MyHealth() - s.EnemyHealth()
}

// Simulate resolves one round: every segment where the two sides meet
// exchanges pooled damage simultaneously, each side's stats scale down
// by the fraction of health it lost, surplus damage bleeds into the
// segment's resources, dead squads are dropped and surviving squads
// apply their queued moves.
func (s *GroupSimulator) Simulate() {
	for i := range s.segments {
		s.resolveSegment(i)
	}

	kept := s.groups[:0]
	for _, g := range s.groups {
		if g.Health <= 0 {
			delete(s.moves, g.ID)
			continue
		}
		kept = append(kept, g)
	}
	s.groups = kept

	for i := range s.groups {
		g := &s.groups[i]
		d, ok := s.moves[g.ID]
		if !ok {
			continue
		}
		next := g.Segment.Add(d)
		if next.X >= 0 && next.X < s.gridSize && next.Y >= 0 && next.Y < s.gridSize {
			g.Segment = next
		}
		delete(s.moves, g.ID)
	}
}

func (s *GroupSimulator) resolveSegment(idx int) {
	seg := &s.segments[idx]
	pos := geom.IndexToPosition(idx, s.gridSize)

	mineHealth := seg.MyHealth
	mineDamage := seg.MyDamage
	var here []*SimGroup
	for i := range s.groups {
		if s.groups[i].Segment == pos {
			here = append(here, &s.groups[i])
			mineHealth += s.groups[i].Health
			mineDamage += s.groups[i].Damage
		}
	}
	if mineHealth <= 0 || seg.EnemyHealth <= 0 {
		return
	}

	toMine := seg.EnemyDamage
	toTheirs := mineDamage

	mineLeft := scaleFraction(mineHealth, toMine)
	theirsLeft := scaleFraction(seg.EnemyHealth, toTheirs)

	if surplus := toTheirs - seg.EnemyHealth; surplus > 0 {
		seg.ResourceHealth -= surplus
		if seg.ResourceHealth < 0 {
			seg.ResourceHealth = 0
		}
	}

	scaleSide(&seg.MyHealth, &seg.MyDamage, &seg.MyDestroyScore, mineHealth, mineLeft)
	for _, g := range here {
		scaleSide(&g.Health, &g.Damage, &g.DestroyScore, mineHealth, mineLeft)
	}
	scaleSide(&seg.EnemyHealth, &seg.EnemyDamage, &seg.EnemyDestroyScore, seg.EnemyHealth, theirsLeft)
}

// scaleFraction returns the health remaining after damage, floored at
// zero.
func scaleFraction(health, damage int) int {
	left := health - damage
	if left < 0 {
		return 0
	}
	return left
}

// scaleSide shrinks one contributor's stats by the side-wide survival
// fraction left/total.
func scaleSide(health, damage, destroyScore *int, total, left int) {
	if total <= 0 {
		return
	}
	*health = *health * left / total
	*damage = *damage * left / total
	*destroyScore = *destroyScore * left / total
}

func (s *GroupSimulator) index(pos geom.Vec2) int {
	return geom.PositionToIndex(pos, s.gridSize)
}
