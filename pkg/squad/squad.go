// Package squad manages groups of combat units: their requested
// composition, membership, readiness, and pooled stats for the group
// simulator and fields.
package squad

import (
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

// State tracks a group's lifecycle: it is New while still being
// staffed and Ready once its composition is met.
type State int

const (
	StateNew State = iota
	StateReady
)

// Member is one enrolled unit.
type Member struct {
	ID   int
	Type game.EntityType
}

// Group is one squad. It holds only unit IDs and types; positions and
// health are looked up against the world when needed.
type Group struct {
	id      int
	state   State
	target  *geom.Vec2
	need    map[game.EntityType]int
	members []Member
}

// New creates an empty group with the required composition.
func New(id int, need map[game.EntityType]int) *Group {
	n := make(map[game.EntityType]int, len(need))
	for k, v := range need {
		n[k] = v
	}
	return &Group{id: id, state: StateNew, need: n}
}

func (g *Group) ID() int      { return g.id }
func (g *Group) State() State { return g.state }

// Members returns the enrolled units; callers must not mutate the
// slice.
func (g *Group) Members() []Member { return g.members }

// Size returns the member count.
func (g *Group) Size() int { return len(g.members) }

// Target returns the group's destination, if set.
func (g *Group) Target() (geom.Vec2, bool) {
	if g.target == nil {
		return geom.Vec2{}, false
	}
	return *g.target, true
}

// SetTarget sets the destination.
func (g *Group) SetTarget(p geom.Vec2) {
	g.target = &p
}

// ClearTarget removes the destination.
func (g *Group) ClearTarget() {
	g.target = nil
}

func (g *Group) count(t game.EntityType) int {
	n := 0
	for _, m := range g.members {
		if m.Type == t {
			n++
		}
	}
	return n
}

// Needs reports how many more units of the given type the group wants.
func (g *Group) Needs(t game.EntityType) int {
	d := g.need[t] - g.count(t)
	if d < 0 {
		return 0
	}
	return d
}

// AddUnit enrolls a unit; the group becomes Ready once every required
// count is met.
func (g *Group) AddUnit(t game.EntityType, id int) {
	g.members = append(g.members, Member{ID: id, Type: t})
	g.refreshState()
}

// RemoveUnit drops a member, demoting the group to New if its
// composition is no longer met.
func (g *Group) RemoveUnit(id int) {
	for i, m := range g.members {
		if m.ID == id {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
	g.refreshState()
}

// Clear empties the group entirely.
func (g *Group) Clear() {
	g.members = g.members[:0]
	g.state = StateNew
}

func (g *Group) refreshState() {
	for t, n := range g.need {
		if g.count(t) < n {
			g.state = StateNew
			return
		}
	}
	g.state = StateReady
}

// Sweep drops members for which alive returns false and reports how
// many were removed.
func (g *Group) Sweep(alive func(id int) bool) int {
	dropped := 0
	kept := g.members[:0]
	for _, m := range g.members {
		if !alive(m.ID) {
			dropped++
			continue
		}
		kept = append(kept, m)
	}
	g.members = kept
	if dropped > 0 {
		g.refreshState()
	}
	return dropped
}

// Stats are the pooled values the group simulator consumes.
type Stats struct {
	Center geom.Vec2
	Radius int
	Health int
	Power  int
}

// ComputeStats pools the members' positions and combat stats. The
// second return is false when the group has no live members.
func (g *Group) ComputeStats(props game.PropertyTable, lookup func(id int) (game.Entity, bool)) (Stats, bool) {
	var sum geom.Vec2
	var found []game.Entity
	for _, m := range g.members {
		e, ok := lookup(m.ID)
		if !ok {
			continue
		}
		found = append(found, e)
		sum = sum.Add(e.Position)
	}
	if len(found) == 0 {
		return Stats{}, false
	}
	st := Stats{Center: sum.Div(len(found))}
	for _, e := range found {
		p := props[e.Type]
		st.Health += e.Health
		if p.Attack != nil {
			st.Power += p.Attack.Damage
		}
		if d := e.Position.Distance(st.Center); d > st.Radius {
			st.Radius = d
		}
	}
	return st, true
}
