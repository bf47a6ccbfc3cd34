package sim

import (
	"testing"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

func TestGroupSimulatorPooling(t *testing.T) {
	props := game.StandardProperties()
	entities := []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(2, 2), Health: 10},
		{ID: 2, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(3, 3), Health: 10},
		{ID: 3, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(12, 2), Health: 50},
		{ID: 4, PlayerID: game.NoPlayer, Type: game.Resource, Position: geom.New(2, 4), Health: 30},
		{ID: 5, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(1, 1), Health: 10}, // squad member
	}
	s := NewGroupSimulator(40, 10, 1, props, entities, map[int]bool{5: true}, []SimGroup{
		{ID: 1, Segment: geom.New(0, 0), Health: 10, Damage: 5},
	})

	seg := s.SegmentAt(geom.New(0, 0))
	if seg.MyHealth != 20 || seg.MyDamage != 10 {
		t.Errorf("my pool = %d hp / %d dmg, want 20/10 (squad member excluded)", seg.MyHealth, seg.MyDamage)
	}
	if seg.ResourceHealth != 30 {
		t.Errorf("resource pool = %d, want 30", seg.ResourceHealth)
	}
	enemy := s.SegmentAt(geom.New(1, 0))
	if enemy.EnemyHealth != 50 || enemy.EnemyDamage != 5 {
		t.Errorf("enemy pool = %d hp / %d dmg", enemy.EnemyHealth, enemy.EnemyDamage)
	}
}

func TestGroupSimulatorExchange(t *testing.T) {
	props := game.StandardProperties()
	entities := []game.Entity{
		// 30 hp / 15 dmg mine vs 50 hp / 5 dmg theirs in the same segment.
		{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(2, 2), Health: 10},
		{ID: 2, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(3, 2), Health: 10},
		{ID: 3, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(4, 2), Health: 10},
		{ID: 4, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(5, 5), Health: 50},
	}
	s := NewGroupSimulator(40, 10, 1, props, entities, nil, nil)
	s.Simulate()

	seg := s.SegmentAt(geom.New(0, 0))
	// Mine lost 5 of 30, theirs lost 15 of 50.
	if seg.MyHealth != 25 {
		t.Errorf("my health = %d, want 25", seg.MyHealth)
	}
	if seg.EnemyHealth != 35 {
		t.Errorf("enemy health = %d, want 35", seg.EnemyHealth)
	}
	// Damage scales with the survival fraction.
	if seg.MyDamage != 15*25/30 {
		t.Errorf("my damage = %d, want %d", seg.MyDamage, 15*25/30)
	}
	if seg.EnemyDamage != 5*35/50 {
		t.Errorf("enemy damage = %d, want %d", seg.EnemyDamage, 5*35/50)
	}
}

func TestGroupSimulatorOverkillBleedsIntoResources(t *testing.T) {
	props := game.StandardProperties()
	entities := []game.Entity{
		// 40 dmg mine vs 10 hp theirs: 30 surplus hits the resources.
		{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(2, 2), Health: 10},
		{ID: 2, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(5, 5), Health: 10},
		{ID: 3, PlayerID: game.NoPlayer, Type: game.Resource, Position: geom.New(6, 6), Health: 100},
	}
	s := NewGroupSimulator(40, 10, 1, props, entities, nil, []SimGroup{
		{ID: 1, Segment: geom.New(0, 0), Health: 70, Damage: 35},
	})
	s.Simulate()

	seg := s.SegmentAt(geom.New(0, 0))
	if seg.EnemyHealth != 0 {
		t.Errorf("enemy health = %d, want 0", seg.EnemyHealth)
	}
	if seg.ResourceHealth != 70 {
		t.Errorf("resource health = %d, want 70", seg.ResourceHealth)
	}
}

func TestGroupSimulatorDeathAndMove(t *testing.T) {
	props := game.StandardProperties()
	entities := []game.Entity{
		{ID: 1, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(2, 2), Health: 50},
	}
	s := NewGroupSimulator(40, 10, 1, props, entities, nil, []SimGroup{
		{ID: 1, Segment: geom.New(0, 0), Health: 5, Damage: 1},  // dies to 5 dmg
		{ID: 2, Segment: geom.New(2, 2), Health: 20, Damage: 5}, // unopposed
	})
	s.AddMove(1, geom.OnlyX(1))
	s.AddMove(2, geom.OnlyY(1))
	s.Simulate()

	if _, ok := s.Group(1); ok {
		t.Error("dead group not removed")
	}
	g, ok := s.Group(2)
	if !ok || g.Segment != geom.New(2, 3) {
		t.Errorf("surviving group at %v, want (2,3)", g.Segment)
	}

	// Moves off the segment grid are clamped.
	s.AddMove(2, geom.OnlyY(1))
	s.Simulate()
	s.AddMove(2, geom.OnlyY(1))
	s.Simulate()
	g, _ = s.Group(2)
	if g.Segment != geom.New(2, 3) {
		t.Errorf("group left the grid: %v", g.Segment)
	}
}
