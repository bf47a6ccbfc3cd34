package bot

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/yourusername/rtsengine/internal/config"
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/field"
	"github.com/yourusername/rtsengine/pkg/game"
)

func newTestBot() *Bot {
	return New(config.Default(), field.DefaultWeights(), zap.NewNop())
}

func testView(resource int, entities []game.Entity) *game.PlayerView {
	return &game.PlayerView{
		MyID:    1,
		MapSize: 40,
		Players: []game.Player{
			{ID: 1, Resource: resource},
			{ID: 2, Resource: 0},
		},
		Entities:   entities,
		Properties: game.StandardProperties(),
	}
}

func TestIdleBuilderHarvests(t *testing.T) {
	b := newTestBot()
	actions := b.Tick(testView(0, []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(2, 2), Health: 300, Active: true},
		{ID: 3, PlayerID: 1, Type: game.BuilderUnit, Position: geom.New(8, 8), Health: 10, Active: true},
		{ID: 4, PlayerID: game.NoPlayer, Type: game.Resource, Position: geom.New(20, 20), Health: 30, Active: true},
	}))

	got, ok := actions.EntityActions[3]
	if !ok {
		t.Fatal("builder got no order")
	}
	if got.Attack == nil || got.Attack.AutoAttack == nil {
		t.Fatalf("builder order = %+v, want harvest auto attack", got)
	}
	targets := got.Attack.AutoAttack.ValidTargets
	if len(targets) != 1 || targets[0] != game.Resource {
		t.Errorf("harvest targets = %v, want [Resource]", targets)
	}
	// Nothing to spend: the base must stay idle.
	if a, ok := actions.EntityActions[1]; ok && a.Build != nil {
		t.Errorf("base produced with zero resource: %+v", a)
	}
}

func TestEconomyGrowsWhenAffordable(t *testing.T) {
	b := newTestBot()
	actions := b.Tick(testView(200, []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(2, 2), Health: 300, Active: true},
		{ID: 3, PlayerID: 1, Type: game.BuilderUnit, Position: geom.New(8, 8), Health: 10, Active: true},
		{ID: 4, PlayerID: game.NoPlayer, Type: game.Resource, Position: geom.New(20, 20), Health: 30, Active: true},
	}))

	built := false
	for _, a := range actions.EntityActions {
		if a.Build != nil {
			built = true
		}
	}
	if !built {
		t.Errorf("no build order issued with 200 resource: %v", actions.EntityActions)
	}
}

func TestEngagedUnitAttacks(t *testing.T) {
	b := newTestBot()
	actions := b.Tick(testView(0, []game.Entity{
		{ID: 10, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(10, 10), Health: 10, Active: true},
		{ID: 20, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(13, 10), Health: 10, Active: true},
	}))

	got, ok := actions.EntityActions[10]
	if !ok {
		t.Fatal("engaged unit got no order")
	}
	if got.Attack == nil || got.Attack.Target == nil {
		t.Fatalf("engaged unit order = %+v, want targeted attack", got)
	}
	if *got.Attack.Target != 20 {
		t.Errorf("attack target = %d, want 20", *got.Attack.Target)
	}
	if _, ok := actions.EntityActions[20]; ok {
		t.Error("issued an order for an enemy entity")
	}
}

func TestBuilderRetreatsFromDanger(t *testing.T) {
	b := newTestBot()
	actions := b.Tick(testView(0, []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(0, 0), Health: 300, Active: true},
		{ID: 3, PlayerID: 1, Type: game.BuilderUnit, Position: geom.New(10, 10), Health: 10, Active: true},
		{ID: 20, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(14, 10), Health: 10, Active: true},
	}))

	got, ok := actions.EntityActions[3]
	if !ok {
		t.Fatal("threatened builder got no order")
	}
	if got.Move == nil {
		t.Fatalf("builder order = %+v, want retreat move", got)
	}
	if got.Move.Target != geom.New(0, 0) {
		t.Errorf("retreat target = %v, want home corner (0,0)", got.Move.Target)
	}
}

func TestFullSquadMovesTogether(t *testing.T) {
	b := newTestBot()
	entities := []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(0, 0), Health: 300, Active: true},
		{ID: 10, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(5, 5), Health: 10, Active: true},
		{ID: 11, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(6, 5), Health: 10, Active: true},
		{ID: 12, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(7, 5), Health: 10, Active: true},
		{ID: 13, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(8, 5), Health: 10, Active: true},
		{ID: 14, PlayerID: 1, Type: game.MeleeUnit, Position: geom.New(5, 6), Health: 50, Active: true},
		{ID: 15, PlayerID: 1, Type: game.MeleeUnit, Position: geom.New(6, 6), Health: 50, Active: true},
	}
	actions := b.Tick(testView(0, entities))

	// Per-member destinations fan out around one shared waypoint, so
	// they stay within the refinement radius of each other.
	var first *geom.Vec2
	for _, id := range []int{10, 11, 12, 13, 14, 15} {
		got, ok := actions.EntityActions[id]
		if !ok || got.Move == nil {
			t.Fatalf("unit %d order = %+v, want squad move", id, got)
		}
		if first == nil {
			p := got.Move.Target
			first = &p
		} else if got.Move.Target.Distance(*first) > 4 {
			t.Errorf("unit %d moves to %v, far from squad waypoint near %v",
				id, got.Move.Target, *first)
		}
	}
	if len(b.groups) != 1 {
		t.Errorf("groups = %d, want 1", len(b.groups))
	}
}

func TestOutmatchedSquadRegroups(t *testing.T) {
	b := newTestBot()
	entities := []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(36, 36), Health: 300, Active: true},
		{ID: 10, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(30, 30), Health: 10, Active: true},
		{ID: 11, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(31, 30), Health: 10, Active: true},
		{ID: 12, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(32, 30), Health: 10, Active: true},
		{ID: 13, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(33, 30), Health: 10, Active: true},
		{ID: 14, PlayerID: 1, Type: game.MeleeUnit, Position: geom.New(30, 31), Health: 50, Active: true},
		{ID: 15, PlayerID: 1, Type: game.MeleeUnit, Position: geom.New(31, 31), Health: 50, Active: true},
		// Six full-health melee pooled on one segment: 300 health against
		// the squad's 140.
		{ID: 20, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(20, 20), Health: 50, Active: true},
		{ID: 21, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(21, 20), Health: 50, Active: true},
		{ID: 22, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(22, 20), Health: 50, Active: true},
		{ID: 23, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(20, 21), Health: 50, Active: true},
		{ID: 24, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(21, 21), Health: 50, Active: true},
		{ID: 25, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(22, 21), Health: 50, Active: true},
	}
	b.Tick(testView(0, entities))

	if len(b.groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(b.groups))
	}
	if _, set := b.groups[0].Target(); set {
		t.Error("outmatched squad kept an attack target, want regroup")
	}
}

func TestPartialSquadHoldsGround(t *testing.T) {
	b := newTestBot()
	actions := b.Tick(testView(0, []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(0, 0), Health: 300, Active: true},
		{ID: 10, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(5, 5), Health: 10, Active: true},
	}))

	got, ok := actions.EntityActions[10]
	if !ok {
		t.Fatal("lone unit got no order")
	}
	if got.Attack == nil || got.Attack.AutoAttack == nil {
		t.Errorf("lone unit order = %+v, want defensive auto attack", got)
	}
}

func TestTickDeterministic(t *testing.T) {
	view := func() *game.PlayerView {
		return testView(50, []game.Entity{
			{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(0, 0), Health: 300, Active: true},
			{ID: 3, PlayerID: 1, Type: game.BuilderUnit, Position: geom.New(8, 8), Health: 10, Active: true},
			{ID: 10, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(10, 10), Health: 10, Active: true},
			{ID: 11, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(11, 12), Health: 10, Active: true},
			{ID: 20, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(15, 10), Health: 10, Active: true},
			{ID: 21, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(14, 13), Health: 50, Active: true},
			{ID: 4, PlayerID: game.NoPlayer, Type: game.Resource, Position: geom.New(20, 20), Health: 30, Active: true},
		})
	}

	a := newTestBot().Tick(view())
	b := newTestBot().Tick(view())
	if !reflect.DeepEqual(a.EntityActions, b.EntityActions) {
		t.Errorf("actions diverge for equal seeds:\n%v\n%v", a.EntityActions, b.EntityActions)
	}
}

func TestGroupSweepDropsDeadMembers(t *testing.T) {
	b := newTestBot()
	b.Tick(testView(0, []game.Entity{
		{ID: 10, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(5, 5), Health: 10, Active: true},
	}))
	if len(b.assigned) != 1 {
		t.Fatalf("assigned = %d, want 1", len(b.assigned))
	}

	// Unit 10 vanishes from the next snapshot.
	b.Tick(testView(0, []game.Entity{
		{ID: 1, PlayerID: 1, Type: game.BuilderBase, Position: geom.New(0, 0), Health: 300, Active: true},
	}))
	if len(b.assigned) != 0 {
		t.Errorf("assigned after sweep = %d, want 0", len(b.assigned))
	}
}

func TestMovingAverage(t *testing.T) {
	m := NewMovingAverage(3)
	if m.Value() != 0 {
		t.Errorf("empty average = %v, want 0", m.Value())
	}
	m.Add(1)
	m.Add(2)
	if m.Value() != 1.5 {
		t.Errorf("average = %v, want 1.5", m.Value())
	}
	m.Add(3)
	m.Add(10) // evicts 1
	if m.Value() != 5 {
		t.Errorf("windowed average = %v, want 5", m.Value())
	}
	if m.Count() != 3 {
		t.Errorf("count = %d, want 3", m.Count())
	}
}

func TestStatsObserve(t *testing.T) {
	s := NewStats(zap.NewNop())
	s.ObserveTick(2_000_000, 10, 20, 30) // 2ms
	s.ObserveTick(4_000_000, 5, 5, 5)
	if s.Ticks != 2 {
		t.Errorf("ticks = %d, want 2", s.Ticks)
	}
	if s.EntityTransitions != 15 || s.BattleTransitions != 25 || s.BuildTransitions != 35 {
		t.Errorf("transition totals = %d/%d/%d",
			s.EntityTransitions, s.BattleTransitions, s.BuildTransitions)
	}
	// 60 transitions in 2ms, then 15 in 4ms.
	want := (30.0 + 3.75) / 2
	if got := s.PlanSpeed(); got != want {
		t.Errorf("plan speed = %v, want %v", got, want)
	}
	s.Report()
}
