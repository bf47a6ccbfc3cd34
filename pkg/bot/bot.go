// Package bot ties the planning core to the game protocol: it keeps
// the world picture current, decides which planner handles which unit
// each tick, and translates plan first-steps into wire actions.
package bot

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/rtsengine/internal/config"
	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/field"
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/planner"
	"github.com/yourusername/rtsengine/pkg/sim"
	"github.com/yourusername/rtsengine/pkg/squad"
	"github.com/yourusername/rtsengine/pkg/world"
)

// Bot is the per-player decision maker. Call Tick once per snapshot.
type Bot struct {
	log     *zap.Logger
	cfg     config.Config
	weights field.Weights

	world  *world.World
	ledger world.Ledger
	rng    *rand.Rand
	stats  *Stats

	influence    *field.InfluenceField
	groupField   *field.GroupField
	entityField  *field.EntityField
	groupPlanner *planner.GroupPlanner
	buildPlanner *planner.BuildPlanner

	groups      []*squad.Group
	assigned    map[int]int
	nextGroupID int

	ready bool
}

// New builds a bot from configuration; fields sized to the map are
// allocated lazily on the first tick.
func New(cfg config.Config, weights field.Weights, log *zap.Logger) *Bot {
	return &Bot{
		log:          log,
		cfg:          cfg,
		weights:      weights,
		world:        world.New(),
		rng:          rand.New(rand.NewSource(cfg.Search.Seed)),
		stats:        NewStats(log),
		buildPlanner: planner.NewBuildPlanner(cfg.Search.BuildMaxDepth),
		assigned:     make(map[int]int),
		nextGroupID:  1,
	}
}

// Stats exposes the run counters for reporting and telemetry.
func (b *Bot) Stats() *Stats { return b.stats }

// World exposes the accumulated world picture, read-only by
// convention.
func (b *Bot) World() *world.World { return b.world }

// Tick ingests one snapshot and returns this tick's orders.
func (b *Bot) Tick(view *game.PlayerView) game.Action {
	started := time.Now()
	b.world.Update(view)
	provide, use := b.world.Population()
	b.ledger.Reset(b.world.Me().Resource, provide, use)
	b.initFields(view.MapSize)
	b.influence.Update(b.world.Properties(), b.allEntities(), b.world.MyID())
	b.sweepGroups()

	actions := game.NewAction()
	handled := make(map[int]bool)

	entityTr, battleTr := b.planBattles(actions, handled)
	buildTr := b.planEconomy(actions, handled)
	b.commandGroups(actions, handled)
	b.commandIdle(actions, handled)

	b.stats.ObserveTick(time.Since(started), entityTr, battleTr, buildTr)
	return actions
}

func (b *Bot) initFields(mapSize int) {
	if b.ready {
		return
	}
	b.influence = field.NewInfluenceField(mapSize)
	b.groupField = field.NewGroupField(mapSize, b.cfg.Bot.SegmentSize, b.weights)
	b.entityField = field.NewEntityField(mapSize, b.weights)
	b.groupPlanner = planner.NewGroupPlanner(mapSize, b.cfg.Bot.SegmentSize, b.cfg.Search.DistanceWeight)
	b.ready = true
}

func (b *Bot) allEntities() []game.Entity {
	var out []game.Entity
	b.world.VisitEntities(func(e *game.Entity) {
		out = append(out, *e)
	})
	return out
}

func (b *Bot) sweepGroups() {
	alive := func(id int) bool {
		_, ok := b.world.Entity(id)
		return ok
	}
	kept := b.groups[:0]
	for _, g := range b.groups {
		dropped := g.Sweep(alive)
		if dropped > 0 {
			b.log.Debug("group lost members",
				zap.Int("group", g.ID()), zap.Int("dropped", dropped))
		}
		if g.Size() == 0 {
			continue
		}
		kept = append(kept, g)
	}
	b.groups = kept
	for id := range b.assigned {
		if !alive(id) {
			delete(b.assigned, id)
		}
	}
}

// planBattles runs the combat planners over every engagement: my armed
// units with a known enemy inside the combat window radius.
func (b *Bot) planBattles(actions game.Action, handled map[int]bool) (entityTr, battleTr int) {
	props := b.world.Properties()
	enemies := b.world.OpponentEntities()
	if len(enemies) == 0 {
		return 0, 0
	}

	var engaged []game.Entity
	for _, e := range b.world.MyEntities() {
		if !game.IsCombat(e.Type, props) || !e.Active {
			continue
		}
		if _, d := nearestEntity(e.Position, enemies); d <= b.cfg.Bot.CombatWindowRadius {
			engaged = append(engaged, e)
		}
	}
	if len(engaged) == 0 {
		return 0, 0
	}

	window := b.combatWindow(engaged, enemies)
	snapshot := sim.NewEntitySimulator(window, props, b.allEntities(), b.world.Players())

	// Per-unit lookahead plans become coordination hints for the joint
	// search.
	hints := make(map[int][]sim.Action)
	for _, e := range engaged {
		ep := planner.NewEntityPlanner(e.ID, []int{b.world.MyID()},
			b.cfg.Search.MinDepth, b.cfg.Search.MaxDepth)
		plan := ep.Update(snapshot, hints, b.cfg.Search.EntityBudget, b.rng)
		entityTr += ep.Transitions()
		if len(plan.Actions) > 0 {
			hints[e.ID] = plan.Actions
		}
	}

	bp := planner.NewBattlePlanner([]int{b.world.MyID()},
		b.cfg.Search.MinDepth, b.cfg.Search.MaxDepth)
	plan := bp.Update(snapshot, hints, b.cfg.Search.BattleBudget, b.rng)
	battleTr = bp.Transitions()

	if len(plan.Steps) == 0 {
		for _, e := range engaged {
			actions.EntityActions[e.ID] = autoAttackOrder(props[e.Type].SightRange)
			handled[e.ID] = true
		}
		return entityTr, battleTr
	}
	for _, a := range plan.Steps[0] {
		e, ok := b.world.Entity(a.EntityID)
		if !ok || e.PlayerID != b.world.MyID() {
			continue
		}
		if wire, ok := wireAction(a, e.Position); ok {
			actions.EntityActions[a.EntityID] = wire
		}
		handled[a.EntityID] = true
	}
	b.log.Debug("battle planned",
		zap.Int("engaged", len(engaged)),
		zap.Int("score", plan.Score),
		zap.Int("transitions", battleTr))
	return entityTr, battleTr
}

// combatWindow bounds the engagement area, padded by the window radius
// and clipped to the map.
func (b *Bot) combatWindow(engaged, enemies []game.Entity) geom.Rect {
	min := engaged[0].Position
	max := engaged[0].Position
	expand := func(p geom.Vec2) {
		min = min.Lowest(p)
		max = max.Highest(p)
	}
	for _, e := range engaged {
		expand(e.Position)
	}
	for _, e := range enemies {
		expand(e.Position)
	}
	pad := geom.Both(b.cfg.Bot.CombatWindowRadius)
	bounds := b.world.Bounds()
	return geom.NewRect(
		min.Sub(pad).Highest(bounds.Min),
		max.Add(pad).Add(geom.Both(1)).Lowest(bounds.Max),
	)
}

// planEconomy runs the opening build search and translates its first
// step. Once the opening goal is met the bases keep producing on a
// simple budget check.
func (b *Bot) planEconomy(actions game.Action, handled map[int]bool) int {
	props := b.world.Properties()
	builders := b.world.MyEntities(game.BuilderUnit)
	if len(builders) >= b.cfg.Bot.OpeningBuilders {
		b.produceUnits(actions)
		return 0
	}

	simBuilders := make([]sim.Builder, len(builders))
	for i := range simBuilders {
		simBuilders[i] = sim.Builder{Task: sim.TaskHarvest}
	}
	provide, _ := b.world.Population()
	snapshot := sim.NewBuildSimulator(props, b.world.Me().Resource, provide, simBuilders)

	target := b.cfg.Bot.OpeningBuilders
	plan := b.buildPlanner.Update(snapshot, func(s *sim.BuildSimulator) bool {
		return s.BuilderCount() >= target
	}, b.cfg.Search.BuildBudget)

	// A leading simulate step means the plan defers its next decision;
	// let the bases run on defaults until it comes due.
	if len(plan.Steps) > 0 && plan.Steps[0].Kind != planner.StepSimulate {
		b.applyBuildStep(plan.Steps[0], actions, handled)
	} else {
		b.produceUnits(actions)
	}
	return b.buildPlanner.Transitions()
}

func (b *Bot) applyBuildStep(step planner.BuildStep, actions game.Action, handled map[int]bool) {
	props := b.world.Properties()
	switch step.Kind {
	case planner.StepBuyBuilder:
		b.orderUnit(actions, game.BuilderBase, game.BuilderUnit)
	case planner.StepBuild:
		b.orderConstruction(actions, handled, step.Building)
	case planner.StepAssignBuild:
		// Send a builder to an unfinished building.
		for _, site := range b.world.MyEntities() {
			p := props[site.Type]
			if p.CanMove || site.Active || site.Health >= p.MaxHealth {
				continue
			}
			if builder, ok := b.idleBuilder(handled); ok {
				actions.EntityActions[builder.ID] = game.EntityAction{
					Repair: &game.RepairAction{Target: site.ID},
				}
				handled[builder.ID] = true
			}
			break
		}
	case planner.StepAssignHarvest, planner.StepSimulate:
		// Harvesting is the idle default; nothing to order explicitly.
	}
}

// orderConstruction reserves the cost and sends an idle builder to a
// free square near home.
func (b *Bot) orderConstruction(actions game.Action, handled map[int]bool, kind game.EntityType) {
	props := b.world.Properties()
	p := props[kind]
	builder, ok := b.idleBuilder(handled)
	if !ok {
		return
	}
	site, ok := b.world.FindFreeSquare(builder.Position, p.Size+1, 12)
	if !ok {
		return
	}
	if !b.ledger.TryReserve(p.InitialCost, 0) {
		return
	}
	// Anchor inside the padded square so the builder keeps an approach
	// lane.
	anchor := site.Add(geom.Both(1))
	b.world.LockSquare(anchor, p.Size)
	actions.EntityActions[builder.ID] = game.EntityAction{
		Build: &game.BuildAction{EntityType: kind, Position: anchor},
	}
	handled[builder.ID] = true
	b.log.Info("construction ordered",
		zap.String("kind", string(kind)),
		zap.Int("builder", builder.ID))
}

// produceUnits keeps bases working outside the planned opening.
func (b *Bot) produceUnits(actions game.Action) {
	if len(b.world.MyEntities(game.BuilderUnit)) < b.cfg.Bot.OpeningBuilders {
		b.orderUnit(actions, game.BuilderBase, game.BuilderUnit)
	}
	b.orderUnit(actions, game.RangedBase, game.RangedUnit)
	b.orderUnit(actions, game.MeleeBase, game.MeleeUnit)
}

// orderUnit queues unit production at the first active base of the
// given type, if resource and population headroom allow.
func (b *Bot) orderUnit(actions game.Action, baseType, unitType game.EntityType) {
	props := b.world.Properties()
	unit := props[unitType]
	for _, base := range b.world.MyEntities(baseType) {
		if !base.Active {
			continue
		}
		if _, taken := actions.EntityActions[base.ID]; taken {
			continue
		}
		pos, ok := geom.FindNeighbour(base.Position, props[baseType].Size, func(p geom.Vec2) bool {
			return b.world.IsFree(p)
		})
		if !ok {
			continue
		}
		if !b.ledger.TryReserve(unit.InitialCost, unit.PopulationUse) {
			return
		}
		b.world.Lock(pos)
		actions.EntityActions[base.ID] = game.EntityAction{
			Build: &game.BuildAction{EntityType: unitType, Position: pos},
		}
		return
	}
}

// commandGroups enrolls loose combat units into squads and routes ready
// squads along group-field waypoints.
func (b *Bot) commandGroups(actions game.Action, handled map[int]bool) {
	props := b.world.Properties()
	for _, e := range b.world.MyEntities(game.RangedUnit, game.MeleeUnit) {
		if _, ok := b.assigned[e.ID]; ok {
			continue
		}
		b.enroll(e)
	}

	for _, g := range b.groups {
		members := g.Members()
		if len(members) == 0 {
			continue
		}
		stats, ok := g.ComputeStats(props, b.world.Entity)
		if !ok {
			continue
		}
		if g.State() != squad.StateReady {
			// Staffing squads defend where they stand.
			for _, m := range members {
				if !handled[m.ID] {
					actions.EntityActions[m.ID] = autoAttackOrder(props[m.Type].SightRange)
					handled[m.ID] = true
				}
			}
			continue
		}

		target := b.groupTarget(g, stats.Center)
		exclude := make(map[int]bool, len(members))
		for _, m := range members {
			exclude[m.ID] = true
		}
		if !b.shouldEngage(g, stats, target, exclude) {
			target = b.world.HomeCorner()
			g.ClearTarget()
		} else {
			g.SetTarget(target)
		}
		b.groupField.Update(props, b.allEntities(), b.world.MyID(), target, exclude)

		startSeg := stats.Center.Div(b.cfg.Bot.SegmentSize)
		plan := b.groupPlanner.Update(startSeg,
			geom.NewRange(startSeg, b.cfg.Search.GroupRange), b.groupField.Score)

		waypoint := target
		if len(plan.Waypoints) > 0 {
			waypoint = plan.Waypoints[0]
		}
		for _, m := range members {
			if handled[m.ID] {
				continue
			}
			actions.EntityActions[m.ID] = game.EntityAction{
				Move: &game.MoveAction{
					Target:              b.memberDestination(m.ID, waypoint),
					FindClosestPosition: true,
					BreakThrough:        true,
				},
			}
			handled[m.ID] = true
		}
	}
}

// memberDestination refines the squad waypoint for one member: the best
// cell of the member's own field in the waypoint's vicinity, so members
// fan out instead of stacking on one tile.
func (b *Bot) memberDestination(id int, waypoint geom.Vec2) geom.Vec2 {
	b.entityField.Update(b.world.Properties(), b.allEntities(), b.world.MyID(), id, waypoint)
	best := waypoint
	bestScore := b.entityField.Score(waypoint)
	geom.VisitRange(waypoint, 1, 2, b.world.Bounds(), func(p geom.Vec2) {
		if s := b.entityField.Score(p); s > bestScore {
			best, bestScore = p, s
		}
	})
	return best
}

// enroll places a unit into the first squad that still needs its type,
// opening a new squad when none does.
func (b *Bot) enroll(e game.Entity) {
	for _, g := range b.groups {
		if g.Needs(e.Type) > 0 {
			g.AddUnit(e.Type, e.ID)
			b.assigned[e.ID] = g.ID()
			return
		}
	}
	g := squad.New(b.nextGroupID, map[game.EntityType]int{
		game.RangedUnit: b.cfg.Bot.GroupRanged,
		game.MeleeUnit:  b.cfg.Bot.GroupMelee,
	})
	b.nextGroupID++
	g.AddUnit(e.Type, e.ID)
	b.groups = append(b.groups, g)
	b.assigned[e.ID] = g.ID()
}

// shouldEngage projects the squad marching to the target segment on
// the pooled group simulator and reports whether it survives the trip.
func (b *Bot) shouldEngage(g *squad.Group, stats squad.Stats, target geom.Vec2, exclude map[int]bool) bool {
	segSize := b.cfg.Bot.SegmentSize
	s := sim.NewGroupSimulator(b.world.Size(), segSize, b.world.MyID(),
		b.world.Properties(), b.allEntities(), exclude,
		[]sim.SimGroup{{
			ID:      g.ID(),
			Segment: stats.Center.Div(segSize),
			Health:  stats.Health,
			Damage:  stats.Power,
		}})

	goal := target.Div(segSize)
	for round := 0; round < 2*s.GridSize(); round++ {
		sg, alive := s.Group(g.ID())
		if !alive {
			return false
		}
		if sg.Segment != goal {
			s.AddMove(g.ID(), stepSign(goal.Sub(sg.Segment)))
		} else if s.SegmentAt(goal).EnemyHealth <= 0 {
			return true
		}
		s.Simulate()
	}
	_, alive := s.Group(g.ID())
	return alive
}

// stepSign reduces a segment delta to a single axis-aligned step,
// longest axis first.
func stepSign(d geom.Vec2) geom.Vec2 {
	abs := d.Abs()
	if abs.X >= abs.Y && d.X != 0 {
		if d.X > 0 {
			return geom.New(1, 0)
		}
		return geom.New(-1, 0)
	}
	if d.Y > 0 {
		return geom.New(0, 1)
	}
	if d.Y < 0 {
		return geom.New(0, -1)
	}
	return geom.Zero
}

// groupTarget aims a squad at the nearest known enemy, or across the
// map when none is known.
func (b *Bot) groupTarget(g *squad.Group, center geom.Vec2) geom.Vec2 {
	enemies := b.world.OpponentEntities()
	if e, d := nearestEntity(center, enemies); d >= 0 {
		return e.Position
	}
	home := b.world.HomeCorner()
	size := b.world.Size()
	return geom.New(size-1-home.X, size-1-home.Y)
}

// commandIdle gives default orders to everything still unhandled:
// builders harvest or flee danger, armed leftovers auto-attack.
func (b *Bot) commandIdle(actions game.Action, handled map[int]bool) {
	props := b.world.Properties()
	for _, e := range b.world.MyEntities() {
		if handled[e.ID] {
			continue
		}
		if _, taken := actions.EntityActions[e.ID]; taken {
			continue
		}
		p := props[e.Type]
		switch {
		case e.Type == game.BuilderUnit:
			if !b.influence.Safe(e.Position) {
				actions.EntityActions[e.ID] = game.EntityAction{
					Move: &game.MoveAction{Target: b.world.HomeCorner(), FindClosestPosition: true},
				}
				break
			}
			if site, ok := b.repairSite(e); ok {
				actions.EntityActions[e.ID] = game.EntityAction{
					Repair: &game.RepairAction{Target: site},
				}
				break
			}
			actions.EntityActions[e.ID] = game.EntityAction{
				Attack: &game.AttackAction{AutoAttack: &game.AutoAttack{
					PathfindRange: b.world.Size(),
					ValidTargets:  []game.EntityType{game.Resource},
				}},
			}
		case p.Attack != nil && e.Active:
			actions.EntityActions[e.ID] = autoAttackOrder(p.SightRange)
		}
	}
}

// repairSite finds a damaged or unfinished friendly building adjacent
// to the builder.
func (b *Bot) repairSite(builder game.Entity) (int, bool) {
	props := b.world.Properties()
	for _, e := range b.world.MyEntities() {
		p := props[e.Type]
		if p.CanMove || e.Health >= p.MaxHealth {
			continue
		}
		bounds := e.Bounds(props)
		if bounds.DistanceToPosition(builder.Position) <= 1 {
			return e.ID, true
		}
	}
	return 0, false
}

// idleBuilder returns a builder that has no orders yet.
func (b *Bot) idleBuilder(handled map[int]bool) (game.Entity, bool) {
	for _, e := range b.world.MyEntities(game.BuilderUnit) {
		if !handled[e.ID] {
			return e, true
		}
	}
	return game.Entity{}, false
}

// nearestEntity returns the closest entity and its distance, or
// distance -1 for an empty list.
func nearestEntity(from geom.Vec2, entities []game.Entity) (game.Entity, int) {
	best := -1
	var found game.Entity
	for _, e := range entities {
		d := from.Distance(e.Position)
		if best < 0 || d < best {
			best, found = d, e
		}
	}
	return found, best
}

// wireAction converts a simulator action into the protocol form.
func wireAction(a sim.Action, position geom.Vec2) (game.EntityAction, bool) {
	switch a.Kind {
	case sim.ActionAttack:
		target := a.Target
		return game.EntityAction{Attack: &game.AttackAction{Target: &target}}, true
	case sim.ActionMove:
		return game.EntityAction{Move: &game.MoveAction{Target: position.Add(a.Direction)}}, true
	}
	return game.EntityAction{}, false
}

func autoAttackOrder(sight int) game.EntityAction {
	return game.EntityAction{Attack: &game.AttackAction{
		AutoAttack: &game.AutoAttack{PathfindRange: sight},
	}}
}
