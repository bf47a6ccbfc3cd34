// Command planbench exercises the planners on fixed scenarios and
// reports plan quality and search throughput.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/field"
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/planner"
	"github.com/yourusername/rtsengine/pkg/sim"
)

func main() {
	seed := flag.Int64("seed", 42, "Search RNG seed")
	entityBudget := flag.Int("entity-budget", 1000, "Entity planner transition budget")
	battleBudget := flag.Int("battle-budget", 2000, "Battle planner transition budget")
	buildBudget := flag.Int("build-budget", 6000, "Build planner transition budget")
	flag.Parse()

	fmt.Println("=== Planner Benchmark ===")
	fmt.Println()

	props := game.StandardProperties()

	fmt.Println("1. Entity planner (ranged duel)...")
	benchEntity(props, *seed, *entityBudget)
	fmt.Println()

	fmt.Println("2. Battle planner (two on one)...")
	benchBattle(props, *seed, *battleBudget)
	fmt.Println()

	fmt.Println("3. Build planner (opening to five builders)...")
	benchBuild(props, *buildBudget)
	fmt.Println()

	fmt.Println("4. Group planner (field descent)...")
	benchGroup()
}

func benchEntity(props game.PropertyTable, seed int64, budget int) {
	snapshot := sim.NewEntitySimulator(
		geom.NewRect(geom.New(0, 0), geom.New(30, 30)), props,
		[]game.Entity{
			{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(10, 15), Health: 10, Active: true},
			{ID: 2, PlayerID: 2, Type: game.RangedUnit, Position: geom.New(20, 15), Health: 10, Active: true},
		},
		[]game.Player{{ID: 1}, {ID: 2}},
	)
	p := planner.NewEntityPlanner(1, []int{1}, 2, 5)
	rng := rand.New(rand.NewSource(seed))

	start := time.Now()
	plan := p.Update(snapshot, nil, budget, rng)
	elapsed := time.Since(start)

	fmt.Printf("   score=%d steps=%d transitions=%d in %v\n",
		plan.Score, len(plan.Actions), p.Transitions(), elapsed)
}

func benchBattle(props game.PropertyTable, seed int64, budget int) {
	snapshot := sim.NewEntitySimulator(
		geom.NewRect(geom.New(0, 0), geom.New(30, 30)), props,
		[]game.Entity{
			{ID: 1, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(10, 13), Health: 10, Active: true},
			{ID: 2, PlayerID: 1, Type: game.RangedUnit, Position: geom.New(10, 17), Health: 10, Active: true},
			{ID: 3, PlayerID: 2, Type: game.MeleeUnit, Position: geom.New(20, 15), Health: 50, Active: true},
		},
		[]game.Player{{ID: 1}, {ID: 2}},
	)
	p := planner.NewBattlePlanner([]int{1}, 2, 5)
	rng := rand.New(rand.NewSource(seed))

	start := time.Now()
	plan := p.Update(snapshot, nil, budget, rng)
	elapsed := time.Since(start)

	fmt.Printf("   score=%d steps=%d transitions=%d in %v\n",
		plan.Score, len(plan.Steps), p.Transitions(), elapsed)
}

func benchBuild(props game.PropertyTable, budget int) {
	snapshot := sim.NewBuildSimulator(props, 20, 5, []sim.Builder{{Task: sim.TaskHarvest}})
	p := planner.NewBuildPlanner(32)

	start := time.Now()
	plan := p.Update(snapshot, func(s *sim.BuildSimulator) bool {
		return s.BuilderCount() >= 5
	}, budget)
	elapsed := time.Since(start)

	fmt.Printf("   score=%d steps=%d transitions=%d in %v\n",
		plan.Score, len(plan.Steps), p.Transitions(), elapsed)

	// Replay to show the reached economy.
	replay := snapshot.Clone()
	for _, step := range plan.Steps {
		step.Apply(replay)
	}
	fmt.Printf("   final: builders=%d resource=%d tick=%d\n",
		replay.BuilderCount(), replay.Resource(), replay.Tick())
}

func benchGroup() {
	const mapSize, segmentSize = 80, 5
	f := field.NewField(mapSize / segmentSize)
	f.AddAt(geom.New(12, 12), 10) // worth reaching
	f.AddAt(geom.New(4, 4), -5)   // worth avoiding

	p := planner.NewGroupPlanner(mapSize, segmentSize, 1.0)
	start := geom.New(2, 2)

	begin := time.Now()
	plan := p.Update(start, geom.NewRange(start, 12), f.Score)
	elapsed := time.Since(begin)

	fmt.Printf("   cost=%.2f waypoints=%d in %v\n",
		plan.Cost, len(plan.Waypoints), elapsed)
}
