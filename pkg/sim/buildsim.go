package sim

import (
	"github.com/yourusername/rtsengine/pkg/game"
)

// TransferTicks is the delay before a reassigned builder becomes
// productive at its new task.
const TransferTicks = 5

// BuildTask is what a simulated builder is currently doing.
type BuildTask int

const (
	TaskNone BuildTask = iota
	TaskHarvest
	TaskBuild
)

// Builder is one simulated worker. Construction is meaningful only for
// TaskBuild and always references a live construction, or is cleared on
// the next simulate step.
type Builder struct {
	Task         BuildTask
	Construction int
	TicksToStart int
}

// Construction is a building in progress; NeedResource counts down to
// zero as assigned builders spend resource on it.
type Construction struct {
	ID           int
	Kind         game.EntityType
	NeedResource int
}

// BuildSimulator replays economy progression: harvesting, construction
// spending, and population growth. It ignores map geometry entirely.
type BuildSimulator struct {
	props game.PropertyTable

	tick              int
	resource          int
	populationProvide int
	builders          []Builder
	constructions     []Construction
	completed         map[game.EntityType]int
	nextConstruction  int
}

// NewBuildSimulator starts an economy replay from the given stock.
func NewBuildSimulator(props game.PropertyTable, resource, populationProvide int, builders []Builder) *BuildSimulator {
	return &BuildSimulator{
		props:             props,
		resource:          resource,
		populationProvide: populationProvide,
		builders:          append([]Builder(nil), builders...),
		completed:         make(map[game.EntityType]int),
		nextConstruction:  1,
	}
}

// Clone returns a deep copy sharing only the property table.
func (s *BuildSimulator) Clone() *BuildSimulator {
	c := *s
	c.builders = append([]Builder(nil), s.builders...)
	c.constructions = append([]Construction(nil), s.constructions...)
	c.completed = make(map[game.EntityType]int, len(s.completed))
	for k, v := range s.completed {
		c.completed[k] = v
	}
	return &c
}

// HarvestRate is resource gained per productive harvesting builder per
// tick.
func (s *BuildSimulator) HarvestRate() int {
	b := s.props[game.BuilderUnit]
	if b.Attack == nil {
		return 0
	}
	return b.Attack.Damage * s.props[game.Resource].ResourcePerHealth
}

// ConstructRate is resource a productive assigned builder can spend on
// its construction per tick.
func (s *BuildSimulator) ConstructRate() int {
	b := s.props[game.BuilderUnit]
	if b.Repair == nil {
		return 0
	}
	return b.Repair.Power
}

// Properties returns the shared property table.
func (s *BuildSimulator) Properties() game.PropertyTable { return s.props }

func (s *BuildSimulator) Tick() int              { return s.tick }
func (s *BuildSimulator) Resource() int          { return s.resource }
func (s *BuildSimulator) PopulationProvide() int { return s.populationProvide }
func (s *BuildSimulator) BuilderCount() int      { return len(s.builders) }

// Builders returns the live builder list; callers must not mutate it.
func (s *BuildSimulator) Builders() []Builder { return s.builders }

// Constructions returns the in-flight constructions; callers must not
// mutate the slice.
func (s *BuildSimulator) Constructions() []Construction { return s.constructions }

// Completed returns how many buildings of kind finished during this
// replay.
func (s *BuildSimulator) Completed(kind game.EntityType) int { return s.completed[kind] }

// ConstructionInFlight reports whether a construction of kind is in
// progress.
func (s *BuildSimulator) ConstructionInFlight(kind game.EntityType) bool {
	for _, c := range s.constructions {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// AssignedBuilders counts builders targeting the given construction.
func (s *BuildSimulator) AssignedBuilders(constructionID int) int {
	n := 0
	for _, b := range s.builders {
		if b.Task == TaskBuild && b.Construction == constructionID {
			n++
		}
	}
	return n
}

// HarvesterCount counts builders assigned to harvest, productive or
// still in transfer.
func (s *BuildSimulator) HarvesterCount() int {
	n := 0
	for _, b := range s.builders {
		if b.Task == TaskHarvest {
			n++
		}
	}
	return n
}

// BuilderCost is the price of the next builder; it grows with the
// number already fielded.
func (s *BuildSimulator) BuilderCost() int {
	return s.props[game.BuilderUnit].InitialCost + len(s.builders)
}

// CanBuyBuilder reports whether stock and population allow another
// builder.
func (s *BuildSimulator) CanBuyBuilder() bool {
	use := s.props[game.BuilderUnit].PopulationUse
	return s.resource >= s.BuilderCost() &&
		(len(s.builders)+1)*use <= s.populationProvide
}

// BuyBuilder spends stock on a new idle builder. No-op when
// CanBuyBuilder is false.
func (s *BuildSimulator) BuyBuilder() {
	if !s.CanBuyBuilder() {
		return
	}
	s.resource -= s.BuilderCost()
	s.builders = append(s.builders, Builder{Task: TaskNone, TicksToStart: TransferTicks})
}

// StartConstruction opens a construction of kind and returns its id.
func (s *BuildSimulator) StartConstruction(kind game.EntityType) int {
	id := s.nextConstruction
	s.nextConstruction++
	s.constructions = append(s.constructions, Construction{
		ID:           id,
		Kind:         kind,
		NeedResource: s.props[kind].InitialCost,
	})
	return id
}

// AssignHarvest sends the builder at index to harvest.
func (s *BuildSimulator) AssignHarvest(index int) {
	if index < 0 || index >= len(s.builders) {
		return
	}
	s.builders[index] = Builder{Task: TaskHarvest, TicksToStart: TransferTicks}
}

// AssignBuild sends the builder at index to work on a construction.
func (s *BuildSimulator) AssignBuild(index, constructionID int) {
	if index < 0 || index >= len(s.builders) {
		return
	}
	s.builders[index] = Builder{
		Task:         TaskBuild,
		Construction: constructionID,
		TicksToStart: TransferTicks,
	}
}

// Simulate advances the economy by the given number of ticks.
func (s *BuildSimulator) Simulate(ticks int) {
	for t := 0; t < ticks; t++ {
		s.step()
	}
}

func (s *BuildSimulator) step() {
	harvestRate := s.HarvestRate()
	constructRate := s.ConstructRate()

	for i := range s.constructions {
		c := &s.constructions[i]
		workers := 0
		for _, b := range s.builders {
			if b.Task == TaskBuild && b.Construction == c.ID && b.TicksToStart == 0 {
				workers++
			}
		}
		progress := workers * constructRate
		if progress > c.NeedResource {
			progress = c.NeedResource
		}
		if progress > s.resource {
			progress = s.resource
		}
		c.NeedResource -= progress
		s.resource -= progress
	}

	for i := range s.builders {
		b := &s.builders[i]
		if b.TicksToStart > 0 {
			b.TicksToStart--
			continue
		}
		if b.Task == TaskHarvest {
			s.resource += harvestRate
		}
	}

	kept := s.constructions[:0]
	for _, c := range s.constructions {
		if c.NeedResource > 0 {
			kept = append(kept, c)
			continue
		}
		s.populationProvide += s.props[c.Kind].PopulationProvide
		s.completed[c.Kind]++
	}
	s.constructions = kept

	// Builders whose construction finished or vanished fall back to
	// idle.
	for i := range s.builders {
		b := &s.builders[i]
		if b.Task != TaskBuild {
			continue
		}
		live := false
		for _, c := range s.constructions {
			if c.ID == b.Construction {
				live = true
				break
			}
		}
		if !live {
			*b = Builder{Task: TaskNone}
		}
	}

	s.tick++
}

// Score is the planner heuristic: economic strength reached quickly.
func (s *BuildSimulator) Score() int {
	return s.resource + s.populationProvide - s.tick + len(s.builders)
}

// Equal reports full value equality, used by the planner to drop
// states already reached through a different action ordering.
func (s *BuildSimulator) Equal(o *BuildSimulator) bool {
	if s.tick != o.tick || s.resource != o.resource ||
		s.populationProvide != o.populationProvide ||
		len(s.builders) != len(o.builders) ||
		len(s.constructions) != len(o.constructions) ||
		len(s.completed) != len(o.completed) {
		return false
	}
	for i := range s.builders {
		if s.builders[i] != o.builders[i] {
			return false
		}
	}
	for i := range s.constructions {
		if s.constructions[i] != o.constructions[i] {
			return false
		}
	}
	for k, v := range s.completed {
		if o.completed[k] != v {
			return false
		}
	}
	return true
}
