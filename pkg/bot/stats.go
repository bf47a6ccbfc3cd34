package bot

import (
	"time"

	"go.uber.org/zap"

	"gonum.org/v1/gonum/stat"
)

// Stats aggregates per-tick planner effort for logging and telemetry.
type Stats struct {
	log *zap.Logger

	tickDurations []float64
	planSpeed     *MovingAverage

	Ticks             int
	EntityTransitions int
	BattleTransitions int
	BuildTransitions  int
}

func NewStats(log *zap.Logger) *Stats {
	return &Stats{log: log, planSpeed: NewMovingAverage(64)}
}

// ObserveTick records one tick's wall time and transition counts.
func (s *Stats) ObserveTick(d time.Duration, entity, battle, build int) {
	s.Ticks++
	s.EntityTransitions += entity
	s.BattleTransitions += battle
	s.BuildTransitions += build
	ms := float64(d.Microseconds()) / 1000.0
	s.tickDurations = append(s.tickDurations, ms)
	total := entity + battle + build
	if ms > 0 {
		s.planSpeed.Add(float64(total) / ms)
	}
}

// PlanSpeed returns the recent transitions-per-millisecond average.
func (s *Stats) PlanSpeed() float64 {
	return s.planSpeed.Value()
}

// Report logs the run summary.
func (s *Stats) Report() {
	if len(s.tickDurations) == 0 {
		return
	}
	mean := stat.Mean(s.tickDurations, nil)
	sd := stat.StdDev(s.tickDurations, nil)
	s.log.Info("run summary",
		zap.Int("ticks", s.Ticks),
		zap.Float64("tick_ms_mean", mean),
		zap.Float64("tick_ms_stddev", sd),
		zap.Float64("plan_speed", s.PlanSpeed()),
		zap.Int("entity_transitions", s.EntityTransitions),
		zap.Int("battle_transitions", s.BattleTransitions),
		zap.Int("build_transitions", s.BuildTransitions),
	)
}
