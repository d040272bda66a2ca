package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// World state at window end (filled in by the caller)
	Stage      string  `csv:"stage"`
	Population int     `csv:"population"`
	Cap        int     `csv:"cap"`
	Minerals   float64 `csv:"minerals"`
	Exotic     float64 `csv:"exotic"`
	Strange    float64 `csv:"strange"`
	Continuum  float64 `csv:"continuum"`
	Heat       float64 `csv:"heat"`

	// Events during the window
	Collections       int     `csv:"collections"`
	MineralsCollected float64 `csv:"minerals_collected"`
	ExoticCollected   float64 `csv:"exotic_collected"`
	StrangeCollected  float64 `csv:"strange_collected"`
	ExoticReacted     float64 `csv:"exotic_reacted"`
	ContinuumReacted  float64 `csv:"continuum_reacted"`
	SpawnAccepted     int     `csv:"spawn_accepted"`
	SpawnRejected     int     `csv:"spawn_rejected"`
	ObjectsSpawned    int     `csv:"objects_spawned"`
	Culled            int     `csv:"culled"`
	RocksDestroyed    int     `csv:"rocks_destroyed"`
	Fragments         int     `csv:"fragments"`
	Transmutations    int     `csv:"transmutations"`
	ShotsFired        int     `csv:"shots_fired"`
	StageAdvances     int     `csv:"stage_advances"`
	SoundsEmitted     int     `csv:"sounds_emitted"`
	ReagentEvents     int     `csv:"reagent_events"`

	// Heat distribution over the window
	HeatMean float64 `csv:"heat_mean"`
	HeatStd  float64 `csv:"heat_std"`
	HeatP90  float64 `csv:"heat_p90"`
}

// ComputeHeatStats summarizes per-tick heat fraction samples.
func ComputeHeatStats(samples []float64) (mean, std, p90 float64) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	mean, std = stat.MeanStdDev(samples, nil)
	if len(samples) == 1 {
		std = 0
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p90
}

// Log writes the window stats via slog.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"tick", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"stage", s.Stage,
		"population", s.Population,
		"collections", s.Collections,
		"spawn_rejected", s.SpawnRejected,
		"rocks_destroyed", s.RocksDestroyed,
		"heat_mean", s.HeatMean,
	)
}
