// Package telemetry provides run health tracking and CSV output.
package telemetry

import (
	"github.com/pthm-cable/warlord/components"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for the current window
	collections     int
	collected       [components.NumReagents]float64
	reacted         [components.NumReagents]float64
	spawnAccepted   int
	spawnRejected   int
	objectsSpawned  int
	culled          int
	rocksDestroyed  int
	fragments       int
	transmutations  int
	shotsFired      int
	stageAdvances   int
	soundsEmitted   int
	reagentEvents   int

	// Per-tick samples for distribution stats
	heatSamples []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordCollection records a pickup of the given reagent amount.
func (c *Collector) RecordCollection(r components.Reagent, amount float32) {
	c.collections++
	c.collected[r] += float64(amount)
}

// RecordReaction records a positive result-pool delta from the reaction
// engine.
func (c *Collector) RecordReaction(r components.Reagent, amount float32) {
	c.reacted[r] += float64(amount)
}

// RecordSpawnAccepted records an accepted cluster request of n objects.
func (c *Collector) RecordSpawnAccepted(n int) {
	c.spawnAccepted++
	c.objectsSpawned += n
}

// RecordSpawnRejected records a cluster request rejected by the cap.
func (c *Collector) RecordSpawnRejected() {
	c.spawnRejected++
}

// RecordCull records a culled entity.
func (c *Collector) RecordCull() {
	c.culled++
}

// RecordRockDestroyed records a rock kill and the fragments it spawned.
func (c *Collector) RecordRockDestroyed(fragments int) {
	c.rocksDestroyed++
	c.fragments += fragments
}

// RecordTransmutation records a shield transmutation.
func (c *Collector) RecordTransmutation() {
	c.transmutations++
}

// RecordShot records a main gun shot.
func (c *Collector) RecordShot() {
	c.shotsFired++
}

// RecordStageAdvance records a progression transition.
func (c *Collector) RecordStageAdvance() {
	c.stageAdvances++
}

// RecordSound records an emitted sound event.
func (c *Collector) RecordSound() {
	c.soundsEmitted++
}

// RecordReagentEvent records an emitted inventory delta event.
func (c *Collector) RecordReagentEvent() {
	c.reagentEvents++
}

// SampleHeat records the heat fraction for distribution stats.
func (c *Collector) SampleHeat(fraction float32) {
	c.heatSamples = append(c.heatSamples, float64(fraction))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces stats for the window ending at currentTick and resets
// the counters. World-level fields (population, stage, pool levels) are
// filled in by the caller.
func (c *Collector) Flush(currentTick int32) WindowStats {
	heatMean, heatStd, heatP90 := ComputeHeatStats(c.heatSamples)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Collections:       c.collections,
		MineralsCollected: c.collected[components.Minerals],
		ExoticCollected:   c.collected[components.Exotic],
		StrangeCollected:  c.collected[components.Strange],
		ExoticReacted:     c.reacted[components.Exotic],
		ContinuumReacted:  c.reacted[components.Continuum],

		SpawnAccepted:  c.spawnAccepted,
		SpawnRejected:  c.spawnRejected,
		ObjectsSpawned: c.objectsSpawned,
		Culled:         c.culled,
		RocksDestroyed: c.rocksDestroyed,
		Fragments:      c.fragments,
		Transmutations: c.transmutations,
		ShotsFired:     c.shotsFired,
		StageAdvances:  c.stageAdvances,
		SoundsEmitted:  c.soundsEmitted,
		ReagentEvents:  c.reagentEvents,

		HeatMean: heatMean,
		HeatStd:  heatStd,
		HeatP90:  heatP90,
	}

	c.windowStartTick = currentTick
	c.collections = 0
	c.collected = [components.NumReagents]float64{}
	c.reacted = [components.NumReagents]float64{}
	c.spawnAccepted = 0
	c.spawnRejected = 0
	c.objectsSpawned = 0
	c.culled = 0
	c.rocksDestroyed = 0
	c.fragments = 0
	c.transmutations = 0
	c.shotsFired = 0
	c.stageAdvances = 0
	c.soundsEmitted = 0
	c.reagentEvents = 0
	c.heatSamples = c.heatSamples[:0]

	return stats
}
