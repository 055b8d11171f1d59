package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks uint64
	dt                  float64

	// Current window tracking
	windowStartTick uint64

	// Event counters for current window
	deaths     int
	resets     int
	aliveTicks int
	deadTicks  int
	survivals  []float64 // seconds survived, per life ended in this window
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := uint64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventDeath:
		c.deaths++
	case EventReset:
		c.resets++
	}
}

// RecordLife adds a finished life to the survival distribution.
func (c *Collector) RecordLife(rec LifeRecord) {
	c.survivals = append(c.survivals, rec.SurvivalSec)
}

// RecordFrame counts one frame as alive or dead.
func (c *Collector) RecordFrame(alive bool) {
	if alive {
		c.aliveTicks++
	} else {
		c.deadTicks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick uint64, life int) WindowStats {
	var aliveFrac float64
	if total := c.aliveTicks + c.deadTicks; total > 0 {
		aliveFrac = float64(c.aliveTicks) / float64(total)
	}

	surv := ComputeSurvivalStats(c.survivals)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Life:            life,
		Deaths:          c.deaths,
		Resets:          c.resets,
		AliveFraction:   aliveFrac,
		LivesEnded:      surv.Count,
		SurvivalMean:    surv.Mean,
		SurvivalStd:     surv.Std,
		SurvivalP50:     surv.P50,
		SurvivalMax:     surv.Max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.deaths = 0
	c.resets = 0
	c.aliveTicks = 0
	c.deadTicks = 0
	c.survivals = c.survivals[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}
