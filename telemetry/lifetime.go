package telemetry

// Outcomes recorded for a finished life.
const (
	OutcomeCollision = "collision"
	OutcomeRunEnd    = "run_end"
)

// LifeRecord describes one player life from world construction to death.
type LifeRecord struct {
	RunID         string  `csv:"run_id"`
	Life          int     `csv:"life"`
	StartTick     uint64  `csv:"start_tick"`
	EndTick       uint64  `csv:"end_tick"`
	SurvivalTicks uint64  `csv:"survival_ticks"`
	SurvivalSec   float64 `csv:"survival_sec"`
	Outcome       string  `csv:"outcome"`
}

// LifeTracker follows the current life and produces a record when it ends.
type LifeTracker struct {
	runID     string
	dt        float64
	life      int
	startTick uint64
	active    bool
}

// NewLifeTracker creates a tracker. dt is seconds per tick.
func NewLifeTracker(runID string, dt float64) *LifeTracker {
	return &LifeTracker{runID: runID, dt: dt}
}

// Begin starts tracking a life at the given tick.
func (lt *LifeTracker) Begin(life int, tick uint64) {
	lt.life = life
	lt.startTick = tick
	lt.active = true
}

// End closes the current life. ok is false if no life was active.
func (lt *LifeTracker) End(tick uint64, outcome string) (LifeRecord, bool) {
	if !lt.active {
		return LifeRecord{}, false
	}
	lt.active = false

	survived := tick - lt.startTick
	return LifeRecord{
		RunID:         lt.runID,
		Life:          lt.life,
		StartTick:     lt.startTick,
		EndTick:       tick,
		SurvivalTicks: survived,
		SurvivalSec:   float64(survived) * lt.dt,
		Outcome:       outcome,
	}, true
}

// Active reports whether a life is being tracked.
func (lt *LifeTracker) Active() bool {
	return lt.active
}
