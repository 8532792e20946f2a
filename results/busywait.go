package results

// BusyWaitRun is the single-run record printed by the busy-waiting
// probe: the sequential baseline against the busy-waiting-inside
// strategy. Fields the output did not mention stay zero.
type BusyWaitRun struct {
	SequentialTime float64 `json:"sequentialTime"`
	BusyInsideTime float64 `json:"busyInsideTime"`
	SequentialPi   float64 `json:"sequentialPi"`
	BusyInsidePi   float64 `json:"busyInsidePi"`
	SlowdownFactor float64 `json:"slowdownFactor"`
}

// Valid reports whether the run carries a usable sequential baseline.
func (b BusyWaitRun) Valid() bool { return b.SequentialTime > 0 }

// Slowdown returns the printed slowdown factor, falling back to the
// ratio of the two times when the program did not print one.
func (b BusyWaitRun) Slowdown() float64 {
	if b.SlowdownFactor > 0 {
		return b.SlowdownFactor
	}
	if b.SequentialTime > 0 && b.BusyInsideTime > b.SequentialTime {
		return b.BusyInsideTime / b.SequentialTime
	}
	return 0
}

// Table converts the run into a two-row table: sequential then busy-inside.
func (b BusyWaitRun) Table() *StrategyTable {
	return NewStrategyTable(
		Measure(Sequential, b.SequentialPi, b.SequentialTime, b.SequentialTime),
		Measure(BusyWaitInside, b.BusyInsidePi, b.BusyInsideTime, b.SequentialTime),
	)
}
