package matrix

import "time"

// Counters accumulates the wall-clock and size metrics a Solver exposes.
// Populating these is the solver's job; no component in this module logs
// them — instrumentation is an external collaborator's concern.
type Counters struct {
	AnalysisTime      time.Duration
	FactorizationTime time.Duration
	SolveTime         time.Duration
	PeakMemoryBytes   uint64
	FillInNNZ         int
}

// EstimateFactorsBytes gives a coarse peak-memory estimate for a Factors
// buffer: two int slices and one float64 slice per nonzero entry, used to
// populate PeakMemoryBytes without requiring a runtime-memory collaborator.
func EstimateFactorsBytes(f *Factors) uint64 {
	const intSize, f64Size = 8, 8
	var total uint64
	if f.L != nil {
		total += uint64(len(f.L.ColIdx))*(intSize+f64Size) + uint64(len(f.L.RowPtr))*intSize
	}
	if f.U != nil {
		total += uint64(len(f.U.ColIdx))*(intSize+f64Size) + uint64(len(f.U.RowPtr))*intSize
	}
	total += uint64(len(f.DValues)) * f64Size
	return total
}
