package transport

// Local is the single-rank passthrough Transport: every collective is a
// no-op copy, used when the solver runs without distribution.
type Local struct{}

func (Local) Rank() int { return 0 }
func (Local) Size() int { return 1 }

func (Local) Broadcast(data []float64, root int) ([]float64, error) {
	return append([]float64(nil), data...), nil
}

func (Local) BroadcastInt(code int, root int) (int, error) {
	return code, nil
}

func (Local) ScatterV(data []float64, counts []int, root int) ([]float64, error) {
	return append([]float64(nil), data...), nil
}

func (Local) AllGatherV(chunk []float64, counts []int) ([]float64, error) {
	return append([]float64(nil), chunk...), nil
}
