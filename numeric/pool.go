package numeric

import "sync"

const pooledFloatSize = 200

// floatPool reuses the []float64 scratch buffers the Bunch-Kaufman pivot
// steps need for their multiplier columns, scoped to the scratch vectors a
// factorization call allocates once per pivot rather than once per matrix
// operation.
var floatPool = sync.Pool{
	New: func() interface{} {
		return make([]float64, pooledFloatSize)
	},
}

// getFloats returns a zeroed []float64 of length l, pulled from the pool
// when possible.
func getFloats(l int) []float64 {
	w := floatPool.Get().([]float64)
	if cap(w) < l {
		return make([]float64, l)
	}
	w = w[:l]
	for i := range w {
		w[i] = 0
	}
	return w
}

// putFloats returns w to the pool. Must not be called while any reference
// to w's backing array is still live.
func putFloats(w []float64) {
	if cap(w) >= pooledFloatSize {
		floatPool.Put(w) //nolint:staticcheck // reusing caller's backing array is the point
	}
}
