package matrix

import (
	"fmt"
	"math"
)

// CSR is a square sparse matrix of order N in compressed sparse row form.
// RowPtr has length N+1 and is monotone non-decreasing with RowPtr[0] == 0
// and RowPtr[N] == len(ColIdx) == len(Values). Within a row, column indices
// are ascending after any ApplyPermutation. The matrix owns its three
// slices; callers that hand a *CSR to a Solver transfer logical ownership
// for mutation for the lifetime of Symbolic through Cleanup.
type CSR struct {
	N           int
	RowPtr      []int
	ColIdx      []int
	Values      []float64
	IsSymmetric bool
	IsUpper     bool
}

// NewCSR allocates a CSR of order n with room for nnz entries. RowPtr is
// zeroed (not yet a valid prefix sum); callers fill ColIdx/Values and
// RowPtr themselves.
func NewCSR(n, nnz int) (*CSR, error) {
	if n <= 0 || nnz < 0 {
		return nil, Wrapf(ErrInvalidInput, "matrix: invalid shape n=%d nnz=%d", n, nnz)
	}
	return &CSR{
		N:      n,
		RowPtr: make([]int, n+1),
		ColIdx: make([]int, nnz),
		Values: make([]float64, nnz),
	}, nil
}

// Copy returns a newly allocated deep copy of a. It takes no destination
// matrix, so there is no shape check against an existing one.
func Copy(a *CSR) *CSR {
	b := &CSR{
		N:           a.N,
		RowPtr:      append([]int(nil), a.RowPtr...),
		ColIdx:      append([]int(nil), a.ColIdx...),
		Values:      append([]float64(nil), a.Values...),
		IsSymmetric: a.IsSymmetric,
		IsUpper:     a.IsUpper,
	}
	return b
}

// NNZ returns the number of stored entries.
func (a *CSR) NNZ() int { return a.RowPtr[a.N] }

// RowRange returns the half-open slice bounds [lo, hi) into ColIdx/Values
// for row i.
func (a *CSR) RowRange(i int) (lo, hi int) {
	return a.RowPtr[i], a.RowPtr[i+1]
}

// At returns A[i][j], 0 if absent. Rows are assumed sorted ascending by
// column, so this does a linear scan within the row (rows in a fill-in
// factor or a reordered matrix are typically short).
func (a *CSR) At(i, j int) float64 {
	lo, hi := a.RowRange(i)
	for k := lo; k < hi; k++ {
		if a.ColIdx[k] == j {
			return a.Values[k]
		}
		if a.ColIdx[k] > j {
			break
		}
	}
	return 0
}

// FindInRow returns the storage index of column j within row i, or -1 if
// not present. Row i must be sorted ascending.
func (a *CSR) FindInRow(i, j int) int {
	lo, hi := a.RowRange(i)
	for k := lo; k < hi; k++ {
		if a.ColIdx[k] == j {
			return k
		}
		if a.ColIdx[k] > j {
			return -1
		}
	}
	return -1
}

// Transpose computes B = Aᵀ using a counting sort: a first pass counts the
// per-column occupancy of A (the per-row occupancy of B), prefix-sums it
// into B.RowPtr, then a second pass scatters entries into place. The second
// pass walks A's rows in ascending order, so every row of B comes out sorted
// ascending by column.
func Transpose(a *CSR) *CSR {
	n := a.N
	b := &CSR{N: n, RowPtr: make([]int, n+1), ColIdx: make([]int, len(a.ColIdx)), Values: make([]float64, len(a.Values)), IsSymmetric: a.IsSymmetric, IsUpper: !a.IsUpper}

	counts := make([]int, n)
	for _, c := range a.ColIdx {
		counts[c]++
	}
	for i := 0; i < n; i++ {
		b.RowPtr[i+1] = b.RowPtr[i] + counts[i]
	}

	cursor := append([]int(nil), b.RowPtr[:n]...)
	for i := 0; i < n; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			c := a.ColIdx[k]
			pos := cursor[c]
			b.ColIdx[pos] = i
			b.Values[pos] = a.Values[k]
			cursor[c]++
		}
	}
	return b
}

// Multiply computes C = A*B with a two-pass dense-scratch-row accumulate:
// for each output row, a dense row of size n accumulates contributions,
// then nonzero columns (above a 1e-15 absolute threshold) are emitted in
// ascending order. This is a utility for tests; residual computation in
// refinement uses blas.Dusmv instead, which keeps every entry regardless
// of magnitude.
func Multiply(a, b *CSR) (*CSR, error) {
	if a.N != b.N {
		return nil, Wrapf(ErrInvalidInput, "matrix: multiply shape mismatch %dx%d vs %dx%d", a.N, a.N, b.N, b.N)
	}
	n := a.N
	scratch := make([]float64, n)
	touched := make([]int, 0, n)

	rowPtr := make([]int, n+1)
	var colIdx []int
	var values []float64

	for i := 0; i < n; i++ {
		for k := range touched {
			scratch[touched[k]] = 0
		}
		touched = touched[:0]

		alo, ahi := a.RowRange(i)
		for ak := alo; ak < ahi; ak++ {
			k := a.ColIdx[ak]
			aval := a.Values[ak]
			blo, bhi := b.RowRange(k)
			for bk := blo; bk < bhi; bk++ {
				col := b.ColIdx[bk]
				if scratch[col] == 0 {
					touched = append(touched, col)
				}
				scratch[col] += aval * b.Values[bk]
			}
		}

		start := len(colIdx)
		cols := append([]int(nil), touched...)
		sortInts(cols)
		for _, col := range cols {
			v := scratch[col]
			if math.Abs(v) > 1e-15 {
				colIdx = append(colIdx, col)
				values = append(values, v)
			}
		}
		rowPtr[i+1] = rowPtr[i] + (len(colIdx) - start)
	}

	return &CSR{N: n, RowPtr: rowPtr, ColIdx: colIdx, Values: values}, nil
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// VerifySymmetric reports whether A ≈ Aᵀ entrywise within tol (absolute).
func (a *CSR) VerifySymmetric(tol float64) bool {
	t := Transpose(a)
	for i := 0; i < a.N; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			j := a.ColIdx[k]
			if math.Abs(a.Values[k]-t.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// Info returns a one-line shape/nnz/density summary, useful in test
// failure messages.
func (a *CSR) Info() string {
	nnz := a.NNZ()
	density := float64(nnz) / (float64(a.N) * float64(a.N))
	return fmt.Sprintf("CSR(n=%d, nnz=%d, density=%.4g, symmetric=%v)", a.N, nnz, density, a.IsSymmetric)
}
