package matrix

// Type tags the numerical variant a Factors/Solver instance was built for.
// Values match the external ABI's matrix-type integers so a caller mapping
// to the historical integer contract needs no translation table.
type Type int

const (
	NonSymmetric Type = 11
	SymPosDef    Type = 1
	SymIndef     Type = -2
)

func (t Type) String() string {
	switch t {
	case NonSymmetric:
		return "NonSymmetric"
	case SymPosDef:
		return "SymPosDef"
	case SymIndef:
		return "SymIndef"
	default:
		return "Unknown"
	}
}

// Factors owns the factored form produced by symbolic factorization and
// filled in by numerical factorization. L is always present (unit diagonal
// for LU/LDLT, sqrt-pivot diagonal for Cholesky); U is only populated for
// NonSymmetric. Lt is a cached transpose of L, built lazily by the solve
// package for the symmetric backward-substitution pipelines.
type Factors struct {
	MatrixType Type

	L  *CSR
	Lt *CSR // cached transpose of L, symmetric pipelines only
	U  *CSR // NonSymmetric only

	// DValues stores D⁻¹ for LDLT: for a 1×1 pivot at k, DValues[k] is the
	// scalar inverse; for a 2×2 pivot at {k, k+1}, DValues[k]/DValues[k+1]
	// store the diagonal of the block Dinv and DOffDiag[k] stores its
	// shared off-diagonal entry (Dinv is symmetric 2x2).
	DValues  []float64
	DOffDiag []float64

	// PivotType[i] is 1 for a 1×1 pivot, 2 for both halves of a 2×2 pivot.
	// Invariant: a 2 at i implies PivotType[i+1] == 2.
	PivotType []int

	// Perm is the row permutation applied/refined during numerical
	// factorization; it starts as the identity when symbolic factorization
	// commits the pattern and may be updated by row swaps in C5.
	Perm []int
}

// NewFactors allocates a Factors of order n for the given matrix type, with
// Perm initialized to the identity. L/U patterns are attached separately
// once symbolic factorization has sized them.
func NewFactors(n int, mtype Type) *Factors {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	f := &Factors{MatrixType: mtype, Perm: perm}
	if mtype != NonSymmetric {
		f.DValues = make([]float64, n)
		f.DOffDiag = make([]float64, n)
		f.PivotType = make([]int, n)
		for i := range f.PivotType {
			f.PivotType[i] = 1
		}
	}
	return f
}

// ValidatePivotType checks invariant 3 of §8: no isolated 2.
func (f *Factors) ValidatePivotType() error {
	for i, pt := range f.PivotType {
		if pt == 2 {
			if i+1 >= len(f.PivotType) || f.PivotType[i+1] != 2 {
				return Wrapf(ErrInvalidInput, "matrix: isolated 2x2 pivot marker at %d", i)
			}
		}
	}
	return nil
}
