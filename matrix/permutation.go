package matrix

// Permutation is a bijection of [0, n) represented as a (Perm, InvPerm)
// pair: InvPerm[Perm[i]] == i for all i. Perm[new] = old — row new of a
// reordered matrix comes from row old of the original.
type Permutation struct {
	Perm    []int
	InvPerm []int
}

// NewIdentity returns the identity permutation of order n.
func NewIdentity(n int) *Permutation {
	p := &Permutation{Perm: make([]int, n), InvPerm: make([]int, n)}
	for i := 0; i < n; i++ {
		p.Perm[i] = i
		p.InvPerm[i] = i
	}
	return p
}

// NewFromPerm builds a Permutation from a caller-supplied Perm slice,
// deriving InvPerm. The slice is copied, not aliased.
func NewFromPerm(perm []int) (*Permutation, error) {
	n := len(perm)
	p := &Permutation{Perm: append([]int(nil), perm...), InvPerm: make([]int, n)}
	seen := make([]bool, n)
	for i, old := range perm {
		if old < 0 || old >= n || seen[old] {
			return nil, Wrapf(ErrInvalidInput, "matrix: permutation entry %d=%d out of range or duplicate", i, old)
		}
		seen[old] = true
		p.InvPerm[old] = i
	}
	return p, nil
}

// Validate checks that Perm/InvPerm form a bijection of [0, n): every value
// in [0, n) appears exactly once in Perm, and InvPerm is its true inverse.
func (p *Permutation) Validate() error {
	n := len(p.Perm)
	if len(p.InvPerm) != n {
		return Wrapf(ErrInvalidInput, "matrix: permutation length mismatch")
	}
	seen := make([]bool, n)
	for i, old := range p.Perm {
		if old < 0 || old >= n || seen[old] {
			return Wrapf(ErrInvalidInput, "matrix: permutation not a bijection at index %d", i)
		}
		seen[old] = true
		if p.InvPerm[old] != i {
			return Wrapf(ErrInvalidInput, "matrix: inv_perm[perm[%d]] != %d", i, i)
		}
	}
	return nil
}

// Inverse returns the inverse permutation (swap Perm and InvPerm).
func (p *Permutation) Inverse() *Permutation {
	return &Permutation{Perm: append([]int(nil), p.InvPerm...), InvPerm: append([]int(nil), p.Perm...)}
}
