package matrix

import "testing"

func TestIdentityPermutationValidates(t *testing.T) {
	t.Parallel()
	p := NewIdentity(6)
	if err := p.Validate(); err != nil {
		t.Fatalf("identity permutation should validate: %v", err)
	}
}

func TestPermutationInverse(t *testing.T) {
	t.Parallel()
	p, err := NewFromPerm([]int{2, 0, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	inv := p.Inverse()
	for i := range p.Perm {
		if inv.Perm[i] != p.InvPerm[i] {
			t.Fatalf("inverse mismatch at %d", i)
		}
	}
}

func TestPermutationRejectsDuplicate(t *testing.T) {
	t.Parallel()
	_, err := NewFromPerm([]int{0, 0, 1})
	if err == nil {
		t.Fatal("expected error for duplicate permutation entry")
	}
}
