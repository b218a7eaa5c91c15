package transport

import (
	"math"
	"testing"
)

func TestBlockRangeCoversEveryRowExactlyOnce(t *testing.T) {
	t.Parallel()
	n, size := 17, 4
	seen := make([]int, n)
	for r := 0; r < size; r++ {
		lo, hi := BlockRange(n, size, r)
		for i := lo; i < hi; i++ {
			seen[i]++
		}
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("row %d covered %d times, want 1", i, c)
		}
	}
}

func TestCountsSumsToN(t *testing.T) {
	t.Parallel()
	n, size := 23, 5
	counts := Counts(n, size)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if sum != n {
		t.Fatalf("counts sum to %d, want %d", sum, n)
	}
}

func TestInProcessBroadcastAgreesAcrossRanks(t *testing.T) {
	t.Parallel()
	size := 4
	hub := NewInProcessHub(size)
	want := []float64{1, 2, 3}

	got := make([][]float64, size)
	err := RunRanks(size, func(rank int) error {
		var data []float64
		if rank == 2 {
			data = want
		}
		result, err := hub.Rank(rank).Broadcast(data, 2)
		got[rank] = result
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	for r, row := range got {
		for i, v := range row {
			if v != want[i] {
				t.Fatalf("rank %d broadcast[%d] = %g, want %g", r, i, v, want[i])
			}
		}
	}
}

func TestInProcessScatterVThenAllGatherVRoundTrips(t *testing.T) {
	t.Parallel()
	size := 3
	n := 10
	counts := Counts(n, size)
	hub := NewInProcessHub(size)
	full := make([]float64, n)
	for i := range full {
		full[i] = float64(i)
	}

	gathered := make([][]float64, size)
	err := RunRanks(size, func(rank int) error {
		var data []float64
		if rank == 0 {
			data = full
		}
		chunk, err := hub.Rank(rank).ScatterV(data, counts, 0)
		if err != nil {
			return err
		}
		all, err := hub.Rank(rank).AllGatherV(chunk, counts)
		gathered[rank] = all
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	for r, row := range gathered {
		for i, v := range row {
			if math.Abs(v-full[i]) > 1e-12 {
				t.Fatalf("rank %d all-gathered[%d] = %g, want %g", r, i, v, full[i])
			}
		}
	}
}

func TestInProcessBroadcastIntPropagatesErrorCode(t *testing.T) {
	t.Parallel()
	size := 3
	hub := NewInProcessHub(size)
	got := make([]int, size)
	err := RunRanks(size, func(rank int) error {
		code := 0
		if rank == 1 {
			code = -3
		}
		v, err := hub.Rank(rank).BroadcastInt(code, 1)
		got[rank] = v
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	for r, v := range got {
		if v != -3 {
			t.Fatalf("rank %d got code %d, want -3", r, v)
		}
	}
}
