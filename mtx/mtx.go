// Package mtx implements the Matrix Market text I/O contract of §6.
package mtx

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/brnoble/dsolve/matrix"
)

// Read parses a Matrix Market coordinate file. Any header line beginning
// with '%' containing the token "symmetric" or "Hermitian" sets
// IsSymmetric; only square matrices (nrows == ncols) are accepted. Entries
// are 1-based; symmetric files store one triangle and are expanded into
// both here, so the effective storage count is 2*nnz - diag_count.
func Read(r io.Reader) (*matrix.CSR, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	symmetric := false
	var dims []int
	type triplet struct {
		row, col int
		val      float64
	}
	var triplets []triplet
	sawDims := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "%") {
			lower := strings.ToLower(line)
			if strings.Contains(lower, "symmetric") || strings.Contains(lower, "hermitian") {
				symmetric = true
			}
			continue
		}
		fields := strings.Fields(line)
		if !sawDims {
			if len(fields) < 3 {
				return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: malformed dimension line %q", line)
			}
			dims = make([]int, 3)
			for i := 0; i < 3; i++ {
				v, err := strconv.Atoi(fields[i])
				if err != nil {
					return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: malformed dimension field %q", fields[i])
				}
				dims[i] = v
			}
			if dims[0] != dims[1] {
				return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: non-square matrix %dx%d", dims[0], dims[1])
			}
			sawDims = true
			continue
		}
		if len(fields) < 3 {
			return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: malformed entry line %q", line)
		}
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: malformed row index %q", fields[0])
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: malformed col index %q", fields[1])
		}
		val, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: malformed value %q", fields[2])
		}
		triplets = append(triplets, triplet{row - 1, col - 1, val})
	}
	if err := scanner.Err(); err != nil {
		return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: read error: %v", err)
	}
	if !sawDims {
		return nil, matrix.Wrapf(matrix.ErrInvalidInput, "mtx: missing dimension line")
	}

	n := dims[0]
	rows := make([][]triplet, n)
	for _, t := range triplets {
		rows[t.row] = append(rows[t.row], t)
		if symmetric && t.row != t.col {
			rows[t.col] = append(rows[t.col], triplet{t.col, t.row, t.val})
		}
	}

	rowPtr := make([]int, n+1)
	var colIdx []int
	var values []float64
	for i := 0; i < n; i++ {
		sort.Slice(rows[i], func(a, b int) bool { return rows[i][a].col < rows[i][b].col })
		for _, t := range rows[i] {
			colIdx = append(colIdx, t.col)
			values = append(values, t.val)
		}
		rowPtr[i+1] = len(colIdx)
	}

	return &matrix.CSR{N: n, RowPtr: rowPtr, ColIdx: colIdx, Values: values, IsSymmetric: symmetric}, nil
}

// Write emits a to w in general coordinate form regardless of a's
// symmetry flag, per §6's write contract: header, "n n nnz", then one
// 1-based "row col value" line per stored entry with %.17e scientific
// formatting (17 digits after the decimal point).
func Write(w io.Writer, a *matrix.CSR) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "%%MatrixMarket matrix coordinate real general"); err != nil {
		return matrix.Wrapf(matrix.ErrInvalidInput, "mtx: write error: %v", err)
	}
	nnz := a.NNZ()
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", a.N, a.N, nnz); err != nil {
		return matrix.Wrapf(matrix.ErrInvalidInput, "mtx: write error: %v", err)
	}
	for i := 0; i < a.N; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			if _, err := fmt.Fprintf(bw, "%d %d %.17e\n", i+1, a.ColIdx[k]+1, a.Values[k]); err != nil {
				return matrix.Wrapf(matrix.ErrInvalidInput, "mtx: write error: %v", err)
			}
		}
	}
	return bw.Flush()
}
