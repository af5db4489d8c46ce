package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// twoNodeStiffness returns k * [[1,-1],[-1,1]]
func twoNodeStiffness(k float64) *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		k, -k,
		-k, k,
	})
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s = %v is not finite: %w", name, v, ErrInvalidParameter)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%s = %v must be > 0: %w", name, v, ErrInvalidParameter)
	}
	return nil
}

func checkConnectivity(et Type, nodes []*Node) (conn [2]*Node, err error) {
	if len(nodes) != 2 {
		err = fmt.Errorf("%s element needs 2 nodes, got %d: %w",
			et, len(nodes), ErrInvalidConnectivity)
		return
	}
	for i, n := range nodes {
		if n == nil {
			err = fmt.Errorf("%s element node %d is nil: %w", et, i, ErrInvalidConnectivity)
			return
		}
		conn[i] = n
	}
	return
}

// IsSymmetric reports whether m is square and m(i,j) == m(j,i) within tol
func IsSymmetric(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

// RowSums returns the sum of each row of m. For a stiffness matrix that
// admits rigid body translation every entry is zero.
func RowSums(m mat.Matrix) []float64 {
	r, _ := m.Dims()
	sums := make([]float64, r)
	for i := 0; i < r; i++ {
		sums[i] = floats.Sum(mat.Row(nil, i, m))
	}
	return sums
}
