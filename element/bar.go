package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var _ Element = (*BarElement)(nil)

// BarElement is a two node axial element
type BarElement struct {
	base
	e float64 // Young's modulus
	a float64 // Cross-sectional area
	l float64 // Length
}

// NewBar builds an axial bar. L must be strictly positive and E*A/L must be
// representable as a finite float64.
func NewBar(nodes []*Node, e, a, l float64, label string) (*BarElement, error) {
	conn, err := checkConnectivity(Bar, nodes)
	if err != nil {
		return nil, err
	}
	if err = checkFinite("E", e); err != nil {
		return nil, err
	}
	if err = checkFinite("A", a); err != nil {
		return nil, err
	}
	if err = checkPositive("L", l); err != nil {
		return nil, err
	}
	if k := e * a / l; math.IsInf(k, 0) || math.IsNaN(k) {
		return nil, fmt.Errorf("axial rigidity E*A/L = %v overflows: %w", k, ErrInvalidParameter)
	}
	return &BarElement{
		base: base{etype: Bar, label: label, nodes: conn},
		e:    e,
		a:    a,
		l:    l,
	}, nil
}

// NewBarFromNodes builds a bar whose length is the distance between its nodes
func NewBarFromNodes(nodes []*Node, e, a float64, label string) (*BarElement, error) {
	conn, err := checkConnectivity(Bar, nodes)
	if err != nil {
		return nil, err
	}
	x0, x1 := conn[0].X, conn[1].X
	if len(x0) != len(x1) {
		return nil, fmt.Errorf("node %d has %d coordinates, node %d has %d: %w",
			conn[0].ID, len(x0), conn[1].ID, len(x1), ErrInvalidConnectivity)
	}
	var sum float64
	for i := range x0 {
		d := x1[i] - x0[i]
		sum += d * d
	}
	l := math.Sqrt(sum)
	if l == 0 {
		return nil, fmt.Errorf("nodes %d and %d coincide, bar length is zero: %w",
			conn[0].ID, conn[1].ID, ErrInvalidParameter)
	}
	return NewBar(nodes, e, a, l, label)
}

func (b *BarElement) E() float64 { return b.e }
func (b *BarElement) A() float64 { return b.a }
func (b *BarElement) L() float64 { return b.l }

// AxialRigidity returns E*A/L
func (b *BarElement) AxialRigidity() float64 { return b.e * b.a / b.l }

// Stiffness returns
//
//	 E*A  [ 1  -1 ]
//	 ---  [-1   1 ]
//	  L
func (b *BarElement) Stiffness() *mat.SymDense {
	return twoNodeStiffness(b.AxialRigidity())
}
