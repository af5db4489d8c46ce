package element

import "gonum.org/v1/gonum/mat"

var _ Element = (*SpringElement)(nil)

// SpringElement is a two node element with a single stiffness coefficient
type SpringElement struct {
	base
	ke float64 // Spring constant
}

// NewSpring builds a spring between two nodes. The sign of ke is not
// checked, only that it is finite.
func NewSpring(nodes []*Node, ke float64, label string) (*SpringElement, error) {
	conn, err := checkConnectivity(Spring, nodes)
	if err != nil {
		return nil, err
	}
	if err = checkFinite("ke", ke); err != nil {
		return nil, err
	}
	return &SpringElement{
		base: base{etype: Spring, label: label, nodes: conn},
		ke:   ke,
	}, nil
}

func (s *SpringElement) Ke() float64 { return s.ke }

// Stiffness returns
//
//	[ ke  -ke ]
//	[-ke   ke ]
func (s *SpringElement) Stiffness() *mat.SymDense {
	return twoNodeStiffness(s.ke)
}
