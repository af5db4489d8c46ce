package element

import "gonum.org/v1/gonum/mat"

// Type tags the stiffness formulation an element uses
type Type uint8

const (
	Spring Type = iota
	Bar
)

func (t Type) String() string {
	switch t {
	case Spring:
		return "spring"
	case Bar:
		return "bar"
	default:
		return "unknown"
	}
}

// Node is a labeled point in space. Nodes are owned by the model, elements
// only reference them.
type Node struct {
	ID int
	X  []float64 // Coordinates, length equals the spatial dimension
}

func NewNode(id int, x ...float64) *Node {
	return &Node{ID: id, X: x}
}

// Element is the contract a global assembler depends on.
type Element interface {
	ElementType() Type
	Label() string

	// Nodes returns connectivity in construction order. Row/column i of the
	// stiffness matrix belongs to node i.
	Nodes() [2]*Node

	// NDOF is the dimension of the local stiffness matrix
	NDOF() int

	// Stiffness recomputes the local stiffness matrix from the current
	// parameters and returns a new matrix on each call.
	Stiffness() *mat.SymDense
}

// base holds the fields shared by all two node elements
type base struct {
	etype Type
	label string
	nodes [2]*Node
}

func (b *base) ElementType() Type { return b.etype }
func (b *base) Label() string { return b.label }
func (b *base) Nodes() [2]*Node { return b.nodes }
func (b *base) NDOF() int { return 2 }
