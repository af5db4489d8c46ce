package assembly

import (
	"bytes"
	"context"
	"testing"

	"github.com/notargets/FEMElements/element"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// chain builds n elements along a line, alternating springs and bars
func chain(t *testing.T, n int) []element.Element {
	t.Helper()
	nodes := make([]*element.Node, n+1)
	for i := range nodes {
		nodes[i] = element.NewNode(100+i, float64(i))
	}
	els := make([]element.Element, n)
	for i := 0; i < n; i++ {
		pair := []*element.Node{nodes[i], nodes[i+1]}
		if i%2 == 0 {
			s, err := element.NewSpring(pair, float64(10*(i+1)), "")
			require.NoError(t, err)
			els[i] = s
		} else {
			b, err := element.NewBarFromNodes(pair, 200e9, 1e-4, "")
			require.NoError(t, err)
			els[i] = b
		}
	}
	return els
}

func TestAssembleSpringsInSeries(t *testing.T) {
	n1, n2, n3 := element.NewNode(1, 0), element.NewNode(2, 1), element.NewNode(3, 2)
	s1, err := element.NewSpring([]*element.Node{n1, n2}, 100, "a")
	require.NoError(t, err)
	s2, err := element.NewSpring([]*element.Node{n2, n3}, 50, "b")
	require.NoError(t, err)

	expected := mat.NewDense(3, 3, []float64{
		100, -100, 0,
		-100, 150, -50,
		0, -50, 50,
	})
	els := []element.Element{s1, s2}

	K, dofs, err := AssembleSerial(els)
	require.NoError(t, err)
	assert.True(t, mat.Equal(expected, K), "K = %v", mat.Formatted(K))
	assert.Equal(t, 3, dofs.Len())
	for i, n := range []*element.Node{n1, n2, n3} {
		I, ok := dofs.Index(n)
		assert.True(t, ok)
		assert.Equal(t, i, I)
		assert.Equal(t, n.ID, dofs.NodeID(I))
	}

	Kc, _, err := NewAssembler(Config{Workers: 2}).Assemble(context.Background(), els)
	require.NoError(t, err)
	assert.True(t, mat.Equal(expected, Kc), "K = %v", mat.Formatted(Kc))
	assert.Equal(t, []float64{0, 0, 0}, element.RowSums(Kc))
}

func TestAssembleConcurrentMatchesSerial(t *testing.T) {
	els := chain(t, 37)
	Ks, _, err := AssembleSerial(els)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 8, 64} {
		Kc, dofs, err := NewAssembler(Config{Workers: workers}).Assemble(context.Background(), els)
		require.NoError(t, err)
		assert.Equal(t, 38, dofs.Len())
		assert.True(t, mat.EqualApprox(Ks, Kc, 1e-6), "workers=%d", workers)
		assert.True(t, element.IsSymmetric(Kc, 0))
	}
}

func TestAssembleSharedNodeIDs(t *testing.T) {
	// Distinct Node values carrying the same ID share a DOF
	a, b := element.NewNode(1, 0), element.NewNode(2, 1)
	bAgain := element.NewNode(2, 1)
	s1, _ := element.NewSpring([]*element.Node{a, b}, 1, "")
	s2, _ := element.NewSpring([]*element.Node{bAgain, a}, 2, "")

	K, dofs, err := AssembleSerial([]element.Element{s1, s2})
	require.NoError(t, err)
	assert.Equal(t, 2, dofs.Len())
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{3, -3, -3, 3}), K))
}

func TestAssembleDegenerateElement(t *testing.T) {
	// Both ends on the same DOF: the local matrix folds onto one diagonal entry
	n := element.NewNode(1, 0)
	s, err := element.NewSpring([]*element.Node{n, n}, 5, "")
	require.NoError(t, err)
	K, _, err := AssembleSerial([]element.Element{s})
	require.NoError(t, err)
	assert.Equal(t, 0.0, K.At(0, 0))
}

func TestAssembleErrors(t *testing.T) {
	ctx := context.Background()
	asm := NewAssembler(Config{Workers: 2})

	_, _, err := asm.Assemble(ctx, nil)
	assert.ErrorIs(t, err, ErrNoElements)
	_, _, err = AssembleSerial(nil)
	assert.ErrorIs(t, err, ErrNoElements)

	els := chain(t, 3)
	els[1] = nil
	_, _, err = asm.Assemble(ctx, els)
	assert.Error(t, err)

	els = append(chain(t, 3), badElement{nodes: [2]*element.Node{
		element.NewNode(1, 0), element.NewNode(2, 1)}})
	_, _, err = asm.Assemble(ctx, els)
	assert.ErrorContains(t, err, "expected 2x2")
	_, _, err = AssembleSerial(els)
	assert.Error(t, err)
}

func TestAssembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	K, _, err := NewAssembler(Config{Workers: 4}).Assemble(ctx, chain(t, 16))
	assert.Nil(t, K)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssembleLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	_, _, err := NewAssembler(Config{Workers: 2, Logger: log}).
		Assemble(context.Background(), chain(t, 4))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"dofs":5`)
	assert.Contains(t, buf.String(), `"partitions":2`)
}

// badElement reports a 3x3 stiffness for a two node element
type badElement struct {
	nodes [2]*element.Node
}

func (badElement) ElementType() element.Type { return element.Type(99) }
func (badElement) Label() string { return "bad" }
func (e badElement) Nodes() [2]*element.Node { return e.nodes }
func (badElement) NDOF() int { return 2 }
func (badElement) Stiffness() *mat.SymDense { return mat.NewSymDense(3, nil) }
