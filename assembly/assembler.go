package assembly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/notargets/FEMElements/element"
	"github.com/notargets/FEMElements/partitions"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

var ErrNoElements = errors.New("no elements to assemble")

type Config struct {
	Workers int            // Concurrent partitions, NumCPU when <= 0
	Logger  *logrus.Logger // Optional, output is discarded when nil
}

// Assembler scatter-adds local element stiffness matrices into a global
// stiffness matrix. It never applies boundary conditions or solves.
type Assembler struct {
	workers int
	log     *logrus.Logger
}

func NewAssembler(cfg Config) *Assembler {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Assembler{workers: workers, log: log}
}

// Assemble builds the global stiffness matrix. Elements are split into one
// contiguous partition per worker, each partition accumulates into its own
// partial matrix, and partials are summed serially once all workers finish.
func (a *Assembler) Assemble(ctx context.Context,
	elements []element.Element) (*mat.SymDense, *DOFMap, error) {
	if len(elements) == 0 {
		return nil, nil, ErrNoElements
	}
	dofs, err := NewDOFMap(elements)
	if err != nil {
		return nil, nil, err
	}
	pl, err := partitions.NewPartitionLayout(len(elements), a.workers)
	if err != nil {
		return nil, nil, err
	}
	n := dofs.Len()
	a.log.WithFields(logrus.Fields{
		"elements":   len(elements),
		"dofs":       n,
		"partitions": pl.NumPartitions,
	}).Debug("assembling global stiffness")

	partials := make([]*mat.SymDense, pl.NumPartitions)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for _, p := range pl.Partitions {
		p := p
		g.Go(func() error {
			Kp := mat.NewSymDense(n, nil)
			for _, k := range p.Elements {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := scatterAdd(Kp, elements[k], k, dofs); err != nil {
					return err
				}
			}
			partials[p.ID] = Kp
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}

	K := mat.NewSymDense(n, nil)
	for _, Kp := range partials {
		K.AddSym(K, Kp)
	}
	return K, dofs, nil
}

// AssembleSerial is the single threaded reference path
func AssembleSerial(elements []element.Element) (*mat.SymDense, *DOFMap, error) {
	if len(elements) == 0 {
		return nil, nil, ErrNoElements
	}
	dofs, err := NewDOFMap(elements)
	if err != nil {
		return nil, nil, err
	}
	K := mat.NewSymDense(dofs.Len(), nil)
	for k, el := range elements {
		if err = scatterAdd(K, el, k, dofs); err != nil {
			return nil, nil, err
		}
	}
	return K, dofs, nil
}

// scatterAdd accumulates the local stiffness of el into K. Only the upper
// triangle of K is addressed; a local entry whose global pair falls below
// the diagonal is already covered by its transpose.
func scatterAdd(K *mat.SymDense, el element.Element, k int, dofs *DOFMap) error {
	nodes := el.Nodes()
	ke := el.Stiffness()
	if r := ke.SymmetricDim(); r != el.NDOF() || r != len(nodes) {
		return fmt.Errorf("element %d (%s %q): stiffness is %dx%d, expected %dx%d",
			k, el.ElementType(), el.Label(), r, r, len(nodes), len(nodes))
	}
	var gdof [2]int
	for i, nd := range nodes {
		I, ok := dofs.Index(nd)
		if !ok {
			return fmt.Errorf("element %d: node %d has no global DOF", k, nd.ID)
		}
		gdof[i] = I
	}
	for i, I := range gdof {
		for j, J := range gdof {
			if I <= J {
				K.SetSym(I, J, K.At(I, J)+ke.At(i, j))
			}
		}
	}
	return nil
}
