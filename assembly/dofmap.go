package assembly

import (
	"fmt"

	"github.com/notargets/FEMElements/element"
)

// DOFMap assigns one global degree of freedom to each node, keyed by node
// ID, in the order nodes are first seen while walking the elements.
type DOFMap struct {
	index map[int]int
	ids   []int // DOF -> node ID
}

func NewDOFMap(elements []element.Element) (*DOFMap, error) {
	d := &DOFMap{index: make(map[int]int)}
	for k, el := range elements {
		if el == nil {
			return nil, fmt.Errorf("element %d is nil", k)
		}
		for _, n := range el.Nodes() {
			if n == nil {
				return nil, fmt.Errorf("element %d (%s %q) references a nil node",
					k, el.ElementType(), el.Label())
			}
			if _, ok := d.index[n.ID]; !ok {
				d.index[n.ID] = len(d.ids)
				d.ids = append(d.ids, n.ID)
			}
		}
	}
	return d, nil
}

// Index returns the global DOF of node n
func (d *DOFMap) Index(n *element.Node) (int, bool) {
	if n == nil {
		return -1, false
	}
	i, ok := d.index[n.ID]
	return i, ok
}

func (d *DOFMap) Len() int { return len(d.ids) }

// NodeID returns the ID of the node owning global DOF i
func (d *DOFMap) NodeID(i int) int { return d.ids[i] }
