package partitions

import (
	"fmt"
)

// Partition is a contiguous run of elements that one worker processes
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Element membership
	Elements    []int // Global element indices in this partition
	NumElements int
}

// PartitionLayout manages the decomposition of an element collection
type PartitionLayout struct {
	Partitions []Partition

	TotalElements int
	NumPartitions int

	// Element to partition mapping
	EToP []int // Length TotalElements: element k belongs to partition EToP[k]
}

// NewPartitionLayout splits numElements into numPartitions contiguous blocks
// whose sizes differ by at most one. numPartitions is clamped to numElements.
func NewPartitionLayout(numElements, numPartitions int) (*PartitionLayout, error) {
	if numElements < 0 {
		return nil, fmt.Errorf("invalid element count: %d", numElements)
	}
	if numPartitions <= 0 {
		return nil, fmt.Errorf("invalid partition count: %d", numPartitions)
	}
	if numPartitions > numElements {
		numPartitions = numElements
	}

	pl := &PartitionLayout{
		Partitions:    make([]Partition, numPartitions),
		TotalElements: numElements,
		NumPartitions: numPartitions,
		EToP:          make([]int, numElements),
	}
	if numPartitions == 0 {
		return pl, nil
	}

	base, extra := numElements/numPartitions, numElements%numPartitions
	k := 0
	for p := 0; p < numPartitions; p++ {
		n := base
		if p < extra {
			n++
		}
		elems := make([]int, n)
		for i := range elems {
			elems[i] = k
			pl.EToP[k] = p
			k++
		}
		pl.Partitions[p] = Partition{ID: p, Elements: elems, NumElements: n}
	}
	return pl, nil
}

// GetPartition returns the partition containing element k
func (pl *PartitionLayout) GetPartition(elementID int) int {
	if elementID < 0 || elementID >= len(pl.EToP) {
		return -1
	}
	return pl.EToP[elementID]
}

// ValidateLayout checks that every element is owned by exactly one partition
// and that EToP agrees with partition membership
func (pl *PartitionLayout) ValidateLayout() error {
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("have %d partitions, NumPartitions is %d",
			len(pl.Partitions), pl.NumPartitions)
	}
	if len(pl.EToP) != pl.TotalElements {
		return fmt.Errorf("EToP length %d does not match TotalElements=%d",
			len(pl.EToP), pl.TotalElements)
	}
	seen := make([]bool, pl.TotalElements)
	count := 0
	for _, p := range pl.Partitions {
		if p.NumElements != len(p.Elements) {
			return fmt.Errorf("partition %d: NumElements %d != len(Elements) %d",
				p.ID, p.NumElements, len(p.Elements))
		}
		for _, k := range p.Elements {
			if k < 0 || k >= pl.TotalElements {
				return fmt.Errorf("partition %d: element %d out of range", p.ID, k)
			}
			if seen[k] {
				return fmt.Errorf("partition %d: element %d already assigned", p.ID, k)
			}
			if pl.EToP[k] != p.ID {
				return fmt.Errorf("element %d: EToP says %d, found in partition %d",
					k, pl.EToP[k], p.ID)
			}
			seen[k] = true
			count++
		}
	}
	if count != pl.TotalElements {
		return fmt.Errorf("partitions cover %d of %d elements", count, pl.TotalElements)
	}
	return nil
}
