package layout

import (
	"slices"

	"github.com/matzehuels/sankey/pkg/flow"
)

// Partition groups nodes into level buckets. Buckets cover every level
// from MinLevel to MaxLevel; levels without nodes are empty buckets.
type Partition struct {
	MinLevel int
	MaxLevel int
	buckets  [][]*flow.Node
}

// PartitionLevels buckets nodes by level. Within a bucket the nodes appear
// in reverse insertion order, so the last node added to a level is drawn
// first (at the bottom of its column). An empty input yields an empty
// partition.
func PartitionLevels(nodes []*flow.Node) Partition {
	if len(nodes) == 0 {
		return Partition{}
	}

	minLevel, maxLevel := nodes[0].Level, nodes[0].Level
	for _, n := range nodes[1:] {
		minLevel = min(minLevel, n.Level)
		maxLevel = max(maxLevel, n.Level)
	}

	p := Partition{
		MinLevel: minLevel,
		MaxLevel: maxLevel,
		buckets:  make([][]*flow.Node, maxLevel-minLevel+1),
	}
	for _, n := range slices.Backward(nodes) {
		i := n.Level - minLevel
		p.buckets[i] = append(p.buckets[i], n)
	}
	return p
}

// Empty reports whether the partition holds no levels.
func (p Partition) Empty() bool { return len(p.buckets) == 0 }

// Levels returns the number of buckets, including empty gap levels.
func (p Partition) Levels() int { return len(p.buckets) }

// Bucket returns the ordered nodes of a level, or nil if the level is out
// of range or empty.
func (p Partition) Bucket(level int) []*flow.Node {
	i := level - p.MinLevel
	if i < 0 || i >= len(p.buckets) {
		return nil
	}
	return p.buckets[i]
}

// MaxItems returns the size of the fullest bucket.
func (p Partition) MaxItems() int {
	n := 0
	for _, b := range p.buckets {
		n = max(n, len(b))
	}
	return n
}

// positions maps each node of a level to its index in the bucket.
func (p Partition) positions(level int) map[flow.NodeID]int {
	bucket := p.Bucket(level)
	m := make(map[flow.NodeID]int, len(bucket))
	for i, n := range bucket {
		m[n.ID] = i
	}
	return m
}
