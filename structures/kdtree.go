// Kdtree is a simple 2-D tree over point locations. Each node carries the
// index of the item it was built from, so callers keep their own item slice
// and use the tree only for spatial lookups.
package structures

import "sort"

// A Point is a location in the plane.
type Point [2]float64

// sqDist returns the square distance between two points.
func (a Point) sqDist(b Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

// A KDNode is a node of a K-D tree. A *KDNode is the root of a tree and nil
// is an empty tree.
type KDNode struct {
	Point
	// Index identifies the item this point was built from.
	Index int

	split       int
	left, right *KDNode
}

// NewKDTree builds a balanced tree; points[i] gets Index i.
func NewKDTree(points []Point) *KDNode {
	nodes := make([]*KDNode, len(points))
	for i, p := range points {
		nodes[i] = &KDNode{Point: p, Index: i}
	}
	return buildTree(0, nodes)
}

func buildTree(depth int, nodes []*KDNode) *KDNode {
	if len(nodes) == 0 {
		return nil
	}
	split := depth % 2
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Point[split] < nodes[j].Point[split]
	})
	m := len(nodes) / 2
	// equal keys go right so that searches can rely on "less goes left"
	for m > 0 && nodes[m-1].Point[split] == nodes[m].Point[split] {
		m--
	}
	med := nodes[m]
	med.split = split
	med.left = buildTree(depth+1, nodes[:m])
	med.right = buildTree(depth+1, nodes[m+1:])
	return med
}

// InRange appends all nodes within dist of pt to nodes, which may be nil.
func (t *KDNode) InRange(pt Point, dist float64, nodes []*KDNode) []*KDNode {
	if dist < 0 {
		return nodes
	}
	return t.inRange(pt, dist, nodes)
}

func (t *KDNode) inRange(pt Point, r float64, nodes []*KDNode) []*KDNode {
	if t == nil {
		return nodes
	}
	diff := pt[t.split] - t.Point[t.split]
	thisSide, otherSide := t.right, t.left
	if diff < 0 {
		thisSide, otherSide = t.left, t.right
		diff = -diff
	}
	nodes = thisSide.inRange(pt, r, nodes)
	if diff <= r {
		if t.Point.sqDist(pt) <= r*r {
			nodes = append(nodes, t)
		}
		nodes = otherSide.inRange(pt, r, nodes)
	}
	return nodes
}

// Nearest returns the node closest to pt within maxDist, or nil. Ties are
// resolved towards the lower Index.
func (t *KDNode) Nearest(pt Point, maxDist float64) *KDNode {
	if maxDist < 0 {
		return nil
	}
	best := (*KDNode)(nil)
	bestSq := maxDist * maxDist
	t.nearest(pt, &best, &bestSq)
	return best
}

func (t *KDNode) nearest(pt Point, best **KDNode, bestSq *float64) {
	if t == nil {
		return
	}
	d := t.Point.sqDist(pt)
	if d < *bestSq || (d == *bestSq && (*best == nil || t.Index < (*best).Index)) {
		*best = t
		*bestSq = d
	}
	diff := pt[t.split] - t.Point[t.split]
	thisSide, otherSide := t.right, t.left
	if diff < 0 {
		thisSide, otherSide = t.left, t.right
	}
	thisSide.nearest(pt, best, bestSq)
	if diff*diff <= *bestSq {
		otherSide.nearest(pt, best, bestSq)
	}
}

// Height returns the height of the K-D tree.
func (t *KDNode) Height() int {
	if t == nil {
		return 0
	}
	ht := t.left.Height()
	if rht := t.right.Height(); rht > ht {
		ht = rht
	}
	return ht + 1
}
