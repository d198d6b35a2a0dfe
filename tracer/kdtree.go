package tracer

import (
	"math"
	"sort"

	"github.com/fogleman/pt/pt"
)

// leaves hold at most this many triangles
const leafSize = 4

// directions with a smaller component than this are parallel to that slab
const slabEpsilon = 1e-9

type kdNode struct {
	box pt.Box
	// child node indices, -1 for a leaf
	left, right int32
	// leaf triangle range [head, tail) into KDTree.triangles
	head, tail int32
}

func (n *kdNode) leaf() bool {
	return n.left < 0
}

// KDTree is a balanced median-split tree over a fixed set of triangles. The
// triangles and nodes live in two flat slices and the tree is never modified
// after construction, so any number of goroutines may query it.
type KDTree struct {
	triangles []Triangle
	nodes     []kdNode
}

// NewKDTree takes ownership of triangles and reorders them.
func NewKDTree(triangles []Triangle) *KDTree {
	t := &KDTree{
		triangles: triangles,
		nodes:     make([]kdNode, 0, 2*(len(triangles)/leafSize+1)),
	}
	t.build(0, len(triangles), 0)
	return t
}

func (t *KDTree) build(head, tail, level int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{left: -1, right: -1, head: int32(head), tail: int32(tail)})

	if tail-head <= leafSize {
		box := emptyBox()
		for i := head; i < tail; i++ {
			box = extendBox(box, t.triangles[i].box)
		}
		t.nodes[idx].box = box
		return idx
	}

	ax := level % 3
	span := t.triangles[head:tail]
	sort.Slice(span, func(i, j int) bool {
		return axis(span[i].barycenter, ax) < axis(span[j].barycenter, ax)
	})

	middle := (head + tail) / 2
	left := t.build(head, middle, level+1)
	right := t.build(middle, tail, level+1)

	n := &t.nodes[idx]
	n.left, n.right = left, right
	n.box = extendBox(t.nodes[left].box, t.nodes[right].box)
	return idx
}

func (t *KDTree) BoundingBox() pt.Box {
	if len(t.triangles) == 0 {
		return emptyBox()
	}
	return t.nodes[0].box
}

func (t *KDTree) Len() int {
	return len(t.triangles)
}

// Depth is the number of levels from the root to the deepest leaf.
func (t *KDTree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var depth func(i int32) int
	depth = func(i int32) int {
		n := &t.nodes[i]
		if n.leaf() {
			return 1
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(0)
}

// Intersect returns the closest triangle hit.
func (t *KDTree) Intersect(r Ray) Hit {
	if len(t.triangles) == 0 {
		return NoHit
	}
	return t.intersect(r, 0, NoHit)
}

func (t *KDTree) intersect(r Ray, i int32, best Hit) Hit {
	n := &t.nodes[i]
	if !hitBox(n.box, r) {
		return best
	}
	if n.leaf() {
		for j := n.head; j < n.tail; j++ {
			best = closer(best, t.triangles[j].Intersect(r))
		}
		return best
	}
	best = t.intersect(r, n.left, best)
	return t.intersect(r, n.right, best)
}

// hitBox is the slab test. Axes the ray runs parallel to only reject when the
// origin lies outside that slab.
func hitBox(b pt.Box, r Ray) bool {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		d := axis(r.Direction, i)
		lo := axis(b.Min, i) - axis(r.Origin, i)
		hi := axis(b.Max, i) - axis(r.Origin, i)
		if math.Abs(d) > slabEpsilon {
			t1, t2 := lo/d, hi/d
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math.Max(tmin, t1)
			tmax = math.Min(tmax, t2)
		} else if lo > 0 || hi < 0 {
			return false
		}
	}
	return tmin <= tmax+slabEpsilon && tmax > 0
}
