// Package bvh implements the top-down median-split bounding-volume
// hierarchy used to accelerate both per-model triangle intersection and the
// scene-level traversal over models.
package bvh

import (
	"math"
	"sort"

	"pathtracer/internal/bounds"
	"pathtracer/internal/mesh"
	"pathtracer/internal/vecmath"
)

// Node is a BVH node: exactly one of {two children, one primitive}.
// Bounds contains every descendant primitive's bounds; Area is the sum of
// leaf primitive areas in the subtree (used for area-weighted sampling of
// the emissive set).
type Node struct {
	Bounds    bounds.AABB
	Area      float64
	Left      *Node
	Right     *Node
	Leaf      mesh.Object
	SplitAxis int
	isLeaf    bool
}

// Tree is a built BVH over a fixed set of primitives.
type Tree struct {
	root *Node
}

// Sampler is the minimal uniform-sampling surface BVH sampling needs.
type Sampler interface {
	Vector2() (u1, u2 float64)
}

// Build constructs a BVH over prims using top-down median splitting: at each
// interior node, compute the AABB over all primitives in the subtree, pick
// the axis of maximum extent (ties resolve X over Y over Z), stable-sort by
// that axis's center, and split at n/2.
func Build(prims []mesh.Object) *Tree {
	if len(prims) == 0 {
		return &Tree{root: &Node{Bounds: bounds.Empty(), isLeaf: true}}
	}
	work := make([]mesh.Object, len(prims))
	copy(work, prims)
	return &Tree{root: build(work)}
}

func build(prims []mesh.Object) *Node {
	if len(prims) == 1 {
		return leafNode(prims[0])
	}
	if len(prims) == 2 {
		return &Node{
			Bounds: bounds.Union(prims[0].Bounds(), prims[1].Bounds()),
			Area:   prims[0].SurfaceArea() + prims[1].SurfaceArea(),
			Left:   leafNode(prims[0]),
			Right:  leafNode(prims[1]),
		}
	}

	subtreeBounds := bounds.Empty()
	for _, p := range prims {
		subtreeBounds = bounds.Union(subtreeBounds, p.Bounds())
	}
	axis := subtreeBounds.MaxExtentAxis()

	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Bounds().Center().Component(axis) < prims[j].Bounds().Center().Component(axis)
	})

	mid := len(prims) / 2
	left := build(prims[:mid])
	right := build(prims[mid:])

	return &Node{
		Bounds:    bounds.Union(left.Bounds, right.Bounds),
		Area:      left.Area + right.Area,
		Left:      left,
		Right:     right,
		SplitAxis: axis,
	}
}

func leafNode(p mesh.Object) *Node {
	return &Node{
		Bounds: p.Bounds(),
		Area:   p.SurfaceArea(),
		Leaf:   p,
		isLeaf: true,
	}
}

// TotalArea returns the root's aggregate surface area (sum over all leaf
// primitives). Callers that want area-weighted sampling restricted to the
// emissive subset build a separate Tree over just the emitters.
func (t *Tree) TotalArea() float64 {
	return t.root.Area
}

// Root exposes the root node for property tests that need to walk the tree
// directly (e.g. asserting Bounds contains every primitive).
func (t *Tree) Root() *Node {
	return t.root
}

// Intersect traverses the tree unordered (no front-to-back pruning) and
// returns the closest hit by distance, or a miss if the ray clears every
// node's AABB.
func (t *Tree) Intersect(r vecmath.Ray) mesh.Intersection {
	return intersectNode(t.root, r)
}

func intersectNode(n *Node, r vecmath.Ray) mesh.Intersection {
	if n == nil || !n.Bounds.Intersect(r) {
		return mesh.Intersection{Distance: math.Inf(1)}
	}
	if n.isLeaf {
		if n.Leaf == nil {
			return mesh.Intersection{Distance: math.Inf(1)}
		}
		return n.Leaf.Intersect(r)
	}

	left := intersectNode(n.Left, r)
	right := intersectNode(n.Right, r)
	if !left.Hit {
		return right
	}
	if !right.Hit {
		return left
	}
	if left.Distance <= right.Distance {
		return left
	}
	return right
}

// Sample draws a point uniformly weighted by surface area over the whole
// tree in O(log n): draw u ~ U(0,1), form p = sqrt(u)*root.Area, and recurse
// left/right comparing against each child's area. sqrt(u) stratifies
// selection over emissive area and is applied exactly once, here, never
// inside the recursion. At the leaf, the primitive's own sample pdf
// (1/leaf.Area) is discarded in favor of 1/root.Area, which is what an
// area-weighted selection over the whole tree actually integrates to —
// selecting leaf L with probability leaf.Area/root.Area and then drawing
// uniformly within L (density 1/leaf.Area) gives a combined density of
// exactly 1/root.Area over the full emissive surface.
func (t *Tree) Sample(rng Sampler) mesh.SamplePoint {
	u1, _ := rng.Vector2()
	p := math.Sqrt(math.Max(u1, 0)) * t.root.Area
	sp := sampleNode(t.root, p, rng)
	sp.Pdf = 1 / t.root.Area
	return sp
}

func sampleNode(n *Node, p float64, rng Sampler) mesh.SamplePoint {
	if n.isLeaf {
		return n.Leaf.Sample(rng)
	}
	if p < n.Left.Area {
		return sampleNode(n.Left, p, rng)
	}
	return sampleNode(n.Right, p-n.Left.Area, rng)
}
