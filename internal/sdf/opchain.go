package sdf

import (
	"math"

	"pathtracer/internal/material"
	"pathtracer/internal/vecmath"
)

// Op is a CSG combinator applied between a chain node's own shape distance
// and the distance contributed by the rest of the chain (next).
type Op int

const (
	// Nop is invalid inside a chain; for a root leaf it means "use this
	// shape's distance only."
	Nop Op = iota
	Union
	Subtraction
	Intersection
	SmoothUnion
)

const smoothUnionK = 1.0

// NodeRef is a stable index into an Arena. References into the arena are
// append-only and never move, so a NodeRef stays valid for the arena's
// whole lifetime — the same "small integer handle, no pointer cycles"
// discipline used for mesh.PrimitiveHandle.
type NodeRef int

// NoNext marks the end of a chain: a Node whose Next is NoNext is the last
// link, and its Op is evaluated against nothing further (§4.4's left fold
// simply stops there).
const NoNext NodeRef = -1

// Node is one element of a CSG operator chain (a cons-list realized as
// arena indices instead of pointers). The effective distance at a root is
// the left fold of shape.Distance combined via Op with the rest of the
// chain.
type Node struct {
	Shape    Shape
	Op       Op
	Material material.Material
	Next     NodeRef
}

// Arena is an append-only store of chain nodes, addressed by NodeRef.
type Arena struct {
	nodes []Node
}

// Append adds a node to the arena and returns its stable reference. Callers
// that don't chain to a further node must set Next to NoNext explicitly.
func (a *Arena) Append(n Node) NodeRef {
	a.nodes = append(a.nodes, n)
	return NodeRef(len(a.nodes) - 1)
}

// Get dereferences a NodeRef.
func (a *Arena) Get(ref NodeRef) Node {
	return a.nodes[ref]
}

// Distance evaluates the left-fold CSG distance for the chain rooted at
// ref: start with shape.Distance(p), then repeatedly combine with the next
// node's shape distance using the current node's Op.
func (a *Arena) Distance(ref NodeRef, p vecmath.Vector3) float64 {
	node := a.Get(ref)
	d := node.Shape.Distance(p)
	cur := node
	for cur.Next != NoNext {
		next := a.Get(cur.Next)
		nd := next.Shape.Distance(p)
		d = combine(cur.Op, d, nd)
		cur = next
	}
	return d
}

// MaterialAt returns the material belonging to the root node of the chain
// (the chain's own surface is shaded with its root material regardless of
// which operand contributed the argmin distance, matching a simple
// single-material-per-chain model).
func (a *Arena) MaterialAt(ref NodeRef) material.Material {
	return a.Get(ref).Material
}

func combine(op Op, a, b float64) float64 {
	switch op {
	case Union:
		return math.Min(a, b)
	case Subtraction:
		return math.Max(a, -b)
	case Intersection:
		return math.Max(a, b)
	case SmoothUnion:
		k := smoothUnionK
		h := clamp(0.5+0.5*(b-a)/k, 0, 1)
		return lerp(b, a, h) - k*h*(1-h)
	default: // Nop: invalid mid-chain; treat as the first operand only.
		return a
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
