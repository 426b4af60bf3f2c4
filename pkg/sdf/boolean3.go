package sdf

import (
	"math"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// --- sharp booleans ---

type unionNode struct {
	a, b        Node3
	faces       []topology.FaceDescriptor
	edges       []topology.EdgeDescriptor
}

// Union returns the union of s and o: min(a,b). Face/edge names from a and
// b are concatenated unchanged unless a name collides, in which case every
// name on the left is prefixed "a." and every name on the right "b."
func (s Shape) Union(o Shape) Shape {
	faces, edges := topology.MergeSides(s.Faces(), o.Faces(), s.Edges(), o.Edges())
	return wrap(&unionNode{a: s.node, b: o.node, faces: faces, edges: edges})
}

func (n *unionNode) Evaluate(p vec.Vec3) float64 { return math.Min(n.a.Evaluate(p), n.b.Evaluate(p)) }
func (n *unionNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *unionNode) Bounds() Box3                 { return wrapBounds(n.a).Union(wrapBounds(n.b)) }
func (n *unionNode) Name() string                 { return "union(" + n.a.Name() + ", " + n.b.Name() + ")" }
func (n *unionNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *unionNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *unionNode) Children() []Node3                { return []Node3{n.a, n.b} }
func (n *unionNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.a.Evaluate(p) <= n.b.Evaluate(p) {
		return delegateClassify(n.a, n.faces, p, "a", false)
	}
	return delegateClassify(n.b, n.faces, p, "b", false)
}

type subtractNode struct {
	a, b    Node3
	feature string
	faces   []topology.FaceDescriptor
	edges   []topology.EdgeDescriptor
}

// Subtract returns s with o removed: max(a, -b). If feature is given it
// names the cut; otherwise a name of the form "subtract_N" is generated
// from s's existing faces.
func (s Shape) Subtract(o Shape, feature ...string) Shape {
	name := featureNameOrNext(s.Faces(), "subtract", feature)
	faces, edges := topology.SubtractNaming(s.Faces(), o.Faces(), s.Edges(), o.Edges(), name)
	return wrap(&subtractNode{a: s.node, b: o.node, feature: name, faces: faces, edges: edges})
}

func (n *subtractNode) Evaluate(p vec.Vec3) float64 {
	return math.Max(n.a.Evaluate(p), -n.b.Evaluate(p))
}
func (n *subtractNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *subtractNode) Bounds() Box3                 { return wrapBounds(n.a) }
func (n *subtractNode) Name() string {
	return "subtract(" + n.a.Name() + ", " + n.b.Name() + ")"
}
func (n *subtractNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *subtractNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *subtractNode) Children() []Node3                { return []Node3{n.a, n.b} }
func (n *subtractNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.a.Evaluate(p) >= -n.b.Evaluate(p) {
		raw, ok := n.a.ClassifyPoint(p)
		return raw, ok
	}
	return delegateClassify(n.b, n.faces, p, n.feature, true)
}

type intersectNode struct {
	a, b  Node3
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// Intersect returns the intersection of s and o: max(a,b).
func (s Shape) Intersect(o Shape) Shape {
	faces, edges := topology.MergeSides(s.Faces(), o.Faces(), s.Edges(), o.Edges())
	return wrap(&intersectNode{a: s.node, b: o.node, faces: faces, edges: edges})
}

func (n *intersectNode) Evaluate(p vec.Vec3) float64 {
	return math.Max(n.a.Evaluate(p), n.b.Evaluate(p))
}
func (n *intersectNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *intersectNode) Bounds() Box3                 { return wrapBounds(n.a).Intersect(wrapBounds(n.b)) }
func (n *intersectNode) Name() string {
	return "intersect(" + n.a.Name() + ", " + n.b.Name() + ")"
}
func (n *intersectNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *intersectNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *intersectNode) Children() []Node3                { return []Node3{n.a, n.b} }
func (n *intersectNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.a.Evaluate(p) >= n.b.Evaluate(p) {
		return delegateClassify(n.a, n.faces, p, "a", false)
	}
	return delegateClassify(n.b, n.faces, p, "b", false)
}

// --- smooth (polynomial) booleans ---
//
// All three use Quilez's polynomial smooth-min, k controlling blend width.

func smoothMin(a, b, k float64) float64 {
	if k <= 0 {
		return math.Min(a, b)
	}
	h := vec.Clamp(0.5+0.5*(b-a)/k, 0, 1)
	return lerpScalar(b, a, h) - k*h*(1-h)
}

func lerpScalar(a, b, t float64) float64 { return a + (b-a)*t }

type smoothUnionNode struct {
	a, b  Node3
	k     float64
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// SmoothUnion blends s and o with polynomial smooth-min of width k. Face
// and edge topology still follows the sharp-union naming rule — the blend
// only affects the surface shape, not the face bookkeeping.
func (s Shape) SmoothUnion(o Shape, k float64) Shape {
	faces, edges := topology.MergeSides(s.Faces(), o.Faces(), s.Edges(), o.Edges())
	return wrap(&smoothUnionNode{a: s.node, b: o.node, k: k, faces: faces, edges: edges})
}

func (n *smoothUnionNode) Evaluate(p vec.Vec3) float64 {
	return smoothMin(n.a.Evaluate(p), n.b.Evaluate(p), n.k)
}
func (n *smoothUnionNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *smoothUnionNode) Bounds() Box3                 { return wrapBounds(n.a).Union(wrapBounds(n.b)).Expand(n.k) }
func (n *smoothUnionNode) Name() string {
	return "smoothUnion(" + n.a.Name() + ", " + n.b.Name() + ")"
}
func (n *smoothUnionNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *smoothUnionNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *smoothUnionNode) Children() []Node3                { return []Node3{n.a, n.b} }
func (n *smoothUnionNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.a.Evaluate(p) <= n.b.Evaluate(p) {
		return delegateClassify(n.a, n.faces, p, "a", false)
	}
	return delegateClassify(n.b, n.faces, p, "b", false)
}

type smoothSubtractNode struct {
	a, b    Node3
	k       float64
	feature string
	faces   []topology.FaceDescriptor
	edges   []topology.EdgeDescriptor
}

// SmoothSubtract removes o from s with a polynomial-blended fillet of
// width k at the intersection, instead of a sharp edge.
func (s Shape) SmoothSubtract(o Shape, k float64, feature ...string) Shape {
	name := featureNameOrNext(s.Faces(), "subtract", feature)
	faces, edges := topology.SubtractNaming(s.Faces(), o.Faces(), s.Edges(), o.Edges(), name)
	return wrap(&smoothSubtractNode{a: s.node, b: o.node, k: k, feature: name, faces: faces, edges: edges})
}

func (n *smoothSubtractNode) Evaluate(p vec.Vec3) float64 {
	return -smoothMin(-n.a.Evaluate(p), n.b.Evaluate(p), n.k)
}
func (n *smoothSubtractNode) Gradient(p vec.Vec3) vec.Vec3 {
	return gradientByCentralDiff(n.Evaluate, p)
}
func (n *smoothSubtractNode) Bounds() Box3 { return wrapBounds(n.a).Expand(n.k) }
func (n *smoothSubtractNode) Name() string {
	return "smoothSubtract(" + n.a.Name() + ", " + n.b.Name() + ")"
}
func (n *smoothSubtractNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *smoothSubtractNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *smoothSubtractNode) Children() []Node3                { return []Node3{n.a, n.b} }
func (n *smoothSubtractNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.a.Evaluate(p) >= -n.b.Evaluate(p) {
		raw, ok := n.a.ClassifyPoint(p)
		return raw, ok
	}
	return delegateClassify(n.b, n.faces, p, n.feature, true)
}

type smoothIntersectNode struct {
	a, b  Node3
	k     float64
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// SmoothIntersect blends the intersection of s and o with a polynomial
// smooth-max of width k.
func (s Shape) SmoothIntersect(o Shape, k float64) Shape {
	faces, edges := topology.MergeSides(s.Faces(), o.Faces(), s.Edges(), o.Edges())
	return wrap(&smoothIntersectNode{a: s.node, b: o.node, k: k, faces: faces, edges: edges})
}

func (n *smoothIntersectNode) Evaluate(p vec.Vec3) float64 {
	return -smoothMin(-n.a.Evaluate(p), -n.b.Evaluate(p), n.k)
}
func (n *smoothIntersectNode) Gradient(p vec.Vec3) vec.Vec3 {
	return gradientByCentralDiff(n.Evaluate, p)
}
func (n *smoothIntersectNode) Bounds() Box3 {
	return wrapBounds(n.a).Intersect(wrapBounds(n.b)).Expand(n.k)
}
func (n *smoothIntersectNode) Name() string {
	return "smoothIntersect(" + n.a.Name() + ", " + n.b.Name() + ")"
}
func (n *smoothIntersectNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *smoothIntersectNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *smoothIntersectNode) Children() []Node3                { return []Node3{n.a, n.b} }
func (n *smoothIntersectNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.a.Evaluate(p) >= n.b.Evaluate(p) {
		return delegateClassify(n.a, n.faces, p, "a", false)
	}
	return delegateClassify(n.b, n.faces, p, "b", false)
}

// --- shared helpers ---

func wrapBounds(n Node3) Box3 { return n.Bounds() }

// featureNameOrNext returns explicit[0] if given, else the next
// auto-generated "<prefix>_N" name scanned from existingFaces.
func featureNameOrNext(existingFaces []topology.FaceDescriptor, prefix string, explicit []string) string {
	if len(explicit) > 0 && explicit[0] != "" {
		return explicit[0]
	}
	return topology.NextFeatureName(existingFaces, prefix)
}

// delegateClassify asks child for the face nearest p, then renames the
// result to match how that child's faces were named in the parent boolean
// node's own face list. side is "a" or "b" for union/intersect (MergeSides
// only prefixes with it when a name collision occurred — detected here by
// checking whether the unprefixed name still exists in parentFaces); for
// subtract/smoothSubtract side is instead the feature name and the
// cutter's face is unconditionally renamed under it.
func delegateClassify(child Node3, parentFaces []topology.FaceDescriptor, p vec.Vec3, side string, isFeaturePrefix bool) (string, bool) {
	raw, ok := child.ClassifyPoint(p)
	if !ok {
		return "", false
	}
	if isFeaturePrefix {
		return side + "." + raw, true
	}
	if _, exists := topology.FindFace(parentFaces, raw); exists {
		return raw, true
	}
	return side + "." + raw, true
}
