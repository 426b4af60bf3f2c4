package sdf

import (
	"math"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// --- shell ---

type shellNode struct {
	child Node3
	t     float64
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// Shell hollows s into a wall of thickness t straddling the original
// surface. It fails if t is not strictly positive.
func (s Shape) Shell(t float64) (Shape, error) {
	if t <= 0 {
		return Shape{}, invalidParam("Shell", "t", t, "thickness must be positive")
	}
	faces, edges := topology.ShellNaming(s.Faces(), s.Edges())
	return wrap(&shellNode{child: s.node, t: t, faces: faces, edges: edges}), nil
}

func (n *shellNode) Evaluate(p vec.Vec3) float64 {
	return math.Abs(n.child.Evaluate(p)) - n.t/2
}
func (n *shellNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *shellNode) Bounds() Box3                 { return n.child.Bounds().Expand(n.t / 2) }
func (n *shellNode) Name() string                 { return "shell(" + n.child.Name() + ")" }
func (n *shellNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *shellNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *shellNode) Children() []Node3                { return []Node3{n.child} }
func (n *shellNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	raw, ok := n.child.ClassifyPoint(p)
	if !ok {
		return "", false
	}
	if n.child.Evaluate(p) <= 0 {
		return "inner_" + raw, true
	}
	return "outer_" + raw, true
}

// --- round ---

type roundNode struct {
	child Node3
	r     float64
}

// Round offsets the isosurface of s outward by r (inward if r is
// negative), rounding sharp convex edges into fillets. Face and edge
// topology pass through unchanged since Round is a pure distance offset.
func (s Shape) Round(r float64) Shape {
	return wrap(&roundNode{child: s.node, r: r})
}

func (n *roundNode) Evaluate(p vec.Vec3) float64  { return n.child.Evaluate(p) - n.r }
func (n *roundNode) Gradient(p vec.Vec3) vec.Vec3 { return n.child.Gradient(p) }
func (n *roundNode) Bounds() Box3                 { return n.child.Bounds().Expand(n.r) }
func (n *roundNode) Name() string                 { return "round(" + n.child.Name() + ")" }
func (n *roundNode) Faces() []topology.FaceDescriptor { return n.child.Faces() }
func (n *roundNode) Edges() []topology.EdgeDescriptor { return n.child.Edges() }
func (n *roundNode) Children() []Node3                { return []Node3{n.child} }
func (n *roundNode) ClassifyPoint(p vec.Vec3) (string, bool) { return n.child.ClassifyPoint(p) }

// --- elongate ---

type elongateNode struct {
	child Node3
	half  vec.Vec3
}

// Elongate stretches s by inserting a flat region of half-extents
// (x/2,y/2,z/2) at its centre, keeping the original curved ends. It fails
// if any component is negative.
func (s Shape) Elongate(x, y, z float64) (Shape, error) {
	if x < 0 || y < 0 || z < 0 {
		return Shape{}, invalidParam("Elongate", "x,y,z", [3]float64{x, y, z}, "elongation must be non-negative")
	}
	return wrap(&elongateNode{child: s.node, half: vec.Vec3{X: x / 2, Y: y / 2, Z: z / 2}}), nil
}

func (n *elongateNode) clamp(p vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: vec.Clamp(p.X, -n.half.X, n.half.X),
		Y: vec.Clamp(p.Y, -n.half.Y, n.half.Y),
		Z: vec.Clamp(p.Z, -n.half.Z, n.half.Z),
	}
}

func (n *elongateNode) Evaluate(p vec.Vec3) float64 { return n.child.Evaluate(p.Sub(n.clamp(p))) }
func (n *elongateNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *elongateNode) Bounds() Box3 {
	b := n.child.Bounds()
	return Box3{Min: b.Min.Sub(n.half), Max: b.Max.Add(n.half)}
}
func (n *elongateNode) Name() string                     { return "elongate(" + n.child.Name() + ")" }
func (n *elongateNode) Faces() []topology.FaceDescriptor { return n.child.Faces() }
func (n *elongateNode) Edges() []topology.EdgeDescriptor { return n.child.Edges() }
func (n *elongateNode) Children() []Node3                { return []Node3{n.child} }
func (n *elongateNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	return n.child.ClassifyPoint(p.Sub(n.clamp(p)))
}
