package sdf

import (
	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// --- translate ---

type translateNode struct {
	child  Node3
	offset vec.Vec3
	faces  []topology.FaceDescriptor
	edges  []topology.EdgeDescriptor
}

// Translate moves s by (x,y,z). Face/edge names and kinds pass through
// unchanged; Origin and Midpoint fields shift by the same offset.
func (s Shape) Translate(x, y, z float64) Shape {
	return s.translateBy(vec.Vec3{X: x, Y: y, Z: z})
}

// At is an alias of Translate, read more naturally at a call site that
// places a feature rather than moving a whole shape (e.g. hole.At(10,0,5)).
func (s Shape) At(x, y, z float64) Shape { return s.Translate(x, y, z) }

func (s Shape) translateBy(offset vec.Vec3) Shape {
	childFaces := s.Faces()
	faces := make([]topology.FaceDescriptor, len(childFaces))
	for i, f := range childFaces {
		f.Origin = f.Origin.Add(offset)
		faces[i] = f
	}
	childEdges := s.Edges()
	edges := make([]topology.EdgeDescriptor, len(childEdges))
	for i, e := range childEdges {
		e.Midpoint = e.Midpoint.Add(offset)
		edges[i] = e
	}
	return wrap(&translateNode{child: s.node, offset: offset, faces: faces, edges: edges})
}

func (n *translateNode) Evaluate(p vec.Vec3) float64  { return n.child.Evaluate(p.Sub(n.offset)) }
func (n *translateNode) Gradient(p vec.Vec3) vec.Vec3 { return n.child.Gradient(p.Sub(n.offset)) }
func (n *translateNode) Bounds() Box3 {
	b := n.child.Bounds()
	return Box3{Min: b.Min.Add(n.offset), Max: b.Max.Add(n.offset)}
}
func (n *translateNode) Name() string                     { return "translate(" + n.child.Name() + ")" }
func (n *translateNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *translateNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *translateNode) Children() []Node3                { return []Node3{n.child} }
func (n *translateNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	return n.child.ClassifyPoint(p.Sub(n.offset))
}

// --- rotate ---

type rotateNode struct {
	child        Node3
	forward, inv vec.Mat3
	faces        []topology.FaceDescriptor
	edges        []topology.EdgeDescriptor
}

func rotateBy(s Shape, forward vec.Mat3) Shape {
	inv := forward.Transpose()
	childFaces := s.Faces()
	faces := make([]topology.FaceDescriptor, len(childFaces))
	for i, f := range childFaces {
		f.Normal = forward.MulVec(f.Normal)
		f.Origin = forward.MulVec(f.Origin)
		f.Axis = forward.MulVec(f.Axis)
		faces[i] = f
	}
	childEdges := s.Edges()
	edges := make([]topology.EdgeDescriptor, len(childEdges))
	for i, e := range childEdges {
		e.Midpoint = forward.MulVec(e.Midpoint)
		edges[i] = e
	}
	return wrap(&rotateNode{child: s.node, forward: forward, inv: inv, faces: faces, edges: edges})
}

// RotateX rotates s by deg degrees about the X axis.
func (s Shape) RotateX(deg float64) Shape { return rotateBy(s, vec.RotateX(degToRad(deg))) }

// RotateY rotates s by deg degrees about the Y axis.
func (s Shape) RotateY(deg float64) Shape { return rotateBy(s, vec.RotateY(degToRad(deg))) }

// RotateZ rotates s by deg degrees about the Z axis.
func (s Shape) RotateZ(deg float64) Shape { return rotateBy(s, vec.RotateZ(degToRad(deg))) }

func degToRad(deg float64) float64 { return deg * 3.14159265358979323846 / 180 }

func (n *rotateNode) Evaluate(p vec.Vec3) float64  { return n.child.Evaluate(n.inv.MulVec(p)) }
func (n *rotateNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *rotateNode) Bounds() Box3 {
	b := n.child.Bounds()
	corners := [8]vec.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}, {X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z}, {X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z}, {X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z}, {X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
	out := Box3{Min: n.forward.MulVec(corners[0]), Max: n.forward.MulVec(corners[0])}
	for _, c := range corners[1:] {
		w := n.forward.MulVec(c)
		out = out.Union(Box3{Min: w, Max: w})
	}
	return out
}
func (n *rotateNode) Name() string                     { return "rotate(" + n.child.Name() + ")" }
func (n *rotateNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *rotateNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *rotateNode) Children() []Node3                { return []Node3{n.child} }
func (n *rotateNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	return n.child.ClassifyPoint(n.inv.MulVec(p))
}

// --- scale ---

type scaleNode struct {
	child  Node3
	factor float64
	faces  []topology.FaceDescriptor
	edges  []topology.EdgeDescriptor
}

// Scale grows or shrinks s uniformly by factor. It fails if factor is not
// strictly positive.
func (s Shape) Scale(factor float64) (Shape, error) {
	if factor <= 0 {
		return Shape{}, invalidParam("Scale", "factor", factor, "scale factor must be positive")
	}
	childFaces := s.Faces()
	faces := make([]topology.FaceDescriptor, len(childFaces))
	for i, f := range childFaces {
		f.Origin = f.Origin.Scale(factor)
		f.Radius = f.Radius * factor
		faces[i] = f
	}
	childEdges := s.Edges()
	edges := make([]topology.EdgeDescriptor, len(childEdges))
	for i, e := range childEdges {
		e.Midpoint = e.Midpoint.Scale(factor)
		edges[i] = e
	}
	return wrap(&scaleNode{child: s.node, factor: factor, faces: faces, edges: edges}), nil
}

func (n *scaleNode) Evaluate(p vec.Vec3) float64 {
	return n.factor * n.child.Evaluate(p.Scale(1/n.factor))
}
func (n *scaleNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *scaleNode) Bounds() Box3 {
	b := n.child.Bounds()
	return Box3{Min: b.Min.Scale(n.factor), Max: b.Max.Scale(n.factor)}
}
func (n *scaleNode) Name() string                     { return "scale(" + n.child.Name() + ")" }
func (n *scaleNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *scaleNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *scaleNode) Children() []Node3                { return []Node3{n.child} }
func (n *scaleNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	return n.child.ClassifyPoint(p.Scale(1 / n.factor))
}

// --- mirror ---

type mirrorNode struct {
	child Node3
	axis  Axis
}

// Mirror reflects s across the plane perpendicular to axis through the
// origin. Faces/edges pass through unchanged (not re-normaled), matching
// this kernel's documented simplification: a mirrored solid keeps its
// child's face names and normals as-is, and ClassifyPoint reflects the
// query point before delegating rather than reflecting the face records.
func (s Shape) Mirror(axis Axis) Shape {
	return wrap(&mirrorNode{child: s.node, axis: axis})
}

func (n *mirrorNode) reflect(p vec.Vec3) vec.Vec3 {
	switch n.axis {
	case AxisX:
		return vec.Vec3{X: -p.X, Y: p.Y, Z: p.Z}
	case AxisY:
		return vec.Vec3{X: p.X, Y: -p.Y, Z: p.Z}
	default:
		return vec.Vec3{X: p.X, Y: p.Y, Z: -p.Z}
	}
}

func (n *mirrorNode) Evaluate(p vec.Vec3) float64  { return n.child.Evaluate(n.reflect(p)) }
func (n *mirrorNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *mirrorNode) Bounds() Box3 {
	b := n.child.Bounds()
	switch n.axis {
	case AxisX:
		return Box3{Min: vec.Vec3{X: -b.Max.X, Y: b.Min.Y, Z: b.Min.Z}, Max: vec.Vec3{X: -b.Min.X, Y: b.Max.Y, Z: b.Max.Z}}
	case AxisY:
		return Box3{Min: vec.Vec3{X: b.Min.X, Y: -b.Max.Y, Z: b.Min.Z}, Max: vec.Vec3{X: b.Max.X, Y: -b.Min.Y, Z: b.Max.Z}}
	default:
		return Box3{Min: vec.Vec3{X: b.Min.X, Y: b.Min.Y, Z: -b.Max.Z}, Max: vec.Vec3{X: b.Max.X, Y: b.Max.Y, Z: -b.Min.Z}}
	}
}
func (n *mirrorNode) Name() string                     { return "mirror(" + n.child.Name() + ")" }
func (n *mirrorNode) Faces() []topology.FaceDescriptor { return n.child.Faces() }
func (n *mirrorNode) Edges() []topology.EdgeDescriptor { return n.child.Edges() }
func (n *mirrorNode) Children() []Node3                { return []Node3{n.child} }
func (n *mirrorNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	return n.child.ClassifyPoint(n.reflect(p))
}
