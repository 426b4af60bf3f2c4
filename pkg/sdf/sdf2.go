package sdf

import (
	"math"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// Box2 is an axis-aligned 2D bounding box.
type Box2 struct {
	Min, Max vec.Vec2
}

// Node2 is the closed-set interface every 2D SDF node variant implements.
// 2D nodes carry no named topology — spec.md scopes face/edge naming to
// the 3D graph only, since every 2D shape's purpose in this kernel is to
// feed Extrude or Revolve into a 3D node that does carry it.
type Node2 interface {
	Evaluate(p vec.Vec2) float64
	Bounds() Box2
	Name() string
}

// Shape2 is the fluent, immutable wrapper around a Node2.
type Shape2 struct {
	node Node2
}

func wrap2(n Node2) Shape2 { return Shape2{node: n} }

// Evaluate returns the signed distance from p to the 2D boundary.
func (s Shape2) Evaluate(p vec.Vec2) float64 { return s.node.Evaluate(p) }

// Bounds returns a conservative axis-aligned bounding box.
func (s Shape2) Bounds() Box2 { return s.node.Bounds() }

// Name returns a human-readable description of the node.
func (s Shape2) Name() string { return s.node.Name() }

// Readback2 summarizes a 2D node.
type Readback2 struct {
	Name   string
	Bounds Box2
}

// Readback captures the node's name and bounds.
func (s Shape2) Readback() Readback2 { return Readback2{Name: s.Name(), Bounds: s.Bounds()} }

// --- circle ---

type circle2Node struct{ r float64 }

// Circle2D returns a circle of radius r centred at the origin. It fails if
// r is not strictly positive.
func Circle2D(r float64) (Shape2, error) {
	if r <= 0 {
		return Shape2{}, invalidParam("Circle2D", "r", r, "radius must be positive")
	}
	return wrap2(&circle2Node{r: r}), nil
}

func (c *circle2Node) Evaluate(p vec.Vec2) float64 { return p.Length() - c.r }
func (c *circle2Node) Bounds() Box2 {
	return Box2{Min: vec.Vec2{X: -c.r, Y: -c.r}, Max: vec.Vec2{X: c.r, Y: c.r}}
}
func (c *circle2Node) Name() string { return fmtName("circle2d", c.r) }

// --- rect ---

type rect2Node struct{ half vec.Vec2 }

// Rect2D returns a rectangle of width w and height h centred at the
// origin. It fails if either dimension is not strictly positive.
func Rect2D(w, h float64) (Shape2, error) {
	if w <= 0 {
		return Shape2{}, invalidParam("Rect2D", "w", w, "dimension must be positive")
	}
	if h <= 0 {
		return Shape2{}, invalidParam("Rect2D", "h", h, "dimension must be positive")
	}
	return wrap2(&rect2Node{half: vec.Vec2{X: w / 2, Y: h / 2}}), nil
}

func (r *rect2Node) Evaluate(p vec.Vec2) float64 {
	q := p.Abs().Sub(r.half)
	outside := q.MaxScalar(0).Length()
	inside := math.Min(math.Max(q.X, q.Y), 0)
	return outside + inside
}
func (r *rect2Node) Bounds() Box2 {
	return Box2{Min: r.half.Scale(-1), Max: r.half}
}
func (r *rect2Node) Name() string { return fmtName("rect2d", r.half.X*2, r.half.Y*2) }

// --- polygon ---

type polygonNode struct {
	points []vec.Vec2
	bounds Box2
}

// Polygon returns the (possibly non-convex) simple polygon with the given
// vertices, in order. It fails if fewer than three points are given.
func Polygon(points []vec.Vec2) (Shape2, error) {
	if len(points) < 3 {
		return Shape2{}, invalidParam("Polygon", "points", len(points), "a polygon needs at least 3 vertices")
	}
	b := Box2{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = vec.Vec2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)}
		b.Max = vec.Vec2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)}
	}
	return wrap2(&polygonNode{points: append([]vec.Vec2{}, points...), bounds: b}), nil
}

// Evaluate implements Quilez's exact-distance, winding-by-sign polygon SDF:
// the minimum distance to any edge segment, signed by a crossing-number
// inside test computed in the same loop.
func (pg *polygonNode) Evaluate(p vec.Vec2) float64 {
	v := pg.points
	n := len(v)
	d := p.Sub(v[0]).Dot(p.Sub(v[0]))
	s := 1.0
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		e := v[j].Sub(v[i])
		w := p.Sub(v[i])
		t := vec.Clamp(w.Dot(e)/e.Dot(e), 0, 1)
		b := w.Sub(e.Scale(t))
		d = math.Min(d, b.Dot(b))

		c0 := p.Y >= v[i].Y
		c1 := p.Y < v[j].Y
		c2 := e.X*w.Y > e.Y*w.X
		if (c0 && c1 && c2) || (!c0 && !c1 && !c2) {
			s = -s
		}
	}
	return s * math.Sqrt(d)
}
func (pg *polygonNode) Bounds() Box2 { return pg.bounds }
func (pg *polygonNode) Name() string { return fmtName("polygon", float64(len(pg.points))) }

// --- extrude (2D -> 3D) ---

type extrudeNode struct {
	profile Node2
	height  float64
	faces   []topology.FaceDescriptor
	edges   []topology.EdgeDescriptor
}

// Extrude sweeps a 2D profile (read as the XZ plane) along Y into a solid
// of the given height, centred on Y=0. It fails if height is not strictly
// positive.
func (s Shape2) Extrude(height float64) (Shape, error) {
	if height <= 0 {
		return Shape{}, invalidParam("Extrude", "height", height, "height must be positive")
	}
	half := height / 2
	faces := []topology.FaceDescriptor{
		{Name: "top", Kind: topology.Planar, Normal: vec.Vec3{Y: 1}, Origin: vec.Vec3{Y: half}},
		{Name: "bottom", Kind: topology.Planar, Normal: vec.Vec3{Y: -1}, Origin: vec.Vec3{Y: -half}},
		{Name: "wall", Kind: topology.Freeform},
	}
	edges := []topology.EdgeDescriptor{
		{Name: "top.wall", Faces: [2]string{"top", "wall"}, Kind: topology.Curve, Midpoint: vec.Vec3{Y: half}},
		{Name: "bottom.wall", Faces: [2]string{"bottom", "wall"}, Kind: topology.Curve, Midpoint: vec.Vec3{Y: -half}},
	}
	return wrap(&extrudeNode{profile: s.node, height: height, faces: faces, edges: edges}), nil
}

func (n *extrudeNode) Evaluate(p vec.Vec3) float64 {
	profileDist := n.profile.Evaluate(vec.Vec2{X: p.X, Y: p.Z})
	axialDist := math.Abs(p.Y) - n.height/2
	outside := math.Hypot(math.Max(profileDist, 0), math.Max(axialDist, 0))
	inside := math.Min(math.Max(profileDist, axialDist), 0)
	return outside + inside
}
func (n *extrudeNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *extrudeNode) Bounds() Box3 {
	b2 := n.profile.Bounds()
	return Box3{
		Min: vec.Vec3{X: b2.Min.X, Y: -n.height / 2, Z: b2.Min.Y},
		Max: vec.Vec3{X: b2.Max.X, Y: n.height / 2, Z: b2.Max.Y},
	}
}
func (n *extrudeNode) Name() string                     { return "extrude(" + n.profile.Name() + ")" }
func (n *extrudeNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *extrudeNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *extrudeNode) Children() []Node3                { return nil }
func (n *extrudeNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	profileDist := n.profile.Evaluate(vec.Vec2{X: p.X, Y: p.Z})
	axialDist := math.Abs(p.Y) - n.height/2
	if axialDist > profileDist {
		if p.Y >= 0 {
			return "top", true
		}
		return "bottom", true
	}
	return "wall", true
}

// --- revolve (2D -> 3D) ---

type revolveNode struct {
	profile Node2
	offset  float64
	faces   []topology.FaceDescriptor
}

// Revolve sweeps a 2D profile (read as (radial, Y) coordinates) by a full
// turn about the Y axis, with the profile's radial coordinate shifted
// outward by offset before the sweep (offset=0 is a conventional
// revolve touching the axis; offset>0 produces a torus-like bore through
// the centre). It fails if offset is negative.
func (s Shape2) Revolve(offset float64) (Shape, error) {
	if offset < 0 {
		return Shape{}, invalidParam("Revolve", "offset", offset, "offset must be non-negative")
	}
	return wrap(&revolveNode{profile: s.node, offset: offset, faces: []topology.FaceDescriptor{
		{Name: "surface", Kind: topology.Freeform},
	}}), nil
}

func (n *revolveNode) Evaluate(p vec.Vec3) float64 {
	radial := math.Hypot(p.X, p.Z) - n.offset
	return n.profile.Evaluate(vec.Vec2{X: radial, Y: p.Y})
}
func (n *revolveNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *revolveNode) Bounds() Box3 {
	b2 := n.profile.Bounds()
	outer := math.Max(math.Abs(b2.Min.X), math.Abs(b2.Max.X)) + n.offset
	return Box3{
		Min: vec.Vec3{X: -outer, Y: b2.Min.Y, Z: -outer},
		Max: vec.Vec3{X: outer, Y: b2.Max.Y, Z: outer},
	}
}
func (n *revolveNode) Name() string                         { return "revolve(" + n.profile.Name() + ")" }
func (n *revolveNode) Faces() []topology.FaceDescriptor      { return n.faces }
func (n *revolveNode) Edges() []topology.EdgeDescriptor      { return nil }
func (n *revolveNode) Children() []Node3                     { return nil }
func (n *revolveNode) ClassifyPoint(vec.Vec3) (string, bool) { return "surface", true }
