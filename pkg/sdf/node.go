// Package sdf implements the signed-distance-field expression graph: a
// closed set of Node3/Node2 variants (primitives, booleans, transforms,
// modifiers, and 2D/3D bridges) composed through a fluent Shape/Shape2
// wrapper, plus the named-topology and sphere-tracing queries layered on
// top of it.
package sdf

import (
	"math"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// Box3 is an axis-aligned bounding box. Every Bounds() implementation in
// this package is conservative: no solid point of the node lies outside
// the reported box.
type Box3 struct {
	Min, Max vec.Vec3
}

// Union returns the smallest Box3 containing both a and b.
func (a Box3) Union(b Box3) Box3 {
	return Box3{
		Min: vec.Vec3{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: vec.Vec3{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Intersect returns the overlap of a and b. If the boxes don't overlap on
// some axis the result has Min>Max on that axis.
func (a Box3) Intersect(b Box3) Box3 {
	return Box3{
		Min: vec.Vec3{X: math.Max(a.Min.X, b.Min.X), Y: math.Max(a.Min.Y, b.Min.Y), Z: math.Max(a.Min.Z, b.Min.Z)},
		Max: vec.Vec3{X: math.Min(a.Max.X, b.Max.X), Y: math.Min(a.Max.Y, b.Max.Y), Z: math.Min(a.Max.Z, b.Max.Z)},
	}
}

// Expand returns a grown by r on every side.
func (a Box3) Expand(r float64) Box3 {
	pad := vec.Vec3{X: r, Y: r, Z: r}
	return Box3{Min: a.Min.Sub(pad), Max: a.Max.Add(pad)}
}

// Axis identifies one of the three cardinal axes, used by Mirror so an
// invalid axis is a compile error rather than a runtime validation path.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

func (a Axis) unitVec() vec.Vec3 {
	switch a {
	case AxisX:
		return vec.Vec3{X: 1}
	case AxisY:
		return vec.Vec3{Y: 1}
	default:
		return vec.Vec3{Z: 1}
	}
}

// Node3 is the closed-set interface every 3D SDF node variant implements:
// primitives, booleans, transforms, modifiers, and the extrude/revolve
// bridges in sdf2.go. External code never implements this interface
// directly — it builds a tree through the primitive constructors and
// Shape's fluent composition methods.
type Node3 interface {
	Evaluate(p vec.Vec3) float64
	Gradient(p vec.Vec3) vec.Vec3
	Bounds() Box3
	Name() string
	Faces() []topology.FaceDescriptor
	Edges() []topology.EdgeDescriptor
	ClassifyPoint(p vec.Vec3) (string, bool)
	Children() []Node3
}

// Shape is the fluent, immutable wrapper around a Node3 that external
// callers build and query against. Every composition method returns a new
// Shape; none mutate the receiver.
type Shape struct {
	node Node3
}

func wrap(n Node3) Shape { return Shape{node: n} }

// Node returns the underlying Node3, for code that builds a new node
// directly on top of an existing tree without going through the fluent
// surface.
func (s Shape) Node() Node3 { return s.node }

// Evaluate returns the signed distance from p to the surface: negative
// inside, positive outside, zero on the surface.
func (s Shape) Evaluate(p vec.Vec3) float64 { return s.node.Evaluate(p) }

// Gradient returns the (not necessarily unit) gradient of Evaluate at p.
func (s Shape) Gradient(p vec.Vec3) vec.Vec3 { return s.node.Gradient(p) }

// Normal returns the unit surface normal at p, approximated by the
// gradient even when p is not exactly on the surface.
func (s Shape) Normal(p vec.Vec3) vec.Vec3 { return s.node.Gradient(p).Normalize() }

// Bounds returns a conservative axis-aligned bounding box.
func (s Shape) Bounds() Box3 { return s.node.Bounds() }

// Contains reports whether p is inside or on the surface (Evaluate(p)<=0).
func (s Shape) Contains(p vec.Vec3) bool { return s.node.Evaluate(p) <= 0 }

// Name returns a human-readable description of the node, for debugging
// and Readback.
func (s Shape) Name() string { return s.node.Name() }

// Faces returns the named faces of the node.
func (s Shape) Faces() []topology.FaceDescriptor { return s.node.Faces() }

// Edges returns the named edges of the node.
func (s Shape) Edges() []topology.EdgeDescriptor { return s.node.Edges() }

// Face looks up a face by name.
func (s Shape) Face(name string) (topology.FaceDescriptor, bool) {
	return topology.FindFace(s.node.Faces(), name)
}

// Edge looks up an edge by its two adjoining face names (either order).
func (s Shape) Edge(faceA, faceB string) (topology.EdgeDescriptor, bool) {
	return topology.FindEdge(s.node.Edges(), faceA, faceB)
}

// Children returns the immediate operand(s) of this node: none for a
// primitive, one for a transform/modifier/bridge, two for a boolean.
func (s Shape) Children() []Shape {
	kids := s.node.Children()
	out := make([]Shape, len(kids))
	for i, c := range kids {
		out[i] = wrap(c)
	}
	return out
}

// ClassifyPoint returns the name of the face nearest to p, or ok=false if
// the node has no named faces at all.
func (s Shape) ClassifyPoint(p vec.Vec3) (string, bool) { return s.node.ClassifyPoint(p) }

// Readback summarizes a node for display or logging without walking the
// tree by hand.
type Readback struct {
	Name      string
	Bounds    Box3
	FaceCount int
	EdgeCount int
	Faces     []string
	Edges     []string
}

// Readback captures the node's name, bounds, and face/edge name lists.
func (s Shape) Readback() Readback {
	faces, edges := s.node.Faces(), s.node.Edges()
	r := Readback{Name: s.Name(), Bounds: s.Bounds(), FaceCount: len(faces), EdgeCount: len(edges)}
	for _, f := range faces {
		r.Faces = append(r.Faces, f.Name)
	}
	for _, e := range edges {
		r.Edges = append(r.Edges, e.Name)
	}
	return r
}

const gradientEpsilon = 1e-4

// gradientByCentralDiff is the default gradient for node types with no
// closed-form derivative (box, cylinder, cone, torus, and every
// boolean/transform/modifier except Translate and Round, which reuse the
// child's gradient): a symmetric central difference per axis.
func gradientByCentralDiff(eval func(vec.Vec3) float64, p vec.Vec3) vec.Vec3 {
	e := gradientEpsilon
	dx := eval(p.Add(vec.Vec3{X: e})) - eval(p.Sub(vec.Vec3{X: e}))
	dy := eval(p.Add(vec.Vec3{Y: e})) - eval(p.Sub(vec.Vec3{Y: e}))
	dz := eval(p.Add(vec.Vec3{Z: e})) - eval(p.Sub(vec.Vec3{Z: e}))
	return vec.Vec3{X: dx, Y: dy, Z: dz}.Scale(1 / (2 * e))
}

// nearestFaceClassifier builds a ClassifyPoint function that scores each
// face with score and returns the name of the lowest-scoring one. Each
// primitive supplies its own scorer since "distance to a named face" has
// no single definition across planar, cylindrical, and spherical faces.
func nearestFaceClassifier(faces []topology.FaceDescriptor, score func(topology.FaceDescriptor, vec.Vec3) float64) func(vec.Vec3) (string, bool) {
	return func(p vec.Vec3) (string, bool) {
		if len(faces) == 0 {
			return "", false
		}
		best := faces[0]
		bestScore := score(best, p)
		for _, f := range faces[1:] {
			if sc := score(f, p); sc < bestScore {
				bestScore = sc
				best = f
			}
		}
		return best.Name, true
	}
}

// GridSampleBounds is the generic grid-search fallback for a node whose
// bounds cannot be derived analytically or conservatively from its
// children. None of the built-in node types in this package currently need
// it — every primitive, transform, modifier, and bridge computes exact or
// conservative bounds directly — but it is exported as the documented
// base-class fallback for a future opaque node type.
func GridSampleBounds(eval func(vec.Vec3) float64, searchRange, step float64) Box3 {
	box := Box3{
		Min: vec.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: vec.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	found := false
	for x := -searchRange; x <= searchRange; x += step {
		for y := -searchRange; y <= searchRange; y += step {
			for z := -searchRange; z <= searchRange; z += step {
				p := vec.Vec3{X: x, Y: y, Z: z}
				if eval(p) <= 0 {
					found = true
					box.Min = vec.Vec3{X: math.Min(box.Min.X, x), Y: math.Min(box.Min.Y, y), Z: math.Min(box.Min.Z, z)}
					box.Max = vec.Vec3{X: math.Max(box.Max.X, x), Y: math.Max(box.Max.Y, y), Z: math.Max(box.Max.Z, z)}
				}
			}
		}
	}
	if !found {
		return Box3{}
	}
	return box.Expand(step)
}
