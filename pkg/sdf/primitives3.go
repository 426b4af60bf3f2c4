package sdf

import (
	"fmt"
	"math"
	"strings"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// --- sphere ---

type sphereNode struct {
	r     float64
	faces []topology.FaceDescriptor
}

// Sphere returns a sphere of radius r centred at the origin. It fails if r
// is not strictly positive.
func Sphere(r float64) (Shape, error) {
	if r <= 0 {
		return Shape{}, invalidParam("Sphere", "r", r, "radius must be positive")
	}
	n := &sphereNode{r: r, faces: []topology.FaceDescriptor{
		{Name: "surface", Kind: topology.Spherical, Radius: r, Normal: vec.Vec3{Z: 1}},
	}}
	return wrap(n), nil
}

func (s *sphereNode) Evaluate(p vec.Vec3) float64 { return p.Length() - s.r }
func (s *sphereNode) Gradient(p vec.Vec3) vec.Vec3 {
	n := p.Normalize()
	if n == (vec.Vec3{}) {
		return vec.Vec3{Z: 1}
	}
	return n
}
func (s *sphereNode) Bounds() Box3 {
	return Box3{Min: vec.Vec3{X: -s.r, Y: -s.r, Z: -s.r}, Max: vec.Vec3{X: s.r, Y: s.r, Z: s.r}}
}
func (s *sphereNode) Name() string                               { return fmtName("sphere", s.r) }
func (s *sphereNode) Faces() []topology.FaceDescriptor            { return s.faces }
func (s *sphereNode) Edges() []topology.EdgeDescriptor            { return nil }
func (s *sphereNode) Children() []Node3                           { return nil }
func (s *sphereNode) ClassifyPoint(vec.Vec3) (string, bool)       { return "surface", true }

// --- box ---

type boxNode struct {
	half  vec.Vec3
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// Box returns a rectangular prism of the given width (X), height (Y), and
// depth (Z), centred at the origin. It fails if any dimension is not
// strictly positive.
func Box(w, h, d float64) (Shape, error) {
	if w <= 0 {
		return Shape{}, invalidParam("Box", "w", w, "dimension must be positive")
	}
	if h <= 0 {
		return Shape{}, invalidParam("Box", "h", h, "dimension must be positive")
	}
	if d <= 0 {
		return Shape{}, invalidParam("Box", "d", d, "dimension must be positive")
	}
	half := vec.Vec3{X: w / 2, Y: h / 2, Z: d / 2}
	faces := []topology.FaceDescriptor{
		{Name: "top", Kind: topology.Planar, Normal: vec.Vec3{Y: 1}, Origin: vec.Vec3{Y: half.Y}},
		{Name: "bottom", Kind: topology.Planar, Normal: vec.Vec3{Y: -1}, Origin: vec.Vec3{Y: -half.Y}},
		{Name: "left", Kind: topology.Planar, Normal: vec.Vec3{X: -1}, Origin: vec.Vec3{X: -half.X}},
		{Name: "right", Kind: topology.Planar, Normal: vec.Vec3{X: 1}, Origin: vec.Vec3{X: half.X}},
		{Name: "front", Kind: topology.Planar, Normal: vec.Vec3{Z: 1}, Origin: vec.Vec3{Z: half.Z}},
		{Name: "back", Kind: topology.Planar, Normal: vec.Vec3{Z: -1}, Origin: vec.Vec3{Z: -half.Z}},
	}
	n := &boxNode{half: half, faces: faces, edges: boxEdges(faces)}
	return wrap(n), nil
}

// boxEdges derives the twelve box edges generically from its six faces:
// two planar faces of a box share an edge exactly when their normals are
// orthogonal, and the edge midpoint is the sum of the two face origins
// (each origin is nonzero only along its own axis, so the sum picks up
// each face's offset on its own axis and zero on the third).
func boxEdges(faces []topology.FaceDescriptor) []topology.EdgeDescriptor {
	var edges []topology.EdgeDescriptor
	for i := 0; i < len(faces); i++ {
		for j := i + 1; j < len(faces); j++ {
			a, b := faces[i], faces[j]
			if math.Abs(a.Normal.Dot(b.Normal)) > 1e-9 {
				continue // parallel (same or opposite face)
			}
			names := []string{a.Name, b.Name}
			if names[0] > names[1] {
				names[0], names[1] = names[1], names[0]
			}
			edges = append(edges, topology.EdgeDescriptor{
				Name:     names[0] + "." + names[1],
				Faces:    [2]string{names[0], names[1]},
				Kind:     topology.Line,
				Midpoint: a.Origin.Add(b.Origin),
			})
		}
	}
	return edges
}

func (b *boxNode) Evaluate(p vec.Vec3) float64 {
	q := p.Abs().Sub(b.half)
	outside := q.MaxScalar(0).Length()
	inside := math.Min(q.MaxComponent(), 0)
	return outside + inside
}
func (b *boxNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(b.Evaluate, p) }
func (b *boxNode) Bounds() Box3 {
	return Box3{Min: b.half.Scale(-1), Max: b.half}
}
func (b *boxNode) Name() string                    { return fmtName("box", b.half.X*2, b.half.Y*2, b.half.Z*2) }
func (b *boxNode) Faces() []topology.FaceDescriptor { return b.faces }
func (b *boxNode) Edges() []topology.EdgeDescriptor { return b.edges }
func (b *boxNode) Children() []Node3                { return nil }
func (b *boxNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	return nearestFaceClassifier(b.faces, func(f topology.FaceDescriptor, p vec.Vec3) float64 {
		return math.Abs(p.Dot(f.Normal) - f.Normal.Dot(f.Origin))
	})(p)
}

// --- cylinder ---

type cylinderNode struct {
	r, h  float64
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// Cylinder returns a cylinder of radius r and height h, axis Z, centred at
// the origin. It fails if r or h is not strictly positive.
func Cylinder(r, h float64) (Shape, error) {
	if r <= 0 {
		return Shape{}, invalidParam("Cylinder", "r", r, "radius must be positive")
	}
	if h <= 0 {
		return Shape{}, invalidParam("Cylinder", "h", h, "height must be positive")
	}
	half := h / 2
	faces := []topology.FaceDescriptor{
		{Name: "top_cap", Kind: topology.Planar, Normal: vec.Vec3{Z: 1}, Origin: vec.Vec3{Z: half}, Radius: r},
		{Name: "bottom_cap", Kind: topology.Planar, Normal: vec.Vec3{Z: -1}, Origin: vec.Vec3{Z: -half}, Radius: r},
		{Name: "barrel", Kind: topology.Cylindrical, Normal: vec.Vec3{X: 1}, Radius: r, Axis: vec.Vec3{Z: 1}},
	}
	edges := []topology.EdgeDescriptor{
		{Name: "barrel.bottom_cap", Faces: [2]string{"barrel", "bottom_cap"}, Kind: topology.Arc, Midpoint: vec.Vec3{X: r, Z: -half}},
		{Name: "barrel.top_cap", Faces: [2]string{"barrel", "top_cap"}, Kind: topology.Arc, Midpoint: vec.Vec3{X: r, Z: half}},
	}
	n := &cylinderNode{r: r, h: h, faces: faces, edges: edges}
	return wrap(n), nil
}

func (c *cylinderNode) Evaluate(p vec.Vec3) float64 {
	radial := math.Hypot(p.X, p.Y) - c.r
	axial := math.Abs(p.Z) - c.h/2
	outside := math.Hypot(math.Max(radial, 0), math.Max(axial, 0))
	inside := math.Min(math.Max(radial, axial), 0)
	return outside + inside
}
func (c *cylinderNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(c.Evaluate, p) }
func (c *cylinderNode) Bounds() Box3 {
	return Box3{Min: vec.Vec3{X: -c.r, Y: -c.r, Z: -c.h / 2}, Max: vec.Vec3{X: c.r, Y: c.r, Z: c.h / 2}}
}
func (c *cylinderNode) Name() string                    { return fmtName("cylinder", c.r, c.h) }
func (c *cylinderNode) Faces() []topology.FaceDescriptor { return c.faces }
func (c *cylinderNode) Edges() []topology.EdgeDescriptor { return c.edges }
func (c *cylinderNode) Children() []Node3                { return nil }
func (c *cylinderNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	radial := math.Hypot(p.X, p.Y)
	capDist := math.Abs(math.Abs(p.Z) - c.h/2)
	barrelDist := math.Abs(radial - c.r)
	if capDist <= barrelDist {
		if p.Z >= 0 {
			return "top_cap", true
		}
		return "bottom_cap", true
	}
	return "barrel", true
}

// --- cone ---

type coneNode struct {
	r, h  float64
	faces []topology.FaceDescriptor
	edges []topology.EdgeDescriptor
}

// Cone returns a right circular cone with its tip at the origin, opening
// toward -Z, with base radius r at z=-h. It fails if r or h is not
// strictly positive.
func Cone(r, h float64) (Shape, error) {
	if r <= 0 {
		return Shape{}, invalidParam("Cone", "r", r, "base radius must be positive")
	}
	if h <= 0 {
		return Shape{}, invalidParam("Cone", "h", h, "height must be positive")
	}
	slantLen := math.Hypot(h, r)
	slantNormal := vec.Vec2{X: h / slantLen, Y: r / slantLen}
	faces := []topology.FaceDescriptor{
		{Name: "base_cap", Kind: topology.Planar, Normal: vec.Vec3{Z: -1}, Origin: vec.Vec3{Z: -h}, Radius: r},
		{Name: "surface", Kind: topology.Conical, Normal: vec.Vec3{X: slantNormal.X, Z: slantNormal.Y}, Radius: r, Axis: vec.Vec3{Z: 1}},
	}
	edges := []topology.EdgeDescriptor{
		{Name: "base_cap.surface", Faces: [2]string{"base_cap", "surface"}, Kind: topology.Arc, Midpoint: vec.Vec3{X: r, Z: -h}},
	}
	n := &coneNode{r: r, h: h, faces: faces, edges: edges}
	return wrap(n), nil
}

// slantProject projects the 2D (radial, z) point q onto the tip-to-base-rim
// segment and returns the clamped parameter t and the projected point.
func (c *coneNode) slantProject(q vec.Vec2) (t float64, proj vec.Vec2) {
	a := vec.Vec2{}
	b := vec.Vec2{X: c.r, Y: -c.h}
	ab := b.Sub(a)
	t = vec.Clamp(q.Sub(a).Dot(ab)/ab.Dot(ab), 0, 1)
	return t, a.Add(ab.Scale(t))
}

func (c *coneNode) Evaluate(p vec.Vec3) float64 {
	q := vec.Vec2{X: math.Hypot(p.X, p.Y), Y: p.Z}
	_, proj := c.slantProject(q)
	slantDist := q.Sub(proj).Length()

	capRadial := vec.Clamp(q.X, 0, c.r)
	baseDist := q.Sub(vec.Vec2{X: capRadial, Y: -c.h}).Length()

	dist := math.Min(slantDist, baseDist)

	sign := 1.0
	if q.Y <= 0 && q.Y >= -c.h {
		radiusAtZ := -c.r * q.Y / c.h
		if q.X < radiusAtZ {
			sign = -1
		}
	}
	return dist * sign
}
func (c *coneNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(c.Evaluate, p) }
func (c *coneNode) Bounds() Box3 {
	return Box3{Min: vec.Vec3{X: -c.r, Y: -c.r, Z: -c.h}, Max: vec.Vec3{X: c.r, Y: c.r, Z: 0}}
}
func (c *coneNode) Name() string                    { return fmtName("cone", c.r, c.h) }
func (c *coneNode) Faces() []topology.FaceDescriptor { return c.faces }
func (c *coneNode) Edges() []topology.EdgeDescriptor { return c.edges }
func (c *coneNode) Children() []Node3                { return nil }
func (c *coneNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	q := vec.Vec2{X: math.Hypot(p.X, p.Y), Y: p.Z}
	_, proj := c.slantProject(q)
	slantDist := q.Sub(proj).Length()
	capRadial := vec.Clamp(q.X, 0, c.r)
	baseDist := q.Sub(vec.Vec2{X: capRadial, Y: -c.h}).Length()
	if baseDist < slantDist {
		return "base_cap", true
	}
	return "surface", true
}

// --- torus ---

type torusNode struct {
	R, r  float64
	faces []topology.FaceDescriptor
}

// Torus returns a torus with major radius R (centreline to tube centre)
// and minor radius r (tube radius), lying in the XY plane with axis Z. It
// fails if R or r is not strictly positive.
func Torus(majorR, minorR float64) (Shape, error) {
	if majorR <= 0 {
		return Shape{}, invalidParam("Torus", "R", majorR, "major radius must be positive")
	}
	if minorR <= 0 {
		return Shape{}, invalidParam("Torus", "r", minorR, "minor radius must be positive")
	}
	n := &torusNode{R: majorR, r: minorR, faces: []topology.FaceDescriptor{
		{Name: "surface", Kind: topology.Toroidal, Radius: minorR, Axis: vec.Vec3{Z: 1}, Normal: vec.Vec3{X: 1}},
	}}
	return wrap(n), nil
}

func (t *torusNode) Evaluate(p vec.Vec3) float64 {
	q := vec.Vec2{X: math.Hypot(p.X, p.Y) - t.R, Y: p.Z}
	return q.Length() - t.r
}
func (t *torusNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(t.Evaluate, p) }
func (t *torusNode) Bounds() Box3 {
	outer := t.R + t.r
	return Box3{Min: vec.Vec3{X: -outer, Y: -outer, Z: -t.r}, Max: vec.Vec3{X: outer, Y: outer, Z: t.r}}
}
func (t *torusNode) Name() string                         { return fmtName("torus", t.R, t.r) }
func (t *torusNode) Faces() []topology.FaceDescriptor      { return t.faces }
func (t *torusNode) Edges() []topology.EdgeDescriptor      { return nil }
func (t *torusNode) Children() []Node3                     { return nil }
func (t *torusNode) ClassifyPoint(vec.Vec3) (string, bool) { return "surface", true }

// --- plane ---

type planeNode struct {
	n      vec.Vec3
	offset float64
	faces  []topology.FaceDescriptor
}

// Plane returns the half-space {p : dot(p,n) <= offset}. It fails if n has
// zero length.
func Plane(n vec.Vec3, offset float64) (Shape, error) {
	if n.Length() == 0 {
		return Shape{}, invalidParam("Plane", "n", n, "normal must be nonzero")
	}
	unit := n.Normalize()
	pn := &planeNode{n: unit, offset: offset, faces: []topology.FaceDescriptor{
		{Name: "surface", Kind: topology.Planar, Normal: unit, Origin: unit.Scale(offset)},
	}}
	return wrap(pn), nil
}

func (p *planeNode) Evaluate(q vec.Vec3) float64   { return q.Dot(p.n) - p.offset }
func (p *planeNode) Gradient(vec.Vec3) vec.Vec3    { return p.n }
func (p *planeNode) Bounds() Box3 {
	inf := math.Inf(1)
	return Box3{Min: vec.Vec3{X: -inf, Y: -inf, Z: -inf}, Max: vec.Vec3{X: inf, Y: inf, Z: inf}}
}
func (p *planeNode) Name() string                         { return fmtName("plane", p.offset) }
func (p *planeNode) Faces() []topology.FaceDescriptor      { return p.faces }
func (p *planeNode) Edges() []topology.EdgeDescriptor      { return nil }
func (p *planeNode) Children() []Node3                     { return nil }
func (p *planeNode) ClassifyPoint(vec.Vec3) (string, bool) { return "surface", true }

func fmtName(kind string, args ...float64) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(parts, ", "))
}
