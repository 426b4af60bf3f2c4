package sdf

import (
	"math"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

// EdgeBreakMode selects between a flat bevel and a round.
type EdgeBreakMode string

const (
	Chamfer EdgeBreakMode = "chamfer"
	Fillet  EdgeBreakMode = "fillet"
)

type edgeBreakNode struct {
	child      Node3
	mode       EdgeBreakMode
	size       float64
	nA, nB     vec.Vec3 // unit face normals
	oA, oB     vec.Vec3 // points on each face
	featureFace string
	faces      []topology.FaceDescriptor
	edges      []topology.EdgeDescriptor
}

// EdgeBreak cuts the edge shared by faceA and faceB, either with a flat
// bevel (Chamfer) or a round (Fillet). It requires the two faces to be
// planar with orthogonal normals — the only edge shape this kernel
// currently breaks; pkg/feature's Chamfer/Fillet convenience wrappers are
// the usual entry point and add the axis-aligned precondition.
func EdgeBreak(s Shape, faceA, faceB string, size float64, mode EdgeBreakMode, feature ...string) (Shape, error) {
	if size <= 0 {
		return Shape{}, invalidParam("EdgeBreak", "size", size, "size must be positive")
	}
	fA, ok := s.Face(faceA)
	if !ok {
		return Shape{}, &NotFoundError{Op: "EdgeBreak", Name: faceA, Available: topology.PlanarFaceNames(s.Faces())}
	}
	fB, ok := s.Face(faceB)
	if !ok {
		return Shape{}, &NotFoundError{Op: "EdgeBreak", Name: faceB, Available: topology.PlanarFaceNames(s.Faces())}
	}
	if fA.Kind != topology.Planar {
		return Shape{}, &TopologyMismatchError{Op: "EdgeBreak", Face: faceA, Why: "must be planar"}
	}
	if fB.Kind != topology.Planar {
		return Shape{}, &TopologyMismatchError{Op: "EdgeBreak", Face: faceB, Why: "must be planar"}
	}
	if math.Abs(fA.Normal.Dot(fB.Normal)) > 1e-6 {
		return Shape{}, &TopologyMismatchError{Op: "EdgeBreak", Face: faceA, Why: "faces must meet at a right angle"}
	}

	name := featureNameOrNext(s.Faces(), string(mode), feature)
	featureFace := name + ".face"

	n := &edgeBreakNode{
		child: s.node, mode: mode, size: size,
		nA: fA.Normal, nB: fB.Normal, oA: fA.Origin, oB: fB.Origin,
		featureFace: featureFace,
	}

	childFaces := s.Faces()
	newFace := topology.FaceDescriptor{
		Name: featureFace, Kind: topology.Freeform,
		Normal:        fA.Normal.Add(fB.Normal).Normalize(),
		EdgeBreakSize: size, EdgeBreakMode: string(mode),
	}
	n.faces = append(append([]topology.FaceDescriptor{}, childFaces...), newFace)

	edgeMidpoint := fA.Origin.Add(fB.Normal.Scale(fB.Origin.Sub(fA.Origin).Dot(fB.Normal)))
	childEdges := s.Edges()
	n.edges = make([]topology.EdgeDescriptor, 0, len(childEdges)+2)
	for _, e := range childEdges {
		isAB := (e.Faces[0] == faceA && e.Faces[1] == faceB) || (e.Faces[0] == faceB && e.Faces[1] == faceA)
		if isAB {
			continue // the faces no longer meet directly once the edge is broken
		}
		n.edges = append(n.edges, e)
	}
	n.edges = append(n.edges,
		topology.EdgeDescriptor{Name: featureFace + "." + faceA, Faces: [2]string{featureFace, faceA}, Kind: topology.Line, Midpoint: edgeMidpoint},
		topology.EdgeDescriptor{Name: featureFace + "." + faceB, Faces: [2]string{featureFace, faceB}, Kind: topology.Line, Midpoint: edgeMidpoint},
	)
	return wrap(n), nil
}

// cut implements the per-mode cutting-surface formula in terms of the two
// face-plane signed distances dA, dB: positive on the side of the wedge
// being broken off, negative on the kept side, so Evaluate folds it in
// with a plain max.
func (n *edgeBreakNode) cut(p vec.Vec3) float64 {
	dA := p.Sub(n.oA).Dot(n.nA)
	dB := p.Sub(n.oB).Dot(n.nB)
	if n.mode == Chamfer {
		return (dA + dB + n.size) / math.Sqrt2
	}
	ca := vec.Clamp(-dA, 0, n.size)
	cb := vec.Clamp(-dB, 0, n.size)
	return n.size - math.Hypot(ca, cb)
}

func (n *edgeBreakNode) Evaluate(p vec.Vec3) float64 {
	return math.Max(n.child.Evaluate(p), n.cut(p))
}
func (n *edgeBreakNode) Gradient(p vec.Vec3) vec.Vec3 { return gradientByCentralDiff(n.Evaluate, p) }
func (n *edgeBreakNode) Bounds() Box3                 { return n.child.Bounds() }
func (n *edgeBreakNode) Name() string                 { return string(n.mode) + "(" + n.child.Name() + ")" }
func (n *edgeBreakNode) Faces() []topology.FaceDescriptor { return n.faces }
func (n *edgeBreakNode) Edges() []topology.EdgeDescriptor { return n.edges }
func (n *edgeBreakNode) Children() []Node3                { return []Node3{n.child} }
func (n *edgeBreakNode) ClassifyPoint(p vec.Vec3) (string, bool) {
	if n.child.Evaluate(p) >= n.cut(p) {
		return n.child.ClassifyPoint(p)
	}
	return n.featureFace, true
}
