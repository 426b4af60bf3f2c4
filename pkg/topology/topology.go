// Package topology attaches stable, human-readable names to the faces and
// edges of an SDF node and defines how those names propagate through
// transforms and booleans. It holds no geometry evaluation logic itself —
// pkg/sdf calls into this package from each node's Faces()/Edges() methods.
package topology

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/basswood/kerncad/pkg/vec"
)

// FaceKind classifies the representative shape of a named face. The
// normal and radius/axis fields are representative only — the actual
// surface normal varies across a curved face.
type FaceKind int

const (
	Planar FaceKind = iota
	Cylindrical
	Conical
	Spherical
	Toroidal
	Freeform
)

func (k FaceKind) String() string {
	switch k {
	case Planar:
		return "planar"
	case Cylindrical:
		return "cylindrical"
	case Conical:
		return "conical"
	case Spherical:
		return "spherical"
	case Toroidal:
		return "toroidal"
	default:
		return "freeform"
	}
}

// EdgeKind classifies the curve family of a named edge.
type EdgeKind int

const (
	Line EdgeKind = iota
	Arc
	Curve
)

// FaceDescriptor names one surface region of an SDF node. Origin, Radius,
// and Axis are meaningful only for the Kinds that use them (a planar box
// face sets Origin+Normal; a cylinder barrel sets Radius+Axis; a sphere
// sets only Radius).
type FaceDescriptor struct {
	Name          string
	Normal        vec.Vec3
	Kind          FaceKind
	Origin        vec.Vec3
	Radius        float64
	Axis          vec.Vec3
	EdgeBreakSize float64
	EdgeBreakMode string // "chamfer" or "fillet"; "" if this face is not an edge-break face
}

// EdgeDescriptor names one edge of an SDF node, referencing the two faces
// it separates by name.
type EdgeDescriptor struct {
	Name     string
	Faces    [2]string
	Kind     EdgeKind
	Midpoint vec.Vec3
}

// PrefixFace returns a copy of f renamed "<prefix>.<f.Name>". If
// invertNormal is true (the subtract-cutter and shell-inner cases), the
// face normal is negated.
func PrefixFace(f FaceDescriptor, prefix string, invertNormal bool) FaceDescriptor {
	return prefixFaceSep(f, prefix, ".", invertNormal)
}

// PrefixEdge returns a copy of e renamed "<prefix>.<e.Name>" with both face
// references rewritten to "<prefix>.<faceRef>".
func PrefixEdge(e EdgeDescriptor, prefix string) EdgeDescriptor {
	return prefixEdgeSep(e, prefix, ".")
}

// PrefixFaces applies PrefixFace to every element of fs.
func PrefixFaces(fs []FaceDescriptor, prefix string, invertNormal bool) []FaceDescriptor {
	return prefixFacesSep(fs, prefix, ".", invertNormal)
}

// PrefixEdges applies PrefixEdge to every element of es.
func PrefixEdges(es []EdgeDescriptor, prefix string) []EdgeDescriptor {
	return prefixEdgesSep(es, prefix, ".")
}

func prefixFaceSep(f FaceDescriptor, prefix, sep string, invertNormal bool) FaceDescriptor {
	g := f
	g.Name = prefix + sep + f.Name
	if invertNormal {
		g.Normal = g.Normal.Scale(-1)
	}
	return g
}

func prefixEdgeSep(e EdgeDescriptor, prefix, sep string) EdgeDescriptor {
	g := e
	g.Name = prefix + sep + e.Name
	g.Faces = [2]string{prefix + sep + e.Faces[0], prefix + sep + e.Faces[1]}
	return g
}

func prefixFacesSep(fs []FaceDescriptor, prefix, sep string, invertNormal bool) []FaceDescriptor {
	out := make([]FaceDescriptor, len(fs))
	for i, f := range fs {
		out[i] = prefixFaceSep(f, prefix, sep, invertNormal)
	}
	return out
}

func prefixEdgesSep(es []EdgeDescriptor, prefix, sep string) []EdgeDescriptor {
	out := make([]EdgeDescriptor, len(es))
	for i, e := range es {
		out[i] = prefixEdgeSep(e, prefix, sep)
	}
	return out
}

// MergeSides implements the union/intersect naming rule from spec.md §3 and
// §4.2: if any face name collides between the two operand's face sets,
// every face and edge on the left is prefixed "a." and every one on the
// right is prefixed "b."; otherwise both sides are concatenated unchanged.
func MergeSides(aFaces, bFaces []FaceDescriptor, aEdges, bEdges []EdgeDescriptor) ([]FaceDescriptor, []EdgeDescriptor) {
	if !namesCollide(aFaces, bFaces) {
		faces := append(append([]FaceDescriptor{}, aFaces...), bFaces...)
		edges := append(append([]EdgeDescriptor{}, aEdges...), bEdges...)
		return faces, edges
	}
	faces := append(PrefixFaces(aFaces, "a", false), PrefixFaces(bFaces, "b", false)...)
	edges := append(PrefixEdges(aEdges, "a"), PrefixEdges(bEdges, "b")...)
	return faces, edges
}

func namesCollide(a, b []FaceDescriptor) bool {
	seen := make(map[string]bool, len(a))
	for _, f := range a {
		seen[f.Name] = true
	}
	for _, f := range b {
		if seen[f.Name] {
			return true
		}
	}
	return false
}

// SubtractNaming implements the subtract/smooth-subtract naming rule: left
// faces/edges pass through unchanged; every right (cutter) face/edge is
// renamed "<feature>.<original>" with its normal inverted.
func SubtractNaming(leftFaces, rightFaces []FaceDescriptor, leftEdges, rightEdges []EdgeDescriptor, feature string) ([]FaceDescriptor, []EdgeDescriptor) {
	faces := append(append([]FaceDescriptor{}, leftFaces...), PrefixFaces(rightFaces, feature, true)...)
	edges := append(append([]EdgeDescriptor{}, leftEdges...), PrefixEdges(rightEdges, feature)...)
	return faces, edges
}

// ShellNaming implements the shell doubling rule: every child face/edge
// appears twice, once prefixed "outer_" and once prefixed "inner_" with an
// inverted normal on the inner copy.
func ShellNaming(childFaces []FaceDescriptor, childEdges []EdgeDescriptor) ([]FaceDescriptor, []EdgeDescriptor) {
	faces := append(prefixFacesSep(childFaces, "outer", "_", false), prefixFacesSep(childFaces, "inner", "_", true)...)
	edges := append(prefixEdgesSep(childEdges, "outer", "_"), prefixEdgesSep(childEdges, "inner", "_")...)
	return faces, edges
}

// featureNamePattern matches "<prefix>_<N>." at the start of a face name,
// the shape every feature-name-generating operation produces (e.g.
// "hole_1.barrel", "subtract_2.top").
func featureNamePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `_(\d+)\.`)
}

// NextFeatureName scans faces for names matching "<prefix>_N.<...>" and
// returns "<prefix>_{max(N)+1}". The counter is per-shape (derived purely
// from the current face set, not any package-level state), so identical
// operations performed on two independent shapes may legitimately start at
// the same number — this is the documented, intentional behaviour from
// spec.md §3 Lifecycle.
func NextFeatureName(faces []FaceDescriptor, prefix string) string {
	re := featureNamePattern(prefix)
	max := 0
	for _, f := range faces {
		m := re.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s_%d", prefix, max+1)
}

// FindFace returns the face named name, or ok=false if no such face exists.
func FindFace(faces []FaceDescriptor, name string) (FaceDescriptor, bool) {
	for _, f := range faces {
		if f.Name == name {
			return f, true
		}
	}
	return FaceDescriptor{}, false
}

// FindEdge returns the edge between faceA and faceB (in either order), or
// ok=false if no such edge exists.
func FindEdge(edges []EdgeDescriptor, faceA, faceB string) (EdgeDescriptor, bool) {
	for _, e := range edges {
		if (e.Faces[0] == faceA && e.Faces[1] == faceB) || (e.Faces[0] == faceB && e.Faces[1] == faceA) {
			return e, true
		}
	}
	return EdgeDescriptor{}, false
}

// PlanarAxisAligned reports whether f is planar with a normal lying on one
// cardinal axis (within tol), the precondition spec.md §6 requires of the
// semantic feature helpers (hole, pocket, boltCircle, chamfer, fillet).
func PlanarAxisAligned(f FaceDescriptor, tol float64) bool {
	if f.Kind != Planar {
		return false
	}
	n := f.Normal
	axisCount := 0
	if absGE(n.X, 1-tol) {
		axisCount++
	}
	if absGE(n.Y, 1-tol) {
		axisCount++
	}
	if absGE(n.Z, 1-tol) {
		axisCount++
	}
	return axisCount == 1
}

func absGE(x, threshold float64) bool {
	if x < 0 {
		x = -x
	}
	return x >= threshold
}

// PlanarFaceNames returns the names of every planar face in faces, for use
// in "available names" error messages.
func PlanarFaceNames(faces []FaceDescriptor) []string {
	var names []string
	for _, f := range faces {
		if f.Kind == Planar {
			names = append(names, f.Name)
		}
	}
	return names
}
