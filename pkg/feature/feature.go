// Package feature is the semantic convenience layer built on pkg/sdf and
// pkg/topology: hole, pocket, bolt circle, chamfer, and fillet, each
// operating on a named face or edge of an existing shape. Every helper
// requires the referenced face (or, for chamfer/fillet, both faces of the
// referenced edge) to be planar and axis-aligned, and fails with a message
// listing the available planar faces otherwise.
package feature

import (
	"fmt"
	"math"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
)

const faceAlignTolerance = 1e-6

// HoleOptions configures Hole. Through, if true, makes Depth irrelevant
// and cuts fully through the shape along the face normal.
type HoleOptions struct {
	Diameter    float64
	Depth       float64
	Through     bool
	At          *vec.Vec2 // position on the face plane; nil => face origin
	FeatureName string
}

// Hole cuts a round hole into shape, centered on face (or offset by At),
// straight along the face normal.
func Hole(shape sdf.Shape, face string, opts HoleOptions) (sdf.Shape, error) {
	f, err := planarAxisAlignedFace(shape, "Hole", face)
	if err != nil {
		return sdf.Shape{}, err
	}
	if opts.Diameter <= 0 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "Hole", Field: "Diameter", Value: opts.Diameter, Why: "must be positive"}
	}
	depth := opts.Depth
	if opts.Through {
		depth = throughDepth(shape.Bounds(), f.Normal)
	}
	if depth <= 0 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "Hole", Field: "Depth", Value: depth, Why: "must be positive, or set Through"}
	}

	cyl, err := sdf.Cylinder(opts.Diameter/2, depth)
	if err != nil {
		return sdf.Shape{}, err
	}
	cyl = alignCylinderAxis(cyl, f.Normal)
	center := facePoint(f, opts.At).Sub(f.Normal.Scale(depth / 2))
	tool := cyl.Translate(center.X, center.Y, center.Z)

	name := featureName(shape, "hole", opts.FeatureName)
	return shape.Subtract(tool, name), nil
}

// PocketOptions configures Pocket. Width runs along the face's first
// in-plane axis, Length along its second.
type PocketOptions struct {
	Width       float64
	Length      float64
	Depth       float64
	At          *vec.Vec2
	FeatureName string
}

// Pocket cuts a rectangular recess into shape, centered on face (or offset
// by At), Depth deep along the face normal.
func Pocket(shape sdf.Shape, face string, opts PocketOptions) (sdf.Shape, error) {
	f, err := planarAxisAlignedFace(shape, "Pocket", face)
	if err != nil {
		return sdf.Shape{}, err
	}
	if opts.Width <= 0 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "Pocket", Field: "Width", Value: opts.Width, Why: "must be positive"}
	}
	if opts.Length <= 0 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "Pocket", Field: "Length", Value: opts.Length, Why: "must be positive"}
	}
	if opts.Depth <= 0 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "Pocket", Field: "Depth", Value: opts.Depth, Why: "must be positive"}
	}

	w, h, d := boxDimsForFace(f.Normal, opts.Width, opts.Length, opts.Depth)
	box, err := sdf.Box(w, h, d)
	if err != nil {
		return sdf.Shape{}, err
	}
	center := facePoint(f, opts.At).Sub(f.Normal.Scale(opts.Depth / 2))
	tool := box.Translate(center.X, center.Y, center.Z)

	name := featureName(shape, "pocket", opts.FeatureName)
	return shape.Subtract(tool, name), nil
}

// BoltCircleOptions configures BoltCircle.
type BoltCircleOptions struct {
	Count              int
	BoltCircleDiameter float64
	HoleDiameter       float64
	Depth              float64
	Through            bool
	StartAngle         float64 // degrees, default 0
	At                 *vec.Vec2
	FeatureName        string
}

// BoltCircle cuts Count evenly-spaced holes around a circle of diameter
// BoltCircleDiameter, centered on face (or offset by At), starting at
// StartAngle degrees.
func BoltCircle(shape sdf.Shape, face string, opts BoltCircleOptions) (sdf.Shape, error) {
	if opts.Count < 1 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "BoltCircle", Field: "Count", Value: opts.Count, Why: "must be at least 1"}
	}
	if opts.BoltCircleDiameter <= 0 {
		return sdf.Shape{}, &sdf.InvalidParameterError{Op: "BoltCircle", Field: "BoltCircleDiameter", Value: opts.BoltCircleDiameter, Why: "must be positive"}
	}
	f, err := planarAxisAlignedFace(shape, "BoltCircle", face)
	if err != nil {
		return sdf.Shape{}, err
	}

	center := vec.Vec2{}
	if opts.At != nil {
		center = *opts.At
	}
	r := opts.BoltCircleDiameter / 2
	baseName := opts.FeatureName
	if baseName == "" {
		baseName = topology.NextFeatureName(shape.Faces(), "boltcircle")
	}

	result := shape
	for i := 0; i < opts.Count; i++ {
		angle := (opts.StartAngle + float64(i)*360/float64(opts.Count)) * math.Pi / 180
		at := vec.Vec2{X: center.X + r*math.Cos(angle), Y: center.Y + r*math.Sin(angle)}
		result, err = Hole(result, f.Name, HoleOptions{
			Diameter:    opts.HoleDiameter,
			Depth:       opts.Depth,
			Through:     opts.Through,
			At:          &at,
			FeatureName: fmt.Sprintf("%s.hole_%d", baseName, i+1),
		})
		if err != nil {
			return sdf.Shape{}, err
		}
	}
	return result, nil
}

// Chamfer cuts a flat bevel of the given size along the edge named
// edgeName. The edge's two faces must both be planar and axis-aligned.
func Chamfer(shape sdf.Shape, edgeName string, size float64, featureName ...string) (sdf.Shape, error) {
	faceA, faceB, err := edgeFaces(shape, "Chamfer", edgeName)
	if err != nil {
		return sdf.Shape{}, err
	}
	if err := requireAxisAligned(shape, "Chamfer", faceA, faceB); err != nil {
		return sdf.Shape{}, err
	}
	return sdf.EdgeBreak(shape, faceA.Name, faceB.Name, size, sdf.Chamfer, featureName...)
}

// Fillet cuts a round of the given radius along the edge named edgeName.
// The edge's two faces must both be planar and axis-aligned.
func Fillet(shape sdf.Shape, edgeName string, radius float64, featureName ...string) (sdf.Shape, error) {
	faceA, faceB, err := edgeFaces(shape, "Fillet", edgeName)
	if err != nil {
		return sdf.Shape{}, err
	}
	if err := requireAxisAligned(shape, "Fillet", faceA, faceB); err != nil {
		return sdf.Shape{}, err
	}
	return sdf.EdgeBreak(shape, faceA.Name, faceB.Name, radius, sdf.Fillet, featureName...)
}

func planarAxisAlignedFace(shape sdf.Shape, op, face string) (topology.FaceDescriptor, error) {
	f, ok := shape.Face(face)
	if !ok {
		return topology.FaceDescriptor{}, &sdf.NotFoundError{Op: op, Name: face, Available: topology.PlanarFaceNames(shape.Faces())}
	}
	if !topology.PlanarAxisAligned(f, faceAlignTolerance) {
		return topology.FaceDescriptor{}, &sdf.TopologyMismatchError{Op: op, Face: face, Why: fmt.Sprintf("face must be planar with a cardinal (axis-aligned) normal; planar faces: %v", topology.PlanarFaceNames(shape.Faces()))}
	}
	return f, nil
}

func requireAxisAligned(shape sdf.Shape, op string, faces ...topology.FaceDescriptor) error {
	for _, f := range faces {
		if !topology.PlanarAxisAligned(f, faceAlignTolerance) {
			return &sdf.TopologyMismatchError{Op: op, Face: f.Name, Why: fmt.Sprintf("face must be planar with a cardinal (axis-aligned) normal; planar faces: %v", topology.PlanarFaceNames(shape.Faces()))}
		}
	}
	return nil
}

func edgeFaces(shape sdf.Shape, op, edgeName string) (topology.FaceDescriptor, topology.FaceDescriptor, error) {
	for _, e := range shape.Edges() {
		if e.Name != edgeName {
			continue
		}
		faceA, okA := shape.Face(e.Faces[0])
		faceB, okB := shape.Face(e.Faces[1])
		if !okA || !okB {
			return topology.FaceDescriptor{}, topology.FaceDescriptor{}, &sdf.StateViolationError{Op: op, Why: fmt.Sprintf("edge %q references a face not present on shape", edgeName)}
		}
		return faceA, faceB, nil
	}
	return topology.FaceDescriptor{}, topology.FaceDescriptor{}, &sdf.NotFoundError{Op: op, Name: edgeName, Available: edgeNames(shape.Edges())}
}

func edgeNames(edges []topology.EdgeDescriptor) []string {
	names := make([]string, len(edges))
	for i, e := range edges {
		names[i] = e.Name
	}
	return names
}

func featureName(shape sdf.Shape, prefix, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return topology.NextFeatureName(shape.Faces(), prefix)
}

// facePoint resolves a position on f's plane: f.Origin plus an optional
// (u, v) offset in f's in-plane axes.
func facePoint(f topology.FaceDescriptor, at *vec.Vec2) vec.Vec3 {
	if at == nil {
		return f.Origin
	}
	u, v := faceBasis(f.Normal)
	return f.Origin.Add(u.Scale(at.X)).Add(v.Scale(at.Y))
}

// faceBasis returns the two in-plane axis directions for a cardinal
// normal, in a fixed canonical order per axis.
func faceBasis(normal vec.Vec3) (u, v vec.Vec3) {
	switch {
	case math.Abs(normal.X) > 0.5:
		return vec.Vec3{Y: 1}, vec.Vec3{Z: 1}
	case math.Abs(normal.Y) > 0.5:
		return vec.Vec3{X: 1}, vec.Vec3{Z: 1}
	default:
		return vec.Vec3{X: 1}, vec.Vec3{Y: 1}
	}
}

// boxDimsForFace maps a (width along u, length along v, depth along
// normal) triple onto Box's (w, h, d) = (X, Y, Z) extents, so the box
// needs no rotation regardless of which cardinal axis the normal is.
func boxDimsForFace(normal vec.Vec3, width, length, depth float64) (w, h, d float64) {
	switch {
	case math.Abs(normal.X) > 0.5:
		return depth, width, length
	case math.Abs(normal.Y) > 0.5:
		return width, depth, length
	default:
		return width, length, depth
	}
}

// alignCylinderAxis rotates a Z-axis cylinder onto the line through the
// origin along normal. The cylinder is symmetric about its own axis, so
// the rotation's sign is immaterial — only the resulting axis line
// matters.
func alignCylinderAxis(cyl sdf.Shape, normal vec.Vec3) sdf.Shape {
	switch {
	case math.Abs(normal.X) > 0.5:
		return cyl.RotateY(90)
	case math.Abs(normal.Y) > 0.5:
		return cyl.RotateX(90)
	default:
		return cyl
	}
}

// throughDepth returns a cutter depth that spans bounds along normal's
// axis plus a small margin, for Through holes. Hole places the cutter
// flush with the face, so the whole margin lies beyond the far side.
func throughDepth(bounds sdf.Box3, normal vec.Vec3) float64 {
	const margin = 2
	switch {
	case math.Abs(normal.X) > 0.5:
		return (bounds.Max.X - bounds.Min.X) + margin
	case math.Abs(normal.Y) > 0.5:
		return (bounds.Max.Y - bounds.Min.Y) + margin
	default:
		return (bounds.Max.Z - bounds.Min.Z) + margin
	}
}
