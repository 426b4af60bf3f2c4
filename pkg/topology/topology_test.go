package topology_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/topology"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func boxFaces() []topology.FaceDescriptor {
	return []topology.FaceDescriptor{
		{Name: "top", Kind: topology.Planar, Normal: vec.Vec3{Y: 1}},
		{Name: "bottom", Kind: topology.Planar, Normal: vec.Vec3{Y: -1}},
	}
}

func TestPrefixFaceInvertsNormal(t *testing.T) {
	f := topology.FaceDescriptor{Name: "barrel", Normal: vec.Vec3{X: 1}, Kind: topology.Cylindrical}
	g := topology.PrefixFace(f, "hole_1", true)
	require.Equal(t, "hole_1.barrel", g.Name)
	require.Equal(t, vec.Vec3{X: -1}, g.Normal)
}

func TestPrefixEdgeRewritesFaceRefs(t *testing.T) {
	e := topology.EdgeDescriptor{Name: "top.front", Faces: [2]string{"top", "front"}}
	g := topology.PrefixEdge(e, "hole_1")
	require.Equal(t, "hole_1.top.front", g.Name)
	require.Equal(t, [2]string{"hole_1.top", "hole_1.front"}, g.Faces)
}

func TestMergeSidesNoCollision(t *testing.T) {
	a := []topology.FaceDescriptor{{Name: "surface"}}
	b := []topology.FaceDescriptor{{Name: "top"}, {Name: "bottom"}}
	faces, _ := topology.MergeSides(a, b, nil, nil)
	require.Len(t, faces, 3)
	names := map[string]bool{}
	for _, f := range faces {
		names[f.Name] = true
	}
	require.True(t, names["surface"] && names["top"] && names["bottom"])
}

func TestMergeSidesCollisionPrefixes(t *testing.T) {
	a := []topology.FaceDescriptor{{Name: "top"}}
	b := []topology.FaceDescriptor{{Name: "top"}}
	faces, _ := topology.MergeSides(a, b, nil, nil)
	require.Len(t, faces, 2)
	require.Equal(t, "a.top", faces[0].Name)
	require.Equal(t, "b.top", faces[1].Name)
}

func TestSubtractNamingInvertsCutterNormals(t *testing.T) {
	left := boxFaces()
	right := []topology.FaceDescriptor{{Name: "barrel", Normal: vec.Vec3{X: 1}, Kind: topology.Cylindrical}}
	faces, _ := topology.SubtractNaming(left, right, nil, nil, "hole_1")
	require.Len(t, faces, 3)
	require.Equal(t, "top", faces[0].Name)
	require.Equal(t, "hole_1.barrel", faces[2].Name)
	require.Equal(t, vec.Vec3{X: -1}, faces[2].Normal)
}

func TestShellNamingDoublesAndInvertsInner(t *testing.T) {
	child := boxFaces()
	faces, _ := topology.ShellNaming(child, nil)
	require.Len(t, faces, 4)
	require.Equal(t, "outer_top", faces[0].Name)
	require.Equal(t, "inner_top", faces[2].Name)
	require.Equal(t, vec.Vec3{Y: -1}, faces[2].Normal)
}

func TestNextFeatureNameStartsAtOne(t *testing.T) {
	require.Equal(t, "hole_1", topology.NextFeatureName(nil, "hole"))
}

func TestNextFeatureNameSkipsGap(t *testing.T) {
	faces := []topology.FaceDescriptor{
		{Name: "hole_1.barrel"},
		{Name: "hole_3.barrel"},
	}
	require.Equal(t, "hole_4", topology.NextFeatureName(faces, "hole"))
}

func TestNextFeatureNamePerShapeNotGlobal(t *testing.T) {
	// Two independent calls against two independent face sets both start
	// at 1 — there is no package-level counter to leak state between them.
	require.Equal(t, "subtract_1", topology.NextFeatureName(nil, "subtract"))
	require.Equal(t, "subtract_1", topology.NextFeatureName(nil, "subtract"))
}

func TestPlanarAxisAligned(t *testing.T) {
	top := topology.FaceDescriptor{Kind: topology.Planar, Normal: vec.Vec3{Y: 1}}
	require.True(t, topology.PlanarAxisAligned(top, 1e-6))

	diagonal := topology.FaceDescriptor{Kind: topology.Planar, Normal: vec.Vec3{X: 0.7, Y: 0.7}}
	require.False(t, topology.PlanarAxisAligned(diagonal, 1e-6))

	curved := topology.FaceDescriptor{Kind: topology.Cylindrical, Normal: vec.Vec3{X: 1}}
	require.False(t, topology.PlanarAxisAligned(curved, 1e-6))
}

func TestFindFaceAndEdge(t *testing.T) {
	faces := boxFaces()
	f, ok := topology.FindFace(faces, "top")
	require.True(t, ok)
	require.Equal(t, "top", f.Name)

	_, ok = topology.FindFace(faces, "nope")
	require.False(t, ok)

	edges := []topology.EdgeDescriptor{{Name: "top.bottom", Faces: [2]string{"top", "bottom"}}}
	e, ok := topology.FindEdge(edges, "bottom", "top")
	require.True(t, ok)
	require.Equal(t, "top.bottom", e.Name)
}
