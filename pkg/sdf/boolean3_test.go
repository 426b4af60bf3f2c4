package sdf_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestUnionTakesMinimum(t *testing.T) {
	a, _ := sdf.Sphere(1)
	b, _ := sdf.Sphere(1)
	b = b.Translate(3, 0, 0)
	u := a.Union(b)
	require.True(t, u.Contains(vec.Vec3{}))
	require.True(t, u.Contains(vec.Vec3{X: 3}))
	require.False(t, u.Contains(vec.Vec3{X: 1.5}))
}

func TestUnionNoCollisionConcatenatesNames(t *testing.T) {
	a, _ := sdf.Sphere(1) // face "surface"
	b, _ := sdf.Box(1, 1, 1)
	b = b.Translate(5, 0, 0) // faces top/bottom/left/right/front/back
	u := a.Union(b)
	require.Len(t, u.Faces(), 7)
}

func TestUnionCollisionPrefixesAB(t *testing.T) {
	a, _ := sdf.Sphere(1)
	b, _ := sdf.Sphere(1)
	b = b.Translate(3, 0, 0)
	u := a.Union(b)
	names := map[string]bool{}
	for _, f := range u.Faces() {
		names[f.Name] = true
	}
	require.True(t, names["a.surface"])
	require.True(t, names["b.surface"])
}

func TestSubtractCarvesAndNamesFeature(t *testing.T) {
	block, _ := sdf.Box(20, 20, 20)
	drill, _ := sdf.Cylinder(2, 40)
	cut := block.Subtract(drill, "hole_1")
	require.True(t, cut.Contains(vec.Vec3{X: 9}))
	require.False(t, cut.Contains(vec.Vec3{}))

	names := map[string]bool{}
	for _, f := range cut.Faces() {
		names[f.Name] = true
	}
	require.True(t, names["top"])
	require.True(t, names["hole_1.barrel"])
}

func TestSubtractAutoGeneratesFeatureName(t *testing.T) {
	block, _ := sdf.Box(20, 20, 20)
	drill, _ := sdf.Cylinder(2, 40)
	cut := block.Subtract(drill)
	found := false
	for _, f := range cut.Faces() {
		if f.Name == "subtract_1.barrel" {
			found = true
		}
	}
	require.True(t, found)
}

func TestSubtractInvertsCutterNormal(t *testing.T) {
	block, _ := sdf.Box(20, 20, 20)
	drill, _ := sdf.Cylinder(2, 40)
	cut := block.Subtract(drill, "hole_1")
	f, ok := cut.Face("hole_1.barrel")
	require.True(t, ok)
	require.Equal(t, vec.Vec3{X: -1}, f.Normal)
}

func TestIntersectTakesMaximum(t *testing.T) {
	a, _ := sdf.Box(10, 10, 10)
	b, _ := sdf.Sphere(4)
	i := a.Intersect(b)
	require.True(t, i.Contains(vec.Vec3{}))
	require.False(t, i.Contains(vec.Vec3{X: 4.5}))
}

func TestSmoothUnionIsSmootherThanSharpAtBlend(t *testing.T) {
	a, _ := sdf.Sphere(2)
	b, _ := sdf.Sphere(2)
	b = b.Translate(3, 0, 0)
	sharp := a.Union(b)
	smooth := a.SmoothUnion(b, 1.0)
	mid := vec.Vec3{X: 1.5}
	require.Greater(t, sharp.Evaluate(mid), smooth.Evaluate(mid))
}

func TestSmoothUnionConvergesToSharpAsKShrinks(t *testing.T) {
	a, _ := sdf.Sphere(2)
	b, _ := sdf.Sphere(2)
	b = b.Translate(5, 0, 0)
	sharp := a.Union(b)
	smooth := a.SmoothUnion(b, 1e-9)
	p := vec.Vec3{X: -3}
	require.InDelta(t, sharp.Evaluate(p), smooth.Evaluate(p), 1e-6)
}
