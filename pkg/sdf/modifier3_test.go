package sdf_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestShellHollowsOutSphere(t *testing.T) {
	s, _ := sdf.Sphere(10)
	shelled, err := s.Shell(2)
	require.NoError(t, err)
	require.True(t, shelled.Contains(vec.Vec3{X: 10}))  // on the original surface, inside the wall
	require.False(t, shelled.Contains(vec.Vec3{}))      // hollow centre
	require.False(t, shelled.Contains(vec.Vec3{X: 20})) // far outside
}

func TestShellRejectsNonPositiveThickness(t *testing.T) {
	s, _ := sdf.Sphere(10)
	_, err := s.Shell(0)
	require.Error(t, err)
}

func TestShellNamesInnerAndOuter(t *testing.T) {
	s, _ := sdf.Sphere(10)
	shelled, _ := s.Shell(2)
	name, ok := shelled.ClassifyPoint(vec.Vec3{X: 9})
	require.True(t, ok)
	require.Equal(t, "inner_surface", name)
	name, ok = shelled.ClassifyPoint(vec.Vec3{X: 11})
	require.True(t, ok)
	require.Equal(t, "outer_surface", name)
}

func TestRoundGrowsShapeByRadius(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	rounded := b.Round(1)
	require.InDelta(t, -1.0, rounded.Evaluate(vec.Vec3{X: 5}), 1e-9)
	require.True(t, rounded.Contains(vec.Vec3{X: 5.5}))
}

func TestElongateStretchesFlatRegion(t *testing.T) {
	s, _ := sdf.Sphere(2)
	elongated, err := s.Elongate(10, 0, 0)
	require.NoError(t, err)
	require.True(t, elongated.Contains(vec.Vec3{X: 6}))
	require.False(t, elongated.Contains(vec.Vec3{X: 8}))
	require.InDelta(t, s.Evaluate(vec.Vec3{}), elongated.Evaluate(vec.Vec3{}), 1e-9)
}

func TestElongateRejectsNegative(t *testing.T) {
	s, _ := sdf.Sphere(2)
	_, err := s.Elongate(-1, 0, 0)
	require.Error(t, err)
}
