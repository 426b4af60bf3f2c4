package sdf_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestFindSurfaceHitsSphere(t *testing.T) {
	s, _ := sdf.Sphere(5)
	root, err := s.FindSurface(vec.Vec3{X: -20}, vec.Vec3{X: 1}, 0, 40, 1e-6)
	require.NoError(t, err)
	require.NotNil(t, root)
	require.InDelta(t, 15.0, *root, 1e-4)
}

func TestFindSurfaceMissesWhenOutOfRange(t *testing.T) {
	s, _ := sdf.Sphere(5)
	root, err := s.FindSurface(vec.Vec3{X: -20}, vec.Vec3{X: 1}, 0, 10, 1e-6)
	require.NoError(t, err)
	require.Nil(t, root)
}

func TestFindSurfaceRejectsZeroDirection(t *testing.T) {
	s, _ := sdf.Sphere(5)
	_, err := s.FindSurface(vec.Vec3{}, vec.Vec3{}, 0, 10, 1e-6)
	require.Error(t, err)
}

func TestDropCutterFindsFlatTop(t *testing.T) {
	block, _ := sdf.Box(100, 20, 100)
	y, err := block.DropCutter(0, 0, 50, -50, 1e-6)
	require.NoError(t, err)
	require.NotNil(t, y)
	require.InDelta(t, 10.0, *y, 1e-4)
}

func TestDropCutterMissesBeyondBlock(t *testing.T) {
	block, _ := sdf.Box(20, 20, 20)
	y, err := block.DropCutter(100, 100, 50, -50, 1e-6)
	require.NoError(t, err)
	require.Nil(t, y)
}
