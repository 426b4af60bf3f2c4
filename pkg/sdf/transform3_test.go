package sdf_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestTranslateShiftsEvaluateAndFaceOrigins(t *testing.T) {
	s, _ := sdf.Sphere(1)
	moved := s.Translate(5, 0, 0)
	require.InDelta(t, 0.0, moved.Evaluate(vec.Vec3{X: 6}), 1e-9)
	require.InDelta(t, -1.0, moved.Evaluate(vec.Vec3{X: 5}), 1e-9)
	require.Equal(t, vec.Vec3{X: 5}, moved.Faces()[0].Origin)
}

func TestAtIsAliasOfTranslate(t *testing.T) {
	s, _ := sdf.Sphere(1)
	require.Equal(t, s.Translate(1, 2, 3).Evaluate(vec.Vec3{}), s.At(1, 2, 3).Evaluate(vec.Vec3{}))
}

func TestRotateZMovesBoxFace(t *testing.T) {
	b, _ := sdf.Box(10, 4, 4)
	rotated := b.RotateZ(90)
	f, ok := rotated.Face("right")
	require.True(t, ok)
	require.InDelta(t, 0.0, f.Normal.X, 1e-9)
	require.InDelta(t, 1.0, f.Normal.Y, 1e-9)
}

func TestRotateFullTurnMatchesOriginal(t *testing.T) {
	b, _ := sdf.Box(10, 4, 6)
	rotated := b.RotateY(360)
	p := vec.Vec3{X: 3, Y: 1, Z: -2}
	require.InDelta(t, b.Evaluate(p), rotated.Evaluate(p), 1e-6)
}

func TestScaleGrowsShape(t *testing.T) {
	s, _ := sdf.Sphere(1)
	grown, err := s.Scale(2)
	require.NoError(t, err)
	require.InDelta(t, 0.0, grown.Evaluate(vec.Vec3{X: 2}), 1e-9)
	require.InDelta(t, -2.0, grown.Evaluate(vec.Vec3{}), 1e-9)
}

func TestScaleRejectsNonPositiveFactor(t *testing.T) {
	s, _ := sdf.Sphere(1)
	_, err := s.Scale(0)
	require.Error(t, err)
	_, err = s.Scale(-1)
	require.Error(t, err)
}

func TestMirrorReflectsEvaluate(t *testing.T) {
	b, _ := sdf.Box(10, 4, 4)
	moved := b.Translate(20, 0, 0)
	mirrored := moved.Mirror(sdf.AxisX)
	require.InDelta(t, moved.Evaluate(vec.Vec3{X: 20}), mirrored.Evaluate(vec.Vec3{X: -20}), 1e-9)
}

func TestMirrorKeepsChildFaceNames(t *testing.T) {
	b, _ := sdf.Box(10, 4, 4)
	mirrored := b.Mirror(sdf.AxisX)
	require.ElementsMatch(t, b.Faces(), mirrored.Faces())
}
