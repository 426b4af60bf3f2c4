package sdf_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestCircle2DEvaluate(t *testing.T) {
	c, err := sdf.Circle2D(3)
	require.NoError(t, err)
	require.InDelta(t, -3.0, c.Evaluate(vec.Vec2{}), 1e-9)
	require.InDelta(t, 0.0, c.Evaluate(vec.Vec2{X: 3}), 1e-9)
}

func TestCircle2DRejectsNonPositive(t *testing.T) {
	_, err := sdf.Circle2D(0)
	require.Error(t, err)
}

func TestRect2DEvaluate(t *testing.T) {
	r, err := sdf.Rect2D(10, 4)
	require.NoError(t, err)
	require.InDelta(t, 0.0, r.Evaluate(vec.Vec2{X: 5}), 1e-9)
	require.InDelta(t, -2.0, r.Evaluate(vec.Vec2{}), 1e-9)
}

func TestPolygonApproximatesRect(t *testing.T) {
	poly, err := sdf.Polygon([]vec.Vec2{
		{X: -5, Y: -2}, {X: 5, Y: -2}, {X: 5, Y: 2}, {X: -5, Y: 2},
	})
	require.NoError(t, err)
	rect, _ := sdf.Rect2D(10, 4)
	p := vec.Vec2{X: 3, Y: 1}
	require.InDelta(t, rect.Evaluate(p), poly.Evaluate(p), 1e-9)
}

func TestPolygonRejectsTooFewPoints(t *testing.T) {
	_, err := sdf.Polygon([]vec.Vec2{{}, {X: 1}})
	require.Error(t, err)
}

func TestExtrudeEquivalentToBox(t *testing.T) {
	rect, _ := sdf.Rect2D(10, 20)
	extruded, err := rect.Extrude(30)
	require.NoError(t, err)
	box, _ := sdf.Box(10, 30, 20)
	for _, p := range []vec.Vec3{{}, {X: 4, Y: 10, Z: 9}, {X: 20, Y: 40, Z: 30}} {
		require.InDelta(t, box.Evaluate(p), extruded.Evaluate(p), 1e-9)
	}
}

func TestExtrudeRejectsNonPositiveHeight(t *testing.T) {
	rect, _ := sdf.Rect2D(10, 20)
	_, err := rect.Extrude(0)
	require.Error(t, err)
}

func TestRevolveEquivalentToTorus(t *testing.T) {
	// Revolve sweeps around Y (the spindle axis); Torus is built axis-Z
	// like the other primitives, so the two only line up once Y and Z
	// are swapped between them.
	circle, _ := sdf.Circle2D(2)
	revolved, err := circle.Revolve(10)
	require.NoError(t, err)
	torus, _ := sdf.Torus(10, 2)
	for _, p := range []vec.Vec3{{}, {X: 12}, {X: 8, Y: 3, Z: 1}} {
		swapped := vec.Vec3{X: p.X, Y: p.Z, Z: p.Y}
		require.InDelta(t, torus.Evaluate(swapped), revolved.Evaluate(p), 1e-6)
	}
}

func TestRevolveRejectsNegativeOffset(t *testing.T) {
	circle, _ := sdf.Circle2D(2)
	_, err := circle.Revolve(-1)
	require.Error(t, err)
}
