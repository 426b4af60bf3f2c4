package mesh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basswood/kerncad/pkg/mesh"
	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
)

func TestExtractContoursCircleYieldsOneClosedLoop(t *testing.T) {
	circle, _ := sdf.Circle2D(10)
	rect := sdf.Box2{Min: vec.Vec2{X: -15, Y: -15}, Max: vec.Vec2{X: 15, Y: 15}}
	loops, err := mesh.ExtractContours(circle.Evaluate, rect, 0.5)
	require.NoError(t, err)
	require.Len(t, loops, 1)
	require.True(t, loops[0].Closed)
	for _, p := range loops[0].Points {
		r := math.Hypot(p.X, p.Y)
		require.InDelta(t, 10.0, r, 0.5)
	}
}

func TestExtractContoursRectangleYieldsOneClosedLoop(t *testing.T) {
	r, _ := sdf.Rect2D(20, 10)
	rect := sdf.Box2{Min: vec.Vec2{X: -15, Y: -10}, Max: vec.Vec2{X: 15, Y: 10}}
	loops, err := mesh.ExtractContours(r.Evaluate, rect, 0.5)
	require.NoError(t, err)
	require.Len(t, loops, 1)
	require.True(t, loops[0].Closed)
}

func TestExtractContoursRectangleWithHoleYieldsTwoLoops(t *testing.T) {
	outer, _ := sdf.Rect2D(20, 20)
	hole, _ := sdf.Circle2D(4)
	ring := holeField(outer, hole)
	rect := sdf.Box2{Min: vec.Vec2{X: -12, Y: -12}, Max: vec.Vec2{X: 12, Y: 12}}
	loops, err := mesh.ExtractContours(ring, rect, 0.5)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(loops), 2)
}

func holeField(outer, hole sdf.Shape2) func(vec.Vec2) float64 {
	return func(p vec.Vec2) float64 {
		return math.Max(outer.Evaluate(p), -hole.Evaluate(p))
	}
}

func TestExtractContoursAlwaysOutsideYieldsNoLoops(t *testing.T) {
	circle, _ := sdf.Circle2D(1)
	rect := sdf.Box2{Min: vec.Vec2{X: 100, Y: 100}, Max: vec.Vec2{X: 110, Y: 110}}
	loops, err := mesh.ExtractContours(circle.Evaluate, rect, 1)
	require.NoError(t, err)
	require.Len(t, loops, 0)
}

func TestExtractContoursRejectsNonPositiveCellSize(t *testing.T) {
	circle, _ := sdf.Circle2D(1)
	rect := sdf.Box2{Min: vec.Vec2{X: -2, Y: -2}, Max: vec.Vec2{X: 2, Y: 2}}
	_, err := mesh.ExtractContours(circle.Evaluate, rect, 0)
	require.Error(t, err)
}
