package feature_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basswood/kerncad/pkg/feature"
	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
)

func testBox(t *testing.T) sdf.Shape {
	t.Helper()
	box, err := sdf.Box(40, 30, 20)
	require.NoError(t, err)
	return box
}

func TestHoleBlindRemovesMaterialAtCenter(t *testing.T) {
	box := testBox(t)
	result, err := feature.Hole(box, "top", feature.HoleOptions{Diameter: 6, Depth: 10})
	require.NoError(t, err)

	require.Greater(t, result.Evaluate(vec.Vec3{X: 0, Y: 10, Z: 0}), 0.0)
	require.LessOrEqual(t, result.Evaluate(vec.Vec3{X: 0, Y: -10, Z: 0}), 0.0)
}

func TestHoleThroughRemovesMaterialAtBothFaces(t *testing.T) {
	box := testBox(t)
	result, err := feature.Hole(box, "top", feature.HoleOptions{Diameter: 6, Through: true})
	require.NoError(t, err)

	require.Greater(t, result.Evaluate(vec.Vec3{X: 0, Y: 14, Z: 0}), 0.0)
	require.Greater(t, result.Evaluate(vec.Vec3{X: 0, Y: -14, Z: 0}), 0.0)
}

func TestHoleOffCenterOffsetsAlongFacePlane(t *testing.T) {
	box := testBox(t)
	at := vec.Vec2{X: 10, Y: 0}
	result, err := feature.Hole(box, "top", feature.HoleOptions{Diameter: 4, Depth: 10, At: &at})
	require.NoError(t, err)

	require.Greater(t, result.Evaluate(vec.Vec3{X: 10, Y: 14, Z: 0}), 0.0)
	require.LessOrEqual(t, result.Evaluate(vec.Vec3{X: -10, Y: 14, Z: 0}), 0.0)
}

func TestHoleRejectsNonPositiveDiameter(t *testing.T) {
	box := testBox(t)
	_, err := feature.Hole(box, "top", feature.HoleOptions{Diameter: 0, Depth: 10})
	require.Error(t, err)
}

func TestHoleRejectsUnknownFace(t *testing.T) {
	box := testBox(t)
	_, err := feature.Hole(box, "nonexistent", feature.HoleOptions{Diameter: 4, Depth: 10})
	require.Error(t, err)
}

func TestPocketRemovesRectangularRegion(t *testing.T) {
	box := testBox(t)
	result, err := feature.Pocket(box, "top", feature.PocketOptions{Width: 10, Length: 6, Depth: 5})
	require.NoError(t, err)

	require.Greater(t, result.Evaluate(vec.Vec3{X: 0, Y: 14, Z: 0}), 0.0)
	require.LessOrEqual(t, result.Evaluate(vec.Vec3{X: 0, Y: 0, Z: 0}), 0.0)
}

func TestPocketOnSideFaceNeedsNoRotationToAlignWithNormal(t *testing.T) {
	box := testBox(t)
	result, err := feature.Pocket(box, "right", feature.PocketOptions{Width: 6, Length: 6, Depth: 5})
	require.NoError(t, err)
	require.Greater(t, result.Evaluate(vec.Vec3{X: 19, Y: 0, Z: 0}), 0.0)
}

func TestPocketRejectsNonPositiveDimensions(t *testing.T) {
	box := testBox(t)
	_, err := feature.Pocket(box, "top", feature.PocketOptions{Width: 0, Length: 6, Depth: 5})
	require.Error(t, err)
}

func TestBoltCircleCutsCountHoles(t *testing.T) {
	box := testBox(t)
	result, err := feature.BoltCircle(box, "top", feature.BoltCircleOptions{
		Count: 4, BoltCircleDiameter: 20, HoleDiameter: 3, Depth: 10,
	})
	require.NoError(t, err)

	require.Greater(t, result.Evaluate(vec.Vec3{X: 10, Y: 14, Z: 0}), 0.0)
	require.Greater(t, result.Evaluate(vec.Vec3{X: -10, Y: 14, Z: 0}), 0.0)
	require.Greater(t, result.Evaluate(vec.Vec3{X: 0, Y: 14, Z: 10}), 0.0)
	require.Greater(t, result.Evaluate(vec.Vec3{X: 0, Y: 14, Z: -10}), 0.0)
}

func TestBoltCircleRejectsNonPositiveCount(t *testing.T) {
	box := testBox(t)
	_, err := feature.BoltCircle(box, "top", feature.BoltCircleOptions{
		Count: 0, BoltCircleDiameter: 20, HoleDiameter: 3, Depth: 10,
	})
	require.Error(t, err)
}

func TestChamferCutsTheReferencedEdge(t *testing.T) {
	box := testBox(t)
	result, err := feature.Chamfer(box, "front.top", 2)
	require.NoError(t, err)

	corner := vec.Vec3{X: 0, Y: 15 - 0.5, Z: 10 - 0.5}
	require.Greater(t, result.Evaluate(corner), box.Evaluate(corner))
}

func TestFilletCutsTheReferencedEdge(t *testing.T) {
	box := testBox(t)
	result, err := feature.Fillet(box, "front.top", 2)
	require.NoError(t, err)

	corner := vec.Vec3{X: 0, Y: 15 - 0.3, Z: 10 - 0.3}
	require.Greater(t, result.Evaluate(corner), box.Evaluate(corner))
}

func TestChamferRejectsUnknownEdge(t *testing.T) {
	box := testBox(t)
	_, err := feature.Chamfer(box, "nonexistent.edge", 2)
	require.Error(t, err)
}
