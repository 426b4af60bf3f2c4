package sdf_test

import (
	"testing"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestChamferRemovesCornerWedge(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	chamfered, err := sdf.EdgeBreak(b, "top", "right", 1, sdf.Chamfer, "bevel_1")
	require.NoError(t, err)
	require.False(t, chamfered.Contains(vec.Vec3{X: 4.9, Y: 4.9}))
	require.True(t, chamfered.Contains(vec.Vec3{X: 4, Y: 4}))
	require.True(t, chamfered.Contains(vec.Vec3{X: 4.9, Y: 0}))
}

func TestChamferAddsNamedFaceAndEdges(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	chamfered, err := sdf.EdgeBreak(b, "top", "right", 1, sdf.Chamfer, "bevel_1")
	require.NoError(t, err)
	_, ok := chamfered.Face("bevel_1.face")
	require.True(t, ok)
	_, ok = chamfered.Edge("bevel_1.face", "top")
	require.True(t, ok)
	_, ok = chamfered.Edge("bevel_1.face", "right")
	require.True(t, ok)
	_, stillThere := chamfered.Edge("top", "right")
	require.False(t, stillThere)
}

func TestFilletRemovesCornerAndKeepsInterior(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	filleted, err := sdf.EdgeBreak(b, "top", "right", 1, sdf.Fillet, "round_1")
	require.NoError(t, err)
	require.False(t, filleted.Contains(vec.Vec3{X: 4.9, Y: 4.9}))
	require.True(t, filleted.Contains(vec.Vec3{X: 4, Y: 4}))
}

func TestEdgeBreakRejectsUnknownFace(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	_, err := sdf.EdgeBreak(b, "top", "nonexistent", 1, sdf.Chamfer)
	require.Error(t, err)
}

func TestEdgeBreakRejectsNonOrthogonalFaces(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	_, err := sdf.EdgeBreak(b, "top", "bottom", 1, sdf.Chamfer)
	require.Error(t, err)
}

func TestEdgeBreakRejectsNonPositiveSize(t *testing.T) {
	b, _ := sdf.Box(10, 10, 10)
	_, err := sdf.EdgeBreak(b, "top", "right", 0, sdf.Chamfer)
	require.Error(t, err)
}
