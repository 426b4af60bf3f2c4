package cam_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basswood/kerncad/pkg/cam"
	"github.com/basswood/kerncad/pkg/sdf"
)

func flatBoxParams() cam.Params {
	return cam.Params{
		Direction:   cam.DirectionX,
		StepoverPct: 50,
		FeedRate:    2000,
		RPM:         10000,
		SafeZ:       20,
		ApproachZ:   5,
		ZTop:        20,
		ZBottom:     -5,
	}
}

func TestGenerateRasterSurfacingFlatBoxCutsAtExpectedHeight(t *testing.T) {
	box, _ := sdf.Box(40, 10, 40)
	tool := cam.ToolDefinition{Radius: 3}
	result, err := cam.GenerateRasterSurfacing(box, tool, flatBoxParams())
	require.NoError(t, err)
	require.NotEmpty(t, result.Points)

	for _, pt := range result.Points {
		if pt.Kind == cam.Cut || pt.Kind == cam.Plunge {
			// Over the top face the tip sits at y=5; in the boundary overcut
			// beyond the 20 mm half-widths the ball rolls over the top edge.
			dx := math.Max(math.Abs(pt.Position.X)-20, 0)
			dz := math.Max(math.Abs(pt.Position.Z)-20, 0)
			want := 5 + math.Sqrt(9-dx*dx-dz*dz) - 3
			require.InDelta(t, want, pt.Position.Y, 1e-3)
		}
	}
	require.Greater(t, result.PassCount, 0)
	require.Greater(t, result.CutDistance, 0.0)
	require.Greater(t, result.RapidDistance, 0.0)
	require.Greater(t, result.EstimatedMinutes, 0.0)
}

func TestGenerateRasterSurfacingZigzagAlternatesDirection(t *testing.T) {
	box, _ := sdf.Box(40, 10, 40)
	tool := cam.ToolDefinition{Radius: 3}
	result, err := cam.GenerateRasterSurfacing(box, tool, flatBoxParams())
	require.NoError(t, err)

	var plungeXs []float64
	for _, pt := range result.Points {
		if pt.Kind == cam.Plunge {
			plungeXs = append(plungeXs, pt.Position.X)
		}
	}
	require.GreaterOrEqual(t, len(plungeXs), 2)
	require.NotEqual(t, plungeXs[0], plungeXs[1])
}

func TestGenerateRasterSurfacingRejectsNonPositiveToolRadius(t *testing.T) {
	box, _ := sdf.Box(40, 10, 40)
	_, err := cam.GenerateRasterSurfacing(box, cam.ToolDefinition{Radius: 0}, flatBoxParams())
	require.Error(t, err)
}

func TestGenerateRasterSurfacingRejectsNonPositiveStepover(t *testing.T) {
	box, _ := sdf.Box(40, 10, 40)
	p := flatBoxParams()
	p.StepoverPct = 0
	_, err := cam.GenerateRasterSurfacing(box, cam.ToolDefinition{Radius: 3}, p)
	require.Error(t, err)
}

func TestGenerateRasterSurfacingSkipsAirAroundSmallShape(t *testing.T) {
	sphere, _ := sdf.Sphere(5)
	tool := cam.ToolDefinition{Radius: 2}
	p := cam.Params{
		Direction: cam.DirectionX, StepoverPct: 50, FeedRate: 1000,
		RPM: 8000, SafeZ: 20, ApproachZ: 8, ZTop: 20, ZBottom: -20,
		BoundaryOvercut: 1,
	}
	result, err := cam.GenerateRasterSurfacing(sphere, tool, p)
	require.NoError(t, err)
	require.NotEmpty(t, result.Points)
	require.GreaterOrEqual(t, result.CutBounds.Min, -5.0-2-1e-6)
	require.LessOrEqual(t, result.CutBounds.Max, 5.0+2+1e-6)
}
