// Package cam generates ball-nose parallel-raster surfacing toolpaths
// directly from an SDF, by offsetting the shape by the tool radius and
// drop-cutting along the spindle axis at each raster point.
package cam

import (
	"math"

	"github.com/google/uuid"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
)

// RasterDirection names the horizontal axis the raster strips run along.
// The kernel's spindle axis is Y (see pkg/sdf's coordinate convention), so
// the raster plane is XZ — {x,z}, not the {x,y} a Z-up kernel would use.
type RasterDirection string

const (
	DirectionX RasterDirection = "x"
	DirectionZ RasterDirection = "z"
)

// ToolDefinition describes the ball-nose cutter.
type ToolDefinition struct {
	Radius float64
}

// Params configures a raster surfacing pass. Zero-valued optional fields
// are resolved to their documented defaults by normalize before use.
type Params struct {
	Direction       RasterDirection
	StepoverPct     float64 // stepover as a percentage of tool diameter
	PointSpacing    float64 // mm along the primary axis; 0 => stepover distance
	FeedRate        float64 // mm/min
	PlungeRate      float64 // mm/min; 0 => FeedRate/3
	RPM             float64
	SafeZ           float64
	ApproachZ       float64
	ZTop            float64
	ZBottom         float64
	Zigzag          *bool   // nil => true
	BoundaryOvercut float64 // mm; 0 => tool radius
}

const findSurfaceTolerance = 1e-4

func (p Params) stepover(tool ToolDefinition) float64 {
	return 2 * tool.Radius * p.StepoverPct / 100
}

func (p Params) normalize(tool ToolDefinition) Params {
	out := p
	if out.PointSpacing == 0 {
		out.PointSpacing = out.stepover(tool)
	}
	if out.PlungeRate == 0 {
		out.PlungeRate = out.FeedRate / 3
	}
	if out.Zigzag == nil {
		t := true
		out.Zigzag = &t
	}
	if out.BoundaryOvercut == 0 {
		out.BoundaryOvercut = tool.Radius
	}
	return out
}

// MotionKind is the G-code motion mode a ToolpathPoint is emitted as.
type MotionKind string

const (
	Rapid  MotionKind = "rapid"
	Cut    MotionKind = "cut"
	Plunge MotionKind = "plunge"
)

// ToolpathPoint is one motion command: a position and the mode that moves
// the tool there from the previous point.
type ToolpathPoint struct {
	Position vec.Vec3
	Kind     MotionKind
}

// SpindleBounds reports the range of spindle-axis coordinates the tool
// actually touched while cutting.
type SpindleBounds struct {
	Min, Max float64
}

// ToolpathResult is the full output of a raster surfacing pass.
type ToolpathResult struct {
	ID               uuid.UUID
	Points           []ToolpathPoint
	CutDistance      float64
	RapidDistance    float64
	PassCount        int
	EstimatedMinutes float64
	CutBounds        SpindleBounds
}

// GenerateRasterSurfacing walks a parallel raster over s's horizontal
// footprint, drop-cutting a ball-nose tool of the given definition against
// the R-offset surface at every raster point.
func GenerateRasterSurfacing(s sdf.Shape, tool ToolDefinition, params Params) (*ToolpathResult, error) {
	if tool.Radius <= 0 {
		return nil, &sdf.InvalidParameterError{Op: "GenerateRasterSurfacing", Field: "tool.Radius", Value: tool.Radius, Why: "must be positive"}
	}
	if params.StepoverPct <= 0 {
		return nil, &sdf.InvalidParameterError{Op: "GenerateRasterSurfacing", Field: "StepoverPct", Value: params.StepoverPct, Why: "must be positive"}
	}
	p := params.normalize(tool)
	if p.PointSpacing <= 0 {
		return nil, &sdf.InvalidParameterError{Op: "GenerateRasterSurfacing", Field: "PointSpacing", Value: p.PointSpacing, Why: "must be positive"}
	}
	stepover := p.stepover(tool)
	if stepover <= 0 {
		return nil, &sdf.InvalidParameterError{Op: "GenerateRasterSurfacing", Field: "StepoverPct", Value: params.StepoverPct, Why: "must yield a positive stepover"}
	}

	offset := s.Round(tool.Radius)
	bounds := s.Bounds()
	primaryMin, primaryMax, secondaryMin, secondaryMax := rasterRect(bounds, p)

	result := &ToolpathResult{ID: uuid.New()}
	var last *vec.Vec3
	haveCutBounds := false

	strips := walkInclusive(secondaryMin, secondaryMax, stepover)
	for stripIdx, secondary := range strips {
		primarySteps := walkInclusive(primaryMin, primaryMax, p.PointSpacing)
		if *p.Zigzag && stripIdx%2 == 1 {
			reverse(primarySteps)
		}

		first := true
		cutAny := false
		for _, primary := range primarySteps {
			x, z := horizontalPosition(p.Direction, primary, secondary)
			ac, err := offset.DropCutter(x, z, p.ZTop, p.ZBottom, findSurfaceTolerance)
			if err != nil {
				return nil, err
			}
			if ac == nil {
				continue // air: the tool never reaches the surface here
			}
			tipY := *ac - tool.Radius
			cutAny = true

			if first {
				appendPoint(result, &last, vec.Vec3{X: x, Y: p.SafeZ, Z: z}, Rapid)
				appendPoint(result, &last, vec.Vec3{X: x, Y: p.ApproachZ, Z: z}, Rapid)
				appendPoint(result, &last, vec.Vec3{X: x, Y: tipY, Z: z}, Plunge)
				first = false
			} else {
				appendPoint(result, &last, vec.Vec3{X: x, Y: tipY, Z: z}, Cut)
			}
			if !haveCutBounds {
				result.CutBounds = SpindleBounds{Min: tipY, Max: tipY}
				haveCutBounds = true
			} else {
				result.CutBounds = extendSpindleBounds(result.CutBounds, tipY)
			}
		}

		if cutAny {
			appendPoint(result, &last, vec.Vec3{X: last.X, Y: p.SafeZ, Z: last.Z}, Rapid)
			result.PassCount++
		}
	}

	result.EstimatedMinutes = round2(result.CutDistance/p.FeedRate + result.RapidDistance/15000)
	return result, nil
}

// rasterRect derives the primary/secondary axis extents from bounds,
// expanded by the boundary overcut.
func rasterRect(bounds sdf.Box3, p Params) (primaryMin, primaryMax, secondaryMin, secondaryMax float64) {
	xMin, xMax := bounds.Min.X-p.BoundaryOvercut, bounds.Max.X+p.BoundaryOvercut
	zMin, zMax := bounds.Min.Z-p.BoundaryOvercut, bounds.Max.Z+p.BoundaryOvercut
	if p.Direction == DirectionX {
		return xMin, xMax, zMin, zMax
	}
	return zMin, zMax, xMin, xMax
}

// horizontalPosition maps a (primary, secondary) raster coordinate pair
// back to world (x, z) given which axis is primary.
func horizontalPosition(dir RasterDirection, primary, secondary float64) (x, z float64) {
	if dir == DirectionX {
		return primary, secondary
	}
	return secondary, primary
}

// walkInclusive returns min, min+step, ... up to and including the last
// value ≤ max+1e-9, per the raster tie-break policy.
func walkInclusive(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var out []float64
	for v := min; v <= max+1e-9; v += step {
		out = append(out, v)
	}
	return out
}

func reverse(vs []float64) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

func appendPoint(r *ToolpathResult, last **vec.Vec3, p vec.Vec3, kind MotionKind) {
	if *last != nil {
		d := p.Sub(**last).Length()
		if kind == Rapid {
			r.RapidDistance += d
		} else {
			r.CutDistance += d
		}
	}
	r.Points = append(r.Points, ToolpathPoint{Position: p, Kind: kind})
	pCopy := p
	*last = &pCopy
}

func extendSpindleBounds(b SpindleBounds, y float64) SpindleBounds {
	return SpindleBounds{Min: math.Min(b.Min, y), Max: math.Max(b.Max, y)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
