package sdf

import (
	"math"

	"github.com/basswood/kerncad/pkg/vec"
)

const (
	rootFinderMinStepFraction = 1e-6
	rootFinderDefaultMaxIter  = 512
	rootFinderBisectIter      = 64
)

// FindSurface sphere-traces from origin along direction, searching for the
// first zero crossing of Evaluate between t=tMin and t=tMax, then narrows
// it with bisection to within tol. It returns (nil, nil) if no crossing is
// found in range, and fails only if direction has zero length.
func (s Shape) FindSurface(origin, direction vec.Vec3, tMin, tMax, tol float64) (*float64, error) {
	if direction.Length() == 0 {
		return nil, &NumericLimitError{Op: "FindSurface", Field: "direction", Value: direction, Limit: "nonzero length"}
	}
	dir := direction.Normalize()
	minStep := rootFinderMinStepFraction * (tMax - tMin)

	t := tMin
	prev := s.Evaluate(origin.Add(dir.Scale(t)))
	for iter := 0; iter < rootFinderDefaultMaxIter && t < tMax; iter++ {
		step := math.Max(math.Abs(prev), minStep)
		next := math.Min(t+step, tMax)
		val := s.Evaluate(origin.Add(dir.Scale(next)))

		if (prev <= 0) != (val <= 0) {
			root := bisect(func(tt float64) float64 {
				return s.Evaluate(origin.Add(dir.Scale(tt)))
			}, t, next, tol)
			return &root, nil
		}
		t, prev = next, val
		if next >= tMax {
			break
		}
	}
	return nil, nil
}

func bisect(f func(float64) float64, lo, hi, tol float64) float64 {
	flo := f(lo)
	for i := 0; i < rootFinderBisectIter && hi-lo > tol; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if (fm <= 0) == (flo <= 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// DropCutter scans downward along the spindle axis — Y, under this
// kernel's Y-up convention (see pkg/gcode for the Y<->Z swap applied only
// at the CNC emission boundary) — at horizontal position (x, z), searching
// for the first contact between yTop and yBottom. It returns the
// spindle-axis coordinate of that contact (the ball-centre height when s
// is a Round(child, toolRadius) offset surface — see pkg/cam), or nil if
// the tool never touches the surface in range.
func (s Shape) DropCutter(x, z, yTop, yBottom, tol float64) (*float64, error) {
	origin := vec.Vec3{X: x, Y: yTop, Z: z}
	direction := vec.Vec3{Y: -1}
	t, err := s.FindSurface(origin, direction, 0, yTop-yBottom, tol)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	y := yTop - *t
	return &y, nil
}
