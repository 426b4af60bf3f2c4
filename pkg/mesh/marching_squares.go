package mesh

import (
	"fmt"
	"math"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
)

// msMaxCells mirrors mcMaxCells's role for the 2D grid.
const msMaxCells = 200 * 200

type msSegment struct {
	a, b vec.Vec2
}

// ExtractContours samples evaluator over rect at the given cell size,
// classifies each cell with marching squares, and stitches the resulting
// unordered segments into ordered ContourLoops by hashing endpoints to
// six-decimal precision.
func ExtractContours(evaluator func(vec.Vec2) float64, rect sdf.Box2, cellSize float64) ([]ContourLoop, error) {
	if cellSize <= 0 {
		return nil, &sdf.InvalidParameterError{Op: "ExtractContours", Field: "cellSize", Value: cellSize, Why: "must be positive"}
	}
	size := rect.Max.Sub(rect.Min)
	cols := int(size.X/cellSize) + 1
	rows := int(size.Y/cellSize) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols*rows > msMaxCells {
		return nil, &sdf.NumericLimitError{Op: "ExtractContours", Field: "cells", Value: cols * rows, Limit: msMaxCells}
	}

	gx, gy := cols+1, rows+1
	vals := make([]float64, gx*gy)
	idx := func(i, j int) int { return j*gx + i }
	for j := 0; j < gy; j++ {
		for i := 0; i < gx; i++ {
			p := vec.Vec2{X: rect.Min.X + float64(i)*cellSize, Y: rect.Min.Y + float64(j)*cellSize}
			vals[idx(i, j)] = evaluator(p)
		}
	}

	var segments []msSegment
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			x0, y0 := rect.Min.X+float64(i)*cellSize, rect.Min.Y+float64(j)*cellSize
			x1, y1 := x0+cellSize, y0+cellSize

			// corners in case-index order: bit0=bottom-left, bit1=bottom-right,
			// bit2=top-right, bit3=top-left.
			vBL, vBR := vals[idx(i, j)], vals[idx(i+1, j)]
			vTR, vTL := vals[idx(i+1, j+1)], vals[idx(i, j+1)]

			caseIdx := 0
			if vBL < 0 {
				caseIdx |= 1
			}
			if vBR < 0 {
				caseIdx |= 2
			}
			if vTR < 0 {
				caseIdx |= 4
			}
			if vTL < 0 {
				caseIdx |= 8
			}

			edgePoint := func(e int) vec.Vec2 {
				switch e {
				case 0: // bottom: BL-BR
					return lerp2(vec.Vec2{X: x0, Y: y0}, vBL, vec.Vec2{X: x1, Y: y0}, vBR)
				case 1: // right: BR-TR
					return lerp2(vec.Vec2{X: x1, Y: y0}, vBR, vec.Vec2{X: x1, Y: y1}, vTR)
				case 2: // top: TL-TR
					return lerp2(vec.Vec2{X: x0, Y: y1}, vTL, vec.Vec2{X: x1, Y: y1}, vTR)
				default: // left: BL-TL
					return lerp2(vec.Vec2{X: x0, Y: y0}, vBL, vec.Vec2{X: x0, Y: y1}, vTL)
				}
			}

			corners := [4]vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
			cornerVals := [4]float64{vBL, vBR, vTR, vTL}
			var insideCentroid vec.Vec2
			insideCount := 0.0
			for c := range corners {
				if cornerVals[c] < 0 {
					insideCentroid = insideCentroid.Add(corners[c])
					insideCount++
				}
			}
			if insideCount > 0 {
				insideCentroid = insideCentroid.Scale(1 / insideCount)
			}

			for _, seg := range msCaseTable[caseIdx] {
				p1, p2 := edgePoint(seg[0]), edgePoint(seg[1])
				// orient the segment so the inside region sits to its left,
				// making direction consistent across neighbouring cells
				// without needing a globally-agreed table order.
				if insideCount > 0 {
					d := p2.Sub(p1)
					left := vec.Vec2{X: -d.Y, Y: d.X}
					mid := p1.Add(p2).Scale(0.5)
					if left.Dot(insideCentroid.Sub(mid)) < 0 {
						p1, p2 = p2, p1
					}
				}
				segments = append(segments, msSegment{a: p1, b: p2})
			}
		}
	}

	return stitchLoops(segments), nil
}

func lerp2(a vec.Vec2, va float64, b vec.Vec2, vb float64) vec.Vec2 {
	if math.Abs(va-vb) < 1e-12 {
		return a
	}
	t := va / (va - vb)
	return a.Add(b.Sub(a).Scale(t))
}

func hashPoint(p vec.Vec2) string {
	return fmt.Sprintf("%.6f,%.6f", p.X, p.Y)
}

// stitchLoops builds an adjacency map from segment start-points to the
// indices of the segments starting there, then walks each unused segment forward
// through matching endpoints until no extension is possible.
func stitchLoops(segments []msSegment) []ContourLoop {
	used := make([]bool, len(segments))
	starts := make(map[string][]int) // hash(a) -> segment indices starting there
	for i, s := range segments {
		h := hashPoint(s.a)
		starts[h] = append(starts[h], i)
	}

	takeFrom := func(h string) (int, bool) {
		for _, i := range starts[h] {
			if !used[i] {
				return i, true
			}
		}
		return 0, false
	}

	var loops []ContourLoop
	for start := range segments {
		if used[start] {
			continue
		}
		used[start] = true
		points := []vec.Vec2{segments[start].a, segments[start].b}
		cur := segments[start].b
		for {
			next, ok := takeFrom(hashPoint(cur))
			if !ok {
				break
			}
			used[next] = true
			points = append(points, segments[next].b)
			cur = segments[next].b
		}
		closed := len(points) >= 3 && hashPoint(points[0]) == hashPoint(points[len(points)-1])
		if closed {
			points = points[:len(points)-1]
		}
		if len(points) >= 2 {
			loops = append(loops, ContourLoop{Points: points, Closed: closed})
		}
	}
	return loops
}
