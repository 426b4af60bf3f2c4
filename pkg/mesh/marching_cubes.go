package mesh

import (
	"github.com/google/uuid"

	"github.com/basswood/kerncad/pkg/sdf"
	"github.com/basswood/kerncad/pkg/vec"
)

// mcMaxCells caps nx*ny*nz so a careless resolution request can't allocate
// an unbounded grid. The cap is a 200-cell cube: 8M cells.
const mcMaxCells = 200 * 200 * 200

// cube corner offsets in the standard Lorensen-Cline numbering.
var mcCornerOffset = [8]vec.Vec3{
	{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
}

// mcEdgeCorners lists the two corner indices each of the 12 cube edges
// connects.
var mcEdgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// MarchingCubes triangulates the zero (or iso) surface of s over bounds
// (defaulting to s's own bounds padded by one voxel) at the given voxel
// resolution in mm. Vertices are linearly interpolated along cell edges
// and may be duplicated across adjacent cells.
func MarchingCubes(s sdf.Shape, resolution float64, bounds *sdf.Box3, iso float64) (*TriangleMesh, error) {
	if resolution <= 0 {
		return nil, &sdf.InvalidParameterError{Op: "MarchingCubes", Field: "resolution", Value: resolution, Why: "must be positive"}
	}

	box := s.Bounds()
	if bounds != nil {
		box = *bounds
	} else {
		box = box.Expand(resolution)
	}

	size := box.Max.Sub(box.Min)
	nx := int(size.X/resolution) + 1
	ny := int(size.Y/resolution) + 1
	nz := int(size.Z/resolution) + 1
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	if nz < 1 {
		nz = 1
	}
	cells := nx * ny * nz
	if cells > mcMaxCells {
		return nil, &sdf.NumericLimitError{Op: "MarchingCubes", Field: "cells", Value: cells, Limit: mcMaxCells}
	}

	// sample the (nx+1)*(ny+1)*(nz+1) corner grid once, up front.
	gx, gy, gz := nx+1, ny+1, nz+1
	vals := make([]float64, gx*gy*gz)
	idx := func(i, j, k int) int { return (k*gy+j)*gx + i }
	for k := 0; k < gz; k++ {
		for j := 0; j < gy; j++ {
			for i := 0; i < gx; i++ {
				p := vec.Vec3{
					X: box.Min.X + float64(i)*resolution,
					Y: box.Min.Y + float64(j)*resolution,
					Z: box.Min.Z + float64(k)*resolution,
				}
				vals[idx(i, j, k)] = s.Evaluate(p) - iso
			}
		}
	}

	m := &TriangleMesh{ID: uuid.New()}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				base := vec.Vec3{
					X: box.Min.X + float64(i)*resolution,
					Y: box.Min.Y + float64(j)*resolution,
					Z: box.Min.Z + float64(k)*resolution,
				}
				var cornerVal [8]float64
				var cornerPos [8]vec.Vec3
				for c := 0; c < 8; c++ {
					off := mcCornerOffset[c]
					ci, cj, ck := i+int(off.X), j+int(off.Y), k+int(off.Z)
					cornerVal[c] = vals[idx(ci, cj, ck)]
					cornerPos[c] = base.Add(off.Scale(resolution))
				}

				caseIdx := 0
				for c := 0; c < 8; c++ {
					if cornerVal[c] < 0 {
						caseIdx |= 1 << uint(c)
					}
				}
				if mcEdgeTable[caseIdx] == 0 {
					continue
				}

				var edgeVert [12]vec.Vec3
				for e := 0; e < 12; e++ {
					if mcEdgeTable[caseIdx]&(1<<uint(e)) == 0 {
						continue
					}
					a, b := mcEdgeCorners[e][0], mcEdgeCorners[e][1]
					edgeVert[e] = interpolateEdge(cornerPos[a], cornerVal[a], cornerPos[b], cornerVal[b])
				}

				tri := mcTriTable[caseIdx]
				for t := 0; t+2 < len(tri); t += 3 {
					v0, v1, v2 := edgeVert[tri[t]], edgeVert[tri[t+1]], edgeVert[tri[t+2]]
					n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
					base := uint32(len(m.Vertices))
					m.Vertices = append(m.Vertices, v0, v1, v2)
					m.Normals = append(m.Normals, n, n, n)
					m.Indices = append(m.Indices, base, base+1, base+2)
				}
			}
		}
	}
	return m, nil
}

// interpolateEdge finds the point on segment a-b where the scalar field
// crosses zero, by linear interpolation between the sampled corner values.
func interpolateEdge(a vec.Vec3, va float64, b vec.Vec3, vb float64) vec.Vec3 {
	if abs(va-vb) < 1e-12 {
		return a
	}
	t := va / (va - vb)
	return a.Lerp(b, t)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
