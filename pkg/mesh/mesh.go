// Package mesh extracts triangulated surfaces and 2D contours from the SDF
// expression graph in pkg/sdf: marching cubes for a TriangleMesh, marching
// squares plus loop stitching for a slice of ContourLoops.
package mesh

import (
	"github.com/google/uuid"

	"github.com/basswood/kerncad/pkg/vec"
)

// TriangleMesh is a triangle mesh suitable for rendering or STL export.
// Vertices/Normals are one entry per vertex; Indices has three entries per
// triangle. Vertices may be duplicated across adjacent marching-cubes
// cells — acceptable for viewing and STL, per the extraction algorithm.
type TriangleMesh struct {
	ID       uuid.UUID
	Vertices []vec.Vec3
	Normals  []vec.Vec3
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *TriangleMesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *TriangleMesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the mesh has no geometry.
func (m *TriangleMesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// ContourLoop is an ordered sequence of 2D points produced by stitching
// marching-squares segments, plus whether the traversal closed back on
// its starting point.
type ContourLoop struct {
	Points []vec.Vec2
	Closed bool
}
