// Package icosphere builds sphere meshes by recursively subdividing a
// regular icosahedron and addresses the resulting triangles as chunks
// for progressive, level-of-detail rendering.
package icosphere

import gomath "math"

// VertexCount returns the total number of vertices in an icosphere at
// the given binning depth: 10*4^depth + 2.
func VertexCount(depth int) int {
	return 10*(1<<(2*depth)) + 2
}

// TriangleCount returns the total number of triangles in an icosphere
// at the given binning depth: 20*4^depth.
func TriangleCount(depth int) int {
	return 20 * (1 << (2 * depth))
}

// ApproximateTriangleSurfaceArea divides the sphere's surface area by
// the triangle count. The triangles of an icosphere are close to but
// not exactly uniform, so this is an approximation.
func ApproximateTriangleSurfaceArea(depth int, radius float32) float32 {
	return (4 * gomath.Pi * radius * radius) / float32(TriangleCount(depth))
}
