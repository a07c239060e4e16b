package icosphere

// Mesh is the contract shared by the dense and sparse icosphere
// representations.
type Mesh[T Vertex] interface {
	// Depth is the number of subdivisions from the regular icosahedron.
	Depth() int

	// Triangle returns the three vertex indices of the triangle at the
	// given index. Panics if the triangle has not been generated.
	Triangle(index int) [3]uint32

	// Vertices returns the vertex list. Triangle indices refer to
	// positions in this slice. The order is an artifact of construction
	// order; don't rely on it.
	Vertices() []T

	// TotalTriangleCount is the triangle count of a fully generated
	// mesh at this depth.
	TotalTriangleCount() int

	// TotalVertexCount is the vertex count of a fully generated mesh at
	// this depth.
	TotalVertexCount() int

	// AllocatedTriangleCount is the number of triangles actually in
	// memory. Equal to TotalTriangleCount for a dense mesh.
	AllocatedTriangleCount() int

	// AllocatedVertexCount is the number of vertices actually in
	// memory. Equal to TotalVertexCount for a dense mesh.
	AllocatedVertexCount() int

	// ApproximateTriangleSurfaceArea approximates the surface area of
	// one triangle for a sphere of the given radius.
	ApproximateTriangleSurfaceArea(radius float32) float32

	// SubdivideChunk subdivides previous.Triangle(parentIndex) into
	// four children starting at triangle index parentIndex*4 of this
	// mesh. The previous mesh's depth must be exactly one less than
	// this mesh's depth. Returns true if triangles were generated and
	// false if the chunk was already present.
	SubdivideChunk(previous Mesh[T], parentIndex int) bool

	// Subdivide returns a mesh one depth deeper. A dense mesh produces
	// a fully generated result; a sparse mesh subdivides only the
	// triangles currently present.
	Subdivide() Mesh[T]
}
