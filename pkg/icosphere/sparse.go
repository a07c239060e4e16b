package icosphere

import "fmt"

// Sparse is an icosphere that stores only the triangles and vertices
// actually requested. A sparse mesh starts empty and is generated one
// chunk at a time; absence of a triangle index means "not yet built",
// not an error. Generation cost is proportional to the chunks
// demanded, not to the full mesh at this depth.
type Sparse[T Vertex] struct {
	// vertices are appended as chunks demand them, so the order is an
	// artifact of generation order.
	vertices []T

	// triangles is keyed by the same index scheme a dense mesh uses:
	// the four children of parent triangle i live at keys i*4..i*4+4.
	// Only generated keys are present.
	triangles map[int][3]uint32

	// neighbors maps a vertex index to the set of directly connected
	// vertex indices generated so far.
	neighbors map[int]map[int]struct{}

	depth int

	// midpoints deduplicates the shared midpoint of an edge when two
	// adjacent chunks are generated independently. Keys are
	// canonicalized index pairs of this mesh's vertices.
	midpoints map[[2]int]int

	// previousVertices maps a parent-depth vertex index to its index
	// in this mesh, so a corner shared between sibling chunks is
	// copied at most once.
	previousVertices map[uint32]int

	newVertex Factory[T]
}

// NewSparse creates an empty (not yet generated) sparse icosphere at
// the given depth.
func NewSparse[T Vertex](depth int, newVertex Factory[T]) *Sparse[T] {
	return &Sparse[T]{
		triangles:        make(map[int][3]uint32),
		neighbors:        make(map[int]map[int]struct{}),
		depth:            depth,
		midpoints:        make(map[[2]int]int),
		previousVertices: make(map[uint32]int),
		newVertex:        newVertex,
	}
}

// NewFilledSparse creates a fully generated sparse icosphere at the
// given depth.
func NewFilledSparse[T Vertex](depth int, newVertex Factory[T]) *Sparse[T] {
	return SparseFromDense(NewDense(depth, newVertex))
}

// SparseFromDense converts a dense icosphere into an equivalent sparse
// one that happens to be fully generated. The dense mesh's storage is
// taken over; don't use it afterwards.
func SparseFromDense[T Vertex](dense *Dense[T]) *Sparse[T] {
	triangles := make(map[int][3]uint32, len(dense.triangles))
	for index, tri := range dense.triangles {
		triangles[index] = tri
	}

	return &Sparse[T]{
		vertices:  dense.vertices,
		triangles: triangles,
		neighbors: dense.neighbors,
		depth:     dense.depth,
		midpoints: dense.midpoints,
		// Everything was generated in one pass, so there is no parent
		// mesh to map vertices from.
		previousVertices: make(map[uint32]int),
		newVertex:        dense.newVertex,
	}
}

// Depth returns the number of subdivisions from the regular icosahedron.
func (m *Sparse[T]) Depth() int {
	return m.depth
}

// Triangle returns the vertex indices of the triangle at the given
// index. Panics if the triangle has not been generated yet.
func (m *Sparse[T]) Triangle(index int) [3]uint32 {
	tri, ok := m.triangles[index]
	if !ok {
		panic(fmt.Sprintf("icosphere: triangle %d has not been generated", index))
	}
	return tri
}

// Vertices returns the vertices generated so far.
func (m *Sparse[T]) Vertices() []T {
	return m.vertices
}

// TotalTriangleCount returns the triangle count of a fully generated
// mesh at this depth.
func (m *Sparse[T]) TotalTriangleCount() int {
	return TriangleCount(m.depth)
}

// TotalVertexCount returns the vertex count of a fully generated mesh
// at this depth.
func (m *Sparse[T]) TotalVertexCount() int {
	return VertexCount(m.depth)
}

// AllocatedTriangleCount returns the number of triangles generated so far.
func (m *Sparse[T]) AllocatedTriangleCount() int {
	return len(m.triangles)
}

// AllocatedVertexCount returns the number of vertices generated so far.
func (m *Sparse[T]) AllocatedVertexCount() int {
	return len(m.vertices)
}

// ApproximateTriangleSurfaceArea approximates one triangle's surface
// area for a sphere of the given radius.
func (m *Sparse[T]) ApproximateTriangleSurfaceArea(radius float32) float32 {
	return ApproximateTriangleSurfaceArea(m.depth, radius)
}

// Neighbors returns the set of vertex indices directly connected to
// the given vertex, as generated so far. The returned map is the
// mesh's own storage; treat it as read-only.
func (m *Sparse[T]) Neighbors(vertexIndex int) map[int]struct{} {
	return m.neighbors[vertexIndex]
}

// SubdivideChunk subdivides previous.Triangle(parentIndex) into four
// children stored at triangle indices parentIndex*4..+4 of this mesh.
//
// Panics if the previous mesh's depth is not exactly one less than
// this mesh's depth. Idempotent: if the mesh is already fully
// generated, or the chunk's first child is already present, nothing
// happens and false is returned. Presence of the first child is
// taken as proof the whole chunk was generated; partial chunks are
// not representable.
func (m *Sparse[T]) SubdivideChunk(previous Mesh[T], parentIndex int) bool {
	if previous.Depth()+1 != m.depth {
		panic(fmt.Sprintf("icosphere: cannot subdivide depth %d from depth %d", m.depth, previous.Depth()))
	}

	if len(m.triangles) == m.TotalTriangleCount() {
		return false
	}
	if _, ok := m.triangles[parentIndex*4]; ok {
		return false
	}

	parent := previous.Triangle(parentIndex)
	previousVertices := previous.Vertices()

	// Copy the parent chunk's corners into this mesh, reusing corners
	// already copied for a sibling chunk.
	var corners [3]int
	for i, previousIndex := range parent {
		index, ok := m.previousVertices[previousIndex]
		if !ok {
			index = len(m.vertices)
			m.vertices = append(m.vertices, previousVertices[previousIndex])
			m.previousVertices[previousIndex] = index
		}
		corners[i] = index
	}

	// These indices refer to this mesh's vertices, not the parent's.
	a, b, c := corners[0], corners[1], corners[2]
	d := m.midpoint(a, b)
	e := m.midpoint(b, c)
	f := m.midpoint(c, a)

	base := parentIndex * 4
	m.triangles[base] = [3]uint32{uint32(a), d, f}
	m.triangles[base+1] = [3]uint32{uint32(b), e, d}
	m.triangles[base+2] = [3]uint32{uint32(c), f, e}
	m.triangles[base+3] = [3]uint32{d, e, f}

	addEdge(m.neighbors, int(d), int(e))
	addEdge(m.neighbors, int(e), int(f))
	addEdge(m.neighbors, int(f), int(d))

	return true
}

// Subdivide drives SubdivideChunk once per triangle currently present,
// so the result is exactly as complete as this mesh: subdividing a
// partially generated mesh yields a partially generated mesh.
func (m *Sparse[T]) Subdivide() Mesh[T] {
	return m.subdivide()
}

func (m *Sparse[T]) subdivide() *Sparse[T] {
	next := NewSparse(m.depth+1, m.newVertex)
	for index := range m.triangles {
		next.SubdivideChunk(m, index)
	}
	return next
}

// midpoint returns the index of the vertex at the normalized midpoint
// of the edge (i, j), creating it if this edge has not been split yet.
func (m *Sparse[T]) midpoint(i, j int) uint32 {
	key := midpointKey(i, j)
	if index, ok := m.midpoints[key]; ok {
		return uint32(index)
	}

	position := m.vertices[i].Position().Add(m.vertices[j].Position()).Normalize()

	index := len(m.vertices)
	m.vertices = append(m.vertices, m.newVertex(position, m.depth))
	m.midpoints[key] = index

	addEdge(m.neighbors, index, i)
	addEdge(m.neighbors, index, j)

	return uint32(index)
}
