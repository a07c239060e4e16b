package icosphere

import (
	gomath "math"

	"github.com/Faultbox/globemesh/pkg/math"
)

// Dense is a fully materialized icosphere. All vertices and triangles
// exist for the entire sphere as soon as the mesh is constructed,
// which can take huge amounts of memory at high depths. Use Sparse to
// generate geometry on demand instead.
type Dense[T Vertex] struct {
	// vertices holds the mesh vertices. Triangle indices refer to this
	// slice. Midpoints are appended after the parent depth's vertices.
	vertices []T

	// triangles is contiguous: each subdivision splits every parent
	// triangle into four children stored at parentIndex*4..+4, so a
	// group of four consecutive triangles is one chunk.
	triangles [][3]uint32

	// neighbors maps a vertex index to the set of directly connected
	// vertex indices at this depth.
	neighbors map[int]map[int]struct{}

	depth int

	// midpoints deduplicates the shared midpoint of an edge while this
	// depth is under construction. Keys are canonicalized index pairs,
	// smaller index first.
	midpoints map[[2]int]int

	newVertex Factory[T]
}

// NewDense builds a fully subdivided icosphere at the given depth.
// Depth 0 is the regular icosahedron.
func NewDense[T Vertex](depth int, newVertex Factory[T]) *Dense[T] {
	m := newRegular(newVertex)
	for i := 0; i < depth; i++ {
		m = m.subdivide()
	}
	return m
}

// newRegular constructs the canonical regular icosahedron. The vertex
// and triangle ordering here is fixed; callers rely on it.
func newRegular[T Vertex](newVertex Factory[T]) *Dense[T] {
	// Golden-ratio construction: three orthogonal golden rectangles.
	t := float32((1 + gomath.Sqrt(5)) / 2)

	positions := [12]math.Vec3{
		{X: -1, Y: t, Z: 0},
		{X: 1, Y: t, Z: 0},
		{X: -1, Y: -t, Z: 0},
		{X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t},
		{X: 0, Y: 1, Z: t},
		{X: 0, Y: -1, Z: -t},
		{X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1},
		{X: t, Y: 0, Z: 1},
		{X: -t, Y: 0, Z: -1},
		{X: -t, Y: 0, Z: 1},
	}

	triangles := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	m := &Dense[T]{
		vertices:  make([]T, 0, 12),
		triangles: triangles,
		neighbors: make(map[int]map[int]struct{}, 12),
		midpoints: make(map[[2]int]int),
		newVertex: newVertex,
	}

	for _, p := range positions {
		m.vertices = append(m.vertices, newVertex(p.Normalize(), 0))
	}

	// Every icosahedron vertex has exactly five neighbors.
	for _, tri := range triangles {
		addEdge(m.neighbors, int(tri[0]), int(tri[1]))
		addEdge(m.neighbors, int(tri[1]), int(tri[2]))
		addEdge(m.neighbors, int(tri[2]), int(tri[0]))
	}

	return m
}

// Depth returns the number of subdivisions from the regular icosahedron.
func (m *Dense[T]) Depth() int {
	return m.depth
}

// Triangle returns the vertex indices of the triangle at the given index.
func (m *Dense[T]) Triangle(index int) [3]uint32 {
	return m.triangles[index]
}

// Vertices returns the vertex list.
func (m *Dense[T]) Vertices() []T {
	return m.vertices
}

// TotalTriangleCount returns the triangle count at this depth.
func (m *Dense[T]) TotalTriangleCount() int {
	return TriangleCount(m.depth)
}

// TotalVertexCount returns the vertex count at this depth.
func (m *Dense[T]) TotalVertexCount() int {
	return VertexCount(m.depth)
}

// AllocatedTriangleCount equals TotalTriangleCount: a dense mesh is
// always fully generated.
func (m *Dense[T]) AllocatedTriangleCount() int {
	return m.TotalTriangleCount()
}

// AllocatedVertexCount equals TotalVertexCount.
func (m *Dense[T]) AllocatedVertexCount() int {
	return m.TotalVertexCount()
}

// ApproximateTriangleSurfaceArea approximates one triangle's surface
// area for a sphere of the given radius.
func (m *Dense[T]) ApproximateTriangleSurfaceArea(radius float32) float32 {
	return ApproximateTriangleSurfaceArea(m.depth, radius)
}

// Neighbors returns the set of vertex indices directly connected to
// the given vertex. The returned map is the mesh's own storage; treat
// it as read-only.
func (m *Dense[T]) Neighbors(vertexIndex int) map[int]struct{} {
	return m.neighbors[vertexIndex]
}

// SubdivideChunk does nothing and returns false: a dense mesh is
// already fully subdivided.
func (m *Dense[T]) SubdivideChunk(previous Mesh[T], parentIndex int) bool {
	return false
}

// Subdivide returns a fully generated mesh one depth deeper.
func (m *Dense[T]) Subdivide() Mesh[T] {
	return m.subdivide()
}

func (m *Dense[T]) subdivide() *Dense[T] {
	next := &Dense[T]{
		vertices:  make([]T, 0, VertexCount(m.depth+1)),
		triangles: make([][3]uint32, 0, TriangleCount(m.depth+1)),
		neighbors: make(map[int]map[int]struct{}, VertexCount(m.depth+1)),
		depth:     m.depth + 1,
		midpoints: make(map[[2]int]int),
		newVertex: m.newVertex,
	}
	next.vertices = append(next.vertices, m.vertices...)

	for _, tri := range m.triangles {
		a, b, c := int(tri[0]), int(tri[1]), int(tri[2])

		d := next.midpoint(a, b)
		e := next.midpoint(b, c)
		f := next.midpoint(c, a)

		// Child order is load-bearing: corner triangles keep their
		// originating corner first, center triangle comes last.
		next.triangles = append(next.triangles,
			[3]uint32{tri[0], d, f},
			[3]uint32{tri[1], e, d},
			[3]uint32{tri[2], f, e},
			[3]uint32{d, e, f},
		)

		// The center triangle's edges complete the midpoints'
		// adjacency; the corner triangles add no further edges.
		addEdge(next.neighbors, int(d), int(e))
		addEdge(next.neighbors, int(e), int(f))
		addEdge(next.neighbors, int(f), int(d))
	}

	return next
}

// midpoint returns the index of the vertex at the normalized midpoint
// of the edge (i, j), creating it if this edge has not been split yet.
func (m *Dense[T]) midpoint(i, j int) uint32 {
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

// midpointKey canonicalizes an unordered vertex index pair, smaller
// index first.
func midpointKey(i, j int) [2]int {
	if i > j {
		return [2]int{j, i}
	}
	return [2]int{i, j}
}

// addEdge records i and j as neighbors of each other.
func addEdge(neighbors map[int]map[int]struct{}, i, j int) {
	for _, e := range [2][2]int{{i, j}, {j, i}} {
		set, ok := neighbors[e[0]]
		if !ok {
			set = make(map[int]struct{}, 6)
			neighbors[e[0]] = set
		}
		set[e[1]] = struct{}{}
	}
}
