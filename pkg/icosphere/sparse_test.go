package icosphere

import (
	"sort"
	"testing"

	"github.com/Faultbox/globemesh/pkg/math"
)

func TestSparseEmpty(t *testing.T) {
	m := NewSparse(3, NewPositionVertex)

	if got := m.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	if got := m.AllocatedTriangleCount(); got != 0 {
		t.Errorf("AllocatedTriangleCount() = %d, want 0", got)
	}
	if got := m.AllocatedVertexCount(); got != 0 {
		t.Errorf("AllocatedVertexCount() = %d, want 0", got)
	}
	if got, want := m.TotalTriangleCount(), TriangleCount(3); got != want {
		t.Errorf("TotalTriangleCount() = %d, want %d", got, want)
	}
	if got, want := m.TotalVertexCount(), VertexCount(3); got != want {
		t.Errorf("TotalVertexCount() = %d, want %d", got, want)
	}
}

func TestSparseFromDenseRoundTrip(t *testing.T) {
	dense := NewDense(2, NewPositionVertex)
	wantVertices := dense.AllocatedVertexCount()
	wantTriangles := dense.AllocatedTriangleCount()

	var wantDegrees []int
	for i := 0; i < wantVertices; i++ {
		wantDegrees = append(wantDegrees, len(dense.Neighbors(i)))
	}

	sparse := SparseFromDense(dense)

	if got := sparse.AllocatedVertexCount(); got != wantVertices {
		t.Errorf("AllocatedVertexCount() = %d, want %d", got, wantVertices)
	}
	if got := sparse.AllocatedTriangleCount(); got != wantTriangles {
		t.Errorf("AllocatedTriangleCount() = %d, want %d", got, wantTriangles)
	}
	if got, want := sparse.AllocatedTriangleCount(), sparse.TotalTriangleCount(); got != want {
		t.Errorf("converted mesh not fully generated: %d of %d triangles", got, want)
	}

	fives := 0
	for i, want := range wantDegrees {
		got := len(sparse.Neighbors(i))
		if got != want {
			t.Errorf("vertex %d has %d neighbors, want %d", i, got, want)
		}
		if got == 5 {
			fives++
		}
	}
	if fives != 12 {
		t.Errorf("%d vertices with 5 neighbors, want 12", fives)
	}
}

func TestSparseFilled(t *testing.T) {
	m := NewFilledSparse(2, NewPositionVertex)
	if got, want := m.AllocatedTriangleCount(), m.TotalTriangleCount(); got != want {
		t.Errorf("AllocatedTriangleCount() = %d, want %d", got, want)
	}
	if got, want := m.AllocatedVertexCount(), m.TotalVertexCount(); got != want {
		t.Errorf("AllocatedVertexCount() = %d, want %d", got, want)
	}
}

func TestSubdivideChunkIdempotent(t *testing.T) {
	previous := NewFilledSparse(1, NewPositionVertex)
	m := NewSparse(2, NewPositionVertex)

	if !m.SubdivideChunk(previous, 7) {
		t.Fatal("first SubdivideChunk() = false, want true")
	}
	triangles := m.AllocatedTriangleCount()
	vertices := m.AllocatedVertexCount()

	if m.SubdivideChunk(previous, 7) {
		t.Error("second SubdivideChunk() = true, want false")
	}
	if got := m.AllocatedTriangleCount(); got != triangles {
		t.Errorf("triangle count changed from %d to %d", triangles, got)
	}
	if got := m.AllocatedVertexCount(); got != vertices {
		t.Errorf("vertex count changed from %d to %d", vertices, got)
	}
}

func TestSubdivideChunkLayout(t *testing.T) {
	previous := NewFilledSparse(1, NewPositionVertex)
	m := NewSparse(2, NewPositionVertex)

	m.SubdivideChunk(previous, 5)

	// Exactly the four children at 20..24 exist.
	if got := m.AllocatedTriangleCount(); got != 4 {
		t.Fatalf("AllocatedTriangleCount() = %d, want 4", got)
	}
	for index := 20; index < 24; index++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Triangle(%d) panicked: %v", index, r)
				}
			}()
			m.Triangle(index)
		}()
	}
}

func TestSubdivideChunkSharesCorners(t *testing.T) {
	previous := NewFilledSparse(1, NewPositionVertex)
	m := NewSparse(2, NewPositionVertex)

	// Chunks 0..3 are children of the same depth-0 triangle and share
	// corners and edges; each chunk alone needs 6 vertices.
	m.SubdivideChunk(previous, 0)
	if got := m.AllocatedVertexCount(); got != 6 {
		t.Fatalf("one chunk: AllocatedVertexCount() = %d, want 6", got)
	}

	m.SubdivideChunk(previous, 3)
	// Chunk 3 is the center child: its three corners are already
	// present as chunk 0's midpoint or corners' siblings at the parent
	// depth, so only the midpoints it creates are new.
	if got := m.AllocatedVertexCount(); got >= 12 {
		t.Errorf("two adjacent chunks: AllocatedVertexCount() = %d, want < 12", got)
	}
}

func TestSubdivideChunkDepthMismatchPanics(t *testing.T) {
	previous := NewFilledSparse(1, NewPositionVertex)
	m := NewSparse(3, NewPositionVertex)

	defer func() {
		if recover() == nil {
			t.Error("SubdivideChunk() with non-adjacent depth did not panic")
		}
	}()
	m.SubdivideChunk(previous, 0)
}

func TestSparseTriangleUngeneratedPanics(t *testing.T) {
	m := NewSparse(2, NewPositionVertex)

	defer func() {
		if recover() == nil {
			t.Error("Triangle() on an ungenerated index did not panic")
		}
	}()
	m.Triangle(0)
}

// canonicalTriangles maps every generated triangle to its three vertex
// positions, quantized and sorted, so meshes can be compared
// independently of vertex insertion order.
func canonicalTriangles[T Vertex](m Mesh[T], indices []int) map[[9]int32]int {
	quantize := func(p math.Vec3) [3]int32 {
		const scale = 1 << 16
		return [3]int32{int32(p.X * scale), int32(p.Y * scale), int32(p.Z * scale)}
	}

	set := make(map[[9]int32]int)
	vertices := m.Vertices()
	for _, index := range indices {
		tri := m.Triangle(index)

		var corners [3][3]int32
		for i, v := range tri {
			corners[i] = quantize(vertices[v].Position())
		}
		sort.Slice(corners[:], func(a, b int) bool {
			for i := 0; i < 3; i++ {
				if corners[a][i] != corners[b][i] {
					return corners[a][i] < corners[b][i]
				}
			}
			return false
		})

		var key [9]int32
		for i, c := range corners {
			copy(key[i*3:], c[:])
		}
		set[key]++
	}
	return set
}

func TestSparseDenseEquivalence(t *testing.T) {
	const depth = 2

	dense := NewDense(depth, NewPositionVertex)

	previous := NewFilledSparse(depth-1, NewPositionVertex)
	sparse := NewSparse(depth, NewPositionVertex)
	for chunk := 0; chunk < TriangleCount(depth-1); chunk++ {
		sparse.SubdivideChunk(previous, chunk)
	}

	if got, want := sparse.AllocatedTriangleCount(), dense.AllocatedTriangleCount(); got != want {
		t.Fatalf("sparse triangle count = %d, want %d", got, want)
	}
	if got, want := sparse.AllocatedVertexCount(), dense.AllocatedVertexCount(); got != want {
		t.Fatalf("sparse vertex count = %d, want %d", got, want)
	}

	indices := make([]int, TriangleCount(depth))
	for i := range indices {
		indices[i] = i
	}

	denseSet := canonicalTriangles[PositionVertex](dense, indices)
	sparseSet := canonicalTriangles[PositionVertex](sparse, indices)

	if len(denseSet) != len(sparseSet) {
		t.Fatalf("distinct triangle count: sparse %d, dense %d", len(sparseSet), len(denseSet))
	}
	for key, count := range denseSet {
		if sparseSet[key] != count {
			t.Fatalf("triangle %v: sparse count %d, dense count %d", key, sparseSet[key], count)
		}
	}
}

func TestSparseSubdividePreservesPartiality(t *testing.T) {
	previous := NewFilledSparse(1, NewPositionVertex)

	partial := NewSparse(2, NewPositionVertex)
	partial.SubdivideChunk(previous, 0)
	partial.SubdivideChunk(previous, 1)

	// Whole-mesh subdivision of a partial source silently produces an
	// equally partial result. This asymmetry with the dense builder is
	// intentional; callers use it for depth-limited partial expansion.
	next := partial.Subdivide()

	if got := next.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	if got, want := next.AllocatedTriangleCount(), 4*partial.AllocatedTriangleCount(); got != want {
		t.Errorf("AllocatedTriangleCount() = %d, want %d", got, want)
	}
	if next.AllocatedTriangleCount() == next.TotalTriangleCount() {
		t.Error("subdividing a partial mesh produced a fully generated mesh")
	}
}

func TestSparseSubdivideFull(t *testing.T) {
	full := NewFilledSparse(1, NewPositionVertex)
	next := full.Subdivide()

	if got, want := next.AllocatedTriangleCount(), TriangleCount(2); got != want {
		t.Errorf("AllocatedTriangleCount() = %d, want %d", got, want)
	}
	if got, want := next.AllocatedVertexCount(), VertexCount(2); got != want {
		t.Errorf("AllocatedVertexCount() = %d, want %d", got, want)
	}
}
