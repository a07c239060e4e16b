package icosphere

import (
	"testing"

	"github.com/Faultbox/globemesh/pkg/math"
)

func TestRegularIcosahedron(t *testing.T) {
	m := NewDense(0, NewPositionVertex)

	if got := m.Depth(); got != 0 {
		t.Errorf("Depth() = %d, want 0", got)
	}
	if got := m.AllocatedVertexCount(); got != 12 {
		t.Errorf("AllocatedVertexCount() = %d, want 12", got)
	}
	if got := m.AllocatedTriangleCount(); got != 20 {
		t.Errorf("AllocatedTriangleCount() = %d, want 20", got)
	}

	for i := 0; i < 12; i++ {
		if got := len(m.Neighbors(i)); got != 5 {
			t.Errorf("vertex %d has %d neighbors, want 5", i, got)
		}
	}
}

func TestRegularVerticesUnitLength(t *testing.T) {
	m := NewDense(0, NewPositionVertex)
	for i, v := range m.Vertices() {
		l := v.Position().Length()
		if l < 0.9999 || l > 1.0001 {
			t.Errorf("vertex %d length = %v, want 1", i, l)
		}
	}
}

func TestDenseSubdivideCounts(t *testing.T) {
	m := NewDense(0, NewPositionVertex)
	for depth := 1; depth <= 3; depth++ {
		m = m.Subdivide().(*Dense[PositionVertex])

		if got := m.Depth(); got != depth {
			t.Errorf("Depth() = %d, want %d", got, depth)
		}
		if got, want := len(m.Vertices()), VertexCount(depth); got != want {
			t.Errorf("depth %d: vertex count = %d, want %d", depth, got, want)
		}
		if got, want := m.AllocatedTriangleCount(), TriangleCount(depth); got != want {
			t.Errorf("depth %d: triangle count = %d, want %d", depth, got, want)
		}
	}
}

func TestDenseMidpointsUnitLength(t *testing.T) {
	m := NewDense(2, NewPositionVertex)
	for i, v := range m.Vertices() {
		l := v.Position().Length()
		if l < 0.9999 || l > 1.0001 {
			t.Errorf("vertex %d length = %v, want 1", i, l)
		}
	}
}

func TestDenseChildOrdering(t *testing.T) {
	parent := NewDense(1, NewPositionVertex)
	child := NewDense(2, NewPositionVertex)

	for p := 0; p < parent.AllocatedTriangleCount(); p++ {
		tri := parent.Triangle(p)
		c0 := child.Triangle(p * 4)
		c1 := child.Triangle(p*4 + 1)
		c2 := child.Triangle(p*4 + 2)
		c3 := child.Triangle(p*4 + 3)

		// Corner triangles keep their originating corner first.
		if c0[0] != tri[0] || c1[0] != tri[1] || c2[0] != tri[2] {
			t.Fatalf("parent %d: corner children start with %d,%d,%d, want %d,%d,%d",
				p, c0[0], c1[0], c2[0], tri[0], tri[1], tri[2])
		}

		// The center triangle is the three midpoints in AB, BC, CA order.
		if c3 != [3]uint32{c0[1], c1[1], c2[1]} {
			t.Fatalf("parent %d: center triangle = %v, want [%d %d %d]",
				p, c3, c0[1], c1[1], c2[1])
		}

		// Midpoints are shared between adjacent children.
		if c0[2] != c2[1] || c1[2] != c0[1] || c2[2] != c1[1] {
			t.Fatalf("parent %d: children %v %v %v do not share midpoints", p, c0, c1, c2)
		}
	}
}

func TestDenseAdjacency(t *testing.T) {
	m := NewDense(2, NewPositionVertex)

	fives := 0
	for i := 0; i < m.AllocatedVertexCount(); i++ {
		switch got := len(m.Neighbors(i)); got {
		case 5:
			fives++
		case 6:
		default:
			t.Errorf("vertex %d has %d neighbors, want 5 or 6", i, got)
		}
	}

	// Only the 12 original icosahedron vertices have five neighbors.
	if fives != 12 {
		t.Errorf("%d vertices with 5 neighbors, want 12", fives)
	}
}

func TestDenseSubdivideChunkNoop(t *testing.T) {
	previous := NewDense(1, NewPositionVertex)
	m := NewDense(2, NewPositionVertex)

	if m.SubdivideChunk(previous, 0) {
		t.Error("SubdivideChunk() = true on a dense mesh, want false")
	}
	if got, want := m.AllocatedTriangleCount(), TriangleCount(2); got != want {
		t.Errorf("triangle count changed to %d, want %d", got, want)
	}
}

func TestDenseTotalsMatchFormulas(t *testing.T) {
	m := NewDense(2, NewPositionVertex)
	if got, want := m.TotalVertexCount(), VertexCount(2); got != want {
		t.Errorf("TotalVertexCount() = %d, want %d", got, want)
	}
	if got, want := m.TotalTriangleCount(), TriangleCount(2); got != want {
		t.Errorf("TotalTriangleCount() = %d, want %d", got, want)
	}
	if got, want := m.ApproximateTriangleSurfaceArea(1), ApproximateTriangleSurfaceArea(2, 1); got != want {
		t.Errorf("ApproximateTriangleSurfaceArea(1) = %v, want %v", got, want)
	}
}

func TestVertexFactoryReceivesDepth(t *testing.T) {
	depths := make(map[int]int)
	factory := func(position math.Vec3, depth int) PositionVertex {
		depths[depth]++
		return PositionVertex{Pos: position}
	}

	NewDense(2, factory)

	if got := depths[0]; got != 12 {
		t.Errorf("%d vertices created at depth 0, want 12", got)
	}
	if got := depths[1]; got != 30 {
		t.Errorf("%d vertices created at depth 1, want 30", got)
	}
	if got := depths[2]; got != 120 {
		t.Errorf("%d vertices created at depth 2, want 120", got)
	}
}
