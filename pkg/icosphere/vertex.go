package icosphere

import "github.com/Faultbox/globemesh/pkg/math"

// Vertex is the storage for a single mesh vertex. Implementations may
// carry whatever rendering payload they need; the mesh builders only
// require a position.
type Vertex interface {
	Position() math.Vec3
}

// Factory constructs a vertex from a unit-sphere position and the
// binning depth at which the vertex is created. Payload types can use
// the depth to attach depth-dependent data.
type Factory[T Vertex] func(position math.Vec3, depth int) T

// PositionVertex is the minimal vertex payload: just a position.
type PositionVertex struct {
	Pos math.Vec3
}

// Position returns the vertex position.
func (v PositionVertex) Position() math.Vec3 {
	return v.Pos
}

// NewPositionVertex is a Factory for PositionVertex.
func NewPositionVertex(position math.Vec3, depth int) PositionVertex {
	return PositionVertex{Pos: position}
}
