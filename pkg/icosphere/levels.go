package icosphere

import "fmt"

// Levels owns one sparse icosphere per binning depth across a
// configured depth range and exposes chunk-granular, on-demand
// subdivision. A "level" is the caller-facing coarse index; the
// underlying depths advance by a fixed step per level.
//
// Levels is not safe for concurrent use against the same or adjacent
// levels: UpdateChunk reads the previous depth's mesh while writing
// the current depth's. Calls against disjoint, non-adjacent levels
// touch disjoint meshes and may run in parallel under external
// synchronization; see Split.
type Levels[T Vertex] struct {
	// meshes holds one mesh per integer depth from minDepth to
	// maxDepth inclusive. Depths skipped by the step are present too,
	// because subdivision cannot jump depths.
	meshes []*Sparse[T]

	// minDepth is the binning depth at level 0. Always >= 1: the
	// undecomposed icosahedron is excluded because its triangle and
	// vertex ordering is not guaranteed stable across constructions.
	minDepth int

	// maxDepth is the binning depth at the highest level.
	maxDepth int

	// depthStep is the increase in binning depth per level.
	depthStep int
}

// NewLevels constructs the mesh sequence for the given minimum depth,
// level count, and depth step. The mesh at the minimum depth is built
// eagerly (it is the cheap top of the pyramid); all deeper meshes
// start empty and are generated chunk by chunk through UpdateChunk.
//
// Panics if minDepth < 1, levelCount < 1, or depthStep < 1.
func NewLevels[T Vertex](minDepth, levelCount, depthStep int, newVertex Factory[T]) *Levels[T] {
	if minDepth < 1 {
		panic("icosphere: minimum binning depth must be at least 1")
	}
	if levelCount < 1 {
		panic("icosphere: level count must be at least 1")
	}
	if depthStep < 1 {
		panic("icosphere: binning depth step must be at least 1")
	}

	maxDepth := minDepth + (levelCount-1)*depthStep

	meshes := make([]*Sparse[T], 0, maxDepth-minDepth+1)
	meshes = append(meshes, NewFilledSparse(minDepth, newVertex))
	for depth := minDepth + 1; depth <= maxDepth; depth++ {
		meshes = append(meshes, NewSparse(depth, newVertex))
	}

	return &Levels[T]{
		meshes:    meshes,
		minDepth:  minDepth,
		maxDepth:  maxDepth,
		depthStep: depthStep,
	}
}

// meshIndex converts a level to an index into the mesh sequence.
func (l *Levels[T]) meshIndex(level int) int {
	return level * l.depthStep
}

// UpdateChunk ensures the chunk with the given parent triangle index
// is generated at the level's depth by subdividing from the mesh one
// depth below. Returns true if triangles were generated and false if
// the chunk was already present; re-requesting a built chunk is a safe
// no-op.
//
// Panics for level 0: the top mesh has no parent depth to subdivide
// from (it is built eagerly).
func (l *Levels[T]) UpdateChunk(level, chunkIndex int) bool {
	previous, current := l.Split(level)
	return current.SubdivideChunk(previous, chunkIndex)
}

// Split returns the mesh one depth below the given level's depth and
// the level's own mesh. These are the two resources UpdateChunk
// touches; a concurrent caller can lock them independently and drive
// SubdivideChunk itself.
//
// Panics for level 0, which has no previous depth.
func (l *Levels[T]) Split(level int) (previous, current *Sparse[T]) {
	index := l.meshIndex(level)
	if index == 0 {
		panic("icosphere: level 0 has no previous depth to subdivide from")
	}
	return l.meshes[index-1], l.meshes[index]
}

// At returns the mesh at the given level, for direct vertex-buffer
// upload or inspection.
func (l *Levels[T]) At(level int) *Sparse[T] {
	return l.meshes[l.meshIndex(level)]
}

// FlattenedChunkIndices returns the chunk's vertex indices laid out as
// triangle triples, suitable for use as a draw index buffer segment.
// The result has length 3*ChunkSize(). chunkIndex addresses a chunk of
// the level below; the indices refer to the vertices of the mesh at
// the given level.
//
// Panics if the chunk has not been generated via UpdateChunk.
func (l *Levels[T]) FlattenedChunkIndices(level, chunkIndex int) []uint32 {
	indices := make([]uint32, 3*l.ChunkSize())
	mesh := l.At(level)

	start, end := l.SubchunkIndices(chunkIndex)
	for offset, triangleIndex := 0, start; triangleIndex < end; offset, triangleIndex = offset+1, triangleIndex+1 {
		tri := mesh.Triangle(triangleIndex)
		copy(indices[offset*3:offset*3+3], tri[:])
	}

	return indices
}

// DepthAtLevel returns the binning depth at the given level.
func (l *Levels[T]) DepthAtLevel(level int) int {
	return l.minDepth + level*l.depthStep
}

// LevelOfDepth returns the level corresponding to the given binning
// depth. The second result is false if the depth is out of range or
// not exactly reachable by the configured step.
func (l *Levels[T]) LevelOfDepth(depth int) (int, bool) {
	if depth < l.minDepth || depth > l.maxDepth || (depth-l.minDepth)%l.depthStep != 0 {
		return 0, false
	}
	return (depth - l.minDepth) / l.depthStep, true
}

// LevelCount returns the total number of levels.
func (l *Levels[T]) LevelCount() int {
	return (l.maxDepth-l.minDepth)/l.depthStep + 1
}

// MinDepth returns the binning depth at level 0.
func (l *Levels[T]) MinDepth() int {
	return l.minDepth
}

// MaxDepth returns the binning depth at the highest level.
func (l *Levels[T]) MaxDepth() int {
	return l.maxDepth
}

// DepthStep returns the increase in binning depth per level.
func (l *Levels[T]) DepthStep() int {
	return l.depthStep
}

// ChunkSize returns the number of triangles in each chunk: 4^step,
// the triangles produced per parent triangle after one level's worth
// of subdivisions. Multiply by 3 for the vertex-index count.
func (l *Levels[T]) ChunkSize() int {
	return 1 << (2 * l.depthStep)
}

// ChunkCount returns the number of chunks at the given level. The
// chunk granularity of a level is the previous level's full triangle
// count.
//
// Panics for level 0: the top mesh is never chunked. It is cheap
// enough to draw whole, and any chunk decomposition of it would be
// arbitrary.
func (l *Levels[T]) ChunkCount(level int) int {
	if level == 0 {
		panic(fmt.Sprintf("icosphere: level 0 (depth %d) is not chunked", l.minDepth))
	}
	return TriangleCount(l.DepthAtLevel(level - 1))
}

// SubchunkIndices maps a chunk at one level to the half-open range
// [start, end) of triangle (or chunk) indices it covers at the next
// level: chunkIndex*ChunkSize()..+ChunkSize().
func (l *Levels[T]) SubchunkIndices(chunkIndex int) (start, end int) {
	size := l.ChunkSize()
	start = chunkIndex * size
	return start, start + size
}
