// Package globe renders icosphere detail levels with OpenGL. It owns
// one vertex/index buffer pair per level and streams newly generated
// chunks into them, so a level becomes drawable progressively instead
// of stalling a frame on full-mesh generation.
package globe

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/globemesh/internal/engine/shader"
	"github.com/Faultbox/globemesh/internal/logger"
	"github.com/Faultbox/globemesh/pkg/icosphere"
	"github.com/Faultbox/globemesh/pkg/math"
)

// Config holds globe generation and rendering settings.
type Config struct {
	Radius           float32
	MinBinningDepth  int
	LevelCount       int
	BinningDepthStep int

	// ChunksPerFrame limits how much geometry StepGeneration produces
	// per call, to keep frame times stable while a level materializes.
	ChunksPerFrame int
}

// levelBuffers holds the GL objects for one detail level. The index
// buffer is allocated for the full mesh up front; chunks are streamed
// into it in order as they are generated.
type levelBuffers struct {
	vao uint32
	vbo uint32
	ebo uint32

	// uploadedVertices counts the vertices currently in the VBO. The
	// mesh vertex list is append-only, so uploads are incremental.
	uploadedVertices int

	// nextChunk is the first chunk index not yet generated. Chunks are
	// generated in order so the valid index range stays contiguous.
	nextChunk int

	chunkCount int
	indexCount int32
}

const vertexStride = 3 * 4 // one position, three float32s

// Globe owns the icosphere levels and their GL resources.
type Globe struct {
	cfg     Config
	levels  *icosphere.Levels[icosphere.PositionVertex]
	buffers []levelBuffers

	program    uint32
	mvpUniform int32
	radUniform int32
}

// New builds the level manager and creates GL resources for every
// level. Must be called after an OpenGL context exists. The level 0
// mesh is complete at construction; deeper levels start empty and are
// filled through StepGeneration.
func New(cfg Config) (*Globe, error) {
	// Streaming generation pulls each level's chunks from the depth
	// directly below it; larger steps would leave the depths between
	// levels with no one generating them.
	if cfg.BinningDepthStep != 1 {
		return nil, fmt.Errorf("globe: binning depth step must be 1, got %d", cfg.BinningDepthStep)
	}

	g := &Globe{
		cfg:    cfg,
		levels: icosphere.NewLevels(cfg.MinBinningDepth, cfg.LevelCount, cfg.BinningDepthStep, icosphere.NewPositionVertex),
	}

	var err error
	g.program, err = shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("globe shader: %w", err)
	}
	g.mvpUniform = shader.MustGetUniform(g.program, "uMVP")
	g.radUniform = shader.MustGetUniform(g.program, "uRadius")

	g.buffers = make([]levelBuffers, g.levels.LevelCount())
	for level := range g.buffers {
		g.initLevelBuffers(level)
	}

	// The top level is already fully generated; upload it whole.
	g.uploadBaseLevel()

	logger.Info("globe created",
		zap.Int("levels", g.levels.LevelCount()),
		zap.Int("min_depth", g.levels.MinDepth()),
		zap.Int("max_depth", g.levels.MaxDepth()),
	)

	return g, nil
}

// initLevelBuffers allocates the VAO/VBO/EBO for one level, sized for
// the fully generated mesh at that level's depth.
func (g *Globe) initLevelBuffers(level int) {
	depth := g.levels.DepthAtLevel(level)
	b := &g.buffers[level]

	if level > 0 {
		b.chunkCount = g.levels.ChunkCount(level)
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, icosphere.VertexCount(depth)*vertexStride, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, icosphere.TriangleCount(depth)*3*4, nil, gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// uploadBaseLevel uploads the eagerly built level 0 mesh in one pass.
func (g *Globe) uploadBaseLevel() {
	mesh := g.levels.At(0)
	b := &g.buffers[0]

	g.uploadNewVertices(0)

	indices := make([]uint32, 0, mesh.TotalTriangleCount()*3)
	for i := 0; i < mesh.TotalTriangleCount(); i++ {
		tri := mesh.Triangle(i)
		indices = append(indices, tri[:]...)
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, unsafe.Pointer(&indices[0]))
	gl.BindVertexArray(0)

	b.indexCount = int32(len(indices))
	b.nextChunk = 0
}

// StepGeneration generates up to ChunksPerFrame chunks of the given
// level and streams them into the level's buffers. Returns true if
// the level still has ungenerated chunks afterwards.
func (g *Globe) StepGeneration(level int) bool {
	if level == 0 {
		return false
	}

	b := &g.buffers[level]
	if b.nextChunk >= b.chunkCount {
		return false
	}

	batch := g.cfg.ChunksPerFrame
	if batch < 1 {
		batch = 1
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	generated := 0
	for ; b.nextChunk < b.chunkCount && generated < batch; b.nextChunk++ {
		chunk := b.nextChunk
		g.levels.UpdateChunk(level, chunk)

		indices := g.levels.FlattenedChunkIndices(level, chunk)
		offset := chunk * len(indices) * 4
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, offset, len(indices)*4, unsafe.Pointer(&indices[0]))

		b.indexCount += int32(len(indices))
		generated++
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	g.uploadNewVertices(level)

	if b.nextChunk >= b.chunkCount {
		logger.Info("level fully generated",
			zap.Int("level", level),
			zap.Int("depth", g.levels.DepthAtLevel(level)),
			zap.Int("triangles", g.levels.At(level).AllocatedTriangleCount()),
		)
		return false
	}
	return true
}

// uploadNewVertices appends vertices the mesh has gained since the
// last upload to the level's VBO.
func (g *Globe) uploadNewVertices(level int) {
	mesh := g.levels.At(level)
	b := &g.buffers[level]

	allocated := mesh.AllocatedVertexCount()
	if allocated == b.uploadedVertices {
		return
	}

	vertices := mesh.Vertices()[b.uploadedVertices:allocated]
	data := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		p := v.Position()
		data = append(data, p.X, p.Y, p.Z)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, b.uploadedVertices*vertexStride, len(data)*4, unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.uploadedVertices = allocated
}

// Draw renders the given level with the given model-view-projection
// matrix. Only the chunks generated so far are drawn.
func (g *Globe) Draw(level int, mvp *math.Mat4) {
	b := &g.buffers[level]
	if b.indexCount == 0 {
		return
	}

	gl.UseProgram(g.program)
	gl.UniformMatrix4fv(g.mvpUniform, 1, false, mvp.Ptr())
	gl.Uniform1f(g.radUniform, g.cfg.Radius)

	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Progress reports how many chunks of the level have been generated
// and how many exist in total. Level 0 is always complete.
func (g *Globe) Progress(level int) (generated, total int) {
	if level == 0 {
		return 1, 1
	}
	b := &g.buffers[level]
	return b.nextChunk, b.chunkCount
}

// Levels exposes the underlying level manager.
func (g *Globe) Levels() *icosphere.Levels[icosphere.PositionVertex] {
	return g.levels
}

// LevelCount returns the number of detail levels.
func (g *Globe) LevelCount() int {
	return g.levels.LevelCount()
}

// Radius returns the rendered sphere radius.
func (g *Globe) Radius() float32 {
	return g.cfg.Radius
}

// Close releases all GL resources.
func (g *Globe) Close() {
	logger.Info("closing globe")
	for i := range g.buffers {
		b := &g.buffers[i]
		if b.vao != 0 {
			gl.DeleteVertexArrays(1, &b.vao)
		}
		if b.vbo != 0 {
			gl.DeleteBuffers(1, &b.vbo)
		}
		if b.ebo != 0 {
			gl.DeleteBuffers(1, &b.ebo)
		}
	}
	if g.program != 0 {
		gl.DeleteProgram(g.program)
	}
}

// The mesh stores unit-sphere positions; the radius is applied in the
// vertex shader so one vertex buffer serves any sphere size.
const vertexShaderSrc = `
	#version 410 core

	layout (location = 0) in vec3 aPos;

	uniform mat4 uMVP;
	uniform float uRadius;

	out vec3 vNormal;

	void main() {
		vNormal = aPos;
		gl_Position = uMVP * vec4(aPos * uRadius, 1.0);
	}
`

const fragmentShaderSrc = `
	#version 410 core

	in vec3 vNormal;
	out vec4 FragColor;

	void main() {
		vec3 lightDir = normalize(vec3(0.4, 0.7, 0.6));
		float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
		vec3 base = vec3(0.25, 0.45, 0.8);
		FragColor = vec4(base * (0.25 + 0.75 * diffuse), 1.0);
	}
`
