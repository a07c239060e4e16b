// icotool is a CLI utility for inspecting and exporting icosphere meshes.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/globemesh/pkg/icosphere"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "obj", "export":
		cmdObj(args)
	case "levels":
		cmdLevels(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`icotool - icosphere mesh utility

Usage:
  icotool <command> [options]

Commands:
  info <depth>                  Show mesh statistics for a subdivision depth
  obj <depth> <output.obj>      Export a subdivided icosphere as Wavefront OBJ
  levels <min> <count> <step>   Show the chunk layout of a level configuration

Examples:
  icotool info 5
  icotool obj 4 sphere.obj
  icotool levels 1 5 1`)
}

func parseIntArg(name, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s %q: must be an integer\n", name, value)
		os.Exit(1)
	}
	if n < 0 {
		fmt.Fprintf(os.Stderr, "Invalid %s %d: must be non-negative\n", name, n)
		os.Exit(1)
	}
	return n
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: icotool info <depth>")
		os.Exit(1)
	}

	depth := parseIntArg("depth", args[0])

	fmt.Printf("Subdivision depth: %d\n", depth)
	fmt.Printf("Vertices:          %d\n", icosphere.VertexCount(depth))
	fmt.Printf("Triangles:         %d\n", icosphere.TriangleCount(depth))
	fmt.Printf("Triangle area:     %g (unit sphere)\n",
		icosphere.ApproximateTriangleSurfaceArea(depth, 1.0))

	// Memory estimate assumes 12-byte positions and 12-byte triangles.
	bytes := icosphere.VertexCount(depth)*12 + icosphere.TriangleCount(depth)*12
	fmt.Printf("Approx. mesh size: %s\n", formatBytes(bytes))
}

func cmdObj(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: icotool obj <depth> <output.obj>")
		os.Exit(1)
	}

	depth := parseIntArg("depth", args[0])
	if depth > 8 {
		fmt.Fprintf(os.Stderr, "Depth %d is too large for export (max 8)\n", depth)
		os.Exit(1)
	}

	mesh := icosphere.NewDense(depth, icosphere.NewPositionVertex)

	out, err := os.Create(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "# icosphere, subdivision depth %d\n", depth)
	for _, v := range mesh.Vertices() {
		p := v.Position()
		fmt.Fprintf(w, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for i := 0; i < mesh.TotalTriangleCount(); i++ {
		tri := mesh.Triangle(i)
		// OBJ indices are 1-based.
		fmt.Fprintf(w, "f %d %d %d\n", tri[0]+1, tri[1]+1, tri[2]+1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d vertices, %d triangles\n",
		args[1], mesh.TotalVertexCount(), mesh.TotalTriangleCount())
}

func cmdLevels(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: icotool levels <min> <count> <step>")
		os.Exit(1)
	}

	minDepth := parseIntArg("min depth", args[0])
	levelCount := parseIntArg("level count", args[1])
	depthStep := parseIntArg("depth step", args[2])
	if minDepth < 1 || levelCount < 1 || depthStep < 1 {
		fmt.Fprintln(os.Stderr, "min depth, level count and depth step must be at least 1")
		os.Exit(1)
	}

	levels := icosphere.NewLevels[icosphere.PositionVertex](
		minDepth, levelCount, depthStep, icosphere.NewPositionVertex)

	fmt.Printf("%-6s %-6s %-12s %-12s %-8s %s\n",
		"Level", "Depth", "Vertices", "Triangles", "Chunks", "Chunk size")
	for level := 0; level < levels.LevelCount(); level++ {
		depth := levels.DepthAtLevel(level)
		chunks := "-"
		if level > 0 {
			chunks = strconv.Itoa(levels.ChunkCount(level))
		}
		fmt.Printf("%-6d %-6d %-12d %-12d %-8s %d\n",
			level, depth,
			icosphere.VertexCount(depth), icosphere.TriangleCount(depth),
			chunks, levels.ChunkSize())
	}
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
