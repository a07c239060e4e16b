// Package main is the interactive icosphere viewer. It renders a globe
// whose detail levels are generated chunk by chunk while the viewer
// runs, so switching to a deeper level shows the mesh materializing.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/globemesh/internal/config"
	"github.com/Faultbox/globemesh/internal/engine/camera"
	"github.com/Faultbox/globemesh/internal/engine/globe"
	"github.com/Faultbox/globemesh/internal/engine/window"
	"github.com/Faultbox/globemesh/internal/logger"
	"github.com/Faultbox/globemesh/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Globemesh Viewer ===")

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Globemesh",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.05, 0.05, 0.1, 1.0)

	g, err := globe.New(globe.Config{
		Radius:           cfg.Sphere.Radius,
		MinBinningDepth:  cfg.Sphere.MinBinningDepth,
		LevelCount:       cfg.Sphere.LevelCount,
		BinningDepthStep: cfg.Sphere.BinningDepthStep,
		ChunksPerFrame:   cfg.Sphere.ChunksPerFrame,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	cam := camera.NewOrbitCamera(cfg.Sphere.Radius)

	currentLevel := 0
	wireframe := false
	dragging := false
	running := true

	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE, sdl.K_q:
					running = false
				case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
					if currentLevel < g.LevelCount()-1 {
						currentLevel++
						logger.Info("level selected", zap.Int("level", currentLevel))
					}
				case sdl.K_MINUS, sdl.K_KP_MINUS:
					if currentLevel > 0 {
						currentLevel--
						logger.Info("level selected", zap.Int("level", currentLevel))
					}
				case sdl.K_w:
					wireframe = !wireframe
				}

			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
				}

			case *sdl.MouseMotionEvent:
				if dragging {
					cam.HandleDrag(float32(e.XRel), float32(e.YRel))
				}

			case *sdl.MouseWheelEvent:
				cam.HandleZoom(float32(e.Y))

			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_RESIZED {
					w, h := win.GetSize()
					gl.Viewport(0, 0, int32(w), int32(h))
				}
			}
		}

		// Generate toward the selected level, shallowest level first:
		// a level can only subdivide from the depth directly below it.
		for level := 1; level <= currentLevel; level++ {
			generated, total := g.Progress(level)
			if generated < total {
				g.StepGeneration(level)
				break
			}
		}

		// Draw the deepest level at or below the selection that has
		// geometry; a freshly selected level fills in over frames.
		displayLevel := 0
		for level := currentLevel; level > 0; level-- {
			if generated, _ := g.Progress(level); generated > 0 {
				displayLevel = level
				break
			}
		}

		width, height := win.GetSize()
		aspect := float32(width) / float32(height)
		projection := math.Perspective(0.9, aspect, 0.01*g.Radius(), 100*g.Radius())
		view := cam.ViewMatrix()
		mvp := projection.Mul(view)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
		g.Draw(displayLevel, &mvp)

		generated, total := g.Progress(currentLevel)
		win.SetTitle(fmt.Sprintf("Globemesh - level %d/%d (%d/%d chunks)",
			currentLevel, g.LevelCount()-1, generated, total))

		win.SwapBuffers()
		sdl.Delay(16)
	}

	return nil
}
