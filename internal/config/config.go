// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Sphere  SphereConfig  `yaml:"sphere"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SphereConfig holds icosphere generation settings.
type SphereConfig struct {
	// Radius the unit-sphere positions are scaled by at upload time.
	Radius float32 `yaml:"radius"`

	// MinBinningDepth is the subdivision depth at level 0. Must be at
	// least 1.
	MinBinningDepth int `yaml:"min_binning_depth"`

	// LevelCount is the number of detail levels held in memory.
	LevelCount int `yaml:"level_count"`

	// BinningDepthStep is the depth increase per level.
	BinningDepthStep int `yaml:"binning_depth_step"`

	// ChunksPerFrame limits how many chunks are generated per rendered
	// frame while a level is still materializing.
	ChunksPerFrame int `yaml:"chunks_per_frame"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Sphere: SphereConfig{
			Radius:           1.0,
			MinBinningDepth:  1,
			LevelCount:       5,
			BinningDepthStep: 1,
			ChunksPerFrame:   64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
