package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMinDepth   = flag.Int("min-depth", 0, "Binning depth at level 0")
	flagLevels     = flag.Int("levels", 0, "Number of detail levels")
	flagStep       = flag.Int("step", 0, "Binning depth step per level")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagMinDepth > 0 {
		cfg.Sphere.MinBinningDepth = *flagMinDepth
	}
	if *flagLevels > 0 {
		cfg.Sphere.LevelCount = *flagLevels
	}
	if *flagStep > 0 {
		cfg.Sphere.BinningDepthStep = *flagStep
	}
}
