package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagScheme     = flag.String("scheme", "", "Input scheme: auto, desktop or mobile")
	flagHitbox     = flag.Bool("hitbox", false, "Draw the player capsule")
	flagWrite      = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagSave       = flag.Bool("save-config", false, "Save the effective config to the user config directory and exit")
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
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagScheme != "" {
		cfg.Input.Scheme = *flagScheme
	}
	if *flagHitbox {
		cfg.Player.ShowHitbox = true
	}
}

// WritePath returns the --write-config target, empty when not requested.
func WritePath() string {
	return *flagWrite
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}
