package config

import "flag"

// Flags holds command line overrides. Zero values leave the config as is.
type Flags struct {
	config     *string
	debug      *bool
	backend    *string
	windowed   *bool
	fullscreen *bool
	width      *int
	height     *int
	assets     *string
	logFile    *string
}

// NewFlags registers the override flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:     fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
		backend:    fs.String("backend", "", "Window backend (sdl, glfw)"),
		windowed:   fs.Bool("windowed", false, "Run in windowed mode"),
		fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		width:      fs.Int("width", 0, "Window width"),
		height:     fs.Int("height", 0, "Window height"),
		assets:     fs.String("assets", "", "Extra asset search path, searched first"),
		logFile:    fs.String("log", "", "Log file path"),
	}
}

var cliFlags = NewFlags(flag.CommandLine)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return cliFlags.ConfigPath()
}

// ConfigPath returns the --config value of this flag set.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.backend != "" {
		cfg.Window.Backend = *f.backend
	}
	if *f.windowed {
		cfg.Window.Fullscreen = false
	}
	if *f.fullscreen {
		cfg.Window.Fullscreen = true
	}
	if *f.width > 0 {
		cfg.Window.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Window.Height = *f.height
	}
	if *f.assets != "" {
		cfg.Assets.Paths = append([]string{*f.assets}, cfg.Assets.Paths...)
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
