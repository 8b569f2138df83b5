// Package config handles viewer configuration and scene description loading.
package config

import (
	"github.com/Faultbox/facet/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
}

// RenderConfig holds draw pass settings.
type RenderConfig struct {
	Ambient          math.Color `yaml:"ambient"`
	AmbientIntensity float64    `yaml:"ambient_intensity"`
	Shader           string     `yaml:"shader"`      // Asset name; empty uses the embedded default
	Supersample      int        `yaml:"supersample"` // Software device only
	FPSLimit         int        `yaml:"fps_limit"`
}

// CameraConfig holds the initial camera state and fly controls.
type CameraConfig struct {
	FOV              float64    `yaml:"fov"` // Vertical, degrees
	Near             float64    `yaml:"near"`
	Far              float64    `yaml:"far"`
	Position         [3]float64 `yaml:"position"`
	Yaw              float64    `yaml:"yaw"`   // Degrees
	Pitch            float64    `yaml:"pitch"` // Degrees
	MoveSpeed        float64    `yaml:"move_speed"`
	MouseSensitivity float64    `yaml:"mouse_sensitivity"`
}

// SceneConfig describes the models created at startup.
type SceneConfig struct {
	Models []ModelConfig `yaml:"models"`
}

// Model kinds.
const (
	KindRect   = "rect"
	KindCuboid = "cuboid"
	KindSphere = "sphere"
	KindOBJ    = "obj"
)

// ModelConfig describes one scene model.
type ModelConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// Params are kind specific: rect width,height; cuboid width,height,depth;
	// sphere longitude rings, latitude rings, radius.
	Params   []float64      `yaml:"params,omitempty"`
	Mesh     string         `yaml:"mesh,omitempty"` // OBJ asset name
	Position [3]float64     `yaml:"position"`
	Rotation [3]float64     `yaml:"rotation"` // Degrees
	Scale    [3]float64     `yaml:"scale"`    // Zero means 1
	Spin     [3]float64     `yaml:"spin"`     // Degrees per second
	Material MaterialConfig `yaml:"material"`
	Visible  *bool          `yaml:"visible,omitempty"`
}

// IsVisible reports whether the model starts visible. Unset means visible.
func (m ModelConfig) IsVisible() bool {
	return m.Visible == nil || *m.Visible
}

// ScaleVec returns the scale with zero components replaced by 1.
func (m ModelConfig) ScaleVec() math.Vec3 {
	s := m.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	return math.Vec3{X: s[0], Y: s[1], Z: s[2]}
}

// MaterialConfig holds surface colors. Zero colors fall back to the
// renderer default material.
type MaterialConfig struct {
	Ambient   math.Color `yaml:"ambient"`
	Diffuse   math.Color `yaml:"diffuse"`
	Specular  math.Color `yaml:"specular"`
	Shininess float64    `yaml:"shininess"`
}

// IsZero reports whether no material values were set.
func (m MaterialConfig) IsZero() bool {
	return m == MaterialConfig{}
}

// AssetsConfig holds asset search paths.
type AssetsConfig struct {
	Paths         []string `yaml:"paths"`
	ScreenshotDir string   `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	Quiet      bool   `yaml:"quiet,omitempty"` // Disable console output
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "facet",
			Width:   800,
			Height:  600,
			VSync:   true,
			Backend: BackendSDL,
		},
		Render: RenderConfig{
			Ambient:          math.Color{R: 0.27, G: 0.54, B: 0.6, A: 1},
			AmbientIntensity: 1,
			Supersample:      2,
		},
		Camera: CameraConfig{
			FOV:              60,
			Near:             0.1,
			Far:              100,
			Yaw:              -90,
			MoveSpeed:        4,
			MouseSensitivity: 0.15,
		},
		Scene: SceneConfig{
			Models: []ModelConfig{
				{
					Name:     "globe",
					Kind:     KindSphere,
					Params:   []float64{32, 16, 1},
					Position: [3]float64{0, 0, -5},
					Spin:     [3]float64{0, 30, 0},
					Material: MaterialConfig{
						Ambient:   math.Color{R: 0.9, G: 0.6, B: 0.3, A: 1},
						Diffuse:   math.Color{R: 0.9, G: 0.6, B: 0.3, A: 1},
						Specular:  math.White,
						Shininess: 32,
					},
				},
				{
					Name:     "crate",
					Kind:     KindCuboid,
					Params:   []float64{1, 1, 1},
					Position: [3]float64{3, 0, -7},
					Rotation: [3]float64{0, 30, 0},
					Scale:    [3]float64{0.75, 0.75, 0.75},
					Spin:     [3]float64{20, 0, 10},
				},
				{
					Name:     "floor",
					Kind:     KindRect,
					Params:   []float64{10, 10},
					Position: [3]float64{0, -1.5, -6},
					Rotation: [3]float64{-90, 0, 0},
				},
			},
		},
		Assets: AssetsConfig{
			Paths:         []string{"assets"},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
