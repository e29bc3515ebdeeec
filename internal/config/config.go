// Package config handles application configuration and scene layout.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Portal   PortalConfig   `yaml:"portal"`
	Scene    SceneConfig    `yaml:"scene"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [3]float32 `yaml:"clear_color"`

	// Directional light, degrees
	SunLongitude float32 `yaml:"sun_longitude"`
	SunLatitude  float32 `yaml:"sun_latitude"`
}

// CameraConfig holds player camera settings.
type CameraConfig struct {
	FOV              float32 `yaml:"fov"` // Vertical, degrees
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	MoveSpeed        float32 `yaml:"move_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

// PortalConfig holds settings shared by every portal.
type PortalConfig struct {
	NearClipOffset float32 `yaml:"near_clip_offset"`
	NearClipLimit  float32 `yaml:"near_clip_limit"`
	RecursionLimit int     `yaml:"recursion_limit"`
	TriggerPadding float32 `yaml:"trigger_padding"` // Grows trigger boxes around screens
}

// SceneConfig is the world layout.
type SceneConfig struct {
	Player     PlayerLayout      `yaml:"player"`
	Portals    []PortalLayout    `yaml:"portals"`
	Travellers []TravellerLayout `yaml:"travellers"`
	Props      []PropLayout      `yaml:"props"`
}

// PlayerLayout places the player camera.
type PlayerLayout struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`   // Degrees
	Pitch    float32    `yaml:"pitch"` // Degrees
}

// PortalLayout places one portal. Rotation is Euler degrees.
type PortalLayout struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Width    float32    `yaml:"width"`
	Height   float32    `yaml:"height"`
	Link     string     `yaml:"link"`
	Color    [3]float32 `yaml:"color"` // Shown while the view is masked
}

// TravellerLayout places a moving body that can pass through portals.
type TravellerLayout struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    [3]float32 `yaml:"scale"`
	Color    [3]float32 `yaml:"color"`
	Velocity [3]float32 `yaml:"velocity"`
}

// PropLayout places static geometry.
type PropLayout struct {
	Name     string     `yaml:"name"`
	Mesh     string     `yaml:"mesh"` // cube or quad
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    [3]float32 `yaml:"scale"`
	Color    [3]float32 `yaml:"color"`
}

// DebugConfig holds debug display and capture settings.
type DebugConfig struct {
	ShowFPS       bool   `yaml:"show_fps"`
	ShowTriggers  bool   `yaml:"show_triggers"`
	CaptureDir    string `yaml:"capture_dir"`
	CaptureFormat string `yaml:"capture_format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ClearColor: [3]float32{0.1, 0.1, 0.15},

			SunLongitude: 53,
			SunLatitude:  63,
		},
		Camera: CameraConfig{
			FOV:              60,
			Near:             0.1,
			Far:              200,
			MoveSpeed:        4,
			MouseSensitivity: 0.003,
		},
		Portal: PortalConfig{
			NearClipOffset: 0.05,
			NearClipLimit:  0.2,
			RecursionLimit: 5,
			TriggerPadding: 0.6,
		},
		Scene: DefaultScene(),
		Debug: DebugConfig{
			CaptureDir:    "captures",
			CaptureFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultScene is a corridor with two portals facing the same way, so
// anything walking through one comes out of the other and loops.
func DefaultScene() SceneConfig {
	return SceneConfig{
		Player: PlayerLayout{
			Position: [3]float32{0, 1.6, 6},
		},
		Portals: []PortalLayout{
			{
				Name:     "blue",
				Position: [3]float32{-5, 1.5, 0},
				Rotation: [3]float32{0, 90, 0},
				Width:    2,
				Height:   3,
				Link:     "orange",
				Color:    [3]float32{0.2, 0.4, 1},
			},
			{
				Name:     "orange",
				Position: [3]float32{5, 1.5, 0},
				Rotation: [3]float32{0, 90, 0},
				Width:    2,
				Height:   3,
				Link:     "blue",
				Color:    [3]float32{1, 0.5, 0.1},
			},
		},
		Travellers: []TravellerLayout{
			{
				Name:     "crate",
				Position: [3]float32{0, 0.5, 0},
				Scale:    [3]float32{0.8, 0.8, 0.8},
				Color:    [3]float32{0.8, 0.2, 0.2},
				Velocity: [3]float32{1.5, 0, 0},
			},
		},
		Props: []PropLayout{
			{
				Name:     "floor",
				Mesh:     "cube",
				Position: [3]float32{0, -0.05, 0},
				Scale:    [3]float32{30, 0.1, 30},
				Color:    [3]float32{0.45, 0.45, 0.5},
			},
			{
				Name:     "pillar",
				Mesh:     "cube",
				Position: [3]float32{-9, 1.5, -3},
				Scale:    [3]float32{1, 3, 1},
				Color:    [3]float32{0.3, 0.7, 0.3},
			},
			{
				Name:     "pillar",
				Mesh:     "cube",
				Position: [3]float32{9, 1.5, 3},
				Scale:    [3]float32{1, 3, 1},
				Color:    [3]float32{0.7, 0.7, 0.2},
			},
		},
	}
}
