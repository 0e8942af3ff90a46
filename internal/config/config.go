// Package config handles picktool configuration loading and management.
package config

// Config holds all picktool settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Picking  PickingConfig  `yaml:"picking"`
	Bench    BenchConfig    `yaml:"bench"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the size of the virtual screen rays are cast from.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds the perspective camera looking at the scene.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FovDeg float32    `yaml:"fov_deg"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// SceneConfig holds the procedural demo scene layout.
type SceneConfig struct {
	Grid           int     `yaml:"grid"`    // Instances per side of the square grid
	Spacing        float32 `yaml:"spacing"` // Distance between instance centers
	SphereRings    int     `yaml:"sphere_rings"`
	SphereSegments int     `yaml:"sphere_segments"`
	Heightfield    int     `yaml:"heightfield"` // Ground cells per side, 0 disables the ground
	CellSize       float32 `yaml:"cell_size"`
}

// PickingConfig holds BVH and picking settings.
type PickingConfig struct {
	MaxLeafPrims int  `yaml:"max_leaf_prims"` // Warn when a mesh BVH leaf holds more
	Indexed      bool `yaml:"indexed"`        // Keep meshes indexed instead of expanding to soup
}

// BenchConfig holds settings for the bench command.
type BenchConfig struct {
	Rays int   `yaml:"rays"`
	Seed int64 `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 12, 24},
			Target: [3]float32{0, 0, 0},
			FovDeg: 60,
			Near:   0.1,
			Far:    500,
		},
		Scene: SceneConfig{
			Grid:           4,
			Spacing:        4,
			SphereRings:    12,
			SphereSegments: 24,
			Heightfield:    32,
			CellSize:       1,
		},
		Picking: PickingConfig{
			MaxLeafPrims: 8,
			Indexed:      true,
		},
		Bench: BenchConfig{
			Rays: 100000,
			Seed: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
