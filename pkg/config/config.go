// Package config loads the editor configuration from YAML.
//
// A file is read over Default, so it only needs the keys it changes:
//
//	camera:
//	  radius: 7
//	  clamp: true
//	palette:
//	  - name: horn
//	    mesh: meshes/horn.ply
//	    texture: horn
//	  - name: cube
//	    mesh: cube
//	keys:
//	  q: cycle-palette
//	  e: none
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/bedeck/pkg/editor"
	"github.com/taigrr/bedeck/pkg/models"
	"github.com/taigrr/bedeck/pkg/render"
)

var (
	// ErrEmptyPalette is returned when the palette has no entries.
	ErrEmptyPalette = editor.ErrEmptyPalette
	// ErrInvalid wraps every other validation failure.
	ErrInvalid = errors.New("invalid config")
)

// Unbind removes a default key binding when used as the action of a key.
const Unbind = "none"

// Config is the whole configuration file.
type Config struct {
	// Assets is the directory relative mesh and texture paths resolve against.
	Assets  string            `yaml:"assets,omitempty"`
	Palette []Entry           `yaml:"palette"`
	Keys    map[string]string `yaml:"keys,omitempty"`
	Camera  Camera            `yaml:"camera"`
	Canvas  Canvas            `yaml:"canvas"`
	Preview Preview           `yaml:"preview"`
	Steps   Steps             `yaml:"steps"`
	Picking Picking           `yaml:"picking"`
	Display Display           `yaml:"display"`
}

// Entry is one palette entry. Mesh is a primitive name (cube, sphere, cone,
// cylinder) or a .ply, .glb or .gltf file. The cube primitive places
// pickable blocks; everything else places decorations. Texture is a
// procedural texture name or an image file, empty for flat color. A .glb or
// .gltf Texture selects the texture embedded in that model.
type Entry struct {
	Name    string `yaml:"name"`
	Mesh    string `yaml:"mesh"`
	Texture string `yaml:"texture,omitempty"`
}

// Camera configures the orbit camera and its lens.
type Camera struct {
	Radius    float64 `yaml:"radius"`
	FOV       float64 `yaml:"fov"` // vertical, degrees
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	Gain      float64 `yaml:"gain"`
	ZoomGain  float64 `yaml:"zoom_gain"`
	Clamp     bool    `yaml:"clamp"`
	MinRadius float64 `yaml:"min_radius"`
}

// Canvas is the fixed box decorations are placed on.
type Canvas struct {
	Position [3]float64 `yaml:"position,flow"`
	Size     [3]float64 `yaml:"size,flow"`
	Color    string     `yaml:"color"`
}

// Preview sets the starting look of the placement preview.
type Preview struct {
	Scale float64 `yaml:"scale"`
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
}

// Steps are the per-frame increments of the held controls, at 60 frames
// per second.
type Steps struct {
	Scale    float64 `yaml:"scale"`
	MinScale float64 `yaml:"min_scale"`
	Yaw      float64 `yaml:"yaw"`
	Color    float64 `yaml:"color"`
}

// Picking tunes the plane test behind every ray query.
type Picking struct {
	ParallelEpsilon float64 `yaml:"parallel_epsilon"`
	FrontTolerance  float64 `yaml:"front_tolerance"`
}

// Display configures the terminal session.
type Display struct {
	FPS        int        `yaml:"fps"`
	Background string     `yaml:"background"`
	Shader     string     `yaml:"shader"`
	Light      [3]float64 `yaml:"light,flow"`
	// MeshSize is the largest dimension loaded mesh files are fitted to.
	MeshSize        float64       `yaml:"mesh_size"`
	SmoothScroll    bool          `yaml:"smooth_scroll"`
	SmoothFrequency float64       `yaml:"smooth_frequency"`
	HoldTimeout     time.Duration `yaml:"hold_timeout"`
	Screenshots     string        `yaml:"screenshots"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Palette: []Entry{
			{Name: "eye", Mesh: models.PrimitiveSphere, Texture: "eye"},
			{Name: "horn", Mesh: models.PrimitiveCone, Texture: "horn"},
			{Name: "nose", Mesh: models.PrimitiveSphere},
			{Name: "duck", Mesh: models.PrimitiveSphere, Texture: "duck"},
			{Name: "mouth", Mesh: models.PrimitiveCylinder, Texture: "mouth"},
			{Name: "cube", Mesh: models.PrimitiveCube},
		},
		Camera: Camera{
			Radius:    5,
			FOV:       60,
			Near:      0.5,
			Far:       10,
			Gain:      0.05,
			ZoomGain:  0.05,
			MinRadius: 1,
		},
		Canvas: Canvas{
			Size:  [3]float64{1, 1, 1},
			Color: "#ffffff",
		},
		Preview: Preview{
			Scale: 0.1,
			Color: "#000000",
			Alpha: 0.5,
		},
		Steps: Steps{
			Scale:    0.005,
			MinScale: 0.1,
			Yaw:      0.02,
			Color:    0.02,
		},
		Picking: Picking{
			ParallelEpsilon: 0,
			FrontTolerance:  1e-5,
		},
		Display: Display{
			FPS:             60,
			Background:      "#1e1e28",
			Shader:          render.ShaderShaded,
			Light:           [3]float64{0.4, 1, 0.6},
			MeshSize:        1,
			SmoothFrequency: 6,
			HoldTimeout:     400 * time.Millisecond,
			Screenshots:     ".",
		},
	}
}

// Load reads path over Default and validates the result. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes YAML from r over Default and validates the result. An empty
// document yields Default.
func Read(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// ParseColor parses a "#rrggbb" or "#rgb" hex color or an ANSI color number.
func ParseColor(s string) (color.RGBA, error) {
	c := lipgloss.Color(s)
	if _, ok := c.(lipgloss.NoColor); ok {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}, nil
}

// BackgroundColor returns the parsed display background.
func (d Display) BackgroundColor() (color.RGBA, error) {
	return ParseColor(d.Background)
}
