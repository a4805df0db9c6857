package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/geometry"
	"github.com/df07/tinytracer/pkg/material"
	"github.com/df07/tinytracer/pkg/scene"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg mirrors geometry.CameraConfig. Omitted fields keep the defaults
// below; given fields are used as written, zero values included.
type CameraCfg struct {
	LookFrom      *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt        *Vec3Cfg `json:"lookAt,omitempty"`
	Up            *Vec3Cfg `json:"up,omitempty"`
	VFov          *float64 `json:"vfov,omitempty"`
	AspectRatio   *float64 `json:"aspectRatio,omitempty"`
	DefocusAngle  *float64 `json:"defocusAngle,omitempty"`
	FocusDistance *float64 `json:"focusDistance,omitempty"`
}

// BackgroundCfg sets the sky gradient
type BackgroundCfg struct {
	Top    Vec3Cfg `json:"top"`
	Bottom Vec3Cfg `json:"bottom"`
}

// SamplingCfg overrides the scene's sampling defaults
type SamplingCfg struct {
	SamplesPerPixel int `json:"samplesPerPixel,omitempty"`
	MaxDepth        int `json:"maxDepth,omitempty"`
}

// MaterialCfg describes one named material. Which fields apply depends on Type.
type MaterialCfg struct {
	Type      string   `json:"type"`                // lambertian, metal, dielectric or emissive
	Albedo    *Vec3Cfg `json:"albedo,omitempty"`    // lambertian, metal
	Fuzz      float64  `json:"fuzz,omitempty"`      // metal, clamped to [0,1]
	IOR       float64  `json:"ior,omitempty"`       // dielectric
	Color     *Vec3Cfg `json:"color,omitempty"`     // emissive
	Intensity float64  `json:"intensity,omitempty"` // emissive, defaults to 1
}

// SphereCfg places a sphere using a named material
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"` // negative for the inner wall of a shell
	Material string  `json:"material"`
}

// SceneCfg is the top level of a JSON scene file
type SceneCfg struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Background  *BackgroundCfg         `json:"background,omitempty"`
	Sampling    SamplingCfg            `json:"sampling,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Camera defaults for scene files
var defaultCameraConfig = geometry.CameraConfig{
	LookFrom:    core.NewVec3(0, 0, 0),
	LookAt:      core.NewVec3(0, 0, -1),
	Up:          core.NewVec3(0, 1, 0),
	VFov:        40.0,
	AspectRatio: 16.0 / 9.0,
}

// LoadScene loads and builds a JSON scene file
func LoadScene(filename string, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := DecodeScene(file, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// DecodeScene reads a JSON scene description. Unknown fields are rejected.
func DecodeScene(r io.Reader, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	var cfg SceneCfg
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return cfg.Build(cameraOverrides...)
}

// Build validates the config and constructs the scene
func (cfg SceneCfg) Build(cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	cameraConfig := cfg.Camera.apply(defaultCameraConfig)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	s := scene.NewScene(cameraConfig)

	if cfg.Background != nil {
		s.TopColor = cfg.Background.Top.Vec3()
		s.BottomColor = cfg.Background.Bottom.Vec3()
	}
	if cfg.Sampling.SamplesPerPixel < 0 || cfg.Sampling.MaxDepth < 0 {
		return nil, errors.New("sampling values must not be negative")
	}
	if cfg.Sampling.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.Sampling.SamplesPerPixel
	}
	if cfg.Sampling.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.Sampling.MaxDepth
	}

	// Each named material is built once and shared by every sphere using it
	materials := make(map[string]material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		m, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	for i, sc := range cfg.Spheres {
		if sc.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		m, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
		}
		if err := s.AddSphere(sc.Center.Vec3(), sc.Radius, m); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// apply overlays every field present in the file onto base
func (c CameraCfg) apply(base geometry.CameraConfig) geometry.CameraConfig {
	config := base
	if c.LookFrom != nil {
		config.LookFrom = c.LookFrom.Vec3()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.Vec3()
	}
	if c.Up != nil {
		config.Up = c.Up.Vec3()
	}
	if c.VFov != nil {
		config.VFov = *c.VFov
	}
	if c.AspectRatio != nil {
		config.AspectRatio = *c.AspectRatio
	}
	if c.DefocusAngle != nil {
		config.DefocusAngle = *c.DefocusAngle
	}
	if c.FocusDistance != nil {
		config.FocusDistance = *c.FocusDistance
	}
	return config
}

// Build validates and constructs the material
func (mc MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(mc.Type) {
	case "lambertian":
		if mc.Albedo == nil {
			return nil, errors.New("lambertian requires albedo")
		}
		return material.NewLambertian(mc.Albedo.Vec3()), nil
	case "metal":
		if mc.Albedo == nil {
			return nil, errors.New("metal requires albedo")
		}
		return material.NewMetal(mc.Albedo.Vec3(), mc.Fuzz), nil
	case "dielectric":
		if mc.IOR <= 0 {
			return nil, fmt.Errorf("dielectric requires a positive ior, got %g", mc.IOR)
		}
		return material.NewDielectric(mc.IOR), nil
	case "emissive":
		if mc.Color == nil {
			return nil, errors.New("emissive requires color")
		}
		intensity := mc.Intensity
		if intensity == 0 {
			intensity = 1
		}
		if intensity < 0 {
			return nil, fmt.Errorf("emissive intensity must not be negative, got %g", intensity)
		}
		return material.NewEmissive(mc.Color.Vec3(), intensity), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return errors.New("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return errors.New("invalid file path: null bytes not allowed")
	}

	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return errors.New("invalid file type: only .json scene files are allowed")
	}

	return nil
}
