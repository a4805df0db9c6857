package scene

import (
	"errors"
	"fmt"

	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/geometry"
	"github.com/df07/tinytracer/pkg/material"
)

// ErrSceneFrozen is returned when a frozen scene is modified
var ErrSceneFrozen = errors.New("scene is frozen")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	TopColor       core.Color // Sky color straight up
	BottomColor    core.Color // Sky color straight down
	SamplingConfig SamplingConfig

	world  *geometry.HittableList // Only grows through Add, before Freeze
	frozen bool
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Default sky gradient
var (
	DefaultTopColor    = core.NewColor(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewColor(1.0, 1.0, 1.0)
)

// DefaultSamplingConfig returns the sampling settings used when none are given
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}
}

// NewScene creates an empty scene viewed through a camera built from cameraConfig
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		world:          geometry.NewHittableList(),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// Add appends shapes to the world. Scenes only grow before rendering starts.
func (s *Scene) Add(shapes ...geometry.Shape) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.world.Add(shapes...)
	return nil
}

// AddSphere adds a sphere with the given material to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	return s.Add(geometry.NewSphere(center, radius, mat))
}

// SetCameraConfig rebuilds the camera from config
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
	return nil
}

// Freeze validates the scene and makes it read-only. After Freeze the scene
// may be shared between rendering goroutines. Freezing twice is a no-op.
func (s *Scene) Freeze() error {
	if s.frozen {
		return nil
	}
	if s.Camera == nil {
		return errors.New("scene has no camera")
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}
	if s.world == nil {
		s.world = geometry.NewHittableList()
	}
	s.frozen = true
	return nil
}

// Frozen reports whether Freeze has completed
func (s *Scene) Frozen() bool {
	return s.frozen
}

// Hit finds the closest intersection with any object in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.world.Hit(ray, tMin, tMax)
}

// BackgroundColors returns the sky gradient colors
func (s *Scene) BackgroundColors() (topColor, bottomColor core.Color) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.world.Len()
}

// Shapes returns a copy of the scene's shapes in insertion order
func (s *Scene) Shapes() []geometry.Shape {
	return append([]geometry.Shape(nil), s.world.Shapes...)
}
