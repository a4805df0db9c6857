package scene

import (
	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/geometry"
	"github.com/df07/tinytracer/pkg/material"
)

// NewDefaultScene creates the showcase scene: a ground sphere, two hollow
// glass shells, three matte spheres and two emissive spheres
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(-1.2, 1.4, 1.6),
		LookAt:      core.NewVec3(-0.1, 0.1, -1.5),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 16.0 / 9.0,
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)

	// Create materials
	ground := material.NewLambertian(core.NewColor(0.27, 0.28, 0.26))
	glass := material.NewDielectric(1.5)
	pink := material.NewLambertian(core.NewColor(1, 0.45, 0.50))
	green := material.NewLambertian(core.NewColor(0.45, 1, 0.45))
	blue := material.NewLambertian(core.NewColor(0.55, 0.65, 1))
	warmLight := material.NewEmissive(core.NewColor(1, 0.9, 0.7), 4)
	coolLight := material.NewEmissive(core.NewColor(0.7, 0.85, 1), 2.5)

	s.world.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, 0), 100, ground),

		// Hollow glass shell: negative radius flips the inner wall normal
		geometry.NewSphere(core.NewVec3(0, 0, -2), 0.7, glass),
		geometry.NewSphere(core.NewVec3(0, 0, -2), -0.6, glass),

		geometry.NewSphere(core.NewVec3(1.5, 0, -1.5), 0.5, pink),
		geometry.NewSphere(core.NewVec3(0.5, 0, -1.7), 0.4, green),

		geometry.NewSphere(core.NewVec3(-0.75, -0.2, -0.8), 0.4, glass),
		geometry.NewSphere(core.NewVec3(-0.75, -0.2, -0.8), -0.3, glass),

		geometry.NewSphere(core.NewVec3(0, 0.5, -3.5), 0.6, blue),

		geometry.NewSphere(core.NewVec3(-2, 2.5, -3), 0.8, warmLight),
		geometry.NewSphere(core.NewVec3(3, 1, -1), 0.5, coolLight),
	)

	return s
}
