package scene

import (
	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/geometry"
	"github.com/df07/tinytracer/pkg/material"
)

// NewGroundScene creates a single large matte ground sphere under the default sky,
// seen through a pinhole camera at eye level
func NewGroundScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 16.0 / 9.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.world.Add(geometry.NewSphere(core.NewVec3(0, -100.5, 0), 100,
		material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))

	return s
}

// NewLitSphereScene creates a matte sphere lit only by an emissive sphere
// against a black sky
func NewLitSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0.5, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)

	// Lit only by the emitter
	s.TopColor = core.Color{}
	s.BottomColor = core.Color{}

	matte := material.NewLambertian(core.NewColor(0.7, 0.7, 0.7))
	light := material.NewEmissive(core.NewColor(1, 1, 1), 5)

	s.world.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, matte),
		geometry.NewSphere(core.NewVec3(1, 1.5, -0.5), 0.5, light),
	)

	return s
}

// NewMaterialsScene places one sphere of each material side by side on a
// ground sphere, with a shallow depth of field focused on the center sphere
func NewMaterialsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	lookFrom := core.NewVec3(-2, 2, 1)
	lookAt := core.NewVec3(0, 0, -1)

	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30.0,
		AspectRatio:   16.0 / 9.0,
		DefocusAngle:  2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)

	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)
	silver := material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)
	light := material.NewEmissive(core.NewColor(1, 0.95, 0.9), 3)

	s.world.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0, 0.15, -2.2), 0.65, silver),
		geometry.NewSphere(core.NewVec3(0.4, 1.2, -0.4), 0.2, light),
	)

	return s
}
