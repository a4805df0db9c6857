package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/tinytracer/pkg/core"
)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
	}
}

func TestCamera_PinholeOrigin(t *testing.T) {
	config := pinholeConfig()
	config.LookFrom = core.NewVec3(-1.2, 1.4, 1.6)
	config.LookAt = core.NewVec3(-0.1, 0.1, -1.5)
	config.VFov = 40
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i <= 10; i++ {
		for j := 0; j <= 10; j++ {
			s, tt := float64(i)/10, float64(j)/10
			ray := camera.GetRay(s, tt, sampler)
			if ray.Origin != config.LookFrom {
				t.Fatalf("GetRay(%f, %f) origin = %v, expected %v", s, tt, ray.Origin, config.LookFrom)
			}
		}
	}
}

func TestCamera_ViewportGeometry(t *testing.T) {
	config := pinholeConfig()
	config.FocusDistance = 1.0
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// vfov 90 at focus distance 1 gives viewport height 2, width 4
	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"right edge middle", 1, 0.5, core.NewVec3(2, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Unnormalized direction reaches the focus plane at t=1
	ray := camera.GetRay(0.5, 0.5, sampler)
	expected := core.NewVec3(0, 0, -DefaultFocusDistance)
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCamera_Defocus(t *testing.T) {
	config := pinholeConfig()
	config.DefocusAngle = 10
	config.FocusDistance = 3.4
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	radius := config.FocusDistance * math.Tan(5*math.Pi/180)
	focusPoint := camera.GetRay(0.5, 0.5, sampler).At(1)

	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		offset := ray.Origin.Subtract(config.LookFrom)

		if offset.Length() > radius+1e-9 {
			t.Fatalf("Lens sample %v outside aperture radius %f", offset, radius)
		}
		// The lens lies in the plane perpendicular to the view axis
		if math.Abs(offset.Z) > 1e-9 {
			t.Fatalf("Lens sample %v leaves the lens plane", offset)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}

		// Every lens sample converges on the same focus plane point
		if ray.At(1).Subtract(focusPoint).Length() > 1e-9 {
			t.Fatalf("Expected ray through %v, got %v", focusPoint, ray.At(1))
		}
	}

	if !moved {
		t.Error("Expected lens samples away from the camera center")
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*CameraConfig)
		wantErr bool
	}{
		{"valid", func(c *CameraConfig) {}, false},
		{"same position and target", func(c *CameraConfig) { c.LookAt = c.LookFrom }, true},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, true},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }, true},
		{"fov too wide", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }, true},
		{"negative defocus", func(c *CameraConfig) { c.DefocusAngle = -1 }, true},
		{"negative focus", func(c *CameraConfig) { c.FocusDistance = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pinholeConfig()
			tt.modify(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := pinholeConfig()
	merged := MergeCameraConfig(base, CameraConfig{AspectRatio: 1.5, DefocusAngle: 0.6})

	if merged.AspectRatio != 1.5 || merged.DefocusAngle != 0.6 {
		t.Errorf("Expected overrides applied, got %+v", merged)
	}
	if merged.LookFrom != base.LookFrom || merged.VFov != base.VFov {
		t.Errorf("Expected unset fields kept from base, got %+v", merged)
	}
}
