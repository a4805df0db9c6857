package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/tinytracer/pkg/core"
)

// DefaultFocusDistance is used when CameraConfig.FocusDistance is zero
const DefaultFocusDistance = 10.0

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	DefocusAngle  float64   // Aperture cone angle in degrees, 0 = pinhole
	FocusDistance float64   // Distance to the plane of perfect focus
}

// Validate rejects configurations that would produce a degenerate camera
func (c CameraConfig) Validate() error {
	view := c.LookFrom.Subtract(c.LookAt)
	switch {
	case view.NearZero():
		return errors.New("camera look-from and look-at must differ")
	case c.Up.Cross(view).NearZero():
		return errors.New("camera up vector must not be parallel to the view direction")
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("camera vertical field of view must be in (0, 180), got %g", c.VFov)
	case c.AspectRatio <= 0:
		return fmt.Errorf("camera aspect ratio must be positive, got %g", c.AspectRatio)
	case c.DefocusAngle < 0:
		return fmt.Errorf("camera defocus angle must not be negative, got %g", c.DefocusAngle)
	case c.FocusDistance < 0:
		return fmt.Errorf("camera focus distance must not be negative, got %g", c.FocusDistance)
	}
	return nil
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering.
// All fields are derived once in NewCamera and never change.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	defocusAngle    float64
	defocusDiskU    core.Vec3
	defocusDiskV    core.Vec3
}

// NewCamera creates a thin-lens camera from the config
func NewCamera(config CameraConfig) *Camera {
	focusDist := config.FocusDistance
	if focusDist == 0 {
		focusDist = DefaultFocusDistance
	}

	// Viewport sits on the focus plane, not at unit distance
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h * focusDist
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	defocusRadius := focusDist * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		defocusAngle:    config.DefocusAngle,
		defocusDiskU:    u.Multiply(defocusRadius),
		defocusDiskV:    v.Multiply(defocusRadius),
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1,
// with (0, 0) at the lower-left corner of the viewport
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	pixelSample := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	rayOrigin := c.origin
	if c.defocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	// Unnormalized: t=1 lands on the focus plane
	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// Origin returns the camera center
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// defocusDiskSample returns a random point on the camera aperture
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.origin.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
