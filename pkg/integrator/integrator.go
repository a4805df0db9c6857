package integrator

import (
	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/material"
)

// Scene is the read-only view of a scene an integrator needs.
// Defined here to avoid an import cycle with the scene package.
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BackgroundColors() (topColor, bottomColor core.Color)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray, allowing at
	// most depth surface interactions
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Color
}
