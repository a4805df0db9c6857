package integrator

import (
	"math"

	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/material"
)

// DefaultShadowBias is the minimum hit distance, keeping a scattered ray
// from re-hitting the surface it just left
const DefaultShadowBias = 1e-3

// PathTracingConfig tunes the path tracer
type PathTracingConfig struct {
	ShadowBias float64 // Lower bound of the intersection interval
}

// PathTracingIntegrator implements recursive unidirectional path tracing
// with no light sampling. Paths end on a miss, an absorption or when the
// depth budget runs out.
type PathTracingIntegrator struct {
	config PathTracingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config PathTracingConfig) *PathTracingIntegrator {
	if config.ShadowBias <= 0 {
		config.ShadowBias = DefaultShadowBias
	}
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := scene.Hit(ray, pt.config.ShadowBias, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray, scene)
	}

	colorEmitted := material.EmittedBy(hit.Material)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incoming := pt.RayColor(scatter.Scattered, scene, sampler, depth-1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// BackgroundGradient returns the sky color seen along r: a vertical blend
// from the scene's bottom color (straight down) to its top color (straight up)
func BackgroundGradient(r core.Ray, scene Scene) core.Color {
	topColor, bottomColor := scene.BackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}
