package renderer

import (
	"image/color"
	"math"

	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/geometry"
	"github.com/df07/tinytracer/pkg/integrator"
)

// RenderPixel estimates the color of pixel (i, j) by averaging samples
// jittered camera rays. j counts rows from the bottom of the image.
func RenderPixel(camera *geometry.Camera, scene integrator.Scene, integ integrator.Integrator,
	i, j, width, height, samples, maxDepth int, sampler core.Sampler) color.RGBA {

	// Single-pixel dimensions would divide by zero
	uScale := 1.0 / float64(max(width-1, 1))
	vScale := 1.0 / float64(max(height-1, 1))

	var ps PixelStats
	for sample := 0; sample < samples; sample++ {
		u := (float64(i) + sampler.Get1D()) * uScale
		v := (float64(j) + sampler.Get1D()) * vScale

		ray := camera.GetRay(u, v, sampler)
		ps.AddSample(integ.RayColor(ray, scene, sampler, maxDepth))
	}

	return vec3ToColor(ps.GetColor())
}

// vec3ToColor converts a linear color to RGBA with gamma correction and clamping.
// NaN and infinite components become black.
func vec3ToColor(colorVec core.Color) color.RGBA {
	colorVec = core.NewColor(finiteOrZero(colorVec.X), finiteOrZero(colorVec.Y), finiteOrZero(colorVec.Z))

	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
