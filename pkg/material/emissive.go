package material

import (
	"github.com/df07/tinytracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Color     core.Color // Emitted light color
	Intensity float64    // Scale applied to Color
}

// NewEmissive creates a new emissive material
func NewEmissive(color core.Color, intensity float64) *Emissive {
	return &Emissive{Color: color, Intensity: intensity}
}

// Scatter implements the Material interface for emissive materials.
// Lights terminate the path, so every incoming ray is absorbed.
func (e *Emissive) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted light for this material
func (e *Emissive) Emitted() core.Color {
	return e.Color.Multiply(e.Intensity)
}
