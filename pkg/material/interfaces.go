package material

import (
	"github.com/df07/tinytracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations are Lambertian, Metal, Dielectric and Emissive; all are
// immutable after construction and may be shared by any number of shapes.
type Material interface {
	// Scatter picks an outgoing ray for rayIn. A false result means the
	// ray was absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted() core.Color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// EmittedBy returns the emission of m, or black if m does not emit
func EmittedBy(m Material) core.Color {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted()
	}
	return core.Color{}
}
