package geometry

import (
	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection with t in the open interval (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
