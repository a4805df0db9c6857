package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		vector Vec3
	}{
		{"Axis aligned", NewVec3(3, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 1)},
		{"Negative components", NewVec3(-2, 5, -7)},
		{"Tiny", NewVec3(1e-5, -2e-5, 3e-5)},
		{"Huge", NewVec3(1e9, 4e8, -2e9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := tt.vector.Normalize()
			if math.Abs(unit.Length()-1.0) > 1e-6 {
				t.Errorf("Expected unit length, got %f for %v", unit.Length(), unit)
			}
			// Same direction as the input
			if unit.Dot(tt.vector) <= 0 {
				t.Errorf("Normalized vector %v points away from %v", unit, tt.vector)
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	result := Vec3{}.Normalize()
	if result != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", result)
	}
	if !result.IsFinite() {
		t.Error("Normalizing the zero vector must not produce NaN")
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", a.Cross(b), NewVec3(27, 6, -13)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"Lerp", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.got.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot product 12, got %f", dot)
	}
	if ls := a.LengthSquared(); ls != 14 {
		t.Errorf("Expected squared length 14, got %f", ls)
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := NewVec3(0.3, -1.2, 2.5)
	b := NewVec3(-4, 0.1, 0.7)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("Cross product %v is not orthogonal to its inputs", c)
	}
}

func TestVec3_Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	reflected := v.Reflect(n)

	expected := NewVec3(1, 1, 0)
	if reflected.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_Refract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("Index ratio 1 keeps direction", func(t *testing.T) {
		v := NewVec3(1, -2, 0.5).Normalize()
		refracted := v.Refract(n, 1.0)
		if refracted.Subtract(v).Length() > 1e-9 {
			t.Errorf("Expected %v, got %v", v, refracted)
		}
	})

	t.Run("Entering denser medium bends toward normal", func(t *testing.T) {
		v := NewVec3(1, -1, 0).Normalize()
		refracted := v.Refract(n, 1.0/1.5)

		if math.Abs(refracted.Length()-1.0) > 1e-9 {
			t.Errorf("Refracted vector should stay unit length, got %f", refracted.Length())
		}

		// Snell: sin(theta_t) = sin(theta_i) / 1.5
		sinI := math.Sqrt(0.5)
		sinT := math.Abs(refracted.X)
		if math.Abs(sinT-sinI/1.5) > 1e-9 {
			t.Errorf("Expected sin(theta_t)=%f, got %f", sinI/1.5, sinT)
		}
		if refracted.Y >= 0 {
			t.Errorf("Refracted ray should continue into the surface, got %v", refracted)
		}
	})
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-3, 0, 0).NearZero() {
		t.Error("Expected 1e-3 component not to be near zero")
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	c := NewColor(0.25, 1.0, -0.5).GammaCorrect(2.0)
	expected := NewColor(0.5, 1.0, 0)
	if c.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	p := ray.At(1.5)
	expected := NewVec3(1, 2, 0)
	if p != expected {
		t.Errorf("Expected %v, got %v", expected, p)
	}
}
