package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2, 3)
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Errorf("NewVector(1, 2, 3) = %v; want (1, 2, 3)", v)
	}
}

func TestVector_String(t *testing.T) {
	v := Vector3D{1.234, 5.678, -0.001}
	want := "(1.23, 5.68, -0.00)"
	if got := v.String(); got != want {
		t.Errorf("Vector3D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector3D{1, 2, 3}
	v2 := Vector3D{4, 5, 6}

	t.Run("Add", func(t *testing.T) {
		want := Vector3D{5, 7, 9}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector3D{-3, -3, -3}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector3D{2, 4, 6}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Products(t *testing.T) {
	t.Run("Dot", func(t *testing.T) {
		if got := UnitX.Dot(UnitY); got != 0 {
			t.Errorf("Dot orthogonal = %v; want 0", got)
		}
		if got := (Vector3D{1, 2, 3}).Dot(Vector3D{4, 5, 6}); got != 32 {
			t.Errorf("Dot = %v; want 32", got)
		}
	})

	t.Run("Cross", func(t *testing.T) {
		if got := UnitX.Cross(UnitY); !got.Eq(UnitZ) {
			t.Errorf("X × Y = %v; want %v", got, UnitZ)
		}
		if got := UnitY.Cross(UnitX); !got.Eq(UnitZ.Mul(-1)) {
			t.Errorf("Y × X = %v; want -Z", got)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	tests := []struct {
		name    string
		v       Vector3D
		wantLen float64
		wantSq  float64
	}{
		{"Zero", Vector3D{}, 0, 0},
		{"Unit", UnitZ, 1, 1},
		{"2-3-6 triangle", Vector3D{2, 3, 6}, 7, 49},
		{"Negative", Vector3D{-2, -3, -6}, 7, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); !floatEquals(got, tt.wantLen) {
				t.Errorf("Len() = %v; want %v", got, tt.wantLen)
			}
			if got := tt.v.LenSqr(); !floatEquals(got, tt.wantSq) {
				t.Errorf("LenSqr() = %v; want %v", got, tt.wantSq)
			}
		})
	}
}

func TestVector_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3D
		want Vector3D
	}{
		{"Axis", Vector3D{0, 0, 5}, UnitZ},
		{"Diagonal", Vector3D{2, 3, 6}, Vector3D{2.0 / 7, 3.0 / 7, 6.0 / 7}},
		{"Zero falls back to zero", Vector3D{}, Vector3D{}},
		{"Tiny falls back to zero", Vector3D{1e-12, 0, 0}, Vector3D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalize(); !got.Eq(tt.want) {
				t.Errorf("%v.Normalize() = %v; want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVector_Distance(t *testing.T) {
	a := Vector3D{1, 1, 1}
	b := Vector3D{3, 3, 2}
	if got := a.DistanceTo(b); !floatEquals(got, 3) {
		t.Errorf("DistanceTo = %v; want 3", got)
	}
	if got := a.DistanceSquaredTo(b); !floatEquals(got, 9) {
		t.Errorf("DistanceSquaredTo = %v; want 9", got)
	}
}

func TestVector_Lerp(t *testing.T) {
	start := Vector3D{0, 0, 0}
	end := Vector3D{10, -10, 20}

	tests := []struct {
		name string
		t    float64
		want Vector3D
	}{
		{"Start", 0, start},
		{"End", 1, end},
		{"Middle", 0.5, Vector3D{5, -5, 10}},
		{"Five percent", 0.05, Vector3D{0.5, -0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := start.Lerp(end, tt.t); !got.Eq(tt.want) {
				t.Errorf("Lerp(%v) = %v; want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestVector_Components(t *testing.T) {
	v := Vector3D{1, 2, 3}
	for axis, want := range []float64{1, 2, 3} {
		if got := v.Component(axis); got != want {
			t.Errorf("Component(%d) = %v; want %v", axis, got, want)
		}
	}
	if got := v.WithComponent(1, -4); !got.Eq(Vector3D{1, -4, 3}) {
		t.Errorf("WithComponent(1, -4) = %v", got)
	}
	if v.Y != 2 {
		t.Errorf("WithComponent mutated the receiver: %v", v)
	}
}
