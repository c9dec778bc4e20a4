package reactive

import (
	"math"
	"reflect"
)

// defaultEquals reports whether a and b are the same value.
//
// Floats follow sameness rather than IEEE equality: NaN equals NaN and
// +0 differs from -0. Values that are comparable at run time use ==, which
// is identity for pointers, channels and maps held in interfaces.
// Everything else falls back to reflect.DeepEqual.
func defaultEquals[T any](a, b T) bool {
	x, y := any(a), any(b)

	switch fx := x.(type) {
	case float64:
		fy, ok := y.(float64)
		return ok && sameFloat(fx, fy)
	case float32:
		fy, ok := y.(float32)
		return ok && sameFloat(float64(fx), float64(fy))
	}

	if x == nil || y == nil {
		return x == nil && y == nil
	}

	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false
	}
	if vx.Comparable() && vy.Comparable() {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}

func sameFloat(a, b float64) bool {
	if a == b {
		return a != 0 || math.Signbit(a) == math.Signbit(b)
	}
	return math.IsNaN(a) && math.IsNaN(b)
}
