package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap180 maps an angle in degrees into the half-open range (-180, 180].
//
// Parameters:
//   - deg: the angle in degrees, any magnitude
//
// Returns:
//   - float32: the equivalent angle in (-180, 180]
func Wrap180(deg float32) float32 {
	w := math32.Mod(deg+180, 360)
	if w <= 0 {
		w += 360
	}
	return w - 180
}

// ModDeg returns a truncated remainder of deg by 360, keeping the sign of deg.
// Drag-to-rotate relies on this sign-preserving behavior.
func ModDeg(deg float32) float32 {
	return math32.Mod(deg, 360)
}

// Distance3 returns the euclidean distance between two points.
func Distance3(a, b [3]float32) float32 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}
