package abi

import (
	"math"
	"unsafe"
)

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// Fits reports whether size bytes starting at offset lie within a buffer
// of the given length.
func Fits(offset, size uint32, length int) bool {
	end, ok := SafeAddU32(offset, size)
	return ok && uint64(end) <= uint64(length)
}

// Overlaps reports whether a and b share any byte of backing memory.
// Empty slices never overlap.
func Overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))
	bEnd := bStart + uintptr(len(b))
	return aStart < bEnd && bStart < aEnd
}

const (
	MaxDepth = 64 // default nesting limit for recursive traversal
)
