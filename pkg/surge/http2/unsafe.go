package http2

import "unsafe"

// bytesToString converts a byte slice to a string with zero
// allocations.
//
// SAFETY REQUIREMENTS:
//  1. The returned string must be READ-ONLY (never modified)
//  2. The source byte slice must not be modified while the string is
//     in use
//
// This is safe for Huffman decoding because the output slice is
// freshly built for each decoded string and nothing else retains a
// reference to it.
//
//go:inline
func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
