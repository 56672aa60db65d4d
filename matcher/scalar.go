// Package matcher implements the scan engine's matcher family: a scalar
// reference matcher and SIMD-accelerated tiers at 128/256/512-bit vector
// widths (spec.md §4.3). Select picks the best matcher for the running CPU;
// Scalar alone is valid at compile time, since it performs no CPU-feature
// dispatch.
package matcher

import (
	"math/bits"

	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// Scalar is the reference matcher: correct on every platform, the matcher
// CompileTimeSelect returns, and (through scalarFind) the scan used for
// unaligned head/tail remainders by every SIMD tier.
func Scalar(data []byte, ctx *plan.Context) int {
	return scalarFind(data, ctx.Signature, ctx.Alignment)
}

// scalarFind is Scalar's body, factored out so SIMD tiers can call it
// directly for pre/post remainders without building a Context.
func scalarFind(data []byte, sig signature.View, alignment plan.Alignment) int {
	n := sig.Len()
	if n == 0 || len(data) < n {
		return -1
	}

	stride := 1
	if alignment == plan.X16 {
		stride = 16
	}

	limit := len(data) - n
	for i := 0; i <= limit; {
		if stride == 1 {
			next := findByte(data[i:limit+1], sig[0])
			if next < 0 {
				return -1
			}
			i += next
		} else if !sig[0].Matches(data[i]) {
			i += stride
			continue
		}
		if matchAt(data, i, sig) {
			return i
		}
		i += stride
	}
	return -1
}

// matchAt verifies every element of sig against data starting at i,
// short-circuiting on the first mismatch.
func matchAt(data []byte, i int, sig signature.View) bool {
	for j, el := range sig {
		if !el.Matches(data[i+j]) {
			return false
		}
	}
	return true
}

// findByte scans data for the first byte satisfying el, using an 8-byte SWAR
// probe when el is fully specified (the common case), falling back to a
// byte-by-byte scan for masked/wildcard probes. Grounded on
// simd/memchr_generic_impl.go's SWAR technique.
func findByte(data []byte, el signature.Element) int {
	if el.FullySpecified() {
		return memchrSWAR(data, el.Value)
	}
	for i, b := range data {
		if el.Matches(b) {
			return i
		}
	}
	return -1
}

// memchrSWAR finds the first occurrence of needle in haystack using the
// "SIMD within a register" zero-byte-detection technique (Hacker's Delight),
// processing 8 bytes per iteration. Grounded on coregx's
// simd/memchr_generic_impl.go.
func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	i := 0
	if n >= 8 {
		needleMask := uint64(needle) * 0x0101010101010101
		for ; i+8 <= n; i += 8 {
			chunk := le64(haystack[i:])
			xor := chunk ^ needleMask
			const lo8 = 0x0101010101010101
			const hi8 = 0x8080808080808080
			hasZero := (xor - lo8) &^ xor & hi8
			if hasZero != 0 {
				return i + bits.TrailingZeros64(hasZero)/8
			}
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
