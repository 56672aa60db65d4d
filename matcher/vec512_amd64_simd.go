//go:build goexperiment.simd && amd64

package matcher

import (
	"simd/archsimd"
	"unsafe"

	"github.com/BasedInc/libhat/internal/cpufeat"
	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// Vec512 is the accelerated 512-bit-tier matcher. simd/archsimd does not
// expose a 64-byte masked-compare type in the form grounded by the example
// pack; nnnkkk7-go-simdcsv's own "AVX-512" mask generator
// (generateMasksAVX512) builds a 64-bit lane mask from two 32-byte
// archsimd.Int8x32 loads (low half, high half) rather than a single wide
// op, and this tier reuses exactly that shape. It still requires AVX-512
// feature bits at runtime (spec.md §4.3: "64-byte vectors with masked
// equality compare"), gated the same way nnnkkk7 gates ToBits() to avoid
// SIGILL on CPUs without AVX-512BW/VL.
func Vec512(data []byte, ctx *plan.Context) int {
	return vectorFind(data, ctx, 64, vec512Mask)
}

func vec512Mask(window []byte, width int, probe, probe2 signature.Element, hasPivotPair bool) uint64 {
	if !cpufeat.Current().HasAVX512 || width != 64 || len(window) < 64 || !probe.FullySpecified() {
		return genericMask(window, width, probe, probe2, hasPivotPair)
	}
	if hasPivotPair && !probe2.FullySpecified() {
		return genericMask(window, width, probe, probe2, hasPivotPair)
	}

	lo := equalMask32(window[0:32], probe.Value)
	hi := equalMask32(window[32:64], probe.Value)
	m1 := lo | hi<<32

	if hasPivotPair {
		var shifted [64]byte
		if len(window) >= 65 {
			copy(shifted[:], window[1:65])
		} else {
			copy(shifted[:], window[1:64])
			shifted[63] = window[63]
		}
		lo2 := equalMask32(shifted[0:32], probe2.Value)
		hi2 := equalMask32(shifted[32:64], probe2.Value)
		m1 &= lo2 | hi2<<32
	}

	return m1
}

func equalMask32(b []byte, value byte) uint64 {
	var buf [32]byte
	copy(buf[:], b[:32])
	vec := archsimd.LoadInt8x32((*[32]int8)(unsafe.Pointer(&buf)))
	cmp := archsimd.BroadcastInt8x32(int8(value))
	return uint64(vec.Equal(cmp).ToBits())
}
