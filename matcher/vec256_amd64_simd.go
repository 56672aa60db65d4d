//go:build goexperiment.simd && amd64

package matcher

import (
	"simd/archsimd"
	"unsafe"

	"github.com/BasedInc/libhat/internal/cpufeat"
	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// Vec256 is the accelerated 256-bit-tier matcher. Grounded on
// nnnkkk7-go-simdcsv's simd_scanner.go: simd/archsimd is only importable
// under GOEXPERIMENT=simd, and even then its wide comparison ops can SIGILL
// on a CPU that lacks the matching feature, so every call is preceded by a
// golang.org/x/sys/cpu runtime check exactly as that file does, falling
// back to the portable per-byte probe otherwise.
func Vec256(data []byte, ctx *plan.Context) int {
	return vectorFind(data, ctx, 32, vec256Mask)
}

func vec256Mask(window []byte, width int, probe, probe2 signature.Element, hasPivotPair bool) uint64 {
	if !cpufeat.Current().HasAVX2 || width != 32 || len(window) < 32 || !probe.FullySpecified() {
		return genericMask(window, width, probe, probe2, hasPivotPair)
	}

	var buf [32]byte
	copy(buf[:], window[:32])
	vec := archsimd.LoadInt8x32((*[32]int8)(unsafe.Pointer(&buf)))
	cmp := archsimd.BroadcastInt8x32(int8(probe.Value))
	m1 := uint64(vec.Equal(cmp).ToBits())

	if hasPivotPair && probe2.FullySpecified() {
		var buf2 [32]byte
		// Shift the window by one byte so lane t holds window[t+1]; the
		// trailing lane (t == 31) reuses the extra byte vectorFind passed
		// along when available, or repeats the last in-bounds byte
		// otherwise. A repeat can set bit 31 spuriously; that is harmless,
		// since vectorFind verifies every candidate via matchAt.
		if len(window) >= 33 {
			copy(buf2[:], window[1:33])
		} else {
			copy(buf2[:], window[1:32])
			buf2[31] = window[31]
		}
		vec2 := archsimd.LoadInt8x32((*[32]int8)(unsafe.Pointer(&buf2)))
		cmp2 := archsimd.BroadcastInt8x32(int8(probe2.Value))
		m2 := uint64(vec2.Equal(cmp2).ToBits())
		m1 &= m2
	} else if hasPivotPair {
		return genericMask(window, width, probe, probe2, hasPivotPair)
	}

	return m1
}
