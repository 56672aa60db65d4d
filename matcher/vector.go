package matcher

import (
	"math/bits"

	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// maskFunc builds the width-bit lane mask for one aligned vector position:
// bit t is set iff data[vecPos+t] (and, when hasPivotPair, data[vecPos+t+1]
// too) satisfies the probe element(s). Concrete matcher tiers supply a
// maskFunc; Vec128/Vec256/Vec512 differ only in which one they pass and in
// their declared width (spec.md §4.3's "matchers differ only in vector width
// W and the comparison primitive").
type maskFunc func(window []byte, width int, probe, probe2 signature.Element, hasPivotPair bool) uint64

// vectorFind implements the §4.3 range segmentation and vectorized body
// generically over width (16, 32 or 64): an unaligned scalar head, a run of
// width-aligned probe-and-verify vectors, and an unaligned scalar tail. The
// head covers candidate offsets up to the first aligned vector, the vector
// loop covers the offsets between, and the tail starts where the loop
// stopped, so each candidate offset is tested by exactly one of the three
// parts or by two of them where they overlap.
func vectorFind(data []byte, ctx *plan.Context, width int, genMask maskFunc) int {
	sig := ctx.Signature
	n := sig.Len()
	if n == 0 || len(data) < n {
		return -1
	}

	probeOffset := 0
	hasPivotPair := ctx.Pivot != plan.NoPivot
	if hasPivotPair {
		probeOffset = ctx.Pivot
	}
	probe := sig[probeOffset]
	var probe2 signature.Element
	if hasPivotPair {
		probe2 = sig[probeOffset+1]
	}

	vecBegin := alignUp(probeOffset, width)

	preEnd := vecBegin + n
	if preEnd > len(data) {
		preEnd = len(data)
	}
	if m := scalarFind(data[:preEnd], sig, ctx.Alignment); m >= 0 {
		return m
	}

	vecPos := vecBegin
	for vecPos+width <= len(data) && vecPos-probeOffset+n <= len(data) {
		// Pass one extra trailing byte when available so a pivot pair
		// probed at the last lane (t == width-1) can still check its
		// second byte instead of being dropped (spec.md §4.3 step 2's
		// "avoids an unaligned load past the vector end" concern, solved
		// here by bounds-checking against data directly).
		windowEnd := vecPos + width + 1
		if windowEnd > len(data) {
			windowEnd = len(data)
		}
		m1 := genMask(data[vecPos:windowEnd], width, probe, probe2, hasPivotPair)
		if ctx.Alignment == plan.X16 {
			m1 &= x16LaneMask(width)
		}
		for m1 != 0 {
			t := bits.TrailingZeros64(m1)
			m1 &^= 1 << uint(t)
			cand := vecPos + t - probeOffset
			if cand < 0 || cand+n > len(data) {
				continue
			}
			if matchAt(data, cand, sig) {
				return cand
			}
		}
		vecPos += width
	}

	postStart := vecPos - probeOffset
	if postStart < 0 {
		postStart = 0
	}
	if postStart > len(data) {
		return -1
	}
	if m := scalarFind(data[postStart:], sig, ctx.Alignment); m >= 0 {
		return postStart + m
	}
	return -1
}

// alignUp rounds n up to the next multiple of width (width is always a
// power of two: 16, 32 or 64).
func alignUp(n, width int) int {
	return (n + width - 1) &^ (width - 1)
}

// x16LaneMask returns a width-bit mask with bits set at positions
// 0, 16, 32, ... — the X16 alignment filter applied to the vectorized
// body's candidate mask (spec.md §4.3 step 3).
func x16LaneMask(width int) uint64 {
	var m uint64
	for i := 0; i < width; i += 16 {
		m |= 1 << uint(i)
	}
	return m
}

// genericMask is the portable, non-SIMD maskFunc: it probes each lane with
// a plain byte compare. Used whenever a true vector comparison primitive
// isn't available (non-amd64, or amd64 without GOEXPERIMENT=simd, or a CPU
// lacking the required feature) — see vec128_generic.go, vec256_generic.go,
// vec512_generic.go.
func genericMask(window []byte, width int, probe, probe2 signature.Element, hasPivotPair bool) uint64 {
	var m uint64
	for t := 0; t < width; t++ {
		if !probe.Matches(window[t]) {
			continue
		}
		if hasPivotPair {
			if t+1 >= len(window) || !probe2.Matches(window[t+1]) {
				continue
			}
		}
		m |= 1 << uint(t)
	}
	return m
}
