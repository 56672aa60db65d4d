//go:build !(goexperiment.simd && amd64)

package matcher

import "github.com/BasedInc/libhat/plan"

// Vec256 is the portable 256-bit-tier matcher, built when the accelerated
// archsimd path (vec256_amd64_simd.go) isn't compiled in (no
// GOEXPERIMENT=simd, or not amd64).
func Vec256(data []byte, ctx *plan.Context) int {
	return vectorFind(data, ctx, 32, genericMask)
}
