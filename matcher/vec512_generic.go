//go:build !(goexperiment.simd && amd64)

package matcher

import "github.com/BasedInc/libhat/plan"

// Vec512 is the portable 512-bit-tier matcher, built when the accelerated
// archsimd path (vec512_amd64_simd.go) isn't compiled in.
func Vec512(data []byte, ctx *plan.Context) int {
	return vectorFind(data, ctx, 64, genericMask)
}
