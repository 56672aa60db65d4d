package matcher

import "github.com/BasedInc/libhat/plan"

// Vec128 is the 128-bit-tier matcher: same range segmentation and
// probe-then-verify algorithm as a true SSE4.1 byte-broadcast/testc
// implementation (spec.md §4.3), but the lane mask is built with a plain
// per-byte compare instead of a vector instruction. The example pack's only
// concrete archsimd grounding (nnnkkk7-go-simdcsv) demonstrates the 256-bit
// (Int8x32) shape, not 128-bit; rather than invent an unverified
// BroadcastInt8x16/LoadInt8x16 API surface, this tier stays portable and
// gets its speed from avoiding per-byte verification of non-candidates,
// not from real vector instructions.
func Vec128(data []byte, ctx *plan.Context) int {
	return vectorFind(data, ctx, 16, genericMask)
}
