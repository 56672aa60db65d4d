package plan

import "github.com/BasedInc/libhat/signature"

// MatchFunc scans data for ctx's effective signature and returns the offset
// of the first match, or -1 if none is found. Implementations live in the
// matcher package; Context stores one as a trampoline (spec.md §9 "Dynamic
// dispatch": a tagged function pointer chosen once per context).
type MatchFunc func(data []byte, ctx *Context) int

// NoPivot marks a Context that uses a single-byte probe instead of a pivot
// pair.
const NoPivot = -1

// Context is the immutable bundle a scan runs against: an effective
// signature view (leading wildcards already stripped), the alignment mode,
// the hint set, the chosen pivot index, and the selected matcher (spec.md
// §3).
type Context struct {
	Signature signature.View
	Alignment Alignment
	Hints     Hint
	Pivot     int // index into Signature of a fully-specified pair, or NoPivot
	Matcher   MatchFunc

	// Truncated is the number of leading wildcard elements stripped from
	// the caller's original signature to produce Signature (spec.md §4.2
	// step 1). Callers offset a match position back by Truncated to report
	// a position relative to the original, untruncated pattern.
	Truncated int
}

// VectorWidth reports the matcher's probe width in bytes: 1 for the scalar
// matcher, 16/32/64 for the SIMD tiers. Context does not store it: plan.Build
// receives the width from the Selector, because pivot selection needs it
// before the context exists.
type VectorWidth int
