package plan

import "github.com/BasedInc/libhat/signature"

// Selector picks the best matcher implementation available on the running
// CPU and returns its vector width (1 for scalar, 16/32/64 for SIMD tiers)
// together with the MatchFunc trampoline to invoke it. It is supplied by the
// matcher package; plan has no import-time dependency on matcher so that
// matcher can depend on plan's Context/Alignment types instead.
type Selector func() (width int, fn MatchFunc)

// Build truncates leading wildcards from sig, selects a matcher via select_,
// and (for X1 alignment) chooses a pivot pair per spec.md §4.2.
func Build(sig signature.View, alignment Alignment, hints Hint, select_ Selector) *Context {
	truncated, effective := truncate(sig)
	width, fn := select_()

	ctx := &Context{
		Signature: effective,
		Alignment: alignment,
		Hints:     hints,
		Pivot:     NoPivot,
		Matcher:   fn,
		Truncated: truncated,
	}

	if alignment == X1 && width > 1 {
		ctx.Pivot = choosePivot(effective, hints, width)
	}

	return ctx
}

// truncate strips leading fully-wildcard elements (mask == 0x00) and returns
// their count plus the remaining "effective" view (spec.md §4.2 step 1).
func truncate(sig signature.View) (int, signature.View) {
	k := 0
	for k < len(sig) && sig[k].IsWildcard() {
		k++
	}
	return k, sig[k:]
}
