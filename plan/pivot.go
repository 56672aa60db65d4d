package plan

import "github.com/BasedInc/libhat/signature"

// choosePivot implements spec.md §4.2 step 3 for alignment X1.
//
// If HintX86_64 is set and HintPair0 is not, every adjacent fully-specified
// pair is scored against pairFrequency and the least-frequent pair in
// [0, width-1] wins, minimizing the SIMD prefilter's false-candidate rate.
// Otherwise the first fully-specified adjacent pair anywhere in the pattern
// is used, unless HintPair0 is set and the first pair isn't fully specified
// — in that case no pivot is chosen at all and the matcher falls back to a
// single-byte probe.
func choosePivot(sig signature.View, hints Hint, width int) int {
	if hints.Has(HintX86_64) && !hints.Has(HintPair0) {
		if i, ok := scoredPivot(sig, width); ok {
			return i
		}
		// No scored pair found; fall through to the generic rule.
	}

	if hints.Has(HintPair0) {
		if len(sig) >= 2 && sig[0].FullySpecified() && sig[1].FullySpecified() {
			return 0
		}
		return NoPivot
	}

	if i, ok := sig.FirstFullySpecifiedPair(); ok {
		return i
	}
	return NoPivot
}

// scoredPivot scans every adjacent fully-specified pair, scores it against
// pairFrequency, and returns the index of the least-frequent pair whose
// score falls in [0, width-1]. Pairs absent from the table are "common" and
// never selected as the winner over a present, rarer pair, but may still be
// chosen if no pair appears in the table at all — spec.md only requires the
// search to "fall through" when no scored pair exists, i.e. no pair is both
// fully specified and table-eligible.
func scoredPivot(sig signature.View, width int) (int, bool) {
	best := -1
	bestScore := -1
	for i := 0; i+1 < len(sig); i++ {
		if !sig[i].FullySpecified() || !sig[i+1].FullySpecified() {
			continue
		}
		score, ok := pairFrequency(sig[i].Value, sig[i+1].Value)
		if !ok {
			continue
		}
		if score >= width {
			continue
		}
		if best == -1 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
