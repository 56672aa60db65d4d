package libhat

import (
	"github.com/BasedInc/libhat/matcher"
	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// findOne runs one scan of data from searchBase onward and returns the
// caller-visible match position (already offset back by the context's
// truncation count), or -1. A candidate whose effective match position is
// less than ctx.Truncated would require wildcard bytes before the start of
// data, which don't exist, so it is skipped and the search resumes just
// past it (spec §4.2 step 1, invariant 5).
func findOne(ctx *plan.Context, data []byte, searchBase int) int {
	k := ctx.Truncated
	base := searchBase
	for base <= len(data) {
		m := ctx.Matcher(data[base:], ctx)
		if m < 0 {
			return -1
		}
		abs := base + m
		if abs >= k {
			return abs - k
		}
		base = abs + 1
	}
	return -1
}

// FindOne scans data for the first offset satisfying sig, returning a
// mutable ScanResult. It never fails: a missing match is represented by a
// ScanResult with Found() == false, not an error (spec §4.6, §7).
func FindOne(data []byte, sig signature.View, alignment plan.Alignment, hints plan.Hint) ScanResult {
	ctx := plan.Build(sig, alignment, hints, matcher.Select)
	pos := findOne(ctx, data, 0)
	return ScanResult{result{data: data, pos: pos, found: pos >= 0}}
}

// FindOneConst is FindOne's read-only sibling: it returns a ConstScanResult,
// whose Bytes method never exposes the backing array for mutation. Use this
// when data came from a source the caller must not write back into.
func FindOneConst(data []byte, sig signature.View, alignment plan.Alignment, hints plan.Hint) ConstScanResult {
	ctx := plan.Build(sig, alignment, hints, matcher.Select)
	pos := findOne(ctx, data, 0)
	return ConstScanResult{result{data: data, pos: pos, found: pos >= 0}}
}

// stride returns the cursor advance applied after a hit: 1 at X1, 16 at X16
// (spec §5 "Ordering").
func stride(alignment plan.Alignment) int {
	if alignment == plan.X16 {
		return 16
	}
	return 1
}

// FindAll writes every match in data, in strictly ascending offset order,
// to emit, and returns the count. The next search position after a hit is
// hit+stride, so overlapping matches starting on successive bytes are all
// reported at X1 (spec §5, §8 invariant 6).
func FindAll(data []byte, sig signature.View, alignment plan.Alignment, hints plan.Hint, emit func(int)) int {
	ctx := plan.Build(sig, alignment, hints, matcher.Select)
	st := stride(alignment)

	count := 0
	base := 0
	for {
		pos := findOne(ctx, data, base)
		if pos < 0 {
			break
		}
		emit(pos)
		count++
		base = pos + ctx.Truncated + st
	}
	return count
}

// FindAllRange is FindAll's output-range shape: it writes matches into out
// starting at outPos, stopping early whenever either out or data is
// exhausted, and returns the updated (inPos, outPos) so the caller can
// resume a later call where this one left off.
func FindAllRange(data []byte, inPos int, sig signature.View, alignment plan.Alignment, hints plan.Hint, out []int, outPos int) (int, int) {
	ctx := plan.Build(sig, alignment, hints, matcher.Select)
	st := stride(alignment)

	base := inPos
	for outPos < len(out) {
		pos := findOne(ctx, data, base)
		if pos < 0 {
			base = len(data)
			break
		}
		out[outPos] = pos
		outPos++
		base = pos + ctx.Truncated + st
	}
	return base, outPos
}

// sectionResolver is the module collaborator's interface as consumed here
// (spec §6): resolving a named section of a resolved module to a byte
// span. It is satisfied by *module.Module; declaring it locally keeps this
// package from depending on package module's concrete types beyond the
// span it returns.
type sectionResolver interface {
	Section(name string) ([]byte, bool)
}

// FindOneInSection resolves mod's named section and scans it with FindOne.
// If the section can't be resolved, it returns a not-found ScanResult
// rather than an error (spec §4.6: "the section-scoped find_one returns
// null if either step fails").
func FindOneInSection(mod sectionResolver, sectionName string, sig signature.View, alignment plan.Alignment, hints plan.Hint) ScanResult {
	data, ok := mod.Section(sectionName)
	if !ok {
		return ScanResult{result{found: false}}
	}
	return FindOne(data, sig, alignment, hints)
}
