package matcher

import (
	"math/rand"
	"testing"

	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// buildCtx constructs a plan.Context for sig at the given alignment and
// hints, using width only to pick the pivot the same way the real
// selector would (vectorFind itself is called directly in these tests, not
// through the MatchFunc trampoline).
func buildCtx(sig signature.View, alignment plan.Alignment, hints plan.Hint, width int) *plan.Context {
	return plan.Build(sig, alignment, hints, func() (int, plan.MatchFunc) { return width, Scalar })
}

// randSignature builds a signature.Signature of length n with a mix of
// fully specified, wildcard and nibble-masked elements, always leading with
// a fully specified byte (parse invariant).
func randSignature(r *rand.Rand, n int) signature.Signature {
	sig := make(signature.Signature, n)
	for i := range sig {
		switch {
		case i == 0:
			sig[i] = signature.Full(byte(r.Intn(256)))
		case r.Intn(5) == 0:
			sig[i] = signature.Wildcard()
		case r.Intn(5) == 0:
			// nibble mask: low or high nibble fixed
			v := byte(r.Intn(256))
			if r.Intn(2) == 0 {
				sig[i] = signature.Element{Value: v & 0xF0, Mask: 0xF0}
			} else {
				sig[i] = signature.Element{Value: v & 0x0F, Mask: 0x0F}
			}
		default:
			sig[i] = signature.Full(byte(r.Intn(256)))
		}
	}
	return sig
}

// randDataWithPlant returns random bytes with sig planted at a random
// offset so there is always at least one genuine match to find.
func randDataWithPlant(r *rand.Rand, sig signature.View, total int) []byte {
	data := make([]byte, total)
	for i := range data {
		data[i] = byte(r.Intn(256))
	}
	if total < sig.Len() {
		return data
	}
	offset := r.Intn(total - sig.Len() + 1)
	for i, el := range sig {
		if el.FullySpecified() {
			data[offset+i] = el.Value
		} else if el.Mask != 0 {
			data[offset+i] = (data[offset+i] &^ el.Mask) | (el.Value & el.Mask)
		}
	}
	return data
}

// TestVectorFindMatchesScalar is the property test validating vectorFind's
// pre/vec/post segmentation (widths 16, 32, 64; with and without a pivot
// pair; X1 and X16 alignment) against scalarFind as ground truth.
func TestVectorFindMatchesScalar(t *testing.T) {
	r := rand.New(rand.NewSource(0xC0FFEE))
	widths := []int{16, 32, 64}
	alignments := []plan.Alignment{plan.X1, plan.X16}
	hintSets := []plan.Hint{0, plan.HintX86_64, plan.HintPair0}

	const trials = 400
	for trial := 0; trial < trials; trial++ {
		n := 2 + r.Intn(10)
		sig := randSignature(r, n)
		view := sig.AsView()
		total := n + r.Intn(300)
		data := randDataWithPlant(r, view, total)

		width := widths[r.Intn(len(widths))]
		alignment := alignments[r.Intn(len(alignments))]
		hints := hintSets[r.Intn(len(hintSets))]

		ctx := buildCtx(view, alignment, hints, width)

		want := scalarFind(data, view, alignment)
		got := vectorFind(data, ctx, width, genericMask)

		if got != want {
			t.Fatalf("trial %d: vectorFind(width=%d align=%v hints=%v pivot=%d) = %d, scalarFind = %d\nsig=%v data=%v",
				trial, width, alignment, hints, ctx.Pivot, got, want, view, data)
		}
	}
}

// TestVectorFindNoMatch exercises the no-match path across every width,
// confirming vectorFind agrees with scalarFind (both -1) when the signature
// genuinely isn't present.
func TestVectorFindNoMatch(t *testing.T) {
	sig := signature.MustCompile("DE AD BE EF")
	view := sig.AsView()
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i % 200) // never produces DE AD BE EF
	}

	for _, width := range []int{16, 32, 64} {
		ctx := buildCtx(view, plan.X1, 0, width)
		if got := vectorFind(data, ctx, width, genericMask); got != -1 {
			t.Fatalf("width=%d: got %d, want -1", width, got)
		}
	}
}

// TestVectorFindSpansVectorBoundary plants a match straddling the boundary
// between the aligned vector body and the scalar tail, and one straddling
// the head/vector boundary, to directly exercise the pre/post overlap.
func TestVectorFindSpansVectorBoundary(t *testing.T) {
	sig := signature.MustCompile("11 22 33 44 55 66")
	view := sig.AsView()
	width := 16

	for _, offset := range []int{0, 1, 13, 14, 15, 16, 17, 30, 31, 32, 33} {
		total := offset + view.Len() + 20
		data := make([]byte, total)
		for i := range data {
			data[i] = byte(0xAA)
		}
		for i, el := range view {
			data[offset+i] = el.Value
		}
		ctx := buildCtx(view, plan.X1, 0, width)
		got := vectorFind(data, ctx, width, genericMask)
		if got != offset {
			t.Fatalf("offset %d: got %d, want %d", offset, got, offset)
		}
	}
}
