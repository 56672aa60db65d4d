package matcher

import (
	"testing"

	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

func ctxFor(t *testing.T, pattern string, alignment plan.Alignment, hints plan.Hint) *plan.Context {
	t.Helper()
	sig, err := signature.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return plan.Build(sig.AsView(), alignment, hints, func() (int, plan.MatchFunc) { return 1, Scalar })
}

// TestScalarScenarios covers spec.md §8's literal end-to-end scenarios
// S1-S3 and S6 for the scalar matcher.
func TestScalarScenarios(t *testing.T) {
	t.Run("S1_ascii_locate", func(t *testing.T) {
		data := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
		ctx := ctxFor(t, "78 79 7A", plan.X1, 0)
		got := Scalar(data, ctx)
		if got != 23 {
			t.Fatalf("got %d, want 23", got)
		}
	})

	t.Run("S2_wildcard_second_occurrence", func(t *testing.T) {
		// The first "01 02" run fails on its non-wildcarded tail (0x06 !=
		// 0x05); the second run's middle byte (0x99) is covered by the
		// wildcard, so it is the only match.
		data := []byte{0x01, 0x02, 0x03, 0x04, 0x06, 0x01, 0x02, 0x99, 0x04, 0x05}
		ctx := ctxFor(t, "01 02 ?? 04 05", plan.X1, 0)
		got := Scalar(data, ctx)
		if got != 5 {
			t.Fatalf("got %d, want 5", got)
		}
	})

	t.Run("S3_nibble_mask", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A}
		ctx := ctxFor(t, "12 3?", plan.X1, 0)
		got := Scalar(data, ctx)
		if got != 0 {
			t.Fatalf("got %d, want 0", got)
		}
	})

	t.Run("S6_find_all_ordering", func(t *testing.T) {
		data := []byte{0x01, 0x02, 0x03, 0x04, 0x01}
		ctx := ctxFor(t, "01", plan.X1, 0)
		var got []int
		pos := 0
		for {
			m := Scalar(data[pos:], ctx)
			if m < 0 {
				break
			}
			got = append(got, pos+m)
			pos += m + 1
		}
		want := []int{0, 4}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestScalarBoundaries(t *testing.T) {
	t.Run("shorter_range_never_matches", func(t *testing.T) {
		ctx := ctxFor(t, "01 02 03", plan.X1, 0)
		if got := Scalar([]byte{0x01, 0x02}, ctx); got != -1 {
			t.Fatalf("got %d, want -1", got)
		}
	})

	t.Run("exact_length_match_at_start", func(t *testing.T) {
		ctx := ctxFor(t, "01 02 03", plan.X1, 0)
		if got := Scalar([]byte{0x01, 0x02, 0x03}, ctx); got != 0 {
			t.Fatalf("got %d, want 0", got)
		}
	})

	t.Run("match_ending_exactly_at_end", func(t *testing.T) {
		ctx := ctxFor(t, "03 04", plan.X1, 0)
		if got := Scalar([]byte{0x01, 0x02, 0x03, 0x04}, ctx); got != 2 {
			t.Fatalf("got %d, want 2", got)
		}
	})

	t.Run("empty_range", func(t *testing.T) {
		ctx := ctxFor(t, "01", plan.X1, 0)
		if got := Scalar(nil, ctx); got != -1 {
			t.Fatalf("got %d, want -1", got)
		}
	})
}

func TestScalarX16Alignment(t *testing.T) {
	data := make([]byte, 48)
	data[17] = 0xAB // not 16-aligned: should never match at X16
	data[32] = 0xAB // 16-aligned: should match
	ctx := ctxFor(t, "AB", plan.X16, 0)
	got := Scalar(data, ctx)
	if got != 32 {
		t.Fatalf("got %d, want 32 (first 16-aligned candidate)", got)
	}
}
