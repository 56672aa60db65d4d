package matcher

import (
	"github.com/BasedInc/libhat/internal/cpufeat"
	"github.com/BasedInc/libhat/plan"
)

// Select implements the §4.3 matcher selection policy: pick the widest
// matcher the running CPU supports, in the table's stated order (512 > 256
// > 128 > scalar). It returns the matcher's vector width (used by the
// planner for pivot eligibility) and the plan.MatchFunc trampoline.
//
// Select is a plan.Selector; the front-end API (scan.go) passes it straight
// to plan.Build.
func Select() (int, plan.MatchFunc) {
	f := cpufeat.Current()
	switch {
	case f.HasAVX512 && f.HasTZCNT:
		return 64, Vec512
	case f.HasAVX2 && f.HasTZCNT:
		return 32, Vec256
	case f.HasSSE41:
		return 16, Vec128
	default:
		return 1, Scalar
	}
}

// CompileTimeSelect always returns the scalar matcher: spec.md §4.3 "compile
// time scans always use the scalar matcher", since CPU-feature dispatch has
// no meaning at compile time (or, in Go, at the package-init time
// signature.MustCompile runs at).
func CompileTimeSelect() (int, plan.MatchFunc) {
	return 1, Scalar
}
