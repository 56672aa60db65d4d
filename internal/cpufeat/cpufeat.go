// Package cpufeat memoizes the runtime CPU feature set used by the matcher
// selection policy (see the matcher package). Detection runs once at process
// startup and is read-only afterward; there is no re-detection and no locking.
package cpufeat

import "golang.org/x/sys/cpu"

// Features is the snapshot of CPU capabilities relevant to matcher dispatch.
type Features struct {
	// HasAVX512 reports 64-byte vectors with masked equality compare
	// (AVX512F + AVX512BW + AVX512VL, matching the 512-bit matcher tier).
	HasAVX512 bool
	// HasAVX2 reports 32-byte vectors with byte-broadcast/compare and movemask.
	HasAVX2 bool
	// HasSSE41 reports 16-byte vectors with byte-broadcast/compare and testc
	// (SSE4.1 provides PTEST; SSE2 is the unconditional amd64 baseline).
	HasSSE41 bool
	// HasTZCNT reports a hardware trailing-zero-count primitive, required by
	// the 256-bit and 512-bit matchers for mask iteration (spec.md §4.3).
	HasTZCNT bool
}

var current = detect()

// Current returns the memoized, process-lifetime CPU feature snapshot.
func Current() Features {
	return current
}

func detect() Features {
	return Features{
		HasAVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL,
		HasAVX2:   cpu.X86.HasAVX2,
		HasSSE41:  cpu.X86.HasSSE41,
		HasTZCNT:  cpu.X86.HasBMI1, // BMI1 carries TZCNT
	}
}
