// Package plan builds an immutable scan context from a signature, alignment
// and hint set: it truncates leading wildcards, selects a matcher
// implementation for the running CPU, and chooses a pivot probe for the X1
// alignment (spec.md §4.2).
package plan

// Alignment controls the spacing of candidate offsets a matcher tests.
type Alignment int

const (
	// X1 tests every byte offset as a candidate.
	X1 Alignment = iota
	// X16 tests only 16-byte-aligned offsets.
	X16
)

// Hint is a bit flag influencing pivot selection without changing the
// result set (spec.md §3, §4.2).
type Hint uint8

const (
	// HintX86_64 indicates the scanned data is x86-64 machine code: bias
	// pivot selection toward rare opcode-pair bytes via the frequency table.
	HintX86_64 Hint = 1 << iota
	// HintPair0 restricts pivot selection to the first two signature
	// elements: if they are not both fully specified, no pivot is chosen.
	HintPair0
)

// Has reports whether h includes flag.
func (h Hint) Has(flag Hint) bool {
	return h&flag != 0
}
