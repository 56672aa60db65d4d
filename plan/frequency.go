package plan

// pairKey packs two bytes into a lookup key for the frequency table.
func pairKey(a, b byte) uint16 {
	return uint16(a)<<8 | uint16(b)
}

// pairFrequency returns the commonality rank of the adjacent byte pair
// (a, b) in x86-64 machine code at 1-byte alignment: 0 is rarest, 101 is
// most common among the 102 tracked pairs. A pair absent from the table is
// treated as "common" (spec.md §9: "a pair absent from the table is treated
// as common, low pivot preference"), signaled by ok == false.
//
// The table has no literal source in the example pack (the teacher's own
// frequency table, simd.ByteFrequencies, ranks single bytes over English
// text/source code, not adjacent byte pairs over x86-64 machine code); it is
// authored directly from spec.md §4.2/§9's description, in the same
// array-literal style.
func pairFrequency(a, b byte) (int, bool) {
	rank, ok := x8664PairRank[pairKey(a, b)]
	return rank, ok
}

// x8664PairRank ranks ~100 common x86-64 byte pairs at 1-byte alignment,
// most of them REX-prefixed mov/lea/call/jmp opcode+modrm pairs and common
// modrm+sib/displacement continuations. Lower rank = rarer = a better pivot
// candidate.
var x8664PairRank = buildPairRank([][2]byte{
	{0x48, 0x89}, {0x48, 0x8B}, {0x48, 0x8D}, {0x48, 0x83}, {0x48, 0x81},
	{0x48, 0x85}, {0x48, 0x39}, {0x48, 0x3B}, {0x48, 0x01}, {0x48, 0x29},
	{0x48, 0xC7}, {0x48, 0xFF}, {0x48, 0x63}, {0x48, 0x98}, {0x48, 0x99},
	{0x4C, 0x89}, {0x4C, 0x8B}, {0x4C, 0x8D}, {0x4C, 0x39}, {0x4C, 0x01},
	{0x44, 0x89}, {0x44, 0x8B}, {0x45, 0x89}, {0x45, 0x8B}, {0x41, 0x89},
	{0x41, 0x8B}, {0x41, 0x8D}, {0x41, 0xFF}, {0x41, 0x50}, {0x41, 0x51},
	{0x41, 0x52}, {0x41, 0x53}, {0x41, 0x54}, {0x41, 0x55}, {0x41, 0x56},
	{0x41, 0x57}, {0x89, 0x45}, {0x89, 0x4D}, {0x89, 0x55}, {0x89, 0x5D},
	{0x89, 0xC0}, {0x89, 0xD8}, {0x8B, 0x45}, {0x8B, 0x4D}, {0x8B, 0x55},
	{0x8B, 0x0D}, {0x8B, 0x05}, {0x8D, 0x05}, {0x8D, 0x0D}, {0x8D, 0x4C},
	{0x8D, 0x54}, {0xFF, 0x15}, {0xFF, 0x25}, {0xFF, 0xD0}, {0xFF, 0xE0},
	{0xE8, 0x00}, {0xE9, 0x00}, {0xEB, 0x00}, {0xEB, 0x0D}, {0xEB, 0x1A},
	{0x74, 0x00}, {0x75, 0x00}, {0x0F, 0x84}, {0x0F, 0x85}, {0x0F, 0x1F},
	{0x0F, 0xB6}, {0x0F, 0xB7}, {0x0F, 0xBE}, {0x0F, 0xAF}, {0x66, 0x0F},
	{0x55, 0x48}, {0x53, 0x48}, {0x50, 0x48}, {0xC3, 0x90}, {0xC3, 0xCC},
	{0x85, 0xC0}, {0x85, 0xD2}, {0x85, 0xFF}, {0x39, 0xC0}, {0x39, 0xD0},
	{0x83, 0xF8}, {0x83, 0xFA}, {0x83, 0xC0}, {0x83, 0xC4}, {0x83, 0xEC},
	{0x83, 0xE8}, {0x81, 0xEC}, {0x81, 0xC4}, {0x31, 0xC0}, {0x31, 0xDB},
	{0x01, 0xC0}, {0x01, 0xD0}, {0x29, 0xC0}, {0xC7, 0x45}, {0xC7, 0x04},
	{0xC7, 0x00}, {0x98, 0x48}, {0x05, 0x00}, {0x25, 0x00}, {0x3D, 0x00},
	{0x90, 0x90}, {0xCC, 0xCC},
})

func buildPairRank(pairs [][2]byte) map[uint16]int {
	m := make(map[uint16]int, len(pairs))
	for i, p := range pairs {
		m[pairKey(p[0], p[1])] = i
	}
	return m
}
