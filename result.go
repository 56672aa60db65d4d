package libhat

import "unsafe"

// Integer is the set of integer types ReadInt and Index can decode a
// little-endian field as.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// result is the data shared by ScanResult and ConstScanResult: the backing
// range, the matched offset, and whether a match was found at all. Neither
// sibling type exposes this directly; each decides for itself what access
// to grant to the underlying bytes.
type result struct {
	data  []byte
	pos   int
	found bool
}

func (r result) readLE(off, size int) (uint64, bool) {
	start := r.pos + off
	if !r.found || start < 0 || start+size > len(r.data) {
		return 0, false
	}
	var v uint64
	for i := 0; i < size; i++ {
		v |= uint64(r.data[start+i]) << (8 * uint(i))
	}
	return v, true
}

// ScanResult is returned by FindOne and FindOneInSection when scanning a
// mutable byte range. It borrows from that range: it owns no memory of its own and
// is valid only as long as the backing slice is.
type ScanResult struct{ result }

// ConstScanResult is ScanResult's read-only sibling: constness propagation
// (spec's requirement that a caller who supplied a read-only range cannot
// obtain a mutable pointer from the result) is expressed here as a type
// whose Bytes method returns a copy instead of a live slice, rather than a
// runtime check. FindOneConst returns this type.
type ConstScanResult struct{ result }

// Found reports whether the scan located a match. A zero-value ScanResult
// or ConstScanResult (as returned by a failed scan) always reports false.
func (r result) Found() bool { return r.found }

// Pos returns the matched byte offset within the original range, or -1 if
// no match was found.
func (r result) Pos() int {
	if !r.found {
		return -1
	}
	return r.pos
}

// Bytes returns a live, writable slice of the original range starting at
// the match, or nil if there was no match. Only ScanResult exposes this;
// ConstScanResult does not, so a read-only input can never yield a mutable
// view through its result.
func (r ScanResult) Bytes() []byte {
	if !r.found {
		return nil
	}
	return r.data[r.pos:]
}

// Bytes returns a read-only copy of the original range starting at the
// match, or nil if there was no match.
func (r ConstScanResult) Bytes() []byte {
	if !r.found {
		return nil
	}
	out := make([]byte, len(r.data)-r.pos)
	copy(out, r.data[r.pos:])
	return out
}

// readable is satisfied by ScanResult and ConstScanResult via promotion of
// result's unexported readLE and exported Pos; being unexported, it cannot
// be implemented outside this package.
type readable interface {
	readLE(off, size int) (uint64, bool)
	Pos() int
}

// ReadInt reads a little-endian I at byte offset off from the match.
func ReadInt[I Integer](r readable, off int) (I, bool) {
	var zero I
	size := int(unsafe.Sizeof(zero))
	v, ok := r.readLE(off, size)
	if !ok {
		return 0, false
	}
	return I(v), true
}

// Rel reads a signed 32-bit displacement at off and resolves it as an
// x86-64 RIP-relative operand: base + displacement + off + 4 + remaining,
// where remaining is the count of instruction bytes still to follow the
// operand. base is the match's own offset within the original range
// (r.Pos()); the caller adds in the range's load address separately if it
// needs an absolute pointer.
func Rel(r readable, off int, remaining int) (int, bool) {
	disp, ok := ReadInt[int32](r, off)
	if !ok {
		return 0, false
	}
	pos := r.Pos()
	if pos < 0 {
		return 0, false
	}
	return pos + off + 4 + remaining + int(disp), true
}

// Index reads an integer field at off and divides it by sizeof(T),
// treating the field as a byte offset into an array of T.
func Index[I Integer, T any](r readable, off int) (int, bool) {
	v, ok := ReadInt[I](r, off)
	if !ok {
		return 0, false
	}
	var t T
	sz := int(unsafe.Sizeof(t))
	if sz == 0 {
		return 0, false
	}
	return int(v) / sz, true
}
