// Package vtable locates a class's virtual method table by its mangled
// name, the RTTI cross-reference chase spec.md §9 calls out as an
// auxiliary helper an implementer may omit. This port implements only the
// Itanium/MinGW name-mangling scheme (SPEC_FULL.md §11); the MSVC complete
// object locator variant is omitted, per spec.md's own note that its
// displacement bytes are toolchain-specific and ambiguous.
package vtable

import (
	"encoding/binary"
	"strconv"

	"github.com/BasedInc/libhat"
	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// ptrSize is the pointer width this locator's cross-references are encoded
// at. The Itanium ABI ported here targets 64-bit x86 images only.
const ptrSize = 8

// sectionReader is the subset of *module.Module this package consumes:
// a named section's bytes and the virtual address they were linked at.
type sectionReader interface {
	Section(name string) ([]byte, bool)
	SectionAddr(name string) (uint64, bool)
}

// Find locates the vtable address for className, ported from
// original_source/src/Scanner.cpp's find_vtable<compiler_type::MinGW>:
// the Itanium ABI places, back to back, a length-prefixed type name
// ("5Hello\0"), a std::type_info object whose second pointer field refers
// to that name, and a vtable whose RTTI slot (the word before the first
// virtual function pointer) refers to that type_info object. Each step is
// a pointer-sized little-endian cross-reference found with FindOne.
//
// Find reports (0, false) if any step of the chain can't be resolved —
// the class doesn't exist, isn't polymorphic, or the image doesn't carry
// unstripped RTTI data.
func Find(mod sectionReader, className string) (uint64, bool) {
	rdata, ok := mod.Section(".rdata")
	if !ok {
		return 0, false
	}
	rdataAddr, ok := mod.SectionAddr(".rdata")
	if !ok {
		return 0, false
	}

	// Itanium mangles a class's RTTI name as "<length><name>", stored as a
	// null-terminated byte string.
	nameBytes := append([]byte(strconv.Itoa(len(className))+className), 0)
	typeNameAddr, ok := findBytes(rdata, rdataAddr, nameBytes)
	if !ok {
		return 0, false
	}

	// type_info's second field (after the vtable pointer) points at the
	// name; the xref search for a pointer to typeNameAddr finds that field.
	typeInfoFieldAddr, ok := findPointer(rdata, rdataAddr, typeNameAddr)
	if !ok {
		return 0, false
	}
	typeInfoAddr := typeInfoFieldAddr - ptrSize

	// The vtable's RTTI slot (immediately before its first virtual
	// function pointer) points at the type_info object.
	rttiSlotAddr, ok := findPointer(rdata, rdataAddr, typeInfoAddr)
	if !ok {
		return 0, false
	}
	return rttiSlotAddr + ptrSize, true
}

func findPointer(data []byte, base uint64, target uint64) (uint64, bool) {
	var buf [ptrSize]byte
	binary.LittleEndian.PutUint64(buf[:], target)
	return findBytes(data, base, buf[:])
}

func findBytes(data []byte, base uint64, pattern []byte) (uint64, bool) {
	sig := make(signature.Signature, len(pattern))
	for i, b := range pattern {
		sig[i] = signature.Full(b)
	}
	r := libhat.FindOne(data, sig.AsView(), plan.X1, 0)
	if !r.Found() {
		return 0, false
	}
	return base + uint64(r.Pos()), true
}
