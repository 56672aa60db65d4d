// Package capi is the cgo-exported C ABI shim spec.md §6 describes: parse a
// signature from a C string, construct one from parallel bytes/mask
// buffers, scan a buffer or a module's named section, resolve a module by
// name or the current process, and release the opaque handles this package
// hands back. It is a thin wrapper over the signature/plan/matcher/module
// packages — no new algorithmic work lives here.
//
// Opaque handles are runtime/cgo.Handle values disguised as uint64_t on
// the C side, rather than raw unsafe.Pointer into Go memory: the Go
// runtime's moving GC makes it unsafe for a C caller to hold a Go pointer
// across calls, and cgo.Handle is the stdlib's answer to exactly that
// problem, so no third-party dependency applies here.
package capi

/*
#include <stdint.h>

typedef uint64_t libhat_signature_t;
typedef uint64_t libhat_module_t;

typedef enum {
	LIBHAT_STATUS_OK = 0,
	LIBHAT_STATUS_EXPECTED_WILDCARD,
	LIBHAT_STATUS_ELEMENT_PARSE_ERROR,
	LIBHAT_STATUS_INVALID_TOKEN_LENGTH,
	LIBHAT_STATUS_EMPTY_SIGNATURE,
	LIBHAT_STATUS_ILLEGAL_FIRST_BYTE,
	LIBHAT_STATUS_MISSING_MASKED_BYTE,
	LIBHAT_STATUS_NOT_FOUND,
	LIBHAT_STATUS_UNKNOWN,
} libhat_status_t;
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/BasedInc/libhat"
	"github.com/BasedInc/libhat/module"
	"github.com/BasedInc/libhat/plan"
	"github.com/BasedInc/libhat/signature"
)

// statusOf maps a signature.ParseError's Kind to the §4.1-mirroring status
// taxonomy, falling back to the catch-all LIBHAT_STATUS_UNKNOWN for any
// error this shim doesn't otherwise expect (spec.md §6: "Status codes
// mirror the parser error taxonomy plus a catch-all unknown").
func statusOf(err error) C.libhat_status_t {
	pe, ok := err.(*signature.ParseError)
	if !ok {
		return C.LIBHAT_STATUS_UNKNOWN
	}
	switch pe.Kind {
	case signature.ErrExpectedWildcard:
		return C.LIBHAT_STATUS_EXPECTED_WILDCARD
	case signature.ErrElementParseError:
		return C.LIBHAT_STATUS_ELEMENT_PARSE_ERROR
	case signature.ErrInvalidTokenLength:
		return C.LIBHAT_STATUS_INVALID_TOKEN_LENGTH
	case signature.ErrEmptySignature:
		return C.LIBHAT_STATUS_EMPTY_SIGNATURE
	case signature.ErrIllegalFirstByte:
		return C.LIBHAT_STATUS_ILLEGAL_FIRST_BYTE
	case signature.ErrMissingMaskedByte:
		return C.LIBHAT_STATUS_MISSING_MASKED_BYTE
	default:
		return C.LIBHAT_STATUS_UNKNOWN
	}
}

// libhat_parse_signature parses a null-terminated human-format pattern
// string (spec.md §4.1) and returns an opaque signature handle through
// *out on success. On failure *out is left at zero and the return value
// names which parser error occurred.
//
//export libhat_parse_signature
func libhat_parse_signature(pattern *C.char, out *C.libhat_signature_t) C.libhat_status_t {
	sig, err := signature.Parse(C.GoString(pattern))
	if err != nil {
		*out = 0
		return statusOf(err)
	}
	*out = C.libhat_signature_t(cgo.NewHandle(sig))
	return C.LIBHAT_STATUS_OK
}

// libhat_signature_from_bytes builds a signature from parallel value/mask
// buffers of length (spec.md §6's "construct a signature from parallel
// bytes and mask buffers of equal length").
//
//export libhat_signature_from_bytes
func libhat_signature_from_bytes(values, masks *C.uint8_t, length C.size_t, out *C.libhat_signature_t) C.libhat_status_t {
	n := int(length)
	valueSlice := unsafe.Slice((*byte)(unsafe.Pointer(values)), n)
	maskSlice := unsafe.Slice((*byte)(unsafe.Pointer(masks)), n)
	sig, err := signature.FromValuesAndMasks(valueSlice, maskSlice)
	if err != nil {
		*out = 0
		return statusOf(err)
	}
	*out = C.libhat_signature_t(cgo.NewHandle(sig))
	return C.LIBHAT_STATUS_OK
}

//export libhat_free_signature
func libhat_free_signature(handle C.libhat_signature_t) {
	if handle == 0 {
		return
	}
	cgo.Handle(handle).Delete()
}

func alignmentFrom(v C.int) plan.Alignment {
	if v != 0 {
		return plan.X16
	}
	return plan.X1
}

// libhat_scan_buffer scans [data, data+length) for sig, writing the
// matched absolute address to *out. *out is left at 0 and
// LIBHAT_STATUS_NOT_FOUND is returned on a miss, mirroring spec.md §4.6:
// "not found" is a first-class outcome, not an error.
//
//export libhat_scan_buffer
func libhat_scan_buffer(data *C.uint8_t, length C.size_t, sigHandle C.libhat_signature_t, alignment C.int, hints C.uint8_t, out **C.uint8_t) C.libhat_status_t {
	sig, ok := cgo.Handle(sigHandle).Value().(signature.Signature)
	if !ok {
		*out = nil
		return C.LIBHAT_STATUS_UNKNOWN
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(data)), int(length))
	r := libhat.FindOne(buf, sig.AsView(), alignmentFrom(alignment), plan.Hint(hints))
	if !r.Found() {
		*out = nil
		return C.LIBHAT_STATUS_NOT_FOUND
	}
	*out = (*C.uint8_t)(unsafe.Pointer(&buf[r.Pos()]))
	return C.LIBHAT_STATUS_OK
}

// libhat_resolve_module resolves a module by name, or the current process
// when name is NULL (spec.md §6 "the current process").
//
//export libhat_resolve_module
func libhat_resolve_module(name *C.char, out *C.libhat_module_t) C.libhat_status_t {
	var goName string
	if name != nil {
		goName = C.GoString(name)
	}
	mod, ok := module.Resolve(goName)
	if !ok {
		*out = 0
		return C.LIBHAT_STATUS_NOT_FOUND
	}
	*out = C.libhat_module_t(cgo.NewHandle(mod))
	return C.LIBHAT_STATUS_OK
}

//export libhat_free_module
func libhat_free_module(handle C.libhat_module_t) {
	if handle == 0 {
		return
	}
	cgo.Handle(handle).Delete()
}

// libhat_scan_module_section resolves sectionName within mod and scans it
// for sig, writing the matched address (relative to the section's own
// backing buffer, since this shim does not track the image's load
// address) to *out.
//
//export libhat_scan_module_section
func libhat_scan_module_section(modHandle C.libhat_module_t, sectionName *C.char, sigHandle C.libhat_signature_t, alignment C.int, hints C.uint8_t, out **C.uint8_t) C.libhat_status_t {
	mod, ok := cgo.Handle(modHandle).Value().(*module.Module)
	if !ok {
		*out = nil
		return C.LIBHAT_STATUS_UNKNOWN
	}
	sig, ok := cgo.Handle(sigHandle).Value().(signature.Signature)
	if !ok {
		*out = nil
		return C.LIBHAT_STATUS_UNKNOWN
	}
	data, ok := mod.Section(C.GoString(sectionName))
	if !ok {
		*out = nil
		return C.LIBHAT_STATUS_NOT_FOUND
	}
	r := libhat.FindOne(data, sig.AsView(), alignmentFrom(alignment), plan.Hint(hints))
	if !r.Found() {
		*out = nil
		return C.LIBHAT_STATUS_NOT_FOUND
	}
	*out = (*C.uint8_t)(unsafe.Pointer(&data[r.Pos()]))
	return C.LIBHAT_STATUS_OK
}
