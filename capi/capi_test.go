package capi

/*
#include <stdlib.h>
*/
import "C"

import (
	"testing"
	"unsafe"
)

func TestParseSignatureRoundTrip(t *testing.T) {
	pattern := C.CString("78 79 7A")
	defer C.free(unsafe.Pointer(pattern))

	var handle C.libhat_signature_t
	status := libhat_parse_signature(pattern, &handle)
	if status != C.LIBHAT_STATUS_OK {
		t.Fatalf("libhat_parse_signature status = %d, want OK", status)
	}
	defer libhat_free_signature(handle)

	data := []byte("abcxyz0123")
	var out *C.uint8_t
	status = libhat_scan_buffer((*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)), handle, 0, 0, &out)
	if status != C.LIBHAT_STATUS_OK {
		t.Fatalf("libhat_scan_buffer status = %d, want OK", status)
	}
	got := uintptr(unsafe.Pointer(out)) - uintptr(unsafe.Pointer(&data[0]))
	if got != 3 {
		t.Fatalf("match offset = %d, want 3", got)
	}
}

func TestParseSignatureRejectsAllWildcard(t *testing.T) {
	pattern := C.CString("? ? ?")
	defer C.free(unsafe.Pointer(pattern))

	var handle C.libhat_signature_t
	status := libhat_parse_signature(pattern, &handle)
	if status != C.LIBHAT_STATUS_MISSING_MASKED_BYTE {
		t.Fatalf("status = %d, want LIBHAT_STATUS_MISSING_MASKED_BYTE", status)
	}
	if handle != 0 {
		t.Fatalf("handle = %d, want 0 on parse failure", handle)
	}
}

func TestScanBufferNotFound(t *testing.T) {
	pattern := C.CString("FF FF FF")
	defer C.free(unsafe.Pointer(pattern))

	var handle C.libhat_signature_t
	if status := libhat_parse_signature(pattern, &handle); status != C.LIBHAT_STATUS_OK {
		t.Fatalf("libhat_parse_signature status = %d, want OK", status)
	}
	defer libhat_free_signature(handle)

	data := []byte("no match here")
	var out *C.uint8_t
	status := libhat_scan_buffer((*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)), handle, 0, 0, &out)
	if status != C.LIBHAT_STATUS_NOT_FOUND {
		t.Fatalf("status = %d, want LIBHAT_STATUS_NOT_FOUND", status)
	}
	if out != nil {
		t.Fatalf("out = %v, want nil on a miss", out)
	}
}

func TestSignatureFromBytesRoundTrip(t *testing.T) {
	values := []byte{0x12, 0x34}
	masks := []byte{0xFF, 0xF0}

	var handle C.libhat_signature_t
	status := libhat_signature_from_bytes(
		(*C.uint8_t)(unsafe.Pointer(&values[0])),
		(*C.uint8_t)(unsafe.Pointer(&masks[0])),
		C.size_t(len(values)),
		&handle,
	)
	if status != C.LIBHAT_STATUS_OK {
		t.Fatalf("libhat_signature_from_bytes status = %d, want OK", status)
	}
	defer libhat_free_signature(handle)

	data := []byte{0x12, 0x3F}
	var out *C.uint8_t
	status = libhat_scan_buffer((*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)), handle, 0, 0, &out)
	if status != C.LIBHAT_STATUS_OK {
		t.Fatalf("libhat_scan_buffer status = %d, want OK", status)
	}
	if out != (*C.uint8_t)(unsafe.Pointer(&data[0])) {
		t.Fatalf("match pointer did not point at the match start")
	}
}

func TestResolveModuleCurrentProcess(t *testing.T) {
	var handle C.libhat_module_t
	status := libhat_resolve_module(nil, &handle)
	if status != C.LIBHAT_STATUS_OK {
		t.Fatalf("libhat_resolve_module status = %d, want OK", status)
	}
	defer libhat_free_module(handle)
	if handle == 0 {
		t.Fatalf("handle = 0, want a nonzero module handle")
	}
}
