//go:build windows

package memprotect

import "golang.org/x/sys/windows"

// toSystemProt mirrors MemoryProtector.cpp's to_system_prot: Windows page
// protection is one mutually exclusive constant, not a bitmask, so the
// flag combination must be mapped explicitly.
func toSystemProt(flags Protection) uint32 {
	r := flags.Has(Read)
	w := flags.Has(Write)
	x := flags.Has(Execute)
	switch {
	case x && w:
		return windows.PAGE_EXECUTE_READWRITE
	case x && r:
		return windows.PAGE_EXECUTE_READ
	case x:
		return windows.PAGE_EXECUTE
	case w:
		return windows.PAGE_READWRITE
	case r:
		return windows.PAGE_READONLY
	default:
		return windows.PAGE_NOACCESS
	}
}

func fromSystemProt(prot uint32) Protection {
	switch prot {
	case windows.PAGE_EXECUTE_READWRITE:
		return Read | Write | Execute
	case windows.PAGE_EXECUTE_READ:
		return Read | Execute
	case windows.PAGE_EXECUTE:
		return Execute
	case windows.PAGE_READWRITE:
		return Read | Write
	case windows.PAGE_READONLY:
		return Read
	default:
		return 0
	}
}

// protectAndCapture changes protection and learns the previous value in one
// call: VirtualProtect reports the prior protection atomically via its out
// parameter, unlike Linux's mprotect (MemoryProtector.cpp's Win32 ctor).
func protectAndCapture(addr, size uintptr, flags Protection) (Protection, bool) {
	var old uint32
	if err := windows.VirtualProtect(addr, size, toSystemProt(flags), &old); err != nil {
		return 0, false
	}
	return fromSystemProt(old), true
}

func applyProtection(addr, size uintptr, flags Protection) bool {
	var old uint32
	return windows.VirtualProtect(addr, size, toSystemProt(flags), &old) == nil
}
