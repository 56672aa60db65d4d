//go:build linux

package memprotect

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

func toSystemProt(flags Protection) int {
	var prot int
	if flags.Has(Read) {
		prot |= unix.PROT_READ
	}
	if flags.Has(Write) {
		prot |= unix.PROT_WRITE
	}
	if flags.Has(Execute) {
		prot |= unix.PROT_EXEC
	}
	return prot
}

// currentProtection scans /proc/self/maps for the region containing addr.
// mprotect itself has no "query" mode; the original implementation's
// iter_mapped_regions does the same /proc/self/maps walk for the same
// reason (MemoryProtector.cpp's get_page_prot).
func currentProtection(addr uintptr) (Protection, bool) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var lo, hi uint64
		var perms string
		if _, err := fmt.Sscanf(scanner.Text(), "%x-%x %4s", &lo, &hi, &perms); err != nil {
			continue
		}
		if uint64(addr) < lo || uint64(addr) >= hi {
			continue
		}
		var p Protection
		if strings.ContainsRune(perms, 'r') {
			p |= Read
		}
		if strings.ContainsRune(perms, 'w') {
			p |= Write
		}
		if strings.ContainsRune(perms, 'x') {
			p |= Execute
		}
		return p, true
	}
	return 0, false
}

func protectAndCapture(addr, size uintptr, flags Protection) (Protection, bool) {
	old, ok := currentProtection(addr)
	if !ok {
		return 0, false
	}
	if !applyProtection(addr, size, flags) {
		return 0, false
	}
	return old, true
}

func applyProtection(addr, size uintptr, flags Protection) bool {
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return unix.Mprotect(b, toSystemProt(flags)) == nil
}
