// Package libhat locates byte patterns ("signatures") inside arbitrary byte
// ranges at the throughput expected of a reverse-engineering toolkit: a
// machine-code fingerprint, a vtable, a string constant, or any other
// byte-level signature inside a loaded module.
//
// A signature is a sequence of fully specified bytes, fully wildcard
// positions, and bit-masked bytes, parsed from a compact human-readable
// format (see package signature). FindOne and FindAll scan a byte range for
// the first (or every) offset satisfying a signature; FindOneInSection
// delegates to the module collaborator to resolve a named section before
// scanning it.
//
// Basic usage:
//
//	sig := signature.MustCompile("48 8B ?? 00 00 00 00")
//	result := libhat.FindOne(data, sig.AsView(), plan.X1, 0)
//	if result.Found() {
//	    addr, _ := libhat.Rel(result, 3, 1)
//	}
//
// The scan engine itself (package plan for context construction and pivot
// selection, package matcher for the scalar/128/256/512-bit matcher family)
// is pure and allocation-free; this package is the thin front end that
// wires a signature and byte range into a plan.Context and runs it.
package libhat
