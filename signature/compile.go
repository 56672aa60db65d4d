package signature

// MustCompile parses s using the same logic as Parse and panics if it is
// ill-formed. It exists for package-scope var initialization, standing in
// for the C++ consteval compile_signature entry point (spec.md §4.1, §9):
// Go has no consteval, so the "compile-time" pathway is simply a call that
// happens during package init rather than during a user's scan, sharing
// Parse's exact logic as spec.md requires.
//
//	var needle = signature.MustCompile("48 8B ?5 ?? ?? ?? ??")
func MustCompile(s string) Signature {
	sig, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sig
}

// FromBytes builds a fully specified Signature from raw bytes, with no
// wildcards or masked positions.
func FromBytes(b []byte) Signature {
	sig := make(Signature, len(b))
	for i, v := range b {
		sig[i] = Full(v)
	}
	return sig
}

// FromValuesAndMasks builds a Signature from parallel value/mask buffers of
// equal length, as used by the C ABI's "construct from parallel buffers"
// entry point (spec.md §6).
func FromValuesAndMasks(values, masks []byte) (Signature, error) {
	if len(values) != len(masks) {
		return nil, &ParseError{Kind: ErrInvalidTokenLength}
	}
	sig := make(Signature, len(values))
	for i := range values {
		v := values[i] & masks[i]
		sig[i] = Element{Value: v, Mask: masks[i]}
	}
	if len(sig) == 0 {
		return nil, &ParseError{Kind: ErrEmptySignature}
	}
	if sig[0].Mask != 0xFF {
		return nil, &ParseError{Kind: ErrIllegalFirstByte}
	}
	hasMaskedByte := false
	for _, el := range sig {
		if el.Mask != 0x00 {
			hasMaskedByte = true
			break
		}
	}
	if !hasMaskedByte {
		return nil, &ParseError{Kind: ErrMissingMaskedByte}
	}
	return sig, nil
}
