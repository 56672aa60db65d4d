package signature

import "strings"

// Signature is an owned, ordered sequence of Elements. It is the only entity
// in this package that owns heap memory; everything else borrows from it.
type Signature []Element

// View is a borrowed, read-only look at a Signature (or a sub-slice of one).
// Scan contexts carry a View, never a Signature, so they never copy pattern
// bytes.
type View []Element

// AsView returns a View borrowing s's backing array.
func (s Signature) AsView() View {
	return View(s)
}

// Len reports the number of elements.
func (v View) Len() int {
	return len(v)
}

// FirstFullySpecifiedPair returns the index of the first i such that v[i] and
// v[i+1] are both fully specified, and true; or (0, false) if no such pair
// exists.
func (v View) FirstFullySpecifiedPair() (int, bool) {
	for i := 0; i+1 < len(v); i++ {
		if v[i].FullySpecified() && v[i+1].FullySpecified() {
			return i, true
		}
	}
	return 0, false
}

// String renders the signature using the same token format Parse accepts:
// hex for fully specified or nibble-masked bytes, binary for irregular
// masks, "??" for a full wildcard.
func (v View) String() string {
	tokens := make([]string, len(v))
	for i, e := range v {
		tokens[i] = e.String()
	}
	return strings.Join(tokens, " ")
}

func (s Signature) String() string {
	return s.AsView().String()
}
