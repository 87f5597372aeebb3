package match

import "strings"

// PrefixTarget pairs a compiled mask with the textual prefix it came from.
// Lead is a fixed address preamble ("0x", "bc1p") that precedes the part
// the pattern describes.
type PrefixTarget struct {
	*Mask
	Lead      string
	Prefix    string
	Fold      bool
	truncated bool
}

// NewPrefixTarget wraps a compiler result.
func NewPrefixTarget(c *Compiled, lead string, fold bool) *PrefixTarget {
	return &PrefixTarget{
		Mask:      c.Mask,
		Lead:      lead,
		Prefix:    c.Pattern,
		Fold:      fold,
		truncated: c.Truncated,
	}
}

// Accepts reports whether address is Lead followed by the prefix.
func (t *PrefixTarget) Accepts(address string) bool {
	if !strings.HasPrefix(address, t.Lead) {
		return false
	}
	return HasPrefix(address[len(t.Lead):], t.Prefix, t.Fold)
}

// Pattern returns the prefix as it will appear in the address.
func (t *PrefixTarget) Pattern() string { return t.Lead + t.Prefix }

// Truncated reports whether the pattern was cut to the scheme maximum.
func (t *PrefixTarget) Truncated() bool { return t.truncated }
