// Package domain contains the core types of the dependency resolution model:
// versions, constraints, requirements, catalog entries, and resolutions.
package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is an immutable (major, minor, patch) triple. Each component fits
// in 16 bits; the packed 64-bit form keeps major most significant so integer
// comparison of Packed() agrees with the natural ordering.
type Version struct {
	Major, Minor, Patch uint16
}

// Packed returns the version as a single 64-bit value suitable for direct
// integer comparison and for the binary snapshot format.
func (v Version) Packed() uint64 {
	return uint64(v.Major)<<32 | uint64(v.Minor)<<16 | uint64(v.Patch)
}

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool {
	return v.Packed() < other.Packed()
}

// Equal reports whether v and other are the same version.
func (v Version) Equal(other Version) bool {
	return v.Packed() == other.Packed()
}

// String renders the version in dotted-decimal form.
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(v.Major)))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(v.Minor)))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(v.Patch)))
	return b.String()
}

// ParseVersion parses a dot-separated decimal string of 1-3 components.
// Missing trailing components default to zero. Non-numeric suffixes
// (pre-release tags) are rejected — a documented limitation of this
// version of the resolver (spec.md §9).
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "input", s)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Version{}, zerr.With(ErrInvalidVersion, "input", s)
	}

	var components [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Version{}, zerr.With(zerr.Wrap(ErrInvalidVersion, "non-numeric or out-of-range component"), "input", s)
		}
		components[i] = uint16(n)
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// MaxVersion returns the greatest element of vs by total order. vs must be
// non-empty; ties (equal versions) resolve to the first occurrence, which
// keeps selection deterministic given the catalog's insertion order.
func MaxVersion(vs []Version) Version {
	max := vs[0]
	for _, v := range vs[1:] {
		if max.Less(v) {
			max = v
		}
	}
	return max
}
