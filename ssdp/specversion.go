// Package ssdp implements the SSDP protocol semantics: search-target
// parsing, header validation, the search and notify engines, and the
// response cache. It is the domain layer built atop httpu (wire codec and
// UDP transport), iface (interface resolution), and useragent.
package ssdp

import "github.com/upnpcore/ssdp/ssdperr"

// SpecVersion is the closed three-valued UDA version enumeration, ordered
// V10 < V11 < V20, used as a predicate everywhere protocol rules differ.
type SpecVersion int

const (
	V10 SpecVersion = iota
	V11
	V20
)

func (v SpecVersion) String() string {
	switch v {
	case V10:
		return "1.0"
	case V11:
		return "1.1"
	case V20:
		return "2.0"
	default:
		return "unknown"
	}
}

// AtLeast reports whether v is at least as new as other.
func (v SpecVersion) AtLeast(other SpecVersion) bool {
	return v >= other
}

// ParseSpecVersion parses "1.0", "1.1", or "2.0".
func ParseSpecVersion(s string) (SpecVersion, error) {
	switch s {
	case "1.0":
		return V10, nil
	case "1.1":
		return V11, nil
	case "2.0":
		return V20, nil
	default:
		return 0, ssdperr.ErrInvalidValueForType("SpecVersion", s)
	}
}
