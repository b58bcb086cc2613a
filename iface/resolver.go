// Package iface resolves a named network interface to a bindable address,
// the collaborator spec.md calls the Interface Resolver. It is grounded on
// the active-interface enumeration in the teacher's server/dlna package,
// generalized from "first non-loopback IPv4" to "named interface, requested
// family".
package iface

import "net"

// IPVersion selects an address family for resolution.
type IPVersion int

const (
	// Either accepts the first matching address regardless of family.
	Either IPVersion = iota
	V4
	V6
)

func matches(ip net.IP, version IPVersion) bool {
	switch version {
	case V4:
		return ip.To4() != nil
	case V6:
		return ip.To4() == nil && ip.To16() != nil
	default:
		return true
	}
}

// AddressForInterface enumerates local interfaces, finds the one whose
// system name matches exactly, and returns the first address whose family
// matches version. It returns ok=false if name is empty (caller should bind
// the wildcard address) or if the interface exists but has no matching
// address.
func AddressForInterface(name string, version IPVersion) (net.IP, bool) {
	if name == "" {
		return nil, false
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, false
	}

	for _, ifc := range ifaces {
		if ifc.Name != name {
			continue
		}
		addrs, err := ifc.Addrs()
		if err != nil {
			return nil, false
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			if matches(ipnet.IP, version) {
				return ipnet.IP, true
			}
		}
		return nil, false
	}

	return nil, false
}

// Interfaces lists up, non-loopback interfaces, grounded on the teacher's
// getActiveInterfaces.
func Interfaces() ([]net.Interface, error) {
	all, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var active []net.Interface
	for _, ifc := range all {
		if ifc.Flags&net.FlagLoopback != 0 || ifc.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				active = append(active, ifc)
				break
			}
		}
	}
	return active, nil
}

// Names is a convenience wrapper over Interfaces returning only the
// interface names.
func Names() ([]string, error) {
	ifaces, err := Interfaces()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ifaces))
	for _, ifc := range ifaces {
		names = append(names, ifc.Name)
	}
	return names, nil
}

// WildcardAddress returns the bind-any address for the given family,
// used when no interface name is supplied.
func WildcardAddress(version IPVersion) net.IP {
	if version == V6 {
		return net.IPv6zero
	}
	return net.IPv4zero
}
