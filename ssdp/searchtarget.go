package ssdp

import (
	"regexp"
	"strings"

	"github.com/upnpcore/ssdp/ssdperr"
)

// SearchTargetKind discriminates the seven SearchTarget shapes.
type SearchTargetKind int

const (
	TargetAll SearchTargetKind = iota
	TargetRootDevice
	TargetDevice
	TargetDeviceType
	TargetServiceType
	TargetDomainDeviceType
	TargetDomainServiceType
)

// SearchTarget is the closed, seven-shape tagged union ST/NT values take.
// Only the fields relevant to Kind are populated.
type SearchTarget struct {
	Kind        SearchTargetKind
	UUID        string
	NameVersion string
	Domain      string
}

func All() SearchTarget           { return SearchTarget{Kind: TargetAll} }
func RootDevice() SearchTarget    { return SearchTarget{Kind: TargetRootDevice} }
func Device(uuid string) SearchTarget {
	return SearchTarget{Kind: TargetDevice, UUID: uuid}
}
func DeviceType(nameVersion string) SearchTarget {
	return SearchTarget{Kind: TargetDeviceType, NameVersion: nameVersion}
}
func ServiceType(nameVersion string) SearchTarget {
	return SearchTarget{Kind: TargetServiceType, NameVersion: nameVersion}
}
func DomainDeviceType(domain, nameVersion string) SearchTarget {
	return SearchTarget{Kind: TargetDomainDeviceType, Domain: domain, NameVersion: nameVersion}
}
func DomainServiceType(domain, nameVersion string) SearchTarget {
	return SearchTarget{Kind: TargetDomainServiceType, Domain: domain, NameVersion: nameVersion}
}

// Render produces the bit-exact ST/NT wire value, including the source's
// two-colon "ssdp::all" rendering (spec.md Open Question #1: preserved
// deliberately, not a typo to fix).
func (t SearchTarget) Render() string {
	switch t.Kind {
	case TargetAll:
		return "ssdp::all"
	case TargetRootDevice:
		return "upnp:rootdevice"
	case TargetDevice:
		return "uuid:" + t.UUID
	case TargetDeviceType:
		return "urn:schemas-upnp-org:device:" + t.NameVersion
	case TargetServiceType:
		return "urn:schemas-upnp-org:service:" + t.NameVersion
	case TargetDomainDeviceType:
		return "urn:" + t.Domain + ":device:" + t.NameVersion
	case TargetDomainServiceType:
		return "urn:" + t.Domain + ":service:" + t.NameVersion
	default:
		return ""
	}
}

var domainQualifiedRE = regexp.MustCompile(`^urn:([^:]+):(device|service):(.+)$`)

// ParseSearchTarget is the strictly-ordered inverse of Render: the two
// literals first, then the uuid: prefix, then the two canonical
// urn:schemas-upnp-org:… prefixes, then the domain-qualified regex, else
// InvalidValueForType.
func ParseSearchTarget(s string) (SearchTarget, error) {
	switch s {
	case "ssdp::all":
		return All(), nil
	case "upnp:rootdevice":
		return RootDevice(), nil
	}

	if rest, ok := cutPrefix(s, "uuid:"); ok {
		return Device(rest), nil
	}
	if rest, ok := cutPrefix(s, "urn:schemas-upnp-org:device:"); ok {
		return DeviceType(rest), nil
	}
	if rest, ok := cutPrefix(s, "urn:schemas-upnp-org:service:"); ok {
		return ServiceType(rest), nil
	}

	if m := domainQualifiedRE.FindStringSubmatch(s); m != nil {
		domain, kind, nameVersion := m[1], m[2], m[3]
		if kind == "device" {
			return DomainDeviceType(domain, nameVersion), nil
		}
		return DomainServiceType(domain, nameVersion), nil
	}

	return SearchTarget{}, ssdperr.ErrInvalidValueForType("SearchTarget", s)
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
